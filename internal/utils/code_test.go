package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCode_Format(t *testing.T) {
	code := NewCode("RES-")

	require.True(t, strings.HasPrefix(code, "RES-"), "got %q", code)
	body := strings.TrimPrefix(code, "RES-")
	// Millisecond timestamp in base 36 is 8 characters until 2059, plus
	// the 4 random characters.
	assert.Len(t, body, 12)
	for i := 0; i < len(body); i++ {
		assert.Contains(t, codeAlphabet, string(body[i]), "character %d of %q", i, code)
	}
}

func TestNewCode_EmptyPrefix(t *testing.T) {
	code := NewCode("")
	assert.Len(t, code, 12)
}

func TestNewCode_TimeOrdered(t *testing.T) {
	first := NewCode("RES-")
	time.Sleep(2 * time.Millisecond)
	second := NewCode("RES-")

	assert.NotEqual(t, first, second)
	// The leading timestamp makes later codes sort after earlier ones.
	assert.Less(t, first[:len("RES-")+8], second[:len("RES-")+8])
}
