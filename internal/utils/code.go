package utils

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewCode returns a human-shareable identifier: the given prefix, the
// current millisecond timestamp in base 36, and four random base-36
// characters, all uppercase (e.g. "RES-MDQ3K1T2X7AF").  Codes are
// practically collision-free but carry no hard uniqueness guarantee; the
// store's unique index is the final arbiter.
func NewCode(prefix string) string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UTC().UnixMilli(), 36))
	var b strings.Builder
	b.Grow(len(prefix) + len(ts) + 4)
	b.WriteString(prefix)
	b.WriteString(ts)
	for i := 0; i < 4; i++ {
		b.WriteByte(codeAlphabet[rand.IntN(len(codeAlphabet))])
	}
	return b.String()
}
