package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFits(t *testing.T) {
	cases := []struct {
		name      string
		requested int
		existing  []int
		capacity  *int
		want      bool
	}{
		{"nil capacity always fits", 500, []int{10, 10}, nil, true},
		{"empty event", 4, nil, intptr(10), true},
		{"exact fit", 3, []int{4, 3}, intptr(10), true},
		{"one over", 4, []int{4, 3}, intptr(10), false},
		{"already full", 1, []int{10}, intptr(10), false},
		{"zero capacity", 1, nil, intptr(0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Fits(tc.requested, tc.existing, tc.capacity))
		})
	}
}

func TestRemaining(t *testing.T) {
	assert.Equal(t, 10, Remaining(nil, 10))
	assert.Equal(t, 3, Remaining([]int{4, 3}, 10))
	assert.Equal(t, 0, Remaining([]int{10}, 10))
	// Oversold events report zero, never a negative count.
	assert.Equal(t, 0, Remaining([]int{8, 8}, 10))
}
