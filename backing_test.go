package dodgems

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoBackingAllocate(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		align int
	}{
		{"unaligned size", 33, 8},
		{"aligned size", 64, 8},
		{"large", 4097, 64},
		{"huge alignment", 16, 4096},
		{"byte alignment", 7, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := GoBacking{}.Allocate(tt.size, tt.align)
			require.NoError(t, err)
			assert.Len(t, b, tt.size)
			assert.Equal(t, tt.size, cap(b))
			assert.True(t, isAlignedTo(addressOf(b), tt.align))
		})
	}
}

func TestGoBackingZeroSize(t *testing.T) {
	b, err := GoBacking{}.Allocate(0, 8)
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestGoBackingHugeSize(t *testing.T) {
	// Padding for the alignment shift must not wrap the slice length.
	b, err := GoBacking{}.Allocate(math.MaxInt, 64)
	require.ErrorIs(t, err, ErrOutOfMemory)
	assert.Nil(t, b)
}

func TestRoundUpTo(t *testing.T) {
	tests := []struct {
		v, align, want uintptr
	}{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{63, 64, 64},
		{64, 64, 64},
		{65, 64, 128},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, roundUpTo(tt.v, tt.align), "roundUpTo(%d, %d)", tt.v, tt.align)
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, v := range []int{1, 2, 4, 8, 64, 4096, 1 << 30} {
		assert.True(t, isPowerOfTwo(v), "%d", v)
	}
	for _, v := range []int{0, -1, -2, 3, 6, 12, 100} {
		assert.False(t, isPowerOfTwo(v), "%d", v)
	}
}
