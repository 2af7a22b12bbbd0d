package dodgems

import (
	"fmt"
	"math"
)

// Backing is the allocator a BumpCar obtains its buffer from and falls back
// to when the buffer cannot satisfy a request. Allocate must return a slice
// of exactly size bytes whose first byte is aligned to align, or an error
// (conventionally wrapping ErrOutOfMemory). Deallocate receives slices
// previously returned by Allocate.
type Backing interface {
	Allocate(size, align int) ([]byte, error)
	Deallocate(b []byte)
}

// DefaultBacking is the backing allocator used by New. It allocates from the
// Go heap and is safe to share between BumpCars.
var DefaultBacking Backing = GoBacking{}

// GoBacking implements Backing on top of the Go heap. Deallocate is a no-op:
// reclamation is left to the garbage collector.
type GoBacking struct{}

func (GoBacking) Allocate(size, align int) ([]byte, error) {
	if size <= 0 {
		return nil, nil
	}
	if align < 1 {
		align = 1
	}
	if size > math.MaxInt-(align-1) {
		return nil, fmt.Errorf("dodgems: %d bytes at alignment %d: %w", size, align, ErrOutOfMemory)
	}
	buf := make([]byte, size+align-1) // padding so the start can be shifted into alignment
	shift := int(roundUpTo(addressOf(buf), uintptr(align)) - addressOf(buf))
	return buf[shift : shift+size : shift+size], nil
}

func (GoBacking) Deallocate(b []byte) {}

var _ Backing = GoBacking{}
