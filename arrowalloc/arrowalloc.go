// Package arrowalloc bridges dodgems bump cars and Apache Arrow memory
// allocators, in both directions: a BumpCar can serve as the scratch
// allocator behind Arrow buffers and builders, and any Arrow allocator can
// supply the bump buffer itself.
package arrowalloc

import (
	"fmt"

	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/AldanTanneo/dodgems"
)

// alignment matches the guarantee Arrow allocators make for every buffer.
const alignment = 64

// Allocator adapts a *dodgems.BumpCar to Arrow's memory.Allocator so Arrow
// buffers and array builders can draw their scratch memory from the bump
// car. Arrow allocators have no error return; an allocation the bump car
// cannot satisfy panics, matching the behavior of the built-in Arrow
// allocators.
type Allocator struct {
	bc *dodgems.BumpCar
}

func NewAllocator(bc *dodgems.BumpCar) *Allocator {
	return &Allocator{bc: bc}
}

func (a *Allocator) Allocate(size int) []byte {
	b, err := a.bc.Allocate(size, alignment)
	if err != nil {
		panic(err)
	}
	if b == nil {
		return []byte{}
	}
	return b
}

func (a *Allocator) Reallocate(size int, b []byte) []byte {
	switch {
	case size == len(b):
		return b
	case size == 0:
		a.bc.Deallocate(b)
		return []byte{}
	case size > len(b):
		nb, err := a.bc.Grow(b, size, alignment)
		if err != nil {
			panic(err)
		}
		return nb
	default:
		return a.bc.Shrink(b, size, alignment)
	}
}

func (a *Allocator) Free(b []byte) {
	a.bc.Deallocate(b)
}

// Backing adapts an Arrow memory.Allocator to dodgems.Backing, so the bump
// buffer and overflow allocations can come from, for example, a
// CheckedAllocator in leak tests or mallocator's off-heap memory. Arrow
// allocators guarantee 64-byte alignment; requests for stricter alignment
// cannot be satisfied and fail.
type Backing struct {
	mem memory.Allocator
}

func NewBacking(mem memory.Allocator) *Backing {
	return &Backing{mem: mem}
}

func (b *Backing) Allocate(size, align int) ([]byte, error) {
	if size <= 0 {
		return nil, nil
	}
	if align > alignment {
		return nil, fmt.Errorf("arrowalloc: alignment %d exceeds the %d bytes arrow allocators guarantee: %w",
			align, alignment, dodgems.ErrOutOfMemory)
	}
	return b.mem.Allocate(size), nil
}

func (b *Backing) Deallocate(buf []byte) {
	if len(buf) == 0 {
		return
	}
	b.mem.Free(buf)
}

var (
	_ memory.Allocator = (*Allocator)(nil)
	_ dodgems.Backing  = (*Backing)(nil)
)
