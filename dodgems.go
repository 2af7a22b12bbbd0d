// Package dodgems implements a fixed-capacity bump allocator (memory arena).
// Typical usage: create one BumpCar sized for a hot loop's working set,
// allocate many short-lived regions from it, then Reset() once every
// allocation has been handed back for O(1) bulk reclamation.
package dodgems

import (
	"errors"
	"fmt"
)

// baseAlignment is the alignment of the bump buffer itself. Allocations with
// stricter alignment are still honored: offsets are aligned against absolute
// addresses, not buffer-relative positions.
const baseAlignment = 64

// ErrOutOfMemory is returned when neither the bump buffer nor the backing
// allocator can satisfy a request.
var ErrOutOfMemory = errors.New("dodgems: out of memory")

// BumpCar is a fixed-capacity bump allocator. It owns one contiguous buffer
// obtained from a backing allocator at construction and serves allocations by
// advancing an offset through it. Requests that do not fit in the remaining
// capacity are forwarded to the backing allocator.
//
// A BumpCar is not goroutine-safe: confine it to one goroutine or guard it
// with external synchronization.
type BumpCar struct {
	backing Backing
	buf     []byte  // full-capacity buffer, nil when capacity is 0 or after Release
	base    uintptr // address of buf[0], 0 when buf is nil
	offset  int     // next free byte in buf
	live    int     // in-buffer allocations not yet deallocated

	released bool
}

// New creates a BumpCar with a buffer of exactly capacity bytes obtained from
// the default backing allocator. capacity 0 is legal and yields a BumpCar
// that serves every request from the backing allocator.
func New(capacity int) (*BumpCar, error) {
	return NewIn(capacity, DefaultBacking)
}

// NewIn creates a BumpCar whose buffer comes from the given backing
// allocator. The backing allocator also serves requests that do not fit in
// the buffer, and receives the buffer back on Release. A nil backing falls
// back to DefaultBacking. Negative capacity panics.
func NewIn(capacity int, backing Backing) (*BumpCar, error) {
	if capacity < 0 {
		panic(fmt.Sprintf("dodgems: negative capacity %d", capacity))
	}
	if backing == nil {
		backing = DefaultBacking
	}
	bc := &BumpCar{backing: backing}
	if capacity > 0 {
		buf, err := backing.Allocate(capacity, baseAlignment)
		if err != nil {
			return nil, fmt.Errorf("dodgems: acquiring %d byte buffer: %w", capacity, err)
		}
		bc.buf = buf[:capacity:capacity]
		bc.base = addressOf(bc.buf)
	}
	return bc, nil
}

// Allocate returns a region of size bytes whose first byte is aligned to
// align (a power of two). The fast path bumps the internal offset; if the
// region does not fit in the remaining capacity the request is forwarded
// verbatim to the backing allocator, leaving the offset untouched. size <= 0
// returns nil.
//
// The region is valid until it is deallocated, or for in-buffer regions until
// the BumpCar is reset or released.
func (bc *BumpCar) Allocate(size, align int) ([]byte, error) {
	bc.panicIfReleased()
	if size <= 0 {
		return nil, nil
	}
	if !isPowerOfTwo(align) {
		panic(fmt.Sprintf("dodgems: alignment %d is not a power of two", align))
	}

	if bc.base != 0 {
		aligned := int(roundUpTo(bc.base+uintptr(bc.offset), uintptr(align)) - bc.base)
		// aligned+size can overflow for huge requests; compare against the
		// remaining room instead.
		if aligned >= bc.offset && size <= len(bc.buf)-aligned {
			end := aligned + size
			bc.offset = end
			bc.live++
			return bc.buf[aligned:end:end], nil
		}
	}

	return bc.backing.Allocate(size, align)
}

// Deallocate hands a region back. In-buffer regions only decrement the live
// allocation count; their storage becomes reusable at the next Reset. Regions
// served by the backing allocator are forwarded to it. The region must have
// been obtained from this BumpCar and must not be deallocated twice.
func (bc *BumpCar) Deallocate(b []byte) {
	bc.panicIfReleased()
	if len(b) == 0 {
		return
	}
	if bc.owns(b) {
		if bc.live == 0 {
			panic("dodgems: Deallocate without a matching allocation")
		}
		bc.live--
		return
	}
	bc.backing.Deallocate(b)
}

// Grow resizes a region to newSize bytes, which must be at least len(b).
// When b is the most recent in-buffer allocation (the tail) and the extra
// bytes fit, the region is extended in place and the returned slice shares
// b's address. Otherwise Grow allocates a fresh region, copies b into it and
// deallocates b. A nil or empty b behaves like Allocate.
func (bc *BumpCar) Grow(b []byte, newSize, align int) ([]byte, error) {
	bc.panicIfReleased()
	if !isPowerOfTwo(align) {
		panic(fmt.Sprintf("dodgems: alignment %d is not a power of two", align))
	}
	if len(b) == 0 {
		return bc.Allocate(newSize, align)
	}
	if newSize < len(b) {
		panic(fmt.Sprintf("dodgems: Grow from %d to smaller size %d", len(b), newSize))
	}
	if newSize == len(b) {
		return b, nil
	}

	if bc.owns(b) && isAlignedTo(addressOf(b), align) {
		off := int(addressOf(b) - bc.base)
		if off+len(b) == bc.offset && newSize <= len(bc.buf)-off {
			end := off + newSize
			bc.offset = end
			return bc.buf[off:end:end], nil
		}
	}

	nb, err := bc.Allocate(newSize, align)
	if err != nil {
		return nil, err
	}
	copy(nb, b)
	bc.Deallocate(b)
	return nb, nil
}

// Shrink resizes a region down to newSize bytes, 0 < newSize <= len(b).
// When b is the tail allocation the offset is rewound so the freed bytes are
// immediately reusable; otherwise the larger region is kept and simply
// resliced, which is always valid for the smaller size. Shrink never fails
// and never moves the region.
func (bc *BumpCar) Shrink(b []byte, newSize, align int) []byte {
	bc.panicIfReleased()
	if newSize <= 0 || newSize > len(b) {
		panic(fmt.Sprintf("dodgems: Shrink from %d to invalid size %d", len(b), newSize))
	}
	if newSize == len(b) {
		return b
	}

	if bc.owns(b) {
		off := int(addressOf(b) - bc.base)
		if off+len(b) == bc.offset {
			bc.offset = off + newSize
			return bc.buf[off : off+newSize : off+newSize]
		}
	}
	return b[:newSize]
}

// CanAllocate reports whether an Allocate(size, align) call would be served
// from the bump buffer without falling back to the backing allocator.
func (bc *BumpCar) CanAllocate(size, align int) bool {
	bc.panicIfReleased()
	if size <= 0 || !isPowerOfTwo(align) || bc.base == 0 {
		return false
	}
	aligned := int(roundUpTo(bc.base+uintptr(bc.offset), uintptr(align)) - bc.base)
	return aligned >= bc.offset && size <= len(bc.buf)-aligned
}

// Reset rewinds the offset to zero, making the whole buffer available again.
// Every in-buffer allocation must already have been deallocated; resetting
// with live allocations would hand their storage to unrelated requests, so it
// panics instead. Buffer contents are not cleared.
func (bc *BumpCar) Reset() {
	bc.panicIfReleased()
	if bc.live != 0 {
		panic(fmt.Sprintf("dodgems: Reset with %d live allocations", bc.live))
	}
	bc.offset = 0
}

// Release returns the buffer to the backing allocator and makes the BumpCar
// unusable; any subsequent operation panics. Like Reset it requires that no
// in-buffer allocation is live. Regions served by the backing allocator have
// independent lifetimes and are not affected. Release is idempotent.
func (bc *BumpCar) Release() {
	if bc.released {
		return
	}
	if bc.live != 0 {
		panic(fmt.Sprintf("dodgems: Release with %d live allocations", bc.live))
	}
	if bc.buf != nil {
		bc.backing.Deallocate(bc.buf)
	}
	bc.buf = nil
	bc.base = 0
	bc.offset = 0
	bc.released = true
}

// A BumpCar is itself a Backing, so it can be substituted wherever a generic
// allocation capability is expected, including behind another BumpCar.
var _ Backing = (*BumpCar)(nil)

// owns reports whether b's first byte lies inside the bump buffer.
func (bc *BumpCar) owns(b []byte) bool {
	if bc.base == 0 || len(b) == 0 {
		return false
	}
	addr := addressOf(b)
	return addr >= bc.base && addr < bc.base+uintptr(len(bc.buf))
}

func (bc *BumpCar) panicIfReleased() {
	if bc.released {
		panic("dodgems: use after Release()")
	}
}
