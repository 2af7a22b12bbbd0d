package dodgems

import (
	"fmt"
	"math"
	"runtime"
	"unsafe"
)

// Alloc returns a pointer to a T stored inside the bump car with zeroed
// memory. The pointer stays valid until freed with Free, or until the
// BumpCar is released. Zero-sized types are served outside the arena.
func Alloc[T any](bc *BumpCar) (*T, error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return new(T), nil
	}
	b, err := bc.Allocate(size, int(unsafe.Alignof(zero)))
	if err != nil {
		return nil, err
	}
	clear(b)
	return (*T)(unsafe.Pointer(&b[0])), nil
}

// AllocUninitialized returns a *T without zeroing memory. Faster than Alloc
// but the contents are undefined until written.
func AllocUninitialized[T any](bc *BumpCar) (*T, error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return new(T), nil
	}
	b, err := bc.Allocate(size, int(unsafe.Alignof(zero)))
	if err != nil {
		return nil, err
	}
	return (*T)(unsafe.Pointer(&b[0])), nil
}

// Free hands back a pointer obtained from Alloc or AllocUninitialized,
// decrementing the live count so the BumpCar can be reset.
func Free[T any](bc *BumpCar, p *T) {
	if p == nil {
		return
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return
	}
	bc.Deallocate(unsafe.Slice((*byte)(unsafe.Pointer(p)), size))
}

// AllocSlice allocates a slice of n elements of type T inside the bump car.
// The elements are not initialized. Returns nil if n <= 0.
func AllocSlice[T any](bc *BumpCar, n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize == 0 {
		return make([]T, n), nil
	}
	if n > math.MaxInt/elemSize {
		return nil, fmt.Errorf("dodgems: %d elements of %d bytes: %w", n, elemSize, ErrOutOfMemory)
	}
	b, err := bc.Allocate(elemSize*n, int(unsafe.Alignof(zero)))
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n), nil
}

// AllocSliceZeroed allocates a slice of n elements of type T with zeroed
// memory.
func AllocSliceZeroed[T any](bc *BumpCar, n int) ([]T, error) {
	s, err := AllocSlice[T](bc, n)
	if err != nil {
		return nil, err
	}
	clear(s)
	return s, nil
}

// FreeSlice hands back a slice obtained from AllocSlice or AllocSliceZeroed.
func FreeSlice[T any](bc *BumpCar, s []T) {
	if len(s) == 0 {
		return
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize == 0 {
		return
	}
	bc.Deallocate(unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), elemSize*len(s)))
}

// PtrAndKeepAlive returns t and calls runtime.KeepAlive on the bump car.
// This prevents the BumpCar (and with it the buffer) from being collected
// while the pointer is still in use in unsafe code.
func PtrAndKeepAlive[T any](bc *BumpCar, t *T) *T {
	runtime.KeepAlive(bc)
	return t
}
