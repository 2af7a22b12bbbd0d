package dodgems

// SizeInUse returns the number of buffer bytes consumed at or before the
// current offset. This includes internal fragmentation due to alignment.
func (bc *BumpCar) SizeInUse() int {
	return bc.offset
}

// Capacity returns the fixed size of the bump buffer in bytes.
func (bc *BumpCar) Capacity() int {
	return len(bc.buf)
}

// RemainingCapacity returns the bytes left in the buffer. This does not
// guarantee that an allocation of this size will succeed from the buffer:
// alignment may waste leading space. Use CanAllocate for a precise check.
func (bc *BumpCar) RemainingCapacity() int {
	return len(bc.buf) - bc.offset
}

// Live returns the number of in-buffer allocations granted but not yet
// deallocated. Reset and Release require it to be zero.
func (bc *BumpCar) Live() int {
	return bc.live
}

// Utilization returns the ratio of bytes in use to capacity (0.0 to 1.0).
// Returns 0.0 if the BumpCar has no capacity.
func (bc *BumpCar) Utilization() float64 {
	if len(bc.buf) == 0 {
		return 0
	}
	return float64(bc.offset) / float64(len(bc.buf))
}

// Metrics returns a snapshot of bump car statistics.
func (bc *BumpCar) Metrics() Metrics {
	return Metrics{
		SizeInUse:   bc.SizeInUse(),
		Capacity:    bc.Capacity(),
		Remaining:   bc.RemainingCapacity(),
		Live:        bc.Live(),
		Utilization: bc.Utilization(),
	}
}

// Metrics contains statistical information about a BumpCar.
type Metrics struct {
	SizeInUse   int     // Bytes consumed by the bump offset
	Capacity    int     // Fixed buffer capacity in bytes
	Remaining   int     // Bytes left in the buffer
	Live        int     // Outstanding in-buffer allocations
	Utilization float64 // Ratio of used to total capacity (0.0-1.0)
}
