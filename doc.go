// Package dodgems implements a fixed-capacity bump allocator for Go.
//
// # Overview
//
// A bump allocator hands out memory by advancing a single offset through one
// fixed buffer, with no per-allocation free operation; the whole buffer is
// reclaimed at once by a reset. This is particularly useful for:
//
//   - Short-lived, high-frequency allocation bursts inside a hot loop
//   - Request- or frame-scoped allocations released together
//   - Reducing garbage collection pressure
//   - Predictable O(1) allocation with no hidden bookkeeping
//
// It is not a general purpose allocator: requests that do not fit in the
// fixed buffer, and the buffer itself, are served by a slower backing
// allocator (by default, the Go heap).
//
// # Basic Usage
//
//	bc, err := dodgems.New(1024) // 1KB capacity
//	if err != nil {
//		// backing allocator could not supply the buffer
//	}
//	defer bc.Release()
//
//	for i := 0; i < 100; i++ {
//		buf, _ := bc.Allocate(64, 8) // small fast allocations in a hot loop
//		process(buf)
//		bc.Deallocate(buf)
//		bc.Reset() // reclaim everything once all allocations are handed back
//	}
//
// # Allocation Contract
//
// Allocate returns a region of the requested size and alignment, disjoint
// from every other live region. Regions that fit in the remaining capacity
// are served by bumping the offset; larger requests fall through to the
// backing allocator and carry no bump-car bookkeeping at all. Deallocate
// routes each region back by a pointer-range test: in-buffer regions only
// decrement the live count (their storage is recycled by the next Reset),
// backing regions are forwarded to the backing allocator.
//
// Grow extends the most recent in-buffer allocation in place when the extra
// bytes fit, preserving its address; in every other case it falls back to
// allocate-copy-deallocate. Shrink rewinds the offset for the most recent
// allocation and otherwise keeps the larger region, which is always valid
// for the smaller size.
//
// # Reset and Release
//
// Reset rewinds the offset to zero so the buffer can be reused. Release
// returns the buffer to the backing allocator and makes the BumpCar
// unusable. Both require that every in-buffer allocation has been
// deallocated; calling them with live allocations is a contract violation
// and panics rather than silently reusing memory that is still referenced.
//
// # Thread Safety
//
// A BumpCar is not safe for concurrent use. Confine it to one goroutine, or
// guard it with external synchronization.
//
// # Backing Allocators
//
// The Backing interface abstracts the slower allocator behind the bump car.
// GoBacking (the default) allocates from the Go heap. CheckedBacking wraps
// any Backing and tracks outstanding allocations for leak hunting in tests.
// Package arrowalloc adapts Apache Arrow memory allocators in both
// directions.
package dodgems
