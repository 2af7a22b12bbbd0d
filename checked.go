package dodgems

import (
	"os"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// CheckedBacking wraps a Backing and tracks every outstanding allocation,
// including the bump buffer itself. It is meant for tests and leak hunting:
// wrap the backing allocator, run the workload, then AssertReleased.
type CheckedBacking struct {
	backing Backing
	sz      int64

	allocs sync.Map
}

func NewCheckedBacking(backing Backing) *CheckedBacking {
	return &CheckedBacking{backing: backing}
}

// CurrentAlloc returns the number of bytes allocated through this backing
// and not yet deallocated.
func (c *CheckedBacking) CurrentAlloc() int { return int(atomic.LoadInt64(&c.sz)) }

func (c *CheckedBacking) Allocate(size, align int) ([]byte, error) {
	out, err := c.backing.Allocate(size, align)
	if err != nil || len(out) == 0 {
		return out, err
	}
	atomic.AddInt64(&c.sz, int64(size))

	if pc, _, l, ok := runtime.Caller(allocFrames); ok {
		c.allocs.Store(addressOf(out), &dalloc{pc: pc, line: l, sz: size})
	}
	return out, nil
}

func (c *CheckedBacking) Deallocate(b []byte) {
	if len(b) == 0 {
		return
	}
	atomic.AddInt64(&c.sz, int64(-len(b)))
	c.allocs.Delete(addressOf(b))
	c.backing.Deallocate(b)
}

// Allocations land here either straight from user code or through the
// BumpCar's overflow and construction paths. The frame count selects the
// caller that actually triggered the allocation; override it with the
// DODGEMS_CHECKED_ALLOC_FRAMES environment variable when wrapping the
// backing in further layers.
const defAllocFrames = 2

var allocFrames int = defAllocFrames

func init() {
	if val, ok := os.LookupEnv("DODGEMS_CHECKED_ALLOC_FRAMES"); ok {
		if f, err := strconv.Atoi(val); err == nil {
			allocFrames = f
		}
	}
}

type dalloc struct {
	pc   uintptr
	line int
	sz   int
}

// TestingT is the subset of *testing.T that AssertReleased needs.
type TestingT interface {
	Errorf(format string, args ...interface{})
	Helper()
}

// AssertReleased reports every allocation that is still outstanding, with
// the call site that made it.
func (c *CheckedBacking) AssertReleased(t TestingT) {
	t.Helper()
	c.allocs.Range(func(_, value interface{}) bool {
		info := value.(*dalloc)
		f := runtime.FuncForPC(info.pc)
		t.Errorf("LEAK of %d bytes FROM %s line %d", info.sz, f.Name(), info.line)
		return true
	})

	if sz := atomic.LoadInt64(&c.sz); sz != 0 {
		t.Errorf("invalid memory size exp=0, got=%d", sz)
	}
}

var _ Backing = (*CheckedBacking)(nil)
