package dodgems

import (
	"runtime"
	"testing"
)

// BenchmarkRealisticUsage tests scenarios where the bump car should excel
func BenchmarkRealisticUsage(b *testing.B) {

	// Test 1: Many small allocations with periodic cleanup
	b.Run("ManySmallAllocs/BumpCar", func(b *testing.B) {
		bc, _ := New(64 * 1024)
		defer bc.Release()
		var bufs [100][]byte
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := 0; j < 100; j++ {
				bufs[j], _ = bc.Allocate(64, 8)
			}
			for j := 0; j < 100; j++ {
				bc.Deallocate(bufs[j])
			}
			// Reset after the burst (simulates request cleanup)
			bc.Reset()
		}
	})

	b.Run("ManySmallAllocs/Builtin", func(b *testing.B) {
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			objects := make([][]byte, 100)
			for j := 0; j < 100; j++ {
				objects[j] = make([]byte, 64)
			}
			// Force GC to clean up (simulates request cleanup)
			if i%10 == 0 {
				runtime.GC()
			}
		}
	})

	// Test 2: Struct allocation patterns
	type TestStruct struct {
		ID   int64
		Data [56]byte // Total 64 bytes
	}

	b.Run("StructAllocs/BumpCar", func(b *testing.B) {
		bc, _ := New(64 * 1024)
		defer bc.Release()
		var ptrs [50]*TestStruct
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := 0; j < 50; j++ {
				s, _ := Alloc[TestStruct](bc)
				s.ID = int64(j)
				ptrs[j] = s
			}
			for j := 0; j < 50; j++ {
				Free(bc, ptrs[j])
			}
			bc.Reset()
		}
	})

	b.Run("StructAllocs/Builtin", func(b *testing.B) {
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			structs := make([]*TestStruct, 50)
			for j := 0; j < 50; j++ {
				structs[j] = &TestStruct{ID: int64(j)}
			}
			if i%10 == 0 {
				runtime.GC()
			}
		}
	})

	// Test 3: Buffer reuse pattern
	b.Run("BufferReuse/BumpCar", func(b *testing.B) {
		bc, _ := New(1024 * 1024)
		defer bc.Release()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			// Simulate processing 10 items with temporary buffers
			for j := 0; j < 10; j++ {
				buf1, _ := bc.Allocate(1024, 8)
				buf2, _ := bc.Allocate(2048, 8)
				buf3, _ := bc.Allocate(512, 8)

				buf1[0] = byte(j)
				buf2[0] = byte(j)
				buf3[0] = byte(j)

				bc.Deallocate(buf3)
				bc.Deallocate(buf2)
				bc.Deallocate(buf1)
			}
			// O(1) cleanup
			bc.Reset()
		}
	})

	b.Run("BufferReuse/Builtin", func(b *testing.B) {
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			buffers := make([][]byte, 30)
			for j := 0; j < 10; j++ {
				buffers[j*3] = make([]byte, 1024)
				buffers[j*3+1] = make([]byte, 2048)
				buffers[j*3+2] = make([]byte, 512)

				buffers[j*3][0] = byte(j)
				buffers[j*3+1][0] = byte(j)
				buffers[j*3+2][0] = byte(j)
			}
			if i%5 == 0 {
				runtime.GC()
			}
		}
	})

	// Test 4: No GC pressure test
	b.Run("NoGCPressure/BumpCar", func(b *testing.B) {
		bc, _ := New(1024 * 1024)
		defer bc.Release()

		runtime.GC()

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			buf, _ := bc.Allocate(128, 8)
			bc.Deallocate(buf)
			if i%1000 == 999 {
				bc.Reset()
			}
		}
	})

	b.Run("NoGCPressure/Builtin", func(b *testing.B) {
		runtime.GC()

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = make([]byte, 128)
		}
	})
}
