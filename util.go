package dodgems

import "unsafe"

// roundUpTo rounds v up to the next multiple of align, which must be a power
// of two.
func roundUpTo(v, align uintptr) uintptr {
	forceCarry := align - 1
	return (v + forceCarry) &^ forceCarry
}

func isPowerOfTwo(v int) bool {
	return v > 0 && v&(v-1) == 0
}

func isAlignedTo(addr uintptr, align int) bool {
	return addr&uintptr(align-1) == 0
}

func addressOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(&b[0]))
}
