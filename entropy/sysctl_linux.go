//go:build 386 || amd64 || arm

package entropy

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Last-resort strategy: read the kernel's random UUID generator through the
// legacy _sysctl(2) interface. The interface has been scheduled for removal
// for years and newer kernels may reject it, but where it answers it does so
// without needing a file descriptor, which makes it useful under descriptor
// exhaustion or in a chroot without device nodes.

const (
	ctlKern    = 1
	kernRandom = 40
	randomUUID = 6

	// the UUID node yields at most 16 bytes per query
	sysctlChunk = 16
)

type sysctlArgs struct {
	name    *int32
	nlen    int32
	oldval  unsafe.Pointer
	oldlenp *uintptr
	newval  unsafe.Pointer
	newlen  uintptr
	unused  [4]uintptr
}

func legacySysctl(b []byte) error {
	mib := [3]int32{ctlKern, kernRandom, randomUUID}

	for filled := 0; filled < len(b); {
		chunk := uintptr(len(b) - filled)
		if chunk > sysctlChunk {
			chunk = sysctlChunk
		}

		args := sysctlArgs{
			name:    &mib[0],
			nlen:    int32(len(mib)),
			oldval:  unsafe.Pointer(&b[filled]),
			oldlenp: &chunk,
		}
		_, _, errno := unix.Syscall(unix.SYS__SYSCTL, uintptr(unsafe.Pointer(&args)), 0, 0)
		if errno != 0 {
			return fmt.Errorf("sysctl kernel.random.uuid: %w", errno)
		}
		if chunk == 0 {
			return fmt.Errorf("sysctl kernel.random.uuid: empty result")
		}
		filled += int(chunk)
	}
	return nil
}
