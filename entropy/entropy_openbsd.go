package entropy

import (
	"fmt"
	"unsafe"

	"github.com/VictoriaMetrics/metrics"
	"golang.org/x/sys/unix"
)

var (
	getentropyFills = metrics.GetOrCreateCounter(`entropy_fills_total{strategy="getentropy"}`)
	failedFills     = metrics.GetOrCreateCounter(`entropy_fills_total{strategy="none"}`)
)

type openbsdSource struct{}

func newSource() Source {
	return openbsdSource{}
}

// Fill implements Source. getentropy(2) serves up to 256 bytes per call,
// which matches the fill limit exactly, and either completes or fails hard.
func (openbsdSource) Fill(b []byte) error {
	if checkRequest(b) {
		return nil
	}
	_, _, errno := unix.Syscall(
		unix.SYS_GETENTROPY,
		uintptr(unsafe.Pointer(&b[0])),
		uintptr(len(b)),
		0,
	)
	if errno != 0 {
		failedFills.Inc()
		return fmt.Errorf("entropy: getentropy: %w", errno)
	}
	getentropyFills.Inc()
	return nil
}
