package entropy

import (
	"fmt"
	"unsafe"

	"github.com/VictoriaMetrics/metrics"
	"golang.org/x/sys/windows"
)

var (
	bcryptFills = metrics.GetOrCreateCounter(`entropy_fills_total{strategy="bcrypt"}`)
	failedFills = metrics.GetOrCreateCounter(`entropy_fills_total{strategy="none"}`)
)

var (
	bcrypt              = windows.NewLazySystemDLL("bcrypt.dll")
	procBCryptGenRandom = bcrypt.NewProc("BCryptGenRandom")
)

// BCRYPT_USE_SYSTEM_PREFERRED_RNG: let the system pick the RNG, no
// algorithm handle needed.
const useSystemPreferredRNG = 0x00000002

type windowsSource struct{}

func newSource() Source {
	return windowsSource{}
}

// Fill implements Source by a single BCryptGenRandom call against the
// system-preferred RNG.
func (windowsSource) Fill(b []byte) error {
	if checkRequest(b) {
		return nil
	}

	status, _, _ := procBCryptGenRandom.Call(
		0,
		uintptr(unsafe.Pointer(&b[0])),
		uintptr(len(b)),
		useSystemPreferredRNG,
	)
	// NTSTATUS: negative values are failures
	if int32(status) < 0 {
		failedFills.Inc()
		return fmt.Errorf("entropy: BCryptGenRandom failed with status 0x%08x", uint32(status))
	}
	bcryptFills.Inc()
	return nil
}
