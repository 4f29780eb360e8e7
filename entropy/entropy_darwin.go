package entropy

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
	"golang.org/x/sys/unix"
)

var (
	getentropyFills = metrics.GetOrCreateCounter(`entropy_fills_total{strategy="getentropy"}`)
	failedFills     = metrics.GetOrCreateCounter(`entropy_fills_total{strategy="none"}`)
)

type darwinSource struct{}

func newSource() Source {
	return darwinSource{}
}

// Fill implements Source. getentropy(2) serves up to 256 bytes per call,
// which matches the fill limit exactly, and either completes or fails hard.
func (darwinSource) Fill(b []byte) error {
	if checkRequest(b) {
		return nil
	}
	if err := unix.GetEntropy(b); err != nil {
		failedFills.Inc()
		return fmt.Errorf("entropy: getentropy: %w", err)
	}
	getentropyFills.Inc()
	return nil
}
