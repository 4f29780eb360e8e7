package entropy

import (
	"errors"
	"fmt"

	"github.com/VictoriaMetrics/metrics"
	"golang.org/x/sys/unix"
)

var (
	getrandomFills = metrics.GetOrCreateCounter(`entropy_fills_total{strategy="getrandom"}`)
	failedFills    = metrics.GetOrCreateCounter(`entropy_fills_total{strategy="none"}`)
)

type freebsdSource struct{}

func newSource() Source {
	return freebsdSource{}
}

// Fill implements Source via getrandom(2), continuing after short writes
// and signal interruptions.
func (freebsdSource) Fill(b []byte) error {
	if checkRequest(b) {
		return nil
	}
	for filled := 0; filled < len(b); {
		n, err := unix.Getrandom(b[filled:], 0)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			failedFills.Inc()
			return fmt.Errorf("entropy: getrandom: %w", err)
		}
		filled += n
	}
	getrandomFills.Inc()
	return nil
}
