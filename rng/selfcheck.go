package rng

import (
	"bytes"
	"time"

	"github.com/safing/portbase/log"
)

// selfCheck periodically proves that the OS entropy source still serves
// distinct fills. It only observes and reports - it never feeds, reseeds
// or repairs anything.
func selfCheck() {
	for {
		interval := time.Duration(selfCheckInterval()) * time.Minute
		if interval <= 0 {
			// probing is disabled, look at the option again in a minute
			interval = time.Minute
		}

		select {
		case <-time.After(interval):
			if selfCheckInterval() > 0 {
				probeEntropy()
			}
		case <-shutdownSignal:
			return
		}
	}
}

func probeEntropy() {
	first, err := Bytes(32)
	if err != nil {
		log.Errorf("rng: entropy self-check failed: %s", err)
		return
	}
	second, err := Bytes(32)
	if err != nil {
		log.Errorf("rng: entropy self-check failed: %s", err)
		return
	}

	if bytes.Equal(first, second) {
		log.Criticalf("rng: entropy source returned identical consecutive draws, randomness must be considered compromised")
	}
}
