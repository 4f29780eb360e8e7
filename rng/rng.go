package rng

import (
	"fmt"
	"sync"

	"github.com/safing/portbase/config"
	"github.com/safing/portbase/modules"

	"github.com/osrand/osrand/entropy"
)

const selfCheckIntervalKey = "random/self_check_interval"

var (
	source      entropy.Source
	sourceLock  sync.Mutex
	sourceReady = false

	selfCheckInterval config.IntOption

	shutdownSignal = make(chan struct{})
	shutdownOnce   sync.Once
)

func init() {
	modules.Register("random", prep, Start, stop, "base")
}

func prep() error {
	err := config.Register(&config.Option{
		Name:            "Entropy Self-Check Interval",
		Key:             selfCheckIntervalKey,
		Description:     "Minutes between health probes of the OS entropy source. Set to 0 to disable the periodic probe.",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		ReleaseLevel:    config.ReleaseLevelExperimental,
		DefaultValue:    10,
		ValidationRegex: "^[0-9]{1,4}$",
	})
	if err != nil {
		return err
	}
	selfCheckInterval = config.Concurrent.GetAsInt(selfCheckIntervalKey, 10)

	return nil
}

// Start initializes the OS entropy source and proves it with one fill
// before declaring readiness. Normally, this should only be called by the
// modules package.
func Start() (err error) {
	sourceLock.Lock()
	defer sourceLock.Unlock()

	source = entropy.NewSource()

	probe := make([]byte, 32)
	if err := source.Fill(probe); err != nil {
		return fmt.Errorf("rng: entropy source failed the startup fill: %w", err)
	}
	sourceReady = true

	go selfCheck()

	return nil
}

func stop() error {
	shutdownOnce.Do(func() {
		close(shutdownSignal)
	})
	return nil
}
