package entropy

import (
	"errors"
	"fmt"

	"github.com/VictoriaMetrics/metrics"
	"github.com/hashicorp/go-multierror"
	"github.com/tevino/abool"
	"golang.org/x/sys/unix"
)

// defaultDevice is the character special device backing the second
// strategy of the fill chain.
const defaultDevice = "/dev/urandom"

var (
	getrandomFills = metrics.GetOrCreateCounter(`entropy_fills_total{strategy="getrandom"}`)
	deviceFills    = metrics.GetOrCreateCounter(`entropy_fills_total{strategy="device"}`)
	legacyFills    = metrics.GetOrCreateCounter(`entropy_fills_total{strategy="sysctl"}`)
	failedFills    = metrics.GetOrCreateCounter(`entropy_fills_total{strategy="none"}`)
)

// failure classes of the strategy calls. The chain decides retry,
// fallback or abort based on the class, never on raw error numbers.
type failure int

const (
	failTransient   failure = iota // interrupted or would block, retry in place
	failUnavailable                // facility missing on this kernel, fall back
	failHard                       // genuine runtime problem, surface it
)

func classify(err error) failure {
	switch {
	case errors.Is(err, unix.EINTR), errors.Is(err, unix.EAGAIN):
		return failTransient
	case errors.Is(err, unix.ENOSYS):
		return failUnavailable
	default:
		return failHard
	}
}

// linuxSource runs the three-strategy fill chain: getrandom(2) first, then
// the random device, then the legacy sysctl interface where the
// architecture still exposes it.
type linuxSource struct {
	// getrandomWorks latches to false the first time the kernel reports
	// ENOSYS and is never set again for the lifetime of the process.
	getrandomWorks *abool.AtomicBool

	getrandom    func(p []byte, flags int) (int, error)
	devicePath   string
	entropyCount func(fd int) (int, error)
	legacy       func(b []byte) error
}

// sourceOption adjusts a linuxSource. Used by tests to substitute the
// kernel interfaces.
type sourceOption func(*linuxSource)

func newLinuxSource(opts ...sourceOption) *linuxSource {
	s := &linuxSource{
		getrandomWorks: abool.NewBool(true),
		getrandom:      unix.Getrandom,
		devicePath:     defaultDevice,
		entropyCount: func(fd int) (int, error) {
			return unix.IoctlGetInt(fd, unix.RNDGETENTCNT)
		},
		legacy: legacySysctl,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newSource() Source {
	return newLinuxSource()
}

// Fill implements Source.
func (s *linuxSource) Fill(b []byte) error {
	if checkRequest(b) {
		return nil
	}

	if s.getrandomWorks.IsSet() {
		err := s.fillGetrandom(b)
		if err == nil {
			getrandomFills.Inc()
			return nil
		}
		if classify(err) == failUnavailable {
			// kernel predates getrandom(2), skip it from now on
			s.getrandomWorks.UnSet()
		} else {
			// a real runtime problem, surface it instead of masking
			// it with a fallback
			failedFills.Inc()
			return fmt.Errorf("entropy: getrandom: %w", err)
		}
	}

	var failures *multierror.Error

	err := s.fillDevice(b)
	if err == nil {
		deviceFills.Inc()
		return nil
	}
	failures = multierror.Append(failures, err)

	err = s.legacy(b)
	if err == nil {
		legacyFills.Inc()
		return nil
	}
	failures = multierror.Append(failures, err)

	failedFills.Inc()
	return fmt.Errorf("entropy: all strategies failed: %w", failures.ErrorOrNil())
}

// fillGetrandom requests the full length from getrandom(2), continuing
// after short writes and signal interruptions.
func (s *linuxSource) fillGetrandom(b []byte) error {
	for filled := 0; filled < len(b); {
		n, err := s.getrandom(b[filled:], 0)
		if err != nil {
			if classify(err) == failTransient {
				continue
			}
			return err
		}
		filled += n
	}
	return nil
}

// fillDevice reads from the random device after verifying that the opened
// node actually is a character special device that answers the entropy
// count query. The descriptor never outlives the call.
func (s *linuxSource) fillDevice(b []byte) error {
	fd, err := s.openDevice()
	if err != nil {
		return err
	}
	defer func() { _ = unix.Close(fd) }()

	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		return fmt.Errorf("stat %s: %w", s.devicePath, err)
	}
	if stat.Mode&unix.S_IFMT != unix.S_IFCHR {
		return fmt.Errorf("%s is not a character device", s.devicePath)
	}
	if _, err := s.entropyCount(fd); err != nil {
		return fmt.Errorf("entropy count query on %s: %w", s.devicePath, err)
	}

	for filled := 0; filled < len(b); {
		n, err := unix.Read(fd, b[filled:])
		if err != nil {
			if classify(err) == failTransient {
				continue
			}
			return fmt.Errorf("read %s: %w", s.devicePath, err)
		}
		if n == 0 {
			return fmt.Errorf("read %s: unexpected end of stream", s.devicePath)
		}
		filled += n
	}
	return nil
}

func (s *linuxSource) openDevice() (int, error) {
	for {
		fd, err := unix.Open(s.devicePath, unix.O_RDONLY|unix.O_NOFOLLOW|unix.O_CLOEXEC, 0)
		if err == nil {
			return fd, nil
		}
		if errors.Is(err, unix.EINTR) {
			// interrupted before the descriptor existed, try again
			continue
		}
		return -1, fmt.Errorf("open %s: %w", s.devicePath, err)
	}
}
