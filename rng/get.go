package rng

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/osrand/osrand/entropy"
)

var (
	// Reader provides a global instance to read from the OS entropy source.
	Reader io.Reader
)

// reader provides an io.Reader interface.
type reader struct{}

func init() {
	Reader = reader{}
}

func getSource() (entropy.Source, error) {
	sourceLock.Lock()
	defer sourceLock.Unlock()

	if !sourceReady {
		return nil, errors.New("rng: not ready yet")
	}
	return source, nil
}

// Read fills b with OS entropy. Requests beyond the per-fill limit are
// broken into fills of at most entropy.MaxFill bytes. On error, n bytes
// have been filled and the rest of b must not be used as random material.
func Read(b []byte) (n int, err error) {
	src, err := getSource()
	if err != nil {
		return 0, err
	}

	for n < len(b) {
		end := n + entropy.MaxFill
		if end > len(b) {
			end = len(b)
		}
		if err := src.Fill(b[n:end]); err != nil {
			return n, err
		}
		n = end
	}
	return n, nil
}

// Read implements the io.Reader interface.
func (r reader) Read(b []byte) (n int, err error) {
	return Read(b)
}

// Bytes allocates a new byte slice of given length and fills it with OS
// entropy.
func Bytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Salt returns n bytes of OS entropy for use as a key derivation salt.
// The caller must check the error before using the salt.
func Salt(n int) ([]byte, error) {
	return Bytes(n)
}

// Number returns a random number from 0 to (incl.) max.
func Number(max uint64) (uint64, error) {
	if max == 0 {
		return 0, nil
	}
	if max == math.MaxUint64 {
		// every possible draw is in range, nothing to reject
		randomBytes, err := Bytes(8)
		if err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint64(randomBytes), nil
	}

	// reject draws beyond the largest multiple of the range size to
	// avoid modulo bias
	rangeSize := max + 1
	secureLimit := math.MaxUint64 - (math.MaxUint64 % rangeSize)

	for {
		randomBytes, err := Bytes(8)
		if err != nil {
			return 0, err
		}

		candidate := binary.LittleEndian.Uint64(randomBytes)
		if candidate < secureLimit {
			return candidate % rangeSize, nil
		}
	}
}
