// Package entropy provides direct access to the operating system's
// cryptographically secure randomness facility.
//
// The package fills caller-supplied buffers of up to MaxFill bytes and
// reports hard success or hard failure. It never substitutes a
// non-cryptographic generator: when every platform strategy is exhausted,
// the fill fails and the caller must abort whatever needed the bytes.
package entropy

import (
	"fmt"
)

// MaxFill is the maximum number of bytes a single fill may request.
// Callers needing more must fill repeatedly.
const MaxFill = 256

// Source fills buffers with operating system entropy.
type Source interface {
	// Fill overwrites b with cryptographically secure random bytes.
	// On a nil return, all of b has been filled. On error, the contents
	// of b are unspecified and must not be used as random material.
	// Fill panics if len(b) exceeds MaxFill.
	Fill(b []byte) error
}

// NewSource returns a new Source backed by the platform's entropy facility.
// Sources are safe for concurrent use and hold no open resources between
// calls.
func NewSource() Source {
	return newSource()
}

var defaultSource = newSource()

// Fill overwrites b with OS entropy using the default source.
func Fill(b []byte) error {
	return defaultSource.Fill(b)
}

// Bytes returns n freshly filled bytes of OS entropy. n must not exceed
// MaxFill.
func Bytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if err := Fill(b); err != nil {
		return nil, err
	}
	return b, nil
}

// checkRequest enforces the fill contract shared by all platform sources.
// Oversize requests are a programming error, not a runtime condition.
func checkRequest(b []byte) (empty bool) {
	if len(b) > MaxFill {
		panic(fmt.Sprintf("entropy: requested %d bytes, single fill is limited to %d", len(b), MaxFill))
	}
	return len(b) == 0
}
