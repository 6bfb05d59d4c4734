package vrf

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidProof is returned when proof bytes cannot be parsed.
	ErrInvalidProof = errors.New("vrf: invalid proof")
	// ErrInvalidPublicKey is returned when a public key does not decode to a usable point.
	ErrInvalidPublicKey = errors.New("vrf: invalid public key")
	// ErrInvalidSecretKey is returned when a secret key has the wrong size or an
	// undecodable public half.
	ErrInvalidSecretKey = errors.New("vrf: invalid secret key")
	// ErrInvalidPoint is returned when bytes are not a canonical curve point encoding.
	ErrInvalidPoint = errors.New("vrf: invalid curve point")
	// ErrInvalidScalar is returned when bytes are not a canonical scalar.
	ErrInvalidScalar = errors.New("vrf: invalid scalar")
	// ErrVerificationFailed is returned for well formed proofs whose challenge
	// does not match.
	ErrVerificationFailed = errors.New("vrf: verification failed")
)

// ErrInvalidInput is an operational failure unrelated to cryptographic
// validity: storage I/O, randomness, unimplemented backends.
type ErrInvalidInput struct {
	Message string
}

func NewErrInvalidInput(message string) ErrInvalidInput {
	return ErrInvalidInput{Message: message}
}

func NewErrInvalidInputf(format string, args ...interface{}) ErrInvalidInput {
	return ErrInvalidInput{Message: fmt.Sprintf(format, args...)}
}

func (e ErrInvalidInput) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Message)
}

// IsInvalidInput reports whether err is, or wraps, an ErrInvalidInput.
func IsInvalidInput(err error) bool {
	var target ErrInvalidInput
	return errors.As(err, &target)
}
