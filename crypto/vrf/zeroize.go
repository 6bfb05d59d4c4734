package vrf

import (
	"runtime"

	"filippo.io/edwards25519"
)

// wipeBytes overwrites b with zeros. Call it deferred right after secret
// material is created so every return path clears it.
func wipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// wipeScalar resets s to zero.
func wipeScalar(s *edwards25519.Scalar) {
	if s == nil {
		return
	}
	s.Set(edwards25519.NewScalar())
}

// secretScope collects secret buffers and scalars and wipes all of them on
// Close.
//
//	scope := new(secretScope)
//	defer scope.Close()
//	x := scope.Scalar(...)
type secretScope struct {
	buffers [][]byte
	scalars []*edwards25519.Scalar
}

func (s *secretScope) Bytes(b []byte) []byte {
	s.buffers = append(s.buffers, b)
	return b
}

func (s *secretScope) Scalar(x *edwards25519.Scalar) *edwards25519.Scalar {
	s.scalars = append(s.scalars, x)
	return x
}

func (s *secretScope) Close() {
	for _, b := range s.buffers {
		wipeBytes(b)
	}
	for _, x := range s.scalars {
		wipeScalar(x)
	}
	s.buffers = nil
	s.scalars = nil
}

// Wipe zeroes a caller owned secret key or seed buffer.
func Wipe(b []byte) {
	wipeBytes(b)
}
