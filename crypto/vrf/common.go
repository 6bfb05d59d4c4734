package vrf

import (
	"crypto/sha512"

	"filippo.io/edwards25519"
)

const (
	SeedSize      = 32
	PublicKeySize = 32
	SecretKeySize = 64
	OutputSize    = sha512.Size

	ProofSizeDraft03 = 80
	ProofSizeDraft13 = 128

	// challenge is truncated to the first half of a scalar
	challengeSize = 16
	pointSize     = 32
	scalarSize    = 32
)

// Suite identifiers and domain separation bytes.
const (
	SuiteDraft03 byte = 0x04
	SuiteDraft13 byte = 0x03

	DomainHashToCurve byte = 0x01
	DomainChallenge   byte = 0x02
	DomainOutput      byte = 0x03
)

// 2^255 - 19, little endian
var fieldPrime = [32]byte{
	0xed, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f,
}

// isCanonicalY reports whether the y coordinate encoded in b (sign bit
// ignored) is smaller than the field prime.
func isCanonicalY(b []byte) bool {
	for i := 31; i >= 0; i-- {
		v := b[i]
		if i == 31 {
			v &= 0x7f
		}
		if v < fieldPrime[i] {
			return true
		}
		if v > fieldPrime[i] {
			return false
		}
	}
	// equal to p
	return false
}

// BytesToPoint decodes a canonical compressed Edwards point.
func BytesToPoint(b []byte) (*edwards25519.Point, error) {
	if len(b) != pointSize || !isCanonicalY(b) {
		return nil, ErrInvalidPoint
	}
	p, err := new(edwards25519.Point).SetBytes(b)
	if err != nil {
		return nil, ErrInvalidPoint
	}
	return p, nil
}

// PointToBytes returns the canonical 32-byte compression of p.
func PointToBytes(p *edwards25519.Point) []byte {
	return p.Bytes()
}

// BytesToScalar interprets b as a little endian integer and reduces it mod L.
// It never fails; inputs shorter than 32 bytes are zero extended and longer
// inputs are truncated to 32 bytes.
func BytesToScalar(b []byte) *edwards25519.Scalar {
	var wide [64]byte
	copy(wide[:scalarSize], b)
	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		// unreachable: wide is always 64 bytes
		panic(err)
	}
	return s
}

// BytesToCanonicalScalar decodes b as a scalar and rejects values >= L.
func BytesToCanonicalScalar(b []byte) (*edwards25519.Scalar, error) {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(b)
	if err != nil {
		return nil, ErrInvalidScalar
	}
	return s, nil
}

// ScalarToBytes returns the canonical little endian encoding of s.
func ScalarToBytes(s *edwards25519.Scalar) []byte {
	return s.Bytes()
}

// ClampScalar applies Ed25519 clamping: the result is a multiple of the
// cofactor in [2^254, 2^255).
func ClampScalar(b [32]byte) [32]byte {
	b[0] &= 248
	b[31] &= 127
	b[31] |= 64
	return b
}

// ClearCofactor multiplies p by the cofactor 8.
func ClearCofactor(p *edwards25519.Point) *edwards25519.Point {
	return new(edwards25519.Point).MultByCofactor(p)
}

// IsSmallOrder reports whether p lies in the torsion subgroup of order 8.
func IsSmallOrder(p *edwards25519.Point) bool {
	return ClearCofactor(p).Equal(edwards25519.NewIdentityPoint()) == 1
}

// HashSHA512 hashes the concatenation of parts.
func HashSHA512(parts ...[]byte) [64]byte {
	h := sha512.New()
	for _, p := range parts {
		h.Write(p) //nolint:errcheck // hash.Hash never returns an error
	}
	var out [64]byte
	h.Sum(out[:0])
	return out
}

// expandSecret writes SHA512(seed) into az and returns the clamped secret
// scalar taken from its first half. The caller owns az and must wipe it.
func expandSecret(seed []byte, az *[64]byte) (*edwards25519.Scalar, error) {
	*az = HashSHA512(seed)
	x, err := edwards25519.NewScalar().SetBytesWithClamping(az[:32])
	if err != nil {
		return nil, ErrInvalidSecretKey
	}
	return x, nil
}

// decodePublicKey decodes pk the way libsodium's verify does: canonical,
// decodable and not of small order.
func decodePublicKey(pk []byte) (*edwards25519.Point, error) {
	if len(pk) != PublicKeySize {
		return nil, ErrInvalidPublicKey
	}
	y, err := BytesToPoint(pk)
	if err != nil {
		return nil, ErrInvalidPublicKey
	}
	if IsSmallOrder(y) {
		return nil, ErrInvalidPublicKey
	}
	return y, nil
}

// challengeScalar zero pads a truncated challenge into a scalar.
func challengeScalar(c []byte) *edwards25519.Scalar {
	var buf [scalarSize]byte
	copy(buf[:challengeSize], c)
	s, err := edwards25519.NewScalar().SetCanonicalBytes(buf[:])
	if err != nil {
		// unreachable: a 128-bit value is always below L
		panic(err)
	}
	return s
}

// proofOutput computes SHA512(suite ‖ 0x03 ‖ 8·Gamma).
func proofOutput(suite byte, gamma *edwards25519.Point) []byte {
	out := HashSHA512([]byte{suite, DomainOutput}, ClearCofactor(gamma).Bytes())
	return out[:]
}
