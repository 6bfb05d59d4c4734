package vrf

import (
	"filippo.io/edwards25519"
)

// maxHashToCurveRetries bounds the counter based fallback of
// hashToCurveTryAndIncrement.
const maxHashToCurveRetries = 256

// hashToCurveTryAndIncrement is the draft-13 hash to curve. The candidate
// SHA512(suite ‖ 0x01 ‖ pk ‖ alpha)[:32] with its sign bit cleared is tried
// first; if it does not decode, SHA512(candidate ‖ i) for i = 0..255 are
// tried in order. The returned string is the candidate that decoded, not the
// original digest, and the point is cofactor cleared.
func hashToCurveTryAndIncrement(suite byte, pk, alpha []byte) (*edwards25519.Point, []byte, error) {
	digest := HashSHA512([]byte{suite, DomainHashToCurve}, pk, alpha)
	var rBytes [32]byte
	copy(rBytes[:], digest[:32])
	rBytes[31] &= 0x7f

	if p, err := BytesToPoint(rBytes[:]); err == nil {
		return ClearCofactor(p), rBytes[:], nil
	}

	for i := 0; i < maxHashToCurveRetries; i++ {
		h := HashSHA512(rBytes[:], []byte{byte(i)})
		candidate := make([]byte, 32)
		copy(candidate, h[:32])
		candidate[31] &= 0x7f
		if p, err := BytesToPoint(candidate); err == nil {
			return ClearCofactor(p), candidate, nil
		}
	}
	return nil, nil, ErrInvalidPoint
}

// HashToCurve maps (pk, alpha) to a torsion free point for the given suite
// and returns it with the string that enters the challenge hash.
func HashToCurve(suite byte, pk, alpha []byte) (*edwards25519.Point, []byte, error) {
	switch suite {
	case SuiteDraft03:
		return hashToCurveElligator2(pk, alpha)
	case SuiteDraft13:
		return hashToCurveTryAndIncrement(suite, pk, alpha)
	default:
		return nil, nil, NewErrInvalidInputf("unknown suite 0x%02x", suite)
	}
}
