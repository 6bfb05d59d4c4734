package vrf

import (
	"filippo.io/edwards25519"
	"filippo.io/edwards25519/field"
)

// Montgomery A coefficient of Curve25519.
const curve25519A = 486662

// hashToCurveElligator2 is the draft-03 ECVRF_hash_to_curve: the first half
// of SHA512(suite ‖ 0x01 ‖ pk ‖ alpha), sign bit cleared, mapped with
// Elligator2 and cofactor cleared. The returned string is the compressed
// point, which is what the challenge hashes.
func hashToCurveElligator2(pk, alpha []byte) (*edwards25519.Point, []byte, error) {
	r := HashSHA512([]byte{SuiteDraft03, DomainHashToCurve}, pk, alpha)
	r[31] &= 0x7f

	h, err := fromUniform(r[:32])
	if err != nil {
		return nil, nil, err
	}
	return h, h.Bytes(), nil
}

// fromUniform maps 32 uniform bytes to a point of the prime order subgroup
// the way libsodium's ge25519_from_uniform does.
func fromUniform(r []byte) (*edwards25519.Point, error) {
	var s [32]byte
	copy(s[:], r)
	xSign := s[31] & 0x80
	s[31] &= 0x7f

	one := new(field.Element).One()
	a := new(field.Element).Mult32(one, curve25519A)

	rr2, err := new(field.Element).SetBytes(s[:])
	if err != nil {
		return nil, ErrInvalidPoint
	}
	// x = -A / (1 + 2r^2)
	rr2.Square(rr2)
	rr2.Add(rr2, rr2)
	rr2.Add(rr2, one)
	rr2.Invert(rr2)
	x := new(field.Element).Mult32(rr2, curve25519A)
	x.Negate(x)

	// e = x^3 + A x^2 + x
	x2 := new(field.Element).Square(x)
	x3 := new(field.Element).Multiply(x2, x)
	e := new(field.Element).Add(x3, x)
	ax2 := new(field.Element).Mult32(x2, curve25519A)
	e.Add(e, ax2)

	// when e is not a square the other candidate -x - A is used
	eIsMinus1 := int(legendre(e).Bytes()[1] & 1)
	eIsNotMinus1 := eIsMinus1 ^ 1
	negX := new(field.Element).Negate(x)
	x.Select(x, negX, eIsNotMinus1)
	offset := new(field.Element).Zero()
	offset.Select(offset, a, eIsNotMinus1)
	x.Subtract(x, offset)

	// Montgomery u to Edwards y = (u - 1) / (u + 1)
	num := new(field.Element).Subtract(x, one)
	den := new(field.Element).Add(x, one)
	den.Invert(den)
	y := new(field.Element).Multiply(num, den)

	enc := y.Bytes()
	enc[31] |= xSign

	p, err := new(edwards25519.Point).SetBytes(enc)
	if err != nil {
		return nil, ErrInvalidPoint
	}
	return p.MultByCofactor(p), nil
}

// legendre returns z^((p-1)/2): one for non-zero squares, zero for zero and
// p-1 otherwise. (p-1)/2 = 4·(p-5)/8 + 2.
func legendre(z *field.Element) *field.Element {
	t := new(field.Element).Pow22523(z)
	t.Square(t)
	t.Square(t)
	z2 := new(field.Element).Square(z)
	return t.Multiply(t, z2)
}
