package vrf

import (
	"crypto/subtle"

	"filippo.io/edwards25519"
)

// ciphersuite holds everything that differs between the draft-03 and the
// draft-13 constructions. The prove and verify sequences are shared.
type ciphersuite struct {
	suite     byte
	proofSize int

	hashToCurve func(pk, alpha []byte) (*edwards25519.Point, []byte, error)
	challenge   func(pk, hString []byte, gamma, u, v *edwards25519.Point) []byte
}

func (cs *ciphersuite) prove(sk, alpha []byte) ([]byte, error) {
	if len(sk) != SecretKeySize {
		return nil, ErrInvalidSecretKey
	}
	pk := sk[SeedSize:]
	if _, err := decodePublicKey(pk); err != nil {
		return nil, ErrInvalidSecretKey
	}

	scope := new(secretScope)
	defer scope.Close()

	var az [64]byte
	scope.Bytes(az[:])
	x, err := expandSecret(sk[:SeedSize], &az)
	if err != nil {
		return nil, err
	}
	scope.Scalar(x)

	h, hString, err := cs.hashToCurve(pk, alpha)
	if err != nil {
		return nil, err
	}

	gamma := new(edwards25519.Point).ScalarMult(x, h)

	nonce := HashSHA512(az[32:], hString)
	scope.Bytes(nonce[:])
	k, err := edwards25519.NewScalar().SetUniformBytes(nonce[:])
	if err != nil {
		return nil, err
	}
	scope.Scalar(k)

	u := new(edwards25519.Point).ScalarBaseMult(k)
	v := new(edwards25519.Point).ScalarMult(k, h)

	c := cs.challenge(pk, hString, gamma, u, v)
	s := edwards25519.NewScalar().MultiplyAdd(challengeScalar(c), x, k)

	proof := make([]byte, cs.proofSize)
	copy(proof[:pointSize], gamma.Bytes())
	copy(proof[pointSize:pointSize+challengeSize], c)
	copy(proof[pointSize+challengeSize:pointSize+challengeSize+scalarSize], s.Bytes())
	return proof, nil
}

// decodeProof splits Gamma ‖ c ‖ s. Gamma must be a canonical point; s is
// reduced rather than rejected. Trailing bytes past s are not inspected.
func (cs *ciphersuite) decodeProof(proof []byte) (gamma *edwards25519.Point, c []byte, s *edwards25519.Scalar, err error) {
	if len(proof) != cs.proofSize {
		return nil, nil, nil, ErrInvalidProof
	}
	gamma, err = BytesToPoint(proof[:pointSize])
	if err != nil {
		return nil, nil, nil, ErrInvalidProof
	}
	c = proof[pointSize : pointSize+challengeSize]
	s = BytesToScalar(proof[pointSize+challengeSize : pointSize+challengeSize+scalarSize])
	return gamma, c, s, nil
}

func (cs *ciphersuite) verify(pk, proof, alpha []byte) ([]byte, error) {
	y, err := decodePublicKey(pk)
	if err != nil {
		return nil, err
	}
	gamma, c, s, err := cs.decodeProof(proof)
	if err != nil {
		return nil, err
	}

	h, hString, err := cs.hashToCurve(pk, alpha)
	if err != nil {
		return nil, err
	}

	cScalar := challengeScalar(c)

	// U = s·B - c·Y, V = s·H - c·Gamma. c·Y is computed exactly and then
	// subtracted so points with a torsion component behave like libsodium.
	cY := new(edwards25519.Point).ScalarMult(cScalar, y)
	u := new(edwards25519.Point).ScalarBaseMult(s)
	u.Subtract(u, cY)

	cGamma := new(edwards25519.Point).ScalarMult(cScalar, gamma)
	v := new(edwards25519.Point).ScalarMult(s, h)
	v.Subtract(v, cGamma)

	cPrime := cs.challenge(pk, hString, gamma, u, v)
	if subtle.ConstantTimeCompare(c, cPrime) != 1 {
		return nil, ErrVerificationFailed
	}
	return proofOutput(cs.suite, gamma), nil
}

func (cs *ciphersuite) proofToHash(proof []byte) ([]byte, error) {
	gamma, _, _, err := cs.decodeProof(proof)
	if err != nil {
		return nil, err
	}
	return proofOutput(cs.suite, gamma), nil
}
