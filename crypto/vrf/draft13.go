package vrf

import (
	"filippo.io/edwards25519"
)

// draft13 is the batch compatible ECVRF variant with try-and-increment hash
// to curve. Its proofs carry 48 reserved bytes after s, left for the
// hash to curve string a batch verifier would need. They are written as
// zeros and never read.
var draft13 = &ciphersuite{
	suite:     SuiteDraft13,
	proofSize: ProofSizeDraft13,
	hashToCurve: func(pk, alpha []byte) (*edwards25519.Point, []byte, error) {
		return hashToCurveTryAndIncrement(SuiteDraft13, pk, alpha)
	},
	challenge: challengeDraft13,
}

// challengeDraft13 is
// SHA512(0x03 ‖ 0x02 ‖ pk ‖ H ‖ Gamma ‖ U ‖ V ‖ 0x00) truncated to 16 bytes.
func challengeDraft13(pk, hString []byte, gamma, u, v *edwards25519.Point) []byte {
	c := HashSHA512(
		[]byte{SuiteDraft13, DomainChallenge},
		pk,
		hString,
		gamma.Bytes(),
		u.Bytes(),
		v.Bytes(),
		[]byte{0x00},
	)
	out := make([]byte, challengeSize)
	copy(out, c[:challengeSize])
	return out
}

// ProveDraft13 returns the 128-byte proof Gamma ‖ c ‖ s ‖ 48 zero bytes for
// alpha under the 64-byte secret key seed ‖ pk.
func ProveDraft13(sk, alpha []byte) ([]byte, error) {
	return draft13.prove(sk, alpha)
}

// VerifyDraft13 checks proof against pk and alpha and returns the 64-byte
// VRF output on success. The 48 trailing bytes are ignored.
func VerifyDraft13(pk, proof, alpha []byte) ([]byte, error) {
	return draft13.verify(pk, proof, alpha)
}

// ProofToHashDraft13 derives the VRF output from a proof without verifying
// it.
func ProofToHashDraft13(proof []byte) ([]byte, error) {
	return draft13.proofToHash(proof)
}

// KeypairFromSeedDraft13 derives the same keypair as KeypairFromSeedDraft03.
func KeypairFromSeedDraft13(seed []byte) (sk, pk []byte, err error) {
	return KeypairFromSeed(seed)
}
