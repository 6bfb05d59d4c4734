package vrf

import (
	"filippo.io/edwards25519"
)

// draft03 is ECVRF-ED25519-SHA512-Elligator2 (draft-irtf-cfrg-vrf-03) as
// implemented by libsodium's crypto_vrf_ietfdraft03.
var draft03 = &ciphersuite{
	suite:       SuiteDraft03,
	proofSize:   ProofSizeDraft03,
	hashToCurve: hashToCurveElligator2,
	challenge:   challengeDraft03,
}

// challengeDraft03 is SHA512(0x04 ‖ 0x02 ‖ H ‖ Gamma ‖ U ‖ V) truncated to
// 16 bytes. The public key is not part of it.
func challengeDraft03(_, hString []byte, gamma, u, v *edwards25519.Point) []byte {
	c := HashSHA512(
		[]byte{SuiteDraft03, DomainChallenge},
		hString,
		gamma.Bytes(),
		u.Bytes(),
		v.Bytes(),
	)
	out := make([]byte, challengeSize)
	copy(out, c[:challengeSize])
	return out
}

// ProveDraft03 returns the 80-byte proof Gamma ‖ c ‖ s for alpha under the
// 64-byte secret key seed ‖ pk.
func ProveDraft03(sk, alpha []byte) ([]byte, error) {
	return draft03.prove(sk, alpha)
}

// VerifyDraft03 checks proof against pk and alpha and returns the 64-byte
// VRF output on success.
func VerifyDraft03(pk, proof, alpha []byte) ([]byte, error) {
	return draft03.verify(pk, proof, alpha)
}

// ProofToHashDraft03 derives the VRF output from a proof without verifying
// it. Only use it on proofs that were verified elsewhere.
func ProofToHashDraft03(proof []byte) ([]byte, error) {
	return draft03.proofToHash(proof)
}

// KeypairFromSeedDraft03 derives a keypair from a 32-byte seed.
func KeypairFromSeedDraft03(seed []byte) (sk, pk []byte, err error) {
	return KeypairFromSeed(seed)
}
