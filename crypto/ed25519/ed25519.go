package ed25519

import (
	"bytes"
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"

	"github.com/Finschia/cardano-vrf/crypto/vrf"
	"github.com/Finschia/cardano-vrf/libs/std/crypto/rand"
)

const (
	KeyType = "ed25519"
	// PubKeySize is the size, in bytes, of public keys as used in this package.
	PubKeySize = 32
	// PrivateKeySize is the size, in bytes, of private keys as used in this package.
	PrivateKeySize = 64
	// SignatureSize is the size of an Ed25519 signature.
	SignatureSize = 64
	// SeedSize is the size, in bytes, of private key seeds.
	SeedSize = 32
)

// ZIP-215 verification matches what ed25519consensus accepts.
var verifyOptions = &ed25519.Options{
	Verify: ed25519.VerifyOptionsZIP_215,
}

// PrivKey implements the 64-byte seed ‖ pk secret key shared by Ed25519
// signing and both VRF suites.
type PrivKey []byte

// Bytes returns the privkey byte format.
func (privKey PrivKey) Bytes() []byte {
	return []byte(privKey)
}

// Sign produces an Ed25519 signature on the provided message.
func (privKey PrivKey) Sign(msg []byte) ([]byte, error) {
	if len(privKey) != PrivateKeySize {
		return nil, vrf.ErrInvalidSecretKey
	}
	return ed25519.Sign(ed25519.PrivateKey(privKey), msg), nil
}

// VRFProve produces a draft-03 proof, the format leader election uses.
func (privKey PrivKey) VRFProve(message []byte) (vrf.Proof, error) {
	return vrf.Prove(vrf.Draft03, privKey, message)
}

// VRFProveWith produces a proof under the given suite.
func (privKey PrivKey) VRFProveWith(suite vrf.Suite, message []byte) (vrf.Proof, error) {
	return vrf.Prove(suite, privKey, message)
}

// PubKey gets the corresponding public key from the private key.
//
// Panics if the private key is not initialized.
func (privKey PrivKey) PubKey() PubKey {
	// If the latter 32 bytes of the privkey are all zero, privkey is not
	// initialized.
	initialized := false
	for _, v := range privKey[SeedSize:] {
		if v != 0 {
			initialized = true
			break
		}
	}

	if !initialized {
		panic("Expected ed25519 PrivKey to include concatenated pubkey bytes")
	}

	pubkeyBytes := make([]byte, PubKeySize)
	copy(pubkeyBytes, privKey[SeedSize:])
	return PubKey(pubkeyBytes)
}

// Seed returns a copy of the 32-byte seed.
func (privKey PrivKey) Seed() []byte {
	seed, err := vrf.SeedFromSecretKey(privKey)
	if err != nil {
		return nil
	}
	return seed
}

// Equals compares keys in constant time.
func (privKey PrivKey) Equals(other PrivKey) bool {
	return subtle.ConstantTimeCompare(privKey[:], other[:]) == 1
}

func (privKey PrivKey) Type() string {
	return KeyType
}

// Wipe zeroes the key in place.
func (privKey PrivKey) Wipe() {
	vrf.Wipe(privKey)
}

// GenPrivKey generates a new ed25519 private key.
// It uses OS randomness in conjunction with the current global random seed
// to generate the private key.
func GenPrivKey() PrivKey {
	privKey, err := genPrivKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return privKey
}

// GenPrivKeyFromReader is GenPrivKey with an explicit randomness source.
func GenPrivKeyFromReader(r io.Reader) (PrivKey, error) {
	return genPrivKey(r)
}

func genPrivKey(r io.Reader) (PrivKey, error) {
	sk, _, err := vrf.GenerateKeypair(r)
	if err != nil {
		return nil, err
	}
	return PrivKey(sk), nil
}

// PrivKeyFromBytes checks that b is a consistent seed ‖ pk secret key.
func PrivKeyFromBytes(b []byte) (PrivKey, error) {
	if _, err := vrf.SecretKeyToPublicKey(b); err != nil {
		return nil, err
	}
	privKey := make(PrivKey, PrivateKeySize)
	copy(privKey, b)
	return privKey, nil
}

//-------------------------------------

// PubKey implements the Ed25519 verification key.
type PubKey []byte

// Bytes returns the PubKey byte format.
func (pubKey PubKey) Bytes() []byte {
	return []byte(pubKey)
}

func (pubKey PubKey) VerifySignature(msg []byte, sig []byte) bool {
	// make sure we use the same algorithm to sign
	if len(sig) != SignatureSize {
		return false
	}

	return ed25519.VerifyWithOptions(ed25519.PublicKey(pubKey), msg, sig, verifyOptions)
}

// VRFVerify checks a proof with the versioned verifier, which picks the
// suite from the proof length.
func (pubKey PubKey) VRFVerify(proof vrf.Proof, message []byte) (vrf.Output, error) {
	output, err := VRFVerify(pubKey, proof, message)
	if err != nil {
		return nil, fmt.Errorf("the proof is not valid: %w", err)
	}
	return output, nil
}

// IsValid reports whether the key is usable for VRF verification.
func (pubKey PubKey) IsValid() bool {
	return vrf.IsValidPublicKey(pubKey)
}

func (pubKey PubKey) String() string {
	return fmt.Sprintf("PubKeyEd25519{%X}", []byte(pubKey))
}

func (pubKey PubKey) Type() string {
	return KeyType
}

func (pubKey PubKey) Equals(other PubKey) bool {
	return bytes.Equal(pubKey[:], other[:])
}
