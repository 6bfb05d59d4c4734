package privval

import (
	"github.com/pkg/errors"

	"github.com/Finschia/cardano-vrf/crypto/ed25519"
	"github.com/Finschia/cardano-vrf/crypto/vrf"
)

// Signer holds VRF secret keys addressed by key id and proves with them.
// Implementations must be safe for concurrent use.
type Signer interface {
	// Prove returns a VRF proof of msg under the key.
	Prove(keyID string, msg []byte) ([]byte, error)
	// GetPublicKey returns the 32-byte public key of the key.
	GetPublicKey(keyID string) ([]byte, error)
	// GenerateKeypair creates and stores a fresh key and returns its public key.
	GenerateKeypair(keyID string) ([]byte, error)
	// DeleteKey removes the key. Deleting a missing key is not an error.
	DeleteKey(keyID string) error
	// ListKeys returns the ids of all stored keys.
	ListKeys() ([]string, error)
	// HealthCheck reports whether the backend is usable.
	HealthCheck() error
}

// Verifier checks proofs and returns the 64-byte VRF output.
type Verifier interface {
	Verify(pk, proof, msg []byte) ([]byte, error)
}

type suiteVerifier struct {
	suite vrf.Suite
}

var _ Verifier = suiteVerifier{}

// NewVerifier returns a stateless verifier for a single suite.
func NewVerifier(suite vrf.Suite) Verifier {
	return suiteVerifier{suite: suite}
}

func (v suiteVerifier) Verify(pk, proof, msg []byte) ([]byte, error) {
	return vrf.Verify(v.suite, pk, proof, msg)
}

type versionedVerifier struct {
	vrf ed25519.VrfNoProve
}

var _ Verifier = versionedVerifier{}

// NewVersionedVerifier picks the suite from the proof length and, like a
// chain that upgraded its proof format, refuses draft-03 proofs once it has
// seen a draft-13 one.
func NewVersionedVerifier() Verifier {
	return versionedVerifier{vrf: ed25519.NewVersionedVrfNoProve()}
}

// Verify keeps decode errors (ErrInvalidProof, ErrInvalidPublicKey) apart
// from ErrVerificationFailed. A draft-03 proof after the upgrade is an
// ErrInvalidProof.
func (v versionedVerifier) Verify(pk, proof, msg []byte) ([]byte, error) {
	if err := ed25519.ValidateProof(proof); err != nil {
		return nil, errors.Wrap(vrf.ErrInvalidProof, err.Error())
	}
	return v.vrf.Verify(pk, proof, msg)
}
