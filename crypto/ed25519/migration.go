package ed25519

import (
	"fmt"
	"sync"

	"github.com/Finschia/cardano-vrf/crypto/vrf"
)

// vrf w/o prove
// vrf Prove() MUST use its latest implementation, while this allows
// to verify the old blocks.
type VrfNoProve interface {
	Verify(pubKey []byte, proof []byte, message []byte) ([]byte, error)
	ProofToHash(proof []byte) ([]byte, error)
}

// following logics MUST use this instance:
// - VRFVerify()
// - ProofToHash()
var (
	globalVrf   = NewVersionedVrfNoProve()
	globalVrfMu = sync.Mutex{}
)

func VRFVerify(pubKey []byte, proof []byte, message []byte) ([]byte, error) {
	globalVrfMu.Lock()
	defer globalVrfMu.Unlock()
	return globalVrf.Verify(pubKey, proof, message)
}

func ProofToHash(proof []byte) ([]byte, error) {
	globalVrfMu.Lock()
	defer globalVrfMu.Unlock()
	return globalVrf.ProofToHash(proof)
}

// ValidateProof returns an error if the proof size matches neither the
// draft-03 nor the draft-13 layout.
func ValidateProof(h []byte) error {
	proofSize := len(h)
	if proofSize != vrf.ProofSizeDraft03 && proofSize != vrf.ProofSizeDraft13 {
		return fmt.Errorf("expected size to be %d or %d bytes, got %d bytes",
			vrf.ProofSizeDraft03,
			vrf.ProofSizeDraft13,
			proofSize,
		)
	}
	return nil
}

// versioned vrf have all the implementations inside.
// it updates its version whenever a proof of the new format verifies.
// it CANNOT downgrade its version.
var _ VrfNoProve = (*versionedVrfNoProve)(nil)

type versionedVrfNoProve struct {
	mu      sync.Mutex
	version int

	proofSizeToVersion map[int]int
	vrfs               map[int]VrfNoProve
}

func NewVersionedVrfNoProve() VrfNoProve {
	return &versionedVrfNoProve{
		version: 0,
		proofSizeToVersion: map[int]int{
			vrf.ProofSizeDraft03: 0,
			vrf.ProofSizeDraft13: 1,
		},
		vrfs: map[int]VrfNoProve{
			0: suiteVrfNoProve{suite: vrf.Draft03},
			1: suiteVrfNoProve{suite: vrf.Draft13},
		},
	}
}

// Version returns the highest version of a proof that verified so far.
func Version(v VrfNoProve) int {
	if vv, ok := v.(*versionedVrfNoProve); ok {
		vv.mu.Lock()
		defer vv.mu.Unlock()
		return vv.version
	}
	return -1
}

// getVrf emits error if the proof is old one. It does not change the
// version; only upgrade does.
func (v *versionedVrfNoProve) getVrf(proof []byte) (int, VrfNoProve, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	proofSize := len(proof)
	version, exists := v.proofSizeToVersion[proofSize]
	if !exists {
		return 0, nil, fmt.Errorf("invalid proof size %d: %w", proofSize, vrf.ErrInvalidProof)
	}
	if version < v.version {
		return 0, nil, fmt.Errorf("proof version %d is older than %d: %w", version, v.version, vrf.ErrInvalidProof)
	}
	return version, v.vrfs[version], nil
}

func (v *versionedVrfNoProve) upgrade(version int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if version > v.version {
		v.version = version
	}
}

func (v *versionedVrfNoProve) Verify(pubKey []byte, proof []byte, message []byte) ([]byte, error) {
	version, impl, err := v.getVrf(proof)
	if err != nil {
		return nil, err
	}

	output, err := impl.Verify(pubKey, proof, message)
	if err != nil {
		return nil, err
	}
	v.upgrade(version)
	return output, nil
}

// ProofToHash never upgrades: the proof it reads is not verified.
func (v *versionedVrfNoProve) ProofToHash(proof []byte) ([]byte, error) {
	_, impl, err := v.getVrf(proof)
	if err != nil {
		return nil, err
	}
	return impl.ProofToHash(proof)
}

// one suite of crypto/vrf
var _ VrfNoProve = suiteVrfNoProve{}

type suiteVrfNoProve struct {
	suite vrf.Suite
}

func (s suiteVrfNoProve) Verify(pubKey []byte, proof []byte, message []byte) ([]byte, error) {
	return vrf.Verify(s.suite, pubKey, proof, message)
}

func (s suiteVrfNoProve) ProofToHash(proof []byte) ([]byte, error) {
	return vrf.ProofToHash(s.suite, proof)
}
