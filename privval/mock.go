package privval

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/Finschia/cardano-vrf/crypto/ed25519"
	"github.com/Finschia/cardano-vrf/crypto/vrf"
	"github.com/Finschia/cardano-vrf/libs/std/crypto/rand"
)

// MockSigner keeps keys in memory. It implements Signer for tests and for
// ephemeral CLI runs.
type MockSigner struct {
	suite vrf.Suite

	mtx  sync.RWMutex
	keys map[string]ed25519.PrivKey
}

var _ Signer = (*MockSigner)(nil)

func NewMockSigner(suite vrf.Suite) *MockSigner {
	return &MockSigner{suite: suite, keys: make(map[string]ed25519.PrivKey)}
}

// ImportKey stores a copy of sk under keyID.
func (m *MockSigner) ImportKey(keyID string, sk []byte) ([]byte, error) {
	privKey, err := ed25519.PrivKeyFromBytes(sk)
	if err != nil {
		return nil, err
	}
	m.store(keyID, privKey)
	return privKey.PubKey().Bytes(), nil
}

func (m *MockSigner) store(keyID string, privKey ed25519.PrivKey) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if old, ok := m.keys[keyID]; ok {
		old.Wipe()
	}
	m.keys[keyID] = privKey
}

// key returns a copy the caller must wipe.
func (m *MockSigner) key(keyID string) (ed25519.PrivKey, error) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	privKey, ok := m.keys[keyID]
	if !ok {
		return nil, vrf.NewErrInvalidInputf("key not found: %s", keyID)
	}
	return copyKey(privKey), nil
}

func (m *MockSigner) Prove(keyID string, msg []byte) ([]byte, error) {
	privKey, err := m.key(keyID)
	if err != nil {
		return nil, err
	}
	defer privKey.Wipe()
	return privKey.VRFProveWith(m.suite, msg)
}

func (m *MockSigner) GetPublicKey(keyID string) ([]byte, error) {
	privKey, err := m.key(keyID)
	if err != nil {
		return nil, err
	}
	defer privKey.Wipe()
	return privKey.PubKey().Bytes(), nil
}

func (m *MockSigner) GenerateKeypair(keyID string) ([]byte, error) {
	privKey, err := ed25519.GenPrivKeyFromReader(rand.Reader)
	if err != nil {
		return nil, err
	}
	m.store(keyID, privKey)
	return privKey.PubKey().Bytes(), nil
}

func (m *MockSigner) DeleteKey(keyID string) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if privKey, ok := m.keys[keyID]; ok {
		privKey.Wipe()
		delete(m.keys, keyID)
	}
	return nil
}

func (m *MockSigner) ListKeys() ([]string, error) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	keys := make([]string, 0, len(m.keys))
	for id := range m.keys {
		keys = append(keys, id)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MockSigner) HealthCheck() error {
	return nil
}

// ErroringMockSigner fails every call with InvalidInput wrapping Cause.
type ErroringMockSigner struct {
	Cause error
}

var _ Signer = ErroringMockSigner{}

var ErrMockSigner = errors.New("mock signer failure")

func NewErroringMockSigner() ErroringMockSigner {
	return ErroringMockSigner{Cause: ErrMockSigner}
}

func (e ErroringMockSigner) err(op string) error {
	return vrf.NewErrInvalidInput(errors.Wrap(e.Cause, op).Error())
}

func (e ErroringMockSigner) Prove(string, []byte) ([]byte, error) {
	return nil, e.err("prove")
}

func (e ErroringMockSigner) GetPublicKey(string) ([]byte, error) {
	return nil, e.err("get public key")
}

func (e ErroringMockSigner) GenerateKeypair(string) ([]byte, error) {
	return nil, e.err("generate keypair")
}

func (e ErroringMockSigner) DeleteKey(string) error {
	return e.err("delete key")
}

func (e ErroringMockSigner) ListKeys() ([]string, error) {
	return nil, e.err("list keys")
}

func (e ErroringMockSigner) HealthCheck() error {
	return e.err("health check")
}
