package privval

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/Finschia/cardano-vrf/crypto/ed25519"
	"github.com/Finschia/cardano-vrf/crypto/vrf"
	"github.com/Finschia/cardano-vrf/libs/std/crypto/rand"
	"github.com/Finschia/cardano-vrf/privval/internal"
)

const (
	keyFileExt      = ".key"
	healthCheckFile = ".health_check"

	keyFilePerm    os.FileMode = 0600
	storageDirPerm os.FileMode = 0700
)

// FileSigner keeps 64-byte seed ‖ pk secret keys as {key_id}.key files in a
// directory and caches loaded keys in memory. Callers only ever see copies
// of cached keys, so a cache entry is wiped only under the write lock.
type FileSigner struct {
	storagePath string
	suite       vrf.Suite
	filter      internal.KeyFilter

	mtx  sync.RWMutex
	keys map[string]ed25519.PrivKey
}

var _ Signer = (*FileSigner)(nil)

type FileSignerOption func(*FileSigner)

// WithSuite makes Prove emit proofs of the given suite. The default is
// draft-03.
func WithSuite(suite vrf.Suite) FileSignerOption {
	return func(s *FileSigner) { s.suite = suite }
}

// WithAllowedKeyIDs restricts the signer to the listed key ids.
func WithAllowedKeyIDs(keyIDs []string) FileSignerOption {
	return func(s *FileSigner) { s.filter = internal.NewAllowListFilter(keyIDs, nil) }
}

// NewFileSigner opens the key directory, creating it when missing.
func NewFileSigner(storagePath string, opts ...FileSignerOption) (*FileSigner, error) {
	if storagePath == "" {
		return nil, vrf.NewErrInvalidInput("key storage path is empty")
	}
	if _, err := os.Stat(storagePath); os.IsNotExist(err) {
		if err := os.MkdirAll(storagePath, storageDirPerm); err != nil {
			return nil, invalidInput(err, "cannot create storage")
		}
	}

	s := &FileSigner{
		storagePath: storagePath,
		suite:       vrf.Draft03,
		filter:      internal.NewNullObject(),
		keys:        make(map[string]ed25519.PrivKey),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func invalidInput(err error, msg string) error {
	return vrf.NewErrInvalidInput(errors.Wrap(err, msg).Error())
}

func (s *FileSigner) keyPath(keyID string) string {
	return filepath.Join(s.storagePath, keyID+keyFileExt)
}

func (s *FileSigner) checkKeyID(keyID string) error {
	if err := s.filter.Filter(keyID); err != nil {
		return vrf.NewErrInvalidInput(err.Error())
	}
	return nil
}

// loadKey returns a copy of the cached key, reading it from disk on a miss.
// The caller owns the copy and should wipe it when done.
func (s *FileSigner) loadKey(keyID string) (ed25519.PrivKey, error) {
	if err := s.checkKeyID(keyID); err != nil {
		return nil, err
	}

	s.mtx.RLock()
	if cached, ok := s.keys[keyID]; ok {
		key := copyKey(cached)
		s.mtx.RUnlock()
		return key, nil
	}
	s.mtx.RUnlock()

	data, err := os.ReadFile(s.keyPath(keyID))
	if os.IsNotExist(err) {
		return nil, vrf.NewErrInvalidInputf("key not found: %s", keyID)
	}
	if err != nil {
		return nil, invalidInput(err, "cannot read key")
	}
	if len(data) != vrf.SecretKeySize {
		vrf.Wipe(data)
		return nil, vrf.NewErrInvalidInput("invalid key size")
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()
	if cached, ok := s.keys[keyID]; ok {
		vrf.Wipe(data)
		return copyKey(cached), nil
	}
	s.keys[keyID] = ed25519.PrivKey(data)
	return copyKey(data), nil
}

func copyKey(key []byte) ed25519.PrivKey {
	out := make(ed25519.PrivKey, len(key))
	copy(out, key)
	return out
}

// saveKey writes the key and takes ownership of it as the cache entry.
func (s *FileSigner) saveKey(keyID string, privKey ed25519.PrivKey) error {
	path := s.keyPath(keyID)
	if err := os.WriteFile(path, privKey.Bytes(), keyFilePerm); err != nil {
		return invalidInput(err, "cannot write key")
	}
	// WriteFile keeps the mode of an existing file
	if err := os.Chmod(path, keyFilePerm); err != nil {
		return invalidInput(err, "cannot set permissions")
	}

	s.mtx.Lock()
	if old, ok := s.keys[keyID]; ok {
		old.Wipe()
	}
	s.keys[keyID] = privKey
	s.mtx.Unlock()
	return nil
}

func (s *FileSigner) Prove(keyID string, msg []byte) ([]byte, error) {
	privKey, err := s.loadKey(keyID)
	if err != nil {
		return nil, err
	}
	defer privKey.Wipe()
	return privKey.VRFProveWith(s.suite, msg)
}

func (s *FileSigner) GetPublicKey(keyID string) ([]byte, error) {
	privKey, err := s.loadKey(keyID)
	if err != nil {
		return nil, err
	}
	defer privKey.Wipe()
	// the pk half of a key file is not checked on load, so PubKey may panic
	pk := make(ed25519.PubKey, vrf.PublicKeySize)
	copy(pk, privKey[vrf.SeedSize:])
	return pk.Bytes(), nil
}

func (s *FileSigner) GenerateKeypair(keyID string) ([]byte, error) {
	if err := s.checkKeyID(keyID); err != nil {
		return nil, err
	}
	privKey, err := ed25519.GenPrivKeyFromReader(rand.Reader)
	if err != nil {
		return nil, err
	}
	pk := privKey.PubKey()
	if err := s.saveKey(keyID, privKey); err != nil {
		privKey.Wipe()
		return nil, err
	}
	return pk.Bytes(), nil
}

// ImportKey stores a copy of an existing 64-byte secret key after checking
// that its halves match.
func (s *FileSigner) ImportKey(keyID string, sk []byte) ([]byte, error) {
	if err := s.checkKeyID(keyID); err != nil {
		return nil, err
	}
	privKey, err := ed25519.PrivKeyFromBytes(sk)
	if err != nil {
		return nil, err
	}
	pk := privKey.PubKey()
	if err := s.saveKey(keyID, privKey); err != nil {
		privKey.Wipe()
		return nil, err
	}
	return pk.Bytes(), nil
}

func (s *FileSigner) DeleteKey(keyID string) error {
	if err := s.checkKeyID(keyID); err != nil {
		return err
	}

	s.mtx.Lock()
	if privKey, ok := s.keys[keyID]; ok {
		privKey.Wipe()
		delete(s.keys, keyID)
	}
	s.mtx.Unlock()

	err := os.Remove(s.keyPath(keyID))
	if err != nil && !os.IsNotExist(err) {
		return invalidInput(err, "cannot delete key")
	}
	return nil
}

func (s *FileSigner) ListKeys() ([]string, error) {
	entries, err := os.ReadDir(s.storagePath)
	if err != nil {
		return nil, invalidInput(err, "cannot read directory")
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != keyFileExt {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, keyFileExt))
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *FileSigner) HealthCheck() error {
	info, err := os.Stat(s.storagePath)
	if err != nil {
		return vrf.NewErrInvalidInput("storage path does not exist")
	}
	if !info.IsDir() {
		return vrf.NewErrInvalidInput("storage path is not a directory")
	}

	testPath := filepath.Join(s.storagePath, healthCheckFile)
	if err := os.WriteFile(testPath, []byte("test"), keyFilePerm); err != nil {
		return invalidInput(err, "storage not writable")
	}
	if err := os.Remove(testPath); err != nil {
		return invalidInput(err, "cannot cleanup test file")
	}
	return nil
}

// StoragePath returns the key directory.
func (s *FileSigner) StoragePath() string {
	return s.storagePath
}

// Suite returns the suite Prove uses.
func (s *FileSigner) Suite() vrf.Suite {
	return s.suite
}
