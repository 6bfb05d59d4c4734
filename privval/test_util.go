package privval

import (
	"testing"

	"github.com/Finschia/cardano-vrf/crypto/vrf"
)

// WithSoftwareSigner opens a FileSigner in a temporary directory, generates
// keyID in it and hands both to f. The directory is removed when the test
// ends.
func WithSoftwareSigner(t *testing.T, suite vrf.Suite, keyID string, f func(*FileSigner, []byte)) {
	t.Helper()

	signer, err := NewFileSigner(t.TempDir(), WithSuite(suite))
	if err != nil {
		t.Fatal(err)
		return
	}
	pk, err := signer.GenerateKeypair(keyID)
	if err != nil {
		t.Fatal(err)
		return
	}

	f(signer, pk)
}
