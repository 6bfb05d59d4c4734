package vrf

import (
	"bytes"
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/require"
)

func TestSecretScopeWipes(t *testing.T) {
	buf := bytes.Repeat([]byte{0xaa}, 64)
	x, err := edwards25519.NewScalar().SetCanonicalBytes(append([]byte{7}, make([]byte, 31)...))
	require.NoError(t, err)

	func() {
		scope := new(secretScope)
		defer scope.Close()
		scope.Bytes(buf)
		scope.Scalar(x)
	}()

	require.Equal(t, make([]byte, 64), buf)
	require.Equal(t, 1, x.Equal(edwards25519.NewScalar()))
}

func TestWipe(t *testing.T) {
	sk, _, err := KeypairFromSeed(bytes.Repeat([]byte{1}, SeedSize))
	require.NoError(t, err)
	Wipe(sk)
	require.Equal(t, make([]byte, SecretKeySize), sk)
	Wipe(nil)
}
