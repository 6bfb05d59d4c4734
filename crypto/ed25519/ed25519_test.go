package ed25519_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/hdevalence/ed25519consensus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Finschia/cardano-vrf/crypto/ed25519"
	"github.com/Finschia/cardano-vrf/crypto/vrf"
	"github.com/Finschia/cardano-vrf/libs/std/crypto/rand"
)

func TestSignAndValidateEd25519(t *testing.T) {

	privKey := ed25519.GenPrivKey()
	pubKey := privKey.PubKey()

	msg, err := rand.Bytes(128)
	require.NoError(t, err)
	sig, err := privKey.Sign(msg)
	require.Nil(t, err)

	// Test the signature
	assert.True(t, pubKey.VerifySignature(msg, sig))
	assert.True(t, ed25519consensus.Verify(pubKey.Bytes(), msg, sig))

	// Mutate the signature, just one bit.
	sig[7] ^= byte(0x01)

	assert.False(t, pubKey.VerifySignature(msg, sig))
	assert.False(t, pubKey.VerifySignature(msg, sig[:10]))
}

func TestVRFProveAndVRFVerify(t *testing.T) {

	privKey := ed25519.GenPrivKey()
	pubKey := privKey.PubKey()
	message, _ := hex.DecodeString("0000000000000000000000000000000000000000000000000000000000000000")
	proof, err := privKey.VRFProve(message)
	assert.Nil(t, err)
	assert.NotNil(t, proof)
	assert.Len(t, proof, vrf.ProofSizeDraft03)

	output, err := pubKey.VRFVerify(proof, message)
	assert.Nil(t, err)
	assert.NotNil(t, output)

	// *** If the combination of (pubkey, message, proof) is incorrect ***
	// invalid message
	inValidMessage, _ := hex.DecodeString("0000000000000000000000000000000000000000000000000000000000000001")
	_, err1 := pubKey.VRFVerify(proof, inValidMessage)
	assert.Error(t, err1)

	// invalid pubkey
	invalidPrivKey := ed25519.GenPrivKey()
	invalidPubkey := invalidPrivKey.PubKey()
	_, err2 := invalidPubkey.VRFVerify(proof, message)
	assert.Error(t, err2)

	// invalid proof
	invalidProof, _ := invalidPrivKey.VRFProve(message)
	_, err3 := pubKey.VRFVerify(invalidProof, message)
	assert.ErrorIs(t, err3, vrf.ErrVerificationFailed)
}

func TestPrivKeyHalvesAgree(t *testing.T) {
	seed := bytes.Repeat([]byte{0x17}, ed25519.SeedSize)
	privKey, err := ed25519.GenPrivKeyFromReader(bytes.NewReader(seed))
	require.NoError(t, err)
	require.Len(t, privKey, ed25519.PrivateKeySize)
	require.Equal(t, ed25519.KeyType, privKey.Type())

	// the derivation matches the VRF keypair derivation
	_, pk, err := vrf.KeypairFromSeed(privKey.Seed())
	require.NoError(t, err)
	require.True(t, privKey.PubKey().Equals(pk))
	require.True(t, privKey.PubKey().IsValid())

	privKey.Wipe()
	require.Panics(t, func() { privKey.PubKey() })
}

func TestGenPrivKeyFromReader(t *testing.T) {
	seed := bytes.Repeat([]byte{0x42}, ed25519.SeedSize)
	privKey, err := ed25519.GenPrivKeyFromReader(bytes.NewReader(seed))
	require.NoError(t, err)
	require.Equal(t, seed, privKey.Seed())

	_, err = ed25519.GenPrivKeyFromReader(bytes.NewReader(seed[:8]))
	require.Error(t, err)

	restored, err := ed25519.PrivKeyFromBytes(privKey.Bytes())
	require.NoError(t, err)
	require.True(t, restored.Equals(privKey))

	broken := append([]byte(nil), privKey.Bytes()...)
	broken[40] ^= 0x01
	_, err = ed25519.PrivKeyFromBytes(broken)
	require.ErrorIs(t, err, vrf.ErrInvalidSecretKey)

	restored.Wipe()
	require.Equal(t, make([]byte, ed25519.PrivateKeySize), restored.Bytes())
	require.Panics(t, func() { restored.PubKey() })
}
