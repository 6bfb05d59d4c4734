package vrf

import (
	"bytes"
	"io"

	"filippo.io/edwards25519"
)

// KeypairFromSeed expands a 32-byte seed into the 64-byte secret key
// seed ‖ pk and the 32-byte public key B·clamp(SHA512(seed)[:32]). The
// result matches crypto/ed25519.NewKeyFromSeed.
func KeypairFromSeed(seed []byte) (sk, pk []byte, err error) {
	if len(seed) != SeedSize {
		return nil, nil, ErrInvalidSecretKey
	}

	var az [64]byte
	defer wipeBytes(az[:])
	x, err := expandSecret(seed, &az)
	if err != nil {
		return nil, nil, err
	}
	defer wipeScalar(x)

	pk = new(edwards25519.Point).ScalarBaseMult(x).Bytes()
	sk = make([]byte, SecretKeySize)
	copy(sk[:SeedSize], seed)
	copy(sk[SeedSize:], pk)
	return sk, pk, nil
}

// GenerateKeypair reads a seed from rand and derives a keypair from it.
func GenerateKeypair(rand io.Reader) (sk, pk []byte, err error) {
	seed := make([]byte, SeedSize)
	defer wipeBytes(seed)
	if _, err := io.ReadFull(rand, seed); err != nil {
		return nil, nil, NewErrInvalidInputf("cannot read seed: %v", err)
	}
	return KeypairFromSeed(seed)
}

// SecretKeyToPublicKey returns the public half of sk after checking that it
// matches the seed half.
func SecretKeyToPublicKey(sk []byte) ([]byte, error) {
	if len(sk) != SecretKeySize {
		return nil, ErrInvalidSecretKey
	}
	derivedSk, pk, err := KeypairFromSeed(sk[:SeedSize])
	if err != nil {
		return nil, err
	}
	defer wipeBytes(derivedSk)
	if !bytes.Equal(pk, sk[SeedSize:]) {
		return nil, ErrInvalidSecretKey
	}
	return pk, nil
}

// SeedFromSecretKey returns a copy of the seed half of sk.
func SeedFromSecretKey(sk []byte) ([]byte, error) {
	if len(sk) != SecretKeySize {
		return nil, ErrInvalidSecretKey
	}
	seed := make([]byte, SeedSize)
	copy(seed, sk[:SeedSize])
	return seed, nil
}

// IsValidPublicKey reports whether pk would be accepted by Verify: a
// canonical encoding of a point outside the small order subgroup.
func IsValidPublicKey(pk []byte) bool {
	_, err := decodePublicKey(pk)
	return err == nil
}
