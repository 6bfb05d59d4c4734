package bech32

import (
	"fmt"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/pkg/errors"
)

// VRFVerificationKeyHRP is the human readable part Cardano tooling uses for
// VRF verification keys.
const VRFVerificationKeyHRP = "vrf_vk"

//ConvertAndEncode converts from a base64 encoded byte string to base32 encoded byte string and then to bech32
func ConvertAndEncode(hrp string, data []byte) (string, error) {
	converted, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(err, "encoding bech32 failed")
	}
	return bech32.Encode(hrp, converted)
}

//DecodeAndConvert decodes a bech32 encoded string and converts to base64 encoded bytes
func DecodeAndConvert(bech string) (string, []byte, error) {
	hrp, data, err := bech32.Decode(bech)
	if err != nil {
		return "", nil, errors.Wrap(err, "decoding bech32 failed")
	}
	converted, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", nil, errors.Wrap(err, "decoding bech32 failed")
	}
	return hrp, converted, nil
}

// EncodeVRFKey renders a 32-byte VRF public key as vrf_vk1...
func EncodeVRFKey(pk []byte) (string, error) {
	if len(pk) != 32 {
		return "", fmt.Errorf("expected 32 byte VRF key, got %d bytes", len(pk))
	}
	return ConvertAndEncode(VRFVerificationKeyHRP, pk)
}

// DecodeVRFKey parses a vrf_vk1... string back into the 32-byte key.
func DecodeVRFKey(s string) ([]byte, error) {
	hrp, pk, err := DecodeAndConvert(s)
	if err != nil {
		return nil, err
	}
	if hrp != VRFVerificationKeyHRP {
		return nil, fmt.Errorf("unexpected bech32 prefix %q, want %q", hrp, VRFVerificationKeyHRP)
	}
	if len(pk) != 32 {
		return nil, fmt.Errorf("expected 32 byte VRF key, got %d bytes", len(pk))
	}
	return pk, nil
}
