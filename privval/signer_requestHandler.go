package privval

import (
	"fmt"
)

// DefaultRequestHandler serves one request against signer and verifier.
// Backend failures are reported inside the response; the returned error is
// only set for messages the handler does not understand, or when signer is
// nil and the message needs one. A nil verifier means NewVersionedVerifier.
func DefaultRequestHandler(
	signer Signer,
	verifier Verifier,
	req Message,
) (Message, error) {
	var (
		res Message
		err error
	)

	if _, verify := req.(*VRFVerifyRequest); !verify && signer == nil {
		return nil, fmt.Errorf("no signer to serve %v", MessageType(req))
	}

	switch r := req.(type) {
	case *PubKeyRequest:
		pk, err := signer.GetPublicKey(r.KeyID)
		if err != nil {
			res = &PubKeyResponse{PubKey: nil, Error: toRemoteError(err)}
		} else {
			res = &PubKeyResponse{PubKey: pk, Error: nil}
		}

	case *GenerateKeyRequest:
		pk, err := signer.GenerateKeypair(r.KeyID)
		if err != nil {
			res = &PubKeyResponse{PubKey: nil, Error: toRemoteError(err)}
		} else {
			res = &PubKeyResponse{PubKey: pk, Error: nil}
		}

	case *DeleteKeyRequest:
		res = &DeleteKeyResponse{Error: toRemoteError(signer.DeleteKey(r.KeyID))}

	case *ListKeysRequest:
		keys, err := signer.ListKeys()
		if err != nil {
			res = &ListKeysResponse{KeyIDs: nil, Error: toRemoteError(err)}
		} else {
			res = &ListKeysResponse{KeyIDs: keys, Error: nil}
		}

	case *VRFProofRequest:
		proof, err := signer.Prove(r.KeyID, r.Message)
		if err != nil {
			res = &VRFProofResponse{Proof: nil, Error: toRemoteError(err)}
		} else {
			res = &VRFProofResponse{Proof: proof, Error: nil}
		}

	case *VRFVerifyRequest:
		if verifier == nil {
			verifier = NewVersionedVerifier()
		}
		output, err := verifier.Verify(r.PubKey, r.Proof, r.Message)
		if err != nil {
			res = &VRFVerifyResponse{Output: nil, Error: toRemoteError(err)}
		} else {
			res = &VRFVerifyResponse{Output: output, Error: nil}
		}

	case *PingRequest:
		res = &PingResponse{Error: toRemoteError(signer.HealthCheck())}

	default:
		err = fmt.Errorf("unknown msg: %v", MessageType(req))
	}

	return res, err
}
