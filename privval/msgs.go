package privval

import (
	"errors"
	"fmt"

	"github.com/Finschia/cardano-vrf/crypto/vrf"
)

// Message is a request to, or a response from, a signer. Requests are
// dispatched by DefaultRequestHandler.
type Message interface {
	msgType() string
}

// RemoteSignerError is the error carried inside a response.
type RemoteSignerError struct {
	Code        ErrorCode `json:"code"`
	Description string    `json:"description"`
}

func (e *RemoteSignerError) Error() string {
	return fmt.Sprintf("signer error %d (%s): %s", e.Code, e.Code, e.Description)
}

type ErrorCode int

const (
	CodeUnknown ErrorCode = iota
	CodeInvalidInput
	CodeInvalidProof
	CodeInvalidPublicKey
	CodeInvalidSecretKey
	CodeVerificationFailed
)

func (c ErrorCode) String() string {
	switch c {
	case CodeInvalidInput:
		return "invalid input"
	case CodeInvalidProof:
		return "invalid proof"
	case CodeInvalidPublicKey:
		return "invalid public key"
	case CodeInvalidSecretKey:
		return "invalid secret key"
	case CodeVerificationFailed:
		return "verification failed"
	default:
		return "unknown"
	}
}

func toRemoteError(err error) *RemoteSignerError {
	if err == nil {
		return nil
	}
	code := CodeUnknown
	switch {
	case vrf.IsInvalidInput(err):
		code = CodeInvalidInput
	case errors.Is(err, vrf.ErrInvalidProof):
		code = CodeInvalidProof
	case errors.Is(err, vrf.ErrInvalidPublicKey), errors.Is(err, vrf.ErrInvalidPoint):
		code = CodeInvalidPublicKey
	case errors.Is(err, vrf.ErrInvalidSecretKey):
		code = CodeInvalidSecretKey
	case errors.Is(err, vrf.ErrVerificationFailed):
		code = CodeVerificationFailed
	}
	return &RemoteSignerError{Code: code, Description: err.Error()}
}

type PubKeyRequest struct {
	KeyID string `json:"key_id"`
}

type PubKeyResponse struct {
	PubKey []byte             `json:"pub_key"`
	Error  *RemoteSignerError `json:"error,omitempty"`
}

type GenerateKeyRequest struct {
	KeyID string `json:"key_id"`
}

type DeleteKeyRequest struct {
	KeyID string `json:"key_id"`
}

type DeleteKeyResponse struct {
	Error *RemoteSignerError `json:"error,omitempty"`
}

type ListKeysRequest struct{}

type ListKeysResponse struct {
	KeyIDs []string           `json:"key_ids"`
	Error  *RemoteSignerError `json:"error,omitempty"`
}

type VRFProofRequest struct {
	KeyID   string `json:"key_id"`
	Message []byte `json:"message"`
}

type VRFProofResponse struct {
	Proof []byte             `json:"proof"`
	Error *RemoteSignerError `json:"error,omitempty"`
}

type VRFVerifyRequest struct {
	PubKey  []byte `json:"pub_key"`
	Proof   []byte `json:"proof"`
	Message []byte `json:"message"`
}

type VRFVerifyResponse struct {
	Output []byte             `json:"output"`
	Error  *RemoteSignerError `json:"error,omitempty"`
}

type PingRequest struct{}

type PingResponse struct {
	Error *RemoteSignerError `json:"error,omitempty"`
}

func (*PubKeyRequest) msgType() string      { return "pub_key_request" }
func (*PubKeyResponse) msgType() string     { return "pub_key_response" }
func (*GenerateKeyRequest) msgType() string { return "generate_key_request" }
func (*DeleteKeyRequest) msgType() string   { return "delete_key_request" }
func (*DeleteKeyResponse) msgType() string  { return "delete_key_response" }
func (*ListKeysRequest) msgType() string    { return "list_keys_request" }
func (*ListKeysResponse) msgType() string   { return "list_keys_response" }
func (*VRFProofRequest) msgType() string    { return "vrf_proof_request" }
func (*VRFProofResponse) msgType() string   { return "vrf_proof_response" }
func (*VRFVerifyRequest) msgType() string   { return "vrf_verify_request" }
func (*VRFVerifyResponse) msgType() string  { return "vrf_verify_response" }
func (*PingRequest) msgType() string        { return "ping_request" }
func (*PingResponse) msgType() string       { return "ping_response" }

// MessageType names a message for logs.
func MessageType(m Message) string {
	if m == nil {
		return "nil"
	}
	return m.msgType()
}

// ResponseError returns the error carried by a response, if any.
func ResponseError(m Message) error {
	var rerr *RemoteSignerError
	switch r := m.(type) {
	case *PubKeyResponse:
		rerr = r.Error
	case *DeleteKeyResponse:
		rerr = r.Error
	case *ListKeysResponse:
		rerr = r.Error
	case *VRFProofResponse:
		rerr = r.Error
	case *VRFVerifyResponse:
		rerr = r.Error
	case *PingResponse:
		rerr = r.Error
	}
	if rerr == nil {
		return nil
	}
	return rerr
}
