package commands

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Finschia/cardano-vrf/crypto/vrf"
	"github.com/Finschia/cardano-vrf/libs/bech32"
	"github.com/Finschia/cardano-vrf/privval"
)

// suiteAuto lets verify and proof-to-hash pick the suite from the proof
// length.
const suiteAuto = "auto"

// ProveCmd produces a proof with a stored key.
var ProveCmd = &cobra.Command{
	Use:   "prove [key-id]",
	Short: "Produce a VRF proof of a message with a stored key",
	Args:  cobra.ExactArgs(1),
	RunE:  prove,
}

// VerifyCmd checks a proof and prints the VRF output.
var VerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a VRF proof and print its 64-byte output",
	Args:  cobra.NoArgs,
	RunE:  verify,
}

// ProofToHashCmd prints the output of a proof without verifying it.
var ProofToHashCmd = &cobra.Command{
	Use:     "proof-to-hash",
	Aliases: []string{"proof_to_hash"},
	Short:   "Print the VRF output of a proof without verifying it",
	Args:    cobra.NoArgs,
	RunE:    proofToHash,
}

func init() {
	addMessageFlags(ProveCmd)
	ProveCmd.Flags().String("suite", "", "proof format, overrides the configured suite (draft03 | draft13)")
	ProveCmd.Flags().StringP("output", "o", outputHex, "output format (hex | json)")

	addMessageFlags(VerifyCmd)
	VerifyCmd.Flags().String("pubkey", "", "public key, hex or vrf_vk bech32")
	VerifyCmd.Flags().String("proof", "", "proof in hex")
	VerifyCmd.Flags().String("suite", suiteAuto, "proof format (auto | draft03 | draft13)")

	ProofToHashCmd.Flags().String("proof", "", "proof in hex")
	ProofToHashCmd.Flags().String("suite", suiteAuto, "proof format (auto | draft03 | draft13)")
}

func addMessageFlags(cmd *cobra.Command) {
	cmd.Flags().String("message", "", "message in hex")
	cmd.Flags().String("message_string", "", "message as a UTF-8 string")
}

func readMessage(cmd *cobra.Command) ([]byte, error) {
	msgHex, _ := cmd.Flags().GetString("message")
	msgStr, _ := cmd.Flags().GetString("message_string")
	if msgHex != "" && msgStr != "" {
		return nil, errors.New("--message and --message_string are mutually exclusive")
	}
	if msgStr != "" {
		return []byte(msgStr), nil
	}
	return decodeHexFlag("message", msgHex)
}

func decodeHexFlag(name, value string) ([]byte, error) {
	bz, err := hex.DecodeString(strings.TrimPrefix(value, "0x"))
	if err != nil {
		return nil, fmt.Errorf("--%s is not valid hex: %w", name, err)
	}
	return bz, nil
}

func decodePubKey(value string) ([]byte, error) {
	if value == "" {
		return nil, errors.New("--pubkey is required")
	}
	if strings.HasPrefix(strings.ToLower(value), bech32.VRFVerificationKeyHRP+"1") {
		return bech32.DecodeVRFKey(value)
	}
	return decodeHexFlag("pubkey", value)
}

func requiredProof(cmd *cobra.Command) ([]byte, error) {
	value, _ := cmd.Flags().GetString("proof")
	if value == "" {
		return nil, errors.New("--proof is required")
	}
	return decodeHexFlag("proof", value)
}

// verifierFor returns the versioned verifier for "auto" and a single suite
// verifier otherwise.
func verifierFor(suite string) (privval.Verifier, error) {
	if suite == "" || suite == suiteAuto {
		return privval.NewVersionedVerifier(), nil
	}
	s, err := vrf.ParseSuite(suite)
	if err != nil {
		return nil, err
	}
	return privval.NewVerifier(s), nil
}

type proofResult struct {
	KeyID  string `json:"key_id"`
	Suite  string `json:"suite"`
	Proof  string `json:"proof"`
	Output string `json:"output"`
}

func prove(cmd *cobra.Command, args []string) error {
	msg, err := readMessage(cmd)
	if err != nil {
		return err
	}
	if suite, _ := cmd.Flags().GetString("suite"); suite != "" {
		s, err := vrf.ParseSuite(suite)
		if err != nil {
			return err
		}
		config.Signer.Suite = s.String()
	}
	output, _ := cmd.Flags().GetString("output")

	signer, err := newSigner()
	if err != nil {
		return err
	}
	res, err := handle(signer, nil, &privval.VRFProofRequest{KeyID: args[0], Message: msg})
	if err != nil {
		return err
	}
	proof := vrf.Proof(res.(*privval.VRFProofResponse).Proof)

	switch output {
	case outputHex:
		fmt.Println(hex.EncodeToString(proof))
	case outputJSON:
		beta, err := proof.ToHash()
		if err != nil {
			return err
		}
		suite, _ := vrf.SuiteForProofSize(len(proof))
		bz, err := json.Marshal(proofResult{
			KeyID:  args[0],
			Suite:  suite.String(),
			Proof:  hex.EncodeToString(proof),
			Output: hex.EncodeToString(beta),
		})
		if err != nil {
			return err
		}
		fmt.Println(string(bz))
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
	return nil
}

func verify(cmd *cobra.Command, args []string) error {
	output, err := verifiedOutput(cmd)
	if err != nil {
		return err
	}
	fmt.Println(hex.EncodeToString(output))
	return nil
}

// verifiedOutput checks --proof against --pubkey and the message flags and
// returns the VRF output.
func verifiedOutput(cmd *cobra.Command) ([]byte, error) {
	pkFlag, _ := cmd.Flags().GetString("pubkey")
	pk, err := decodePubKey(pkFlag)
	if err != nil {
		return nil, err
	}
	proof, err := requiredProof(cmd)
	if err != nil {
		return nil, err
	}
	msg, err := readMessage(cmd)
	if err != nil {
		return nil, err
	}
	suite, _ := cmd.Flags().GetString("suite")
	verifier, err := verifierFor(suite)
	if err != nil {
		return nil, err
	}

	res, err := handle(nil, newVerifier(verifier), &privval.VRFVerifyRequest{PubKey: pk, Proof: proof, Message: msg})
	if err != nil {
		return nil, err
	}
	return res.(*privval.VRFVerifyResponse).Output, nil
}

func proofToHash(cmd *cobra.Command, args []string) error {
	proof, err := requiredProof(cmd)
	if err != nil {
		return err
	}

	var beta vrf.Output
	suite, _ := cmd.Flags().GetString("suite")
	if suite == "" || suite == suiteAuto {
		beta, err = vrf.Proof(proof).ToHash()
	} else {
		var s vrf.Suite
		s, err = vrf.ParseSuite(suite)
		if err != nil {
			return err
		}
		beta, err = vrf.ProofToHash(s, proof)
	}
	if err != nil {
		return err
	}
	fmt.Println(hex.EncodeToString(beta))
	return nil
}
