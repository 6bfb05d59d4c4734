package commands

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Finschia/cardano-vrf/libs/bech32"
	"github.com/Finschia/cardano-vrf/libs/log"
	"github.com/Finschia/cardano-vrf/privval"
)

const (
	outputHex    = "hex"
	outputBech32 = "bech32"
	outputBase58 = "base58"
	outputJSON   = "json"
	outputYAML   = "yaml"
)

// KeygenCmd generates a keypair in the configured backend.
var KeygenCmd = &cobra.Command{
	Use:   "keygen [key-id]",
	Short: "Generate a new VRF keypair and print its public key",
	Args:  cobra.ExactArgs(1),
	RunE:  keygen,
}

// ShowKeyCmd prints the public key of a stored key.
var ShowKeyCmd = &cobra.Command{
	Use:     "show-key [key-id]",
	Aliases: []string{"show_key"},
	Short:   "Show the public key of a stored VRF key",
	Args:    cobra.ExactArgs(1),
	RunE:    showKey,
}

// ListKeysCmd lists the stored key ids.
var ListKeysCmd = &cobra.Command{
	Use:     "list-keys",
	Aliases: []string{"list_keys"},
	Short:   "List stored VRF key ids",
	Args:    cobra.NoArgs,
	RunE:    listKeys,
}

// DeleteKeyCmd removes a stored key.
var DeleteKeyCmd = &cobra.Command{
	Use:     "delete-key [key-id]",
	Aliases: []string{"delete_key"},
	Short:   "(unsafe) Delete a stored VRF key",
	Args:    cobra.ExactArgs(1),
	RunE:    deleteKey,
}

func init() {
	KeygenCmd.Flags().Bool("force", false, "overwrite an existing key with the same id")
	ShowKeyCmd.Flags().StringP("output", "o", outputHex, "output format (hex | bech32 | base58 | json | yaml)")
}

func keygen(cmd *cobra.Command, args []string) error {
	keyID := args[0]
	signer, err := newSigner()
	if err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	if !force {
		if _, err := signer.GetPublicKey(keyID); err == nil {
			return fmt.Errorf("key %s already exists (use --force to overwrite)", keyID)
		}
	}

	res, err := handle(signer, nil, &privval.GenerateKeyRequest{KeyID: keyID})
	if err != nil {
		return err
	}
	pk := res.(*privval.PubKeyResponse).PubKey
	logger.Info("Generated VRF key", "key_id", keyID, "pub_key", log.NewLazyHex(pk))
	fmt.Println(hex.EncodeToString(pk))
	return nil
}

type keyInfo struct {
	KeyID     string `json:"key_id" yaml:"key_id"`
	PublicKey string `json:"public_key" yaml:"public_key"`
	Bech32    string `json:"bech32" yaml:"bech32"`
	Base58    string `json:"base58" yaml:"base58"`
}

func newKeyInfo(keyID string, pk []byte) (keyInfo, error) {
	bech, err := bech32.EncodeVRFKey(pk)
	if err != nil {
		return keyInfo{}, err
	}
	return keyInfo{
		KeyID:     keyID,
		PublicKey: hex.EncodeToString(pk),
		Bech32:    bech,
		Base58:    base58.Encode(pk),
	}, nil
}

func showKey(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	signer, err := newSigner()
	if err != nil {
		return err
	}
	res, err := handle(signer, nil, &privval.PubKeyRequest{KeyID: args[0]})
	if err != nil {
		return err
	}
	pk := res.(*privval.PubKeyResponse).PubKey

	out, err := formatKey(args[0], pk, output)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func formatKey(keyID string, pk []byte, output string) (string, error) {
	info, err := newKeyInfo(keyID, pk)
	if err != nil {
		return "", err
	}

	switch strings.ToLower(output) {
	case outputHex:
		return info.PublicKey, nil
	case outputBech32:
		return info.Bech32, nil
	case outputBase58:
		return info.Base58, nil
	case outputJSON:
		bz, err := json.Marshal(info)
		if err != nil {
			return "", fmt.Errorf("failed to marshal key info: %w", err)
		}
		return string(bz), nil
	case outputYAML:
		bz, err := yaml.Marshal(info)
		if err != nil {
			return "", fmt.Errorf("failed to marshal key info: %w", err)
		}
		return strings.TrimSuffix(string(bz), "\n"), nil
	default:
		return "", fmt.Errorf("unknown output format %q", output)
	}
}

func listKeys(cmd *cobra.Command, args []string) error {
	signer, err := newSigner()
	if err != nil {
		return err
	}
	res, err := handle(signer, nil, &privval.ListKeysRequest{})
	if err != nil {
		return err
	}
	for _, id := range res.(*privval.ListKeysResponse).KeyIDs {
		fmt.Println(id)
	}
	return nil
}

func deleteKey(cmd *cobra.Command, args []string) error {
	signer, err := newSigner()
	if err != nil {
		return err
	}
	if _, err := handle(signer, nil, &privval.DeleteKeyRequest{KeyID: args[0]}); err != nil {
		return err
	}
	logger.Info("Deleted VRF key", "key_id", args[0])
	return nil
}
