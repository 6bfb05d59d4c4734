package commands

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	cfg "github.com/Finschia/cardano-vrf/config"
	"github.com/Finschia/cardano-vrf/crypto/vrf"
	"github.com/Finschia/cardano-vrf/libs/bech32"
)

func TestInit(t *testing.T) {
	dir := setupHome(t)

	require.FileExists(t, filepath.Join(dir, "config", "config.toml"))
	require.DirExists(t, filepath.Join(dir, "data", "keys"))

	written, err := cfg.ReadConfigFile(filepath.Join(dir, "config", "config.toml"))
	require.NoError(t, err)
	require.Equal(t, "software", written.Signer.Backend)
	require.Equal(t, "draft03", written.Signer.Suite)
}

func TestInitWithFlags(t *testing.T) {
	original := config
	defer func() { config = original }()

	dir := setupEnv(t)
	require.NoError(t, RootCmd.PersistentPreRunE(RootCmd, nil))
	init := NewInitCmd()
	require.NoError(t, init.Flags().Set("suite", "draft-13"))
	require.NoError(t, init.Flags().Set("key_storage_path", "vrf-keys"))
	require.NoError(t, init.RunE(init, nil))

	require.DirExists(t, filepath.Join(dir, "vrf-keys"))
	written, err := cfg.ReadConfigFile(filepath.Join(dir, "config", "config.toml"))
	require.NoError(t, err)
	require.Equal(t, "draft13", written.Signer.Suite)
	require.Equal(t, "vrf-keys", written.Signer.KeyStoragePath)

	bad := NewInitCmd()
	require.NoError(t, bad.Flags().Set("suite", "draft-10"))
	require.Error(t, bad.RunE(bad, nil))
}

func TestKeyLifecycle(t *testing.T) {
	dir := setupHome(t)

	pkHex, err := run(t, KeygenCmd, "pool")
	require.NoError(t, err)
	pk, err := hex.DecodeString(pkHex)
	require.NoError(t, err)
	require.Len(t, pk, vrf.PublicKeySize)

	// the key file is the 64-byte seed ‖ pk layout
	sk, err := os.ReadFile(filepath.Join(dir, "data", "keys", "pool.key"))
	require.NoError(t, err)
	require.Equal(t, pk, sk[vrf.SeedSize:])

	// no silent overwrite
	_, err = run(t, KeygenCmd, "pool")
	require.ErrorContains(t, err, "already exists")
	setFlags(t, KeygenCmd, "force", "true")
	rotated, err := run(t, KeygenCmd, "pool")
	require.NoError(t, err)
	require.NotEqual(t, pkHex, rotated)

	out, err := run(t, ListKeysCmd)
	require.NoError(t, err)
	require.Equal(t, "pool", out)

	out, err = run(t, DeleteKeyCmd, "pool")
	require.NoError(t, err)
	require.Empty(t, out)

	out, err = run(t, ListKeysCmd)
	require.NoError(t, err)
	require.Empty(t, out)

	_, err = run(t, ShowKeyCmd, "pool")
	require.ErrorContains(t, err, "key not found: pool")
}

func TestShowKeyFormats(t *testing.T) {
	setupHome(t)

	pkHex, err := run(t, KeygenCmd, "relay")
	require.NoError(t, err)
	pk, err := hex.DecodeString(pkHex)
	require.NoError(t, err)

	out, err := run(t, ShowKeyCmd, "relay")
	require.NoError(t, err)
	require.Equal(t, pkHex, out)

	testCases := []struct {
		output string
		check  func(t *testing.T, out string)
	}{
		{outputBech32, func(t *testing.T, out string) {
			require.True(t, strings.HasPrefix(out, bech32.VRFVerificationKeyHRP+"1"))
			decoded, err := bech32.DecodeVRFKey(out)
			require.NoError(t, err)
			require.Equal(t, pk, decoded)
		}},
		{outputBase58, func(t *testing.T, out string) {
			decoded, err := base58.Decode(out)
			require.NoError(t, err)
			require.Equal(t, pk, decoded)
		}},
		{outputJSON, func(t *testing.T, out string) {
			var info keyInfo
			require.NoError(t, json.Unmarshal([]byte(out), &info))
			require.Equal(t, "relay", info.KeyID)
			require.Equal(t, pkHex, info.PublicKey)
			require.Equal(t, base58.Encode(pk), info.Base58)
		}},
		{outputYAML, func(t *testing.T, out string) {
			var info keyInfo
			require.NoError(t, yaml.Unmarshal([]byte(out), &info))
			require.Equal(t, "relay", info.KeyID)
			require.Equal(t, pkHex, info.PublicKey)
			require.Contains(t, out, "key_id: relay")
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.output, func(t *testing.T) {
			setFlags(t, ShowKeyCmd, "output", tc.output)
			out, err := run(t, ShowKeyCmd, "relay")
			require.NoError(t, err)
			tc.check(t, out)
		})
	}

	setFlags(t, ShowKeyCmd, "output", "xml")
	_, err = run(t, ShowKeyCmd, "relay")
	require.Error(t, err)
}

func TestKeyIDsAreValidated(t *testing.T) {
	setupHome(t)

	for _, id := range []string{"../escape", ".hidden"} {
		_, err := run(t, KeygenCmd, id)
		require.Error(t, err, id)
	}
}
