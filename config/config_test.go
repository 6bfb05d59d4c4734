package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Finschia/cardano-vrf/crypto/vrf"
	"github.com/Finschia/cardano-vrf/privval"
)

func TestDefaultConfig(t *testing.T) {
	assert := assert.New(t)

	// set up some defaults
	cfg := DefaultConfig()
	assert.NotNil(cfg.Signer)
	assert.NotNil(cfg.Log)
	assert.NotNil(cfg.Instrumentation)

	// check the root dir stuff...
	cfg.SetRoot("/foo")
	cfg.Signer.KeyStoragePath = "/opt/keys"
	cfg.Log.Path = "logs/vrf.log"
	assert.Equal("/foo/config/config.toml", cfg.ConfigFile())
	assert.Equal("/opt/keys", cfg.Signer.KeyStorageDir())
	assert.Equal("/foo/logs/vrf.log", cfg.Log.FilePath())

	cfg.Log.Path = ""
	assert.Equal("", cfg.Log.FilePath())
	cfg.Signer.KeyStoragePath = defaultKeyStoragePath
	assert.Equal("/foo/data/keys", cfg.Signer.KeyStorageDir())
}

func TestConfigValidateBasic(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.ValidateBasic())
	assert.NoError(t, TestConfig().ValidateBasic())

	testCases := []struct {
		name   string
		modify func(*Config)
	}{
		{"log format", func(c *Config) { c.LogFormat = "xml" }},
		{"suite", func(c *Config) { c.Signer.Suite = "draft-10" }},
		{"backend", func(c *Config) { c.Signer.Backend = "tpm" }},
		{"key storage", func(c *Config) { c.Signer.KeyStoragePath = "" }},
		{"pkcs11 library", func(c *Config) { c.Signer.Backend = privval.BackendPkcs11 }},
		{"aws cluster", func(c *Config) { c.Signer.Backend = privval.BackendAwsCloudHsm }},
		{"azure vault", func(c *Config) { c.Signer.Backend = privval.BackendAzureKeyVault }},
		{"operation level", func(c *Config) { c.Log.OperationLevel = "trace" }},
		{"log max age", func(c *Config) { c.Log.MaxAge = -1 }},
		{"log max size", func(c *Config) { c.Log.MaxSize = -1 }},
		{"log max backups", func(c *Config) { c.Log.MaxBackups = -1 }},
		{"prometheus addr", func(c *Config) {
			c.Instrumentation.Prometheus = true
			c.Instrumentation.PrometheusListenAddr = ""
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(cfg)
			assert.Error(t, cfg.ValidateBasic())
		})
	}
}

func TestSignerConfigToPrivval(t *testing.T) {
	cfg := DefaultSignerConfig()
	cfg.RootDir = "/home/pool"

	pv, err := cfg.ToPrivval()
	require.NoError(t, err)
	require.Equal(t, privval.SoftwareConfig{KeyStoragePath: "/home/pool/data/keys"}, pv)

	cfg.Backend = privval.BackendPkcs11
	cfg.Pkcs11LibraryPath = "/usr/lib/libsofthsm2.so"
	cfg.Pkcs11SlotID = 2
	cfg.Pkcs11Pin = "0000"
	pv, err = cfg.ToPrivval()
	require.NoError(t, err)
	require.Equal(t, privval.Pkcs11Config{LibraryPath: "/usr/lib/libsofthsm2.so", SlotID: 2, Pin: "0000"}, pv)

	cfg.Backend = privval.BackendAwsCloudHsm
	cfg.AwsClusterID = "cluster-abc"
	cfg.AwsUser = "crypto-user"
	pv, err = cfg.ToPrivval()
	require.NoError(t, err)
	require.Equal(t, privval.AwsCloudHsmConfig{ClusterID: "cluster-abc", User: "crypto-user"}, pv)

	cfg.Backend = privval.BackendAzureKeyVault
	cfg.AzureVaultURL = "https://pool.vault.azure.net"
	cfg.AzureTenantID = "tenant"
	pv, err = cfg.ToPrivval()
	require.NoError(t, err)
	require.Equal(t, privval.AzureKeyVaultConfig{VaultURL: "https://pool.vault.azure.net", TenantID: "tenant"}, pv)

	cfg.Backend = "tpm"
	_, err = cfg.ToPrivval()
	require.Error(t, err)
}

func TestSignerConfigNewSigner(t *testing.T) {
	cfg := DefaultSignerConfig()
	cfg.RootDir = t.TempDir()
	cfg.Suite = "draft13"
	cfg.AllowedKeyIDs = []string{"pool"}

	signer, err := cfg.NewSigner()
	require.NoError(t, err)
	fs, ok := signer.(*privval.FileSigner)
	require.True(t, ok)
	require.Equal(t, vrf.Draft13, fs.Suite())
	require.DirExists(t, filepath.Join(cfg.RootDir, "data", "keys"))

	_, err = signer.GenerateKeypair("pool")
	require.NoError(t, err)
	_, err = signer.GenerateKeypair("other")
	require.True(t, vrf.IsInvalidInput(err))
}

func TestEnsureRoot(t *testing.T) {
	require := require.New(t)

	// setup temp dir for test
	tmpDir := t.TempDir()

	// create root dir
	require.NoError(EnsureRoot(tmpDir))

	// make sure config is set properly
	data, err := os.ReadFile(filepath.Join(tmpDir, defaultConfigFilePath))
	require.Nil(err)
	require.Contains(string(data), `log_level = "info"`)
	require.Contains(string(data), "[signer]")
	require.Contains(string(data), `backend = "software"`)

	ensureFiles(t, tmpDir, "data")

	// an existing file is left alone
	require.NoError(os.WriteFile(filepath.Join(tmpDir, defaultConfigFilePath), []byte("# mine\n"), 0600))
	require.NoError(EnsureRoot(tmpDir))
	data, err = os.ReadFile(filepath.Join(tmpDir, defaultConfigFilePath))
	require.NoError(err)
	require.Equal("# mine\n", string(data))
}

func TestWriteAndReadConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.LogLevel = "signer:debug,*:error"
	cfg.LogFormat = LogFormatJSON
	cfg.Signer.Suite = "draft13"
	cfg.Signer.AllowedKeyIDs = []string{"a", "b"}
	cfg.Instrumentation.Prometheus = true

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, WriteConfigFile(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, err := ReadConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, cfg.BaseConfig, got.BaseConfig)
	require.Equal(t, cfg.Signer, got.Signer)
	require.Equal(t, cfg.Log, got.Log)
	require.Equal(t, cfg.Instrumentation, got.Instrumentation)

	// viper reads the same file into the same struct
	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	fromViper := DefaultConfig()
	require.NoError(t, v.Unmarshal(fromViper))
	require.Equal(t, "draft13", fromViper.Signer.Suite)
	require.Equal(t, []string{"a", "b"}, fromViper.Signer.AllowedKeyIDs)
	require.Equal(t, LogFormatJSON, fromViper.LogFormat)
	require.True(t, fromViper.Instrumentation.Prometheus)

	_, err = ReadConfigFile(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
}

func ensureFiles(t *testing.T, rootDir string, files ...string) {
	for _, f := range files {
		p := filepath.Join(rootDir, f)
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}
}
