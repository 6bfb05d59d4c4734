package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Finschia/cardano-vrf/crypto/vrf"
	"github.com/Finschia/cardano-vrf/libs/log"
	"github.com/Finschia/cardano-vrf/privval"
)

const (
	// LogFormatPlain is a format for colored text
	LogFormatPlain = "plain"
	// LogFormatJSON is a format for json output
	LogFormatJSON = "json"

	// DefaultLogLevel defines a default log level as INFO.
	DefaultLogLevel = "info"

	// DefaultCardanoVRFDir is the home directory used when --home is not given.
	DefaultCardanoVRFDir = ".cardano-vrf"

	defaultConfigDir  = "config"
	defaultDataDir    = "data"
	defaultKeysSubDir = "keys"

	defaultConfigFileName = "config.toml"
)

var (
	defaultConfigFilePath = filepath.Join(defaultConfigDir, defaultConfigFileName)
	defaultKeyStoragePath = filepath.Join(defaultDataDir, defaultKeysSubDir)
)

// Config defines the top level configuration for the cardano-vrf tool.
type Config struct {
	// Top level options use an anonymous struct
	BaseConfig `mapstructure:",squash"`

	// Options for services
	Signer          *SignerConfig          `mapstructure:"signer" toml:"signer"`
	Log             *LogConfig             `mapstructure:"log" toml:"log"`
	Instrumentation *InstrumentationConfig `mapstructure:"instrumentation" toml:"instrumentation"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseConfig:      DefaultBaseConfig(),
		Signer:          DefaultSignerConfig(),
		Log:             DefaultLogConfig(),
		Instrumentation: DefaultInstrumentationConfig(),
	}
}

// TestConfig returns a configuration that can be used for testing
func TestConfig() *Config {
	return &Config{
		BaseConfig:      TestBaseConfig(),
		Signer:          DefaultSignerConfig(),
		Log:             TestLogConfig(),
		Instrumentation: TestInstrumentationConfig(),
	}
}

// SetRoot sets the RootDir for all Config structs
func (cfg *Config) SetRoot(root string) *Config {
	cfg.BaseConfig.RootDir = root
	cfg.Signer.RootDir = root
	cfg.Log.RootDir = root
	return cfg
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg *Config) ValidateBasic() error {
	if err := cfg.BaseConfig.ValidateBasic(); err != nil {
		return err
	}
	if err := cfg.Signer.ValidateBasic(); err != nil {
		return fmt.Errorf("error in [signer] section: %w", err)
	}
	if err := cfg.Log.ValidateBasic(); err != nil {
		return fmt.Errorf("error in [log] section: %w", err)
	}
	if err := cfg.Instrumentation.ValidateBasic(); err != nil {
		return fmt.Errorf("error in [instrumentation] section: %w", err)
	}
	return nil
}

//-----------------------------------------------------------------------------
// BaseConfig

// BaseConfig defines the base configuration for the cardano-vrf tool
type BaseConfig struct {
	// The root directory for all data.
	// This should be set in viper so it can unmarshal into this struct
	RootDir string `mapstructure:"home" toml:"-"`

	// Output level for logging
	LogLevel string `mapstructure:"log_level" toml:"log_level"`

	// Output format: 'plain' (colored text) or 'json'
	LogFormat string `mapstructure:"log_format" toml:"log_format"`
}

// DefaultBaseConfig returns a default base configuration
func DefaultBaseConfig() BaseConfig {
	return BaseConfig{
		LogLevel:  DefaultLogLevel,
		LogFormat: LogFormatPlain,
	}
}

// TestBaseConfig returns a base configuration for testing
func TestBaseConfig() BaseConfig {
	cfg := DefaultBaseConfig()
	cfg.LogLevel = "error"
	return cfg
}

// ConfigFile returns the full path to the config.toml file
func (cfg BaseConfig) ConfigFile() string {
	return rootify(defaultConfigFilePath, cfg.RootDir)
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg BaseConfig) ValidateBasic() error {
	switch cfg.LogFormat {
	case LogFormatPlain, LogFormatJSON:
	default:
		return errors.New("unknown log_format (must be 'plain' or 'json')")
	}
	return nil
}

//-----------------------------------------------------------------------------
// SignerConfig

// SignerConfig selects and configures the key backend. Only the fields of
// the selected backend are read.
type SignerConfig struct {
	RootDir string `mapstructure:"home" toml:"-"`

	// One of software, pkcs11, aws-cloudhsm, azure-keyvault
	Backend string `mapstructure:"backend" toml:"backend"`

	// Proof format produced by prove: draft03 or draft13
	Suite string `mapstructure:"suite" toml:"suite"`

	// Directory of {key_id}.key files, relative to the home directory
	// unless absolute
	KeyStoragePath string `mapstructure:"key_storage_path" toml:"key_storage_path"`

	// If non-empty, only these key ids can be used
	AllowedKeyIDs []string `mapstructure:"allowed_key_ids" toml:"allowed_key_ids"`

	Pkcs11LibraryPath string `mapstructure:"pkcs11_library_path" toml:"pkcs11_library_path"`
	Pkcs11SlotID      uint64 `mapstructure:"pkcs11_slot_id" toml:"pkcs11_slot_id"`
	Pkcs11Pin         string `mapstructure:"pkcs11_pin" toml:"pkcs11_pin"`

	AwsClusterID string `mapstructure:"aws_cluster_id" toml:"aws_cluster_id"`
	AwsUser      string `mapstructure:"aws_user" toml:"aws_user"`
	AwsPassword  string `mapstructure:"aws_password" toml:"aws_password"`

	AzureVaultURL     string `mapstructure:"azure_vault_url" toml:"azure_vault_url"`
	AzureClientID     string `mapstructure:"azure_client_id" toml:"azure_client_id"`
	AzureClientSecret string `mapstructure:"azure_client_secret" toml:"azure_client_secret"`
	AzureTenantID     string `mapstructure:"azure_tenant_id" toml:"azure_tenant_id"`
}

// DefaultSignerConfig returns a software signer storing keys under
// data/keys.
func DefaultSignerConfig() *SignerConfig {
	return &SignerConfig{
		Backend:        privval.BackendSoftware,
		Suite:          vrf.Draft03.String(),
		KeyStoragePath: defaultKeyStoragePath,
		AllowedKeyIDs:  []string{},
	}
}

// KeyStorageDir returns the absolute key directory.
func (cfg *SignerConfig) KeyStorageDir() string {
	return rootify(cfg.KeyStoragePath, cfg.RootDir)
}

// ProofSuite parses Suite.
func (cfg *SignerConfig) ProofSuite() (vrf.Suite, error) {
	return vrf.ParseSuite(cfg.Suite)
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg *SignerConfig) ValidateBasic() error {
	if _, err := cfg.ProofSuite(); err != nil {
		return err
	}
	switch cfg.Backend {
	case privval.BackendSoftware:
		if cfg.KeyStoragePath == "" {
			return errors.New("key_storage_path can't be empty")
		}
	case privval.BackendPkcs11:
		if cfg.Pkcs11LibraryPath == "" {
			return errors.New("pkcs11_library_path can't be empty")
		}
	case privval.BackendAwsCloudHsm:
		if cfg.AwsClusterID == "" {
			return errors.New("aws_cluster_id can't be empty")
		}
	case privval.BackendAzureKeyVault:
		if cfg.AzureVaultURL == "" {
			return errors.New("azure_vault_url can't be empty")
		}
	default:
		return fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	return nil
}

// ToPrivval builds the tagged backend configuration.
func (cfg *SignerConfig) ToPrivval() (privval.Config, error) {
	if err := cfg.ValidateBasic(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case privval.BackendPkcs11:
		return privval.Pkcs11Config{
			LibraryPath: cfg.Pkcs11LibraryPath,
			SlotID:      cfg.Pkcs11SlotID,
			Pin:         cfg.Pkcs11Pin,
		}, nil
	case privval.BackendAwsCloudHsm:
		return privval.AwsCloudHsmConfig{
			ClusterID: cfg.AwsClusterID,
			User:      cfg.AwsUser,
			Password:  cfg.AwsPassword,
		}, nil
	case privval.BackendAzureKeyVault:
		return privval.AzureKeyVaultConfig{
			VaultURL:     cfg.AzureVaultURL,
			ClientID:     cfg.AzureClientID,
			ClientSecret: cfg.AzureClientSecret,
			TenantID:     cfg.AzureTenantID,
		}, nil
	default:
		return privval.SoftwareConfig{KeyStoragePath: cfg.KeyStorageDir()}, nil
	}
}

// NewSigner builds the configured signer with the configured suite and
// allow list.
func (cfg *SignerConfig) NewSigner() (privval.Signer, error) {
	pvCfg, err := cfg.ToPrivval()
	if err != nil {
		return nil, err
	}
	suite, _ := cfg.ProofSuite()
	opts := []privval.FileSignerOption{privval.WithSuite(suite)}
	if len(cfg.AllowedKeyIDs) > 0 {
		opts = append(opts, privval.WithAllowedKeyIDs(cfg.AllowedKeyIDs))
	}
	return privval.NewSigner(pvCfg, opts...)
}

//-----------------------------------------------------------------------------
// LogConfig

// LogConfig configures the zerolog file output and the VRF operation log.
type LogConfig struct {
	RootDir string `mapstructure:"home" toml:"-"`

	// Minimum level of prove/verify/key operation entries: debug, info,
	// warn or error
	OperationLevel string `mapstructure:"operation_level" toml:"operation_level"`

	// If set, logs also go to this file through zerolog with rotation.
	// Relative to the home directory unless absolute.
	Path       string `mapstructure:"path" toml:"path"`
	MaxAge     int    `mapstructure:"max_age" toml:"max_age"`
	MaxSize    int    `mapstructure:"max_size" toml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups"`
}

func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		OperationLevel: "info",
		MaxAge:         7,
		MaxSize:        100,
		MaxBackups:     10,
	}
}

func TestLogConfig() *LogConfig {
	cfg := DefaultLogConfig()
	cfg.OperationLevel = "error"
	return cfg
}

// FilePath returns the absolute log file path, or "" when file logging is off.
func (cfg *LogConfig) FilePath() string {
	if cfg.Path == "" {
		return ""
	}
	return rootify(cfg.Path, cfg.RootDir)
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg *LogConfig) ValidateBasic() error {
	if _, err := log.ParseOperationLevel(cfg.OperationLevel); err != nil {
		return err
	}
	if cfg.MaxAge < 0 {
		return errors.New("max_age can't be negative")
	}
	if cfg.MaxSize < 0 {
		return errors.New("max_size can't be negative")
	}
	if cfg.MaxBackups < 0 {
		return errors.New("max_backups can't be negative")
	}
	return nil
}

//-----------------------------------------------------------------------------
// InstrumentationConfig

// InstrumentationConfig defines the configuration for metrics reporting.
type InstrumentationConfig struct {
	// When true, Prometheus metrics are served under /metrics on
	// PrometheusListenAddr.
	Prometheus bool `mapstructure:"prometheus" toml:"prometheus"`

	// Address to listen for Prometheus collector(s) connections.
	PrometheusListenAddr string `mapstructure:"prometheus_listen_addr" toml:"prometheus_listen_addr"`

	// Instrumentation namespace.
	Namespace string `mapstructure:"namespace" toml:"namespace"`
}

// DefaultInstrumentationConfig returns a default configuration for metrics
// reporting.
func DefaultInstrumentationConfig() *InstrumentationConfig {
	return &InstrumentationConfig{
		Prometheus:           false,
		PrometheusListenAddr: ":26660",
		Namespace:            "cardano_vrf",
	}
}

// TestInstrumentationConfig returns a default configuration for metrics
// reporting.
func TestInstrumentationConfig() *InstrumentationConfig {
	return DefaultInstrumentationConfig()
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg *InstrumentationConfig) ValidateBasic() error {
	if cfg.Prometheus && cfg.PrometheusListenAddr == "" {
		return errors.New("prometheus_listen_addr can't be empty when prometheus is enabled")
	}
	return nil
}

//-----------------------------------------------------------------------------
// Utils

// helper function to make config creation independent of root dir
func rootify(path, root string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// EnsureRoot creates the root, config, and data directories if they don't
// exist, and writes the default config file if one is missing.
func EnsureRoot(rootDir string) error {
	for _, dir := range []string{
		rootDir,
		filepath.Join(rootDir, defaultConfigDir),
		filepath.Join(rootDir, defaultDataDir),
	} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("could not create directory %q: %w", dir, err)
		}
	}

	configFilePath := filepath.Join(rootDir, defaultConfigFilePath)
	if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
		return WriteConfigFile(configFilePath, DefaultConfig())
	}
	return nil
}
