package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const configHeader = `# This is a TOML config file.
# For more information, see https://github.com/toml-lang/toml

# NOTE: Any path below can be absolute (e.g. "/var/cardano-vrf/data") or
# relative to the home directory (e.g. "data"). The home directory is
# "$HOME/.cardano-vrf" by default, but could be changed via $CVRF_HOME env
# variable or --home cmd flag.

`

// WriteConfigFile renders config and writes it to configFilePath.
func WriteConfigFile(configFilePath string, config *Config) error {
	var buf bytes.Buffer
	buf.WriteString(configHeader)
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(configFilePath, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", configFilePath, err)
	}
	return nil
}

// Save writes the config to its home directory.
func (cfg *Config) Save() error {
	return WriteConfigFile(cfg.ConfigFile(), cfg)
}

// ReadConfigFile decodes a file written by WriteConfigFile. Viper is the
// normal read path; this is used where no viper instance is available.
func ReadConfigFile(configFilePath string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(configFilePath, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", configFilePath, err)
	}
	return cfg, nil
}
