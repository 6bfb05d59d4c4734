package commands

import (
	"github.com/spf13/cobra"

	cfg "github.com/Finschia/cardano-vrf/config"
	"github.com/Finschia/cardano-vrf/crypto/vrf"
	"github.com/Finschia/cardano-vrf/privval"
)

// NewInitCmd returns the command that writes config.toml and prepares the
// key storage.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the home directory and key storage",
		RunE:  initFiles,
	}

	AddInitFlags(cmd)
	return cmd
}

func AddInitFlags(cmd *cobra.Command) {
	cmd.Flags().String("backend", config.Signer.Backend,
		"Specify the key backend (software | pkcs11 | aws-cloudhsm | azure-keyvault)")
	cmd.Flags().String("suite", config.Signer.Suite,
		"Specify the proof format produced by prove (draft03 | draft13)")
	cmd.Flags().String("key_storage_path", config.Signer.KeyStoragePath,
		"Directory of the software backend key files")
}

func initFiles(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("backend") {
		config.Signer.Backend, _ = cmd.Flags().GetString("backend")
	}
	if cmd.Flags().Changed("suite") {
		suite, _ := cmd.Flags().GetString("suite")
		s, err := vrf.ParseSuite(suite)
		if err != nil {
			return err
		}
		config.Signer.Suite = s.String()
	}
	if cmd.Flags().Changed("key_storage_path") {
		config.Signer.KeyStoragePath, _ = cmd.Flags().GetString("key_storage_path")
	}
	return initFilesWithConfig(config)
}

func initFilesWithConfig(config *cfg.Config) error {
	if err := cfg.EnsureRoot(config.RootDir); err != nil {
		return err
	}
	if err := config.ValidateBasic(); err != nil {
		return err
	}

	// Save default settings with additional command-line specified options
	// (default settings implicitly saved by EnsureRoot will be overwritten).
	if err := config.Save(); err != nil {
		return err
	}
	logger.Info("Saved config", "path", config.ConfigFile())

	if config.Signer.Backend != privval.BackendSoftware {
		logger.Info("Key storage is managed by the backend", "backend", config.Signer.Backend)
		return nil
	}

	signer, err := config.Signer.NewSigner()
	if err != nil {
		return err
	}
	if err := signer.HealthCheck(); err != nil {
		return err
	}
	logger.Info("Key storage ready", "path", config.Signer.KeyStorageDir(), "suite", config.Signer.Suite)
	return nil
}
