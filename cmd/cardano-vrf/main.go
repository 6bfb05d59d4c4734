package main

import (
	"os"
	"path/filepath"

	cmd "github.com/Finschia/cardano-vrf/cmd/cardano-vrf/commands"
	cfg "github.com/Finschia/cardano-vrf/config"
	"github.com/Finschia/cardano-vrf/libs/cli"
)

func main() {
	rootCmd := cmd.RootCmd
	rootCmd.AddCommand(
		cmd.NewInitCmd(),
		cmd.KeygenCmd,
		cmd.ShowKeyCmd,
		cmd.ListKeysCmd,
		cmd.DeleteKeyCmd,
		cmd.ProveCmd,
		cmd.VerifyCmd,
		cmd.ProofToHashCmd,
		cmd.SelectCmd,
		cmd.HealthCmd,
		cmd.MetricsCmd,
		cmd.VersionCmd,
	)

	userHome, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	executor := cli.PrepareBaseCmd(rootCmd, "CVRF", filepath.Join(userHome, cfg.DefaultCardanoVRFDir))
	if err := executor.Execute(); err != nil {
		os.Exit(1)
	}
}
