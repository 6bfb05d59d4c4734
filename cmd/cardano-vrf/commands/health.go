package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Finschia/cardano-vrf/privval"
)

// HealthCmd checks that the configured backend is usable.
var HealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the configured key backend is usable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		signer, err := newSigner()
		if err != nil {
			return err
		}
		if _, err := handle(signer, nil, &privval.PingRequest{}); err != nil {
			return fmt.Errorf("%s backend unhealthy: %w", config.Signer.Backend, err)
		}
		fmt.Println("OK")
		return nil
	},
}
