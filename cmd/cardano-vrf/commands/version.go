package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Finschia/cardano-vrf/crypto/vrf"
	"github.com/Finschia/cardano-vrf/version"
)

// VersionCmd prints the version and the supported proof formats.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version info",
	Run: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		fmt.Println(version.Version)
		if verbose {
			for _, s := range []vrf.Suite{vrf.Draft03, vrf.Draft13} {
				fmt.Printf("%s: suite 0x%02x, %d byte proofs\n", s, byte(s), s.ProofSize())
			}
		}
	},
}

func init() {
	VersionCmd.Flags().BoolP("verbose", "v", false, "list the supported proof formats")
}
