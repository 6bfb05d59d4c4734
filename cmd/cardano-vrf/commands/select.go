package commands

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Finschia/cardano-vrf/crypto/vrf"
	"github.com/Finschia/cardano-vrf/libs/rand"
)

// SelectCmd draws stake weighted candidates seeded by the output of a proof.
var SelectCmd = &cobra.Command{
	Use:   "select",
	Short: "Draw stake weighted candidates seeded by the VRF output of a proof",
	Long: `Draw stake weighted candidates seeded by the VRF output of a proof.

The proof is verified against --pubkey and the message first, as verify does.
Pass --trusted to skip that for a proof that was already checked.
Candidates are given as id=stake pairs, e.g. --stakes pool-a=100,pool-b=50.`,
	Args: cobra.NoArgs,
	RunE: selectCandidates,
}

func init() {
	SelectCmd.Flags().String("pubkey", "", "public key, hex or vrf_vk bech32")
	SelectCmd.Flags().String("proof", "", "proof in hex")
	SelectCmd.Flags().String("suite", suiteAuto, "proof format (auto | draft03 | draft13)")
	SelectCmd.Flags().Bool("trusted", false, "skip verification and hash the proof as is")
	addMessageFlags(SelectCmd)
	SelectCmd.Flags().String("stakes", "", "comma separated id=stake pairs")
	SelectCmd.Flags().Int("count", 1, "number of draws")
	SelectCmd.Flags().StringP("output", "o", "text", "output format (text | json)")
}

func parseStakes(s string) ([]rand.Candidate, error) {
	if s == "" {
		return nil, fmt.Errorf("--stakes is required")
	}
	pairs := strings.Split(s, ",")
	candidates := make([]rand.Candidate, 0, len(pairs))
	for _, pair := range pairs {
		idAndStake := strings.Split(strings.TrimSpace(pair), "=")
		if len(idAndStake) != 2 || idAndStake[0] == "" {
			return nil, fmt.Errorf("expected id=stake, got %q", pair)
		}
		stake, err := strconv.ParseUint(idAndStake[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid stake for %s: %w", idAndStake[0], err)
		}
		candidates = append(candidates, rand.Candidate{ID: idAndStake[0], Stake: stake})
	}
	return candidates, nil
}

// selectionSeed returns the VRF output the draw is seeded with.
func selectionSeed(cmd *cobra.Command) ([]byte, error) {
	if trusted, _ := cmd.Flags().GetBool("trusted"); !trusted {
		return verifiedOutput(cmd)
	}
	proof, err := requiredProof(cmd)
	if err != nil {
		return nil, err
	}
	beta, err := vrf.Proof(proof).ToHash()
	if err != nil {
		return nil, err
	}
	return beta, nil
}

func selectCandidates(cmd *cobra.Command, args []string) error {
	stakes, _ := cmd.Flags().GetString("stakes")
	candidates, err := parseStakes(stakes)
	if err != nil {
		return err
	}
	count, _ := cmd.Flags().GetInt("count")
	output, _ := cmd.Flags().GetString("output")

	beta, err := selectionSeed(cmd)
	if err != nil {
		return err
	}
	elected, err := rand.SampleByStakeFromOutput(beta, candidates, count)
	if err != nil {
		return err
	}

	ids := make([]string, len(elected))
	for i, c := range elected {
		ids[i] = c.ID
	}
	switch output {
	case "text":
		for _, id := range ids {
			fmt.Println(id)
		}
	case outputJSON:
		bz, err := json.Marshal(ids)
		if err != nil {
			return err
		}
		fmt.Println(string(bz))
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
	return nil
}
