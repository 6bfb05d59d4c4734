package rand

import (
	"bytes"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Finschia/cardano-vrf/crypto/vrf"
)

func TestSampleByStake(t *testing.T) {
	candidates := newCandidates(100, func(i int) uint64 { return uint64(i) })
	elected, err := SampleByStake(0, candidates, 10)
	require.NoError(t, err)
	require.Len(t, elected, 10)

	// ----
	// The same result can be obtained for the same input.
	others := newCandidates(100, func(i int) uint64 { return uint64(i) })
	secondTimeElected, err := SampleByStake(0, others, 10)
	require.NoError(t, err)
	require.Equal(t, elected, secondTimeElected)

	// zero stake candidates are never drawn
	for _, e := range elected {
		require.NotEqual(t, "pool-0", e.ID)
	}

	// ----
	// Make sure the winning frequency will be even
	candidates = newCandidates(100, func(i int) uint64 { return 1 })
	index := make(map[string]int, len(candidates))
	for i, c := range candidates {
		index[c.ID] = i
	}
	counts := make([]int, len(candidates))
	for i := 0; i < 100000; i++ {
		elected, err = SampleByStake(uint64(i), candidates, 10)
		require.NoError(t, err)
		for _, e := range elected {
			counts[index[e.ID]]++
		}
	}
	expected := float64(1) / float64(100)
	mean, variance, z := calculateZ(expected, counts)
	if math.Abs(z) >= 1e-6 || math.Abs(mean-expected) >= 1e-12 || variance >= 1e-5 {
		t.Errorf("winning frequency is uneven: mean=%f, variance=%e, z=%e", mean, variance, z)
	}
}

func TestSampleByStakeErrors(t *testing.T) {
	cases := map[string][]Candidate{
		"empty":      {},
		"zero stake": {{ID: "a"}, {ID: "b"}},
		"overflow":   {{ID: "a", Stake: math.MaxUint64}, {ID: "b", Stake: 1}},
	}
	for name, candidates := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := SampleByStake(1, candidates, 1)
			require.Error(t, err)
		})
	}

	elected, err := SampleByStake(1, []Candidate{{ID: "a", Stake: 1}}, 0)
	require.NoError(t, err)
	require.Empty(t, elected)
}

func TestSampleByStakeFromOutput(t *testing.T) {
	sk, _, err := vrf.KeypairFromSeed(bytes.Repeat([]byte{1}, vrf.SeedSize))
	require.NoError(t, err)
	proof, err := vrf.Prove(vrf.Draft03, sk, []byte("epoch 42"))
	require.NoError(t, err)
	output, err := proof.ToHash()
	require.NoError(t, err)

	seed, err := SeedFromOutput(output)
	require.NoError(t, err)

	candidates := []Candidate{{ID: "a", Stake: 5}, {ID: "b", Stake: 3}, {ID: "c", Stake: 2}}
	fromOutput, err := SampleByStakeFromOutput(output, candidates, 3)
	require.NoError(t, err)
	fromSeed, err := SampleByStake(seed, candidates, 3)
	require.NoError(t, err)
	require.Equal(t, fromSeed, fromOutput)

	_, err = SampleByStakeFromOutput(output[:4], candidates, 1)
	require.Error(t, err)
}

func TestRandomThresholdIsBelowTotal(t *testing.T) {
	seed := uint64(7)
	for i := 0; i < 1000; i++ {
		require.Less(t, RandomThreshold(&seed, 10), uint64(10))
	}
}

func newCandidates(length int, stake func(int) uint64) (candidates []Candidate) {
	candidates = make([]Candidate, length)
	for i := 0; i < length; i++ {
		candidates[i] = Candidate{ID: fmt.Sprintf("pool-%d", i), Stake: stake(i)}
	}
	return
}

// The cumulative stakes should follow a normal distribution with a mean as the expected value.
// A risk factor will be able to acquire from the value using a standard normal distribution table by
// applying the transformation to normalize to the expected value.
func calculateZ(expected float64, values []int) (mean, variance, z float64) {
	sum := 0.0
	for i := 0; i < len(values); i++ {
		sum += float64(values[i])
	}
	actuals := make([]float64, len(values))
	for i := 0; i < len(values); i++ {
		actuals[i] = float64(values[i]) / sum
	}
	mean, variance = calculateMeanAndVariance(actuals)
	z = (mean - expected) / math.Sqrt(variance/float64(len(values)))
	return
}

func calculateMeanAndVariance(values []float64) (mean float64, variance float64) {
	sum := 0.0
	for _, x := range values {
		sum += x
	}
	mean = sum / float64(len(values))
	sum2 := 0.0
	for _, x := range values {
		dx := x - mean
		sum2 += dx * dx
	}
	variance = sum2 / float64(len(values))
	return
}
