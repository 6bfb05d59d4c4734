package rand

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"sort"
)

// Candidate is a participant of a stake weighted draw, such as a stake pool.
type Candidate struct {
	ID    string
	Stake uint64
}

// SeedFromOutput folds the first 8 bytes of a VRF output into the sampler
// seed.
func SeedFromOutput(output []byte) (uint64, error) {
	if len(output) < 8 {
		return 0, fmt.Errorf("vrf output too short: %d bytes", len(output))
	}
	return binary.BigEndian.Uint64(output[:8]), nil
}

// SampleByStake picks sampleSize candidates with probability proportional to
// their stake. The draw is a pure function of (seed, candidates order,
// sampleSize); the same candidate may be drawn more than once.
//
// Errors are returned for an empty candidate list, zero total stake or an
// overflowing total.
func SampleByStake(seed uint64, candidates []Candidate, sampleSize int) ([]Candidate, error) {
	totalStake, err := totalStake(candidates)
	if err != nil {
		return nil, err
	}
	if sampleSize <= 0 {
		return []Candidate{}, nil
	}

	// draw sorted thresholds on the cumulative stake line
	thresholds := make([]uint64, sampleSize)
	for i := 0; i < sampleSize; i++ {
		// [total stake] × [(0,1] random number]
		thresholds[i] = RandomThreshold(&seed, totalStake)
	}
	sort.Slice(thresholds, func(i, j int) bool { return thresholds[i] < thresholds[j] })

	samples := make([]Candidate, 0, sampleSize)
	cumulative := uint64(0)
	for _, c := range candidates {
		for len(samples) < sampleSize && thresholds[len(samples)] < cumulative+c.Stake {
			samples = append(samples, c)
		}
		if len(samples) == sampleSize {
			return samples, nil
		}
		cumulative += c.Stake
	}

	// thresholds are below totalStake, so every one is consumed above
	return nil, fmt.Errorf("cannot select samples; totalStake=%d, seed=%d, sampleSize=%d, drawn=%d",
		totalStake, seed, sampleSize, len(samples))
}

// SampleByStakeFromOutput is SampleByStake seeded from a VRF output.
func SampleByStakeFromOutput(output []byte, candidates []Candidate, sampleSize int) ([]Candidate, error) {
	seed, err := SeedFromOutput(output)
	if err != nil {
		return nil, err
	}
	return SampleByStake(seed, candidates, sampleSize)
}

const uint64Mask = uint64(0x7FFFFFFFFFFFFFFF)

var divider *big.Int

func init() {
	divider = big.NewInt(int64(uint64Mask))
	divider.Add(divider, big.NewInt(1))
}

// RandomThreshold advances seed and scales the draw into [0, total).
func RandomThreshold(seed *uint64, total uint64) uint64 {
	totalBig := new(big.Int).SetUint64(total)
	a := new(big.Int).SetUint64(nextRandom(seed) & uint64Mask)
	a.Mul(a, totalBig)
	a.Div(a, divider)
	return a.Uint64()
}

// SplitMix64
// http://xoshiro.di.unimi.it/splitmix64.c
//
// The generator must be deterministic and easy to reproduce in other
// languages. A long period is not needed since only a few numbers are drawn
// per seed.
func nextRandom(rand *uint64) uint64 {
	*rand += uint64(0x9e3779b97f4a7c15)
	var z = *rand
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func totalStake(candidates []Candidate) (uint64, error) {
	if len(candidates) == 0 {
		return 0, fmt.Errorf("candidates is empty")
	}
	total := uint64(0)
	for _, c := range candidates {
		if total+c.Stake < total {
			return 0, fmt.Errorf("total stake overflows; candidate=%s, stake=%d", c.ID, c.Stake)
		}
		total += c.Stake
	}
	if total == 0 {
		return 0, fmt.Errorf("total stake is zero; len(candidates)=%d", len(candidates))
	}
	return total, nil
}
