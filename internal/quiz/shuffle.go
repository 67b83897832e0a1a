package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"
)

const (
	ShuffleUniform = "uniform"
	ShuffleBiased  = "biased"
)

var ErrUnknownShuffle = errors.New("unknown shuffle mode")

// Shuffler reorders answer choices in place.
type Shuffler func(choices []string)

// NewUniformShuffler returns a Fisher-Yates shuffle.
func NewUniformShuffler(rng *rand.Rand) Shuffler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return func(choices []string) {
		rng.Shuffle(len(choices), func(i, j int) {
			choices[i], choices[j] = choices[j], choices[i]
		})
	}
}

// NewBiasedShuffler sorts with a comparator that returns a random sign on
// every comparison. The resulting permutations are not uniformly distributed;
// it exists for parity with clients that shuffle this way.
func NewBiasedShuffler(rng *rand.Rand) Shuffler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return func(choices []string) {
		sort.SliceStable(choices, func(_, _ int) bool {
			return rng.Float64()-0.5 < 0
		})
	}
}

// NewShuffler resolves a configured shuffle mode.
func NewShuffler(mode string, rng *rand.Rand) (Shuffler, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ShuffleUniform:
		return NewUniformShuffler(rng), nil
	case ShuffleBiased:
		return NewBiasedShuffler(rng), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShuffle, mode)
	}
}
