package game

import (
	"fmt"
	"math/rand"
	"time"
)

// maxShuffleAttempts bounds the fairness pass: after this many
// re-permutations the sequence is accepted even if two identical values
// ended up adjacent.
const maxShuffleAttempts = 3

// GeneratePairs produces the shuffled value sequence for a rows x columns
// board: every value in 1..pairs appears exactly twice. The permutation is
// an unbiased Fisher-Yates shuffle; if identical values land next to each
// other the sequence is re-shuffled, a bounded number of times.
//
// A nil rng uses a time-seeded source; pass a seeded *rand.Rand to get a
// reproducible sequence.
func GeneratePairs(rows, columns int, rng *rand.Rand) ([]int, error) {
	total := rows * columns
	if total <= 0 {
		return nil, fmt.Errorf("board shape must be positive, got %dx%d", rows, columns)
	}
	if total%2 != 0 {
		return nil, fmt.Errorf("board %dx%d has an odd number of cells, cannot form pairs", rows, columns)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	values := make([]int, total)
	for i := 0; i < total/2; i++ {
		values[2*i] = i + 1
		values[2*i+1] = i + 1
	}

	for attempt := 0; ; attempt++ {
		rng.Shuffle(total, func(i, j int) {
			values[i], values[j] = values[j], values[i]
		})
		if !hasAdjacentPair(values) || attempt >= maxShuffleAttempts {
			return values, nil
		}
	}
}

func hasAdjacentPair(values []int) bool {
	for i := 1; i < len(values); i++ {
		if values[i] == values[i-1] {
			return true
		}
	}
	return false
}
