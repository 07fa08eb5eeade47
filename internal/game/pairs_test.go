package game

import (
	"fmt"
	"math/rand"
	"testing"
)

func TestGeneratePairsCounts(t *testing.T) {
	shapes := [][2]int{{1, 2}, {2, 2}, {2, 3}, {4, 4}, {5, 4}, {6, 6}}

	for _, shape := range shapes {
		rows, columns := shape[0], shape[1]
		t.Run(fmt.Sprintf("%dx%d", rows, columns), func(t *testing.T) {
			values, err := GeneratePairs(rows, columns, rand.New(rand.NewSource(1)))
			if err != nil {
				t.Fatalf("GeneratePairs(%d, %d) failed: %v", rows, columns, err)
			}
			if len(values) != rows*columns {
				t.Fatalf("Expected %d values, got %d", rows*columns, len(values))
			}

			counts := make(map[int]int)
			for _, v := range values {
				counts[v]++
			}
			pairs := rows * columns / 2
			if len(counts) != pairs {
				t.Errorf("Expected %d distinct values, got %d", pairs, len(counts))
			}
			for v := 1; v <= pairs; v++ {
				if counts[v] != 2 {
					t.Errorf("Expected value %d to appear exactly twice, got %d times", v, counts[v])
				}
			}
		})
	}
}

func TestGeneratePairsOddBoard(t *testing.T) {
	if _, err := GeneratePairs(3, 5, nil); err == nil {
		t.Errorf("Expected an error for a 3x5 board, got none")
	}
	if _, err := GeneratePairs(0, 4, nil); err == nil {
		t.Errorf("Expected an error for a 0x4 board, got none")
	}
}

func TestGeneratePairsDeterministic(t *testing.T) {
	a, err := GeneratePairs(4, 4, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := GeneratePairs(4, 4, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Same seed produced different sequences: %v vs %v", a, b)
		}
	}
}

func TestHasAdjacentPair(t *testing.T) {
	if hasAdjacentPair([]int{1, 2, 1, 2}) {
		t.Errorf("Expected no adjacent pair in 1,2,1,2")
	}
	if !hasAdjacentPair([]int{1, 2, 2, 1}) {
		t.Errorf("Expected adjacent pair in 1,2,2,1")
	}
	if hasAdjacentPair([]int{1}) || hasAdjacentPair(nil) {
		t.Errorf("Short sequences cannot have adjacent pairs")
	}
}

func TestGeneratePairsFairnessBestEffort(t *testing.T) {
	// The reshuffle is bounded, so adjacency is best-effort, not
	// guaranteed. The only hard guarantee worth pinning is that a valid
	// sequence always comes back, whatever the seed rolls.
	for seed := int64(0); seed < 50; seed++ {
		values, err := GeneratePairs(2, 2, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if len(values) != 4 {
			t.Fatalf("seed %d: expected 4 values, got %d", seed, len(values))
		}
	}
}
