package game

import (
	"math/rand"
	"testing"
)

func testBoard(t *testing.T) *Board {
	t.Helper()
	b, err := NewBoard(2, 3, 100, 140, 10)
	if err != nil {
		t.Fatalf("NewBoard failed: %v", err)
	}
	return b
}

func TestNewBoardDimensions(t *testing.T) {
	b := testBoard(t)
	if b.Width != 3*100+2*10 {
		t.Errorf("Expected width %v, got %v", 3*100+2*10, b.Width)
	}
	if b.Height != 2*140+1*10 {
		t.Errorf("Expected height %v, got %v", 2*140+1*10, b.Height)
	}
	if b.Cells() != 6 || b.Pairs() != 3 {
		t.Errorf("Expected 6 cells / 3 pairs, got %d / %d", b.Cells(), b.Pairs())
	}
}

func TestNewBoardOdd(t *testing.T) {
	if _, err := NewBoard(3, 5, 100, 140, 10); err == nil {
		t.Errorf("Expected an error for a 3x5 board, got none")
	}
	if _, err := NewBoard(-1, 4, 100, 140, 10); err == nil {
		t.Errorf("Expected an error for negative rows, got none")
	}
}

func TestPositionOf(t *testing.T) {
	b := testBoard(t)

	cases := []struct {
		index int
		x, y  float64
	}{
		{0, 50, 70},   // row 0, col 0
		{1, 160, 70},  // row 0, col 1
		{3, 50, 220},  // row 1, col 0
		{5, 270, 220}, // row 1, col 2
	}
	for _, c := range cases {
		x, y, err := b.PositionOf(c.index)
		if err != nil {
			t.Fatalf("PositionOf(%d) failed: %v", c.index, err)
		}
		if x != c.x || y != c.y {
			t.Errorf("PositionOf(%d) = (%v,%v), expected (%v,%v)", c.index, x, y, c.x, c.y)
		}
	}

	if _, _, err := b.PositionOf(6); err == nil {
		t.Errorf("Expected an error for index 6 on a 6-cell board")
	}
	if _, _, err := b.PositionOf(-1); err == nil {
		t.Errorf("Expected an error for index -1")
	}
}

func TestIndexAt(t *testing.T) {
	b := testBoard(t)

	cases := []struct {
		name string
		x, y float64
		want int
	}{
		{"card 0 center", 50, 70, 0},
		{"card 0 origin", 0, 0, 0},
		{"card 1 left edge", 110, 70, 1},
		{"last card", 270, 220, 5},
		{"horizontal gap", 105, 70, -1},
		{"vertical gap", 50, 145, -1},
		{"right of grid", 320, 70, -1},
		{"below grid", 50, 290, -1},
		{"negative", -5, 70, -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := b.IndexAt(c.x, c.y); got != c.want {
				t.Errorf("IndexAt(%v,%v) = %d, expected %d", c.x, c.y, got, c.want)
			}
		})
	}
}

func TestIndexAtRoundTrip(t *testing.T) {
	b := testBoard(t)
	for i := 0; i < b.Cells(); i++ {
		x, y, err := b.PositionOf(i)
		if err != nil {
			t.Fatal(err)
		}
		if got := b.IndexAt(x, y); got != i {
			t.Errorf("IndexAt of center of card %d resolved to %d", i, got)
		}
	}
}

func TestDealCards(t *testing.T) {
	b := testBoard(t)
	cards, err := b.DealCards(rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("DealCards failed: %v", err)
	}
	if len(cards) != 6 {
		t.Fatalf("Expected 6 cards, got %d", len(cards))
	}
	for i, c := range cards {
		if c.ID != i {
			t.Errorf("Card at index %d has ID %d", i, c.ID)
		}
		x, y, _ := b.PositionOf(i)
		if c.X != x || c.Y != y {
			t.Errorf("Card %d at (%v,%v), expected (%v,%v)", i, c.X, c.Y, x, y)
		}
		if c.Width != b.CardWidth || c.Height != b.CardHeight {
			t.Errorf("Card %d has size (%v,%v), expected (%v,%v)", i, c.Width, c.Height, b.CardWidth, b.CardHeight)
		}
		if c.Flipped || c.Matched || c.FlipProgress != 0 {
			t.Errorf("Card %d not at face-down rest: %+v", i, c)
		}
	}
}
