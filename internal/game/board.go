package game

import (
	"fmt"
	"math/rand"
)

// Board is the immutable grid layout: shape, card geometry and the derived
// total pixel dimensions. Cards sit on a (CardWidth+Gap) x (CardHeight+Gap)
// cell raster, with the gap trailing each card.
type Board struct {
	Rows    int
	Columns int

	CardWidth  float64
	CardHeight float64
	Gap        float64

	Width  float64
	Height float64
}

// NewBoard validates the grid shape and computes the derived dimensions.
// An odd number of cells cannot be paired up and is a configuration error.
func NewBoard(rows, columns int, cardWidth, cardHeight, gap float64) (*Board, error) {
	if rows <= 0 || columns <= 0 {
		return nil, fmt.Errorf("board shape must be positive, got %dx%d", rows, columns)
	}
	if (rows*columns)%2 != 0 {
		return nil, fmt.Errorf("board %dx%d has an odd number of cells, cannot form pairs", rows, columns)
	}
	return &Board{
		Rows:       rows,
		Columns:    columns,
		CardWidth:  cardWidth,
		CardHeight: cardHeight,
		Gap:        gap,
		Width:      float64(columns)*cardWidth + float64(columns-1)*gap,
		Height:     float64(rows)*cardHeight + float64(rows-1)*gap,
	}, nil
}

// NewDefaultBoard builds the standard 4x4 board.
func NewDefaultBoard() (*Board, error) {
	return NewBoard(DefaultRows, DefaultColumns, DefaultCardWidth, DefaultCardHeight, DefaultGap)
}

// Cells returns the number of grid cells.
func (b *Board) Cells() int { return b.Rows * b.Columns }

// Pairs returns the number of card pairs the board holds.
func (b *Board) Pairs() int { return b.Cells() / 2 }

// PositionOf returns the pixel-space center of the card at the given
// flattened index (row-major, row = index/columns, col = index%columns).
func (b *Board) PositionOf(index int) (x, y float64, err error) {
	if index < 0 || index >= b.Cells() {
		return 0, 0, fmt.Errorf("card index %d out of range [0,%d)", index, b.Cells())
	}
	row := index / b.Columns
	col := index % b.Columns
	x = float64(col)*(b.CardWidth+b.Gap) + b.CardWidth/2
	y = float64(row)*(b.CardHeight+b.Gap) + b.CardHeight/2
	return x, y, nil
}

// IndexAt returns the flattened index of the card occupying point (x,y),
// or -1 when the point falls in the inter-card gap or outside the grid.
// A point is inside a card when its offset within the cell raster lands in
// [0,CardWidth) x [0,CardHeight).
func (b *Board) IndexAt(x, y float64) int {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return -1
	}
	cellW := b.CardWidth + b.Gap
	cellH := b.CardHeight + b.Gap
	col := int(x / cellW)
	row := int(y / cellH)
	if col >= b.Columns || row >= b.Rows {
		return -1
	}
	if x-float64(col)*cellW >= b.CardWidth || y-float64(row)*cellH >= b.CardHeight {
		return -1
	}
	return row*b.Columns + col
}

// DealCards populates one Card per cell with a freshly generated pair
// sequence and the cell's center position. Card IDs equal their flattened
// grid index.
func (b *Board) DealCards(rng *rand.Rand) ([]*Card, error) {
	values, err := GeneratePairs(b.Rows, b.Columns, rng)
	if err != nil {
		return nil, fmt.Errorf("dealing cards: %w", err)
	}
	cards := make([]*Card, b.Cells())
	for i, v := range values {
		x, y, err := b.PositionOf(i)
		if err != nil {
			return nil, err
		}
		cards[i] = &Card{
			ID:     i,
			Value:  v,
			X:      x,
			Y:      y,
			Width:  b.CardWidth,
			Height: b.CardHeight,
		}
	}
	return cards, nil
}
