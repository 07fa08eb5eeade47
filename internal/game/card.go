package game

// Card is one face-down cell of the board. Exactly two cards share each
// Value. Position is center-anchored in board pixel space.
type Card struct {
	ID     int     `json:"id"`
	Value  int     `json:"value"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Flipped bool `json:"flipped"`
	Matched bool `json:"matched"` // monotonic, never reset

	// FlipProgress is the animation phase in [0,1]: 0 face-down rest,
	// 1 face-up rest. Presentational only, the renderer reads it.
	FlipProgress float64 `json:"flip_progress"`
}

// FlipSpeed is the FlipProgress change per second, so a full flip takes 250ms.
const FlipSpeed = 4.0

// FlipUp turns the card face-up. Returns false if it was already face-up,
// meaning no change was applied.
func (c *Card) FlipUp() bool {
	if c.Flipped {
		return false
	}
	c.Flipped = true
	return true
}

// FlipDown turns the card face-down again and restarts the downward
// animation from the face-up rest position. Returns false if it was
// already face-down.
func (c *Card) FlipDown() bool {
	if !c.Flipped {
		return false
	}
	c.Flipped = false
	c.FlipProgress = 1
	return true
}

// MarkMatched permanently resolves the card as part of a found pair.
// Returns false if it was already matched.
func (c *Card) MarkMatched() bool {
	if c.Matched {
		return false
	}
	c.Matched = true
	return true
}

// AdvanceFlip moves FlipProgress toward the rest value implied by Flipped,
// by dt seconds worth of animation.
func (c *Card) AdvanceFlip(dt float64) {
	if dt <= 0 {
		return
	}
	if c.Flipped {
		c.FlipProgress += FlipSpeed * dt
		if c.FlipProgress > 1 {
			c.FlipProgress = 1
		}
	} else {
		c.FlipProgress -= FlipSpeed * dt
		if c.FlipProgress < 0 {
			c.FlipProgress = 0
		}
	}
}
