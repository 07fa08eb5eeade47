package game

import "testing"

func TestCardFlip(t *testing.T) {
	c := &Card{ID: 0, Value: 3}

	if !c.FlipUp() {
		t.Errorf("Expected first FlipUp to report a change")
	}
	if c.FlipUp() {
		t.Errorf("Expected second FlipUp to be a no-op")
	}
	if !c.Flipped {
		t.Errorf("Card should be face-up")
	}

	if !c.FlipDown() {
		t.Errorf("Expected FlipDown to report a change")
	}
	if c.FlipProgress != 1 {
		t.Errorf("FlipDown should restart the animation from 1, got %v", c.FlipProgress)
	}
	if c.FlipDown() {
		t.Errorf("Expected second FlipDown to be a no-op")
	}
}

func TestCardMarkMatchedIdempotent(t *testing.T) {
	c := &Card{ID: 1, Value: 5}
	if !c.MarkMatched() {
		t.Errorf("Expected first MarkMatched to report a change")
	}
	if c.MarkMatched() {
		t.Errorf("Expected second MarkMatched to be a no-op")
	}
	if !c.Matched {
		t.Errorf("Card should be matched")
	}
}

func TestCardAdvanceFlip(t *testing.T) {
	c := &Card{}
	c.FlipUp()

	c.AdvanceFlip(0.1) // 0.4 of the way up
	if c.FlipProgress != FlipSpeed*0.1 {
		t.Errorf("Expected progress %v, got %v", FlipSpeed*0.1, c.FlipProgress)
	}

	c.AdvanceFlip(10)
	if c.FlipProgress != 1 {
		t.Errorf("Progress should clamp at 1, got %v", c.FlipProgress)
	}

	c.FlipDown()
	c.AdvanceFlip(10)
	if c.FlipProgress != 0 {
		t.Errorf("Progress should clamp at 0, got %v", c.FlipProgress)
	}

	c.AdvanceFlip(-1)
	if c.FlipProgress != 0 {
		t.Errorf("Negative dt should be ignored, got %v", c.FlipProgress)
	}
}
