package game

import (
	"fmt"
	"time"
)

// Phase is the game progress phase.
type Phase int

const (
	PhaseInitializing Phase = iota
	PhaseReady
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

// String returns the string representation of a Phase.
func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseReady:
		return "ready"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// NoSelection is the sentinel for an empty selection slot.
const NoSelection = -1

// GameState is the authoritative progress record of a single game.
type GameState struct {
	Phase Phase `json:"phase"`

	// Selection slots hold card IDs, NoSelection when empty.
	FirstSelected  int `json:"first_selected"`
	SecondSelected int `json:"second_selected"`

	MoveCount  int `json:"move_count"`  // completed two-card selections
	MatchCount int `json:"match_count"` // confirmed pairs, monotonic
	TotalPairs int `json:"total_pairs"`
	Score      int `json:"score"` // running score, non-decreasing

	StartTime      time.Time `json:"-"`
	LastMoveTime   time.Time `json:"-"`
	ElapsedSeconds int       `json:"elapsed_seconds"`
}

// NewGameState returns a state in the Initializing phase with both
// selection slots empty.
func NewGameState() *GameState {
	return &GameState{
		Phase:          PhaseInitializing,
		FirstSelected:  NoSelection,
		SecondSelected: NoSelection,
	}
}

// Initialize resets every counter and both selection slots, sets the pair
// total and moves back to the Initializing phase.
func (s *GameState) Initialize(totalPairs int) {
	*s = GameState{
		Phase:          PhaseInitializing,
		FirstSelected:  NoSelection,
		SecondSelected: NoSelection,
		TotalPairs:     totalPairs,
	}
}

// Start begins play, stamping both the game start and the last-move time.
func (s *GameState) Start(now time.Time) {
	s.Phase = PhasePlaying
	s.StartTime = now
	s.LastMoveTime = now
}

// Pause suspends play. Returns false when not applicable (not playing).
func (s *GameState) Pause() bool {
	if s.Phase != PhasePlaying {
		return false
	}
	s.Phase = PhasePaused
	return true
}

// Resume continues a paused game. The last-move time is re-stamped so the
// idle gap is not read as a fast move on the next match. Returns false
// when not applicable (not paused).
func (s *GameState) Resume(now time.Time) bool {
	if s.Phase != PhasePaused {
		return false
	}
	s.Phase = PhasePlaying
	s.LastMoveTime = now
	return true
}

// ClearSelection empties both selection slots.
func (s *GameState) ClearSelection() {
	s.FirstSelected = NoSelection
	s.SecondSelected = NoSelection
}

// FinalScore recomputes the end-of-game summary score from final state
// only, independent of the running Score: a base per match, a time bonus
// under two minutes and a bonus for using few moves. Every term floors at
// zero.
func (s *GameState) FinalScore() int {
	score := s.MatchCount * 100
	if bonus := 120 - s.ElapsedSeconds; bonus > 0 {
		score += bonus * 5
	}
	if bonus := s.TotalPairs*2*3 - s.MoveCount; bonus > 0 {
		score += bonus * 10
	}
	return score
}

// FormatTime renders a second count as MM:SS for the timer display.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
