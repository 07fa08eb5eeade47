package game

import (
	"math/rand"
	"sync"
	"time"

	"k8s.io/klog/v2"
)

// Gameplay timing and scoring constants.
const (
	// NonMatchFlipDelay is how long a mismatched pair stays face-up
	// before flipping back.
	NonMatchFlipDelay = 1000 * time.Millisecond

	// SpeedBonusWindow is the window after the second selection within
	// which a match earns a speed bonus. The bonus only applies strictly
	// below the window.
	SpeedBonusWindow = 3000 * time.Millisecond

	// MatchScore is the base score for a confirmed pair.
	MatchScore = 50
)

// Clock is the engine's time source. Injectable so tests control "now".
type Clock func() time.Time

// InputKind distinguishes the two ways a card can be targeted.
type InputKind int

const (
	// InputPointer targets a card by board-space coordinates.
	InputPointer InputKind = iota
	// InputSelect targets a card by ID, e.g. keyboard navigation.
	InputSelect
)

// InputEvent is one queued player action.
type InputEvent struct {
	Kind     InputKind
	X, Y     float64
	TargetID int
	Time     time.Time
}

// Engine is the game-logic state machine. It is the sole writer of the
// GameState and the sole initiator of card flips during play: input events
// are enqueued from the host's event dispatch and applied in arrival order
// on the next Tick. Readers (the renderer, the UI) must only look at state
// between ticks.
type Engine struct {
	board *Board
	state *GameState
	cards []*Card // index == Card.ID
	clock Clock
	rng   *rand.Rand

	mu    sync.Mutex
	queue []InputEvent

	lastTick time.Time // drives the flip animation delta
}

// NewEngine deals a fresh board and returns an engine in the Ready phase.
// A nil clock defaults to time.Now; a nil rng uses a time-seeded source.
func NewEngine(board *Board, clock Clock, rng *rand.Rand) (*Engine, error) {
	if clock == nil {
		clock = time.Now
	}
	e := &Engine{
		board: board,
		state: NewGameState(),
		clock: clock,
		rng:   rng,
	}
	if err := e.deal(); err != nil {
		return nil, err
	}
	return e, nil
}

// deal runs the board initializer: reset state, populate cards, go Ready.
func (e *Engine) deal() error {
	e.state.Initialize(e.board.Pairs())
	cards, err := e.board.DealCards(e.rng)
	if err != nil {
		return err
	}
	e.cards = cards
	e.state.Phase = PhaseReady
	return nil
}

// Restart re-initializes the state and re-deals the board. The previous
// card entities are discarded.
func (e *Engine) Restart() error {
	e.mu.Lock()
	e.queue = nil
	e.mu.Unlock()
	e.lastTick = time.Time{}
	return e.deal()
}

// Board returns the engine's board geometry.
func (e *Engine) Board() *Board { return e.board }

// State returns the authoritative game state. Read-only for callers.
func (e *Engine) State() *GameState { return e.state }

// Cards returns all card entities in ID order. Read-only for callers.
func (e *Engine) Cards() []*Card { return e.cards }

// Card resolves a card ID, or nil when the ID does not name a live card.
func (e *Engine) Card(id int) *Card {
	if id < 0 || id >= len(e.cards) {
		return nil
	}
	return e.cards[id]
}

// Start begins play.
func (e *Engine) Start() { e.state.Start(e.clock()) }

// Pause suspends play; reports whether the transition applied.
func (e *Engine) Pause() bool { return e.state.Pause() }

// Resume continues a paused game; reports whether the transition applied.
func (e *Engine) Resume() bool { return e.state.Resume(e.clock()) }

// EnqueuePointer queues a click/touch at board-space coordinates. Safe to
// call from the event-producing context.
func (e *Engine) EnqueuePointer(x, y float64) {
	e.enqueue(InputEvent{Kind: InputPointer, X: x, Y: y, TargetID: NoSelection, Time: e.clock()})
}

// EnqueueSelect queues a direct selection of the card with the given ID.
// Safe to call from the event-producing context.
func (e *Engine) EnqueueSelect(id int) {
	e.enqueue(InputEvent{Kind: InputSelect, TargetID: id, Time: e.clock()})
}

func (e *Engine) enqueue(ev InputEvent) {
	e.mu.Lock()
	e.queue = append(e.queue, ev)
	e.mu.Unlock()
}

// drain removes and returns all queued events in arrival order.
func (e *Engine) drain() []InputEvent {
	e.mu.Lock()
	events := e.queue
	e.queue = nil
	e.mu.Unlock()
	return events
}

// Tick advances the state machine by one frame: update the timer, apply
// queued input in order, evaluate a completed selection, flip back a timed
// out mismatch, then advance flip animations. All mutation happens here.
func (e *Engine) Tick() {
	now := e.clock()

	e.updateTimer(now)

	for _, ev := range e.drain() {
		e.applyInput(ev, now)
	}

	e.evaluateMatch(now)
	e.unflipTimedOut(now)

	var dt float64
	if !e.lastTick.IsZero() {
		dt = now.Sub(e.lastTick).Seconds()
	}
	e.lastTick = now
	for _, c := range e.cards {
		c.AdvanceFlip(dt)
	}
}

// updateTimer derives the elapsed play time. The start time is stamped
// lazily on the first playing tick if Start never set it.
func (e *Engine) updateTimer(now time.Time) {
	if e.state.Phase != PhasePlaying {
		return
	}
	if e.state.StartTime.IsZero() {
		e.state.StartTime = now
	}
	e.state.ElapsedSeconds = int(now.Sub(e.state.StartTime) / time.Second)
}

// applyInput runs one event through the selection gate. Events outside the
// Playing phase, events that miss every card and events targeting matched
// or already face-up cards are dropped without effect.
func (e *Engine) applyInput(ev InputEvent, now time.Time) {
	if e.state.Phase != PhasePlaying {
		return
	}

	var target *Card
	switch ev.Kind {
	case InputPointer:
		if idx := e.board.IndexAt(ev.X, ev.Y); idx >= 0 {
			target = e.Card(idx)
		}
	case InputSelect:
		target = e.Card(ev.TargetID)
	}
	if target == nil || target.Matched || target.Flipped {
		return
	}

	switch {
	case e.state.FirstSelected == NoSelection:
		e.state.FirstSelected = target.ID
		e.state.LastMoveTime = now
		target.FlipUp()
	case e.state.SecondSelected == NoSelection && target.ID != e.state.FirstSelected:
		e.state.SecondSelected = target.ID
		e.state.MoveCount++
		e.state.LastMoveTime = now
		target.FlipUp()
	default:
		// Both slots occupied, or a re-click of the first card.
		// Deselecting by clicking twice is intentionally not a thing.
	}
}

// evaluateMatch compares the two selected cards once both slots are
// populated. A matching pair scores and stays face-up; the final pair ends
// the game with the slots left populated so it stays highlighted. A
// mismatch is left to the timeout stage so the player sees both cards.
func (e *Engine) evaluateMatch(now time.Time) {
	if e.state.Phase != PhasePlaying {
		return
	}
	if e.state.FirstSelected == NoSelection || e.state.SecondSelected == NoSelection {
		return
	}

	first := e.Card(e.state.FirstSelected)
	second := e.Card(e.state.SecondSelected)
	if first == nil || second == nil {
		klog.Warningf("selection refers to missing cards (%d, %d), resetting selection",
			e.state.FirstSelected, e.state.SecondSelected)
		e.state.ClearSelection()
		return
	}

	if first.Value != second.Value {
		return
	}

	e.state.MatchCount++
	first.MarkMatched()
	second.MarkMatched()

	e.state.Score += MatchScore
	if sinceMove := now.Sub(e.state.LastMoveTime); sinceMove < SpeedBonusWindow {
		e.state.Score += int((SpeedBonusWindow - sinceMove).Milliseconds() / 100)
	}

	if e.state.MatchCount == e.state.TotalPairs {
		e.state.Phase = PhaseGameOver
		return
	}
	e.state.ClearSelection()
}

// unflipTimedOut flips a mismatched pair back face-down once it has been
// showing for NonMatchFlipDelay. Gated on the Playing phase like match
// evaluation, so a pause freezes a pending mismatch; Resume re-stamps
// LastMoveTime, which restarts the delay.
func (e *Engine) unflipTimedOut(now time.Time) {
	if e.state.Phase != PhasePlaying {
		return
	}
	if e.state.FirstSelected == NoSelection || e.state.SecondSelected == NoSelection {
		return
	}

	first := e.Card(e.state.FirstSelected)
	second := e.Card(e.state.SecondSelected)
	if first == nil || second == nil {
		klog.Warningf("selection refers to missing cards (%d, %d), resetting selection",
			e.state.FirstSelected, e.state.SecondSelected)
		e.state.ClearSelection()
		return
	}
	if !first.Flipped || !second.Flipped || first.Matched || second.Matched {
		return
	}
	if now.Sub(e.state.LastMoveTime) < NonMatchFlipDelay {
		return
	}

	first.FlipDown()
	second.FlipDown()
	e.state.ClearSelection()
	e.state.LastMoveTime = now
}
