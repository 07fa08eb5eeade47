package frontend

import (
	"fmt"
	"time"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"

	"github.com/robgon-art/memo-game/internal/game"
)

// tickInterval drives the engine at roughly 30 frames per second.
const tickInterval = 33 * time.Millisecond

// Game renders the board and drives the engine tick loop while mounted.
type Game struct {
	app.Compo
	Error string

	stopTick chan struct{}

	// Snapshot of the previous tick, used to fire sound effects and the
	// end-of-game report on transitions.
	prevFlipped int
	prevMatches int
	prevPhase   game.Phase
}

func (g *Game) OnAppUpdate(ctx app.Context) {
	klog.Infof("Game component: App update available, not reloading not to interrupt the game...")
}

func (g *Game) OnMount(ctx app.Context) {
	klog.Infof("Game component: OnMount called")

	if State.Engine == nil {
		if err := State.NewGame(); err != nil {
			g.Error = fmt.Sprintf("Failed to start a game: %v", err)
			klog.Errorf("Game component: %s", g.Error)
			return
		}
	}

	State.Listeners["game"] = func() {
		ctx.Dispatch(func(ctx app.Context) {
			g.Error = State.Error
		})
	}

	// Direct-selection hook for keyboard navigation scripts and tests:
	// memoSelect(id) targets a card without pointer coordinates.
	app.Window().Set("memoSelect", app.FuncOf(func(this app.Value, args []app.Value) any {
		if len(args) >= 1 && State.Engine != nil {
			State.Engine.EnqueueSelect(args[0].Int())
		}
		return nil
	}))

	State.Assets.Prefetch(State.Engine.State().TotalPairs, State.Notify)

	if State.Engine.State().Phase == game.PhaseReady {
		State.Engine.Start()
		if err := State.ConnectWS(); err != nil {
			// Session reporting is best-effort; the game plays on without it.
			klog.Warningf("Game component: session reporting unavailable: %v", err)
		}
	}
	g.prevPhase = State.Engine.State().Phase

	g.stopTick = make(chan struct{})
	go g.tickLoop(ctx, g.stopTick)
}

func (g *Game) OnDismount() {
	klog.Infof("Game component: OnDismount called")
	if g.stopTick != nil {
		close(g.stopTick)
		g.stopTick = nil
	}
	delete(State.Listeners, "game")
	app.Window().Set("memoSelect", app.Undefined())
}

// tickLoop drives the engine from a ticker, applying each tick on the UI
// goroutine via Dispatch so renders never observe a half-applied tick.
func (g *Game) tickLoop(ctx app.Context, stop chan struct{}) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx.Dispatch(func(ctx app.Context) {
				g.tick()
			})
		}
	}
}

func (g *Game) tick() {
	eng := State.Engine
	if eng == nil {
		return
	}
	eng.Tick()

	flipped := 0
	for _, c := range eng.Cards() {
		if c.Flipped {
			flipped++
		}
	}
	st := eng.State()

	if flipped > g.prevFlipped {
		State.PlaySound("/web/sounds/flip.mp3")
	}
	if st.MatchCount > g.prevMatches {
		State.PlaySound("/web/sounds/match.mp3")
	}
	if st.Phase == game.PhaseGameOver && g.prevPhase != game.PhaseGameOver {
		State.PlaySound("/web/sounds/win.mp3")
		State.ReportResult()
	}

	g.prevFlipped = flipped
	g.prevMatches = st.MatchCount
	g.prevPhase = st.Phase
}

// onBoardClick feeds pointer input to the engine. The card layers are
// pointer-events:none, so offsetX/offsetY are always relative to the board
// and map straight onto the engine's coordinate space.
func (g *Game) onBoardClick(ctx app.Context, e app.Event) {
	if State.Engine == nil {
		return
	}
	State.Engine.EnqueuePointer(e.Get("offsetX").Float(), e.Get("offsetY").Float())
}

func (g *Game) onPauseResume(ctx app.Context, e app.Event) {
	e.PreventDefault()
	eng := State.Engine
	if eng == nil {
		return
	}
	if !eng.Pause() && !eng.Resume() {
		klog.V(1).Infof("Game component: pause/resume not applicable in phase %v", eng.State().Phase)
	}
}

func (g *Game) onPlayAgain(ctx app.Context, e app.Event) {
	e.PreventDefault()
	eng := State.Engine
	if eng == nil {
		return
	}
	if err := eng.Restart(); err != nil {
		g.Error = fmt.Sprintf("Failed to restart: %v", err)
		klog.Errorf("Game component: %s", g.Error)
		return
	}
	State.ServerScore = 0
	eng.Start()
	if err := State.ConnectWS(); err != nil {
		klog.Warningf("Game component: session reporting unavailable: %v", err)
	}
}

func (g *Game) renderCard(c *game.Card) app.UI {
	// Fake the flip with a horizontal squeeze: the face swaps at the
	// halfway point of the animation.
	scale := 2*c.FlipProgress - 1
	if scale < 0 {
		scale = -scale
	}
	showFace := c.FlipProgress > 0.5

	src := CardBackURL
	if showFace {
		src = CardFaceURL(c.Value)
	}

	img := app.Img().
		Src(src).
		Style("width", "100%").
		Style("height", "100%").
		Style("border-radius", "8px").
		Style("transform", fmt.Sprintf("scaleX(%.3f)", scale))
	if c.Matched {
		img = img.Style("opacity", "0.65").
			Style("box-shadow", "0 0 12px gold")
	}

	return app.Div().
		Style("position", "absolute").
		Style("left", fmt.Sprintf("%.0fpx", c.X-c.Width/2)).
		Style("top", fmt.Sprintf("%.0fpx", c.Y-c.Height/2)).
		Style("width", fmt.Sprintf("%.0fpx", c.Width)).
		Style("height", fmt.Sprintf("%.0fpx", c.Height)).
		Style("pointer-events", "none").
		Body(img)
}

func (g *Game) renderBoard() app.UI {
	board := State.Engine.Board()

	var cards []app.UI
	for _, c := range State.Engine.Cards() {
		cards = append(cards, g.renderCard(c))
	}

	return app.Div().
		Class("board").
		Style("position", "relative").
		Style("width", fmt.Sprintf("%.0fpx", board.Width)).
		Style("height", fmt.Sprintf("%.0fpx", board.Height)).
		Style("margin", "0 auto").
		Style("cursor", "pointer").
		OnClick(g.onBoardClick).
		Body(cards...)
}

func (g *Game) renderGameOver() app.UI {
	st := State.Engine.State()

	items := []app.UI{
		app.H2().Text("You found them all!"),
		app.P().Text(fmt.Sprintf("Time: %s", game.FormatTime(st.ElapsedSeconds))),
		app.P().Text(fmt.Sprintf("Moves: %d", st.MoveCount)),
		app.P().Text(fmt.Sprintf("Final score: %d", st.FinalScore())),
	}
	if State.ServerScore > 0 {
		items = append(items, app.P().Text(fmt.Sprintf("Confirmed by server: %d", State.ServerScore)))
	}
	items = append(items, app.Button().Text("Play again").OnClick(g.onPlayAgain))

	return app.Article().Style("text-align", "center").Body(items...)
}

func (g *Game) Render() app.UI {
	if g.Error != "" {
		return app.Main().Class("container").Body(
			app.Article().Body(
				app.H2().Text("Game Error"),
				app.P().Style("color", "red").Text(g.Error),
				app.A().Href("#").OnClick(func(ctx app.Context, e app.Event) {
					State.Error = ""
					ctx.Navigate("/")
				}).Text("Return to Home"),
			),
		)
	}

	if State.Engine == nil {
		return app.Main().Class("container").Body(
			app.Div().Aria("busy", "true").Text("Dealing cards..."),
		)
	}

	var content []app.UI
	content = append(content, &TopBar{PauseHandler: g.onPauseResume})

	if State.Assets.State == LoadPending {
		content = append(content, app.P().
			Style("text-align", "center").
			Aria("busy", "true").
			Text("Loading card faces..."))
	}

	switch State.Engine.State().Phase {
	case game.PhaseGameOver:
		content = append(content, g.renderGameOver())
	case game.PhasePaused:
		content = append(content,
			app.Article().Style("text-align", "center").Body(
				app.H2().Text("Paused"),
				app.Button().Text("Resume").OnClick(g.onPauseResume),
			))
	default:
		content = append(content, g.renderBoard())
	}

	return app.Main().Class("container").Body(content...)
}
