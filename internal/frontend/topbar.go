package frontend

import (
	"fmt"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/robgon-art/memo-game/internal/game"
)

// TopBar shows the live counters and the pause/sound controls.
type TopBar struct {
	app.Compo
	PauseHandler app.EventHandler
}

func (t *TopBar) onToggleSound(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.ToggleSound()
}

func (t *TopBar) onBannerClick(ctx app.Context, e app.Event) {
	ctx.Navigate("/")
}

func (t *TopBar) Render() app.UI {
	soundIcon := "🔊"
	if !State.SoundEnabled {
		soundIcon = "🔇"
	}

	left := []app.UI{
		app.Li().Body(
			app.Strong().
				Style("cursor", "pointer").
				Text("Memo").
				OnClick(t.onBannerClick),
		),
	}

	var right []app.UI
	if State.Engine != nil {
		st := State.Engine.State()
		right = append(right,
			app.Li().Body(app.Span().Text(fmt.Sprintf("Moves: %d", st.MoveCount))),
			app.Li().Body(app.Span().Text(fmt.Sprintf("Pairs: %d/%d", st.MatchCount, st.TotalPairs))),
			app.Li().Body(app.Span().Text(fmt.Sprintf("Score: %d", st.Score))),
			app.Li().Body(app.Span().Text(game.FormatTime(st.ElapsedSeconds))),
		)
		if t.PauseHandler != nil && (st.Phase == game.PhasePlaying || st.Phase == game.PhasePaused) {
			label := "Pause"
			if st.Phase == game.PhasePaused {
				label = "Resume"
			}
			right = append(right, app.Li().Body(
				app.A().Href("#").OnClick(t.PauseHandler).Text(label),
			))
		}
	}
	right = append(right, app.Li().Body(
		app.A().
			Href("#").
			OnClick(t.onToggleSound).
			Style("text-decoration", "none").
			Body(
				app.Span().
					Class("sound-icon").
					Style("font-family", "system-ui").
					Text(soundIcon),
			),
	))

	return app.Nav().Body(
		app.Ul().Body(left...),
		app.Ul().Body(right...),
	)
}
