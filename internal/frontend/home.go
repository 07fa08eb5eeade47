package frontend

import (
	"fmt"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"

	"github.com/robgon-art/memo-game/internal/game"
)

// Home is the landing page component
type Home struct {
	app.Compo
	Error string
}

func (h *Home) OnMount(ctx app.Context) {
	klog.V(1).Infof("Home: OnMount called")
	State.Listeners["home"] = func() {
		ctx.Dispatch(func(ctx app.Context) {})
	}
}

func (h *Home) OnDismount() {
	delete(State.Listeners, "home")
}

func (h *Home) OnAppUpdate(ctx app.Context) {
	klog.Infof("Home component: App update available, reloading...")
	ctx.Reload()
}

func (h *Home) onStartGame(ctx app.Context, e app.Event) {
	e.PreventDefault()
	if err := State.NewGame(); err != nil {
		h.Error = fmt.Sprintf("Failed to start a game: %v", err)
		klog.Errorf("Home: %s", h.Error)
		return
	}
	ctx.Navigate("/play")
}

func (h *Home) Render() app.UI {
	body := []app.UI{
		app.Header().Body(
			app.H2().Text("Memo"),
		),
		app.P().Text(fmt.Sprintf(
			"Flip the cards two at a time and find all %d pairs. "+
				"Fewer moves and faster matches mean a higher score.",
			game.DefaultRows*game.DefaultColumns/2)),
		app.Button().Text("Start Game").OnClick(h.onStartGame),
	}
	if h.Error != "" {
		body = append(body, app.P().Style("color", "red").Text(h.Error))
	}

	return app.Main().Class("container").Body(
		&TopBar{},
		app.Article().Body(body...),
	)
}
