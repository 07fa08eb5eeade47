package frontend

import (
	"fmt"
	"time"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// LoadState tracks the card-face prefetch. Gameplay never waits on it; it
// only decides whether the board shows a loading hint.
type LoadState int

const (
	LoadPending LoadState = iota
	LoadReady
	// LoadFailed means the prefetch timed out or some images failed; the
	// game continues and the browser fetches faces on demand.
	LoadFailed
)

// prefetchTimeout forces the UI on even if images are still pending.
const prefetchTimeout = 5 * time.Second

// AssetLoader prefetches the card face images.
type AssetLoader struct {
	State  LoadState
	loaded int
	failed int
	total  int
}

func NewAssetLoader() *AssetLoader {
	return &AssetLoader{}
}

// CardFaceURL returns the image for a card value.
func CardFaceURL(value int) string {
	return fmt.Sprintf("/web/images/symbol_%02d.png", value)
}

// CardBackURL is the shared face-down image.
const CardBackURL = "/web/images/card_back.png"

// Prefetch warms the browser cache for every face the board can show, then
// flips State and calls onChange. A hard timeout forces the state on so a
// slow network never holds the loading hint forever.
func (l *AssetLoader) Prefetch(pairs int, onChange func()) {
	if app.IsServer {
		l.State = LoadReady
		return
	}
	if l.State != LoadPending || l.total > 0 {
		return // already running or done
	}

	urls := []string{CardBackURL}
	for v := 1; v <= pairs; v++ {
		urls = append(urls, CardFaceURL(v))
	}
	l.total = len(urls)

	settle := func() {
		if l.State != LoadPending {
			return
		}
		if l.loaded+l.failed < l.total {
			return
		}
		if l.failed > 0 {
			klog.Warningf("Prefetch: %d/%d images failed, continuing anyway", l.failed, l.total)
			l.State = LoadFailed
		} else {
			klog.Infof("Prefetch: %d images ready", l.loaded)
			l.State = LoadReady
		}
		if onChange != nil {
			onChange()
		}
	}

	doc := app.Window().Get("document")
	for _, url := range urls {
		img := doc.Call("createElement", "img")
		img.Set("onload", app.FuncOf(func(this app.Value, args []app.Value) any {
			l.loaded++
			settle()
			return nil
		}))
		img.Set("onerror", app.FuncOf(func(this app.Value, args []app.Value) any {
			l.failed++
			settle()
			return nil
		}))
		img.Set("src", url)
	}

	time.AfterFunc(prefetchTimeout, func() {
		if l.State == LoadPending {
			klog.Warningf("Prefetch: timed out after %v (%d/%d loaded), forcing the UI on",
				prefetchTimeout, l.loaded, l.total)
			l.State = LoadFailed
			if onChange != nil {
				onChange()
			}
		}
	})
}
