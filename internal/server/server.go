package server

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/robgon-art/memo-game/internal/frontend"
)

// Run starts the server and blocks until the context is canceled. An empty
// addr binds an automatic port on localhost. The ServerState, with its
// bound Address filled in, is sent on started once the listener is up.
func Run(ctx context.Context, addr string, started chan<- *ServerState) error {
	// Initialize global frontend state for server-side prerendering without panic
	frontend.InitState()

	// Initialize server state
	serverState := NewServerState()

	// Register go-app routes so the server knows how to prerender them
	app.Route("/", func() app.Composer { return &frontend.Home{} })
	app.Route("/play", func() app.Composer { return &frontend.Game{} })

	// The web assets and the compiled webassembly
	// are served natively by the go-app framework
	h := &app.Handler{
		Name:        "Memo",
		Description: "A solo memory matching card game",
		Styles: []string{
			"/web/css/pico.min.css", // Load pico.css
			"/web/css/main.css",     // Custom styles if any
		},
	}

	mux := http.NewServeMux()

	// WebSocket endpoint for session reporting
	mux.HandleFunc("/ws", serverState.HandleWS)

	// JSON summary of reported sessions
	mux.HandleFunc("/stats", serverState.HandleStats)

	// Serve the go-app UI
	// We want to serve /web for static files
	mux.Handle("/web/", http.StripPrefix("/web/", http.FileServer(http.Dir("web/"))))
	mux.Handle("/", h)

	if addr == "" {
		addr = "127.0.0.1:0"
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	serverState.Address = listener.Addr().String()
	if started != nil {
		started <- serverState
	}

	srv := &http.Server{
		Handler: mux,
	}

	go func() {
		log.Printf("Server started on %s", serverState.Address)
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()

	// Graceful shutdown with 5 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Println("Shutting down server...")
	return srv.Shutdown(shutdownCtx)
}
