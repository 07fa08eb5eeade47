package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/robgon-art/memo-game/internal/game"
)

// Session is the server-side record of one game session reported by a
// client. Sessions live in memory only.
type Session struct {
	ID        string        `json:"id"`
	StartedAt time.Time     `json:"started_at"`
	Rows      int           `json:"rows"`
	Columns   int           `json:"columns"`
	Latency   time.Duration `json:"latency"` // one-way estimate from ping/pong
	Completed bool          `json:"completed"`

	Moves          int `json:"moves,omitempty"`
	Matches        int `json:"matches,omitempty"`
	ElapsedSeconds int `json:"elapsed_seconds,omitempty"`
	Score          int `json:"score,omitempty"`
	FinalScore     int `json:"final_score,omitempty"`
}

// ServerState holds the reported sessions and the bound listen address.
type ServerState struct {
	Address string

	mu       sync.RWMutex
	Sessions map[string]*Session
}

// NewServerState creates an empty server state.
func NewServerState() *ServerState {
	return &ServerState{
		Sessions: make(map[string]*Session),
	}
}

// HandleWS serves the session-reporting endpoint: the client announces a
// session with hello, gets a welcome with its session id, answers one ping
// for a latency estimate, and eventually reports its finished game with
// result, which the server acknowledges with the recomputed final score.
func (s *ServerState) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		klog.Errorf("HandleWS: Accept failed: %v", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()

	var msg game.WsMessage
	if err := wsjson.Read(ctx, conn, &msg); err != nil {
		klog.Errorf("HandleWS: failed to read hello: %v", err)
		return
	}
	if msg.Type != game.MsgTypeHello {
		s.sendError(ctx, conn, "expected hello message, got "+string(msg.Type))
		return
	}
	p, err := msg.Parse()
	if err != nil {
		s.sendError(ctx, conn, "malformed hello payload")
		return
	}
	hello := p.(*game.HelloMessage)

	session := &Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Rows:      hello.Rows,
		Columns:   hello.Columns,
	}
	s.mu.Lock()
	s.Sessions[session.ID] = session
	s.mu.Unlock()
	klog.Infof("HandleWS: session %s started (%dx%d, client %s)",
		session.ID, hello.Rows, hello.Columns, hello.ClientVersion)

	welcomeMsg, _ := game.NewWsMessage(game.MsgTypeWelcome, game.WelcomeMessage{SessionID: session.ID})
	if err := wsjson.Write(ctx, conn, welcomeMsg); err != nil {
		klog.Errorf("HandleWS: failed to send welcome: %v", err)
		return
	}

	pingMsg, _ := game.NewWsMessage(game.MsgTypePing, game.PingMessage{ServerTime: time.Now().UnixNano()})
	if err := wsjson.Write(ctx, conn, pingMsg); err != nil {
		klog.Errorf("HandleWS: failed to send ping: %v", err)
		return
	}

	for {
		var msg game.WsMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			klog.V(1).Infof("HandleWS: session %s disconnected: %v", session.ID, err)
			return
		}
		s.handleMessage(ctx, conn, session, msg)
	}
}

func (s *ServerState) handleMessage(ctx context.Context, conn *websocket.Conn, session *Session, msg game.WsMessage) {
	p, err := msg.Parse()
	if err != nil {
		s.sendError(ctx, conn, "malformed payload for "+string(msg.Type))
		return
	}

	switch payload := p.(type) {
	case *game.PongMessage:
		rtt := time.Duration(time.Now().UnixNano() - payload.ServerTime)
		s.mu.Lock()
		session.Latency = rtt / 2
		s.mu.Unlock()
		klog.V(1).Infof("HandleWS: session %s latency %v", session.ID, rtt/2)

	case *game.ResultMessage:
		if payload.SessionID != session.ID {
			s.sendError(ctx, conn, "result for unknown session "+payload.SessionID)
			return
		}
		if payload.Moves < 0 || payload.Matches < 0 || payload.ElapsedSeconds < 0 ||
			payload.Matches > payload.TotalPairs {
			s.sendError(ctx, conn, "implausible game result")
			return
		}

		// Recompute the final score server-side from the reported state.
		final := (&game.GameState{
			MatchCount:     payload.Matches,
			TotalPairs:     payload.TotalPairs,
			MoveCount:      payload.Moves,
			ElapsedSeconds: payload.ElapsedSeconds,
		}).FinalScore()

		s.mu.Lock()
		session.Completed = true
		session.Moves = payload.Moves
		session.Matches = payload.Matches
		session.ElapsedSeconds = payload.ElapsedSeconds
		session.Score = payload.Score
		session.FinalScore = final
		s.mu.Unlock()

		klog.Infof("HandleWS: session %s finished: %d/%d pairs in %d moves, %ds, final score %d",
			session.ID, payload.Matches, payload.TotalPairs, payload.Moves, payload.ElapsedSeconds, final)

		scoreMsg, _ := game.NewWsMessage(game.MsgTypeScore, game.ScoreMessage{
			SessionID:  session.ID,
			FinalScore: final,
		})
		if err := wsjson.Write(ctx, conn, scoreMsg); err != nil {
			klog.Errorf("HandleWS: failed to send score: %v", err)
		}

	default:
		s.sendError(ctx, conn, "unexpected message type "+string(msg.Type))
	}
}

func (s *ServerState) sendError(ctx context.Context, conn *websocket.Conn, text string) {
	klog.Warningf("HandleWS: %s", text)
	errMsg, _ := game.NewWsMessage(game.MsgTypeError, game.ErrorMessage{Message: text})
	_ = wsjson.Write(ctx, conn, errMsg)
}

// HandleStats serves a JSON summary of the in-memory session table. The
// sessions are copied by value under the lock; the websocket goroutines
// keep mutating the live records while the response is encoded.
func (s *ServerState) HandleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	sessions := make([]Session, 0, len(s.Sessions))
	for _, session := range s.Sessions {
		sessions = append(sessions, *session)
	}
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"version":  game.Version,
		"sessions": sessions,
	}); err != nil {
		klog.Errorf("HandleStats: encode failed: %v", err)
	}
}
