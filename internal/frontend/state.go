package frontend

import (
	"context"
	"fmt"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"

	"github.com/robgon-art/memo-game/internal/game"
)

// GlobalClientState manages the engine instance, the session-report
// connection and UI-wide state shared by the components.
type GlobalClientState struct {
	Engine *game.Engine
	Error  string

	// Session reporting
	Conn        *websocket.Conn
	SessionID   string
	ServerScore int // final score as recomputed by the server, 0 until acked

	// Sound state
	SoundEnabled bool

	// Asset prefetch state
	Assets *AssetLoader

	// Listeners for state updates
	Listeners map[string]func()
}

var State *GlobalClientState

// InitState creates the global client state if it does not exist yet. Also
// called server-side so prerendering does not panic on a nil State.
func InitState() {
	if State == nil {
		klog.V(1).Infof("InitState: creating new state (was nil)")
		State = &GlobalClientState{
			SoundEnabled: true,
			Assets:       NewAssetLoader(),
			Listeners:    make(map[string]func()),
		}
	} else {
		klog.V(1).Infof("InitState: state already exists")
	}
}

// NewGame builds a fresh board and engine, leaving it in the ready phase.
func (s *GlobalClientState) NewGame() error {
	board, err := game.NewDefaultBoard()
	if err != nil {
		return fmt.Errorf("failed to build board: %w", err)
	}
	engine, err := game.NewEngine(board, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to deal board: %w", err)
	}
	s.Engine = engine
	s.ServerScore = 0
	klog.Infof("NewGame: dealt %dx%d board, %d pairs",
		board.Rows, board.Columns, engine.State().TotalPairs)
	return nil
}

// Notify tells every mounted component that shared state changed.
func (s *GlobalClientState) Notify() {
	klog.V(1).Infof("GlobalClientState: Notifying %d listeners", len(s.Listeners))
	for _, l := range s.Listeners {
		if l != nil {
			l()
		}
	}
}

func (s *GlobalClientState) ToggleSound() {
	s.SoundEnabled = !s.SoundEnabled
	klog.Infof("ToggleSound: SoundEnabled is now %v", s.SoundEnabled)
	s.Notify()
}

// PlaySound plays a short sound effect (fire and forget).
func (s *GlobalClientState) PlaySound(url string) {
	if app.IsServer || !s.SoundEnabled {
		return
	}

	// Create a new Audio element for the sound effect
	audio := app.Window().Get("document").Call("createElement", "audio")
	audio.Set("src", url)

	promise := audio.Call("play")
	if promise.Truthy() {
		promise.Call("then", app.FuncOf(func(this app.Value, args []app.Value) any {
			audio.Set("volume", 0.6)
			return nil
		}))
		promise.Call("catch", app.FuncOf(func(this app.Value, args []app.Value) any {
			klog.Errorf("PlaySound: Failed to play %s: %v", url, args[0])
			return nil
		}))
	}
}

// ConnectWS connects to the server and announces the session.
func (s *GlobalClientState) ConnectWS() error {
	if s.Conn != nil {
		klog.Infof("ConnectWS: Closing existing connection")
		s.Conn.CloseNow()
		s.Conn = nil
		s.SessionID = ""
	}

	wsURL := fmt.Sprintf("ws://%s/ws", app.Window().URL().Host)
	klog.Infof("ConnectWS: Connecting to %s", wsURL)

	// We use a context that lasts for the duration of the connection setup.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		klog.Errorf("ConnectWS: Dial failed: %v", err)
		return fmt.Errorf("dial failed: %w", err)
	}

	s.Conn = conn

	board := s.Engine.Board()
	helloMsg, err := game.NewWsMessage(game.MsgTypeHello, game.HelloMessage{
		ClientVersion: game.Version,
		Rows:          board.Rows,
		Columns:       board.Columns,
	})
	if err != nil {
		klog.Errorf("ConnectWS: Failed to create hello message: %v", err)
		return fmt.Errorf("failed to create hello message: %w", err)
	}
	if err := wsjson.Write(ctx, conn, helloMsg); err != nil {
		klog.Errorf("ConnectWS: Failed to send hello: %v", err)
		return fmt.Errorf("failed to send hello: %w", err)
	}

	klog.Infof("ConnectWS: Hello sent. Starting read loop.")
	go s.readLoop(conn)

	return nil
}

func (s *GlobalClientState) readLoop(conn *websocket.Conn) {
	ctx := context.Background()
	klog.V(1).Infof("readLoop: started")
	for {
		var msg game.WsMessage
		err := wsjson.Read(ctx, conn, &msg)
		if err != nil {
			klog.Errorf("readLoop: WS read error: %v", err)
			break
		}

		klog.V(1).Infof("readLoop: received message type: %s", msg.Type)
		s.handleMessage(msg)
	}
}

func (s *GlobalClientState) handleMessage(msg game.WsMessage) {
	p, err := msg.Parse()
	if err != nil {
		klog.Errorf("handleMessage: Failed to parse %s message: %v", msg.Type, err)
		return
	}

	switch payload := p.(type) {
	case *game.WelcomeMessage:
		klog.Infof("handleMessage: session %s assigned", payload.SessionID)
		s.SessionID = payload.SessionID

	case *game.PingMessage:
		pongMsg, _ := game.NewWsMessage(game.MsgTypePong, game.PongMessage{
			ServerTime: payload.ServerTime,
			ClientTime: time.Now().UnixNano(),
		})
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*2)
		defer cancel()
		wsjson.Write(ctx, s.Conn, pongMsg)

	case *game.ScoreMessage:
		klog.Infof("handleMessage: server scored session %s: %d", payload.SessionID, payload.FinalScore)
		s.ServerScore = payload.FinalScore
		s.Notify()

	case *game.ErrorMessage:
		klog.Errorf("handleMessage: server error: %s", payload.Message)
		s.Error = payload.Message
		s.Notify()
	}
}

// ReportResult sends the finished game to the server.
func (s *GlobalClientState) ReportResult() {
	if s.Conn == nil || s.Engine == nil {
		return
	}
	st := s.Engine.State()
	msg, err := game.NewWsMessage(game.MsgTypeResult, game.ResultMessage{
		SessionID:      s.SessionID,
		Moves:          st.MoveCount,
		Matches:        st.MatchCount,
		TotalPairs:     st.TotalPairs,
		ElapsedSeconds: st.ElapsedSeconds,
		Score:          st.Score,
	})
	if err != nil {
		klog.Errorf("ReportResult: Failed to create result message: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*2)
	defer cancel()
	wsjson.Write(ctx, s.Conn, msg)
}
