// Package session manages the websocket connection to the game server: the
// connect/reconnect state machine, the read and write pumps, and the dispatch
// of decoded server events into the entity store.
package session

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/lowwcrystal/go-mmo-client/protocol"
)

const (
	writeWait      = 10 * time.Second    // Time allowed to write a message to the peer.
	pongWait       = 60 * time.Second    // Time allowed to read the next pong message from the peer.
	pingPeriod     = (pongWait * 9) / 10 // Send pings to peer with this period. Must be less than pongWait.
	maxMessageSize = 1 << 20

	eventBuffer = 256
	sendBuffer  = 64
)

// State is the connection lifecycle position. StateFailed is terminal: the
// reconnect budget is exhausted and nothing short of a restart reconnects.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Conn is the subset of *websocket.Conn the session uses. Tests substitute a
// scripted fake.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
	Close() error
}

// DialFunc opens a connection to the server.
type DialFunc func(url string) (Conn, error)

func defaultDial(url string) (Conn, error) {
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Config carries the session parameters.
type Config struct {
	URL      string
	Username string
	// MaxReconnects bounds how many reconnect attempts are scheduled after
	// consecutive transport failures before the session fails permanently.
	MaxReconnects int
	// BaseDelay scales the linear backoff: attempt N waits N*BaseDelay.
	BaseDelay time.Duration
}

// Session owns one logical connection to the game server across reconnects.
type Session struct {
	cfg  Config
	log  *zap.SugaredLogger
	dial DialFunc
	wait func(ctx context.Context, d time.Duration) bool

	state  atomic.Int32
	events chan any
	send   chan []byte
}

// New builds a session. Run must be started on its own goroutine.
func New(cfg Config, log *zap.SugaredLogger) *Session {
	return &Session{
		cfg:    cfg,
		log:    log,
		dial:   defaultDial,
		wait:   sleepCtx,
		events: make(chan any, eventBuffer),
		send:   make(chan []byte, sendBuffer),
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// State reports the current lifecycle state. Safe from any goroutine.
func (s *Session) State() State {
	return State(s.state.Load())
}

func (s *Session) setState(st State) {
	s.state.Store(int32(st))
	connectionStateGauge.Set(float64(st))
}

// Events delivers decoded server events. The game loop drains this every
// frame and applies them to the store, keeping all mutation single-threaded.
func (s *Session) Events() <-chan any {
	return s.events
}

// Run drives the connection lifecycle until the context is cancelled or the
// reconnect budget runs out. Backoff is linear in the attempt count: attempt
// N waits N*BaseDelay before redialing.
func (s *Session) Run(ctx context.Context) {
	attempts := 0
	for {
		if ctx.Err() != nil {
			s.setState(StateDisconnected)
			return
		}

		s.setState(StateConnecting)
		s.log.Infow("connecting", "url", s.cfg.URL)
		conn, err := s.dial(s.cfg.URL)
		if err == nil {
			attempts = 0
			s.setState(StateConnected)
			s.log.Infow("connected", "url", s.cfg.URL)
			s.runConn(ctx, conn)
			s.setState(StateDisconnected)
			if ctx.Err() != nil {
				return
			}
		} else {
			s.log.Warnw("dial failed", "url", s.cfg.URL, "error", err)
			s.setState(StateDisconnected)
		}

		if attempts >= s.cfg.MaxReconnects {
			s.setState(StateFailed)
			s.log.Errorw("reconnect budget exhausted, giving up", "attempts", attempts)
			return
		}
		attempts++
		reconnectAttemptsCounter.Inc()
		delay := time.Duration(attempts) * s.cfg.BaseDelay
		s.log.Infow("scheduling reconnect", "attempt", attempts, "delay", delay)
		if !s.wait(ctx, delay) {
			s.setState(StateDisconnected)
			return
		}
	}
}

// runConn services one established connection: joins, then pumps messages in
// both directions until the connection drops or the context is cancelled.
func (s *Session) runConn(ctx context.Context, conn Conn) {
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// The join request goes out before anything else on a fresh connection.
	join, err := protocol.EncodeJoin(s.cfg.Username)
	if err != nil {
		s.log.Errorw("encode join", "error", err)
		return
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, join); err != nil {
		s.log.Warnw("join write failed", "error", err)
		return
	}

	done := make(chan struct{})
	go s.readPump(conn, done)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "client shutting down"))
			return
		case <-done:
			return
		case msg := <-s.send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				s.log.Warnw("write failed", "error", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.log.Warnw("ping failed", "error", err)
				// The read pump observes the broken connection and exits.
			}
		}
	}
}

// readPump reads until the connection errors. Decode failures are dropped
// per-message; only transport errors end the pump.
func (s *Session) readPump(conn Conn, done chan struct{}) {
	defer close(done)
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Infow("connection closed")
			} else {
				s.log.Warnw("read failed", "error", err)
			}
			return
		}
		receivedBytesCounter.Add(float64(len(raw)))

		ev, err := protocol.Decode(raw)
		if errors.Is(err, protocol.ErrUnknownAction) {
			s.log.Debugw("ignoring message", "error", err)
			continue
		}
		if err != nil {
			decodeFailuresCounter.Inc()
			s.log.Warnw("dropping malformed message", "error", err)
			continue
		}
		inboundMessagesCounter.WithLabelValues(actionOf(ev)).Inc()

		select {
		case s.events <- ev:
		default:
			s.log.Warnw("event queue full, dropping server event")
		}
	}
}

// SendMove queues a cardinal move intent. A no-op unless connected.
func (s *Session) SendMove(direction string) {
	if s.State() != StateConnected {
		return
	}
	b, err := protocol.EncodeMove(direction)
	if err != nil {
		s.log.Errorw("encode move", "error", err)
		return
	}
	s.enqueue(b)
}

// SendStop queues a stop intent. A no-op unless connected.
func (s *Session) SendStop() {
	if s.State() != StateConnected {
		return
	}
	b, err := protocol.EncodeStop()
	if err != nil {
		s.log.Errorw("encode stop", "error", err)
		return
	}
	s.enqueue(b)
}

// enqueue is non-blocking: the game loop must never stall on a slow
// connection, so a full queue drops the message.
func (s *Session) enqueue(b []byte) {
	select {
	case s.send <- b:
	default:
		droppedOutboundCounter.Inc()
		s.log.Warnw("send queue full, dropping message")
	}
}
