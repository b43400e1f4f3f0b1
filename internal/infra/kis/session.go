package kis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"stockdash/internal/domain"
	"stockdash/internal/event"
	"stockdash/internal/infra"

	"github.com/gorilla/websocket"
)

const (
	handshakeTimeout = 10 * time.Second
	readTimeout      = 60 * time.Second
)

// State of a stream session.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateError
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateError:
		return "error"
	default:
		return "disconnected"
	}
}

// subscribeMessage is sent once per tracked code on the shared channel.
type subscribeMessage struct {
	Type string `json:"type"`
	Code string `json:"code"`
}

// Session wraps one live feed connection. Transitions are driven only by
// explicit Connect/Disconnect calls and transport callbacks; a dropped
// connection stays down until the user reconnects. Starting a new
// connection tears the old one down first, and the generation counter lets
// the engine discard frames a superseded connection had already queued.
type Session struct {
	channel       event.Channel
	detailURLTmpl string   // per-symbol endpoint, %s = short code
	sharedURL     string   // heatmap endpoint
	trackedCodes  []string // subscribed on open in heatmap mode

	inbox   chan<- *event.Frame
	seq     *atomic.Uint64
	gen     *atomic.Uint64
	metrics *infra.Metrics

	// onState surfaces status-text changes; never called with an error to
	// throw, only a state to display.
	onState func(state State, detail string)

	mu             sync.RWMutex
	writeMu        sync.Mutex
	conn           *websocket.Conn
	state          State
	subscribedCode string
	sessionGen     uint64
	cancel         context.CancelFunc
	wg             sync.WaitGroup
}

// NewDetailSession creates a session for the per-symbol detail view.
func NewDetailSession(urlTmpl string, inbox chan<- *event.Frame, seq, gen *atomic.Uint64, onState func(State, string)) *Session {
	return &Session{
		channel:       event.ChannelDetail,
		detailURLTmpl: urlTmpl,
		inbox:         inbox,
		seq:           seq,
		gen:           gen,
		metrics:       infra.GlobalMetrics,
		onState:       onState,
	}
}

// NewHeatmapSession creates a session for the shared heatmap view that
// subscribes to every tracked code once connected.
func NewHeatmapSession(url string, codes []string, inbox chan<- *event.Frame, seq, gen *atomic.Uint64, onState func(State, string)) *Session {
	return &Session{
		channel:      event.ChannelHeatmap,
		sharedURL:    url,
		trackedCodes: codes,
		inbox:        inbox,
		seq:          seq,
		gen:          gen,
		metrics:      infra.GlobalMetrics,
		onState:      onState,
	}
}

// SetInbox wires the frame destination. Must be set before Connect; the
// session and the dispatcher reference each other, so one side is wired late.
func (s *Session) SetInbox(inbox chan<- *event.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inbox = inbox
}

// State returns the current connection state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SubscribedCode returns the code of the live detail subscription, or "".
func (s *Session) SubscribedCode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subscribedCode
}

// IsConnected reports whether the session holds a live connection.
func (s *Session) IsConnected() bool {
	return s.State() == StateConnected
}

// Connect dials the feed. In detail mode code selects the symbol and must
// be non-empty; in heatmap mode code is ignored. A live connection is torn
// down synchronously first, so at most one connection exists per session.
// There is no retry: a failed dial surfaces the error and leaves the
// session disconnected.
func (s *Session) Connect(ctx context.Context, code string) error {
	if s.channel == event.ChannelDetail && code == "" {
		return domain.ErrEmptyCode
	}

	s.Disconnect()

	myGen := s.gen.Add(1)
	s.setState(StateConnecting, code)

	url := s.sharedURL
	if s.channel == event.ChannelDetail {
		url = fmt.Sprintf(s.detailURLTmpl, code)
	}

	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, url, http.Header{})
	if err != nil {
		s.setState(StateError, code)
		s.setState(StateDisconnected, "")
		return domain.NewNetworkError("dial", err)
	}

	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.conn = conn
	s.state = StateConnected
	s.subscribedCode = code
	s.sessionGen = myGen
	s.cancel = cancel
	s.mu.Unlock()
	s.notify(StateConnected, code)
	s.metrics.IncrementConnections()

	if s.channel == event.ChannelHeatmap {
		if err := s.subscribeTracked(); err != nil {
			s.Disconnect()
			return domain.NewNetworkError("subscribe", err)
		}
	}

	s.wg.Add(1)
	go s.readLoop(ctx, myGen)

	slog.Info("Feed connected",
		slog.String("channel", string(s.channel)),
		slog.String("code", code),
		slog.Uint64("gen", myGen))
	return nil
}

// subscribeTracked sends one subscribe message per tracked code.
func (s *Session) subscribeTracked() error {
	for _, code := range s.trackedCodes {
		b, _ := json.Marshal(subscribeMessage{Type: "subscribe", Code: code})
		if err := s.threadSafeWrite(websocket.TextMessage, b); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) threadSafeWrite(msgType int, data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.conn == nil {
		return domain.ErrSessionClosed
	}
	return s.conn.WriteMessage(msgType, data)
}

func (s *Session) readLoop(ctx context.Context, myGen uint64) {
	defer s.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		s.mu.RLock()
		conn := s.conn
		s.mu.RUnlock()
		if conn == nil {
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		_, msg, err := conn.ReadMessage()
		if err != nil {
			// Normal close ends in Disconnected; anything else passes
			// through Error first. Either way the session stays down
			// until the user reconnects.
			abnormal := !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
			s.closeConnection()
			if abnormal && ctx.Err() == nil {
				slog.Warn("Feed read failed", slog.String("channel", string(s.channel)), slog.Any("error", err))
				s.setState(StateError, "")
			}
			s.setState(StateDisconnected, "")
			return
		}
		s.deliver(myGen, msg)
	}
}

// deliver hands one raw payload to the engine. The send is non-blocking:
// when the inbox is full the frame is dropped and counted, never allowed to
// stall the read loop.
func (s *Session) deliver(myGen uint64, msg []byte) {
	f := event.AcquireFrame()
	f.Seq = s.seq.Add(1)
	f.Gen = myGen
	f.Channel = s.channel
	f.Code = s.SubscribedCode()
	f.Payload = append(f.Payload[:0], msg...)

	select {
	case s.inbox <- f:
	default:
		s.metrics.RecordFrameDropped()
		event.ReleaseFrame(f)
	}
}

func (s *Session) closeConnection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
		s.metrics.DecrementConnections()
	}
	s.subscribedCode = ""
}

// Disconnect tears the connection down synchronously and waits for the
// read loop to exit. Safe to call when already disconnected.
func (s *Session) Disconnect() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}

	s.closeConnection()
	s.wg.Wait()

	// Invalidate any frames a superseded connection already queued.
	s.gen.Add(1)
	s.setState(StateDisconnected, "")
}

func (s *Session) setState(state State, detail string) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	s.notify(state, detail)
}

func (s *Session) notify(state State, detail string) {
	if s.onState != nil {
		s.onState(state, detail)
	}
}
