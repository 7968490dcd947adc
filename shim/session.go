package shim

import (
	"sync"
	"time"

	"riichiengine/agari"
	"riichiengine/internal/rlog"
	"riichiengine/mjai"
	"riichiengine/state"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var (
	pongWait     = 30 * time.Second
	writeWait    = 10 * time.Second
	pingInterval = (pongWait * 9) / 10
)

// inbound is the one message shape a shim client sends: one mjai event.
type inbound struct {
	Event json.RawMessage `json:"event"`
}

// outbound is the one message shape the shim sends back: the
// ActionCandidate the event just produced, or an error string.
type outbound struct {
	Cans  *state.ActionCandidate `json:"cans,omitempty"`
	Error string                 `json:"error,omitempty"`
}

// Session is one authenticated WebSocket connection bound to a single
// seat's PlayerState, mirroring the read/write-goroutine-plus-channel
// shape of the teacher's LongConnection, scaled down to the handful of
// concurrent connections a binding shim actually serves.
type Session struct {
	ID    string
	Seat  int
	State *state.PlayerState

	conn      *websocket.Conn
	writeChan chan []byte
	closeChan chan struct{}
	closeOnce sync.Once
}

func newSession(seat int, rules agari.RuleSet, conn *websocket.Conn) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Seat:      seat,
		State:     state.New(seat, rules),
		conn:      conn,
		writeChan: make(chan []byte, 64),
		closeChan: make(chan struct{}),
	}
}

// run blocks serving the connection until it closes.
func (s *Session) run() {
	go s.writeLoop()
	s.conn.SetReadLimit(1 << 20)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	s.readLoop()
}

func (s *Session) readLoop() {
	defer s.Close()
	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				rlog.Warn("shim[%s]: read error: %v", s.ID, err)
			}
			return
		}
		s.handle(msg)
	}
}

func (s *Session) handle(msg []byte) {
	var in inbound
	if err := json.Unmarshal(msg, &in); err != nil {
		s.send(outbound{Error: "shim: malformed message: " + err.Error()})
		return
	}
	ev, err := mjai.Decode(in.Event)
	if err != nil {
		s.send(outbound{Error: err.Error()})
		return
	}
	cans := s.State.Update(ev)
	s.send(outbound{Cans: &cans})
}

func (s *Session) send(out outbound) {
	data, err := json.Marshal(out)
	if err != nil {
		rlog.Error("shim[%s]: marshal response: %v", s.ID, err)
		return
	}
	select {
	case s.writeChan <- data:
	case <-s.closeChan:
	}
}

func (s *Session) writeLoop() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	defer s.Close()

	for {
		select {
		case data, ok := <-s.writeChan:
			if !ok {
				return
			}
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				rlog.Warn("shim[%s]: write error: %v", s.ID, err)
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.closeChan:
			return
		}
	}
}

// Close tears the connection down; safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.closeChan)
		s.conn.Close()
		rlog.Info("shim[%s]: session closed, seat=%d", s.ID, s.Seat)
	})
}
