package overlay

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/accessblock/internal/bionic"
	"github.com/ziadkadry99/accessblock/internal/identity"
)

var upgrader = websocket.Upgrader{
	// A non-zero handshake timeout makes the upgrader clear the write
	// deadline the HTTP server set on the connection.
	HandshakeTimeout: 10 * time.Second,
	CheckOrigin:      func(r *http.Request) bool { return true },
}

// clientMessage is the incoming WebSocket message format.
type clientMessage struct {
	Type     string `json:"type"` // "activate", "deactivate" or "toggle"
	Content  string `json:"content"`
	Fixation *int   `json:"fixation,omitempty"`
	Saccade  *int   `json:"saccade,omitempty"`
}

func (m clientMessage) controls() bionic.Controls {
	c := bionic.DefaultControls()
	if m.Fixation != nil {
		c.Fixation = *m.Fixation
	}
	if m.Saccade != nil {
		c.Saccade = *m.Saccade
	}
	return c
}

// serverMessage is the outgoing WebSocket message format.
type serverMessage struct {
	Type      string       `json:"type"` // "ready", "render" or "error"
	SessionID string       `json:"session_id"`
	State     bionic.State `json:"state"`
	Label     string       `json:"label,omitempty"`
	Content   string       `json:"content,omitempty"`
	Replace   bool         `json:"replace"`
	Notice    string       `json:"notice,omitempty"`
	Error     string       `json:"error,omitempty"`
}

// conn serializes writes; the engine loop and the read loop both send.
type conn struct {
	ws        *websocket.Conn
	sessionID string
	logger    *logrus.Entry
	mu        sync.Mutex
}

func (c *conn) send(msg serverMessage) {
	msg.SessionID = c.sessionID
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ws.WriteJSON(msg); err != nil {
		c.logger.WithError(err).Debug("Websocket write failed")
	}
}

// Render implements bionic.Renderer.
func (c *conn) Render(r bionic.Render) {
	msg := serverMessage{
		Type:    "render",
		State:   r.State,
		Label:   r.Label,
		Replace: r.Replace,
		Notice:  r.Notice,
	}
	if r.Replace {
		msg.Content = r.Content
	}
	if r.Err != nil {
		msg.Error = r.Err.Error()
	}
	c.send(msg)
}

func (c *conn) sendError(message string) {
	c.send(serverMessage{Type: "error", Error: message})
}

func (o *Overlay) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		o.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer ws.Close()

	sessionID := uuid.New().String()
	fields := logrus.Fields{"session_id": sessionID}
	if userID, ok := identity.UserID(r.Context()); ok {
		fields["user_id"] = userID
	}
	logger := o.logger.WithFields(fields)
	c := &conn{ws: ws, sessionID: sessionID, logger: logger}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var opts []bionic.EngineOption
	if o.timeout > 0 {
		opts = append(opts, bionic.WithTimeout(o.timeout))
	}
	engine := bionic.NewEngine(bionic.NewSession(o.labels), o.transformer, c, logger, opts...)
	go engine.Run(ctx)

	logger.Debug("Page view connected")
	c.send(serverMessage{Type: "ready", State: bionic.Inactive, Label: o.labels.Activate})

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.WithError(err).Warn("Websocket read failed")
			}
			break
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError("invalid message format")
			continue
		}

		switch msg.Type {
		case "activate":
			engine.Activate(msg.Content, msg.controls())
		case "deactivate":
			engine.Deactivate()
		case "toggle":
			engine.Toggle(msg.Content, msg.controls())
		default:
			c.sendError("unknown message type: " + msg.Type)
		}
	}

	cancel()
	<-engine.Done()
	logger.Debug("Page view closed")
}
