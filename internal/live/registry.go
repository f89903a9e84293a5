// Package live maintains the in-memory registry of per-user push channels and
// delivers alarms to connected clients on a best-effort basis.
package live

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/alarm"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/pkg/logger"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/pkg/metrics"
)

const (
	defaultWriteTimeout = 5 * time.Second
	pongWait            = 90 * time.Second
	maxMessageSize      = 4096
)

// Frame is the JSON payload written to a live channel.
type Frame struct {
	Event string          `json:"event"`
	Alarm *alarm.AlarmDTO `json:"alarm,omitempty"`
}

// Registry is the process-wide map from recipient id to their single live
// channel. It is internally synchronized; callers never hold locks. At most
// one channel exists per user: a new connect silently supersedes the old one.
type Registry struct {
	mu       sync.RWMutex
	channels map[int64]*Channel

	upgrader     websocket.Upgrader
	writeTimeout time.Duration
	log          *zap.Logger
}

// Option customises the Registry.
type Option func(*Registry)

// WithWriteTimeout bounds every network send so one dead client cannot stall
// a heartbeat sweep or a concurrent push.
func WithWriteTimeout(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.writeTimeout = d
		}
	}
}

// NewRegistry constructs a live channel registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		channels:     make(map[int64]*Channel),
		writeTimeout: defaultWriteTimeout,
		log:          logger.WithModule("live"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(*http.Request) bool {
				// Stream identity comes from the validated token, not the Origin.
				return true
			},
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Serve upgrades the request to a WebSocket, registers the channel for the
// user and blocks until the connection closes. The registry entry is removed
// on the way out unless a newer connect already replaced it.
func (r *Registry) Serve(userID int64, w http.ResponseWriter, req *http.Request) error {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return err
	}

	ch := r.Connect(userID, conn)
	r.readLoop(ch)
	r.removeIfCurrent(userID, ch)
	return nil
}

// Connect registers a channel for the user. An existing channel for the same
// user is silently replaced and closed; subsequent sends go only to the new one.
func (r *Registry) Connect(userID int64, conn *websocket.Conn) *Channel {
	ch := &Channel{userID: userID, conn: conn}

	r.mu.Lock()
	old := r.channels[userID]
	r.channels[userID] = ch
	size := len(r.channels)
	r.mu.Unlock()

	if old != nil {
		old.close()
	}

	metrics.LiveConnections.Set(float64(size))
	r.log.Debug("channel connected", zap.Int64("user_id", userID))
	return ch
}

// Disconnect removes and closes the user's channel. A no-op when absent.
func (r *Registry) Disconnect(userID int64) {
	r.mu.Lock()
	ch := r.channels[userID]
	delete(r.channels, userID)
	size := len(r.channels)
	r.mu.Unlock()

	if ch == nil {
		return
	}
	ch.close()
	metrics.LiveConnections.Set(float64(size))
	r.log.Debug("channel disconnected", zap.Int64("user_id", userID))
}

// Connected reports whether the user currently has a live channel.
func (r *Registry) Connected(userID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.channels[userID]
	return ok
}

// Len returns the number of registered channels.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.channels)
}

// Push attempts one delivery to the user's channel. Without a channel it is a
// no-op; on a transport failure the channel is pruned and the alarm stays
// retrievable from the store. Implements alarm.Pusher.
func (r *Registry) Push(userID int64, dto *alarm.AlarmDTO) {
	r.mu.RLock()
	ch := r.channels[userID]
	r.mu.RUnlock()

	if ch == nil {
		metrics.LivePushes.WithLabelValues("skipped").Inc()
		return
	}

	if err := ch.send(Frame{Event: "alarm", Alarm: dto}, r.writeTimeout); err != nil {
		r.removeIfCurrent(userID, ch)
		metrics.LivePushes.WithLabelValues("failed").Inc()
		r.log.Warn("live push failed, channel pruned",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return
	}

	metrics.LivePushes.WithLabelValues("delivered").Inc()
}

// Heartbeat sends a keep-alive ping to every registered channel, pruning the
// ones whose send fails. Iteration works on a snapshot so concurrent connects
// and disconnects are safe. Returns the number of pruned channels.
func (r *Registry) Heartbeat() int {
	r.mu.RLock()
	snapshot := make([]*Channel, 0, len(r.channels))
	for _, ch := range r.channels {
		snapshot = append(snapshot, ch)
	}
	r.mu.RUnlock()

	pruned := 0
	for _, ch := range snapshot {
		if err := ch.ping(r.writeTimeout); err != nil {
			if r.removeIfCurrent(ch.userID, ch) {
				pruned++
				metrics.HeartbeatPruned.Inc()
				r.log.Debug("heartbeat pruned dead channel",
					zap.Int64("user_id", ch.userID),
					zap.Error(err),
				)
			}
		}
	}
	return pruned
}

// removeIfCurrent deletes the entry only when it still points at the supplied
// channel, so a prune racing a reconnect never removes the newer channel.
func (r *Registry) removeIfCurrent(userID int64, ch *Channel) bool {
	r.mu.Lock()
	current, ok := r.channels[userID]
	removed := ok && current == ch
	if removed {
		delete(r.channels, userID)
	}
	size := len(r.channels)
	r.mu.Unlock()

	ch.close()
	if removed {
		metrics.LiveConnections.Set(float64(size))
	}
	return removed
}

// readLoop consumes the client side of the socket until it closes. Incoming
// payloads are ignored; the stream is server-to-client only. Pong replies
// extend the read deadline so heartbeat traffic keeps the connection alive.
func (r *Registry) readLoop(ch *Channel) {
	conn := ch.conn
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				r.log.Debug("channel closed unexpectedly",
					zap.Int64("user_id", ch.userID),
					zap.Error(err),
				)
			}
			return
		}
	}
}

// Channel is one live push connection. Writes are serialized by a channel
// level mutex and bounded by the registry's write timeout.
type Channel struct {
	userID int64
	conn   *websocket.Conn

	writeMu sync.Mutex
	once    sync.Once
}

func (c *Channel) send(frame Frame, timeout time.Duration) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(timeout))
	return c.conn.WriteJSON(frame)
}

func (c *Channel) ping(timeout time.Duration) error {
	// WriteControl is safe to call concurrently with WriteJSON.
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(timeout))
}

func (c *Channel) close() {
	c.once.Do(func() {
		_ = c.conn.Close()
	})
}
