package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/golfforbots/internal/course"
	"github.com/lox/golfforbots/internal/env"
	"github.com/lox/golfforbots/internal/server" // Reuse message types
	"github.com/lox/golfforbots/internal/shot"
)

const writeWait = 10 * time.Second

// ErrClosed is returned by requests made after the connection has gone away.
var ErrClosed = errors.New("connection closed")

// ServerError is an error reply from the server.
type ServerError struct {
	Code    string
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %s: %s", e.Code, e.Message)
}

// Is lets callers match episode_done replies against env.ErrEpisodeDone.
func (e *ServerError) Is(target error) bool {
	return target == env.ErrEpisodeDone && e.Code == server.ErrorCodeEpisodeDone
}

// Client is a WebSocket client for one remote session. Requests are
// synchronous and matched to replies by request ID.
type Client struct {
	serverURL string
	conn      *websocket.Conn
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	welcome   server.CourseInfoData

	writeMu   sync.Mutex
	mu        sync.Mutex
	pending   map[string]chan *server.Message
	nextID    atomic.Uint64
	closeOnce sync.Once
}

// Dial connects to a stepping server and waits for the session welcome.
// serverURL may use http, https, ws or wss; an empty path means /ws.
func Dial(ctx context.Context, serverURL string, logger *log.Logger) (*Client, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return nil, fmt.Errorf("invalid server URL scheme %q", u.Scheme)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}

	logger = logger.WithPrefix("client")
	logger.Debug("Connecting to server", "url", u.String())

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
	}
	var msg server.Message
	if err := conn.ReadJSON(&msg); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to read welcome: %w", err)
	}
	_ = conn.SetReadDeadline(time.Time{})

	welcome, err := decode[server.CourseInfoData](&msg, server.MessageTypeCourseInfo)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	cctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		serverURL: u.String(),
		conn:      conn,
		logger:    logger.With("session", welcome.SessionID),
		ctx:       cctx,
		cancel:    cancel,
		welcome:   welcome,
		pending:   make(map[string]chan *server.Message),
	}
	go c.readPump()

	c.logger.Info("Connected to server", "seed", welcome.Seed, "par", welcome.Par)
	return c, nil
}

// Welcome returns the course info the server sent on connect.
func (c *Client) Welcome() server.CourseInfoData { return c.welcome }

// Done is closed once the connection has gone away.
func (c *Client) Done() <-chan struct{} { return c.ctx.Done() }

// Close sends a close frame and closes the connection.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.writeMu.Lock()
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		c.writeMu.Unlock()
		c.cancel()
		err = c.conn.Close()
		c.logger.Debug("Disconnected from server")
	})
	return err
}

// Info requests the session's course info.
func (c *Client) Info(ctx context.Context) (server.CourseInfoData, error) {
	msg, err := c.request(ctx, server.MessageTypeInfo, nil)
	if err != nil {
		return server.CourseInfoData{}, err
	}
	return decode[server.CourseInfoData](msg, server.MessageTypeCourseInfo)
}

// Reset starts a new episode.
func (c *Client) Reset(ctx context.Context) (server.ObservationData, error) {
	msg, err := c.request(ctx, server.MessageTypeReset, nil)
	if err != nil {
		return server.ObservationData{}, err
	}
	return decode[server.ObservationData](msg, server.MessageTypeObservation)
}

// Step plays a discrete action.
func (c *Client) Step(ctx context.Context, a env.Action) (env.StepResult, error) {
	msg, err := c.request(ctx, server.MessageTypeStep, server.StepData(a))
	if err != nil {
		return env.StepResult{}, err
	}
	return decode[env.StepResult](msg, server.MessageTypeStepResult)
}

// StepBox plays a continuous action in [-1, 1]².
func (c *Client) StepBox(ctx context.Context, a0, a1 float64) (env.StepResult, error) {
	msg, err := c.request(ctx, server.MessageTypeStepBox, server.StepBoxData{A0: a0, A1: a1})
	if err != nil {
		return env.StepResult{}, err
	}
	return decode[env.StepResult](msg, server.MessageTypeStepResult)
}

// Describe fetches the current hole's layout.
func (c *Client) Describe(ctx context.Context) (course.Description, error) {
	msg, err := c.request(ctx, server.MessageTypeDescribe, nil)
	if err != nil {
		return course.Description{}, err
	}
	return decode[course.Description](msg, server.MessageTypeHole)
}

// Dispersion asks where action would land on average and how widely,
// without playing it.
func (c *Client) Dispersion(ctx context.Context, a env.Action) (shot.Dispersion, error) {
	msg, err := c.request(ctx, server.MessageTypeDispersion, server.DispersionData(a))
	if err != nil {
		return shot.Dispersion{}, err
	}
	return decode[shot.Dispersion](msg, server.MessageTypeSpread)
}

func (c *Client) request(ctx context.Context, t server.MessageType, data any) (*server.Message, error) {
	msg, err := server.NewMessage(t, data)
	if err != nil {
		return nil, err
	}
	msg.RequestID = strconv.FormatUint(c.nextID.Add(1), 10)

	reply := make(chan *server.Message, 1)
	c.mu.Lock()
	c.pending[msg.RequestID] = reply
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, msg.RequestID)
		c.mu.Unlock()
	}()

	select {
	case <-c.ctx.Done():
		return nil, ErrClosed
	default:
	}

	c.writeMu.Lock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	err = c.conn.WriteJSON(msg)
	c.writeMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to send %s: %w", t, err)
	}

	select {
	case r := <-reply:
		return r, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.ctx.Done():
		return nil, ErrClosed
	}
}

// readPump routes replies to waiting requests until the connection fails.
func (c *Client) readPump() {
	defer c.cancel()

	for {
		var msg server.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		c.mu.Lock()
		reply, ok := c.pending[msg.RequestID]
		c.mu.Unlock()
		if !ok {
			c.logger.Debug("Dropping unsolicited message", "type", msg.Type, "request", msg.RequestID)
			continue
		}
		reply <- &msg
	}
}

func decode[T any](msg *server.Message, want server.MessageType) (T, error) {
	var out T
	if msg.Type == server.MessageTypeError {
		var e server.ErrorData
		if err := json.Unmarshal(msg.Data, &e); err != nil {
			return out, fmt.Errorf("malformed error reply: %w", err)
		}
		return out, &ServerError{Code: e.Code, Message: e.Message}
	}
	if msg.Type != want {
		return out, fmt.Errorf("unexpected reply %q, want %q", msg.Type, want)
	}
	if err := json.Unmarshal(msg.Data, &out); err != nil {
		return out, fmt.Errorf("malformed %s reply: %w", want, err)
	}
	return out, nil
}
