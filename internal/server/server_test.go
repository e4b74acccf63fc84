package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/golfforbots/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startTestServer(t *testing.T, cfg Config, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	srv, err := NewServer(cfg, quietLogger(), opts...)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		_ = srv.Stop()
		ts.Close()
	})
	return srv, ts
}

func dialTestServer(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) *Message {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return &msg
}

func TestHealth(t *testing.T) {
	t.Parallel()

	_, ts := startTestServer(t, DefaultConfig())
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestNewServerValidates(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Par = 0
	_, err := NewServer(cfg, quietLogger())
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.Profile = nil
	_, err = NewServer(cfg, quietLogger())
	assert.Error(t, err)
}

func TestWebSocketSession(t *testing.T) {
	t.Parallel()

	m := metrics.NewManager()
	srv, ts := startTestServer(t, DefaultConfig(), WithMetrics(m))
	conn := dialTestServer(t, ts)

	info := decode[CourseInfoData](t, readMessage(t, conn), MessageTypeCourseInfo)
	assert.NotEmpty(t, info.SessionID)
	assert.Len(t, info.Clubs, 14)
	require.Eventually(t, func() bool { return srv.SessionCount() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(request(t, MessageTypeReset, nil, "1")))
	reply := readMessage(t, conn)
	assert.Equal(t, "1", reply.RequestID)
	obs := decode[ObservationData](t, reply, MessageTypeObservation)
	assert.Equal(t, 1, obs.Hole)

	require.NoError(t, conn.WriteJSON(request(t, MessageTypeStep, StepData{Club: 3, Direction: 0}, "2")))
	reply = readMessage(t, conn)
	assert.Equal(t, "2", reply.RequestID)
	res := decode[StepResultData](t, reply, MessageTypeStepResult)
	assert.Equal(t, "Hybrid", res.Info.Stroke.Club)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Contains(t, string(body), "golf_gym_sessions_active 1")
	assert.Contains(t, string(body), "golf_gym_strokes_total")

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return srv.SessionCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestIdleSessionIsClosed(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mockClock := quartz.NewMock(t)
	cfg := DefaultConfig()
	cfg.IdleTimeout = time.Minute
	srv, ts := startTestServer(t, cfg, WithClock(mockClock))
	conn := dialTestServer(t, ts)

	decode[CourseInfoData](t, readMessage(t, conn), MessageTypeCourseInfo)

	// Activity pushes the deadline out.
	mockClock.Advance(30 * time.Second).MustWait(ctx)
	require.NoError(t, conn.WriteJSON(request(t, MessageTypeInfo, nil, "ping")))
	decode[CourseInfoData](t, readMessage(t, conn), MessageTypeCourseInfo)
	mockClock.Advance(45 * time.Second).MustWait(ctx)
	assert.Equal(t, 1, srv.SessionCount())

	mockClock.Advance(15 * time.Second).MustWait(ctx)

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
	require.Eventually(t, func() bool { return srv.SessionCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestMaxSessions(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.MaxSessions = 1
	srv, ts := startTestServer(t, cfg)

	conn := dialTestServer(t, ts)
	readMessage(t, conn)
	require.Eventually(t, func() bool { return srv.SessionCount() == 1 }, time.Second, 10*time.Millisecond)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	srv, err := NewServer(DefaultConfig(), quietLogger())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
