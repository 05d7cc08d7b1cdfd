package httpserver_test

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/httpserver"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
)

func testConfig() httpserver.Config {
	return httpserver.Config{
		Addr:            "127.0.0.1:0",
		ShutdownTimeout: 200 * time.Millisecond,
	}
}

// start runs srv in the background and waits until it accepts connections.
func start(t *testing.T, ctx context.Context, srv *httpserver.Server, h http.Handler) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, h) }()

	require.Eventually(t, func() bool {
		addr := srv.Addr()
		if addr == "" {
			return false
		}
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 2*time.Second, 10*time.Millisecond)
	return done
}

func waitDone(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		require.Fail(t, "run did not return")
	}
}

func TestServer_ServesUntilContextEnds(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	srv := httpserver.New(testConfig(), httpserver.WithLogger(logger.New(logger.WithOutput(&logs))))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := start(t, ctx, srv, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	}))

	resp, err := http.Get("http://" + srv.Addr())
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "ok", string(body))

	cancel()
	waitDone(t, done)

	assert.Contains(t, logs.String(), `"msg":"http server listening"`)
	assert.Contains(t, logs.String(), `"msg":"http server stopped"`)
}

func TestServer_Shutdown(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(testConfig())
	require.NoError(t, srv.Shutdown(context.Background()), "shutdown before run is a no-op")

	done := start(t, context.Background(), srv, nil)

	require.NoError(t, srv.Shutdown(context.Background()))
	require.NoError(t, srv.Shutdown(context.Background()), "second shutdown is a no-op")
	waitDone(t, done)
}

func TestServer_RunTwice(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := start(t, ctx, srv, http.NotFoundHandler())

	err := srv.Run(ctx, http.NotFoundHandler())
	assert.ErrorIs(t, err, httpserver.ErrStart)
	assert.ErrorIs(t, err, httpserver.ErrAlreadyRunning)

	cancel()
	waitDone(t, done)
}

func TestServer_ListenError(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	cfg := testConfig()
	cfg.Addr = ln.Addr().String()
	err = httpserver.New(cfg).Run(context.Background(), http.NotFoundHandler())
	assert.ErrorIs(t, err, httpserver.ErrStart)
}

func TestServer_DrainsInFlightRequests(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(testConfig())
	entered := make(chan struct{})
	done := start(t, context.Background(), srv, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		time.Sleep(50 * time.Millisecond)
		_, _ = io.WriteString(w, "finished")
	}))

	type result struct {
		body string
		err  error
	}
	res := make(chan result, 1)
	go func() {
		resp, err := http.Get("http://" + srv.Addr())
		if err != nil {
			res <- result{err: err}
			return
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		res <- result{body: string(b), err: err}
	}()

	<-entered
	require.NoError(t, srv.Shutdown(context.Background()))
	got := <-res
	require.NoError(t, got.err)
	assert.Equal(t, "finished", got.body)
	waitDone(t, done)
}

func TestConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := httpserver.DefaultConfig()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 120*time.Second, cfg.IdleTimeout)
}
