package server_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streaminghub/catalog/core/server"
)

func hello(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("hello"))
}

func waitForAddr(t *testing.T, srv *server.Server) string {
	t.Helper()
	var addr string
	require.Eventually(t, func() bool {
		addr = srv.Addr()
		_, port, err := net.SplitHostPort(addr)
		return err == nil && port != "0"
	}, 2*time.Second, 10*time.Millisecond)
	return addr
}

func TestServerRun(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0", server.WithShutdownTimeout(time.Second))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, http.HandlerFunc(hello))() }()

	addr := waitForAddr(t, srv)
	resp, err := http.Get("http://" + addr + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServerBindError(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := server.New(ln.Addr().String())
	err = srv.Run(context.Background(), http.HandlerFunc(hello))()
	assert.ErrorIs(t, err, server.ErrListen)
}

func TestServerAlreadyRunning(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = srv.Run(ctx, http.HandlerFunc(hello))() }()
	waitForAddr(t, srv)

	err := srv.Start(context.Background(), http.HandlerFunc(hello))
	assert.ErrorIs(t, err, server.ErrServerAlreadyRunning)
}

func TestServerStopWhenIdle(t *testing.T) {
	t.Parallel()

	assert.NoError(t, server.New(":0").Stop())
}
