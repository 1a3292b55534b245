package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	httpadapter "github.com/couchcryptid/incident-viz/internal/adapter/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type alwaysReady struct{}

func (alwaysReady) CheckReadiness(context.Context) error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServe_PortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	srv := httpadapter.NewServer(ln.Addr().String(), alwaysReady{}, t.TempDir(), nil, discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = serve(ctx, srv, time.Second, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start http server")
	assert.NoError(t, ctx.Err(), "serve must return before the signal context ends")
}

func TestServe_ShutdownOnCancel(t *testing.T) {
	srv := httpadapter.NewServer("127.0.0.1:0", alwaysReady{}, t.TempDir(), nil, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, time.Second, discardLogger()) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancellation")
	}
}
