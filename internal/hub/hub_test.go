package hub

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubStopsCleanly(t *testing.T) {
	h := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	c := &Client{hub: h, send: make(chan []byte, 1)}
	require.True(t, h.Register(c))
	assert.Equal(t, 1, h.Count())

	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	cancel()

	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	_, open := <-c.send
	assert.False(t, open, "remaining clients are closed")
	assert.Zero(t, h.Count())

	late := &Client{hub: h, send: make(chan []byte, 1)}
	assert.False(t, h.Register(late))

	// None of these may block or panic once the hub is gone.
	h.Unregister(c)
	h.Unregister(late)
	h.Broadcast([]byte("x"))
	assert.False(t, h.SendTo(c, []byte("x")))
}

func TestUnregisterTwice(t *testing.T) {
	h := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	c := &Client{hub: h, send: make(chan []byte, 1)}
	require.True(t, h.Register(c))

	h.Unregister(c)
	h.Unregister(c)
	assert.Zero(t, h.Count())
}
