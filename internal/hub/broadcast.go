package hub

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/soar/GamepadTest/internal/gamepad"
	"github.com/soar/GamepadTest/internal/overlay"
)

const (
	fullSyncInterval = 5 * time.Second
	deltaCountSync   = 100
	updateBuffer     = 64
)

// Update is one rendered frame together with the state it was drawn from.
type Update struct {
	State gamepad.Snapshot
	Frame []overlay.Directive
}

// Broadcaster receives frames from the render loop and broadcasts them to
// the hub as full or delta messages.
type Broadcaster struct {
	hub     *Hub
	updates chan Update
	logger  *slog.Logger

	mu sync.Mutex
	// last is the state clients were last told about; deltas are taken
	// against it. latest is the most recent frame, reported or not.
	last       gamepad.Snapshot
	latest     Update
	seq        int64
	deltaCount int
	dropped    uint64
}

func NewBroadcaster(h *Hub, logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{
		hub:     h,
		updates: make(chan Update, updateBuffer),
		logger:  logger,
	}
}

// Observe queues a frame for broadcasting. It never blocks the render loop;
// frames are dropped while the queue is full.
func (b *Broadcaster) Observe(snap gamepad.Snapshot, frame []overlay.Directive) {
	select {
	case b.updates <- Update{State: snap, Frame: slices.Clone(frame)}:
	default:
		b.mu.Lock()
		b.dropped++
		b.mu.Unlock()
	}
}

// Run starts the broadcaster loop. Should be run in a goroutine.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	for {
		select {
		case u := <-b.updates:
			b.handle(u)
		case <-ticker.C:
			b.tick()
		case <-ctx.Done():
			b.mu.Lock()
			if b.dropped > 0 {
				b.logger.Debug("Mirror frames dropped", "count", b.dropped)
			}
			b.mu.Unlock()
			return
		}
	}
}

func (b *Broadcaster) handle(u Update) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.latest = u
	delta := gamepad.ComputeDelta(b.last, u.State)
	if delta.IsEmpty() {
		return
	}
	b.last = u.State

	b.seq++
	b.deltaCount++
	if b.deltaCount >= deltaCountSync {
		b.deltaCount = 0
		b.broadcast(NewFullMessage(b.seq, &u.State, u.Frame))
		return
	}
	b.broadcast(NewDeltaMessage(b.seq, delta, u.Frame))
}

// tick resends the full state periodically while a controller is connected.
func (b *Broadcaster) tick() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.latest.State.Connected {
		return
	}
	b.seq++
	b.last = b.latest.State
	state := b.latest.State
	b.broadcast(NewFullMessage(b.seq, &state, b.latest.Frame))
}

// SendInitialState sends the latest full state to a single client. It
// serves both newly connected clients and sync requests. The message
// carries the current sequence number so other clients see no gap.
func (b *Broadcaster) SendInitialState(c *Client) {
	b.mu.Lock()
	state := b.latest.State
	data, err := json.Marshal(NewFullMessage(b.seq, &state, b.latest.Frame))
	b.mu.Unlock()

	if err != nil {
		b.logger.Error("Failed to marshal full message", "error", err)
		return
	}
	b.hub.SendTo(c, data)
}

func (b *Broadcaster) broadcast(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		b.logger.Error("Failed to marshal message", "type", msg.Type, "error", err)
		return
	}
	b.hub.Broadcast(data)
}
