// Package editsession implements the round trip between the dashboard and an
// externally opened Pixlr editor window: it opens the editor, listens for the
// relayed result, uploads the edited image and updates the asset record.
//
// The package is independent of any particular windowing system. Hosts plug
// in a WindowOpener and a MessageChannel; the callback page posts relay
// messages into the channel.
package editsession

import "sync"

// Relay message kinds posted by the callback page.
const (
	KindAccepted  = "pixlr-callback"
	KindCancelled = "pixlr-cancel"
	KindError     = "pixlr-error"
)

// Message is the cross-window relay payload. ImageData and AssetID are set
// for accepted edits, Message for editor-side errors.
type Message struct {
	Type      string `json:"type"`
	ImageData string `json:"imageData,omitempty"`
	AssetID   string `json:"assetId,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Incoming pairs a relay message with the origin it was posted from.
// The controller discards anything whose origin differs from the hosting one.
type Incoming struct {
	Origin  string
	Message Message
}

// MessageChannel is the cross-window message-passing seam. Post delivers a
// message from a given origin; OnMessage registers a handler and returns a
// function that unregisters it.
type MessageChannel interface {
	Post(origin string, msg Message)
	OnMessage(fn func(Incoming)) (unsubscribe func())
}

// LoopChannel is an in-process MessageChannel. Messages are dispatched
// synchronously in Post's goroutine, preserving arrival order.
type LoopChannel struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]func(Incoming)
}

func NewLoopChannel() *LoopChannel {
	return &LoopChannel{handlers: map[int]func(Incoming){}}
}

func (c *LoopChannel) Post(origin string, msg Message) {
	c.mu.Lock()
	fns := make([]func(Incoming), 0, len(c.handlers))
	for _, fn := range c.handlers {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(Incoming{Origin: origin, Message: msg})
	}
}

func (c *LoopChannel) OnMessage(fn func(Incoming)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.handlers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.handlers, id)
		c.mu.Unlock()
	}
}
