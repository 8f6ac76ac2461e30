// Package picker provides the in-terminal save destination picker and
// the bridge that lets the blocking file-access picker call round-trip
// through the Bubble Tea event loop.
package picker

import (
	"context"
	"fmt"
	"sync"

	"blockpad-cli/fileaccess"
)

// Result is the answer to a picker request.
type Result struct {
	Destination fileaccess.Destination
	Err         error
}

// Request asks the UI for a save destination. Exactly one Result must
// be sent on Reply.
type Request struct {
	SuggestedName string
	Reply         chan Result
}

// RequestMsg wraps a request for delivery through the program's
// message loop.
type RequestMsg struct {
	Request Request
}

// Bridge adapts the synchronous picker contract to the asynchronous
// TUI. Pick blocks the calling save goroutine until the UI replies or
// the context is cancelled.
type Bridge struct {
	mu     sync.RWMutex
	notify func(Request)
}

// NewBridge creates an unattached bridge.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach sets the function used to hand requests to the UI, typically
// program.Send wrapped in a RequestMsg.
func (b *Bridge) Attach(notify func(Request)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notify = notify
}

// Pick implements fileaccess.PickerFunc.
func (b *Bridge) Pick(ctx context.Context, suggestedName string) (fileaccess.Destination, error) {
	b.mu.RLock()
	notify := b.notify
	b.mu.RUnlock()
	if notify == nil {
		return fileaccess.Destination{}, fmt.Errorf("picker: no ui attached")
	}

	req := Request{
		SuggestedName: suggestedName,
		Reply:         make(chan Result, 1),
	}
	notify(req)

	select {
	case result := <-req.Reply:
		return result.Destination, result.Err
	case <-ctx.Done():
		return fileaccess.Destination{}, fileaccess.ErrCancelled
	}
}
