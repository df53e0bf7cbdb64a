package tagml

import (
	"context"
	"sync"
	"time"

	"golang.org/x/net/html"
)

// MustParseDocument parses a complete HTML document and panics on
// failure. Intended for tests and fixtures.
func MustParseDocument(markup string) *html.Node {
	doc, err := ParseDocument(markup)
	if err != nil {
		panic("tagml: parse document: " + err.Error())
	}
	return doc
}

// WaitParse runs one parse pass and blocks until the run completes or
// the wait deadline passes. Returns true if the run completed. Intended
// for tests; production callers use Parse's callback or the event bus.
func WaitParse(ctx context.Context, e *Engine, root *html.Node, wait time.Duration) bool {
	done := make(chan struct{})
	e.Parse(ctx, root, func() { close(done) })
	select {
	case <-done:
		return true
	case <-time.After(wait):
		return false
	}
}

// TestHandler is a scripted handler for exercising engines in tests.
//
// With auto completion the handler renders the moment Process is called.
// Without it, the test controls completion explicitly via Complete,
// simulating asynchronous rendering work:
//
//	factory, created := tagml.TestFactory(false)
//	engine.RegisterHandler("Like", factory)
//	engine.Parse(ctx, doc, cb)
//	for _, h := range created() {
//	    h.Complete()
//	}
type TestHandler struct {
	*Base

	mu        sync.Mutex
	processed int
	auto      bool
}

// NewTestHandler creates a test handler bound to el. When auto is true,
// every Process call completes the render synchronously.
func NewTestHandler(el *html.Node, auto bool) *TestHandler {
	return &TestHandler{Base: NewBase(el), auto: auto}
}

// Process implements Handler.
func (h *TestHandler) Process(ctx context.Context) {
	h.mu.Lock()
	h.processed++
	auto := h.auto
	h.mu.Unlock()
	if auto {
		h.Done()
	}
}

// Complete fires the render-completion signal, finishing the pending
// render for every subscriber of the current pass.
func (h *TestHandler) Complete() {
	h.Done()
}

// Processed reports how many times Process has been called.
func (h *TestHandler) Processed() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.processed
}

// TestFactory returns a Factory producing TestHandlers and an accessor
// for the handlers it has created, in creation order.
func TestFactory(auto bool) (Factory, func() []*TestHandler) {
	var mu sync.Mutex
	var created []*TestHandler

	factory := func(el *html.Node) Handler {
		h := NewTestHandler(el, auto)
		mu.Lock()
		created = append(created, h)
		mu.Unlock()
		return h
	}
	accessor := func() []*TestHandler {
		mu.Lock()
		defer mu.Unlock()
		out := make([]*TestHandler, len(created))
		copy(out, created)
		return out
	}
	return factory, accessor
}
