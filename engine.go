package tagml

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/pthm/tagml/lib/pubsub"
)

// DefaultRenderTimeout is how long a parse run waits before logging a
// diagnostic about handlers that have not finished rendering.
const DefaultRenderTimeout = 30 * time.Second

// ParseFinished is published on the engine's event bus once per completed
// parse run.
const ParseFinished pubsub.EventType = "parse.finished"

// ParseEvent is the payload of a ParseFinished event.
type ParseEvent struct {
	RunID   uuid.UUID
	Bound   int // elements bound during the run
	Elapsed time.Duration
}

// Engine discovers custom markup tags in an HTML tree, binds a handler to
// each, and reports when every handler has finished rendering.
//
// The engine owns three pieces of process-wide state: the ordered tag
// registry, the handler-type factory table, and the element binding table
// that holds the one handler instance each element ever gets.
type Engine struct {
	mu        sync.Mutex
	tags      []TagDescriptor
	factories map[string]Factory
	bindings  map[*html.Node]Handler

	encoder *Encoder
	loader  Loader
	bus     *pubsub.Broker[ParseEvent]
	logger  *slog.Logger
	timeout time.Duration
	match   MatchMode
	doc     *html.Node
}

// Option configures an Engine.
type Option func(*Engine)

// WithRenderTimeout sets the deadline after which a parse run logs its
// still-outstanding handler count. The timeout is diagnostic only; it
// never cancels handlers or completes the run.
func WithRenderTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithLogger sets the engine's logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithLoader sets the loader used to fetch factories for handler types
// that have no registered factory when an element is bound.
func WithLoader(l Loader) Option {
	return func(e *Engine) { e.loader = l }
}

// WithMatchMode sets how the scanner recognizes namespaced tags.
func WithMatchMode(m MatchMode) Option {
	return func(e *Engine) { e.match = m }
}

// WithDocument sets the tree a nil-root Parse scans.
func WithDocument(doc *html.Node) Option {
	return func(e *Engine) { e.doc = doc }
}

// New creates an engine. The encryption key feeds the props codec;
// handlers decode their element's signed or encrypted props through it.
// Panics if the codec cannot be constructed.
func New(encryptionKey []byte, opts ...Option) *Engine {
	enc, err := NewEncoder(encryptionKey)
	if err != nil {
		panic(fmt.Sprintf("tagml: failed to create encoder: %v", err))
	}

	e := &Engine{
		factories: make(map[string]Factory),
		bindings:  make(map[*html.Node]Handler),
		encoder:   enc,
		bus:       pubsub.NewBroker[ParseEvent](),
		logger:    slog.Default(),
		timeout:   DefaultRenderTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Events exposes the engine's parse-completion bus. Any observer may
// subscribe; one ParseFinished event is published per completed run.
func (e *Engine) Events() *pubsub.Broker[ParseEvent] {
	return e.bus
}

// Close shuts down the event bus. In-flight parse runs keep draining but
// their completion events are dropped.
func (e *Engine) Close() {
	e.bus.Close()
}

// BindingFor returns the handler bound to el, if any.
func (e *Engine) BindingFor(el *html.Node) (Handler, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	h, ok := e.bindings[el]
	return h, ok
}

// Parse scans the subtree under root for every registered tag, binds a
// handler to each match, and invokes callback exactly once when all bound
// handlers have finished rendering. A nil root scans the tree given to
// WithDocument. The callback may be nil; a ParseFinished event is
// published either way.
//
// Parse returns without waiting for loads or handler work. Handlers that
// never finish - load failure, handler failure - do not fail the run;
// they hold the run open and are reported once by the render-timeout
// diagnostic.
func (e *Engine) Parse(ctx context.Context, root *html.Node, callback func()) {
	if root == nil {
		root = e.doc
	}

	runID := uuid.New()
	started := time.Now()
	matched := 0

	// The counter starts at 1, not 0. The reserved unit stands for the
	// scan pass itself, so the count cannot drain to zero - and fire the
	// callback - while matches are still being discovered, even when
	// every handler completes synchronously during the scan.
	var outstanding atomic.Int64
	outstanding.Store(1)

	var timer *time.Timer

	done := func() {
		if outstanding.Add(-1) != 0 {
			return
		}
		timer.Stop()
		if callback != nil {
			callback()
		}
		elapsed := time.Since(started)
		e.bus.Publish(ParseFinished, ParseEvent{RunID: runID, Bound: matched, Elapsed: elapsed})
		e.logger.Debug("parse run complete",
			"run", runID, "bound", matched, "elapsed", elapsed)
	}

	timer = time.AfterFunc(e.timeout, func() {
		if n := outstanding.Load(); n > 0 {
			e.logger.Warn("handlers still outstanding after render timeout",
				"run", runID, "outstanding", n, "timeout", e.timeout)
		}
	})

	for _, d := range e.snapshotTags() {
		ns := d.Namespace
		if ns == "" {
			ns = DefaultNamespace
		}
		for _, el := range Scan(root, ns, d.LocalName, e.match) {
			matched++
			// Account for the element before initiating the bind so an
			// immediate synchronous completion cannot drain the counter
			// while later descriptors are still unscanned.
			outstanding.Add(1)
			e.bind(ctx, el, d.HandlerType, done)
		}
	}

	// Release the reserved scan unit from step one.
	done()
}

func (e *Engine) snapshotTags() []TagDescriptor {
	e.mu.Lock()
	defer e.mu.Unlock()
	tags := make([]TagDescriptor, len(e.tags))
	copy(tags, e.tags)
	return tags
}
