package tagml

import (
	"context"

	"golang.org/x/net/html"
)

// Handler is the runtime object responsible for rendering one custom tag
// instance. The engine creates at most one handler per element and keeps
// it for the element's lifetime; repeat parse passes call Process again
// on the same instance.
//
// Process kicks off (or re-triggers) the handler's rendering work, which
// may finish asynchronously. Implementations must fire the Rendered
// signal exactly once per completed render - embedding *Base and calling
// Done() is the usual way.
type Handler interface {
	Process(ctx context.Context)
	Rendered() *Signal
}

// Factory constructs a handler bound to one element. Factories are
// registered per handler type with Engine.RegisterHandler, or delivered
// on demand by a Loader.
type Factory func(el *html.Node) Handler

// Base is the embeddable handler core. It owns the element reference and
// the render-completion signal, and gives handlers access to attributes
// and the engine's props codec.
//
// Handlers embed *Base the way components embed framework bases:
//
//	type Like struct {
//	    *tagml.Base
//	}
//
//	func NewLike(el *html.Node) tagml.Handler {
//	    return &Like{Base: tagml.NewBase(el)}
//	}
//
//	func (l *Like) Process(ctx context.Context) {
//	    // ... build the widget DOM ...
//	    l.Done()
//	}
type Base struct {
	el        *html.Node
	encoder   *Encoder
	sensitive bool
	rendered  Signal
}

// NewBase creates the handler core for the given element.
func NewBase(el *html.Node) *Base {
	return &Base{el: el}
}

// Sensitive marks the handler's props as encrypted rather than signed.
//
//	return &Payment{Base: tagml.NewBase(el).Sensitive()}
func (b *Base) Sensitive() *Base {
	b.sensitive = true
	return b
}

// Element returns the element this handler is bound to. The handler holds
// the reference but does not own the element; the document does.
func (b *Base) Element() *html.Node {
	return b.el
}

// Rendered returns the handler's render-completion signal.
func (b *Base) Rendered() *Signal {
	return &b.rendered
}

// Done marks the current rendering pass complete, notifying every
// subscriber waiting on this render.
func (b *Base) Done() {
	b.rendered.Notify()
}

// SetEncoder sets the props codec for this handler (called by the engine
// during instantiation).
func (b *Base) SetEncoder(enc *Encoder) {
	b.encoder = enc
}

// Attr returns the value of the named attribute on the bound element, or
// the empty string.
func (b *Base) Attr(name string) string {
	return GetAttr(b.el, name)
}

// DecodeProps verifies and decodes the element's props attribute into v.
// Returns ErrNoProps when the element carries no props attribute and
// ErrNoEncoder when the handler was built outside an engine.
func (b *Base) DecodeProps(v any) error {
	raw := GetAttr(b.el, PropsAttr)
	if raw == "" {
		return ErrNoProps
	}
	if b.encoder == nil {
		return ErrNoEncoder
	}
	return wrapEncodingError(b.encoder.Decode(raw, b.sensitive, v))
}
