package tagml

import (
	"fmt"
	"slices"
)

// DefaultNamespace is applied to tag descriptors registered without one.
const DefaultNamespace = "fb"

// TagDescriptor names one custom tag and the handler type that renders it.
// Descriptors are immutable once registered.
type TagDescriptor struct {
	Namespace   string // defaults to DefaultNamespace when empty
	LocalName   string
	HandlerType string
}

// Tag returns the namespace-qualified tag name, e.g. "fb:like".
func (d TagDescriptor) Tag() string {
	ns := d.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}
	return ns + ":" + d.LocalName
}

// RegisterTag appends a descriptor to the engine's tag registry.
//
// Descriptors are scanned in registration order. There is no validation
// and no deduplication: a duplicate (namespace, local name) pair is
// appended and causes repeat bind attempts on the same elements, which
// the one-binding-per-element invariant absorbs. Registration is legal
// at any time - a handler implementation may register more tags as it
// loads - but a parse pass already in flight works from the snapshot it
// took when it started scanning and may not see the new entry.
func (e *Engine) RegisterTag(d TagDescriptor) {
	e.mu.Lock()
	e.tags = append(e.tags, d)
	e.mu.Unlock()
}

// Tags returns a snapshot of the registered descriptors in registration
// order.
func (e *Engine) Tags() []TagDescriptor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.tags)
}

// RegisterHandler maps a handler type name to its factory. Two factories
// claiming one handler type is a programming error, not runtime input, so
// a collision panics.
func (e *Engine) RegisterHandler(handlerType string, f Factory) {
	if f == nil {
		panic(fmt.Sprintf("tagml: nil factory for handler type %q", handlerType))
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.factories[handlerType]; exists {
		panic(fmt.Sprintf("tagml: handler type collision for %q", handlerType))
	}
	e.factories[handlerType] = f
}
