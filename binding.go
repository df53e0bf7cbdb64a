package tagml

import (
	"context"

	"golang.org/x/net/html"
)

// bind attaches a handler to el and subscribes onDone for exactly one
// render completion.
//
// An element that already owns a handler keeps it: the new subscriber is
// added and Process re-triggers rendering work on the shared instance.
// Otherwise the factory for handlerType is resolved - from the factory
// table, or through the loader when the implementation has not arrived
// yet - and the element is instantiated once.
//
// When neither a factory nor a loader can supply the implementation the
// binding never completes. That is deliberate: one broken tag must not
// block the rest of the page, so the failure surfaces only through the
// run's timeout diagnostic.
func (e *Engine) bind(ctx context.Context, el *html.Node, handlerType string, onDone func()) {
	e.mu.Lock()
	if h, ok := e.bindings[el]; ok {
		e.mu.Unlock()
		h.Rendered().Once(onDone)
		h.Process(ctx)
		return
	}
	factory, ok := e.factories[handlerType]
	e.mu.Unlock()

	if ok {
		e.instantiate(ctx, el, factory, onDone)
		return
	}

	if e.loader == nil {
		e.logger.Warn("no factory for handler type and no loader configured",
			"handler", handlerType)
		return
	}

	e.loader.Load(handlerType, func(f Factory, err error) {
		if err != nil {
			e.logger.Warn("handler implementation failed to load",
				"handler", handlerType, "error", err)
			return
		}
		e.mu.Lock()
		if _, exists := e.factories[handlerType]; !exists {
			e.factories[handlerType] = f
		}
		e.mu.Unlock()
		e.instantiate(ctx, el, f, onDone)
	})
}

// instantiate establishes the one-binding-per-element invariant: the
// binding table is re-checked under the lock because concurrent loads for
// the same not-yet-loaded handler type may race to instantiate one
// element; only the first creates the handler.
func (e *Engine) instantiate(ctx context.Context, el *html.Node, factory Factory, onDone func()) {
	e.mu.Lock()
	h, ok := e.bindings[el]
	if !ok {
		h = factory(el)
		if aware, ok := h.(interface{ SetEncoder(*Encoder) }); ok {
			aware.SetEncoder(e.encoder)
		}
		e.bindings[el] = h
	}
	e.mu.Unlock()

	// Subscribe before Process so a render that completes synchronously
	// still reaches this bind's continuation.
	h.Rendered().Once(onDone)
	h.Process(ctx)
}
