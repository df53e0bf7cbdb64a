// Package tagml activates custom markup tags embedded in HTML documents.
//
// A document arrives carrying namespaced widget tags such as <fb:like> or
// <fb:name uid="4">. tagml discovers every registered tag in a subtree,
// binds a handler object to each element, loads handler implementations
// on demand, and reports exactly once when every discovered tag has
// finished rendering - or logs the ones that did not, after a deadline.
//
// # Core Concepts
//
// An Engine holds three pieces of process-wide state: the ordered tag
// registry (which tags exist and which handler type renders each), the
// factory table (handler type name to constructor), and the binding table
// (each element's one handler instance, kept for the element's lifetime).
//
//	engine := tagml.New(key)
//	engine.RegisterTag(tagml.TagDescriptor{LocalName: "like", HandlerType: "Like"})
//	engine.RegisterHandler("Like", NewLike)
//
// Handlers embed *Base, do their rendering work in Process, and call
// Done() when the widget is complete:
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
//	    tagml.RenderInto(ctx, l.Element(), likeButton(l.Attr("href")))
//	    l.Done()
//	}
//
// # Activation
//
// Parse drives one activation pass over a subtree:
//
//	engine.Parse(ctx, doc, func() {
//	    // every discovered tag has rendered
//	})
//
// Rendering work may finish asynchronously, handler implementations may
// still be loading, and new matches are discovered while earlier ones
// complete. Parse tracks all of it with one outstanding-operation
// counter that starts at 1: the reserved unit represents the scan pass
// itself and is released only after every descriptor has been scanned,
// so the count cannot touch zero - and fire the callback - while work is
// still being discovered. The callback and a ParseFinished bus event
// fire exactly once per run, regardless of completion order.
//
// A run whose handlers never finish is not an error: after the render
// timeout (default 30s) the engine logs the outstanding count once and
// moves on. One broken tag must not block the rest of the page.
//
// # Lazy Loading
//
// A Loader supplies factories for handler types whose implementations
// are not yet available. Binding defers until the load completes; Parse
// itself never blocks. CachedLoader wraps a fetch function and memoizes
// delivered factories so repeat parses take the synchronous fast path.
//
// # Props
//
// Widget parameters travel in a data-props attribute, msgpack-encoded
// and HMAC-signed by default (tamper-proof but visible), or AES-GCM
// encrypted for sensitive handlers. The server emitting the tags signs
// props with the same key the engine verifies with; handlers decode via
// DecodeProps.
//
// # Markup Injection
//
// Set replaces an element's content with raw markup and activates
// whatever tags it introduced:
//
//	engine.Set(ctx, el, `<fb:name uid="4"></fb:name>`, nil)
//
// # Design Rationale
//
// The system favors explicitness over magic:
//   - Explicit registration (a closed factory table, no name reflection)
//   - Explicit completion (handlers signal Done, no polling)
//   - Explicit state (bindings live in a side table keyed by element)
//   - Explicit failure (a timeout diagnostic, never a thrown error)
package tagml
