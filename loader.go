package tagml

import (
	gocache "github.com/patrickmn/go-cache"
)

// Loader supplies handler factories whose implementations are not
// available at engine construction time.
//
// Load ensures the implementation behind handlerType is available and
// invokes ready exactly once - synchronously when the implementation is
// already at hand, or later when a fetch completes. Load must return
// without blocking the caller on slow fetches: a parse pass defers the
// affected bindings and moves on.
//
// A failed load delivers a non-nil error to ready; the engine logs it
// and leaves the affected bindings outstanding (they surface only
// through the render-timeout diagnostic).
type Loader interface {
	Load(handlerType string, ready func(Factory, error))
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(handlerType string, ready func(Factory, error))

// Load calls f.
func (f LoaderFunc) Load(handlerType string, ready func(Factory, error)) {
	f(handlerType, ready)
}

// FetchFunc retrieves the factory for one handler type. It may block; the
// CachedLoader runs it off the caller's goroutine.
type FetchFunc func(handlerType string) (Factory, error)

// CachedLoader memoizes fetched factories per handler type, giving repeat
// parses the synchronous fast path. Concurrent loads for a type that is
// still in flight may each invoke fetch; every caller's ready continuation
// still fires exactly once, and the engine instantiates each element only
// once no matter how many loads raced.
type CachedLoader struct {
	cache *gocache.Cache
	fetch FetchFunc
}

// NewCachedLoader creates a loader around fetch. Fetched factories never
// expire.
func NewCachedLoader(fetch FetchFunc) *CachedLoader {
	return &CachedLoader{
		cache: gocache.New(gocache.NoExpiration, 0),
		fetch: fetch,
	}
}

// Load implements Loader.
func (l *CachedLoader) Load(handlerType string, ready func(Factory, error)) {
	if v, ok := l.cache.Get(handlerType); ok {
		ready(v.(Factory), nil)
		return
	}
	go func() {
		f, err := l.fetch(handlerType)
		if err != nil {
			ready(nil, err)
			return
		}
		l.cache.Set(handlerType, f, gocache.NoExpiration)
		ready(f, nil)
	}()
}
