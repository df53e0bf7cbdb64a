package tagml

import (
	"context"

	"golang.org/x/net/html"
)

// Set replaces el's content with raw markup and then activates any custom
// tags the markup introduced, exactly as Parse(ctx, el, callback) would.
//
//	engine.Set(ctx, el, `<fb:name uid="4"></fb:name>`, nil)
func (e *Engine) Set(ctx context.Context, el *html.Node, markup string, callback func()) error {
	if err := SetContent(el, markup); err != nil {
		return err
	}
	e.Parse(ctx, el, callback)
	return nil
}
