package tagml

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseDocument parses a complete HTML document.
func ParseDocument(markup string) (*html.Node, error) {
	return html.Parse(strings.NewReader(markup))
}

// GetAttr returns the value of the named attribute on n, or the empty
// string. Attribute names are matched case-insensitively, as net/html
// lower-cases them during parsing.
func GetAttr(n *html.Node, name string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

// SetAttr sets or replaces the named attribute on n.
func SetAttr(n *html.Node, name, value string) {
	if n == nil {
		return
	}
	for i, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: strings.ToLower(name), Val: value})
}

// SetContent replaces n's children with the parsed form of markup.
// The markup is fragment-parsed in a neutral div context, so custom
// namespaced tags survive as literal colon-joined elements.
func SetContent(n *html.Node, markup string) error {
	if n == nil {
		return fmt.Errorf("tagml: set content on nil element")
	}

	ctxNode := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	children, err := html.ParseFragment(strings.NewReader(markup), ctxNode)
	if err != nil {
		return fmt.Errorf("tagml: parse markup: %w", err)
	}

	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
	for _, c := range children {
		n.AppendChild(c)
	}
	return nil
}

// RenderInto renders a templ component and installs the output as n's
// content. Handlers use this to build their widget DOM:
//
//	func (p *Profile) Process(ctx context.Context) {
//	    if err := tagml.RenderInto(ctx, p.Element(), profileCard(p.name)); err != nil {
//	        return // render failure holds the binding open; the timeout reports it
//	    }
//	    p.Done()
//	}
func RenderInto(ctx context.Context, n *html.Node, component templ.Component) error {
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return err
	}
	return SetContent(n, buf.String())
}

// RenderDocument serializes the tree back to HTML markup.
func RenderDocument(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
