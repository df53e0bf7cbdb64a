package tagml

import (
	"strings"

	"golang.org/x/net/html"
)

// MatchMode selects how the scanner recognizes a namespace-qualified
// custom tag in a parsed tree. Parsers disagree on what a tag like
// <fb:like> becomes, so the engine is configured with the mode that fits
// the pipeline feeding it.
type MatchMode int

const (
	// MatchPrefixed matches the literal colon-joined tag name ("fb:like").
	// This is what net/html produces for custom namespaced tags in
	// documents that never declare the namespace. The default.
	MatchPrefixed MatchMode = iota

	// MatchForeign matches elements whose parsed Namespace field carries
	// the namespace with a bare local name, as in foreign (svg/math
	// style) content.
	MatchForeign

	// MatchLocal matches the bare local name, for pipelines that strip
	// namespace prefixes before handing the tree over.
	MatchLocal
)

// Scan returns every descendant element of root matching the
// namespace-qualified tag name under the given mode. The tree is never
// mutated; the root itself is not a candidate. Returns nil when nothing
// matches.
func Scan(root *html.Node, namespace, local string, mode MatchMode) []*html.Node {
	if root == nil || local == "" {
		return nil
	}

	namespace = strings.ToLower(namespace)
	local = strings.ToLower(local)
	prefixed := namespace + ":" + local

	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && tagMatches(c, namespace, local, prefixed, mode) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

func tagMatches(n *html.Node, namespace, local, prefixed string, mode MatchMode) bool {
	switch mode {
	case MatchForeign:
		return n.Namespace == namespace && n.Data == local
	case MatchLocal:
		return n.Data == local && (n.Namespace == "" || n.Namespace == namespace)
	default:
		return n.Data == prefixed
	}
}
