package tagml

import (
	"testing"

	"golang.org/x/net/html"
)

func TestScanPrefixed(t *testing.T) {
	doc := MustParseDocument(likePage)

	els := Scan(doc, "fb", "like", MatchPrefixed)
	if len(els) != 2 {
		t.Fatalf("len(Scan()) = %d, want 2", len(els))
	}
	for i, el := range els {
		if el.Data != "fb:like" {
			t.Errorf("els[%d].Data = %q, want %q", i, el.Data, "fb:like")
		}
	}
}

func TestScanPrefixedCaseInsensitive(t *testing.T) {
	doc := MustParseDocument(likePage)

	if got := len(Scan(doc, "FB", "Like", MatchPrefixed)); got != 2 {
		t.Errorf("len(Scan()) with mixed-case query = %d, want 2", got)
	}
}

func TestScanNoMatches(t *testing.T) {
	doc := MustParseDocument(`<html><body><p>plain</p></body></html>`)

	if got := Scan(doc, "fb", "like", MatchPrefixed); len(got) != 0 {
		t.Errorf("len(Scan()) = %d, want 0", len(got))
	}
}

func TestScanLocal(t *testing.T) {
	doc := MustParseDocument(`<html><body><like></like><p></p></body></html>`)

	els := Scan(doc, "fb", "like", MatchLocal)
	if len(els) != 1 {
		t.Fatalf("len(Scan()) = %d, want 1", len(els))
	}
	if els[0].Data != "like" {
		t.Errorf("els[0].Data = %q, want %q", els[0].Data, "like")
	}
}

func TestScanForeign(t *testing.T) {
	root := &html.Node{Type: html.ElementNode, Data: "div"}
	foreign := &html.Node{Type: html.ElementNode, Data: "like", Namespace: "fb"}
	plain := &html.Node{Type: html.ElementNode, Data: "like"}
	root.AppendChild(foreign)
	root.AppendChild(plain)

	els := Scan(root, "fb", "like", MatchForeign)
	if len(els) != 1 {
		t.Fatalf("len(Scan()) = %d, want 1", len(els))
	}
	if els[0] != foreign {
		t.Error("Scan() matched the wrong node")
	}

	if got := len(Scan(root, "fb", "like", MatchPrefixed)); got != 0 {
		t.Errorf("MatchPrefixed matched foreign-content node: %d matches", got)
	}
}

func TestScanExcludesRoot(t *testing.T) {
	doc := MustParseDocument(likePage)
	els := Scan(doc, "fb", "like", MatchPrefixed)
	if len(els) != 2 {
		t.Fatalf("len(Scan()) = %d, want 2", len(els))
	}

	// Scanning from a matching element returns its descendants only.
	if got := len(Scan(els[0], "fb", "like", MatchPrefixed)); got != 0 {
		t.Errorf("Scan() from a matching root = %d matches, want 0", got)
	}
}

func TestScanNilAndEmpty(t *testing.T) {
	if got := Scan(nil, "fb", "like", MatchPrefixed); got != nil {
		t.Errorf("Scan(nil root) = %v, want nil", got)
	}
	doc := MustParseDocument(likePage)
	if got := Scan(doc, "fb", "", MatchPrefixed); got != nil {
		t.Errorf("Scan with empty local name = %v, want nil", got)
	}
}
