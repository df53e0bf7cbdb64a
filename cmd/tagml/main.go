package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/pthm/tagml"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "scan":
		if err := runScan(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("tagml version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tagml - custom-tag activation engine for HTML

Usage:
  tagml <command> [arguments]

Commands:
  scan [files]          Inventory namespaced custom tags in HTML documents
  version               Print version
  help                  Show this help

Options for scan:
  --ns <namespace>      Namespace prefix to look for (default "fb")

Examples:
  tagml scan page.html              List fb:* tags in page.html
  tagml scan --ns app *.html        List app:* tags across files`)
}

func runScan(args []string) error {
	ns := "fb"
	var files []string

	for i := 0; i < len(args); i++ {
		if args[i] == "--ns" {
			if i+1 >= len(args) {
				return fmt.Errorf("--ns requires a value")
			}
			i++
			ns = args[i]
			continue
		}
		files = append(files, args[i])
	}

	if len(files) == 0 {
		return fmt.Errorf("no input files")
	}

	prefix := strings.ToLower(ns) + ":"
	for _, path := range files {
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		doc, err := tagml.ParseDocument(string(raw))
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		counts := map[string]int{}
		countTags(doc, prefix, counts)

		fmt.Printf("%s:\n", path)
		if len(counts) == 0 {
			fmt.Println("  (no custom tags)")
			continue
		}
		tags := make([]string, 0, len(counts))
		for tag := range counts {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		for _, tag := range tags {
			fmt.Printf("  %-24s %d\n", tag, counts[tag])
		}
	}
	return nil
}

func countTags(n *html.Node, prefix string, counts map[string]int) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && strings.HasPrefix(c.Data, prefix) {
			counts[c.Data]++
		}
		countTags(c, prefix, counts)
	}
}
