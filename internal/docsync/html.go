// SPDX-License-Identifier: MPL-2.0

package docsync

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ProcessFile injects the jquery and navigation script tags as the first
// children of the page's body element. Pages already carrying the
// navigation script are left untouched, so processing is idempotent.
func (s *Syncer) ProcessFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read page: %w", err)
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if findScript(doc, navSrc) != nil {
		return nil
	}

	body := findElement(doc, atom.Body)
	if body == nil {
		return fmt.Errorf("%s: no body element", path)
	}

	nav := scriptNode(navSrc)
	jquery := scriptNode(s.JQueryURL)
	body.InsertBefore(nav, body.FirstChild)
	body.InsertBefore(jquery, nav)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}

func scriptNode(src string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Script,
		Data:     "script",
		Attr:     []html.Attribute{{Key: "src", Val: src}},
	}
}

// findElement returns the first element with the given tag, depth first.
func findElement(n *html.Node, tag atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// findScript returns the first script element whose src equals src.
func findScript(n *html.Node, src string) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Script {
		for _, attr := range n.Attr {
			if attr.Key == "src" && attr.Val == src {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findScript(c, src); found != nil {
			return found
		}
	}
	return nil
}
