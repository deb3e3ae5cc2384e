// Package htmlutil holds the small node-level helpers the scrapers share.
// goquery's Text() flattens a whole subtree; the judge's markup often
// makes meaning out of individual text nodes and their positions, so the
// helpers here keep that structure visible.
package htmlutil

import (
	"bytes"

	"github.com/jaytaylor/html2text"
	"golang.org/x/net/html"
)

// GetText returns the concatenated text content of a whole subtree.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// TextNodes returns every text node under the given node in document
// order, one entry per node, without trimming or filtering. Blocks whose
// meaning is positional (author/source attribution) are consumed this way.
func TextNodes(node *html.Node) []string {
	var out []string
	collectTextNodes(node, &out)
	return out
}

func collectTextNodes(node *html.Node, out *[]string) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		*out = append(*out, node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectTextNodes(child, out)
	}
}

// LeadingText returns the text of an element before its first child
// element, i.e. only the heading's own text, not that of nested markup.
func LeadingText(node *html.Node) string {
	if node == nil {
		return ""
	}
	var buffer bytes.Buffer
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.TextNode {
			break
		}
		buffer.WriteString(child.Data)
	}
	return buffer.String()
}

// ToText renders an HTML fragment into plain terminal text.
func ToText(fragment string) (string, error) {
	return html2text.FromString(fragment, html2text.Options{})
}
