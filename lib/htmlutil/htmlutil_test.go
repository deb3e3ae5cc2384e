package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parseBody(t *testing.T, fragment string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	require.NoError(t, err)
	return doc.Find("body").Children().First()
}

func TestGetText(t *testing.T) {
	sel := parseBody(t, `<div>one <b>two</b> three</div>`)
	require.Equal(t, "one two three", GetText(sel.Get(0)))
}

func TestTextNodes(t *testing.T) {
	sel := parseBody(t, `<div>Problem Author: <a href="x">Someone</a>Problem Source: <a href="y">Contest</a></div>`)
	require.Equal(t,
		[]string{"Problem Author: ", "Someone", "Problem Source: ", "Contest"},
		TextNodes(sel.Get(0)))
}

func TestLeadingText(t *testing.T) {
	sel := parseBody(t, `<h3>Input<span> ignored</span> tail</h3>`)
	require.Equal(t, "Input", LeadingText(sel.Get(0)))

	empty := parseBody(t, `<h3><span>no own text</span></h3>`)
	require.Equal(t, "", LeadingText(empty.Get(0)))
}

func TestToText(t *testing.T) {
	out, err := ToText(`<p>first</p><p>second</p>`)
	require.NoError(t, err)
	require.Contains(t, out, "first")
	require.Contains(t, out, "second")
}
