package htmlx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordring/htmlx/atom"
	"github.com/wordring/htmlx/tree"
)

func TestParseCommentBeforeDoctype(t *testing.T) {
	res := Parse(strings.NewReader("<!-- Comment -->"))
	require.NotNil(t, res.Tree)

	first := res.Tree.FirstChild(res.Document)
	require.NotEqual(t, res.Document, first)
	assert.True(t, res.Tree.IsComment(first))
	assert.Equal(t, " Comment ", res.Tree.TextData(first))
}

func TestParseSimpleParagraphTreeShape(t *testing.T) {
	res := Parse(strings.NewReader("<p>Hello HTML!</p>"))

	html := res.Tree.FirstChild(res.Document)
	require.NotEqual(t, 0, int(html))
	assert.True(t, res.Tree.IsElement(html))

	head := res.Tree.FirstChild(html)
	require.NotEqual(t, 0, int(head))
	assert.Equal(t, "head", res.Tree.LocalName(head))

	body := res.Tree.NextSibling(head)
	require.NotEqual(t, 0, int(body))
	assert.Equal(t, "body", res.Tree.LocalName(body))

	p := res.Tree.FirstChild(body)
	require.NotEqual(t, 0, int(p))
	assert.Equal(t, "p", res.Tree.LocalName(p))

	text := res.Tree.FirstChild(p)
	require.NotEqual(t, 0, int(text))
	assert.True(t, res.Tree.IsText(text))
	assert.Equal(t, "Hello HTML!", res.Tree.TextData(text))
}

func TestParseMetaCharsetMakesEncodingCertain(t *testing.T) {
	res := Parse(strings.NewReader(`<html><head><meta charset="utf-8"></head><body></body></html>`))
	assert.Equal(t, EncodingCertain, res.EncodingConfidence)
	assert.Equal(t, "utf-8", res.EncodingName)
}

func TestParseDoctypeStrictIsQuirks(t *testing.T) {
	res := Parse(strings.NewReader(`<!DOCTYPE html PUBLIC "-//IETF//DTD HTML STRICT//EN"><html></html>`))
	assert.Equal(t, tree.Quirks, res.Quirks)
}

func TestParseDoctypeXHTMLFramesetIsLimitedQuirks(t *testing.T) {
	res := Parse(strings.NewReader(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Frameset//EN" "x">`))
	assert.Equal(t, tree.LimitedQuirks, res.Quirks)
}

func TestParseDocumentHasExactlyOneHTMLChild(t *testing.T) {
	res := Parse(strings.NewReader(`<html><body><div><p>x</div></body></html>`))

	// exactly one html child of the document.
	var htmlCount int
	for c := res.Tree.FirstChild(res.Document); c != 0; c = res.Tree.NextSibling(c) {
		if res.Tree.IsElement(c) && res.Tree.LocalName(c) == "html" {
			htmlCount++
		}
	}
	assert.Equal(t, 1, htmlCount)
}

func TestParseAdoptionAgencyReparentsMisnestedFormattingElement(t *testing.T) {
	// The HTML Standard's classic adoption-agency scenario: </b> closes a
	// formatting element that is no longer the current node (<i> is), which
	// forces the adoption agency algorithm to run rather than take the
	// simple "current node matches, just pop" shortcut (spec.md §4.5, §8).
	res := Parse(strings.NewReader("<b><i></b></i>"))

	html := res.Tree.FirstChild(res.Document)
	head := res.Tree.FirstChild(html)
	body := res.Tree.NextSibling(head)

	b := res.Tree.FirstChild(body)
	require.NotEqual(t, 0, int(b))
	assert.Equal(t, "b", res.Tree.LocalName(b))
	assert.Equal(t, 0, int(res.Tree.NextSibling(b)))

	i := res.Tree.FirstChild(b)
	require.NotEqual(t, 0, int(i))
	assert.Equal(t, "i", res.Tree.LocalName(i))
	assert.Equal(t, 0, int(res.Tree.FirstChild(i)))
}

func TestParseFragmentSeedsWithContextElement(t *testing.T) {
	res := ParseFragment(strings.NewReader("<li>one</li><li>two</li>"), &tree.FragmentContext{
		TagID:     atom.TagUl,
		TagName:   "ul",
		Namespace: tree.NamespaceHTML,
	})
	require.Len(t, res.Nodes, 2)
	assert.Equal(t, "li", res.Tree.LocalName(res.Nodes[0]))
	assert.Equal(t, "li", res.Tree.LocalName(res.Nodes[1]))
}
