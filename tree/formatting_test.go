package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordring/htmlx/atom"
	"github.com/wordring/htmlx/dom"
	"github.com/wordring/htmlx/token"
)

func pushIdenticalAnchor(t *testing.T, b *Builder, tr *dom.Tree) dom.Handle {
	t.Helper()
	h := tr.CreateElement(atom.TagA, "a", NamespaceHTML, "")
	tr.SetAttr(h, "", "", "href", "/x")
	tok := token.Token{Kind: token.KindStartTag, TagName: "a", TagID: int32(atom.TagA)}
	b.pushFormattingElement(h, tok, NamespaceHTML)
	return h
}

func TestNoahsArkClauseCapsAtThreeIdenticalEntries(t *testing.T) {
	tr := dom.NewTree()
	b := &Builder{ops: tr}

	first := pushIdenticalAnchor(t, b, tr)
	pushIdenticalAnchor(t, b, tr)
	pushIdenticalAnchor(t, b, tr)
	require.Len(t, b.afe, 3)

	pushIdenticalAnchor(t, b, tr)
	// the oldest (first) entry was evicted; the list never exceeds 3
	// entries between the head and the nearest marker.
	assert.Len(t, b.afe, 3)
	assert.Equal(t, -1, b.findFormattingEntryIndex(first))
}

func TestNoahsArkClauseDoesNotCrossAMarker(t *testing.T) {
	tr := dom.NewTree()
	b := &Builder{ops: tr}

	pushIdenticalAnchor(t, b, tr)
	pushIdenticalAnchor(t, b, tr)
	pushIdenticalAnchor(t, b, tr)
	b.pushFormattingMarker()
	pushIdenticalAnchor(t, b, tr)

	// three identical entries before the marker, one after: nothing is
	// evicted because Noah's Ark only scans up to the nearest marker.
	assert.Len(t, b.afe, 5)
}

func TestClearFormattingElementsToMarkerPopsThroughMarker(t *testing.T) {
	tr := dom.NewTree()
	b := &Builder{ops: tr}

	pushIdenticalAnchor(t, b, tr)
	b.pushFormattingMarker()
	pushIdenticalAnchor(t, b, tr)
	pushIdenticalAnchor(t, b, tr)

	b.clearFormattingElementsToMarker()
	require.Len(t, b.afe, 1)
	assert.False(t, b.afe[0].marker)
}
