package tree

import (
	"github.com/wordring/htmlx/atom"
	"github.com/wordring/htmlx/dom"
	"github.com/wordring/htmlx/token"
)

// formattingEntry is one entry of the active formatting element list
// (spec.md §3). A marker entry has handle == dom.NoHandle and marker ==
// true. The list is ordered oldest-first: new entries are appended, so the
// newest entry is the last one and scans run from the end backwards; the
// front of the list holds the oldest entry.
type formattingEntry struct {
	handle dom.Handle
	tok    token.Token
	id     atom.TagID
	ns     string
	marker bool
}

// pushFormattingElement appends h/tok as the newest active formatting
// element, first applying the Noah's Ark clause: if three entries equal to
// the candidate already exist between the list's head and the nearest
// marker, the oldest of them is erased (spec.md §4.5).
func (b *Builder) pushFormattingElement(h dom.Handle, tok token.Token, ns string) {
	count := 0
	oldestIdx := -1
	for i := len(b.afe) - 1; i >= 0; i-- {
		e := b.afe[i]
		if e.marker {
			break
		}
		if e.ns == ns && e.id == atom.TagID(tok.TagID) && b.ops.Equals(e.handle, h) {
			count++
			oldestIdx = i
			if count >= 3 {
				break
			}
		}
	}
	if count >= 3 {
		b.afe = append(b.afe[:oldestIdx], b.afe[oldestIdx+1:]...)
	}
	b.afe = append(b.afe, formattingEntry{handle: h, tok: tok.Clone(), id: atom.TagID(tok.TagID), ns: ns})
}

// pushFormattingMarker pushes a scope marker (spec.md §4.5), used when
// entering table cells/captions/objects/templates/applets/marquees.
func (b *Builder) pushFormattingMarker() {
	b.afe = append(b.afe, formattingEntry{handle: dom.NoHandle, marker: true})
}

// clearFormattingElementsToMarker pops entries until and including the
// last marker (spec.md §4.5).
func (b *Builder) clearFormattingElementsToMarker() {
	for len(b.afe) > 0 {
		e := b.afe[len(b.afe)-1]
		b.afe = b.afe[:len(b.afe)-1]
		if e.marker {
			return
		}
	}
}

// findFormattingEntryIndex returns the index of h in the active formatting
// list (counted from the front, searched from the newest end), or -1.
func (b *Builder) findFormattingEntryIndex(h dom.Handle) int {
	for i := len(b.afe) - 1; i >= 0; i-- {
		if b.afe[i].handle == h {
			return i
		}
	}
	return -1
}

// removeFormattingEntryAt removes the entry at index i.
func (b *Builder) removeFormattingEntryAt(i int) {
	b.afe = append(b.afe[:i], b.afe[i+1:]...)
}

// reconstructFormattingElements rewinds to the newest non-marker entry not
// already on the open-elements stack, then advances forward, re-creating
// each skipped element from its stored token snapshot via
// insertHTMLElement (spec.md §4.5).
func (b *Builder) reconstructFormattingElements() {
	if len(b.afe) == 0 {
		return
	}
	last := len(b.afe) - 1
	lastEntry := b.afe[last]
	if lastEntry.marker || b.stackContainsHandle(lastEntry.handle) {
		return
	}

	i := last
	for i > 0 {
		i--
		e := b.afe[i]
		if e.marker || b.stackContainsHandle(e.handle) {
			i++
			break
		}
	}
	if i < 0 {
		i = 0
	}

	for ; i <= last; i++ {
		e := b.afe[i]
		h := b.insertHTMLElement(e.tok)
		b.afe[i] = formattingEntry{handle: h, tok: e.tok, id: e.id, ns: e.ns}
	}
}

// removeFormattingElement removes h from the active formatting list
// (wherever it is); it leaves the open-elements stack untouched.
func (b *Builder) removeFormattingElement(h dom.Handle) {
	if i := b.findFormattingEntryIndex(h); i >= 0 {
		b.removeFormattingEntryAt(i)
	}
}

// afeIndexOrLast returns the index of the newest active formatting entry,
// or -1 when the list is empty.
func (b *Builder) afeIndexOrLast() int { return len(b.afe) - 1 }
