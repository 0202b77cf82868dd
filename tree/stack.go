package tree

import (
	"github.com/wordring/htmlx/atom"
	"github.com/wordring/htmlx/dom"
	"github.com/wordring/htmlx/token"
)

// pushElement pushes a new open-elements stack entry (spec.md §3, "Open
// elements stack").
func (b *Builder) pushElement(h dom.Handle, tok token.Token, ns string) {
	b.open = append(b.open, stackEntry{handle: h, tok: tok.Clone(), id: atom.TagID(tok.TagID), ns: ns})
}

// popElement pops and returns the top of the open-elements stack, or a
// zero stackEntry if it is already empty.
func (b *Builder) popElement() stackEntry {
	if len(b.open) == 0 {
		return stackEntry{}
	}
	top := b.open[len(b.open)-1]
	b.open = b.open[:len(b.open)-1]
	return top
}

// current returns the current node: the bottommost entry (top of stack).
func (b *Builder) current() stackEntry {
	if len(b.open) == 0 {
		return stackEntry{}
	}
	return b.open[len(b.open)-1]
}

func (b *Builder) currentHandle() dom.Handle {
	if len(b.open) == 0 {
		return dom.NoHandle
	}
	return b.open[len(b.open)-1].handle
}

// adjustedCurrentNode is the current node, except in fragment-parsing mode
// with exactly one entry on the stack, where it is the context element
// (HTML Standard, "adjusted current node").
func (b *Builder) adjustedCurrentNode() stackEntry {
	if b.fragment && len(b.open) == 1 && b.fragmentContext != nil {
		return stackEntry{handle: b.contextElement, id: b.fragmentContext.TagID, ns: b.fragmentContext.Namespace}
	}
	return b.current()
}

// stackContains reports whether id is anywhere on the open-elements stack
// (in the HTML namespace).
func (b *Builder) stackContains(id atom.TagID) bool {
	for _, e := range b.open {
		if e.id == id && e.ns == NamespaceHTML {
			return true
		}
	}
	return false
}

// stackContainsHandle reports whether h is anywhere on the stack.
func (b *Builder) stackContainsHandle(h dom.Handle) bool {
	for _, e := range b.open {
		if e.handle == h {
			return true
		}
	}
	return false
}

// indexOfHandle returns h's index on the stack, or -1.
func (b *Builder) indexOfHandle(h dom.Handle) int {
	for i, e := range b.open {
		if e.handle == h {
			return i
		}
	}
	return -1
}

// popUntilTag pops elements (inclusive) until one with id is popped.
func (b *Builder) popUntilTag(id atom.TagID) {
	for len(b.open) > 0 {
		e := b.popElement()
		if e.id == id {
			return
		}
	}
}

// popUntilTagSet pops elements (inclusive) until one whose id is in ids is
// popped.
func (b *Builder) popUntilTagSet(ids ...atom.TagID) {
	for len(b.open) > 0 {
		e := b.popElement()
		for _, id := range ids {
			if e.id == id {
				return
			}
		}
	}
}

// popUntilNode pops elements (inclusive) until h itself is popped.
func (b *Builder) popUntilNode(h dom.Handle) {
	for len(b.open) > 0 {
		e := b.popElement()
		if e.handle == h {
			return
		}
	}
}

// generateImpliedEndTags pops elements in the implied-end-tag set
// (spec.md §4.5), stopping early at an element equal to without (and never
// popping it). without == atom.TagUnknown means "no exception."
func (b *Builder) generateImpliedEndTags(without atom.TagID) {
	for len(b.open) > 0 {
		top := b.current()
		if top.id == without {
			return
		}
		if !atom.IsImpliedEnd(top.id, false) {
			return
		}
		b.popElement()
	}
}

// generateImpliedEndTagsThoroughly is generateImpliedEndTags with the
// table-structure elements added to the set, and no exception.
func (b *Builder) generateImpliedEndTagsThoroughly() {
	for len(b.open) > 0 {
		top := b.current()
		if !atom.IsImpliedEnd(top.id, true) {
			return
		}
		b.popElement()
	}
}
