package tree

import (
	"github.com/wordring/htmlx/atom"
	"github.com/wordring/htmlx/dom"
	"github.com/wordring/htmlx/token"
)

// appropriatePlaceForInsertingNode resolves the child position at which the
// next node should be inserted (spec.md §4.5). override, if non-nil,
// substitutes for the current node as the insertion target (used by the
// adoption agency and a few "insert el before the foster parent" calls).
func (b *Builder) appropriatePlaceForInsertingNode(override dom.Handle) dom.Position {
	target := b.currentHandle()
	if override != dom.NoHandle {
		target = override
	}

	if b.fosterParenting && b.isFosterParentingTarget(target) {
		return b.fosterInsertionLocation()
	}

	if b.ops.IsElement(target) && b.ops.TagID(target) == atom.TagTemplate && b.ops.NamespaceURI(target) == NamespaceHTML {
		return dom.Position{Parent: b.templateContentOf(target)}
	}
	return dom.Position{Parent: target}
}

func (b *Builder) isFosterParentingTarget(h dom.Handle) bool {
	if !b.ops.IsElement(h) || b.ops.NamespaceURI(h) != NamespaceHTML {
		return false
	}
	switch b.ops.TagID(h) {
	case atom.TagTable, atom.TagTbody, atom.TagTfoot, atom.TagThead, atom.TagTr:
		return true
	}
	return false
}

// fosterInsertionLocation implements the three-case foster-parenting
// decision (spec.md §4.5): template-above-table wins, no table inserts at
// the end of the root html element, and table-with-a-real-parent inserts
// immediately before the table (falling back to the element above the
// table on the stack when the table has no parent yet).
func (b *Builder) fosterInsertionLocation() dom.Position {
	tableIdx, tableHandle := b.lastOnStack(atom.TagTable)
	templateIdx, templateHandle := b.lastOnStack(atom.TagTemplate)

	if templateHandle != dom.NoHandle && (tableHandle == dom.NoHandle || templateIdx > tableIdx) {
		return dom.Position{Parent: b.templateContentOf(templateHandle)}
	}
	if tableHandle == dom.NoHandle {
		return dom.Position{Parent: b.open[0].handle}
	}
	if parent := b.ops.Parent(tableHandle); parent != dom.NoHandle {
		return dom.Position{Parent: parent, Before: tableHandle}
	}
	if tableIdx > 0 {
		return dom.Position{Parent: b.open[tableIdx-1].handle}
	}
	return dom.Position{Parent: b.open[0].handle}
}

func (b *Builder) lastOnStack(id atom.TagID) (int, dom.Handle) {
	for i := len(b.open) - 1; i >= 0; i-- {
		if b.open[i].id == id && b.open[i].ns == NamespaceHTML {
			return i, b.open[i].handle
		}
	}
	return -1, dom.NoHandle
}

func (b *Builder) templateContentOf(h dom.Handle) dom.Handle {
	if c, ok := b.templateContents[h]; ok {
		return c
	}
	c := b.ops.CreateDocumentFragment()
	b.templateContents[h] = c
	return c
}

// insertComment inserts a comment node at the appropriate place for
// inserting a node, or at an explicit override if given.
func (b *Builder) insertComment(tok token.Token, override dom.Handle) {
	h := b.ops.CreateComment(tok.Data)
	b.ops.Insert(b.appropriatePlaceForInsertingNode(override), h)
}

// insertCharacter inserts a single code point, coalescing into a preceding
// text node per dom.Tree.Insert's merge semantics (spec.md §4.5's implicit
// "insert the given character" step, and the tokenizer-to-tree adapter
// boundary of spec.md §6's CreateText/AppendText pair).
func (b *Builder) insertCharacter(cp rune) {
	pos := b.appropriatePlaceForInsertingNode(dom.NoHandle)
	h := b.ops.CreateText(cp)
	b.ops.Insert(pos, h)
}

// createElementForToken creates (but does not insert) an element for tok in
// namespace ns, resolving its attributes (HTML Standard, "create an
// element for a token").
func (b *Builder) createElementForToken(tok token.Token, ns string) dom.Handle {
	id := atom.TagID(tok.TagID)
	if id == atom.TagUnknown {
		id = atom.LookupTag([]byte(tok.TagName))
	}
	h := b.ops.CreateElement(id, tok.TagName, ns, "")
	for _, a := range tok.Attributes {
		b.ops.SetAttr(h, a.Namespace, a.Prefix, a.LocalName, a.Value)
	}
	if id == atom.TagTemplate && ns == NamespaceHTML {
		b.templateContentOf(h)
	}
	return h
}

// insertHTMLElement creates an element for tok in the HTML namespace,
// inserts it at the appropriate place, and pushes it onto the open
// elements stack (HTML Standard, "insert an HTML element").
func (b *Builder) insertHTMLElement(tok token.Token) dom.Handle {
	return b.insertForeignElement(tok, NamespaceHTML)
}

// insertForeignElement is insertHTMLElement generalized to any namespace
// (used by the foreign-content rules for SVG/MathML elements).
func (b *Builder) insertForeignElement(tok token.Token, ns string) dom.Handle {
	h := b.createElementForToken(tok, ns)
	pos := b.appropriatePlaceForInsertingNode(dom.NoHandle)
	b.ops.Insert(pos, h)
	tok.TagID = int32(b.ops.TagID(h))
	b.pushElement(h, tok, ns)
	return h
}

// insertAndPop inserts tok as an HTML element and immediately pops it (the
// shorthand spec.md §4.5's in-head handling uses for base/basefont/
// bgsound/link/meta and, with void semantics, other void elements).
func (b *Builder) insertAndPop(tok token.Token) dom.Handle {
	h := b.insertHTMLElement(tok)
	b.popElement()
	return h
}

// acknowledgeSelfClosing marks tok's self-closing flag acknowledged (the
// dispatcher's "Finish" step, spec.md §4.4's "self-closing acknowledgement").
func acknowledgeSelfClosing(tok *token.Token) { tok.SelfClosingAcknowledged = true }
