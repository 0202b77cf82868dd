package tree

import (
	"github.com/wordring/htmlx/atom"
	"github.com/wordring/htmlx/dom"
	"github.com/wordring/htmlx/token"
)

// adoptionAgency is the HTML Standard's "adoption agency algorithm",
// invoked by in-body's end-tag handling for any formatting element
// (spec.md §4.5 requires this in full; it is not optional scaffolding).
func (b *Builder) adoptionAgency(subject atom.TagID) {
	if b.current().id == subject && b.current().ns == NamespaceHTML && b.findFormattingEntryIndex(b.currentHandle()) < 0 {
		b.popElement()
		return
	}

	for outer := 0; outer < 8; outer++ {
		feIdx := -1
		for i := len(b.afe) - 1; i >= 0; i-- {
			if b.afe[i].marker {
				break
			}
			if b.afe[i].id == subject && b.afe[i].ns == NamespaceHTML {
				feIdx = i
				break
			}
		}
		if feIdx < 0 {
			b.anyOtherEndTag(subject)
			return
		}
		fe := b.afe[feIdx]

		stackIdx := b.indexOfHandle(fe.handle)
		if stackIdx < 0 {
			b.reportError(token.ErrUnexpectedEndTag)
			b.removeFormattingEntryAt(feIdx)
			return
		}
		if !b.inSpecificScope(scopeDefault, nodeHandleTarget(b, stackIdx)) {
			b.reportError(token.ErrUnexpectedEndTag)
			return
		}
		if fe.handle != b.currentHandle() {
			b.reportError(token.ErrUnexpectedEndTag)
		}

		furthestIdx := -1
		for i := stackIdx + 1; i < len(b.open); i++ {
			if isSpecialCategory(b.open[i]) {
				furthestIdx = i
				break
			}
		}
		if furthestIdx < 0 {
			b.popUntilNode(fe.handle)
			b.removeFormattingEntryAt(feIdx)
			return
		}

		commonAncestorHandle := b.open[stackIdx-1].handle
		bookmark := feIdx

		node := furthestIdx
		lastNode := furthestIdx
		lastNodeHandle := b.open[furthestIdx].handle

		for inner := 0; ; inner++ {
			node--
			if node <= stackIdx {
				break
			}
			nodeHandle := b.open[node].handle
			nodeAfeIdx := b.findFormattingEntryIndex(nodeHandle)
			if nodeAfeIdx < 0 {
				b.open = append(b.open[:node], b.open[node+1:]...)
				if furthestIdx > node {
					furthestIdx--
				}
				if lastNode > node {
					lastNode--
				}
				continue
			}
			if inner > 3 {
				b.removeFormattingEntryAt(nodeAfeIdx)
				if nodeAfeIdx <= bookmark {
					bookmark--
				}
				b.open = append(b.open[:node], b.open[node+1:]...)
				if furthestIdx > node {
					furthestIdx--
				}
				if lastNode > node {
					lastNode--
				}
				continue
			}
			if node == stackIdx {
				break
			}

			newHandle := b.createElementForToken(b.afe[nodeAfeIdx].tok, NamespaceHTML)
			newEntry := formattingEntry{handle: newHandle, tok: b.afe[nodeAfeIdx].tok, id: b.afe[nodeAfeIdx].id, ns: NamespaceHTML}
			b.afe[nodeAfeIdx] = newEntry
			b.open[node] = stackEntry{handle: newHandle, tok: b.afe[nodeAfeIdx].tok, id: b.afe[nodeAfeIdx].id, ns: NamespaceHTML}

			if lastNode == furthestIdx {
				bookmark = nodeAfeIdx + 1
			}
			if parent := b.ops.Parent(lastNodeHandle); parent != dom.NoHandle {
				b.ops.Erase(lastNodeHandle)
			}
			b.ops.Insert(dom.Position{Parent: newHandle}, lastNodeHandle)
			lastNode = node
			lastNodeHandle = newHandle
		}

		if parent := b.ops.Parent(lastNodeHandle); parent != dom.NoHandle {
			b.ops.Erase(lastNodeHandle)
		}
		insertPos := b.appropriatePlaceForInsertingNode(commonAncestorHandle)
		b.ops.Insert(insertPos, lastNodeHandle)

		newFeHandle := b.createElementForToken(fe.tok, NamespaceHTML)
		for c := b.ops.FirstChild(b.open[furthestIdx].handle); c != dom.NoHandle; {
			next := b.ops.NextSibling(c)
			b.ops.Erase(c)
			b.ops.Insert(dom.Position{Parent: newFeHandle}, c)
			c = next
		}
		b.ops.Insert(dom.Position{Parent: b.open[furthestIdx].handle}, newFeHandle)

		b.removeFormattingEntryAt(feIdx)
		if bookmark > len(b.afe) {
			bookmark = len(b.afe)
		}
		newEntry := formattingEntry{handle: newFeHandle, tok: fe.tok, id: fe.id, ns: NamespaceHTML}
		b.afe = append(b.afe[:bookmark], append([]formattingEntry{newEntry}, b.afe[bookmark:]...)...)

		// Remove formattingElement's old stack slot, then insert the new
		// element immediately below furthestBlock's (possibly shifted)
		// position, i.e. at the next higher index, since the new element is
		// furthestBlock's child (the standard's step 17).
		b.open = append(b.open[:stackIdx], b.open[stackIdx+1:]...)
		furthestIdx--
		newStackEntry := stackEntry{handle: newFeHandle, tok: fe.tok, id: fe.id, ns: NamespaceHTML}
		pos := furthestIdx + 1
		b.open = append(b.open[:pos], append([]stackEntry{newStackEntry}, b.open[pos:]...)...)
	}
}

// anyOtherEndTag implements in-body's "any other end tag" fallback, used
// both directly by onInBody and by the adoption agency when no matching
// formatting element remains.
func (b *Builder) anyOtherEndTag(id atom.TagID) {
	for i := len(b.open) - 1; i >= 0; i-- {
		e := b.open[i]
		if e.id == id && e.ns == NamespaceHTML {
			b.generateImpliedEndTags(id)
			if i != len(b.open)-1 {
				b.reportError(token.ErrUnexpectedEndTag)
			}
			b.open = b.open[:i]
			return
		}
		if isSpecialCategory(e) {
			b.reportError(token.ErrUnexpectedEndTag)
			return
		}
	}
}
