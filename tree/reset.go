package tree

import (
	"github.com/wordring/htmlx/atom"
	"github.com/wordring/htmlx/dom"
)

// resetInsertionModeAppropriately walks the open-elements stack top-down,
// substituting the context element for the bottommost entry in fragment
// mode, and selects the insertion mode per spec.md §4.5's per-tag table.
func (b *Builder) resetInsertionModeAppropriately() {
	for i := len(b.open) - 1; i >= 0; i-- {
		node := b.open[i]
		last := i == 0
		if last && b.fragment {
			node = stackEntry{handle: b.contextElement, id: b.fragmentContext.TagID, ns: b.fragmentContext.Namespace}
		}

		if node.ns != NamespaceHTML {
			if last {
				b.mode = ModeInBody
				return
			}
			continue
		}

		switch node.id {
		case atom.TagSelect:
			if !last {
				for j := i - 1; j >= 0; j-- {
					anc := b.open[j]
					if anc.ns != NamespaceHTML {
						continue
					}
					if anc.id == atom.TagTemplate {
						break
					}
					if anc.id == atom.TagTable {
						b.mode = ModeInSelectInTable
						return
					}
				}
			}
			b.mode = ModeInSelect
			return
		case atom.TagTd, atom.TagTh:
			if !last {
				b.mode = ModeInCell
				return
			}
		case atom.TagTr:
			b.mode = ModeInRow
			return
		case atom.TagTbody, atom.TagThead, atom.TagTfoot:
			b.mode = ModeInTableBody
			return
		case atom.TagCaption:
			b.mode = ModeInCaption
			return
		case atom.TagColgroup:
			b.mode = ModeInColumnGroup
			return
		case atom.TagTable:
			b.mode = ModeInTable
			return
		case atom.TagTemplate:
			if len(b.templateModes) > 0 {
				b.mode = b.templateModes[len(b.templateModes)-1]
				return
			}
			b.mode = ModeInBody
			return
		case atom.TagHead:
			if !last {
				b.mode = ModeInHead
				return
			}
		case atom.TagBody:
			b.mode = ModeInBody
			return
		case atom.TagFrameset:
			b.mode = ModeInFrameset
			return
		case atom.TagHTML:
			if b.headElement == dom.NoHandle {
				b.mode = ModeBeforeHead
			} else {
				b.mode = ModeAfterHead
			}
			return
		}

		if last {
			b.mode = ModeInBody
			return
		}
	}
	b.mode = ModeInBody
}
