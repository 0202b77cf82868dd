package tree

import (
	"github.com/wordring/htmlx/atom"
	"github.com/wordring/htmlx/dom"
	"github.com/wordring/htmlx/token"
)

// onInTable is the "in table" insertion mode.
func (b *Builder) onInTable(tok *token.Token) bool {
	switch tok.Kind {
	case token.KindCharacter:
		switch b.current().id {
		case atom.TagTable, atom.TagTbody, atom.TagTfoot, atom.TagThead, atom.TagTr:
			b.pendingTableChars = nil
			b.pendingTableNonWS = false
			b.pendingTableOrigMode = b.mode
			b.mode = ModeInTableText
			return true
		}
	case token.KindComment:
		b.insertComment(*tok, dom.NoHandle)
		return false
	case token.KindDOCTYPE:
		b.reportError(token.ErrUnexpectedDOCTYPE)
		return false
	case token.KindStartTag:
		switch atom.TagID(tok.TagID) {
		case atom.TagCaption:
			b.clearStackToTableContext()
			b.pushFormattingMarker()
			b.insertHTMLElement(*tok)
			b.mode = ModeInCaption
			return false
		case atom.TagColgroup:
			b.clearStackToTableContext()
			b.insertHTMLElement(*tok)
			b.mode = ModeInColumnGroup
			return false
		case atom.TagCol:
			b.clearStackToTableContext()
			b.insertHTMLElement(token.Token{Kind: token.KindStartTag, TagName: "colgroup", TagID: int32(atom.TagColgroup)})
			b.mode = ModeInColumnGroup
			return true
		case atom.TagTbody, atom.TagTfoot, atom.TagThead:
			b.clearStackToTableContext()
			b.insertHTMLElement(*tok)
			b.mode = ModeInTableBody
			return false
		case atom.TagTd, atom.TagTh, atom.TagTr:
			b.clearStackToTableContext()
			b.insertHTMLElement(token.Token{Kind: token.KindStartTag, TagName: "tbody", TagID: int32(atom.TagTbody)})
			b.mode = ModeInTableBody
			return true
		case atom.TagTable:
			b.reportError(token.ErrUnexpectedStartTag)
			if !b.hasElementInTableScope(atom.TagTable) {
				return false
			}
			b.popUntilTag(atom.TagTable)
			b.resetInsertionModeAppropriately()
			return true
		case atom.TagStyle, atom.TagScript, atom.TagTemplate:
			return b.onInHead(tok)
		case atom.TagInput:
			if typ, ok := tok.Attr("type"); !ok || !asciiLowerEqString(typ, "hidden") {
				break
			}
			b.reportError(token.ErrUnexpectedStartTag)
			b.insertAndPop(*tok)
			acknowledgeSelfClosing(tok)
			return false
		case atom.TagForm:
			b.reportError(token.ErrUnexpectedStartTag)
			if b.stackContains(atom.TagTemplate) || b.formElement != dom.NoHandle {
				return false
			}
			h := b.insertAndPop(*tok)
			b.formElement = h
			return false
		}
	case token.KindEndTag:
		switch atom.TagID(tok.TagID) {
		case atom.TagTable:
			if !b.hasElementInTableScope(atom.TagTable) {
				b.reportError(token.ErrUnexpectedEndTag)
				return false
			}
			b.popUntilTag(atom.TagTable)
			b.resetInsertionModeAppropriately()
			return false
		case atom.TagBody, atom.TagCaption, atom.TagCol, atom.TagColgroup,
			atom.TagHTML, atom.TagTbody, atom.TagTd, atom.TagTfoot, atom.TagTh,
			atom.TagThead, atom.TagTr:
			b.reportError(token.ErrUnexpectedEndTag)
			return false
		case atom.TagTemplate:
			return b.onInHead(tok)
		}
	case token.KindEOF:
		return b.onInBody(tok)
	}
	b.reportError(token.ErrUnexpectedStartTag)
	b.fosterParenting = true
	reprocess := b.onInBody(tok)
	b.fosterParenting = false
	return reprocess
}

func (b *Builder) clearStackToTableContext() {
	for len(b.open) > 0 {
		id := b.current().id
		if id == atom.TagTable || id == atom.TagTemplate || id == atom.TagHTML {
			return
		}
		b.popElement()
	}
}

func (b *Builder) clearStackToTableBodyContext() {
	for len(b.open) > 0 {
		switch b.current().id {
		case atom.TagTbody, atom.TagTfoot, atom.TagThead, atom.TagTemplate, atom.TagHTML:
			return
		}
		b.popElement()
	}
}

func (b *Builder) clearStackToTableRowContext() {
	for len(b.open) > 0 {
		switch b.current().id {
		case atom.TagTr, atom.TagTemplate, atom.TagHTML:
			return
		}
		b.popElement()
	}
}

func asciiLowerEqString(a, lit string) bool { return asciiLowerEq(a, lit) }

// onInTableText is the "in table text" insertion mode: buffers character
// tokens until a non-character token arrives, then flushes them either as a
// plain text insertion or (if any was non-whitespace) via foster-parenting
// in-body reprocessing (spec.md §4.5).
func (b *Builder) onInTableText(tok *token.Token) bool {
	if tok.Kind == token.KindCharacter {
		if tok.CodePoint == 0 {
			b.reportError(token.ErrUnexpectedNullCharacter)
			return false
		}
		if !isWS(tok.CodePoint) {
			b.pendingTableNonWS = true
		}
		b.pendingTableChars = append(b.pendingTableChars, tok.CodePoint)
		return false
	}

	if b.pendingTableNonWS {
		b.reportError(token.ErrUnexpectedStartTag)
		b.fosterParenting = true
		for _, cp := range b.pendingTableChars {
			c := token.Token{Kind: token.KindCharacter, CodePoint: cp}
			b.onInBody(&c)
		}
		b.fosterParenting = false
	} else {
		for _, cp := range b.pendingTableChars {
			b.insertCharacter(cp)
		}
	}
	b.pendingTableChars = nil
	b.mode = b.pendingTableOrigMode
	return true
}

// onInCaption is the "in caption" insertion mode.
func (b *Builder) onInCaption(tok *token.Token) bool {
	switch tok.Kind {
	case token.KindStartTag:
		switch atom.TagID(tok.TagID) {
		case atom.TagCaption, atom.TagCol, atom.TagColgroup, atom.TagTbody,
			atom.TagTd, atom.TagTfoot, atom.TagTh, atom.TagThead, atom.TagTr:
			return b.endCaption(tok, true)
		}
	case token.KindEndTag:
		switch atom.TagID(tok.TagID) {
		case atom.TagCaption:
			return b.endCaption(tok, false)
		case atom.TagTable:
			return b.endCaption(tok, true)
		case atom.TagBody, atom.TagCol, atom.TagColgroup, atom.TagHTML,
			atom.TagTbody, atom.TagTd, atom.TagTfoot, atom.TagTh, atom.TagThead, atom.TagTr:
			b.reportError(token.ErrUnexpectedEndTag)
			return false
		}
	}
	return b.onInBody(tok)
}

func (b *Builder) endCaption(tok *token.Token, reprocess bool) bool {
	if !b.hasElementInTableScope(atom.TagCaption) {
		b.reportError(token.ErrUnexpectedEndTag)
		return false
	}
	b.generateImpliedEndTags(atom.TagUnknown)
	if b.current().id != atom.TagCaption {
		b.reportError(token.ErrUnexpectedEndTag)
	}
	b.popUntilTag(atom.TagCaption)
	b.clearFormattingElementsToMarker()
	b.mode = ModeInTable
	return reprocess
}

// onInColumnGroup is the "in column group" insertion mode.
func (b *Builder) onInColumnGroup(tok *token.Token) bool {
	switch tok.Kind {
	case token.KindCharacter:
		if isWS(tok.CodePoint) {
			b.insertCharacter(tok.CodePoint)
			return false
		}
	case token.KindComment:
		b.insertComment(*tok, dom.NoHandle)
		return false
	case token.KindDOCTYPE:
		b.reportError(token.ErrUnexpectedDOCTYPE)
		return false
	case token.KindStartTag:
		switch atom.TagID(tok.TagID) {
		case atom.TagHTML:
			return b.onInBody(tok)
		case atom.TagCol:
			b.insertAndPop(*tok)
			acknowledgeSelfClosing(tok)
			return false
		case atom.TagTemplate:
			return b.onInHead(tok)
		}
	case token.KindEndTag:
		switch atom.TagID(tok.TagID) {
		case atom.TagColgroup:
			if b.current().id != atom.TagColgroup {
				b.reportError(token.ErrUnexpectedEndTag)
				return false
			}
			b.popElement()
			b.mode = ModeInTable
			return false
		case atom.TagCol:
			b.reportError(token.ErrUnexpectedEndTag)
			return false
		case atom.TagTemplate:
			return b.onInHead(tok)
		}
	case token.KindEOF:
		return b.onInBody(tok)
	}
	if b.current().id != atom.TagColgroup {
		b.reportError(token.ErrUnexpectedEndTag)
		return false
	}
	b.popElement()
	b.mode = ModeInTable
	return true
}

// onInTableBody is the "in table body" insertion mode.
func (b *Builder) onInTableBody(tok *token.Token) bool {
	switch tok.Kind {
	case token.KindStartTag:
		switch atom.TagID(tok.TagID) {
		case atom.TagTr:
			b.clearStackToTableBodyContext()
			b.insertHTMLElement(*tok)
			b.mode = ModeInRow
			return false
		case atom.TagTh, atom.TagTd:
			b.reportError(token.ErrUnexpectedStartTag)
			b.clearStackToTableBodyContext()
			b.insertHTMLElement(token.Token{Kind: token.KindStartTag, TagName: "tr", TagID: int32(atom.TagTr)})
			b.mode = ModeInRow
			return true
		case atom.TagCaption, atom.TagCol, atom.TagColgroup, atom.TagTbody,
			atom.TagTfoot, atom.TagThead:
			if !b.hasElementInTableScopeSet(atom.TagTbody, atom.TagThead, atom.TagTfoot) {
				b.reportError(token.ErrUnexpectedStartTag)
				return false
			}
			b.clearStackToTableBodyContext()
			b.popElement()
			b.mode = ModeInTable
			return true
		}
	case token.KindEndTag:
		switch atom.TagID(tok.TagID) {
		case atom.TagTbody, atom.TagTfoot, atom.TagThead:
			if !b.hasElementInTableScope(atom.TagID(tok.TagID)) {
				b.reportError(token.ErrUnexpectedEndTag)
				return false
			}
			b.clearStackToTableBodyContext()
			b.popElement()
			b.mode = ModeInTable
			return false
		case atom.TagTable:
			if !b.hasElementInTableScopeSet(atom.TagTbody, atom.TagThead, atom.TagTfoot) {
				b.reportError(token.ErrUnexpectedEndTag)
				return false
			}
			b.clearStackToTableBodyContext()
			b.popElement()
			b.mode = ModeInTable
			return true
		case atom.TagBody, atom.TagCaption, atom.TagCol, atom.TagColgroup,
			atom.TagHTML, atom.TagTd, atom.TagTh, atom.TagTr:
			b.reportError(token.ErrUnexpectedEndTag)
			return false
		}
	}
	return b.onInTable(tok)
}

// onInRow is the "in row" insertion mode.
func (b *Builder) onInRow(tok *token.Token) bool {
	switch tok.Kind {
	case token.KindStartTag:
		switch atom.TagID(tok.TagID) {
		case atom.TagTh, atom.TagTd:
			b.clearStackToTableRowContext()
			b.insertHTMLElement(*tok)
			b.mode = ModeInCell
			b.pushFormattingMarker()
			return false
		case atom.TagCaption, atom.TagCol, atom.TagColgroup, atom.TagTbody,
			atom.TagTfoot, atom.TagThead, atom.TagTr:
			if !b.hasElementInTableScope(atom.TagTr) {
				b.reportError(token.ErrUnexpectedStartTag)
				return false
			}
			b.clearStackToTableRowContext()
			b.popElement()
			b.mode = ModeInTableBody
			return true
		}
	case token.KindEndTag:
		switch atom.TagID(tok.TagID) {
		case atom.TagTr:
			if !b.hasElementInTableScope(atom.TagTr) {
				b.reportError(token.ErrUnexpectedEndTag)
				return false
			}
			b.clearStackToTableRowContext()
			b.popElement()
			b.mode = ModeInTableBody
			return false
		case atom.TagTable:
			if !b.hasElementInTableScope(atom.TagTr) {
				b.reportError(token.ErrUnexpectedEndTag)
				return false
			}
			b.clearStackToTableRowContext()
			b.popElement()
			b.mode = ModeInTableBody
			return true
		case atom.TagTbody, atom.TagTfoot, atom.TagThead:
			if !b.hasElementInTableScope(atom.TagID(tok.TagID)) || !b.hasElementInTableScope(atom.TagTr) {
				b.reportError(token.ErrUnexpectedEndTag)
				return false
			}
			b.clearStackToTableRowContext()
			b.popElement()
			b.mode = ModeInTableBody
			return true
		case atom.TagBody, atom.TagCaption, atom.TagCol, atom.TagColgroup,
			atom.TagHTML, atom.TagTd, atom.TagTh:
			b.reportError(token.ErrUnexpectedEndTag)
			return false
		}
	}
	return b.onInTable(tok)
}

// onInCell is the "in cell" insertion mode.
func (b *Builder) onInCell(tok *token.Token) bool {
	switch tok.Kind {
	case token.KindStartTag:
		switch atom.TagID(tok.TagID) {
		case atom.TagCaption, atom.TagCol, atom.TagColgroup, atom.TagTbody,
			atom.TagTd, atom.TagTfoot, atom.TagTh, atom.TagThead, atom.TagTr:
			if !b.hasElementInTableScopeSet(atom.TagTd, atom.TagTh) {
				b.reportError(token.ErrUnexpectedStartTag)
				return false
			}
			b.closeCell()
			return true
		}
	case token.KindEndTag:
		switch atom.TagID(tok.TagID) {
		case atom.TagTd, atom.TagTh:
			id := atom.TagID(tok.TagID)
			if !b.hasElementInTableScope(id) {
				b.reportError(token.ErrUnexpectedEndTag)
				return false
			}
			b.generateImpliedEndTags(atom.TagUnknown)
			if b.current().id != id {
				b.reportError(token.ErrUnexpectedEndTag)
			}
			b.popUntilTag(id)
			b.clearFormattingElementsToMarker()
			b.mode = ModeInRow
			return false
		case atom.TagBody, atom.TagCaption, atom.TagCol, atom.TagColgroup, atom.TagHTML:
			b.reportError(token.ErrUnexpectedEndTag)
			return false
		case atom.TagTable, atom.TagTbody, atom.TagTfoot, atom.TagThead, atom.TagTr:
			if !b.hasElementInTableScope(atom.TagID(tok.TagID)) {
				b.reportError(token.ErrUnexpectedEndTag)
				return false
			}
			b.closeCell()
			return true
		}
	}
	return b.onInBody(tok)
}

func (b *Builder) closeCell() {
	b.generateImpliedEndTags(atom.TagUnknown)
	b.popUntilTagSet(atom.TagTd, atom.TagTh)
	b.clearFormattingElementsToMarker()
	b.mode = ModeInRow
}
