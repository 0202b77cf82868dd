package tree

import (
	"github.com/wordring/htmlx/atom"
	"github.com/wordring/htmlx/dom"
	"github.com/wordring/htmlx/token"
)

// onInSelect is the "in select" insertion mode.
func (b *Builder) onInSelect(tok *token.Token) bool {
	switch tok.Kind {
	case token.KindCharacter:
		if tok.CodePoint == 0 {
			b.reportError(token.ErrUnexpectedNullCharacter)
			return false
		}
		b.insertCharacter(tok.CodePoint)
		return false
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
		case atom.TagOption:
			if b.current().id == atom.TagOption {
				b.popElement()
			}
			b.insertHTMLElement(*tok)
			return false
		case atom.TagOptgroup:
			if b.current().id == atom.TagOption {
				b.popElement()
			}
			if b.current().id == atom.TagOptgroup {
				b.popElement()
			}
			b.insertHTMLElement(*tok)
			return false
		case atom.TagSelect:
			b.reportError(token.ErrUnexpectedStartTag)
			if !b.hasElementInSelectScope(atom.TagSelect) {
				return false
			}
			b.popUntilTag(atom.TagSelect)
			b.resetInsertionModeAppropriately()
			return false
		case atom.TagInput, atom.TagKeygen, atom.TagTextarea:
			b.reportError(token.ErrUnexpectedStartTag)
			if !b.hasElementInSelectScope(atom.TagSelect) {
				return false
			}
			b.popUntilTag(atom.TagSelect)
			b.resetInsertionModeAppropriately()
			return true
		case atom.TagScript, atom.TagTemplate:
			return b.onInHead(tok)
		}
	case token.KindEndTag:
		switch atom.TagID(tok.TagID) {
		case atom.TagOptgroup:
			if b.current().id == atom.TagOption && len(b.open) > 1 && b.open[len(b.open)-2].id == atom.TagOptgroup {
				b.popElement()
			}
			if b.current().id == atom.TagOptgroup {
				b.popElement()
			} else {
				b.reportError(token.ErrUnexpectedEndTag)
			}
			return false
		case atom.TagOption:
			if b.current().id == atom.TagOption {
				b.popElement()
			} else {
				b.reportError(token.ErrUnexpectedEndTag)
			}
			return false
		case atom.TagSelect:
			if !b.hasElementInSelectScope(atom.TagSelect) {
				b.reportError(token.ErrUnexpectedEndTag)
				return false
			}
			b.popUntilTag(atom.TagSelect)
			b.resetInsertionModeAppropriately()
			return false
		case atom.TagTemplate:
			return b.onInHead(tok)
		}
	case token.KindEOF:
		return b.onInBody(tok)
	}
	b.reportError(token.ErrUnexpectedStartTag)
	return false
}

// onInSelectInTable is the "in select in table" insertion mode.
func (b *Builder) onInSelectInTable(tok *token.Token) bool {
	switch tok.Kind {
	case token.KindStartTag:
		switch atom.TagID(tok.TagID) {
		case atom.TagCaption, atom.TagTable, atom.TagTbody, atom.TagTfoot,
			atom.TagThead, atom.TagTr, atom.TagTd, atom.TagTh:
			b.reportError(token.ErrUnexpectedStartTag)
			b.popUntilTag(atom.TagSelect)
			b.resetInsertionModeAppropriately()
			return true
		}
	case token.KindEndTag:
		switch atom.TagID(tok.TagID) {
		case atom.TagCaption, atom.TagTable, atom.TagTbody, atom.TagTfoot,
			atom.TagThead, atom.TagTr, atom.TagTd, atom.TagTh:
			id := atom.TagID(tok.TagID)
			if !b.hasElementInTableScope(id) {
				b.reportError(token.ErrUnexpectedEndTag)
				return false
			}
			b.popUntilTag(atom.TagSelect)
			b.resetInsertionModeAppropriately()
			return true
		}
	}
	return b.onInSelect(tok)
}

// onInTemplate is the "in template" insertion mode.
func (b *Builder) onInTemplate(tok *token.Token) bool {
	switch tok.Kind {
	case token.KindCharacter, token.KindComment, token.KindDOCTYPE:
		return b.onInBody(tok)
	case token.KindStartTag:
		switch atom.TagID(tok.TagID) {
		case atom.TagBase, atom.TagBasefont, atom.TagBgsound, atom.TagLink,
			atom.TagMeta, atom.TagNoframes, atom.TagScript, atom.TagStyle,
			atom.TagTemplate, atom.TagTitle:
			return b.onInHead(tok)
		case atom.TagCaption, atom.TagColgroup, atom.TagTbody, atom.TagTfoot, atom.TagThead:
			b.popTemplateMode()
			b.templateModes = append(b.templateModes, ModeInTable)
			b.mode = ModeInTable
			return true
		case atom.TagCol:
			b.popTemplateMode()
			b.templateModes = append(b.templateModes, ModeInColumnGroup)
			b.mode = ModeInColumnGroup
			return true
		case atom.TagTr:
			b.popTemplateMode()
			b.templateModes = append(b.templateModes, ModeInTableBody)
			b.mode = ModeInTableBody
			return true
		case atom.TagTd, atom.TagTh:
			b.popTemplateMode()
			b.templateModes = append(b.templateModes, ModeInRow)
			b.mode = ModeInRow
			return true
		default:
			b.popTemplateMode()
			b.templateModes = append(b.templateModes, ModeInBody)
			b.mode = ModeInBody
			return true
		}
	case token.KindEndTag:
		if atom.TagID(tok.TagID) == atom.TagTemplate {
			return b.onInHead(tok)
		}
		b.reportError(token.ErrUnexpectedEndTag)
		return false
	case token.KindEOF:
		if !b.stackContains(atom.TagTemplate) {
			b.stopped = true
			return false
		}
		b.reportError(token.ErrEOFInTag)
		b.popUntilTag(atom.TagTemplate)
		b.clearFormattingElementsToMarker()
		b.popTemplateMode()
		b.resetInsertionModeAppropriately()
		return true
	}
	return false
}

func (b *Builder) popTemplateMode() {
	if len(b.templateModes) > 0 {
		b.templateModes = b.templateModes[:len(b.templateModes)-1]
	}
}
