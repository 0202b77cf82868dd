package tree

import (
	"github.com/wordring/htmlx/atom"
	"github.com/wordring/htmlx/dom"
	"github.com/wordring/htmlx/token"
)

// onAfterBody is the "after body" insertion mode.
func (b *Builder) onAfterBody(tok *token.Token) bool {
	switch tok.Kind {
	case token.KindCharacter:
		if isWS(tok.CodePoint) {
			return b.onInBody(tok)
		}
	case token.KindComment:
		b.insertComment(*tok, b.open[0].handle)
		return false
	case token.KindDOCTYPE:
		b.reportError(token.ErrUnexpectedDOCTYPE)
		return false
	case token.KindStartTag:
		if atom.TagID(tok.TagID) == atom.TagHTML {
			return b.onInBody(tok)
		}
	case token.KindEndTag:
		if atom.TagID(tok.TagID) == atom.TagHTML {
			if b.fragment {
				b.reportError(token.ErrUnexpectedEndTag)
				return false
			}
			b.mode = ModeAfterAfterBody
			return false
		}
	case token.KindEOF:
		b.stopped = true
		return false
	}
	b.reportError(token.ErrUnexpectedEndTag)
	b.mode = ModeInBody
	return true
}

// onInFrameset is the "in frameset" insertion mode.
func (b *Builder) onInFrameset(tok *token.Token) bool {
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
		case atom.TagFrameset:
			b.insertHTMLElement(*tok)
			return false
		case atom.TagFrame:
			b.insertAndPop(*tok)
			acknowledgeSelfClosing(tok)
			return false
		case atom.TagNoframes:
			return b.onInHead(tok)
		}
	case token.KindEndTag:
		if atom.TagID(tok.TagID) == atom.TagFrameset {
			if b.current().id == atom.TagHTML {
				b.reportError(token.ErrUnexpectedEndTag)
				return false
			}
			b.popElement()
			if !b.fragment && b.current().id != atom.TagFrameset {
				b.mode = ModeAfterFrameset
			}
			return false
		}
	case token.KindEOF:
		b.stopped = true
		return false
	}
	b.reportError(token.ErrUnexpectedStartTag)
	return false
}

// onAfterFrameset is the "after frameset" insertion mode.
func (b *Builder) onAfterFrameset(tok *token.Token) bool {
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
		case atom.TagNoframes:
			return b.onInHead(tok)
		}
	case token.KindEndTag:
		if atom.TagID(tok.TagID) == atom.TagHTML {
			b.mode = ModeAfterAfterFrameset
			return false
		}
	case token.KindEOF:
		b.stopped = true
		return false
	}
	b.reportError(token.ErrUnexpectedStartTag)
	return false
}

// onAfterAfterBody is the "after after body" insertion mode.
func (b *Builder) onAfterAfterBody(tok *token.Token) bool {
	switch tok.Kind {
	case token.KindComment:
		b.insertComment(*tok, b.ops.Document())
		return false
	case token.KindDOCTYPE:
		return b.onInBody(tok)
	case token.KindCharacter:
		if isWS(tok.CodePoint) {
			return b.onInBody(tok)
		}
	case token.KindStartTag:
		if atom.TagID(tok.TagID) == atom.TagHTML {
			return b.onInBody(tok)
		}
	case token.KindEOF:
		b.stopped = true
		return false
	}
	b.reportError(token.ErrUnexpectedStartTag)
	b.mode = ModeInBody
	return true
}

// onAfterAfterFrameset is the "after after frameset" insertion mode.
func (b *Builder) onAfterAfterFrameset(tok *token.Token) bool {
	switch tok.Kind {
	case token.KindComment:
		b.insertComment(*tok, b.ops.Document())
		return false
	case token.KindDOCTYPE:
		return b.onInBody(tok)
	case token.KindCharacter:
		if isWS(tok.CodePoint) {
			return b.onInBody(tok)
		}
	case token.KindStartTag:
		switch atom.TagID(tok.TagID) {
		case atom.TagHTML:
			return b.onInBody(tok)
		case atom.TagNoframes:
			return b.onInHead(tok)
		}
	case token.KindEOF:
		b.stopped = true
		return false
	}
	b.reportError(token.ErrUnexpectedStartTag)
	return false
}
