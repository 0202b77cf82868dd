package tree

import (
	"github.com/wordring/htmlx/atom"
	"github.com/wordring/htmlx/dom"
	"github.com/wordring/htmlx/token"
)

func isWS(r rune) bool {
	switch r {
	case '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

// onInitial is the "initial" insertion mode.
func (b *Builder) onInitial(tok *token.Token) bool {
	switch tok.Kind {
	case token.KindCharacter:
		if isWS(tok.CodePoint) {
			return false
		}
	case token.KindComment:
		b.insertComment(*tok, b.ops.Document())
		return false
	case token.KindDOCTYPE:
		h := b.ops.CreateDocumentType(tok.Name, tok.PublicID, tok.SystemID)
		b.ops.Insert(dom.Position{Parent: b.ops.Document()}, h)
		if tok.Name != "html" || tok.HasPublicID || (tok.HasSystemID && tok.SystemID != "about:legacy-compat") {
			b.reportError(token.ErrUnexpectedDOCTYPE)
		}
		b.quirks = quirksModeForDoctype(*tok)
		b.mode = ModeBeforeHTML
		return false
	}
	b.reportError(token.ErrMissingDOCTYPE)
	b.quirks = Quirks
	b.mode = ModeBeforeHTML
	return true
}

// onBeforeHTML is the "before html" insertion mode.
func (b *Builder) onBeforeHTML(tok *token.Token) bool {
	switch tok.Kind {
	case token.KindDOCTYPE:
		b.reportError(token.ErrUnexpectedDOCTYPE)
		return false
	case token.KindComment:
		b.insertComment(*tok, b.ops.Document())
		return false
	case token.KindCharacter:
		if isWS(tok.CodePoint) {
			return false
		}
	case token.KindStartTag:
		if atom.TagID(tok.TagID) == atom.TagHTML {
			h := b.createElementForToken(*tok, NamespaceHTML)
			b.ops.Insert(dom.Position{Parent: b.ops.Document()}, h)
			b.pushElement(h, *tok, NamespaceHTML)
			b.mode = ModeBeforeHead
			return false
		}
	case token.KindEndTag:
		switch atom.TagID(tok.TagID) {
		case atom.TagHead, atom.TagBody, atom.TagHTML, atom.TagBr:
		default:
			b.reportError(token.ErrUnexpectedEndTag)
			return false
		}
	}
	h := b.ops.CreateElement(atom.TagHTML, "html", NamespaceHTML, "")
	b.ops.Insert(dom.Position{Parent: b.ops.Document()}, h)
	b.pushElement(h, token.Token{Kind: token.KindStartTag, TagName: "html", TagID: int32(atom.TagHTML)}, NamespaceHTML)
	b.mode = ModeBeforeHead
	return true
}

// onBeforeHead is the "before head" insertion mode.
func (b *Builder) onBeforeHead(tok *token.Token) bool {
	switch tok.Kind {
	case token.KindCharacter:
		if isWS(tok.CodePoint) {
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
		case atom.TagHead:
			h := b.insertHTMLElement(*tok)
			b.headElement = h
			b.mode = ModeInHead
			return false
		}
	case token.KindEndTag:
		switch atom.TagID(tok.TagID) {
		case atom.TagHead, atom.TagBody, atom.TagHTML, atom.TagBr:
		default:
			b.reportError(token.ErrUnexpectedEndTag)
			return false
		}
	}
	h := b.insertHTMLElement(token.Token{Kind: token.KindStartTag, TagName: "head", TagID: int32(atom.TagHead)})
	b.headElement = h
	b.mode = ModeInHead
	return true
}
