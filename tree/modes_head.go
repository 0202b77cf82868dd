package tree

import (
	"strings"

	"github.com/wordring/htmlx/atom"
	"github.com/wordring/htmlx/dom"
	"github.com/wordring/htmlx/token"
	"github.com/wordring/htmlx/tokenizer"
)

// onInHead is the "in head" insertion mode.
func (b *Builder) onInHead(tok *token.Token) bool {
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
		case atom.TagBase, atom.TagBasefont, atom.TagBgsound, atom.TagLink:
			b.insertAndPop(*tok)
			acknowledgeSelfClosing(tok)
			return false
		case atom.TagMeta:
			h := b.insertAndPop(*tok)
			acknowledgeSelfClosing(tok)
			if b.stream != nil {
				if charset, ok := tok.Attr("charset"); ok && charset != "" {
					b.stream.ChangeEncoding(charset)
				} else if httpEquiv, ok := tok.Attr("http-equiv"); ok && strings.EqualFold(httpEquiv, "content-type") {
					if content, ok := tok.Attr("content"); ok {
						if enc, ok := extractCharsetFromContent(content); ok {
							b.stream.ChangeEncoding(enc)
						}
					}
				}
			}
			_ = h
			return false
		case atom.TagTitle:
			b.genericTextElementParse(*tok, tokenizer.StateRCDATA)
			return false
		case atom.TagNoframes, atom.TagStyle:
			b.genericTextElementParse(*tok, tokenizer.StateRAWTEXT)
			return false
		case atom.TagNoscript:
			if b.scripting {
				b.genericTextElementParse(*tok, tokenizer.StateRAWTEXT)
				return false
			}
			b.insertHTMLElement(*tok)
			b.mode = ModeInHeadNoscript
			return false
		case atom.TagScript:
			h := b.insertForeignElement(*tok, NamespaceHTML)
			b.ops.SetNonBlocking(h, false)
			b.ops.SetAlreadyStarted(h, false)
			b.tok.SetLastStartTag(tok.TagName)
			b.tok.SetState(tokenizer.StateScriptData)
			b.origMode = b.mode
			b.mode = ModeText
			return false
		case atom.TagTemplate:
			b.insertHTMLElement(*tok)
			b.pushFormattingMarker()
			b.framesetOK = false
			b.mode = ModeInTemplate
			b.templateModes = append(b.templateModes, ModeInTemplate)
			return false
		case atom.TagHead:
			b.reportError(token.ErrUnexpectedStartTag)
			return false
		}
	case token.KindEndTag:
		switch atom.TagID(tok.TagID) {
		case atom.TagHead:
			b.popElement()
			b.mode = ModeAfterHead
			return false
		case atom.TagBody, atom.TagHTML, atom.TagBr:
		case atom.TagTemplate:
			if !b.stackContains(atom.TagTemplate) {
				b.reportError(token.ErrUnexpectedEndTag)
				return false
			}
			b.generateImpliedEndTagsThoroughly()
			if b.current().id != atom.TagTemplate {
				b.reportError(token.ErrUnexpectedEndTag)
			}
			b.popUntilTag(atom.TagTemplate)
			b.clearFormattingElementsToMarker()
			if len(b.templateModes) > 0 {
				b.templateModes = b.templateModes[:len(b.templateModes)-1]
			}
			b.resetInsertionModeAppropriately()
			return false
		default:
			b.reportError(token.ErrUnexpectedEndTag)
			return false
		}
	}
	b.popElement()
	b.mode = ModeAfterHead
	return true
}

// genericTextElementParse implements the standard's "generic raw text/RCDATA
// element parsing algorithm" shared by title/textarea (RCDATA) and style/
// xmp/iframe/noembed/noframes/script (RAWTEXT).
func (b *Builder) genericTextElementParse(tok token.Token, state tokenizer.State) {
	b.insertHTMLElement(tok)
	b.tok.SetLastStartTag(tok.TagName)
	b.tok.SetState(state)
	b.origMode = b.mode
	b.mode = ModeText
}

func extractCharsetFromContent(content string) (string, bool) {
	lower := strings.ToLower(content)
	idx := strings.Index(lower, "charset")
	if idx < 0 {
		return "", false
	}
	rest := content[idx+len("charset"):]
	rest = strings.TrimLeft(rest, " \t\n\f")
	if len(rest) == 0 || rest[0] != '=' {
		return "", false
	}
	rest = rest[1:]
	rest = strings.TrimLeft(rest, " \t\n\f")
	if rest == "" {
		return "", false
	}
	if rest[0] == '"' || rest[0] == '\'' {
		q := rest[0]
		end := strings.IndexByte(rest[1:], q)
		if end < 0 {
			return "", false
		}
		return rest[1 : 1+end], true
	}
	end := strings.IndexAny(rest, " \t\n\f;")
	if end < 0 {
		return rest, rest != ""
	}
	return rest[:end], end > 0
}

// onInHeadNoscript is the "in head noscript" insertion mode.
func (b *Builder) onInHeadNoscript(tok *token.Token) bool {
	switch tok.Kind {
	case token.KindDOCTYPE:
		b.reportError(token.ErrUnexpectedDOCTYPE)
		return false
	case token.KindStartTag:
		switch atom.TagID(tok.TagID) {
		case atom.TagHTML:
			return b.onInBody(tok)
		case atom.TagBasefont, atom.TagBgsound, atom.TagLink, atom.TagMeta,
			atom.TagNoframes, atom.TagStyle:
			return b.onInHead(tok)
		case atom.TagHead, atom.TagNoscript:
			b.reportError(token.ErrUnexpectedStartTag)
			return false
		}
	case token.KindEndTag:
		switch atom.TagID(tok.TagID) {
		case atom.TagNoscript:
			b.popElement()
			b.mode = ModeInHead
			return false
		case atom.TagBr:
		default:
			b.reportError(token.ErrUnexpectedEndTag)
			return false
		}
	case token.KindCharacter:
		if isWS(tok.CodePoint) {
			return b.onInHead(tok)
		}
	case token.KindComment:
		return b.onInHead(tok)
	}
	b.reportError(token.ErrUnexpectedEndTag)
	b.popElement()
	b.mode = ModeInHead
	return true
}

// onAfterHead is the "after head" insertion mode.
func (b *Builder) onAfterHead(tok *token.Token) bool {
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
		case atom.TagBody:
			b.insertHTMLElement(*tok)
			b.framesetOK = false
			b.mode = ModeInBody
			return false
		case atom.TagFrameset:
			b.insertHTMLElement(*tok)
			b.mode = ModeInFrameset
			return false
		case atom.TagBase, atom.TagBasefont, atom.TagBgsound, atom.TagLink,
			atom.TagMeta, atom.TagNoframes, atom.TagScript, atom.TagStyle,
			atom.TagTemplate, atom.TagTitle:
			b.reportError(token.ErrUnexpectedStartTag)
			if b.headElement != dom.NoHandle {
				b.open = append(b.open, stackEntry{handle: b.headElement, id: atom.TagHead, ns: NamespaceHTML})
				ok := b.onInHead(tok)
				for i := len(b.open) - 1; i >= 0; i-- {
					if b.open[i].handle == b.headElement {
						b.open = append(b.open[:i], b.open[i+1:]...)
						break
					}
				}
				return ok
			}
			return false
		case atom.TagHead:
			b.reportError(token.ErrUnexpectedStartTag)
			return false
		}
	case token.KindEndTag:
		switch atom.TagID(tok.TagID) {
		case atom.TagBody, atom.TagHTML, atom.TagBr:
		case atom.TagTemplate:
			return b.onInHead(tok)
		default:
			b.reportError(token.ErrUnexpectedEndTag)
			return false
		}
	}
	h := b.insertHTMLElement(token.Token{Kind: token.KindStartTag, TagName: "body", TagID: int32(atom.TagBody)})
	_ = h
	b.mode = ModeInBody
	return true
}

// onText is the "text" insertion mode (RCDATA/RAWTEXT/script content).
func (b *Builder) onText(tok *token.Token) bool {
	switch tok.Kind {
	case token.KindCharacter:
		if b.ignoreNextLF {
			b.ignoreNextLF = false
			if tok.CodePoint == '\n' {
				return false
			}
		}
		b.insertCharacter(tok.CodePoint)
		return false
	case token.KindEOF:
		b.reportError(token.ErrEOFInTag)
		if b.current().id == atom.TagScript {
			b.ops.SetAlreadyStarted(b.currentHandle(), true)
		}
		b.popElement()
		b.mode = b.origMode
		return true
	case token.KindEndTag:
		if atom.TagID(tok.TagID) == atom.TagScript {
			b.popElement()
			b.mode = b.origMode
			return false
		}
		b.popElement()
		b.mode = b.origMode
		return false
	}
	return false
}
