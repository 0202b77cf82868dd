package tree

import (
	"github.com/wordring/htmlx/atom"
	"github.com/wordring/htmlx/dom"
	"github.com/wordring/htmlx/token"
	"github.com/wordring/htmlx/tokenizer"
)

var headingTags = map[atom.TagID]bool{
	atom.TagH1: true, atom.TagH2: true, atom.TagH3: true,
	atom.TagH4: true, atom.TagH5: true, atom.TagH6: true,
}

func (b *Builder) closePElementInButtonScope() {
	if b.hasElementInButtonScope(atom.TagP) {
		b.closePElement()
	}
}

func (b *Builder) closePElement() {
	b.generateImpliedEndTags(atom.TagP)
	if b.current().id != atom.TagP {
		b.reportError(token.ErrUnexpectedEndTag)
	}
	b.popUntilTag(atom.TagP)
}

// onInBody is the "in body" insertion mode, the HTML Standard's largest and
// most heavily used case (spec.md §4.5).
func (b *Builder) onInBody(tok *token.Token) bool {
	switch tok.Kind {
	case token.KindCharacter:
		if b.ignoreNextLF {
			b.ignoreNextLF = false
			if tok.CodePoint == '\n' {
				return false
			}
		}
		if tok.CodePoint == 0 {
			b.reportError(token.ErrUnexpectedNullCharacter)
			return false
		}
		b.reconstructFormattingElements()
		b.insertCharacter(tok.CodePoint)
		if !isWS(tok.CodePoint) {
			b.framesetOK = false
		}
		return false
	case token.KindComment:
		b.insertComment(*tok, dom.NoHandle)
		return false
	case token.KindDOCTYPE:
		b.reportError(token.ErrUnexpectedDOCTYPE)
		return false
	case token.KindEOF:
		if len(b.templateModes) > 0 {
			return b.onInTemplate(tok)
		}
		b.stopped = true
		return false
	case token.KindStartTag:
		return b.inBodyStartTag(tok)
	case token.KindEndTag:
		return b.inBodyEndTag(tok)
	}
	return false
}

func (b *Builder) inBodyStartTag(tok *token.Token) bool {
	id := atom.TagID(tok.TagID)
	switch id {
	case atom.TagHTML:
		b.reportError(token.ErrUnexpectedStartTag)
		if b.stackContains(atom.TagTemplate) {
			return false
		}
		root := b.open[0].handle
		for _, a := range tok.Attributes {
			if !b.ops.HasAttr(root, a.Name()) {
				b.ops.SetAttr(root, a.Namespace, a.Prefix, a.LocalName, a.Value)
			}
		}
		return false
	case atom.TagBase, atom.TagBasefont, atom.TagBgsound, atom.TagLink,
		atom.TagMeta, atom.TagNoframes, atom.TagScript, atom.TagStyle,
		atom.TagTemplate, atom.TagTitle:
		return b.onInHead(tok)
	case atom.TagBody:
		b.reportError(token.ErrUnexpectedStartTag)
		if len(b.open) < 2 || b.open[1].id != atom.TagBody || b.stackContains(atom.TagTemplate) {
			return false
		}
		b.framesetOK = false
		bodyHandle := b.open[1].handle
		for _, a := range tok.Attributes {
			if !b.ops.HasAttr(bodyHandle, a.Name()) {
				b.ops.SetAttr(bodyHandle, a.Namespace, a.Prefix, a.LocalName, a.Value)
			}
		}
		return false
	case atom.TagFrameset:
		b.reportError(token.ErrUnexpectedStartTag)
		if !b.framesetOK || len(b.open) < 2 || b.open[1].id != atom.TagBody {
			return false
		}
		if p := b.ops.Parent(b.open[1].handle); p != dom.NoHandle {
			b.ops.Erase(b.open[1].handle)
		}
		b.open = b.open[:1]
		b.insertHTMLElement(*tok)
		b.mode = ModeInFrameset
		return false
	case atom.TagAddress, atom.TagArticle, atom.TagAside, atom.TagBlockquote,
		atom.TagCenter, atom.TagDetails, atom.TagDialog, atom.TagDir,
		atom.TagDiv, atom.TagDl, atom.TagFieldset, atom.TagFigcaption,
		atom.TagFigure, atom.TagFooter, atom.TagHeader, atom.TagHgroup,
		atom.TagMain, atom.TagMenu, atom.TagNav, atom.TagOl, atom.TagP,
		atom.TagSection, atom.TagSummary, atom.TagUl:
		b.closePElementInButtonScope()
		b.insertHTMLElement(*tok)
		return false
	case atom.TagH1, atom.TagH2, atom.TagH3, atom.TagH4, atom.TagH5, atom.TagH6:
		b.closePElementInButtonScope()
		if headingTags[b.current().id] {
			b.reportError(token.ErrUnexpectedStartTag)
			b.popElement()
		}
		b.insertHTMLElement(*tok)
		return false
	case atom.TagPre, atom.TagListing:
		b.closePElementInButtonScope()
		b.insertHTMLElement(*tok)
		b.ignoreNextLF = true
		b.framesetOK = false
		return false
	case atom.TagForm:
		if b.formElement != dom.NoHandle && !b.stackContains(atom.TagTemplate) {
			b.reportError(token.ErrUnexpectedStartTag)
			return false
		}
		b.closePElementInButtonScope()
		h := b.insertHTMLElement(*tok)
		if !b.stackContains(atom.TagTemplate) {
			b.formElement = h
		}
		return false
	case atom.TagLi:
		b.framesetOK = false
		for i := len(b.open) - 1; i >= 0; i-- {
			e := b.open[i]
			if e.id == atom.TagLi {
				b.generateImpliedEndTags(atom.TagLi)
				if b.current().id != atom.TagLi {
					b.reportError(token.ErrUnexpectedEndTag)
				}
				b.popUntilTag(atom.TagLi)
				break
			}
			if atom.IsSpecial(e.id) && e.id != atom.TagAddress && e.id != atom.TagDiv && e.id != atom.TagP {
				break
			}
		}
		b.closePElementInButtonScope()
		b.insertHTMLElement(*tok)
		return false
	case atom.TagDd, atom.TagDt:
		b.framesetOK = false
		for i := len(b.open) - 1; i >= 0; i-- {
			e := b.open[i]
			if e.id == atom.TagDd || e.id == atom.TagDt {
				b.generateImpliedEndTags(e.id)
				if b.current().id != e.id {
					b.reportError(token.ErrUnexpectedEndTag)
				}
				b.popUntilTag(e.id)
				break
			}
			if atom.IsSpecial(e.id) && e.id != atom.TagAddress && e.id != atom.TagDiv && e.id != atom.TagP {
				break
			}
		}
		b.closePElementInButtonScope()
		b.insertHTMLElement(*tok)
		return false
	case atom.TagPlaintext:
		b.closePElementInButtonScope()
		b.insertHTMLElement(*tok)
		b.tok.SetState(tokenizer.StatePLAINTEXT)
		return false
	case atom.TagButton:
		if b.hasElementInScope(atom.TagButton) {
			b.reportError(token.ErrUnexpectedStartTag)
			b.generateImpliedEndTags(atom.TagUnknown)
			b.popUntilTag(atom.TagButton)
		}
		b.reconstructFormattingElements()
		b.insertHTMLElement(*tok)
		b.framesetOK = false
		return false
	case atom.TagA:
		if fe := b.findActiveFormattingElement(atom.TagA); fe != nil {
			b.reportError(token.ErrUnexpectedStartTag)
			b.adoptionAgency(atom.TagA)
			b.removeFormattingElement(fe.handle)
			b.removeOpenElement(fe.handle)
		}
		b.reconstructFormattingElements()
		h := b.insertHTMLElement(*tok)
		b.pushFormattingElement(h, *tok, NamespaceHTML)
		return false
	case atom.TagB, atom.TagBig, atom.TagCode, atom.TagEm, atom.TagFont,
		atom.TagI, atom.TagS, atom.TagSmall, atom.TagStrike, atom.TagStrong,
		atom.TagTt, atom.TagU:
		b.reconstructFormattingElements()
		h := b.insertHTMLElement(*tok)
		b.pushFormattingElement(h, *tok, NamespaceHTML)
		return false
	case atom.TagNobr:
		b.reconstructFormattingElements()
		if b.hasElementInScope(atom.TagNobr) {
			b.reportError(token.ErrUnexpectedStartTag)
			b.adoptionAgency(atom.TagNobr)
			b.reconstructFormattingElements()
		}
		h := b.insertHTMLElement(*tok)
		b.pushFormattingElement(h, *tok, NamespaceHTML)
		return false
	case atom.TagApplet, atom.TagMarquee, atom.TagObject:
		b.reconstructFormattingElements()
		b.insertHTMLElement(*tok)
		b.pushFormattingMarker()
		b.framesetOK = false
		return false
	case atom.TagTable:
		if b.quirks != Quirks {
			b.closePElementInButtonScope()
		}
		b.insertHTMLElement(*tok)
		b.framesetOK = false
		b.mode = ModeInTable
		return false
	case atom.TagArea, atom.TagBr, atom.TagEmbed, atom.TagImg, atom.TagKeygen, atom.TagWbr:
		b.reconstructFormattingElements()
		b.insertAndPop(*tok)
		acknowledgeSelfClosing(tok)
		b.framesetOK = false
		return false
	case atom.TagInput:
		b.reconstructFormattingElements()
		b.insertAndPop(*tok)
		acknowledgeSelfClosing(tok)
		if typ, ok := tok.Attr("type"); !ok || !asciiLowerEqString(typ, "hidden") {
			b.framesetOK = false
		}
		return false
	case atom.TagParam, atom.TagSource, atom.TagTrack:
		b.insertAndPop(*tok)
		acknowledgeSelfClosing(tok)
		return false
	case atom.TagHr:
		b.closePElementInButtonScope()
		b.insertAndPop(*tok)
		acknowledgeSelfClosing(tok)
		b.framesetOK = false
		return false
	case atom.TagImage:
		b.reportError(token.ErrUnexpectedStartTag)
		tok.TagName = "img"
		tok.TagID = int32(atom.TagImg)
		return b.inBodyStartTag(tok)
	case atom.TagTextarea:
		b.insertHTMLElement(*tok)
		b.ignoreNextLF = true
		b.tok.SetLastStartTag(tok.TagName)
		b.tok.SetState(tokenizer.StateRCDATA)
		b.origMode = b.mode
		b.framesetOK = false
		b.mode = ModeText
		return false
	case atom.TagXmp:
		b.closePElementInButtonScope()
		b.reconstructFormattingElements()
		b.framesetOK = false
		b.genericTextElementParse(*tok, tokenizer.StateRAWTEXT)
		return false
	case atom.TagIframe:
		b.framesetOK = false
		b.genericTextElementParse(*tok, tokenizer.StateRAWTEXT)
		return false
	case atom.TagNoembed:
		b.genericTextElementParse(*tok, tokenizer.StateRAWTEXT)
		return false
	case atom.TagNoscript:
		if b.scripting {
			b.genericTextElementParse(*tok, tokenizer.StateRAWTEXT)
			return false
		}
	case atom.TagSelect:
		b.reconstructFormattingElements()
		b.insertHTMLElement(*tok)
		b.framesetOK = false
		switch b.mode {
		case ModeInTable, ModeInCaption, ModeInTableBody, ModeInRow, ModeInCell:
			b.mode = ModeInSelectInTable
		default:
			b.mode = ModeInSelect
		}
		return false
	case atom.TagOptgroup, atom.TagOption:
		if b.current().id == atom.TagOption {
			b.popElement()
		}
		b.reconstructFormattingElements()
		b.insertHTMLElement(*tok)
		return false
	case atom.TagRb, atom.TagRtc:
		if b.hasElementInScope(atom.TagRuby) {
			b.generateImpliedEndTags(atom.TagUnknown)
			if b.current().id != atom.TagRuby {
				b.reportError(token.ErrUnexpectedStartTag)
			}
		}
		b.insertHTMLElement(*tok)
		return false
	case atom.TagRp, atom.TagRt:
		if b.hasElementInScope(atom.TagRuby) {
			b.generateImpliedEndTags(atom.TagRtc)
			if b.current().id != atom.TagRuby && b.current().id != atom.TagRtc {
				b.reportError(token.ErrUnexpectedStartTag)
			}
		}
		b.insertHTMLElement(*tok)
		return false
	case atom.TagMath:
		b.reconstructFormattingElements()
		b.adjustMathMLAttributes(tok)
		b.adjustForeignAttributes(tok)
		b.insertForeignElement(*tok, NamespaceMathML)
		if tok.SelfClosing {
			b.popElement()
			acknowledgeSelfClosing(tok)
		}
		return false
	case atom.TagSvg:
		b.reconstructFormattingElements()
		b.adjustSVGAttributes(tok)
		b.adjustForeignAttributes(tok)
		b.insertForeignElement(*tok, NamespaceSVG)
		if tok.SelfClosing {
			b.popElement()
			acknowledgeSelfClosing(tok)
		}
		return false
	case atom.TagCaption, atom.TagCol, atom.TagColgroup, atom.TagFrame,
		atom.TagHead, atom.TagTbody, atom.TagTd, atom.TagTfoot, atom.TagTh,
		atom.TagThead, atom.TagTr:
		b.reportError(token.ErrUnexpectedStartTag)
		return false
	}
	b.reconstructFormattingElements()
	b.insertHTMLElement(*tok)
	return false
}

func (b *Builder) inBodyEndTag(tok *token.Token) bool {
	id := atom.TagID(tok.TagID)
	switch id {
	case atom.TagTemplate:
		return b.onInHead(tok)
	case atom.TagBody:
		if !b.hasElementInScope(atom.TagBody) {
			b.reportError(token.ErrUnexpectedEndTag)
			return false
		}
		b.checkAllClosedProperly()
		b.mode = ModeAfterBody
		return false
	case atom.TagHTML:
		if !b.hasElementInScope(atom.TagBody) {
			b.reportError(token.ErrUnexpectedEndTag)
			return false
		}
		b.checkAllClosedProperly()
		b.mode = ModeAfterBody
		return true
	case atom.TagAddress, atom.TagArticle, atom.TagAside, atom.TagBlockquote,
		atom.TagButton, atom.TagCenter, atom.TagDetails, atom.TagDialog,
		atom.TagDir, atom.TagDiv, atom.TagDl, atom.TagFieldset,
		atom.TagFigcaption, atom.TagFigure, atom.TagFooter, atom.TagHeader,
		atom.TagHgroup, atom.TagListing, atom.TagMain, atom.TagMenu,
		atom.TagNav, atom.TagOl, atom.TagPre, atom.TagSection,
		atom.TagSummary, atom.TagUl:
		if !b.hasElementInScope(id) {
			b.reportError(token.ErrUnexpectedEndTag)
			return false
		}
		b.generateImpliedEndTags(atom.TagUnknown)
		if b.current().id != id {
			b.reportError(token.ErrUnexpectedEndTag)
		}
		b.popUntilTag(id)
		return false
	case atom.TagForm:
		if b.stackContains(atom.TagTemplate) {
			if !b.hasElementInScope(atom.TagForm) {
				b.reportError(token.ErrUnexpectedEndTag)
				return false
			}
			b.generateImpliedEndTags(atom.TagUnknown)
			if b.current().id != atom.TagForm {
				b.reportError(token.ErrUnexpectedEndTag)
			}
			b.popUntilTag(atom.TagForm)
			return false
		}
		formHandle := b.formElement
		b.formElement = dom.NoHandle
		if formHandle == dom.NoHandle || !b.stackContainsHandle(formHandle) {
			b.reportError(token.ErrUnexpectedEndTag)
			return false
		}
		b.generateImpliedEndTags(atom.TagUnknown)
		if b.currentHandle() != formHandle {
			b.reportError(token.ErrUnexpectedEndTag)
		}
		b.removeOpenElement(formHandle)
		return false
	case atom.TagP:
		if !b.hasElementInButtonScope(atom.TagP) {
			b.reportError(token.ErrUnexpectedEndTag)
			b.insertHTMLElement(token.Token{Kind: token.KindStartTag, TagName: "p", TagID: int32(atom.TagP)})
		}
		b.closePElement()
		return false
	case atom.TagLi:
		if !b.hasElementInListItemScope(atom.TagLi) {
			b.reportError(token.ErrUnexpectedEndTag)
			return false
		}
		b.generateImpliedEndTags(atom.TagLi)
		if b.current().id != atom.TagLi {
			b.reportError(token.ErrUnexpectedEndTag)
		}
		b.popUntilTag(atom.TagLi)
		return false
	case atom.TagDd, atom.TagDt:
		if !b.hasElementInScope(id) {
			b.reportError(token.ErrUnexpectedEndTag)
			return false
		}
		b.generateImpliedEndTags(id)
		if b.current().id != id {
			b.reportError(token.ErrUnexpectedEndTag)
		}
		b.popUntilTag(id)
		return false
	case atom.TagH1, atom.TagH2, atom.TagH3, atom.TagH4, atom.TagH5, atom.TagH6:
		if !b.hasElementInScopeSet(atom.TagH1, atom.TagH2, atom.TagH3, atom.TagH4, atom.TagH5, atom.TagH6) {
			b.reportError(token.ErrUnexpectedEndTag)
			return false
		}
		b.generateImpliedEndTags(atom.TagUnknown)
		if b.current().id != id {
			b.reportError(token.ErrUnexpectedEndTag)
		}
		b.popUntilTagSet(atom.TagH1, atom.TagH2, atom.TagH3, atom.TagH4, atom.TagH5, atom.TagH6)
		return false
	case atom.TagA, atom.TagB, atom.TagBig, atom.TagCode, atom.TagEm,
		atom.TagFont, atom.TagI, atom.TagNobr, atom.TagS, atom.TagSmall,
		atom.TagStrike, atom.TagStrong, atom.TagTt, atom.TagU:
		b.adoptionAgency(id)
		return false
	case atom.TagApplet, atom.TagMarquee, atom.TagObject:
		if !b.hasElementInScope(id) {
			b.reportError(token.ErrUnexpectedEndTag)
			return false
		}
		b.generateImpliedEndTags(atom.TagUnknown)
		if b.current().id != id {
			b.reportError(token.ErrUnexpectedEndTag)
		}
		b.popUntilTag(id)
		b.clearFormattingElementsToMarker()
		return false
	case atom.TagBr:
		b.reportError(token.ErrUnexpectedEndTag)
		b.reconstructFormattingElements()
		b.insertAndPop(token.Token{Kind: token.KindStartTag, TagName: "br", TagID: int32(atom.TagBr)})
		b.framesetOK = false
		return false
	}
	b.anyOtherEndTag(id)
	return false
}

// checkAllClosedProperly reports a parse error for any element still open
// other than the ones the standard allows to remain (HTML Standard's
// "</body>"/"</html>" closing check); tree construction does not actually
// pop the stack here, matching the standard's "don't set the frameset-ok
// flag" note and carrying on in after-body mode.
func (b *Builder) checkAllClosedProperly() {
	for _, e := range b.open {
		switch e.id {
		case atom.TagDd, atom.TagDt, atom.TagLi, atom.TagOptgroup, atom.TagOption,
			atom.TagP, atom.TagRb, atom.TagRp, atom.TagRt, atom.TagRtc, atom.TagTbody,
			atom.TagTd, atom.TagTfoot, atom.TagTh, atom.TagThead, atom.TagTr,
			atom.TagBody, atom.TagHTML, atom.TagCaption, atom.TagColgroup,
			atom.TagHead:
		default:
			b.reportError(token.ErrUnexpectedEndTag)
			return
		}
	}
}

func (b *Builder) removeOpenElement(h dom.Handle) {
	for i, e := range b.open {
		if e.handle == h {
			b.open = append(b.open[:i], b.open[i+1:]...)
			return
		}
	}
}

func (b *Builder) findActiveFormattingElement(id atom.TagID) *formattingEntry {
	for i := len(b.afe) - 1; i >= 0; i-- {
		if b.afe[i].marker {
			return nil
		}
		if b.afe[i].id == id && b.afe[i].ns == NamespaceHTML {
			e := b.afe[i]
			return &e
		}
	}
	return nil
}
