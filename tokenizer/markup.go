package tokenizer

import "github.com/wordring/htmlx/token"

func (t *Tokenizer) emitComment() {
	t.emit(token.Token{Kind: token.KindComment, Data: string(t.comment)})
	t.comment = nil
}

func (t *Tokenizer) bogusCommentState(r rune, ok bool) stateFn {
	if !ok {
		t.emitComment()
		return nil
	}
	switch r {
	case '>':
		t.emitComment()
		return (*Tokenizer).dataState
	case 0:
		t.comment = append(t.comment, 0xFFFD)
		return (*Tokenizer).bogusCommentState
	default:
		t.comment = append(t.comment, r)
		return (*Tokenizer).bogusCommentState
	}
}

const cdataPrefix = "[CDATA["

func (t *Tokenizer) markupDeclarationOpenState(r rune, ok bool) stateFn {
	if t.matchLiteral(r, ok, "--", false) {
		t.comment = nil
		return (*Tokenizer).commentStartState
	}
	if t.matchLiteral(r, ok, "DOCTYPE", true) {
		return (*Tokenizer).doctypeState
	}
	if t.matchLiteral(r, ok, cdataPrefix, false) {
		// The tokenizer has no view of the adjusted current node
		// (ParserOps only reports errors), so it enters the CDATA section
		// state here in HTML content as well as in foreign content;
		// cdata-in-html-content is never reported.
		return (*Tokenizer).cdataSectionState
	}
	t.reportError(token.ErrIncorrectlyOpenedComment)
	t.comment = nil
	return (*Tokenizer).bogusCommentState(t, r, ok)
}

// matchLiteral compares first (already read) plus as many further code
// points as needed against literal. On a full match it consumes exactly
// len(literal) code points and returns true; on any mismatch it pushes
// back only the code points it read itself (never first, which stays with
// the caller) and returns false, so the caller can try first again.
func (t *Tokenizer) matchLiteral(first rune, firstOK bool, literal string, foldCase bool) bool {
	runes := []rune(literal)
	if len(runes) == 0 {
		return true
	}
	if !firstOK || !runeEq(first, runes[0], foldCase) {
		return false
	}
	var consumed []rune
	for _, want := range runes[1:] {
		r, ok := t.in.Next()
		if !ok || !runeEq(r, want, foldCase) {
			if ok {
				t.in.Push(r)
			}
			t.in.PushString(consumed)
			return false
		}
		consumed = append(consumed, r)
	}
	return true
}

func runeEq(a, b rune, foldCase bool) bool {
	if foldCase {
		return toLower(a) == toLower(b)
	}
	return a == b
}

// ---- Comment states ----

func (t *Tokenizer) commentStartState(r rune, ok bool) stateFn {
	switch {
	case ok && r == '-':
		return (*Tokenizer).commentStartDashState
	case ok && r == '>':
		t.reportError(token.ErrAbruptClosingOfEmptyComment)
		t.emitComment()
		return (*Tokenizer).dataState
	default:
		return (*Tokenizer).commentState(t, r, ok)
	}
}

func (t *Tokenizer) commentStartDashState(r rune, ok bool) stateFn {
	switch {
	case ok && r == '-':
		return (*Tokenizer).commentEndState
	case ok && r == '>':
		t.reportError(token.ErrAbruptClosingOfEmptyComment)
		t.emitComment()
		return (*Tokenizer).dataState
	case !ok:
		t.reportError(token.ErrEOFInComment)
		t.emitComment()
		return nil
	default:
		t.comment = append(t.comment, '-')
		return (*Tokenizer).commentState(t, r, ok)
	}
}

func (t *Tokenizer) commentState(r rune, ok bool) stateFn {
	if !ok {
		t.reportError(token.ErrEOFInComment)
		t.emitComment()
		return nil
	}
	switch r {
	case '<':
		t.comment = append(t.comment, r)
		return (*Tokenizer).commentLessThanSignState
	case '-':
		return (*Tokenizer).commentEndDashState
	case 0:
		t.reportError(token.ErrUnexpectedNullCharacter)
		t.comment = append(t.comment, 0xFFFD)
		return (*Tokenizer).commentState
	default:
		t.comment = append(t.comment, r)
		return (*Tokenizer).commentState
	}
}

func (t *Tokenizer) commentLessThanSignState(r rune, ok bool) stateFn {
	switch {
	case ok && r == '!':
		t.comment = append(t.comment, r)
		return (*Tokenizer).commentLessThanSignBangState
	case ok && r == '<':
		t.comment = append(t.comment, r)
		return (*Tokenizer).commentLessThanSignState
	default:
		return (*Tokenizer).commentState(t, r, ok)
	}
}

func (t *Tokenizer) commentLessThanSignBangState(r rune, ok bool) stateFn {
	if ok && r == '-' {
		return (*Tokenizer).commentLessThanSignBangDashState
	}
	return (*Tokenizer).commentState(t, r, ok)
}

func (t *Tokenizer) commentLessThanSignBangDashState(r rune, ok bool) stateFn {
	if ok && r == '-' {
		return (*Tokenizer).commentLessThanSignBangDashDashState
	}
	return (*Tokenizer).commentEndDashState(t, r, ok)
}

func (t *Tokenizer) commentLessThanSignBangDashDashState(r rune, ok bool) stateFn {
	if !ok || r == '>' {
		return (*Tokenizer).commentEndState(t, r, ok)
	}
	t.reportError(token.ErrNestedComment)
	return (*Tokenizer).commentEndState(t, r, ok)
}

func (t *Tokenizer) commentEndDashState(r rune, ok bool) stateFn {
	if !ok {
		t.reportError(token.ErrEOFInComment)
		t.emitComment()
		return nil
	}
	if r == '-' {
		return (*Tokenizer).commentEndState
	}
	t.comment = append(t.comment, '-')
	return (*Tokenizer).commentState(t, r, ok)
}

func (t *Tokenizer) commentEndState(r rune, ok bool) stateFn {
	if !ok {
		t.reportError(token.ErrEOFInComment)
		t.emitComment()
		return nil
	}
	switch r {
	case '>':
		t.emitComment()
		return (*Tokenizer).dataState
	case '!':
		return (*Tokenizer).commentEndBangState
	case '-':
		t.comment = append(t.comment, '-')
		return (*Tokenizer).commentEndState
	default:
		t.comment = append(t.comment, '-', '-')
		return (*Tokenizer).commentState(t, r, ok)
	}
}

func (t *Tokenizer) commentEndBangState(r rune, ok bool) stateFn {
	if !ok {
		t.reportError(token.ErrEOFInComment)
		t.emitComment()
		return nil
	}
	switch r {
	case '-':
		t.comment = append(t.comment, '-', '-', '!')
		return (*Tokenizer).commentEndDashState
	case '>':
		t.reportError(token.ErrIncorrectlyClosedComment)
		t.emitComment()
		return (*Tokenizer).dataState
	default:
		t.comment = append(t.comment, '-', '-', '!')
		return (*Tokenizer).commentState(t, r, ok)
	}
}

// ---- DOCTYPE states ----

func (t *Tokenizer) emitDoctype() {
	t.emit(t.doctype)
	t.doctype = token.Token{}
}

func (t *Tokenizer) doctypeState(r rune, ok bool) stateFn {
	switch {
	case ok && isWhitespace(r):
		return (*Tokenizer).beforeDOCTYPENameState
	case ok && r == '>':
		return (*Tokenizer).beforeDOCTYPENameState(t, r, ok)
	case !ok:
		t.reportError(token.ErrEOFInDOCTYPE)
		t.doctype = token.Token{Kind: token.KindDOCTYPE, ForceQuirks: true}
		t.emitDoctype()
		return nil
	default:
		t.reportError(token.ErrMissingWhitespaceBeforeDOCTYPEName)
		return (*Tokenizer).beforeDOCTYPENameState(t, r, ok)
	}
}

func (t *Tokenizer) beforeDOCTYPENameState(r rune, ok bool) stateFn {
	t.doctype = token.Token{Kind: token.KindDOCTYPE}
	switch {
	case ok && isWhitespace(r):
		return (*Tokenizer).beforeDOCTYPENameState
	case ok && isUpper(r):
		t.doctype.Name = string(toLower(r))
		return (*Tokenizer).doctypeNameState
	case ok && r == 0:
		t.reportError(token.ErrUnexpectedNullCharacter)
		t.doctype.Name = string(rune(0xFFFD))
		return (*Tokenizer).doctypeNameState
	case ok && r == '>':
		t.reportError(token.ErrMissingDOCTYPEName)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		return (*Tokenizer).dataState
	case !ok:
		t.reportError(token.ErrEOFInDOCTYPE)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		return nil
	default:
		t.doctype.Name = string(r)
		return (*Tokenizer).doctypeNameState
	}
}

func (t *Tokenizer) doctypeNameState(r rune, ok bool) stateFn {
	switch {
	case ok && isWhitespace(r):
		return (*Tokenizer).afterDOCTYPENameState
	case ok && r == '>':
		t.emitDoctype()
		return (*Tokenizer).dataState
	case ok && isUpper(r):
		t.doctype.Name += string(toLower(r))
		return (*Tokenizer).doctypeNameState
	case ok && r == 0:
		t.reportError(token.ErrUnexpectedNullCharacter)
		t.doctype.Name += string(rune(0xFFFD))
		return (*Tokenizer).doctypeNameState
	case !ok:
		t.reportError(token.ErrEOFInDOCTYPE)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		return nil
	default:
		t.doctype.Name += string(r)
		return (*Tokenizer).doctypeNameState
	}
}

func (t *Tokenizer) afterDOCTYPENameState(r rune, ok bool) stateFn {
	switch {
	case ok && isWhitespace(r):
		return (*Tokenizer).afterDOCTYPENameState
	case ok && r == '>':
		t.emitDoctype()
		return (*Tokenizer).dataState
	case !ok:
		t.reportError(token.ErrEOFInDOCTYPE)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		return nil
	case t.matchLiteral(r, ok, "PUBLIC", true):
		return (*Tokenizer).afterDOCTYPEPublicKeywordState
	case t.matchLiteral(r, ok, "SYSTEM", true):
		return (*Tokenizer).afterDOCTYPESystemKeywordState
	default:
		t.reportError(token.ErrInvalidFirstCharacterOfTagName)
		t.doctype.ForceQuirks = true
		return (*Tokenizer).bogusDOCTYPEState(t, r, ok)
	}
}

func (t *Tokenizer) afterDOCTYPEPublicKeywordState(r rune, ok bool) stateFn {
	switch {
	case ok && isWhitespace(r):
		return (*Tokenizer).beforeDOCTYPEPublicIdentifierState
	case ok && r == '"':
		t.reportError(token.ErrMissingWhitespaceAfterDOCTYPEPublicKeyword)
		t.doctype.HasPublicID = true
		t.doctype.PublicID = ""
		return (*Tokenizer).doctypePublicIdentifierDoubleQuotedState
	case ok && r == '\'':
		t.reportError(token.ErrMissingWhitespaceAfterDOCTYPEPublicKeyword)
		t.doctype.HasPublicID = true
		t.doctype.PublicID = ""
		return (*Tokenizer).doctypePublicIdentifierSingleQuotedState
	case ok && r == '>':
		t.reportError(token.ErrMissingDOCTYPEPublicIdentifier)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		return (*Tokenizer).dataState
	case !ok:
		t.reportError(token.ErrEOFInDOCTYPE)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		return nil
	default:
		t.reportError(token.ErrMissingQuoteBeforeDOCTYPEPublicIdentifier)
		t.doctype.ForceQuirks = true
		t.in.Push(r)
		return (*Tokenizer).bogusDOCTYPEState
	}
}

func (t *Tokenizer) beforeDOCTYPEPublicIdentifierState(r rune, ok bool) stateFn {
	switch {
	case ok && isWhitespace(r):
		return (*Tokenizer).beforeDOCTYPEPublicIdentifierState
	case ok && r == '"':
		t.doctype.HasPublicID = true
		t.doctype.PublicID = ""
		return (*Tokenizer).doctypePublicIdentifierDoubleQuotedState
	case ok && r == '\'':
		t.doctype.HasPublicID = true
		t.doctype.PublicID = ""
		return (*Tokenizer).doctypePublicIdentifierSingleQuotedState
	case ok && r == '>':
		t.reportError(token.ErrMissingDOCTYPEPublicIdentifier)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		return (*Tokenizer).dataState
	case !ok:
		t.reportError(token.ErrEOFInDOCTYPE)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		return nil
	default:
		t.reportError(token.ErrMissingQuoteBeforeDOCTYPEPublicIdentifier)
		t.doctype.ForceQuirks = true
		t.in.Push(r)
		return (*Tokenizer).bogusDOCTYPEState
	}
}

func (t *Tokenizer) doctypePublicIdentifierDoubleQuotedState(r rune, ok bool) stateFn {
	return t.doctypeIdentifierQuoted(r, ok, '"', true, (*Tokenizer).doctypePublicIdentifierDoubleQuotedState, (*Tokenizer).afterDOCTYPEPublicIdentifierState)
}
func (t *Tokenizer) doctypePublicIdentifierSingleQuotedState(r rune, ok bool) stateFn {
	return t.doctypeIdentifierQuoted(r, ok, '\'', true, (*Tokenizer).doctypePublicIdentifierSingleQuotedState, (*Tokenizer).afterDOCTYPEPublicIdentifierState)
}
func (t *Tokenizer) doctypeSystemIdentifierDoubleQuotedState(r rune, ok bool) stateFn {
	return t.doctypeIdentifierQuoted(r, ok, '"', false, (*Tokenizer).doctypeSystemIdentifierDoubleQuotedState, (*Tokenizer).afterDOCTYPESystemIdentifierState)
}
func (t *Tokenizer) doctypeSystemIdentifierSingleQuotedState(r rune, ok bool) stateFn {
	return t.doctypeIdentifierQuoted(r, ok, '\'', false, (*Tokenizer).doctypeSystemIdentifierSingleQuotedState, (*Tokenizer).afterDOCTYPESystemIdentifierState)
}

func (t *Tokenizer) doctypeIdentifierQuoted(r rune, ok bool, quote rune, public bool, self, after stateFn) stateFn {
	if !ok {
		t.reportError(token.ErrEOFInDOCTYPE)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		return nil
	}
	switch r {
	case quote:
		return after
	case 0:
		t.reportError(token.ErrUnexpectedNullCharacter)
		t.appendDoctypeID(public, rune(0xFFFD))
		return self
	case '>':
		if public {
			t.reportError(token.ErrAbruptDOCTYPEPublicIdentifier)
		} else {
			t.reportError(token.ErrAbruptDOCTYPESystemIdentifier)
		}
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		return (*Tokenizer).dataState
	default:
		t.appendDoctypeID(public, r)
		return self
	}
}

func (t *Tokenizer) appendDoctypeID(public bool, r rune) {
	if public {
		t.doctype.PublicID += string(r)
	} else {
		t.doctype.SystemID += string(r)
	}
}

func (t *Tokenizer) afterDOCTYPEPublicIdentifierState(r rune, ok bool) stateFn {
	switch {
	case ok && isWhitespace(r):
		return (*Tokenizer).betweenDOCTYPEPublicAndSystemIdentifiersState
	case ok && r == '>':
		t.emitDoctype()
		return (*Tokenizer).dataState
	case ok && r == '"':
		t.reportError(token.ErrMissingWhitespaceBetweenDOCTYPEPublicAndSystemIdentifiers)
		t.doctype.HasSystemID = true
		t.doctype.SystemID = ""
		return (*Tokenizer).doctypeSystemIdentifierDoubleQuotedState
	case ok && r == '\'':
		t.reportError(token.ErrMissingWhitespaceBetweenDOCTYPEPublicAndSystemIdentifiers)
		t.doctype.HasSystemID = true
		t.doctype.SystemID = ""
		return (*Tokenizer).doctypeSystemIdentifierSingleQuotedState
	case !ok:
		t.reportError(token.ErrEOFInDOCTYPE)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		return nil
	default:
		t.reportError(token.ErrMissingQuoteBeforeDOCTYPESystemIdentifier)
		t.doctype.ForceQuirks = true
		t.in.Push(r)
		return (*Tokenizer).bogusDOCTYPEState
	}
}

func (t *Tokenizer) betweenDOCTYPEPublicAndSystemIdentifiersState(r rune, ok bool) stateFn {
	switch {
	case ok && isWhitespace(r):
		return (*Tokenizer).betweenDOCTYPEPublicAndSystemIdentifiersState
	case ok && r == '>':
		t.emitDoctype()
		return (*Tokenizer).dataState
	case ok && r == '"':
		t.doctype.HasSystemID = true
		t.doctype.SystemID = ""
		return (*Tokenizer).doctypeSystemIdentifierDoubleQuotedState
	case ok && r == '\'':
		t.doctype.HasSystemID = true
		t.doctype.SystemID = ""
		return (*Tokenizer).doctypeSystemIdentifierSingleQuotedState
	case !ok:
		t.reportError(token.ErrEOFInDOCTYPE)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		return nil
	default:
		t.reportError(token.ErrMissingQuoteBeforeDOCTYPESystemIdentifier)
		t.doctype.ForceQuirks = true
		t.in.Push(r)
		return (*Tokenizer).bogusDOCTYPEState
	}
}

func (t *Tokenizer) afterDOCTYPESystemKeywordState(r rune, ok bool) stateFn {
	switch {
	case ok && isWhitespace(r):
		return (*Tokenizer).beforeDOCTYPESystemIdentifierState
	case ok && r == '"':
		t.reportError(token.ErrMissingWhitespaceAfterDOCTYPESystemKeyword)
		t.doctype.HasSystemID = true
		t.doctype.SystemID = ""
		return (*Tokenizer).doctypeSystemIdentifierDoubleQuotedState
	case ok && r == '\'':
		t.reportError(token.ErrMissingWhitespaceAfterDOCTYPESystemKeyword)
		t.doctype.HasSystemID = true
		t.doctype.SystemID = ""
		return (*Tokenizer).doctypeSystemIdentifierSingleQuotedState
	case ok && r == '>':
		t.reportError(token.ErrMissingDOCTYPESystemIdentifier)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		return (*Tokenizer).dataState
	case !ok:
		t.reportError(token.ErrEOFInDOCTYPE)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		return nil
	default:
		t.reportError(token.ErrMissingQuoteBeforeDOCTYPESystemIdentifier)
		t.doctype.ForceQuirks = true
		t.in.Push(r)
		return (*Tokenizer).bogusDOCTYPEState
	}
}

func (t *Tokenizer) beforeDOCTYPESystemIdentifierState(r rune, ok bool) stateFn {
	switch {
	case ok && isWhitespace(r):
		return (*Tokenizer).beforeDOCTYPESystemIdentifierState
	case ok && r == '"':
		t.doctype.HasSystemID = true
		t.doctype.SystemID = ""
		return (*Tokenizer).doctypeSystemIdentifierDoubleQuotedState
	case ok && r == '\'':
		t.doctype.HasSystemID = true
		t.doctype.SystemID = ""
		return (*Tokenizer).doctypeSystemIdentifierSingleQuotedState
	case ok && r == '>':
		t.reportError(token.ErrMissingDOCTYPESystemIdentifier)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		return (*Tokenizer).dataState
	case !ok:
		t.reportError(token.ErrEOFInDOCTYPE)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		return nil
	default:
		t.reportError(token.ErrMissingQuoteBeforeDOCTYPESystemIdentifier)
		t.doctype.ForceQuirks = true
		t.in.Push(r)
		return (*Tokenizer).bogusDOCTYPEState
	}
}

func (t *Tokenizer) afterDOCTYPESystemIdentifierState(r rune, ok bool) stateFn {
	switch {
	case ok && isWhitespace(r):
		return (*Tokenizer).afterDOCTYPESystemIdentifierState
	case ok && r == '>':
		t.emitDoctype()
		return (*Tokenizer).dataState
	case !ok:
		t.reportError(token.ErrEOFInDOCTYPE)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		return nil
	default:
		t.reportError(token.ErrUnexpectedCharacterAfterDOCTYPESystemIdentifier)
		return (*Tokenizer).bogusDOCTYPEState(t, r, ok)
	}
}

func (t *Tokenizer) bogusDOCTYPEState(r rune, ok bool) stateFn {
	if !ok {
		t.emitDoctype()
		return nil
	}
	switch r {
	case '>':
		t.emitDoctype()
		return (*Tokenizer).dataState
	case 0:
		t.reportError(token.ErrUnexpectedNullCharacter)
		return (*Tokenizer).bogusDOCTYPEState
	default:
		return (*Tokenizer).bogusDOCTYPEState
	}
}

// ---- CDATA section ----

func (t *Tokenizer) cdataSectionState(r rune, ok bool) stateFn {
	if !ok {
		t.reportError(token.ErrEOFInCDATA)
		return nil
	}
	switch r {
	case ']':
		return (*Tokenizer).cdataSectionBracketState
	case 0:
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: r})
		return (*Tokenizer).cdataSectionState
	default:
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: r})
		return (*Tokenizer).cdataSectionState
	}
}

func (t *Tokenizer) cdataSectionBracketState(r rune, ok bool) stateFn {
	if ok && r == ']' {
		return (*Tokenizer).cdataSectionEndState
	}
	t.emit(token.Token{Kind: token.KindCharacter, CodePoint: ']'})
	return (*Tokenizer).cdataSectionState(t, r, ok)
}

func (t *Tokenizer) cdataSectionEndState(r rune, ok bool) stateFn {
	switch {
	case ok && r == ']':
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: ']'})
		return (*Tokenizer).cdataSectionEndState
	case ok && r == '>':
		return (*Tokenizer).dataState
	default:
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: ']'})
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: ']'})
		return (*Tokenizer).cdataSectionState(t, r, ok)
	}
}
