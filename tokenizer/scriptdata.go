package tokenizer

import "github.com/wordring/htmlx/token"

// genericEndTagNameState implements the shared shape of the RCDATA/
// RAWTEXT/script-data "end tag name" states: build a tag name while the
// token is an appropriate end tag (spec.md §4.4's "appropriate end tag
// token" check), falling back to emitting the accumulated characters
// literally otherwise.
func (t *Tokenizer) genericEndTagNameState(r rune, ok bool, self, content stateFn) stateFn {
	switch {
	case ok && isWhitespace(r) && t.isAppropriateEndTag():
		return (*Tokenizer).beforeAttributeNameState
	case ok && r == '/' && t.isAppropriateEndTag():
		return (*Tokenizer).selfClosingStartTagState
	case ok && r == '>' && t.isAppropriateEndTag():
		t.finishTagName()
		t.emitTag()
		return (*Tokenizer).dataState
	case ok && isUpper(r):
		t.tag.TagName += string(toLower(r))
		t.tempBuf = append(t.tempBuf, r)
		return self
	case ok && isLower(r):
		t.tag.TagName += string(r)
		t.tempBuf = append(t.tempBuf, r)
		return self
	default:
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '<'})
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '/'})
		for _, c := range t.tempBuf {
			t.emit(token.Token{Kind: token.KindCharacter, CodePoint: c})
		}
		t.tag = token.Token{}
		return content(t, r, ok)
	}
}

// ---- RCDATA less-than-sign family ----

func (t *Tokenizer) rcdataLessThanSignState(r rune, ok bool) stateFn {
	if ok && r == '/' {
		t.tempBuf = nil
		return (*Tokenizer).rcdataEndTagOpenState
	}
	t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '<'})
	return (*Tokenizer).rcdataState(t, r, ok)
}

func (t *Tokenizer) rcdataEndTagOpenState(r rune, ok bool) stateFn {
	if ok && isAlpha(r) {
		t.tag = token.NewEndTag()
		return (*Tokenizer).rcdataEndTagNameState(t, r, ok)
	}
	t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '<'})
	t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '/'})
	return (*Tokenizer).rcdataState(t, r, ok)
}

func (t *Tokenizer) rcdataEndTagNameState(r rune, ok bool) stateFn {
	return t.genericEndTagNameState(r, ok, (*Tokenizer).rcdataEndTagNameState, (*Tokenizer).rcdataState)
}

// ---- RAWTEXT less-than-sign family ----

func (t *Tokenizer) rawtextLessThanSignState(r rune, ok bool) stateFn {
	if ok && r == '/' {
		t.tempBuf = nil
		return (*Tokenizer).rawtextEndTagOpenState
	}
	t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '<'})
	return (*Tokenizer).rawtextState(t, r, ok)
}

func (t *Tokenizer) rawtextEndTagOpenState(r rune, ok bool) stateFn {
	if ok && isAlpha(r) {
		t.tag = token.NewEndTag()
		return (*Tokenizer).rawtextEndTagNameState(t, r, ok)
	}
	t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '<'})
	t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '/'})
	return (*Tokenizer).rawtextState(t, r, ok)
}

func (t *Tokenizer) rawtextEndTagNameState(r rune, ok bool) stateFn {
	return t.genericEndTagNameState(r, ok, (*Tokenizer).rawtextEndTagNameState, (*Tokenizer).rawtextState)
}

// ---- script data state ----

func (t *Tokenizer) scriptDataState(r rune, ok bool) stateFn {
	if !ok {
		return nil
	}
	switch r {
	case '<':
		return (*Tokenizer).scriptDataLessThanSignState
	case 0:
		t.reportError(token.ErrUnexpectedNullCharacter)
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: 0xFFFD})
		return (*Tokenizer).scriptDataState
	default:
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: r})
		return (*Tokenizer).scriptDataState
	}
}

func (t *Tokenizer) scriptDataLessThanSignState(r rune, ok bool) stateFn {
	switch {
	case ok && r == '/':
		t.tempBuf = nil
		return (*Tokenizer).scriptDataEndTagOpenState
	case ok && r == '!':
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '<'})
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '!'})
		return (*Tokenizer).scriptDataEscapeStartState
	default:
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '<'})
		return (*Tokenizer).scriptDataState(t, r, ok)
	}
}

func (t *Tokenizer) scriptDataEndTagOpenState(r rune, ok bool) stateFn {
	if ok && isAlpha(r) {
		t.tag = token.NewEndTag()
		return (*Tokenizer).scriptDataEndTagNameState(t, r, ok)
	}
	t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '<'})
	t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '/'})
	return (*Tokenizer).scriptDataState(t, r, ok)
}

func (t *Tokenizer) scriptDataEndTagNameState(r rune, ok bool) stateFn {
	return t.genericEndTagNameState(r, ok, (*Tokenizer).scriptDataEndTagNameState, (*Tokenizer).scriptDataState)
}

func (t *Tokenizer) scriptDataEscapeStartState(r rune, ok bool) stateFn {
	if ok && r == '-' {
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '-'})
		return (*Tokenizer).scriptDataEscapeStartDashState
	}
	return (*Tokenizer).scriptDataState(t, r, ok)
}

func (t *Tokenizer) scriptDataEscapeStartDashState(r rune, ok bool) stateFn {
	if ok && r == '-' {
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '-'})
		return (*Tokenizer).scriptDataEscapedDashDashState
	}
	return (*Tokenizer).scriptDataState(t, r, ok)
}

func (t *Tokenizer) scriptDataEscapedState(r rune, ok bool) stateFn {
	if !ok {
		t.reportError(token.ErrEOFInScriptHTMLCommentLikeText)
		return nil
	}
	switch r {
	case '-':
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '-'})
		return (*Tokenizer).scriptDataEscapedDashState
	case '<':
		return (*Tokenizer).scriptDataEscapedLessThanSignState
	case 0:
		t.reportError(token.ErrUnexpectedNullCharacter)
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: 0xFFFD})
		return (*Tokenizer).scriptDataEscapedState
	default:
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: r})
		return (*Tokenizer).scriptDataEscapedState
	}
}

func (t *Tokenizer) scriptDataEscapedDashState(r rune, ok bool) stateFn {
	if !ok {
		t.reportError(token.ErrEOFInScriptHTMLCommentLikeText)
		return nil
	}
	switch r {
	case '-':
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '-'})
		return (*Tokenizer).scriptDataEscapedDashDashState
	case '<':
		return (*Tokenizer).scriptDataEscapedLessThanSignState
	case 0:
		t.reportError(token.ErrUnexpectedNullCharacter)
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: 0xFFFD})
		return (*Tokenizer).scriptDataEscapedState
	default:
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: r})
		return (*Tokenizer).scriptDataEscapedState
	}
}

func (t *Tokenizer) scriptDataEscapedDashDashState(r rune, ok bool) stateFn {
	if !ok {
		t.reportError(token.ErrEOFInScriptHTMLCommentLikeText)
		return nil
	}
	switch r {
	case '-':
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '-'})
		return (*Tokenizer).scriptDataEscapedDashDashState
	case '<':
		return (*Tokenizer).scriptDataEscapedLessThanSignState
	case '>':
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '>'})
		return (*Tokenizer).scriptDataState
	case 0:
		t.reportError(token.ErrUnexpectedNullCharacter)
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: 0xFFFD})
		return (*Tokenizer).scriptDataEscapedState
	default:
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: r})
		return (*Tokenizer).scriptDataEscapedState
	}
}

func (t *Tokenizer) scriptDataEscapedLessThanSignState(r rune, ok bool) stateFn {
	switch {
	case ok && r == '/':
		t.tempBuf = nil
		return (*Tokenizer).scriptDataEscapedEndTagOpenState
	case ok && isAlpha(r):
		t.tempBuf = nil
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '<'})
		return (*Tokenizer).scriptDataDoubleEscapeStartState(t, r, ok)
	default:
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '<'})
		return (*Tokenizer).scriptDataEscapedState(t, r, ok)
	}
}

func (t *Tokenizer) scriptDataEscapedEndTagOpenState(r rune, ok bool) stateFn {
	if ok && isAlpha(r) {
		t.tag = token.NewEndTag()
		return (*Tokenizer).scriptDataEscapedEndTagNameState(t, r, ok)
	}
	t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '<'})
	t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '/'})
	return (*Tokenizer).scriptDataEscapedState(t, r, ok)
}

func (t *Tokenizer) scriptDataEscapedEndTagNameState(r rune, ok bool) stateFn {
	return t.genericEndTagNameState(r, ok, (*Tokenizer).scriptDataEscapedEndTagNameState, (*Tokenizer).scriptDataEscapedState)
}

const doubleEscapeLiteral = "script"

func (t *Tokenizer) scriptDataDoubleEscapeStartState(r rune, ok bool) stateFn {
	switch {
	case ok && (isWhitespace(r) || r == '/' || r == '>'):
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: r})
		if tempBufEqualsFold(t.tempBuf, doubleEscapeLiteral) {
			return (*Tokenizer).scriptDataDoubleEscapedState
		}
		return (*Tokenizer).scriptDataEscapedState
	case ok && isAlpha(r):
		t.tempBuf = append(t.tempBuf, toLower(r))
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: r})
		return (*Tokenizer).scriptDataDoubleEscapeStartState
	default:
		return (*Tokenizer).scriptDataEscapedState(t, r, ok)
	}
}

func tempBufEqualsFold(buf []rune, s string) bool {
	if len(buf) != len(s) {
		return false
	}
	for i, c := range s {
		if toLower(buf[i]) != c {
			return false
		}
	}
	return true
}

func (t *Tokenizer) scriptDataDoubleEscapedState(r rune, ok bool) stateFn {
	if !ok {
		t.reportError(token.ErrEOFInScriptHTMLCommentLikeText)
		return nil
	}
	switch r {
	case '-':
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '-'})
		return (*Tokenizer).scriptDataDoubleEscapedDashState
	case '<':
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '<'})
		return (*Tokenizer).scriptDataDoubleEscapedLessThanSignState
	case 0:
		t.reportError(token.ErrUnexpectedNullCharacter)
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: 0xFFFD})
		return (*Tokenizer).scriptDataDoubleEscapedState
	default:
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: r})
		return (*Tokenizer).scriptDataDoubleEscapedState
	}
}

func (t *Tokenizer) scriptDataDoubleEscapedDashState(r rune, ok bool) stateFn {
	if !ok {
		t.reportError(token.ErrEOFInScriptHTMLCommentLikeText)
		return nil
	}
	switch r {
	case '-':
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '-'})
		return (*Tokenizer).scriptDataDoubleEscapedDashDashState
	case '<':
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '<'})
		return (*Tokenizer).scriptDataDoubleEscapedLessThanSignState
	case 0:
		t.reportError(token.ErrUnexpectedNullCharacter)
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: 0xFFFD})
		return (*Tokenizer).scriptDataDoubleEscapedState
	default:
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: r})
		return (*Tokenizer).scriptDataDoubleEscapedState
	}
}

func (t *Tokenizer) scriptDataDoubleEscapedDashDashState(r rune, ok bool) stateFn {
	if !ok {
		t.reportError(token.ErrEOFInScriptHTMLCommentLikeText)
		return nil
	}
	switch r {
	case '-':
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '-'})
		return (*Tokenizer).scriptDataDoubleEscapedDashDashState
	case '<':
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '<'})
		return (*Tokenizer).scriptDataDoubleEscapedLessThanSignState
	case '>':
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '>'})
		return (*Tokenizer).scriptDataState
	case 0:
		t.reportError(token.ErrUnexpectedNullCharacter)
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: 0xFFFD})
		return (*Tokenizer).scriptDataDoubleEscapedState
	default:
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: r})
		return (*Tokenizer).scriptDataDoubleEscapedState
	}
}

func (t *Tokenizer) scriptDataDoubleEscapedLessThanSignState(r rune, ok bool) stateFn {
	if ok && r == '/' {
		t.tempBuf = nil
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '/'})
		return (*Tokenizer).scriptDataDoubleEscapeEndState
	}
	return (*Tokenizer).scriptDataDoubleEscapedState(t, r, ok)
}

func (t *Tokenizer) scriptDataDoubleEscapeEndState(r rune, ok bool) stateFn {
	switch {
	case ok && (isWhitespace(r) || r == '/' || r == '>'):
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: r})
		if tempBufEqualsFold(t.tempBuf, doubleEscapeLiteral) {
			return (*Tokenizer).scriptDataEscapedState
		}
		return (*Tokenizer).scriptDataDoubleEscapedState
	case ok && isAlpha(r):
		t.tempBuf = append(t.tempBuf, toLower(r))
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: r})
		return (*Tokenizer).scriptDataDoubleEscapeEndState
	default:
		return (*Tokenizer).scriptDataDoubleEscapedState(t, r, ok)
	}
}
