package tokenizer

import (
	"github.com/wordring/htmlx/atom"
	"github.com/wordring/htmlx/input"
	"github.com/wordring/htmlx/token"
)

// Character reference states (spec.md §4.4's "character reference
// tokenization" family). t.tempBuf accumulates the raw source text
// starting with '&', so it can be flushed back out literally when no
// reference is recognized; t.returnState is the state to resume once the
// reference (or its literal fallback) has been handled, and
// t.charRefInAttr routes emitted code points to the current attribute's
// value instead of character tokens when the reference occurs inside an
// attribute value.

func (t *Tokenizer) characterReferenceState(r rune, ok bool) stateFn {
	switch {
	case ok && isAlpha(r):
		t.entIter = atom.Entities.Root()
		t.entMatchLen = 0
		return (*Tokenizer).namedCharacterReferenceState(t, r, ok)
	case ok && r == '#':
		t.tempBuf = append(t.tempBuf, r)
		return (*Tokenizer).numericCharacterReferenceState
	default:
		t.flushTempBuf()
		return t.returnState(t, r, ok)
	}
}

// flushTempBuf emits every code point in tempBuf through the same
// attribute/character routing a resolved reference uses, for the "no
// match" fallback case, then empties tempBuf.
func (t *Tokenizer) flushTempBuf() {
	for _, c := range t.tempBuf {
		t.emitTempBufChar(c)
	}
	t.tempBuf = nil
}

func (t *Tokenizer) emitTempBufChar(c rune) {
	if t.charRefInAttr {
		t.attrValue = append(t.attrValue, c)
	} else {
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: c})
	}
}

// namedCharacterReferenceState walks atom.Entities one code point at a
// time, remembering the longest terminal match seen (the standard's
// longest-match rule over the named character reference table).
func (t *Tokenizer) namedCharacterReferenceState(r rune, ok bool) stateFn {
	if !ok {
		return t.finishNamedCharacterReference(r, ok)
	}
	child := t.entIter.Child(byte(r))
	if child.IsEnd() {
		return t.finishNamedCharacterReference(r, ok)
	}
	t.tempBuf = append(t.tempBuf, r)
	t.entIter = child
	if child.Terminal() {
		t.entMatchLen = len(t.tempBuf)
	}
	return (*Tokenizer).namedCharacterReferenceState
}

// finishNamedCharacterReference resolves the longest match found (if
// any), applying the attribute-context "ambiguous ampersand" exception
// and the missing-semicolon error, or falls through to the ambiguous
// ampersand state when nothing matched at all.
func (t *Tokenizer) finishNamedCharacterReference(r rune, ok bool) stateFn {
	if t.entMatchLen == 0 {
		t.flushTempBuf()
		return (*Tokenizer).ambiguousAmpersandState(t, r, ok)
	}

	matched := t.tempBuf[1:t.entMatchLen]
	extra := append([]rune(nil), t.tempBuf[t.entMatchLen:]...)
	lastMatchedChar := matched[len(matched)-1]

	nextChar, nextOK := r, ok
	if len(extra) > 0 {
		nextChar, nextOK = extra[0], true
	}

	if t.charRefInAttr && lastMatchedChar != ';' && nextOK &&
		(nextChar == '=' || isAlpha(nextChar) || isDigit(nextChar)) {
		// The whole run consumed as a character reference attempt —
		// matched and extra both — is flushed literally here (the standard's
		// "flush code points consumed as a character reference"); extra was
		// never a separate reconsume in this branch, so pushing it back too
		// would emit it a second time.
		t.flushTempBuf()
		return t.returnState(t, r, ok)
	}

	if lastMatchedChar != ';' {
		t.reportError(token.ErrMissingSemicolonAfterCharacterReference)
	}

	v, found := atom.Entities.At([]byte(string(matched)))
	t.tempBuf = nil
	if found {
		cps, _ := atom.EntityCodePoints(v.Get())
		for _, c := range cps {
			t.emitTempBufChar(c)
		}
	}
	return t.reconsumeExtraThenReturn(extra, r, ok)
}

// reconsumeExtraThenReturn replays extra — code points consumed from the
// input stream while the trie walk kept following a valid but non-terminal
// entity-table prefix past the longest resolved match — before r/ok, the
// character that ended the walk. Both were already read from the stream in
// that order, so the return state must see them in that order too: pushing
// extra back and immediately handing r to returnState (without first
// draining extra) would process r ahead of characters the source text
// placed before it.
func (t *Tokenizer) reconsumeExtraThenReturn(extra []rune, r rune, ok bool) stateFn {
	if len(extra) == 0 {
		return t.returnState(t, r, ok)
	}
	rest := append([]rune(nil), extra[1:]...)
	if ok {
		rest = append(rest, r)
	}
	if len(rest) > 0 {
		t.in.PushString(rest)
	}
	return t.returnState(t, extra[0], true)
}

// ambiguousAmpersandState consumes the remainder of a run of ASCII
// alphanumerics that failed to match any named reference, emitting each
// one literally, per the standard's note that these were "consumed as
// part of an attempt to match a character reference" but matched none.
func (t *Tokenizer) ambiguousAmpersandState(r rune, ok bool) stateFn {
	switch {
	case ok && (isAlpha(r) || isDigit(r)):
		t.emitTempBufChar(r)
		return (*Tokenizer).ambiguousAmpersandState
	case ok && r == ';':
		t.reportError(token.ErrUnknownNamedCharacterReference)
		return t.returnState(t, r, ok)
	default:
		return t.returnState(t, r, ok)
	}
}

// ---- Numeric character reference family ----

func (t *Tokenizer) numericCharacterReferenceState(r rune, ok bool) stateFn {
	t.charRefCode = 0
	if ok && (r == 'x' || r == 'X') {
		t.tempBuf = append(t.tempBuf, r)
		return (*Tokenizer).hexadecimalCharacterReferenceStartState
	}
	return (*Tokenizer).decimalCharacterReferenceStartState(t, r, ok)
}

func (t *Tokenizer) hexadecimalCharacterReferenceStartState(r rune, ok bool) stateFn {
	if ok && isHexDigit(r) {
		return (*Tokenizer).hexadecimalCharacterReferenceState(t, r, ok)
	}
	t.reportError(token.ErrAbsenceOfDigitsInNumericCharacterReference)
	t.flushTempBuf()
	return t.returnState(t, r, ok)
}

func (t *Tokenizer) decimalCharacterReferenceStartState(r rune, ok bool) stateFn {
	if ok && isDigit(r) {
		return (*Tokenizer).decimalCharacterReferenceState(t, r, ok)
	}
	t.reportError(token.ErrAbsenceOfDigitsInNumericCharacterReference)
	t.flushTempBuf()
	return t.returnState(t, r, ok)
}

func (t *Tokenizer) hexadecimalCharacterReferenceState(r rune, ok bool) stateFn {
	switch {
	case ok && isDigit(r):
		t.accumulateHex(int32(r - '0'))
		return (*Tokenizer).hexadecimalCharacterReferenceState
	case ok && r >= 'A' && r <= 'F':
		t.accumulateHex(int32(r-'A') + 10)
		return (*Tokenizer).hexadecimalCharacterReferenceState
	case ok && r >= 'a' && r <= 'f':
		t.accumulateHex(int32(r-'a') + 10)
		return (*Tokenizer).hexadecimalCharacterReferenceState
	case ok && r == ';':
		return (*Tokenizer).numericCharacterReferenceEndState
	default:
		t.reportError(token.ErrMissingSemicolonAfterCharacterReference)
		return (*Tokenizer).numericCharacterReferenceEndState(t, r, ok)
	}
}

func (t *Tokenizer) decimalCharacterReferenceState(r rune, ok bool) stateFn {
	switch {
	case ok && isDigit(r):
		if t.charRefCode <= 0x10FFFF {
			t.charRefCode = t.charRefCode*10 + int32(r-'0')
		}
		return (*Tokenizer).decimalCharacterReferenceState
	case ok && r == ';':
		return (*Tokenizer).numericCharacterReferenceEndState
	default:
		t.reportError(token.ErrMissingSemicolonAfterCharacterReference)
		return (*Tokenizer).numericCharacterReferenceEndState(t, r, ok)
	}
}

// accumulateHex folds one more hex digit into charRefCode, saturating
// rather than overflowing once the value already exceeds the Unicode
// range (numericCharacterReferenceEndState replaces any such value with
// U+FFFD regardless of its exact magnitude).
func (t *Tokenizer) accumulateHex(digit int32) {
	if t.charRefCode <= 0x10FFFF {
		t.charRefCode = t.charRefCode*16 + digit
	}
}

// numericRefReplacements is the Windows-1252 "better than nothing"
// substitution table the standard specifies for numeric references to
// the C1 control range.
var numericRefReplacements = map[int32]rune{
	0x80: 0x20AC, 0x82: 0x201A, 0x83: 0x0192, 0x84: 0x201E,
	0x85: 0x2026, 0x86: 0x2020, 0x87: 0x2021, 0x88: 0x02C6,
	0x89: 0x2030, 0x8A: 0x0160, 0x8B: 0x2039, 0x8C: 0x0152,
	0x8E: 0x017D, 0x91: 0x2018, 0x92: 0x2019, 0x93: 0x201C,
	0x94: 0x201D, 0x95: 0x2022, 0x96: 0x2013, 0x97: 0x2014,
	0x98: 0x02DC, 0x99: 0x2122, 0x9A: 0x0161, 0x9B: 0x203A,
	0x9C: 0x0153, 0x9E: 0x017E, 0x9F: 0x0178,
}

func (t *Tokenizer) numericCharacterReferenceEndState(r rune, ok bool) stateFn {
	code := t.charRefCode
	switch {
	case code == 0:
		t.reportError(token.ErrNullCharacterReference)
		code = 0xFFFD
	case code > 0x10FFFF:
		t.reportError(token.ErrCharacterReferenceOutsideUnicodeRange)
		code = 0xFFFD
	case code >= 0xD800 && code <= 0xDFFF:
		t.reportError(token.ErrSurrogateCharacterReference)
		code = 0xFFFD
	case input.IsNoncharacter(rune(code)):
		t.reportError(token.ErrNoncharacterCharacterReference)
	case code == 0x0D || (isControlCode(code) && !isControlWhitespaceCode(code)):
		t.reportError(token.ErrControlCharacterReference)
		if repl, found := numericRefReplacements[code]; found {
			code = int32(repl)
		}
	}
	t.tempBuf = nil
	t.emitTempBufChar(rune(code))
	return t.returnState(t, r, ok)
}

func isControlCode(c int32) bool {
	return (c >= 0x00 && c <= 0x1F) || (c >= 0x7F && c <= 0x9F)
}

func isControlWhitespaceCode(c int32) bool {
	switch c {
	case 0x09, 0x0A, 0x0C, 0x0D, 0x20:
		return true
	}
	return false
}
