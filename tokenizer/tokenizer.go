// Package tokenizer implements the HTML Living Standard tokenizer
// (component C6 of the spec): a hand-coded state machine of roughly 80
// named states, each consuming one code point from an input.Stream and
// emitting zero or more tokens (spec.md §4.4).
//
// Each state is a method value of type stateFn — the classic Go lexer
// pattern (as text/template/parse uses it, and as the tree-builder
// dispatcher in this module's own package uses the equivalent "switch on
// current mode, call the matching method" shape) — rather than the
// CRTP/virtual-dispatch pattern the C++ original uses to let the tokenizer
// call back into its tree-construction subclass (spec.md §9's
// "re-architected as an explicit capability trait").
package tokenizer

import (
	"github.com/wordring/htmlx/atom"
	"github.com/wordring/htmlx/dat"
	"github.com/wordring/htmlx/input"
	"github.com/wordring/htmlx/token"
)

// State names one of the tokenizer's named states.
type State int

const (
	StateData State = iota
	StateRCDATA
	StateRAWTEXT
	StateScriptData
	StatePLAINTEXT
	StateTagOpen
	StateEndTagOpen
	StateTagName
	StateRCDATALessThanSign
	StateRCDATAEndTagOpen
	StateRCDATAEndTagName
	StateRAWTEXTLessThanSign
	StateRAWTEXTEndTagOpen
	StateRAWTEXTEndTagName
	StateScriptDataLessThanSign
	StateScriptDataEndTagOpen
	StateScriptDataEndTagName
	StateScriptDataEscapeStart
	StateScriptDataEscapeStartDash
	StateScriptDataEscaped
	StateScriptDataEscapedDash
	StateScriptDataEscapedDashDash
	StateScriptDataEscapedLessThanSign
	StateScriptDataEscapedEndTagOpen
	StateScriptDataEscapedEndTagName
	StateScriptDataDoubleEscapeStart
	StateScriptDataDoubleEscaped
	StateScriptDataDoubleEscapedDash
	StateScriptDataDoubleEscapedDashDash
	StateScriptDataDoubleEscapedLessThanSign
	StateScriptDataDoubleEscapeEnd
	StateBeforeAttributeName
	StateAttributeName
	StateAfterAttributeName
	StateBeforeAttributeValue
	StateAttributeValueDoubleQuoted
	StateAttributeValueSingleQuoted
	StateAttributeValueUnquoted
	StateAfterAttributeValueQuoted
	StateSelfClosingStartTag
	StateBogusComment
	StateMarkupDeclarationOpen
	StateCommentStart
	StateCommentStartDash
	StateComment
	StateCommentLessThanSign
	StateCommentLessThanSignBang
	StateCommentLessThanSignBangDash
	StateCommentLessThanSignBangDashDash
	StateCommentEndDash
	StateCommentEnd
	StateCommentEndBang
	StateDOCTYPE
	StateBeforeDOCTYPEName
	StateDOCTYPEName
	StateAfterDOCTYPEName
	StateAfterDOCTYPEPublicKeyword
	StateBeforeDOCTYPEPublicIdentifier
	StateDOCTYPEPublicIdentifierDoubleQuoted
	StateDOCTYPEPublicIdentifierSingleQuoted
	StateAfterDOCTYPEPublicIdentifier
	StateBetweenDOCTYPEPublicAndSystemIdentifiers
	StateAfterDOCTYPESystemKeyword
	StateBeforeDOCTYPESystemIdentifier
	StateDOCTYPESystemIdentifierDoubleQuoted
	StateDOCTYPESystemIdentifierSingleQuoted
	StateAfterDOCTYPESystemIdentifier
	StateBogusDOCTYPE
	StateCDATASection
	StateCDATASectionBracket
	StateCDATASectionEnd
	StateCharacterReference
	StateNamedCharacterReference
	StateAmbiguousAmpersand
	StateNumericCharacterReference
	StateNumericCharacterReferenceStart
	StateHexadecimalCharacterReferenceStart
	StateDecimalCharacterReferenceStart
	StateHexadecimalCharacterReference
	StateDecimalCharacterReference
	StateNumericCharacterReferenceEnd
)

// ParserOps is the capability the tokenizer needs from its host: error
// reporting (spec.md §9's generalization of the original's callback hooks
// to a single report_error surface; token emission is handled internally
// via Tokenizer's own pull-model queue, and state/encoding changes are
// exported Tokenizer methods the tree builder calls directly since it
// holds the Tokenizer by value — see DESIGN.md).
type ParserOps interface {
	ReportError(name token.ErrorName)
}

type stateFn func(t *Tokenizer, r rune, ok bool) stateFn

// Tokenizer is the C6 state machine. The zero value is not usable;
// construct one with New.
type Tokenizer struct {
	in    *input.Stream
	ops   ParserOps
	state stateFn

	returnState       stateFn
	lastStartTagName  string

	queue []token.Token

	tag      token.Token
	doctype  token.Token
	comment  []rune

	attrName  []rune
	attrValue []rune

	tempBuf []rune

	charRefCode    int32
	charRefInAttr  bool
	numericCharRefBuf []rune

	entIter     dat.Iter
	entMatchLen int

	eofEmitted bool
}

// New constructs a Tokenizer reading from in, starting in the Data state.
func New(in *input.Stream, ops ParserOps) *Tokenizer {
	t := &Tokenizer{in: in, ops: ops}
	t.state = (*Tokenizer).dataState
	return t
}

// SetState switches the tokenizer into one of the "content model" states
// the tree builder drives directly after inserting an element with
// special content rules (title/textarea → RCDATA, style/xmp/... →
// RAWTEXT, script → ScriptData, plaintext → PLAINTEXT): spec.md §4.5's
// in-head handling and the HTML Standard's "parsing text-only elements"
// note.
func (t *Tokenizer) SetState(s State) {
	t.state = t.stateFn(s)
}

// SetLastStartTag primes the "appropriate end tag token" check used by the
// RCDATA/RAWTEXT/script-data end-tag-open states, for fragment parsing
// contexts where no start tag was actually tokenized (spec.md's fragment
// parsing support).
func (t *Tokenizer) SetLastStartTag(name string) { t.lastStartTagName = name }

func (t *Tokenizer) reportError(name token.ErrorName) {
	if t.ops != nil {
		t.ops.ReportError(name)
	}
}

func (t *Tokenizer) emit(tok token.Token) {
	t.queue = append(t.queue, tok)
}

// Next drives the state machine until at least one token is ready and
// returns it. After the EOF token has been emitted once, Next keeps
// returning fresh EOF tokens (the tree builder's loop-until-stack-empty
// shape expects EOF to be re-deliverable).
func (t *Tokenizer) Next() token.Token {
	for len(t.queue) == 0 {
		if t.eofEmitted {
			return token.Token{Kind: token.KindEOF}
		}
		r, ok := t.in.Next()
		if !ok {
			t.eofEmitted = true
		}
		t.state = t.state(t, r, ok)
		if !ok && len(t.queue) == 0 {
			t.emit(token.Token{Kind: token.KindEOF})
		}
	}
	tok := t.queue[0]
	t.queue = t.queue[1:]
	return tok
}

func (t *Tokenizer) stateFn(s State) stateFn {
	switch s {
	case StateData:
		return (*Tokenizer).dataState
	case StateRCDATA:
		return (*Tokenizer).rcdataState
	case StateRAWTEXT:
		return (*Tokenizer).rawtextState
	case StateScriptData:
		return (*Tokenizer).scriptDataState
	case StatePLAINTEXT:
		return (*Tokenizer).plaintextState
	default:
		return (*Tokenizer).dataState
	}
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isAlpha(r rune) bool { return isUpper(r) || isLower(r) }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
func toLower(r rune) rune {
	if isUpper(r) {
		return r + 32
	}
	return r
}
func isWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\f', ' ':
		return true
	}
	return false
}

func appendLowerRune(buf []byte, r rune) []byte {
	return append(buf, byte(toLower(r)))
}

func runesToLowerBytes(rs []rune) []byte {
	b := make([]byte, len(rs))
	for i, r := range rs {
		b[i] = byte(toLower(r))
	}
	return b
}

// ---- Data / RCDATA / RAWTEXT / PLAINTEXT families ----

func (t *Tokenizer) dataState(r rune, ok bool) stateFn {
	if !ok {
		return nil
	}
	switch r {
	case '&':
		t.tempBuf = []rune{'&'}
		t.returnState = (*Tokenizer).dataState
		t.charRefInAttr = false
		return (*Tokenizer).characterReferenceState
	case '<':
		return (*Tokenizer).tagOpenState
	case 0:
		t.reportError(token.ErrUnexpectedNullCharacter)
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: 0})
		return (*Tokenizer).dataState
	default:
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: r})
		return (*Tokenizer).dataState
	}
}

func (t *Tokenizer) rcdataState(r rune, ok bool) stateFn {
	if !ok {
		return nil
	}
	switch r {
	case '&':
		t.tempBuf = []rune{'&'}
		t.returnState = (*Tokenizer).rcdataState
		t.charRefInAttr = false
		return (*Tokenizer).characterReferenceState
	case '<':
		return (*Tokenizer).rcdataLessThanSignState
	case 0:
		t.reportError(token.ErrUnexpectedNullCharacter)
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: 0xFFFD})
		return (*Tokenizer).rcdataState
	default:
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: r})
		return (*Tokenizer).rcdataState
	}
}

func (t *Tokenizer) rawtextState(r rune, ok bool) stateFn {
	if !ok {
		return nil
	}
	switch r {
	case '<':
		return (*Tokenizer).rawtextLessThanSignState
	case 0:
		t.reportError(token.ErrUnexpectedNullCharacter)
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: 0xFFFD})
		return (*Tokenizer).rawtextState
	default:
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: r})
		return (*Tokenizer).rawtextState
	}
}

func (t *Tokenizer) plaintextState(r rune, ok bool) stateFn {
	if !ok {
		return nil
	}
	if r == 0 {
		t.reportError(token.ErrUnexpectedNullCharacter)
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: 0xFFFD})
		return (*Tokenizer).plaintextState
	}
	t.emit(token.Token{Kind: token.KindCharacter, CodePoint: r})
	return (*Tokenizer).plaintextState
}

// ---- Tag open family ----

func (t *Tokenizer) tagOpenState(r rune, ok bool) stateFn {
	if !ok {
		t.reportError(token.ErrEOFBeforeTagName)
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '<'})
		return nil
	}
	switch {
	case r == '!':
		return (*Tokenizer).markupDeclarationOpenState
	case r == '/':
		return (*Tokenizer).endTagOpenState
	case isAlpha(r):
		t.tag = token.NewStartTag()
		t.in.Push(r)
		return (*Tokenizer).tagNameState
	case r == '?':
		t.reportError(token.ErrUnexpectedQuestionMarkInsteadOfTagName)
		t.comment = nil
		t.in.Push(r)
		return (*Tokenizer).bogusCommentState
	default:
		t.reportError(token.ErrInvalidFirstCharacterOfTagName)
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '<'})
		t.in.Push(r)
		return (*Tokenizer).dataState
	}
}

func (t *Tokenizer) endTagOpenState(r rune, ok bool) stateFn {
	if !ok {
		t.reportError(token.ErrEOFBeforeTagName)
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '<'})
		t.emit(token.Token{Kind: token.KindCharacter, CodePoint: '/'})
		return nil
	}
	switch {
	case isAlpha(r):
		t.tag = token.NewEndTag()
		t.in.Push(r)
		return (*Tokenizer).tagNameState
	case r == '>':
		t.reportError(token.ErrMissingEndTagName)
		return (*Tokenizer).dataState
	default:
		t.reportError(token.ErrInvalidFirstCharacterOfTagName)
		t.comment = nil
		t.in.Push(r)
		return (*Tokenizer).bogusCommentState
	}
}

func (t *Tokenizer) tagNameState(r rune, ok bool) stateFn {
	if !ok {
		t.reportError(token.ErrEOFInTag)
		return nil
	}
	switch {
	case isWhitespace(r):
		return (*Tokenizer).beforeAttributeNameState
	case r == '/':
		return (*Tokenizer).selfClosingStartTagState
	case r == '>':
		t.finishTagName()
		t.emitTag()
		return (*Tokenizer).dataState
	case isUpper(r):
		t.tag.TagName += string(toLower(r))
		return (*Tokenizer).tagNameState
	case r == 0:
		t.reportError(token.ErrUnexpectedNullCharacter)
		t.tag.TagName += string(rune(0xFFFD))
		return (*Tokenizer).tagNameState
	default:
		t.tag.TagName += string(r)
		return (*Tokenizer).tagNameState
	}
}

func (t *Tokenizer) finishTagName() {
	t.tag.TagID = int32(atom.LookupTag([]byte(t.tag.TagName)))
}

func (t *Tokenizer) emitTag() {
	if t.tag.Kind == token.KindStartTag {
		t.lastStartTagName = t.tag.TagName
	} else {
		if len(t.tag.Attributes) > 0 {
			t.reportError(token.ErrEndTagWithAttributes)
		}
		if t.tag.SelfClosing {
			t.reportError(token.ErrEndTagWithTrailingSolidus)
		}
	}
	t.emit(t.tag)
	t.tag = token.Token{}
}

func (t *Tokenizer) isAppropriateEndTag() bool {
	return t.tag.Kind == token.KindEndTag && t.tag.TagName == t.lastStartTagName && t.lastStartTagName != ""
}
