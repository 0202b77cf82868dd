package token

// ErrorName identifies a parse error reported through ParserOps.ReportError
// (spec.md §4.4, §7: "all tokenization errors surface as
// report_error(error_name)"). Parse errors are always recoverable; they
// never abort tokenization or tree construction.
type ErrorName string

// The named parse errors from the HTML Living Standard that this module's
// tokenizer and tree builder can report. Not every standard error name is
// reproduced; the ones below are the errors this implementation's code
// paths actually raise.
const (
	ErrUnexpectedNullCharacter              ErrorName = "unexpected-null-character"
	ErrUnexpectedQuestionMarkInsteadOfTagName ErrorName = "unexpected-question-mark-instead-of-tag-name"
	ErrEOFBeforeTagName                     ErrorName = "eof-before-tag-name"
	ErrInvalidFirstCharacterOfTagName       ErrorName = "invalid-first-character-of-tag-name"
	ErrMissingEndTagName                    ErrorName = "missing-end-tag-name"
	ErrEOFInTag                             ErrorName = "eof-in-tag"
	ErrEOFInScriptHTMLCommentLikeText       ErrorName = "eof-in-script-html-comment-like-text"
	ErrEOFInComment                         ErrorName = "eof-in-comment"
	ErrEOFInDOCTYPE                         ErrorName = "eof-in-doctype"
	ErrEOFInCDATA                           ErrorName = "eof-in-cdata"
	ErrEOFInTagName                         ErrorName = "eof-in-tag"
	ErrAbruptClosingOfEmptyComment          ErrorName = "abrupt-closing-of-empty-comment"
	ErrAbruptDOCTYPEPublicIdentifier        ErrorName = "abrupt-doctype-public-identifier"
	ErrAbruptDOCTYPESystemIdentifier        ErrorName = "abrupt-doctype-system-identifier"
	ErrIncorrectlyOpenedComment             ErrorName = "incorrectly-opened-comment"
	ErrIncorrectlyClosedComment             ErrorName = "incorrectly-closed-comment"
	ErrNestedComment                        ErrorName = "nested-comment"
	ErrMissingWhitespaceBeforeDOCTYPEName   ErrorName = "missing-whitespace-before-doctype-name"
	ErrMissingDOCTYPEName                   ErrorName = "missing-doctype-name"
	ErrMissingWhitespaceAfterDOCTYPEPublicKeyword ErrorName = "missing-whitespace-after-doctype-public-keyword"
	ErrMissingWhitespaceAfterDOCTYPESystemKeyword ErrorName = "missing-whitespace-after-doctype-system-keyword"
	ErrMissingQuoteBeforeDOCTYPEPublicIdentifier  ErrorName = "missing-quote-before-doctype-public-identifier"
	ErrMissingQuoteBeforeDOCTYPESystemIdentifier  ErrorName = "missing-quote-before-doctype-system-identifier"
	ErrMissingWhitespaceBetweenDOCTYPEPublicAndSystemIdentifiers ErrorName = "missing-whitespace-between-doctype-public-and-system-identifiers"
	ErrMissingDOCTYPESystemIdentifier       ErrorName = "missing-doctype-system-identifier"
	ErrMissingDOCTYPEPublicIdentifier       ErrorName = "missing-doctype-public-identifier"
	ErrUnexpectedCharacterAfterDOCTYPESystemIdentifier ErrorName = "unexpected-character-after-doctype-system-identifier"
	ErrUnexpectedCharacterInAttributeName   ErrorName = "unexpected-character-in-attribute-name"
	ErrUnexpectedCharacterInUnquotedAttributeValue ErrorName = "unexpected-character-in-unquoted-attribute-value"
	ErrUnexpectedEqualsSignBeforeAttributeName ErrorName = "unexpected-equals-sign-before-attribute-name"
	ErrUnexpectedSolidusInTag               ErrorName = "unexpected-solidus-in-tag"
	ErrDuplicateAttribute                   ErrorName = "duplicate-attribute"
	ErrEndTagWithAttributes                 ErrorName = "end-tag-with-attributes"
	ErrEndTagWithTrailingSolidus            ErrorName = "end-tag-with-trailing-solidus"
	ErrNonVoidHTMLElementStartTagWithTrailingSolidus ErrorName = "non-void-html-element-start-tag-with-trailing-solidus"
	ErrMissingAttributeValue                ErrorName = "missing-attribute-value"
	ErrCDATAInHTMLContent                   ErrorName = "cdata-in-html-content"
	ErrSurrogateInInputStream               ErrorName = "surrogate-in-input-stream"
	ErrNoncharacterInInputStream            ErrorName = "noncharacter-in-input-stream"
	ErrControlCharacterInInputStream        ErrorName = "control-character-in-input-stream"
	ErrInvalidCodePoint                     ErrorName = "invalid-code-point"

	ErrAbsenceOfDigitsInNumericCharacterReference ErrorName = "absence-of-digits-in-numeric-character-reference"
	ErrUnknownNamedCharacterReference       ErrorName = "unknown-named-character-reference"
	ErrMissingSemicolonAfterCharacterReference ErrorName = "missing-semicolon-after-character-reference"
	ErrNullCharacterReference                ErrorName = "null-character-reference"
	ErrCharacterReferenceOutsideUnicodeRange ErrorName = "character-reference-outside-unicode-range"
	ErrSurrogateCharacterReference           ErrorName = "surrogate-character-reference"
	ErrControlCharacterReference             ErrorName = "control-character-reference"
	ErrNoncharacterCharacterReference        ErrorName = "noncharacter-character-reference"

	ErrUnexpectedDOCTYPE                    ErrorName = "unexpected-doctype"
	ErrMissingDOCTYPE                       ErrorName = "missing-doctype"
	ErrNonVoidHTMLElementStartTag          ErrorName = "non-void-html-element-start-tag"
	ErrUnexpectedStartTag                   ErrorName = "unexpected-start-tag"
	ErrUnexpectedEndTag                     ErrorName = "unexpected-end-tag"
	ErrClosingOfElementWithNoOpenElements   ErrorName = "unexpected-end-tag"
	ErrUnexpectedCharacterToken              ErrorName = "unexpected-character-token"
	ErrUnexpectedEOF                        ErrorName = "unexpected-eof"
)
