// Package tree implements component C7 of the spec: the insertion-mode
// dispatcher, the open-elements stack, the active formatting element list,
// the adoption agency and foster-parenting algorithms, and foreign-content
// handling (spec.md §4.5–4.7). Builder embeds a *tokenizer.Tokenizer by
// value-held pointer the way the teacher's Trie wraps a *nodeStoreBuffered
// (spec.md §9's "tokenizer owning tokenization state; dispatcher owning
// insertion-mode state and holding a tokenizer by value" collapse of the
// original's CRTP hierarchy).
package tree

import (
	"github.com/wordring/htmlx/atom"
	"github.com/wordring/htmlx/dom"
	"github.com/wordring/htmlx/input"
	"github.com/wordring/htmlx/token"
	"github.com/wordring/htmlx/tokenizer"
)

// Namespace tokens used throughout this package. These are deliberately
// short atoms rather than full XML namespace URIs, matching the
// already-committed atom.IsHTMLIntegrationPoint/IsMathMLTextIntegrationPoint
// convention (atom compares namespace == "mathml" / "svg"); attribute
// namespaces adjusted via atom.ForeignAttrTable are still the full URIs
// the standard specifies, since those flow straight into dom.Attr and are
// never compared against these tokens. See DESIGN.md.
const (
	NamespaceHTML   = ""
	NamespaceSVG    = "svg"
	NamespaceMathML = "mathml"
)

// Mode is one of the 23 tree-construction insertion modes (spec.md §4.7).
type Mode int

const (
	ModeInitial Mode = iota
	ModeBeforeHTML
	ModeBeforeHead
	ModeInHead
	ModeInHeadNoscript
	ModeAfterHead
	ModeInBody
	ModeText
	ModeInTable
	ModeInTableText
	ModeInCaption
	ModeInColumnGroup
	ModeInTableBody
	ModeInRow
	ModeInCell
	ModeInSelect
	ModeInSelectInTable
	ModeInTemplate
	ModeAfterBody
	ModeInFrameset
	ModeAfterFrameset
	ModeAfterAfterBody
	ModeAfterAfterFrameset
)

// QuirksMode is the document's quirks-mode classification (spec.md §4.5,
// last paragraph).
type QuirksMode int

const (
	NoQuirks QuirksMode = iota
	LimitedQuirks
	Quirks
)

// stackEntry pairs an open element's handle with the token that created it
// (spec.md §3, "stack entries' token snapshots outlive their tokens"), so
// the adoption agency and formatting-list reconstruction can re-create an
// element from its original attributes.
type stackEntry struct {
	handle dom.Handle
	tok    token.Token
	id     atom.TagID
	ns     string
}

// FragmentContext describes the context element a fragment-parsing entry
// point is seeded with (the HTML Standard's "html fragment parsing
// algorithm").
type FragmentContext struct {
	TagID     atom.TagID
	TagName   string
	Namespace string
	Attrs     []token.Attribute
}

// ErrorFunc receives parse errors reported during tree construction and
// tokenization (spec.md §7's single report_error callback).
type ErrorFunc func(name token.ErrorName)

// Builder is the C7 tree-construction dispatcher.
type Builder struct {
	ops    dom.NodeOps
	tok    *tokenizer.Tokenizer
	stream *input.Stream
	onErr  ErrorFunc

	mode     Mode
	origMode Mode

	open []stackEntry
	afe  []formattingEntry

	headElement dom.Handle
	formElement dom.Handle

	templateModes []Mode

	// templateContents maps a <template> element's handle to its content
	// document-fragment handle (spec.md §9's note that
	// create_document_fragment() is an empty body in the reference source;
	// this module wires it fully).
	templateContents map[dom.Handle]dom.Handle

	scripting       bool
	framesetOK      bool
	fosterParenting bool
	pause           bool
	ignoreNextLF    bool

	quirks QuirksMode

	fragment        bool
	fragmentContext *FragmentContext
	contextElement  dom.Handle

	pendingTableChars     []rune
	pendingTableNonWS     bool
	pendingTableOrigMode  Mode

	stopped bool
}

// Option configures a Builder at construction time.
type Option func(*Builder)

// WithScripting enables the scripting flag (spec.md §3's Flags), which
// routes <noscript> into RAWTEXT instead of the in-head-noscript mode.
func WithScripting(v bool) Option {
	return func(b *Builder) { b.scripting = v }
}

// NewBuilder constructs a Builder for full-document parsing, wiring ops as
// the C8 node adapter, in as the tokenizer's source stream (used for
// meta-charset ChangeEncoding), and onErr as the shared parse-error sink.
func NewBuilder(ops dom.NodeOps, in *input.Stream, onErr ErrorFunc, opts ...Option) *Builder {
	b := &Builder{
		ops:              ops,
		stream:           in,
		onErr:            onErr,
		framesetOK:       true,
		templateContents: make(map[dom.Handle]dom.Handle),
	}
	for _, o := range opts {
		o(b)
	}
	b.tok = tokenizer.New(in, b)
	return b
}

// NewFragmentBuilder constructs a Builder for the fragment-parsing
// algorithm, seeded with ctx's context element (HTML Standard, "html
// fragment parsing algorithm").
func NewFragmentBuilder(ops dom.NodeOps, in *input.Stream, onErr ErrorFunc, ctx *FragmentContext, opts ...Option) *Builder {
	b := NewBuilder(ops, in, onErr, opts...)
	b.fragment = true
	b.fragmentContext = ctx
	b.framesetOK = true

	htmlNode := ops.CreateElement(atom.TagHTML, "html", NamespaceHTML, "")
	ops.Insert(dom.Position{Parent: ops.Document()}, htmlNode)
	b.pushElement(htmlNode, token.Token{Kind: token.KindStartTag, TagName: "html", TagID: int32(atom.TagHTML)}, NamespaceHTML)

	if ctx != nil {
		b.contextElement = b.createContextElement(ctx)
		ops.Insert(dom.Position{Parent: htmlNode}, b.contextElement)
		b.pushElement(b.contextElement, token.Token{Kind: token.KindStartTag, TagName: ctx.TagName, TagID: int32(ctx.TagID), Attributes: ctx.Attrs}, ctx.Namespace)

		if ctx.TagID == atom.TagForm {
			b.formElement = b.contextElement
		}
		b.resetInsertionModeAppropriately()

		if ctx.Namespace == NamespaceHTML {
			switch ctx.TagID {
			case atom.TagTitle, atom.TagTextarea:
				b.tok.SetLastStartTag(ctx.TagName)
				b.tok.SetState(tokenizer.StateRCDATA)
			case atom.TagStyle, atom.TagXmp, atom.TagIframe, atom.TagNoembed, atom.TagNoframes:
				b.tok.SetLastStartTag(ctx.TagName)
				b.tok.SetState(tokenizer.StateRAWTEXT)
			case atom.TagScript:
				b.tok.SetLastStartTag(ctx.TagName)
				b.tok.SetState(tokenizer.StateScriptData)
			case atom.TagPlaintext:
				b.tok.SetLastStartTag(ctx.TagName)
				b.tok.SetState(tokenizer.StatePLAINTEXT)
			}
		}
	} else {
		b.mode = ModeBeforeHead
	}
	return b
}

func (b *Builder) createContextElement(ctx *FragmentContext) dom.Handle {
	h := b.ops.CreateElement(ctx.TagID, ctx.TagName, ctx.Namespace, "")
	for _, a := range ctx.Attrs {
		b.ops.SetAttr(h, a.Namespace, a.Prefix, a.LocalName, a.Value)
	}
	return h
}

// ReportError implements tokenizer.ParserOps.
func (b *Builder) ReportError(name token.ErrorName) {
	if b.onErr != nil {
		b.onErr(name)
	}
}

// Document returns the adapter's document node.
func (b *Builder) Document() dom.Handle { return b.ops.Document() }

// QuirksMode returns the document's quirks-mode classification, decided by
// the DOCTYPE token the initial insertion mode saw (or Quirks, if none
// was ever seen before something else forced the mode transition).
func (b *Builder) QuirksMode() QuirksMode { return b.quirks }

// FragmentNodes returns the context element's children, the fragment
// parsing algorithm's result (HTML Standard step 14), or the html root's
// children when there is no context element.
func (b *Builder) FragmentNodes() []dom.Handle {
	root := b.contextElement
	if root == dom.NoHandle && len(b.open) > 0 {
		root = b.open[0].handle
	}
	var out []dom.Handle
	for c := b.ops.FirstChild(root); c != dom.NoHandle; c = b.ops.NextSibling(c) {
		out = append(out, c)
	}
	return out
}

// Run drives the tokenizer to completion, dispatching every token through
// ProcessToken until the standard's "stop parsing" condition is reached.
func (b *Builder) Run() {
	for !b.stopped {
		tok := b.tok.Next()
		b.ProcessToken(tok)
		if tok.Kind == token.KindEOF {
			break
		}
	}
}

// ProcessToken is the C7 entry point (spec.md §4.5): foreign-content
// fan-out first, then the 23-case switch on insertion mode, then the
// self-closing acknowledgement check.
func (b *Builder) ProcessToken(tok token.Token) {
	reprocess := true
	for reprocess {
		if b.useForeignContentRules(tok) {
			reprocess = b.processForeignContent(&tok)
		} else {
			reprocess = b.dispatch(&tok)
		}
	}
	if tok.Kind == token.KindStartTag && tok.SelfClosing && !tok.SelfClosingAcknowledged {
		b.reportError(token.ErrNonVoidHTMLElementStartTagWithTrailingSolidus)
	}
}

func (b *Builder) reportError(name token.ErrorName) {
	if b.onErr != nil {
		b.onErr(name)
	}
}

func (b *Builder) dispatch(tok *token.Token) bool {
	switch b.mode {
	case ModeInitial:
		return b.onInitial(tok)
	case ModeBeforeHTML:
		return b.onBeforeHTML(tok)
	case ModeBeforeHead:
		return b.onBeforeHead(tok)
	case ModeInHead:
		return b.onInHead(tok)
	case ModeInHeadNoscript:
		return b.onInHeadNoscript(tok)
	case ModeAfterHead:
		return b.onAfterHead(tok)
	case ModeInBody:
		return b.onInBody(tok)
	case ModeText:
		return b.onText(tok)
	case ModeInTable:
		return b.onInTable(tok)
	case ModeInTableText:
		return b.onInTableText(tok)
	case ModeInCaption:
		return b.onInCaption(tok)
	case ModeInColumnGroup:
		return b.onInColumnGroup(tok)
	case ModeInTableBody:
		return b.onInTableBody(tok)
	case ModeInRow:
		return b.onInRow(tok)
	case ModeInCell:
		return b.onInCell(tok)
	case ModeInSelect:
		return b.onInSelect(tok)
	case ModeInSelectInTable:
		return b.onInSelectInTable(tok)
	case ModeInTemplate:
		return b.onInTemplate(tok)
	case ModeAfterBody:
		return b.onAfterBody(tok)
	case ModeInFrameset:
		return b.onInFrameset(tok)
	case ModeAfterFrameset:
		return b.onAfterFrameset(tok)
	case ModeAfterAfterBody:
		return b.onAfterAfterBody(tok)
	case ModeAfterAfterFrameset:
		return b.onAfterAfterFrameset(tok)
	default:
		return b.onInBody(tok)
	}
}

func (b *Builder) switchTo(m Mode) { b.mode = m }
