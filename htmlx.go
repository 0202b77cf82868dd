// Package htmlx is the module's façade: Parse and ParseFragment wire the
// input stream (C5), tokenizer (C6), tree builder (C7), and the default
// in-memory dom.Tree (C8) together into the two entry points the HTML
// Living Standard specifies (spec.md §2, §4.5's fragment-parsing algorithm).
package htmlx

import (
	"io"

	"github.com/wordring/htmlx/dom"
	"github.com/wordring/htmlx/input"
	"github.com/wordring/htmlx/token"
	"github.com/wordring/htmlx/tree"
)

// EncodingConfidence mirrors input.Confidence at the façade layer so
// callers never need to import the input package directly.
type EncodingConfidence = input.Confidence

const (
	EncodingTentative  = input.ConfidenceTentative
	EncodingCertain    = input.ConfidenceCertain
	EncodingIrrelevant = input.ConfidenceIrrelevant
)

// ParseError is one parse error encountered during tokenization or tree
// construction, collected rather than raised (spec.md §7's ReportFunc
// callback turned into a slice for the façade's simpler synchronous API).
type ParseError struct {
	Name token.ErrorName
}

// Option configures Parse/ParseFragment.
type Option struct {
	scripting    bool
	encodingHint string
}

// WithScripting enables the scripting flag, routing <noscript> content into
// RAWTEXT instead of being parsed as markup (spec.md §4.5).
func WithScripting(v bool) Option { return Option{scripting: v} }

// WithEncodingHint supplies a declared/sniffed character encoding label
// (e.g. from a Content-Type header) used when the byte stream carries no
// BOM (spec.md §3, §9's encoding-sniffing path).
func WithEncodingHint(name string) Option { return Option{encodingHint: name} }

func mergeOptions(opts []Option) Option {
	var m Option
	for _, o := range opts {
		if o.scripting {
			m.scripting = true
		}
		if o.encodingHint != "" {
			m.encodingHint = o.encodingHint
		}
	}
	return m
}

// Result is the outcome of a full-document Parse (ParseFragment returns a
// FragmentResult instead).
type Result struct {
	// Tree is the concrete node store the document was built in.
	Tree *dom.Tree
	// Document is Tree's root document node.
	Document dom.Handle
	// Errors is every parse error encountered, in emission order.
	Errors []ParseError
	// Quirks is the document's quirks-mode classification.
	Quirks tree.QuirksMode
	// EncodingName is the name of the character encoding the input stream
	// settled on (spec.md §3's "encoding confidence").
	EncodingName string
	// EncodingConfidence is that encoding's confidence flag: certain when
	// the input starts with a BOM or a meta-charset declaration is adopted,
	// otherwise tentative (a caller-supplied hint alone leaves it tentative).
	EncodingConfidence EncodingConfidence
}

// Parse runs the full HTML Living Standard parsing algorithm over r,
// producing a dom.Tree rooted at Result.Document (spec.md §2).
func Parse(r io.Reader, opts ...Option) *Result {
	o := mergeOptions(opts)
	res := &Result{Tree: dom.NewTree()}

	onErr := func(name token.ErrorName) {
		res.Errors = append(res.Errors, ParseError{Name: name})
	}

	in := input.NewStream(r, o.encodingHint, onErr)

	var tOpts []tree.Option
	if o.scripting {
		tOpts = append(tOpts, tree.WithScripting(true))
	}
	b := tree.NewBuilder(res.Tree, in, onErr, tOpts...)
	b.Run()

	res.Document = res.Tree.Document()
	res.Quirks = b.QuirksMode()
	res.EncodingName = in.EncodingName()
	res.EncodingConfidence = in.Confidence()
	return res
}

// FragmentResult is the outcome of ParseFragment.
type FragmentResult struct {
	Tree   *dom.Tree
	Nodes  []dom.Handle
	Errors []ParseError
}

// ParseFragment runs the HTML Living Standard's fragment-parsing algorithm
// over r, treating ctx as the context element (spec.md §4.5). A nil ctx
// seeds no context element: parsing starts in the before-head insertion
// mode under a bare html element, and Nodes holds that element's children.
func ParseFragment(r io.Reader, ctx *tree.FragmentContext, opts ...Option) *FragmentResult {
	o := mergeOptions(opts)
	res := &FragmentResult{Tree: dom.NewTree()}

	onErr := func(name token.ErrorName) {
		res.Errors = append(res.Errors, ParseError{Name: name})
	}

	in := input.NewStream(r, o.encodingHint, onErr)

	var tOpts []tree.Option
	if o.scripting {
		tOpts = append(tOpts, tree.WithScripting(true))
	}
	b := tree.NewFragmentBuilder(res.Tree, in, onErr, ctx, tOpts...)
	b.Run()

	res.Nodes = b.FragmentNodes()
	return res
}
