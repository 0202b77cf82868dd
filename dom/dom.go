// Package dom implements component C8 of the spec: the node-adapter trait
// the tree builder consumes (spec.md §6) plus a concrete in-memory tree
// that satisfies it. The trait itself is the thing original_source's
// simple_node.hpp/simple_parser.hpp gesture at but leave partially
// unimplemented (several methods are empty bodies, e.g. temp(),
// create_document_fragment()); this package completes both sides.
package dom

import "github.com/wordring/htmlx/atom"

// Handle is an opaque reference to a node. The tree builder holds only
// handles, never a concrete node type (spec.md §3, "the parser holds
// handles only").
type Handle int

// NoHandle is the zero value of Handle and means "no node" (a nil parent,
// an absent next sibling, a missing head pointer, ...).
const NoHandle Handle = 0

// Kind identifies which variant a node is.
type Kind int

const (
	KindDocument Kind = iota
	KindDocumentFragment
	KindElement
	KindText
	KindComment
	KindDocumentType
)

// Position names an insertion point: the last child of Parent if Before is
// NoHandle, otherwise the child immediately before Before. This is the Go
// shape of spec.md §6's "insert(pos, node)" — pos is itself a (parent,
// reference-child) pair, the adapter-trait analogue of DOM's
// insertBefore(parent, node, child).
type Position struct {
	Parent Handle
	Before Handle
}

// NodeOps is the capability trait spec.md §6 specifies: every method is
// synchronous and infallible, matching the table verbatim modulo Go's
// handle/interface idiom replacing C++ references and CRTP.
type NodeOps interface {
	// Document returns the root document node.
	Document() Handle

	// CreateElement creates a detached element node. name is the token's
	// raw tag name (used verbatim for TagUnknown/custom elements); id is
	// atom.TagUnknown when name has no atom.
	CreateElement(id atom.TagID, name, namespace, prefix string) Handle
	// CreateText creates a detached text node holding a single code point.
	CreateText(cp rune) Handle
	// AppendText extends an existing text node with one more code point
	// (the tree builder's "append to the last child if it is a text node"
	// coalescing, spec.md §6).
	AppendText(h Handle, cp rune)
	// CreateComment creates a detached comment node.
	CreateComment(data string) Handle
	// CreateDocumentType creates a detached doctype node.
	CreateDocumentType(name, publicID, systemID string) Handle
	// CreateDocumentFragment creates a detached document-fragment node,
	// used for <template> content (spec.md §9 calls this out as an empty
	// body in the reference source; this module wires it in full).
	CreateDocumentFragment() Handle

	// Insert places node at pos and returns the handle that now holds its
	// content: node itself, or the adjacent text node a text node was
	// merged into.
	Insert(pos Position, node Handle) Handle
	// Move relocates an already-inserted subtree to pos.
	Move(pos Position, h Handle)
	// Erase deletes h and its subtree from wherever it is attached.
	Erase(h Handle)

	Parent(h Handle) Handle
	FirstChild(h Handle) Handle
	NextSibling(h Handle) Handle
	PrevSibling(h Handle) Handle

	// NamespaceURI and LocalName are identifier accessors; meaningless
	// (return "") for non-element kinds.
	NamespaceURI(h Handle) string
	LocalName(h Handle) string
	// TagID returns the element's resolved atom, or atom.TagUnknown.
	TagID(h Handle) atom.TagID

	// SetAttr sets (or, for a name already present, leaves unchanged —
	// callers check first when "add missing attributes" semantics apply)
	// one attribute on an element.
	SetAttr(h Handle, namespace, prefix, name, value string)
	HasAttr(h Handle, name string) bool
	// Attrs returns an element's attributes in insertion order.
	Attrs(h Handle) []Attr

	// SetDocument associates doc as h's owning document (used when moving
	// a node across document boundaries is never needed here, but the
	// trait is carried per spec.md §6's table).
	SetDocument(h, doc Handle)
	// SetNonBlocking and SetAlreadyStarted are script-element metadata
	// flags the tree builder sets per the standard's "prepare a script"
	// stub (spec.md's script execution Non-goal: the flags are tracked,
	// the script never actually runs).
	SetNonBlocking(h Handle, v bool)
	SetAlreadyStarted(h Handle, v bool)

	// Equals is the structural-equality check the active formatting list's
	// Noah's-Ark rule depends on: same tag, same namespace, same attribute
	// set (spec.md §4.5).
	Equals(h1, h2 Handle) bool

	IsText(h Handle) bool
	IsElement(h Handle) bool
	IsComment(h Handle) bool
	IsDocumentType(h Handle) bool
	IsDocument(h Handle) bool

	// TextData returns a text node's accumulated code points as a string,
	// or "" for non-text nodes.
	TextData(h Handle) string
}

// Attr is one element attribute as the adapter stores it (the dom-side
// counterpart of token.Attribute, without the tokenizer's transient
// duplicate-tracking state).
type Attr struct {
	Namespace string
	Prefix    string
	Name      string
	Value     string
}
