package dom

import "github.com/wordring/htmlx/atom"

type node struct {
	kind Kind

	// Element / DocumentType
	tagID     atom.TagID
	name      string
	namespace string
	prefix    string
	attrs     []Attr

	// Text / Comment
	text string

	// DocumentType
	publicID string
	systemID string

	// script element flags (spec.md §5's "Flags")
	nonBlocking    bool
	alreadyStarted bool

	// template content, lazily created by the tree builder via
	// CreateDocumentFragment + an explicit association the builder keeps
	// itself (spec.md's node adapter does not prescribe template storage).

	parent   Handle
	children []Handle
}

// Tree is the default C8 adapter: a handle-addressed slice of nodes rooted
// at a synthetic document node (handle 1; handle 0, Handle's zero value, is
// reserved as NoHandle so every real node has a non-zero handle — the same
// "index 0 is a sentinel" convention dat.Heap uses for its own cell 0).
type Tree struct {
	nodes []node
	doc   Handle
}

// NewTree constructs a Tree containing only its document node.
func NewTree() *Tree {
	t := &Tree{nodes: make([]node, 1)} // nodes[0] is an unused placeholder so handles are 1-based
	h := t.alloc(node{kind: KindDocument})
	t.doc = h
	return t
}

func (t *Tree) alloc(n node) Handle {
	t.nodes = append(t.nodes, n)
	return Handle(len(t.nodes) - 1)
}

func (t *Tree) at(h Handle) *node {
	if h == NoHandle || int(h) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[h]
}

func (t *Tree) Document() Handle { return t.doc }

func (t *Tree) CreateElement(id atom.TagID, name, namespace, prefix string) Handle {
	return t.alloc(node{kind: KindElement, tagID: id, name: name, namespace: namespace, prefix: prefix})
}

func (t *Tree) CreateText(cp rune) Handle {
	return t.alloc(node{kind: KindText, text: string(cp)})
}

func (t *Tree) AppendText(h Handle, cp rune) {
	n := t.at(h)
	if n == nil {
		return
	}
	n.text += string(cp)
}

func (t *Tree) CreateComment(data string) Handle {
	return t.alloc(node{kind: KindComment, text: data})
}

func (t *Tree) CreateDocumentType(name, publicID, systemID string) Handle {
	return t.alloc(node{kind: KindDocumentType, name: name, publicID: publicID, systemID: systemID})
}

func (t *Tree) CreateDocumentFragment() Handle {
	return t.alloc(node{kind: KindDocumentFragment})
}

func (t *Tree) detach(h Handle) {
	n := t.at(h)
	if n == nil || n.parent == NoHandle {
		return
	}
	p := t.at(n.parent)
	for i, c := range p.children {
		if c == h {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = NoHandle
}

func (t *Tree) Insert(pos Position, h Handle) Handle {
	t.detach(h)
	n := t.at(h)
	p := t.at(pos.Parent)
	if n == nil || p == nil {
		return h
	}
	n.parent = pos.Parent
	if pos.Before == NoHandle {
		if last := t.lastTextChild(pos.Parent); last != NoHandle && t.IsText(h) {
			t.at(last).text += n.text
			n.parent = NoHandle
			t.truncate(h)
			return last
		}
		p.children = append(p.children, h)
		return h
	}
	idx := t.childIndex(pos.Parent, pos.Before)
	if idx < 0 {
		p.children = append(p.children, h)
		return h
	}
	if t.IsText(h) {
		if idx > 0 {
			if prev := p.children[idx-1]; t.IsText(prev) {
				t.at(prev).text += n.text
				n.parent = NoHandle
				t.truncate(h)
				return prev
			}
		}
		if t.IsText(pos.Before) {
			t.at(pos.Before).text = n.text + t.at(pos.Before).text
			n.parent = NoHandle
			t.truncate(h)
			return pos.Before
		}
	}
	p.children = append(p.children, NoHandle)
	copy(p.children[idx+1:], p.children[idx:])
	p.children[idx] = h
	return h
}

// truncate marks a merged-away text node's handle dead by clearing it; the
// handle is never reused (matching spec.md §3's "nodes are created via the
// adapter; the parser holds handles only" — a stale handle simply never
// appears in the tree again).
func (t *Tree) truncate(h Handle) {
	n := t.at(h)
	if n != nil {
		n.text = ""
	}
}

func (t *Tree) lastTextChild(parent Handle) Handle {
	p := t.at(parent)
	if p == nil || len(p.children) == 0 {
		return NoHandle
	}
	last := p.children[len(p.children)-1]
	if t.IsText(last) {
		return last
	}
	return NoHandle
}

func (t *Tree) childIndex(parent, child Handle) int {
	p := t.at(parent)
	if p == nil {
		return -1
	}
	for i, c := range p.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (t *Tree) Move(pos Position, h Handle) { t.Insert(pos, h) }

func (t *Tree) Erase(h Handle) { t.detach(h) }

func (t *Tree) Parent(h Handle) Handle {
	n := t.at(h)
	if n == nil {
		return NoHandle
	}
	return n.parent
}

func (t *Tree) FirstChild(h Handle) Handle {
	n := t.at(h)
	if n == nil || len(n.children) == 0 {
		return NoHandle
	}
	return n.children[0]
}

func (t *Tree) NextSibling(h Handle) Handle {
	n := t.at(h)
	if n == nil || n.parent == NoHandle {
		return NoHandle
	}
	idx := t.childIndex(n.parent, h)
	p := t.at(n.parent)
	if idx < 0 || idx+1 >= len(p.children) {
		return NoHandle
	}
	return p.children[idx+1]
}

func (t *Tree) PrevSibling(h Handle) Handle {
	n := t.at(h)
	if n == nil || n.parent == NoHandle {
		return NoHandle
	}
	idx := t.childIndex(n.parent, h)
	p := t.at(n.parent)
	if idx <= 0 {
		return NoHandle
	}
	return p.children[idx-1]
}

func (t *Tree) NamespaceURI(h Handle) string {
	n := t.at(h)
	if n == nil {
		return ""
	}
	return n.namespace
}

func (t *Tree) LocalName(h Handle) string {
	n := t.at(h)
	if n == nil {
		return ""
	}
	return n.name
}

func (t *Tree) TagID(h Handle) atom.TagID {
	n := t.at(h)
	if n == nil {
		return atom.TagUnknown
	}
	return n.tagID
}

func (t *Tree) SetAttr(h Handle, namespace, prefix, name, value string) {
	n := t.at(h)
	if n == nil {
		return
	}
	for i := range n.attrs {
		if n.attrs[i].Namespace == namespace && n.attrs[i].Name == name {
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Namespace: namespace, Prefix: prefix, Name: name, Value: value})
}

func (t *Tree) HasAttr(h Handle, name string) bool {
	n := t.at(h)
	if n == nil {
		return false
	}
	for _, a := range n.attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

func (t *Tree) Attrs(h Handle) []Attr {
	n := t.at(h)
	if n == nil {
		return nil
	}
	return n.attrs
}

func (t *Tree) SetDocument(h, doc Handle) {
	n := t.at(h)
	if n != nil {
		n.parent = doc
	}
}

func (t *Tree) SetNonBlocking(h Handle, v bool) {
	if n := t.at(h); n != nil {
		n.nonBlocking = v
	}
}

func (t *Tree) SetAlreadyStarted(h Handle, v bool) {
	if n := t.at(h); n != nil {
		n.alreadyStarted = v
	}
}

func (t *Tree) Equals(h1, h2 Handle) bool {
	a, b := t.at(h1), t.at(h2)
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind || a.tagID != b.tagID || a.name != b.name || a.namespace != b.namespace {
		return false
	}
	if len(a.attrs) != len(b.attrs) {
		return false
	}
	for _, av := range a.attrs {
		found := false
		for _, bv := range b.attrs {
			if av.Namespace == bv.Namespace && av.Name == bv.Name && av.Value == bv.Value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (t *Tree) IsText(h Handle) bool {
	n := t.at(h)
	return n != nil && n.kind == KindText
}

func (t *Tree) IsElement(h Handle) bool {
	n := t.at(h)
	return n != nil && n.kind == KindElement
}

func (t *Tree) IsComment(h Handle) bool {
	n := t.at(h)
	return n != nil && n.kind == KindComment
}

func (t *Tree) IsDocumentType(h Handle) bool {
	n := t.at(h)
	return n != nil && n.kind == KindDocumentType
}

func (t *Tree) IsDocument(h Handle) bool {
	n := t.at(h)
	return n != nil && n.kind == KindDocument
}

func (t *Tree) TextData(h Handle) string {
	n := t.at(h)
	if n == nil {
		return ""
	}
	return n.text
}

// Children returns h's children handles, in order. Not part of NodeOps (the
// tree builder never needs a full children slice); exported for callers
// that walk the finished tree (tests, a future serializer).
func (t *Tree) Children(h Handle) []Handle {
	n := t.at(h)
	if n == nil {
		return nil
	}
	return append([]Handle(nil), n.children...)
}

// Kind exposes a node's Kind for callers walking the finished tree.
func (t *Tree) Kind(h Handle) Kind {
	n := t.at(h)
	if n == nil {
		return KindDocument
	}
	return n.kind
}

// CommentData returns a comment node's data (TextData aliases for Text; this
// accessor makes intent explicit at call sites that check IsComment first).
func (t *Tree) CommentData(h Handle) string { return t.TextData(h) }

// DocumentTypeInfo returns a doctype node's name/public/system identifiers.
func (t *Tree) DocumentTypeInfo(h Handle) (name, publicID, systemID string) {
	n := t.at(h)
	if n == nil {
		return "", "", ""
	}
	return n.name, n.publicID, n.systemID
}
