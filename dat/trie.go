package dat

// Trie is a double-array trie mapping byte-string keys to small
// non-negative integer values (component C2 of the spec: the set/map
// façade over the C1 heap).
//
// The zero value is not usable; construct one with New.
type Trie struct {
	heap   *Heap
	before int // locate() hint, carried across add() calls
}

// Option configures a Trie at construction time.
type Option func(*Trie)

// WithCapacity reserves room for at least n cells up front.
func WithCapacity(n int) Option {
	return func(t *Trie) { _ = t.heap.reserve(n) }
}

// New creates an empty Trie.
func New(opts ...Option) *Trie {
	t := &Trie{heap: newHeap()}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Size returns the number of distinct keys currently stored.
func (t *Trie) Size() int { return int(t.heap.cells[0].Base) }

// Empty reports whether the trie holds no keys.
func (t *Trie) Empty() bool { return t.Size() == 0 }

// Clear removes every key, resetting the trie to its New state.
func (t *Trie) Clear() {
	t.heap = newHeap()
	t.before = 0
}

// add reserves (allocating or relocating as needed) cells for labels as
// children of parent, returning the base at which they were placed. The
// caller is responsible for giving each newly-placed label a value once the
// base is known, via At.
func (t *Trie) add(parent int, labels []Label) (int, error) {
	sortLabels(labels)
	base := int(t.heap.cells[parent].Base)
	var newBase int
	var err error
	switch {
	case base <= 0:
		nb, hint := t.heap.locate(labels, t.before)
		if err = t.heap.allocate(nb, labels, t.before); err != nil {
			return 0, err
		}
		newBase, t.before = nb, hint
	case t.heap.isFree(parent, base, labels):
		if err = t.heap.allocate(base, labels, t.before); err != nil {
			return 0, err
		}
		newBase = base
	default:
		newBase, err = t.heap.relocate(parent, base, labels)
		if err != nil {
			return 0, err
		}
	}
	t.heap.cells[parent].Base = int32(newBase)
	for _, l := range labels {
		t.heap.cells[newBase+int(l)].Check = int32(parent)
	}
	return newBase, nil
}

// Insert adds key to the trie, returning an iterator at its terminal state.
// Inserting a key that is already present is a no-op that returns the
// existing terminal. The empty key is never stored.
func (t *Trie) Insert(key []byte) (Iter, error) {
	if len(key) == 0 {
		return Iter{t: t}, ErrEmptyKey
	}
	if it := t.Find(key); !it.IsEnd() {
		return it, nil
	}

	parent := 1
	i := 0
	for i < len(key) {
		idx := t.heap.at(parent, Label(key[i]))
		if idx == 0 {
			break
		}
		parent, i = idx, i+1
	}

	if i == len(key) {
		// The whole key's path already exists as a run of internal states
		// (reached while inserting a longer key earlier); it only lacks a
		// terminal marker.
		if _, err := t.add(parent, []Label{NullLabel}); err != nil {
			return Iter{t: t}, err
		}
	} else {
		if parent > 1 && t.heap.cells[parent].Base <= 0 {
			// parent is currently a leaf terminal for a shorter key that
			// was inserted earlier; it is about to gain a real child, so
			// its value must be preserved behind a null transition first.
			if err := t.preserveLeafValue(parent); err != nil {
				return Iter{t: t}, err
			}
		}
		for ; i < len(key); i++ {
			lbl := Label(key[i])
			base, err := t.add(parent, []Label{lbl})
			if err != nil {
				return Iter{t: t}, err
			}
			parent = base + int(lbl)
		}
	}

	t.heap.cells[0].Base++
	return Iter{t: t, index: parent}, nil
}

// preserveLeafValue converts node from a leaf terminal (value stored
// directly in its Base) into an internal state whose value now lives
// behind a null-label child, so node can safely be given real children.
func (t *Trie) preserveLeafValue(node int) error {
	storedValue := t.heap.cells[node].Base // already negated, as Value keeps it
	base, err := t.add(node, []Label{NullLabel})
	if err != nil {
		return err
	}
	t.heap.cells[base+int(NullLabel)].Base = storedValue
	return nil
}

// Erase removes the key at it, if it is a valid terminal iterator.
func (t *Trie) Erase(it Iter) {
	if it.t != t || it.index <= 1 || !it.Terminal() {
		return
	}
	idx := it.index
	if t.heap.hasNullTransition(idx) {
		nullIdx := int(t.heap.cells[idx].Base) + int(NullLabel)
		t.heap.free(nullIdx)
		if t.heap.hasAnyChild(idx) {
			// idx still branches to longer keys; only the null-value
			// terminal it carried for the shorter key being erased is gone.
			t.heap.cells[0].Base--
			return
		}
		// idx lost its last child: it is now a bare leaf, pruned the same
		// way as the no-null-transition case below.
	}
	for idx > 1 {
		parent := int(t.heap.cells[idx].Check)
		sibling := t.heap.hasSibling(idx)
		t.heap.free(idx)
		if sibling || parent <= 1 {
			break
		}
		if t.heap.hasAnyChild(parent) {
			break
		}
		idx = parent
	}
	t.heap.cells[0].Base--
}

// searchPrefix walks key as far as existing transitions allow, returning
// the deepest state reached and how many bytes of key were consumed.
func (t *Trie) searchPrefix(key []byte) (Iter, int) {
	cur := 1
	i := 0
	for i < len(key) {
		nxt := t.heap.at(cur, Label(key[i]))
		if nxt == 0 {
			break
		}
		cur, i = nxt, i+1
	}
	if cur == 1 {
		return Iter{t: t}, i
	}
	return Iter{t: t, index: cur}, i
}

// Search returns the state reached by walking the whole of key, or End if
// key is not a prefix of any stored key.
func (t *Trie) Search(key []byte) Iter {
	it, n := t.searchPrefix(key)
	if n != len(key) {
		return Iter{t: t}
	}
	return it
}

// SearchPrefix returns the deepest state reachable along key and how many
// leading bytes of key were consumed getting there.
func (t *Trie) SearchPrefix(key []byte) (Iter, int) {
	return t.searchPrefix(key)
}

// Find returns the terminal iterator for key, or End if key is not stored.
func (t *Trie) Find(key []byte) Iter {
	it := t.Search(key)
	if it.IsEnd() || !it.Terminal() {
		return Iter{t: t}
	}
	return it
}

// Contains reports whether key is stored in the trie.
func (t *Trie) Contains(key []byte) bool {
	return !t.Find(key).IsEnd()
}

// End returns the sentinel "not found" / "one past the end" iterator.
func (t *Trie) End() Iter { return Iter{t: t} }

// Root returns an iterator at the trie's root state.
func (t *Trie) Root() Iter { return Iter{t: t, index: 1} }

// At returns a proxy to the value stored at key's terminal state, which
// must already exist (use Find first to check).
func (t *Trie) At(key []byte) (Value, bool) {
	it := t.Find(key)
	if it.IsEnd() {
		return Value{}, false
	}
	return it.value(), true
}

// Keys returns every stored key, in trie (lexicographic-by-label) order.
func (t *Trie) Keys() [][]byte {
	var out [][]byte
	var walk func(it Iter, prefix []byte)
	walk = func(it Iter, prefix []byte) {
		if it.Terminal() {
			out = append(out, append([]byte(nil), prefix...))
		}
		for c := it.Begin(); !c.IsEnd(); c = c.Next() {
			walk(c, append(prefix, c.Label()))
		}
	}
	walk(t.Root(), nil)
	return out
}
