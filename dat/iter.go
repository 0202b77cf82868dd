package dat

// Iter references a state in a Trie: either a real cell (index >= 1) or the
// End sentinel (index == 0), used to mean "not found" or "no more
// siblings".
type Iter struct {
	t     *Trie
	index int
}

// IsEnd reports whether it is the End sentinel.
func (it Iter) IsEnd() bool { return it.t == nil || it.index == 0 }

// Terminal reports whether it marks the end of a stored key: either it has
// no children at all (its value lives at the state itself), or it has a
// null-label child carrying the value for the shorter key that ends here.
func (it Iter) Terminal() bool {
	if it.IsEnd() || it.index <= 1 {
		return false
	}
	base := int(it.t.heap.cells[it.index].Base)
	if base <= 0 {
		return true
	}
	return it.t.heap.hasNullTransition(it.index)
}

// Label returns the byte that labels the transition from it's parent to it.
// It panics if it is the root or End.
func (it Iter) Label() byte {
	Assert(!it.IsEnd() && it.index > 1, "dat: Label called on root or End iterator")
	parent := int(it.t.heap.cells[it.index].Check)
	base := int(it.t.heap.cells[parent].Base)
	return byte(it.index - base)
}

// Parent returns the iterator's parent state and true, or a zero Iter and
// false if it is the root or End.
func (it Iter) Parent() (Iter, bool) {
	if it.IsEnd() || it.index <= 1 {
		return Iter{}, false
	}
	return Iter{t: it.t, index: int(it.t.heap.cells[it.index].Check)}, true
}

// Child returns the child of it reached via label, or End if there is none.
func (it Iter) Child(label byte) Iter {
	if it.IsEnd() {
		return Iter{t: it.t}
	}
	idx := it.t.heap.at(it.index, Label(label))
	if idx == 0 {
		return Iter{t: it.t}
	}
	return Iter{t: it.t, index: idx}
}

// Begin returns it's first real (byte-labelled) child in ascending label
// order, or End if it has none. The null-value transition, if present, is
// not a byte-path child and is never produced by Begin/Next.
func (it Iter) Begin() Iter {
	if it.IsEnd() {
		return Iter{t: it.t}
	}
	base := int(it.t.heap.cells[it.index].Base)
	if base <= 0 {
		return Iter{t: it.t}
	}
	limit := base + 256
	if limit > it.t.heap.size() {
		limit = it.t.heap.size()
	}
	for idx := base; idx < limit; idx++ {
		if int(it.t.heap.cells[idx].Check) == it.index {
			return Iter{t: it.t, index: idx}
		}
	}
	return Iter{t: it.t}
}

// Next returns the next sibling of it (in ascending label order) after it,
// or End if it is the last.
func (it Iter) Next() Iter {
	if it.IsEnd() || it.index <= 1 {
		return Iter{t: it.t}
	}
	parent := int(it.t.heap.cells[it.index].Check)
	base := int(it.t.heap.cells[parent].Base)
	limit := base + 256
	if limit > it.t.heap.size() {
		limit = it.t.heap.size()
	}
	for idx := it.index + 1; idx < limit; idx++ {
		if int(it.t.heap.cells[idx].Check) == parent {
			return Iter{t: it.t, index: idx}
		}
	}
	return Iter{t: it.t}
}

// Key reconstructs the byte string that reaches it from the root.
func (it Iter) Key() []byte {
	if it.IsEnd() || it.index <= 1 {
		return nil
	}
	var rev []byte
	for cur := it; cur.index > 1; {
		rev = append(rev, cur.Label())
		parent, ok := cur.Parent()
		if !ok {
			break
		}
		cur = parent
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// value returns the proxy for it's stored value; it must be Terminal.
func (it Iter) value() Value {
	base := int(it.t.heap.cells[it.index].Base)
	if base <= 0 {
		return Value{cell: &it.t.heap.cells[it.index]}
	}
	nullIdx := base + int(NullLabel)
	return Value{cell: &it.t.heap.cells[nullIdx]}
}

// Value is a proxy onto the signed value stored at a terminal cell, which
// is always non-negative and kept negated in the cell's Base field (a
// negative Base with Check > 0 marks "terminal, no further path here").
type Value struct {
	cell *Cell
}

// Get returns the stored value.
func (v Value) Get() int32 { return -v.cell.Base }

// Set stores val, which must be non-negative.
func (v Value) Set(val int32) error {
	if val < 0 {
		return ErrNegativeValue
	}
	v.cell.Base = -val
	return nil
}
