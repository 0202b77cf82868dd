package dat

import "encoding/binary"

// MarshalBinary encodes t as: a 4-byte big-endian key count, a 4-byte
// big-endian cell count, then that many (base, check) pairs, each a 4-byte
// big-endian int32. It implements encoding.BinaryMarshaler.
func (t *Trie) MarshalBinary() ([]byte, error) {
	n := t.heap.size()
	buf := make([]byte, 8+8*n)
	binary.BigEndian.PutUint32(buf[0:4], uint32(t.Size()))
	binary.BigEndian.PutUint32(buf[4:8], uint32(n))
	off := 8
	for _, c := range t.heap.cells {
		binary.BigEndian.PutUint32(buf[off:off+4], uint32(c.Base))
		binary.BigEndian.PutUint32(buf[off+4:off+8], uint32(c.Check))
		off += 8
	}
	return buf, nil
}

// UnmarshalBinary decodes data produced by MarshalBinary, replacing t's
// contents. On failure t is cleared and an error is returned.
func (t *Trie) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		t.Clear()
		return ErrShortBuffer
	}
	keyCount := binary.BigEndian.Uint32(data[0:4])
	cells, err := decodeCells(data)
	if err != nil {
		t.Clear()
		return err
	}
	if len(cells) == 0 || uint32(cells[0].Base) != keyCount {
		t.Clear()
		return ErrKeyCountMismatch
	}
	h := &Heap{cells: cells}
	h.rebuildFreeList()
	t.heap = h
	t.before = 0
	return nil
}

func decodeCells(data []byte) ([]Cell, error) {
	if len(data) < 8 {
		return nil, ErrShortBuffer
	}
	cellCount := binary.BigEndian.Uint32(data[4:8])
	want := 8 + 8*int(cellCount)
	if len(data) != want {
		return nil, ErrLengthMismatch
	}
	cells := make([]Cell, cellCount)
	off := 8
	for i := range cells {
		cells[i].Base = int32(binary.BigEndian.Uint32(data[off : off+4]))
		cells[i].Check = int32(binary.BigEndian.Uint32(data[off+4 : off+8]))
		off += 8
	}
	return cells, nil
}

// EncodeWords encodes t as a sequence of uint32 words: key count, cell
// count, then base/check interleaved one word per field — the word-oriented
// counterpart to MarshalBinary, for callers that keep tries in
// word-addressed storage rather than raw byte streams.
func (t *Trie) EncodeWords() []uint32 {
	n := t.heap.size()
	words := make([]uint32, 2+2*n)
	words[0] = uint32(t.Size())
	words[1] = uint32(n)
	for i, c := range t.heap.cells {
		words[2+2*i] = uint32(c.Base)
		words[2+2*i+1] = uint32(c.Check)
	}
	return words
}

// DecodeWords is the word-oriented counterpart to UnmarshalBinary.
func (t *Trie) DecodeWords(words []uint32) error {
	if len(words) < 2 {
		t.Clear()
		return ErrShortBuffer
	}
	keyCount := words[0]
	cellCount := int(words[1])
	if len(words) != 2+2*cellCount {
		t.Clear()
		return ErrLengthMismatch
	}
	cells := make([]Cell, cellCount)
	for i := range cells {
		cells[i].Base = int32(words[2+2*i])
		cells[i].Check = int32(words[2+2*i+1])
	}
	if len(cells) == 0 || uint32(cells[0].Base) != keyCount {
		t.Clear()
		return ErrKeyCountMismatch
	}
	h := &Heap{cells: cells}
	h.rebuildFreeList()
	t.heap = h
	t.before = 0
	return nil
}
