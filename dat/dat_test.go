package dat

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertAll(t *testing.T, tr *Trie, keys ...string) {
	t.Helper()
	for _, k := range keys {
		_, err := tr.Insert([]byte(k))
		require.NoError(t, err)
	}
}

func TestInsertContainsFind(t *testing.T) {
	tr := New()
	insertAll(t, tr, "tea", "ted", "ten", "inn", "in")

	for _, k := range []string{"tea", "ted", "ten", "inn", "in"} {
		assert.True(t, tr.Contains([]byte(k)), "expected %q to be stored", k)
		it := tr.Find([]byte(k))
		require.False(t, it.IsEnd())
		assert.Equal(t, k, string(it.Key()))
	}
	for _, k := range []string{"te", "i", "tenant", "inns", ""} {
		assert.False(t, tr.Contains([]byte(k)), "did not expect %q to be stored", k)
	}
	assert.Equal(t, 5, tr.Size())
}

func TestInsertIsIdempotent(t *testing.T) {
	tr := New()
	first, err := tr.Insert([]byte("cat"))
	require.NoError(t, err)
	second, err := tr.Insert([]byte("cat"))
	require.NoError(t, err)
	assert.Equal(t, first.Key(), second.Key())
	assert.Equal(t, 1, tr.Size())
}

func TestEmptyKeyRejected(t *testing.T) {
	tr := New()
	_, err := tr.Insert(nil)
	assert.ErrorIs(t, err, ErrEmptyKey)
	assert.Equal(t, 0, tr.Size())
}

func TestInsertPrefixOfExistingKey(t *testing.T) {
	tr := New()
	insertAll(t, tr, "inn")
	insertAll(t, tr, "in") // "in" is a strict prefix of the already-stored "inn"
	assert.True(t, tr.Contains([]byte("in")))
	assert.True(t, tr.Contains([]byte("inn")))
	assert.Equal(t, 2, tr.Size())
}

func TestInsertKeyExtendingExisting(t *testing.T) {
	tr := New()
	insertAll(t, tr, "in")
	insertAll(t, tr, "inn") // extends a key that was already terminal
	assert.True(t, tr.Contains([]byte("in")))
	assert.True(t, tr.Contains([]byte("inn")))
	assert.Equal(t, 2, tr.Size())
}

func TestDuplicateInsertDoesNotDoubleCount(t *testing.T) {
	tr := New()
	insertAll(t, tr, "tea", "tea", "tea")
	assert.Equal(t, 1, tr.Size())
}

func TestEraseRemovesKeyOnly(t *testing.T) {
	tr := New()
	insertAll(t, tr, "tea", "ted", "in")
	it := tr.Find([]byte("ted"))
	require.False(t, it.IsEnd())
	tr.Erase(it)

	assert.False(t, tr.Contains([]byte("ted")))
	assert.True(t, tr.Contains([]byte("tea")))
	assert.True(t, tr.Contains([]byte("in")))
	assert.Equal(t, 2, tr.Size())
}

func TestEraseOfShortPrefixKeepsLongerKey(t *testing.T) {
	tr := New()
	insertAll(t, tr, "in", "inn")
	tr.Erase(tr.Find([]byte("in")))

	assert.False(t, tr.Contains([]byte("in")))
	assert.True(t, tr.Contains([]byte("inn")))
	assert.Equal(t, 1, tr.Size())
}

func TestKeysVisitsEachStoredKeyExactlyOnce(t *testing.T) {
	tr := New()
	want := []string{"a", "ab", "abc", "abd", "b", "ba"}
	insertAll(t, tr, want...)

	got := make([]string, 0, len(want))
	for _, k := range tr.Keys() {
		got = append(got, string(k))
	}
	sort.Strings(got)
	sort.Strings(want)
	assert.Equal(t, want, got)
}

func TestValueRoundTrip(t *testing.T) {
	tr := New()
	_, err := tr.Insert([]byte("x"))
	require.NoError(t, err)
	v, ok := tr.At([]byte("x"))
	require.True(t, ok)
	require.NoError(t, v.Set(42))
	v2, ok := tr.At([]byte("x"))
	require.True(t, ok)
	assert.Equal(t, int32(42), v2.Get())
}

func TestValueRejectsNegative(t *testing.T) {
	tr := New()
	_, err := tr.Insert([]byte("x"))
	require.NoError(t, err)
	v, _ := tr.At([]byte("x"))
	assert.ErrorIs(t, v.Set(-1), ErrNegativeValue)
}

func TestBinaryRoundTrip(t *testing.T) {
	tr := New()
	insertAll(t, tr, "tea", "ted", "ten", "inn", "in", "A", "to", "i")

	data, err := tr.MarshalBinary()
	require.NoError(t, err)

	decoded := New()
	require.NoError(t, decoded.UnmarshalBinary(data))

	assert.Equal(t, tr.Size(), decoded.Size())
	for _, k := range tr.Keys() {
		assert.True(t, decoded.Contains(k))
	}

	data2, err := decoded.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, data, data2, "re-encoding a decoded trie must be bit-exact")
}

func TestWordsRoundTrip(t *testing.T) {
	tr := New()
	insertAll(t, tr, "tea", "ted", "ten", "inn", "in")

	words := tr.EncodeWords()
	decoded := New()
	require.NoError(t, decoded.DecodeWords(words))
	assert.Equal(t, tr.Size(), decoded.Size())
	for _, k := range tr.Keys() {
		assert.True(t, decoded.Contains(k))
	}
}

func TestUnmarshalBinaryRejectsShortBuffer(t *testing.T) {
	tr := New()
	err := tr.UnmarshalBinary([]byte{0, 0})
	assert.ErrorIs(t, err, ErrShortBuffer)
	assert.Equal(t, 0, tr.Size(), "trie must be cleared on decode failure")
}

func TestUnmarshalBinaryRejectsLengthMismatch(t *testing.T) {
	tr := New()
	buf := make([]byte, 8+8*3)
	buf[7] = 5 // claims 5 cells but buffer only holds 3
	err := tr.UnmarshalBinary(buf)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestClearResetsTrie(t *testing.T) {
	tr := New()
	insertAll(t, tr, "a", "b", "c")
	tr.Clear()
	assert.Equal(t, 0, tr.Size())
	assert.True(t, tr.Empty())
	assert.False(t, tr.Contains([]byte("a")))
}
