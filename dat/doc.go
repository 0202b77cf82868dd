// Package dat implements a double-array trie: a compact associative array
// keyed by byte strings, stored as two parallel int32 arrays (base, check)
// per the classic Aoe double-array construction. It underlies the atom
// tables used by the HTML tokenizer and tree builder.
package dat
