// Package atom builds the compile-time-populated lookup tables (component
// C4 of the spec) that the tokenizer and tree builder consult instead of
// string-comparing tag, attribute, and entity names on the hot path: tag
// name atoms, attribute name atoms, and the named-character-reference
// table, each backed by a github.com/wordring/htmlx/dat.Trie populated once
// in an init function and never mutated afterward (spec.md §5, "no global
// mutable state other than the compile-time atom tables").
package atom
