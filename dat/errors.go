package dat

import "golang.org/x/xerrors"

// Errors returned at dat's exported API boundary. Internal invariant
// violations (the trie's own bookkeeping broken, not bad caller input) use
// Assert instead and panic.
var (
	ErrOutOfRange       = xerrors.New("dat: index would exceed the maximum trie size")
	ErrNegativeValue    = xerrors.New("dat: value must be non-negative")
	ErrEmptyKey         = xerrors.New("dat: key must not be empty")
	ErrShortBuffer      = xerrors.New("dat: encoded buffer is too short")
	ErrLengthMismatch   = xerrors.New("dat: encoded cell count does not match buffer length")
	ErrKeyCountMismatch = xerrors.New("dat: encoded key count does not match the decoded header cell")
)

// Assert panics with a formatted message when cond is false. It is reserved
// for conditions that indicate a bug in this package's own bookkeeping —
// never for validating caller-supplied input.
func Assert(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(xerrors.Errorf(format, args...))
	}
}
