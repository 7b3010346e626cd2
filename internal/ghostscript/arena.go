// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ghostscript

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/text/encoding"
)

// argArena owns the NUL-terminated copies of an argument vector for the
// length of one native call. Every buffer and the pointer array itself stay
// pinned until Release.
type argArena struct {
	pinner runtime.Pinner
	bufs   [][]byte
	argv   []*byte
}

// newArgArena copies args into pinned C strings. enc, when non-nil, converts
// each argument to the interpreter's byte encoding first.
func newArgArena(args []string, enc *encoding.Encoder) (*argArena, error) {
	a := &argArena{
		bufs: make([][]byte, 0, len(args)),
		argv: make([]*byte, len(args)+1),
	}
	for i, s := range args {
		if strings.IndexByte(s, 0) >= 0 {
			a.Release()
			return nil, fmt.Errorf("argument %d: %w", i, ErrInvalidArgument)
		}
		b := []byte(s)
		if enc != nil {
			var err error
			if b, err = enc.Bytes(b); err != nil {
				a.Release()
				return nil, fmt.Errorf("encoding argument %d: %w", i, err)
			}
		}
		b = append(b, 0)
		a.pinner.Pin(&b[0])
		a.bufs = append(a.bufs, b)
		a.argv[i] = &b[0]
	}
	// argv[len(args)] stays nil, matching the C convention.
	a.pinner.Pin(&a.argv[0])
	return a, nil
}

// Argc is the argument count excluding the trailing nil.
func (a *argArena) Argc() int { return len(a.bufs) }

// Argv returns the pinned pointer array, nil-terminated.
func (a *argArena) Argv() []*byte { return a.argv }

// Release unpins every buffer. The arena must not be used afterwards.
func (a *argArena) Release() {
	a.pinner.Unpin()
	a.bufs = nil
	a.argv = nil
}
