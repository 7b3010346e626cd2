// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ghostscript binds the native interpreter library and drives one
// interpreter session at a time.
// Implements: docs/ARCHITECTURE § Interpreter Session.
//
// The library is loaded with purego, so no C toolchain is needed. The
// library supports a single live instance per process; conversions must run
// their sessions inside ProcessGuard().Do.
package ghostscript

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"

	"github.com/pdiddy/gsconvert/internal/stdio"
	"github.com/pdiddy/gsconvert/pkg/types"
)

// Library is a loaded interpreter library.
type Library struct {
	mu     sync.Mutex
	path   string
	handle uintptr
	native *nativeAPI
	enc    encoding.Encoding
	log    zerolog.Logger
}

// Open locates and loads the interpreter library described by cfg.
func Open(cfg types.EngineConfig, log zerolog.Logger) (*Library, error) {
	enc, err := stdio.ResolveEncoding(cfg.Encoding)
	if err != nil {
		return nil, fmt.Errorf("engine encoding: %w", err)
	}

	path, handle, err := locate(cfg, defaultLoader, runtime.GOOS)
	if err != nil {
		return nil, err
	}

	native, err := bindNative(handle)
	if err != nil {
		if cerr := closeLibrary(handle); cerr != nil {
			log.Warn().Err(cerr).Str("path", path).Msg("closing library")
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Debug().Str("path", path).Msg("interpreter library loaded")
	return &Library{path: path, handle: handle, native: native, enc: enc, log: log}, nil
}

// Path returns the file the library was loaded from.
func (l *Library) Path() string { return l.path }

// Encoding returns the text encoding of the library's streams; nil is UTF-8.
func (l *Library) Encoding() encoding.Encoding { return l.enc }

// Revision queries the library's version information. It does not need an
// interpreter instance.
func (l *Library) Revision() (types.Revision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.native == nil {
		return types.Revision{}, fmt.Errorf("revision: library closed")
	}
	return l.native.revision()
}

// NewSession returns a session bound to this library.
func (l *Library) NewSession() *Session {
	var enc *encoding.Encoder
	if l.enc != nil {
		enc = l.enc.NewEncoder()
	}
	return newSession(l.native, enc, l.log)
}

// Execute runs args in a fresh session with sink receiving the streams. The
// caller must hold the process guard.
func (l *Library) Execute(args []string, sink Sink) (ReturnCode, error) {
	l.mu.Lock()
	closed := l.native == nil
	l.mu.Unlock()
	if closed {
		return Classify(CodeLibraryLoadFailed), fmt.Errorf("execute: %w: library closed", ErrLibraryLoad)
	}
	return l.NewSession().Execute(args, sink)
}

// Close unloads the library. Sessions must not be used afterwards.
func (l *Library) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.native == nil {
		return nil
	}
	l.native = nil
	if err := closeLibrary(l.handle); err != nil {
		return fmt.Errorf("closing %s: %w", l.path, err)
	}
	return nil
}
