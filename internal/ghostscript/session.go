// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ghostscript

import (
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
)

// State is a session's position in its lifecycle. Transitions only move
// forward; StateDeleted is terminal.
type State int

const (
	StateCreated State = iota
	StateInstanceAllocated
	StateStdioBound
	StateRunning
	StateExited
	StateDeleted
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateInstanceAllocated:
		return "instance_allocated"
	case StateStdioBound:
		return "stdio_bound"
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	case StateDeleted:
		return "deleted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// api is the set of native entry points a session drives. The production
// implementation is backed by the loaded library; tests inject a fake.
type api interface {
	newInstance(caller uintptr) (instance uintptr, code int)
	setStdio(instance uintptr) int
	initWithArgs(instance uintptr, argc int, argv []*byte) int
	exit(instance uintptr) int
	deleteInstance(instance uintptr)
}

// Session owns one native interpreter instance from allocation to deletion.
// A Session is single use and not safe for concurrent use; callers serialize
// sessions with a Guard because the library supports one live instance.
type Session struct {
	api      api
	enc      *encoding.Encoder
	log      zerolog.Logger
	state    State
	instance uintptr
	caller   uintptr
}

func newSession(a api, enc *encoding.Encoder, log zerolog.Logger) *Session {
	return &Session{api: a, enc: enc, log: log}
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

func (s *Session) transition(to State) {
	s.log.Trace().Stringer("from", s.state).Stringer("to", to).Msg("session transition")
	s.state = to
}

// Allocate creates the native instance. When the library refuses, the session
// moves straight to StateDeleted since there is nothing to release.
func (s *Session) Allocate() error {
	if s.state != StateCreated {
		return fmt.Errorf("allocate in state %s: %w", s.state, ErrSessionState)
	}
	s.caller = reserveCaller()

	instance, code := s.api.newInstance(s.caller)
	if code < 0 {
		releaseCaller(s.caller)
		s.transition(StateDeleted)
		return fmt.Errorf("%w: %w", ErrInstanceCreation, &InterpreterError{Code: Classify(code)})
	}
	s.instance = instance
	s.transition(StateInstanceAllocated)
	return nil
}

// BindStdio routes the instance's stdin, stdout and stderr to sink.
func (s *Session) BindStdio(sink Sink) error {
	if s.state != StateInstanceAllocated {
		return fmt.Errorf("bind stdio in state %s: %w", s.state, ErrSessionState)
	}
	bindSink(s.caller, sink)

	if code := s.api.setStdio(s.instance); code < 0 {
		return fmt.Errorf("binding stdio: %w", &InterpreterError{Code: Classify(code)})
	}
	s.transition(StateStdioBound)
	return nil
}

// Run starts the interpreter with args and blocks until it returns. The
// argument buffers stay pinned until the native call has returned. A failing
// return code is reported as *InterpreterError; the graceful quit code is not
// a failure.
func (s *Session) Run(args []string) (ReturnCode, error) {
	if s.state != StateInstanceAllocated && s.state != StateStdioBound {
		return Classify(CodeUnknownError), fmt.Errorf("run in state %s: %w", s.state, ErrSessionState)
	}

	arena, err := newArgArena(args, s.enc)
	if err != nil {
		return Classify(CodeUnknownError), err
	}
	defer arena.Release()

	s.transition(StateRunning)
	s.log.Debug().Strs("args", args).Msg("starting interpreter")

	rc := Classify(s.api.initWithArgs(s.instance, arena.Argc(), arena.Argv()))
	s.log.Debug().Int("code", rc.Value).Str("message", rc.Message()).Msg("interpreter returned")

	if !rc.Success() {
		return rc, &InterpreterError{Code: rc, Args: args}
	}
	return rc, nil
}

// Teardown exits and deletes the instance, in that order. Delete runs even
// when exit fails or panics. Teardown is idempotent and a no-op for a session
// that never allocated an instance.
func (s *Session) Teardown() {
	if s.state == StateCreated || s.state == StateDeleted {
		return
	}

	defer func() {
		s.api.deleteInstance(s.instance)
		releaseCaller(s.caller)
		s.instance = 0
		s.transition(StateDeleted)
	}()

	if s.state != StateExited {
		if rc := Classify(s.api.exit(s.instance)); !rc.Success() {
			s.log.Warn().Int("code", rc.Value).Str("message", rc.Message()).Msg("interpreter exit failed")
		}
		s.transition(StateExited)
	}
}

// Execute drives the full lifecycle: allocate, bind sink, run args, and tear
// down on every exit path including panics.
func (s *Session) Execute(args []string, sink Sink) (ReturnCode, error) {
	if err := s.Allocate(); err != nil {
		return CodeOf(err), err
	}
	defer s.Teardown()

	if sink != nil {
		if err := s.BindStdio(sink); err != nil {
			return CodeOf(err), err
		}
	}
	return s.Run(args)
}
