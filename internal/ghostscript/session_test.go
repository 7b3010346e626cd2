// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ghostscript

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI records native calls and lets tests inject failures.
type fakeAPI struct {
	calls []string

	newCode   int
	stdioCode int
	initCode  int
	exitCode  int
	initPanic bool
	exitPanic bool

	// stdout is written through the registered sink during init.
	stdout string

	caller   uintptr
	gotArgs  []string
	instance uintptr
}

func (f *fakeAPI) newInstance(caller uintptr) (uintptr, int) {
	f.calls = append(f.calls, "new_instance")
	f.caller = caller
	if f.newCode < 0 {
		return 0, f.newCode
	}
	f.instance = 0xbeef
	return f.instance, 0
}

func (f *fakeAPI) setStdio(instance uintptr) int {
	f.calls = append(f.calls, "set_stdio")
	return f.stdioCode
}

func (f *fakeAPI) initWithArgs(instance uintptr, argc int, argv []*byte) int {
	f.calls = append(f.calls, "init_with_args")
	for _, p := range argv[:argc] {
		f.gotArgs = append(f.gotArgs, goString(p))
	}
	if f.stdout != "" {
		dispatch(f.caller, streamOut, []byte(f.stdout))
	}
	if f.initPanic {
		panic("host-side failure")
	}
	return f.initCode
}

func (f *fakeAPI) exit(instance uintptr) int {
	f.calls = append(f.calls, "exit")
	if f.exitPanic {
		panic("exit failure")
	}
	return f.exitCode
}

func (f *fakeAPI) deleteInstance(instance uintptr) {
	f.calls = append(f.calls, "delete_instance")
}

// captureSink records stdout text.
type captureSink struct {
	out string
}

func (c *captureSink) Stdin(p []byte) int  { return 0 }
func (c *captureSink) Stdout(p []byte) int { c.out += string(p); return len(p) }
func (c *captureSink) Stderr(p []byte) int { return len(p) }

func testSession(f *fakeAPI) *Session {
	return newSession(f, nil, zerolog.Nop())
}

func TestSession_Lifecycle(t *testing.T) {
	f := &fakeAPI{stdout: "Page 1\n"}
	s := testSession(f)
	sink := &captureSink{}

	rc, err := s.Execute([]string{"gsconvert", "-dBATCH", "in.pdf"}, sink)
	require.NoError(t, err)
	assert.True(t, rc.Success())

	assert.Equal(t, []string{"new_instance", "set_stdio", "init_with_args", "exit", "delete_instance"}, f.calls)
	assert.Equal(t, []string{"gsconvert", "-dBATCH", "in.pdf"}, f.gotArgs)
	assert.Equal(t, "Page 1\n", sink.out)
	assert.Equal(t, StateDeleted, s.State())
}

func TestSession_TeardownAfterInitPanic(t *testing.T) {
	f := &fakeAPI{initPanic: true}
	s := testSession(f)

	assert.Panics(t, func() {
		_, _ = s.Execute([]string{"gsconvert", "in.pdf"}, &captureSink{})
	})
	assert.Equal(t, []string{"new_instance", "set_stdio", "init_with_args", "exit", "delete_instance"}, f.calls)
	assert.Equal(t, StateDeleted, s.State())
}

func TestSession_TeardownAfterInitError(t *testing.T) {
	f := &fakeAPI{initCode: -15}
	s := testSession(f)

	rc, err := s.Execute([]string{"gsconvert", "-sDEVICE=unknown", "in.pdf"}, &captureSink{})
	require.Error(t, err)

	var ie *InterpreterError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, -15, ie.Code.Value)
	assert.Equal(t, CategoryLevel1, ie.Code.Category)
	assert.Equal(t, []string{"gsconvert", "-sDEVICE=unknown", "in.pdf"}, ie.Args)
	assert.Contains(t, err.Error(), "e_rangecheck")
	assert.Equal(t, rc, ie.Code)

	assert.Equal(t, []string{"new_instance", "set_stdio", "init_with_args", "exit", "delete_instance"}, f.calls)
}

func TestSession_QuitIsSuccess(t *testing.T) {
	f := &fakeAPI{initCode: CodeQuit}
	s := testSession(f)

	rc, err := s.Execute([]string{"gsconvert", "in.pdf"}, nil)
	require.NoError(t, err)
	assert.Equal(t, CodeQuit, rc.Value)
	assert.True(t, rc.Success())
}

func TestSession_DeleteAfterExitError(t *testing.T) {
	f := &fakeAPI{exitCode: -100}
	s := testSession(f)

	_, err := s.Execute([]string{"gsconvert", "in.pdf"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"new_instance", "init_with_args", "exit", "delete_instance"}, f.calls)
}

func TestSession_DeleteAfterExitPanic(t *testing.T) {
	f := &fakeAPI{exitPanic: true}
	s := testSession(f)

	require.NoError(t, s.Allocate())
	assert.Panics(t, s.Teardown)
	assert.Equal(t, []string{"new_instance", "exit", "delete_instance"}, f.calls)
	assert.Equal(t, StateDeleted, s.State())
}

func TestSession_AllocateFailureReleasesNothing(t *testing.T) {
	f := &fakeAPI{newCode: -1}
	s := testSession(f)

	_, err := s.Execute([]string{"gsconvert", "in.pdf"}, &captureSink{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInstanceCreation))
	assert.Equal(t, []string{"new_instance"}, f.calls)
	assert.Equal(t, StateDeleted, s.State())
}

func TestSession_StdioFailureStillTearsDown(t *testing.T) {
	f := &fakeAPI{stdioCode: -12}
	s := testSession(f)

	rc, err := s.Execute([]string{"gsconvert", "in.pdf"}, &captureSink{})
	require.Error(t, err)
	assert.Equal(t, CodeIOError, rc.Value)
	assert.Equal(t, []string{"new_instance", "set_stdio", "exit", "delete_instance"}, f.calls)
}

func TestSession_TeardownIdempotent(t *testing.T) {
	f := &fakeAPI{}
	s := testSession(f)

	s.Teardown()
	assert.Empty(t, f.calls)

	require.NoError(t, s.Allocate())
	s.Teardown()
	s.Teardown()
	assert.Equal(t, []string{"new_instance", "exit", "delete_instance"}, f.calls)
}

func TestSession_OutOfOrder(t *testing.T) {
	f := &fakeAPI{}
	s := testSession(f)

	_, err := s.Run([]string{"gsconvert"})
	assert.ErrorIs(t, err, ErrSessionState)
	assert.ErrorIs(t, s.BindStdio(&captureSink{}), ErrSessionState)

	require.NoError(t, s.Allocate())
	assert.ErrorIs(t, s.Allocate(), ErrSessionState)

	_, err = s.Run([]string{"gsconvert", "in.pdf"})
	require.NoError(t, err)
	_, err = s.Run([]string{"gsconvert", "in.pdf"})
	assert.ErrorIs(t, err, ErrSessionState)
	s.Teardown()
}

func TestSession_RejectsNulInArgs(t *testing.T) {
	f := &fakeAPI{}
	s := testSession(f)

	_, err := s.Execute([]string{"gsconvert", "in\x00.pdf"}, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, []string{"new_instance", "exit", "delete_instance"}, f.calls)
}

func TestSession_SinkUnregisteredAfterTeardown(t *testing.T) {
	f := &fakeAPI{}
	s := testSession(f)
	sink := &captureSink{}

	_, err := s.Execute([]string{"gsconvert", "in.pdf"}, sink)
	require.NoError(t, err)

	dispatch(f.caller, streamOut, []byte("late\n"))
	assert.Empty(t, sink.out)
}

func TestArgArena_NulTerminated(t *testing.T) {
	a, err := newArgArena([]string{"gsconvert", "-r72"}, nil)
	require.NoError(t, err)
	defer a.Release()

	require.Equal(t, 2, a.Argc())
	argv := a.Argv()
	require.Len(t, argv, 3)
	assert.Nil(t, argv[2])
	assert.Equal(t, "-r72", goString(argv[1]))
	assert.Equal(t, byte(0), *(*byte)(unsafe.Add(unsafe.Pointer(argv[1]), 4)))
}
