// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ghostscript

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/pdiddy/gsconvert/pkg/types"
)

// revisionT mirrors gsapi_revision_t.
type revisionT struct {
	product      *byte
	copyright    *byte
	revision     cLong
	revisionDate cLong
}

// nativeAPI holds the library entry points bound with purego.
type nativeAPI struct {
	gsNewInstance    func(pinstance *uintptr, caller uintptr) int32
	gsSetStdio       func(instance, stdin, stdout, stderr uintptr) int32
	gsInitWithArgs   func(instance uintptr, argc int32, argv **byte) int32
	gsExit           func(instance uintptr) int32
	gsDeleteInstance func(instance uintptr)
	gsRevision       func(r *revisionT, size int32) int32
}

func bindNative(handle uintptr) (*nativeAPI, error) {
	n := &nativeAPI{}
	symbols := []struct {
		fptr any
		name string
	}{
		{&n.gsNewInstance, "gsapi_new_instance"},
		{&n.gsSetStdio, "gsapi_set_stdio"},
		{&n.gsInitWithArgs, "gsapi_init_with_args"},
		{&n.gsExit, "gsapi_exit"},
		{&n.gsDeleteInstance, "gsapi_delete_instance"},
		{&n.gsRevision, "gsapi_revision"},
	}
	for _, sym := range symbols {
		if err := registerFunc(sym.fptr, handle, sym.name); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// registerFunc turns the panic purego raises for a missing symbol into an
// error.
func registerFunc(fptr any, handle uintptr, name string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrSymbolMissing, name, r)
		}
	}()
	purego.RegisterLibFunc(fptr, handle, name)
	return nil
}

func (n *nativeAPI) newInstance(caller uintptr) (uintptr, int) {
	var instance uintptr
	code := n.gsNewInstance(&instance, caller)
	return instance, int(code)
}

func (n *nativeAPI) setStdio(instance uintptr) int {
	in, out, errOut := stdioCallbacks()
	return int(n.gsSetStdio(instance, in, out, errOut))
}

func (n *nativeAPI) initWithArgs(instance uintptr, argc int, argv []*byte) int {
	return int(n.gsInitWithArgs(instance, int32(argc), &argv[0]))
}

func (n *nativeAPI) exit(instance uintptr) int {
	return int(n.gsExit(instance))
}

func (n *nativeAPI) deleteInstance(instance uintptr) {
	n.gsDeleteInstance(instance)
}

func (n *nativeAPI) revision() (types.Revision, error) {
	var r revisionT
	// A positive result is the struct size the library expected.
	if code := n.gsRevision(&r, int32(unsafe.Sizeof(r))); code != 0 {
		return types.Revision{}, fmt.Errorf("revision query: %s", Classify(int(code)))
	}
	return types.Revision{
		Product:      goString(r.product),
		Copyright:    goString(r.copyright),
		Revision:     int(r.revision),
		RevisionDate: int(r.revisionDate),
	}, nil
}

// goString copies a NUL-terminated C string owned by the library.
func goString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}

// The stdio trampolines are created once per process: purego keeps a fixed
// number of callback slots that are never freed. The caller handle routes
// each call to its session's sink.
var callbacksOnce sync.Once

var cbStdin, cbStdout, cbStderr uintptr

func stdioCallbacks() (in, out, errOut uintptr) {
	callbacksOnce.Do(func() {
		cbStdin = purego.NewCallback(func(caller, buf uintptr, n int32) uintptr {
			return trampoline(caller, streamIn, buf, n)
		})
		cbStdout = purego.NewCallback(func(caller, buf uintptr, n int32) uintptr {
			return trampoline(caller, streamOut, buf, n)
		})
		cbStderr = purego.NewCallback(func(caller, buf uintptr, n int32) uintptr {
			return trampoline(caller, streamErr, buf, n)
		})
	})
	return cbStdin, cbStdout, cbStderr
}

func trampoline(caller uintptr, st stream, buf uintptr, n int32) uintptr {
	var p []byte
	if buf != 0 && n > 0 {
		p = unsafe.Slice((*byte)(unsafe.Pointer(buf)), int(n))
	}
	return uintptr(int32(dispatch(caller, st, p)))
}
