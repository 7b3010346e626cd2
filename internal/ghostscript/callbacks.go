// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ghostscript

import "sync"

// Sink receives the interpreter's standard streams. Each method gets the raw
// bytes of one callback and returns the value handed back to the interpreter:
// the number of bytes handled, 0 for end of input on stdin, or -1 on error.
// p is only valid for the duration of the call.
type Sink interface {
	Stdin(p []byte) int
	Stdout(p []byte) int
	Stderr(p []byte) int
}

type stream int

const (
	streamIn stream = iota
	streamOut
	streamErr
)

// sinks routes native callbacks to the session that owns them. The key is the
// caller handle given to new_instance, which the interpreter passes back as
// the first argument of every callback.
var sinks = struct {
	mu   sync.RWMutex
	next uintptr
	m    map[uintptr]Sink
}{m: make(map[uintptr]Sink)}

// reserveCaller allocates a caller handle with no sink bound yet.
func reserveCaller() uintptr {
	sinks.mu.Lock()
	defer sinks.mu.Unlock()
	sinks.next++
	sinks.m[sinks.next] = nil
	return sinks.next
}

func bindSink(caller uintptr, s Sink) {
	sinks.mu.Lock()
	defer sinks.mu.Unlock()
	sinks.m[caller] = s
}

func releaseCaller(caller uintptr) {
	sinks.mu.Lock()
	defer sinks.mu.Unlock()
	delete(sinks.m, caller)
}

// dispatch delivers p to the sink registered under caller. Output for an
// unknown caller is accepted and dropped; stdin reports end of input.
func dispatch(caller uintptr, st stream, p []byte) int {
	sinks.mu.RLock()
	s := sinks.m[caller]
	sinks.mu.RUnlock()

	if s == nil {
		if st == streamIn {
			return 0
		}
		return len(p)
	}
	switch st {
	case streamIn:
		return s.Stdin(p)
	case streamOut:
		return s.Stdout(p)
	default:
		return s.Stderr(p)
	}
}
