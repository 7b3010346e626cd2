// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stdio turns the interpreter's stdout and stderr text into typed
// progress events and collects separation names.
// Implements: docs/ARCHITECTURE § Stdio Interceptor.
//
// The interpreter has no structured protocol; this package scrapes its
// free-form banner lines. Anything that fails to parse is forwarded as a
// plain message and never stops a conversion.
package stdio

import (
	"bytes"
	"slices"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/encoding"
)

// Line prefixes recognised in the interpreter's output.
const (
	prefixProcessing     = "Processing"
	prefixPage           = "Page"
	prefixSeparationName = "%%SeparationName:"
	markerThrough        = " through "
)

// State is the per-conversion view built from the streams.
type State struct {
	// PageCount is 0 until read from the processing banner.
	PageCount   int
	CurrentPage int
	// SpotColors holds separation names in first-seen order, without
	// duplicates. The index of a name is its separation number.
	SpotColors []string
}

// Interceptor implements the interpreter's stdio callbacks. Reset it before
// every conversion.
type Interceptor struct {
	mu       sync.Mutex
	dec      decoder
	listener Listener
	state    State
	pending  [Stderr + 1][]byte
}

// New returns an interceptor decoding with enc (nil for UTF-8) and reporting
// to l, which may be nil.
func New(enc encoding.Encoding, l Listener) *Interceptor {
	return &Interceptor{dec: decoder{enc: enc}, listener: l}
}

// Reset clears all per-conversion state and any buffered partial lines.
func (i *Interceptor) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.state = State{}
	i.pending = [Stderr + 1][]byte{}
}

// State returns a copy of the current state.
func (i *Interceptor) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	st := i.state
	st.SpotColors = slices.Clone(i.state.SpotColors)
	return st
}

// Stdin reports end of input; the interpreter is never fed from stdin.
func (i *Interceptor) Stdin(p []byte) int { return 0 }

// Stdout consumes one stdout chunk.
func (i *Interceptor) Stdout(p []byte) int {
	i.feed(Stdout, p)
	return len(p)
}

// Stderr consumes one stderr chunk.
func (i *Interceptor) Stderr(p []byte) int {
	i.feed(Stderr, p)
	return len(p)
}

// Flush parses any partial line still buffered. Call it once the run has
// returned.
func (i *Interceptor) Flush() {
	i.mu.Lock()
	var events []Event
	for _, st := range []Stream{Stdout, Stderr} {
		if len(i.pending[st]) > 0 {
			events = i.parseLine(st, i.pending[st], events)
			i.pending[st] = nil
		}
	}
	l := i.listener
	i.mu.Unlock()

	emit(l, events)
}

// Emit sends e to the listener. The orchestrator uses it for events that do
// not come from the streams.
func (i *Interceptor) Emit(e Event) {
	i.mu.Lock()
	l := i.listener
	i.mu.Unlock()
	emit(l, []Event{e})
}

func (i *Interceptor) feed(st Stream, p []byte) {
	if len(p) == 0 {
		return
	}
	i.mu.Lock()
	events := []Event{{Kind: EventMessage, Stream: st, Text: i.dec.text(p)}}

	buf := append(i.pending[st], p...)
	for {
		nl := bytes.IndexByte(buf, '\n')
		if nl < 0 {
			break
		}
		events = i.parseLine(st, buf[:nl], events)
		buf = buf[nl+1:]
	}
	// Keep the remainder in a fresh slice; p belongs to the interpreter.
	i.pending[st] = bytes.Clone(buf)
	l := i.listener
	i.mu.Unlock()

	emit(l, events)
}

// parseLine appends the events one complete line produces. i.mu is held.
func (i *Interceptor) parseLine(st Stream, raw []byte, events []Event) []Event {
	line := i.dec.text(raw)

	switch st {
	case Stdout:
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, prefixProcessing):
			if i.state.PageCount > 0 {
				break
			}
			if n, ok := parsePageCount(line); ok {
				i.state.PageCount = n
				events = append(events, Event{Kind: EventProcessingStarted, Stream: st, PageCount: n})
			}
		case strings.HasPrefix(line, prefixPage):
			if n, ok := parsePageNumber(line); ok {
				i.state.CurrentPage = n
				events = append(events, Event{Kind: EventPage, Stream: st, Page: n, PageCount: i.state.PageCount})
			}
		}

	case Stderr:
		line = strings.TrimRight(line, "\r")
		if !strings.HasPrefix(line, prefixSeparationName) {
			break
		}
		name := strings.TrimSpace(strings.TrimPrefix(line, prefixSeparationName))
		if name == "" || slices.Contains(i.state.SpotColors, name) {
			break
		}
		i.state.SpotColors = append(i.state.SpotColors, name)
		events = append(events, Event{Kind: EventSpotColor, Stream: st, SpotColor: name})
	}
	return events
}

// parsePageCount reads "Processing pages F through L." and returns the
// number of pages in the range.
func parsePageCount(line string) (int, bool) {
	idx := strings.Index(line, markerThrough)
	if idx < 0 {
		return 0, false
	}
	last, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(line[idx+len(markerThrough):], ".")))
	if err != nil || last <= 0 {
		return 0, false
	}

	first := 1
	if fields := strings.Fields(line[:idx]); len(fields) > 0 {
		if n, err := strconv.Atoi(fields[len(fields)-1]); err == nil && n > 0 && n <= last {
			first = n
		}
	}
	return last - first + 1, true
}

// parsePageNumber reads the trailing integer of "Page N".
func parsePageNumber(line string) (int, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func emit(l Listener, events []Event) {
	if l == nil {
		return
	}
	for _, e := range events {
		l.OnEvent(e)
	}
}
