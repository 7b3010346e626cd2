// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/pdiddy/gsconvert/internal/ghostscript"
	"github.com/pdiddy/gsconvert/internal/stdio"
)

var (
	failColor = color.New(color.FgRed)
	okColor   = color.New(color.FgGreen)
	infoColor = color.New(color.FgCyan)
)

// failureMessages lists what a user needs to diagnose a failed conversion.
func failureMessages(err error) []string {
	msgs := []string{err.Error()}
	var ie *ghostscript.InterpreterError
	if errors.As(err, &ie) {
		msgs = append(msgs, fmt.Sprintf("%s: %s", ie.Code.Category, ie.Code))
	}
	switch {
	case errors.Is(err, ghostscript.ErrLibraryNotFound):
		msgs = append(msgs, "set engine.library_path or pass --library")
	case errors.Is(err, ghostscript.ErrArchitectureMismatch):
		msgs = append(msgs, "the library was built for a different architecture than this program")
	}
	return msgs
}

// printFailure writes the message list for err to w.
func printFailure(w io.Writer, err error) {
	for _, m := range failureMessages(err) {
		failColor.Fprintf(w, "✗ %s\n", m)
	}
}

// progressListener renders page progress on stderr. The bar is created when
// the interpreter announces the page count.
type progressListener struct {
	bar *progressbar.ProgressBar
}

func newProgressListener() *progressListener {
	return &progressListener{}
}

func (p *progressListener) OnEvent(e stdio.Event) {
	switch e.Kind {
	case stdio.EventProcessingStarted:
		p.bar = progressbar.NewOptions(e.PageCount,
			progressbar.OptionSetDescription("rendering"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSetItsString("pages"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprint(os.Stderr, "\n")
			}),
			progressbar.OptionSetRenderBlankState(true),
		)
	case stdio.EventPage:
		if p.bar != nil {
			_ = p.bar.Add(1)
		}
	case stdio.EventProcessingCompleted:
		if p.bar != nil {
			_ = p.bar.Finish()
		}
	}
}
