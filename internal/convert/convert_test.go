// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/gsconvert/internal/ghostscript"
	"github.com/pdiddy/gsconvert/internal/gsargs"
	"github.com/pdiddy/gsconvert/internal/output"
	"github.com/pdiddy/gsconvert/internal/stdio"
	"github.com/pdiddy/gsconvert/pkg/types"
)

// fakeEngine stands in for the interpreter. It writes page files for the
// output template it is given and replays canned stream text.
type fakeEngine struct {
	stdout []string
	stderr []string
	pages  int
	extra  []string // extra file names created next to the outputs
	code   int
	err    error
	panics bool

	called        bool
	args          []string
	stagedExisted bool
}

func (f *fakeEngine) Execute(args []string, sink ghostscript.Sink) (ghostscript.ReturnCode, error) {
	f.called = true
	f.args = args

	_, statErr := os.Stat(args[len(args)-1])
	f.stagedExisted = statErr == nil

	tmpl := strings.TrimPrefix(args[len(args)-2], "-sOutputFile=")
	for p := 1; p <= f.pages; p++ {
		_ = os.WriteFile(output.PagePath(tmpl, p), []byte("page"), 0o644)
	}
	for _, name := range f.extra {
		_ = os.WriteFile(filepath.Join(filepath.Dir(tmpl), name), []byte("sep"), 0o644)
	}
	for _, s := range f.stdout {
		sink.Stdout([]byte(s))
	}
	for _, s := range f.stderr {
		sink.Stderr([]byte(s))
	}
	if f.panics {
		panic("interpreter crashed")
	}
	return ghostscript.Classify(f.code), f.err
}

// fakeRecorder keeps every recorded result.
type fakeRecorder struct {
	results []types.ConversionResult
}

func (r *fakeRecorder) Record(ctx context.Context, res types.ConversionResult) error {
	r.results = append(r.results, res)
	return nil
}

// eventLog collects non-message events.
type eventLog struct {
	kinds  []stdio.EventKind
	events []stdio.Event
}

func (l *eventLog) OnEvent(e stdio.Event) {
	if e.Kind == stdio.EventMessage {
		return
	}
	l.kinds = append(l.kinds, e.Kind)
	l.events = append(l.events, e)
}

type fixture struct {
	input   string
	outDir  string
	tempDir string
	rec     *fakeRecorder
}

func setup(t *testing.T, name string) fixture {
	t.Helper()
	root := t.TempDir()
	f := fixture{
		input:   filepath.Join(root, name),
		outDir:  filepath.Join(root, "out"),
		tempDir: filepath.Join(root, "tmp"),
		rec:     &fakeRecorder{},
	}
	require.NoError(t, os.MkdirAll(f.outDir, 0o755))
	require.NoError(t, os.WriteFile(f.input, []byte("%PDF-1.7"), 0o644))
	return f
}

func (f fixture) service(e Engine, opts ...Option) *Service {
	opts = append([]Option{WithTempDir(f.tempDir), WithRecorder(f.rec), WithGuard(ghostscript.NewGuard())}, opts...)
	return New(e, opts...)
}

func assertNoStagedCopies(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return
	}
	require.NoError(t, err)
	assert.Empty(t, entries, "staged copies left in %s", dir)
}

func TestConvert_Success(t *testing.T) {
	f := setup(t, "report.pdf")
	eng := &fakeEngine{
		pages:  2,
		stdout: []string{"Processing pages 1 through 2.\n", "Page 1\n", "Page 2\n"},
	}
	events := &eventLog{}

	res, err := f.service(eng).Convert(context.Background(), Request{
		Input:     f.input,
		OutputDir: f.outDir,
		Render:    types.RenderConfig{Device: types.DevicePNG16m, Resolution: types.Resolution{X: 150}},
		Listener:  events,
	})
	require.NoError(t, err)

	assert.Equal(t, types.ConversionDone, res.Status)
	assert.Equal(t, 2, res.PageCount)
	assert.Equal(t, []string{
		filepath.Join(f.outDir, "report1.png"),
		filepath.Join(f.outDir, "report2.png"),
	}, res.Outputs)
	assert.NotEmpty(t, res.ID)
	assert.Contains(t, res.Parameters, "-sDEVICE=png16m")
	assert.Contains(t, res.Parameters, "-r150")

	assert.Equal(t, []stdio.EventKind{
		stdio.EventProcessingStarted,
		stdio.EventPage,
		stdio.EventPage,
		stdio.EventProcessingCompleted,
	}, events.kinds)
	assert.Equal(t, res.Outputs, events.events[3].Outputs)

	// The interpreter ran on a staged copy, which is gone afterwards.
	assert.True(t, eng.stagedExisted)
	staged := eng.args[len(eng.args)-1]
	assert.NotEqual(t, f.input, staged)
	assert.Equal(t, f.tempDir, filepath.Dir(staged))
	assertNoStagedCopies(t, f.tempDir)
	assert.FileExists(t, f.input)

	require.Len(t, f.rec.results, 1)
	assert.Equal(t, res.ID, f.rec.results[0].ID)
}

func TestConvert_UnsupportedFormat(t *testing.T) {
	f := setup(t, "notes.docx")
	eng := &fakeEngine{}

	res, err := f.service(eng).Convert(context.Background(), Request{
		Input:  f.input,
		Render: types.RenderConfig{Device: types.DevicePNG16m},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.False(t, eng.called)
	assert.Equal(t, ghostscript.CodeUnsupportedFileType, res.Code)
	assert.Equal(t, types.ConversionFailed, res.Status)
	require.Len(t, f.rec.results, 1)
}

func TestConvert_SupportedExtensions(t *testing.T) {
	for _, name := range []string{"a.ps", "a.EPS", "a.epsf", "a.Pdf"} {
		assert.True(t, Supported(name), name)
	}
	for _, name := range []string{"a.png", "a", "a.pdf.txt"} {
		assert.False(t, Supported(name), name)
	}
}

func TestConvert_InvalidConfigurationFailsBeforeStaging(t *testing.T) {
	f := setup(t, "report.pdf")
	eng := &fakeEngine{}

	_, err := f.service(eng).Convert(context.Background(), Request{
		Input:  f.input,
		Render: types.RenderConfig{Device: types.DevicePNG16m, TextAlphaBits: 3},
	})
	assert.ErrorIs(t, err, gsargs.ErrInvalidConfiguration)
	assert.False(t, eng.called)
	assertNoStagedCopies(t, f.tempDir)
}

func TestConvert_InterpreterError(t *testing.T) {
	f := setup(t, "broken.pdf")
	eng := &fakeEngine{code: -20}
	eng.err = &ghostscript.InterpreterError{Code: ghostscript.Classify(-20), Args: []string{"gsconvert"}}

	res, err := f.service(eng).Convert(context.Background(), Request{
		Input:  f.input,
		Output: filepath.Join(f.outDir, "x%d.png"),
		Render: types.RenderConfig{Device: types.DevicePNG16m},
	})
	require.Error(t, err)

	var ie *ghostscript.InterpreterError
	assert.True(t, errors.As(err, &ie))
	assert.Equal(t, -20, res.Code)
	assert.Equal(t, types.ConversionFailed, res.Status)
	assert.Contains(t, res.Error, "e_typecheck")
	assertNoStagedCopies(t, f.tempDir)
}

func TestConvert_QuitCodeIsSuccess(t *testing.T) {
	f := setup(t, "quit.ps")
	eng := &fakeEngine{code: ghostscript.CodeQuit, pages: 1}

	res, err := f.service(eng).Convert(context.Background(), Request{
		Input:  f.input,
		Output: filepath.Join(f.outDir, "q%d.jpg"),
		Render: types.RenderConfig{Device: types.DeviceJPEG},
	})
	require.NoError(t, err)
	assert.Equal(t, types.ConversionDone, res.Status)
	assert.Len(t, res.Outputs, 1)
}

func TestConvert_StagedCopyRemovedOnPanic(t *testing.T) {
	f := setup(t, "crash.pdf")
	eng := &fakeEngine{panics: true}
	svc := f.service(eng)

	assert.Panics(t, func() {
		_, _ = svc.Convert(context.Background(), Request{
			Input:  f.input,
			Output: filepath.Join(f.outDir, "c%d.png"),
			Render: types.RenderConfig{Device: types.DevicePNG16m},
		})
	})
	assertNoStagedCopies(t, f.tempDir)

	require.Len(t, f.rec.results, 1)
	got := f.rec.results[0]
	assert.Equal(t, types.ConversionFailed, got.Status)
	assert.Equal(t, ghostscript.CodeUnknownError, got.Code)
	assert.Contains(t, got.Error, "interpreter crashed")
}

func TestConvert_CancelledWhileWaitingForGuard(t *testing.T) {
	f := setup(t, "wait.pdf")
	eng := &fakeEngine{}
	guard := ghostscript.NewGuard()

	held := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = guard.Do(context.Background(), func() error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.service(eng, WithGuard(guard)).Convert(ctx, Request{
		Input:  f.input,
		Render: types.RenderConfig{Device: types.DevicePNG16m},
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, eng.called)
	assertNoStagedCopies(t, f.tempDir)

	close(release)
	<-done
}

func TestConvert_MultiPageInsertsPlaceholder(t *testing.T) {
	f := setup(t, "book.pdf")
	eng := &fakeEngine{pages: 3}

	res, err := f.service(eng).Convert(context.Background(), Request{
		Input:  f.input,
		Output: filepath.Join(f.outDir, "page.png"),
		Render: types.RenderConfig{Device: types.DevicePNGGray, MultiPage: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "-sOutputFile="+filepath.Join(f.outDir, "page%d.png"), eng.args[len(eng.args)-2])
	assert.Len(t, res.Outputs, 3)
	assert.Equal(t, 3, res.PageCount)
}

func TestCreateSeparations(t *testing.T) {
	f := setup(t, "label.pdf")
	eng := &fakeEngine{
		pages:  1,
		extra:  []string{"label_1.s0.tif", "label_1.s1.tif"},
		stdout: []string{"Processing pages 1 through 1.\n", "Page 1\n"},
		stderr: []string{"%%SeparationName: Cyan\n", "%%SeparationName: PANTONE 185 C\n", "%%SeparationName: Cyan\n"},
	}

	res, err := f.service(eng).CreateSeparations(context.Background(), f.input, f.outDir, "", types.RenderConfig{}, nil)
	require.NoError(t, err)

	assert.Contains(t, eng.args, "-sDEVICE=tiffsep")
	assert.Contains(t, eng.args, "-r120")
	assert.Contains(t, eng.args, "-dMaxSeparations=8")
	assert.Equal(t, "-sOutputFile="+filepath.Join(f.outDir, "label_%01d.tif"), eng.args[len(eng.args)-2])

	assert.Equal(t, []string{"Cyan", "PANTONE 185 C"}, res.SpotColors)
	assert.Equal(t, []string{
		filepath.Join(f.outDir, "label_1.Cyan.tif"),
		filepath.Join(f.outDir, "label_1.PANTONE 185 C.tif"),
		filepath.Join(f.outDir, "label_1.tif"),
	}, res.Outputs)
	assert.Equal(t, types.DeviceTIFFSep, res.Device)
}

func TestCreateSeparations_KeepsCallerOptions(t *testing.T) {
	f := setup(t, "label.pdf")
	eng := &fakeEngine{pages: 1}
	render := types.RenderConfig{
		Device:     types.DevicePNG16m,
		Resolution: types.Resolution{X: 300},
		ExtraArgs:  []string{"-dQUIET"},
	}

	_, err := f.service(eng).CreateSeparations(context.Background(), f.input, f.outDir, "plate%", render, nil)
	require.NoError(t, err)

	assert.Contains(t, eng.args, "-r300")
	assert.Contains(t, eng.args, "-dQUIET")
	assert.Equal(t, []string{"-dQUIET"}, render.ExtraArgs)
	assert.Equal(t, "-sOutputFile="+filepath.Join(f.outDir, "plate_%01d.tif"), eng.args[len(eng.args)-2])
}

func TestDefaultTemplate(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "scan%01d.png"), DefaultTemplate("/in/scan.pdf", "out", types.DevicePNG16m))
	assert.Equal(t, filepath.Join("out", "50_off%01d.tif"), DefaultTemplate("50%off.ps", "out", types.DeviceTIFFG4))
	assert.Equal(t, filepath.Join("out", "doc%01d.out"), DefaultTemplate("doc.pdf", "out", types.DeviceUnknown))
}
