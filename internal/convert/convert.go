// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs one logical document conversion end to end: format
// check, staged input copy, argument building, a guarded interpreter
// session, and output collection.
// Implements: docs/ARCHITECTURE § Conversion Orchestrator.
package convert

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"

	"github.com/pdiddy/gsconvert/internal/ghostscript"
	"github.com/pdiddy/gsconvert/internal/gsargs"
	"github.com/pdiddy/gsconvert/internal/output"
	"github.com/pdiddy/gsconvert/internal/stdio"
	"github.com/pdiddy/gsconvert/pkg/types"
)

// ErrUnsupportedFormat is returned for inputs the interpreter cannot read.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// supportedExtensions lists the input formats the interpreter reads.
var supportedExtensions = map[string]bool{
	".ps":   true,
	".eps":  true,
	".epsf": true,
	".pdf":  true,
}

// Separation mode settings.
const (
	separationResolution = 120
	maxSeparations       = "-dMaxSeparations=8"
)

// Supported reports whether path has an extension the interpreter reads.
func Supported(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// Engine runs one interpreter session. *ghostscript.Library implements it.
type Engine interface {
	Execute(args []string, sink ghostscript.Sink) (ghostscript.ReturnCode, error)
}

// Recorder persists finished conversions.
type Recorder interface {
	Record(ctx context.Context, r types.ConversionResult) error
}

// Converter converts one document. *Service implements it; batch runs
// depend on the interface so they can be tested without an engine.
type Converter interface {
	Convert(ctx context.Context, req Request) (types.ConversionResult, error)
}

// Request describes one conversion.
type Request struct {
	// Input is the document to convert. It is never modified.
	Input string

	// Output is the output path or template. Empty derives a template from
	// the input name and device inside OutputDir.
	Output string

	// OutputDir is used with an empty Output. Empty means the input's
	// directory.
	OutputDir string

	Render types.RenderConfig

	// Listener receives progress events. May be nil.
	Listener stdio.Listener
}

// Service runs conversions against an Engine.
type Service struct {
	engine    Engine
	guard     *ghostscript.Guard
	collector *output.Collector
	recorder  Recorder
	enc       encoding.Encoding
	tempDir   string
	log       zerolog.Logger
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithGuard replaces the process guard, for tests.
func WithGuard(g *ghostscript.Guard) Option { return func(s *Service) { s.guard = g } }

// WithRecorder stores every finished conversion.
func WithRecorder(r Recorder) Option { return func(s *Service) { s.recorder = r } }

// WithTempDir sets where staged input copies are written.
func WithTempDir(dir string) Option { return func(s *Service) { s.tempDir = dir } }

// WithEncoding sets the text encoding of the interpreter's streams.
func WithEncoding(enc encoding.Encoding) Option { return func(s *Service) { s.enc = enc } }

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option { return func(s *Service) { s.log = l } }

// New returns a Service that runs sessions on engine under the process
// guard.
func New(engine Engine, opts ...Option) *Service {
	s := &Service{
		engine:    engine,
		guard:     ghostscript.ProcessGuard(),
		collector: output.New(),
		log:       zerolog.Nop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Convert renders req.Input with req.Render and returns the produced files.
// The result is filled in on failure as well.
func (s *Service) Convert(ctx context.Context, req Request) (types.ConversionResult, error) {
	return s.run(ctx, req, false)
}

// CreateSeparations renders one TIFF per page and colorant. Separation files
// are named <prefix>_<page>.<colorant>.tif in outDir; an empty prefix uses the
// input's base name. render supplies the remaining options; its device is
// replaced.
func (s *Service) CreateSeparations(ctx context.Context, input, outDir, prefix string, render types.RenderConfig, l stdio.Listener) (types.ConversionResult, error) {
	if prefix == "" {
		prefix = baseName(input)
	}
	prefix = strings.TrimSuffix(strings.ReplaceAll(prefix, "%", "_"), "_") + "_"
	if outDir == "" {
		outDir = filepath.Dir(input)
	}

	render.Device = types.DeviceTIFFSep
	render.MultiPage = false
	if render.Resolution.X <= 0 {
		render.Resolution = types.Resolution{X: separationResolution}
	}
	render.ExtraArgs = append(append([]string(nil), render.ExtraArgs...), maxSeparations)

	req := Request{
		Input:    input,
		Output:   filepath.Join(outDir, prefix+"%01d.tif"),
		Render:   render,
		Listener: l,
	}
	return s.run(ctx, req, true)
}

func (s *Service) run(ctx context.Context, req Request, separations bool) (res types.ConversionResult, err error) {
	res = types.ConversionResult{
		ID:        uuid.NewString(),
		Input:     req.Input,
		Device:    req.Render.Device,
		StartedAt: s.now().UTC(),
	}
	log := s.log.With().Str("id", res.ID).Str("input", req.Input).Logger()

	defer func() {
		// A panic is recorded as a failure and then re-raised.
		rec := recover()
		if rec != nil {
			err = fmt.Errorf("interpreter panicked: %v", rec)
		}
		res.Duration = s.now().UTC().Sub(res.StartedAt)
		if err != nil {
			res.Status = types.ConversionFailed
			res.Error = err.Error()
			if errors.Is(err, ErrUnsupportedFormat) {
				res.Code = ghostscript.CodeUnsupportedFileType
			} else if res.Code == 0 {
				res.Code = ghostscript.CodeOf(err).Value
			}
		} else {
			res.Status = types.ConversionDone
		}
		s.record(ctx, res, log)
		if rec != nil {
			panic(rec)
		}
	}()

	if !Supported(req.Input) {
		return res, fmt.Errorf("%s: %w", req.Input, ErrUnsupportedFormat)
	}
	if err := gsargs.Validate(req.Render); err != nil {
		return res, err
	}

	template := req.Output
	if template == "" {
		dir := req.OutputDir
		if dir == "" {
			dir = filepath.Dir(req.Input)
		}
		template = DefaultTemplate(req.Input, dir, req.Render.Device)
	}

	ic := stdio.New(s.enc, req.Listener)
	ic.Reset()

	staged, err := stageInput(req.Input, s.tempDir)
	if err != nil {
		return res, err
	}
	defer func() {
		if rerr := removeStaged(staged); rerr != nil {
			log.Warn().Err(rerr).Str("staged", staged).Msg("removing staged copy")
		}
	}()

	args, err := gsargs.Build(req.Render, staged, template)
	if err != nil {
		return res, err
	}
	res.Parameters = gsargs.ParametersUsed(args)
	log.Debug().Str("parameters", res.Parameters).Msg("converting")

	err = s.guard.Do(ctx, func() error {
		rc, rerr := s.engine.Execute(args, ic)
		ic.Flush()
		res.Code = rc.Value
		return rerr
	})
	if err != nil {
		return res, err
	}

	state := ic.State()
	res.PageCount = state.PageCount
	res.SpotColors = state.SpotColors

	res.Outputs = s.collector.Probe(gsargs.OutputPath(template, req.Render.MultiPage))
	if res.PageCount <= 0 {
		res.PageCount = len(res.Outputs)
	}
	if separations {
		renamed, err := s.collector.RenameSeparations(template, res.PageCount, state.SpotColors)
		if err != nil {
			return res, err
		}
		res.Outputs = renamed
	}

	ic.Emit(stdio.Event{Kind: stdio.EventProcessingCompleted, PageCount: res.PageCount, Outputs: res.Outputs})
	log.Info().Int("pages", res.PageCount).Int("outputs", len(res.Outputs)).Msg("conversion finished")
	return res, nil
}

func (s *Service) record(ctx context.Context, res types.ConversionResult, log zerolog.Logger) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(ctx, res); err != nil {
		log.Warn().Err(err).Msg("recording conversion")
	}
}

// DefaultTemplate returns the output template used when none is given:
// <dir>/<input base>%01d.<device extension>. A '%' in the input name is
// replaced so it cannot act as a placeholder.
func DefaultTemplate(input, dir string, device types.Device) string {
	ext := device.Extension()
	if ext == "" {
		ext = "out"
	}
	base := strings.ReplaceAll(baseName(input), "%", "_")
	return filepath.Join(dir, base+"%01d."+ext)
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
