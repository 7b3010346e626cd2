// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gsargs turns a render configuration into the ordered argument
// vector handed to the interpreter's init entry point.
// Implements: docs/ARCHITECTURE § Argument Builder.
//
// The order of the vector is part of the contract. Position 0 is an ignored
// program name, the fixed batch and sandbox switches follow, then the device
// and its options, then derived switches, and the output file and input file
// are always the last two entries. Nothing is sorted or deduplicated.
package gsargs

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/pdiddy/gsconvert/pkg/types"
)

// ProgramName occupies argv[0]; the interpreter ignores it.
const ProgramName = "gsconvert"

// Fixed switches placed directly after the program name.
const (
	flagNoPause = "-dNOPAUSE"
	flagBatch   = "-dBATCH"
	flagSafer   = "-dSAFER"
)

const (
	fmtDevice       = "-sDEVICE=%s"
	fmtOutputFile   = "-sOutputFile=%s"
	fmtResolutionX  = "-r%d"
	fmtResolutionXY = "-r%dx%d"
	fmtTextAlpha    = "-dTextAlphaBits=%d"
	fmtGraphicAlpha = "-dGraphicsAlphaBits=%d"
	fmtFirstPage    = "-dFirstPage=%d"
	fmtLastPage     = "-dLastPage=%d"
	fmtPageSize     = "-g%dx%d"
	fmtPaperSize    = "-sPAPERSIZE=%s"
	fmtThreads      = "-dNumRenderingThreads=%d"
	fmtFontPath     = "-sFONTPATH=%s"
	fmtFontMap      = "-sFONTMAP=%s"
	fmtSubstFont    = "-sSUBSTFONT=%s"
	fmtFCOFontFile  = "-sFCOfontfile=%s"
	fmtFAPIFontMap  = "-sFAPIfontmap=%s"
	fmtInclude      = "-I%s"

	flagFixedMedia    = "-dFIXEDMEDIA"
	flagFitPage       = "-dPDFFitPage"
	flagNoPlatFonts   = "-dNOPLATFONTS"
	flagNoFontMap     = "-dNOFONTMAP"
	flagNoPrecompiled = "-dNOCCFONTS"
)

// pagePlaceholder marks a multi-file output template.
const pagePlaceholder = "%"

// ErrInvalidConfiguration is returned (wrapped) for any configuration the
// interpreter must not be started with.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// numCPU is overridden in tests.
var numCPU = runtime.NumCPU

// Build validates cfg and returns the argument vector for converting input
// into outputTemplate. It has no side effects.
func Build(cfg types.RenderConfig, input, outputTemplate string) ([]string, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	args := []string{ProgramName, flagNoPause, flagBatch, flagSafer}
	args = append(args, fmt.Sprintf(fmtDevice, deviceTag(cfg.Device)))
	for _, opt := range cfg.DeviceOptions {
		args = append(args, opt.String())
	}
	args = append(args, derivedArgs(cfg)...)
	args = append(args, cfg.ExtraArgs...)

	args = append(args, fmt.Sprintf(fmtOutputFile, OutputPath(outputTemplate, cfg.MultiPage)))
	args = append(args, input)
	return args, nil
}

// Validate reports the first configuration error in cfg.
func Validate(cfg types.RenderConfig) error {
	if strings.TrimSpace(string(cfg.Device)) == "" {
		return fmt.Errorf("%w: output device is not set", ErrInvalidConfiguration)
	}
	if !validAlphaBits(cfg.TextAlphaBits) {
		return fmt.Errorf("%w: text alpha bits must be 1, 2, 4 or <= 0 when not set, got %d",
			ErrInvalidConfiguration, cfg.TextAlphaBits)
	}
	if !validAlphaBits(cfg.GraphicsAlphaBits) {
		return fmt.Errorf("%w: graphics alpha bits must be 1, 2, 4 or <= 0 when not set, got %d",
			ErrInvalidConfiguration, cfg.GraphicsAlphaBits)
	}
	pr := cfg.PageRange
	if pr.First > 0 && pr.Last > 0 && pr.First > pr.Last {
		return fmt.Errorf("%w: first page (%d) is after last page (%d)",
			ErrInvalidConfiguration, pr.First, pr.Last)
	}
	return nil
}

func validAlphaBits(v int) bool {
	switch {
	case v <= types.AlphaBitsNotSet:
		return true
	case v == types.AlphaBitsLow, v == types.AlphaBitsMedium, v == types.AlphaBitsOptimum:
		return true
	default:
		return false
	}
}

func deviceTag(d types.Device) types.Device {
	if d.Known() {
		return d
	}
	return types.DeviceUnknown
}

// derivedArgs emits the switches computed from the typed fields of cfg, in a
// fixed order.
func derivedArgs(cfg types.RenderConfig) []string {
	var args []string

	if cfg.Device == types.DeviceJPEG && cfg.JPEGQuality > 0 && cfg.JPEGQuality <= 100 {
		for _, opt := range types.JPEGOptions(cfg.JPEGQuality) {
			args = append(args, opt.String())
		}
	}

	if cfg.PageSize.Width > 0 && cfg.PageSize.Height > 0 {
		args = append(args, fmt.Sprintf(fmtPageSize, cfg.PageSize.Width, cfg.PageSize.Height))
	} else if cfg.PaperSize != "" {
		args = append(args, fmt.Sprintf(fmtPaperSize, cfg.PaperSize))
		// Fixing the media only means something with a paper size.
		if cfg.FixedMedia {
			args = append(args, flagFixedMedia)
		}
	}

	if cfg.GraphicsAlphaBits > 0 {
		args = append(args, fmt.Sprintf(fmtGraphicAlpha, cfg.GraphicsAlphaBits))
	}
	if cfg.TextAlphaBits > 0 {
		args = append(args, fmt.Sprintf(fmtTextAlpha, cfg.TextAlphaBits))
	}

	if cfg.FitPage {
		args = append(args, flagFitPage)
	}

	if cfg.Resolution.X > 0 {
		if cfg.Resolution.Y > 0 {
			args = append(args, fmt.Sprintf(fmtResolutionXY, cfg.Resolution.X, cfg.Resolution.Y))
		} else {
			args = append(args, fmt.Sprintf(fmtResolutionX, cfg.Resolution.X))
		}
	}

	if cfg.PageRange.First > 0 {
		args = append(args, fmt.Sprintf(fmtFirstPage, cfg.PageRange.First))
	}
	if cfg.PageRange.Last > 0 {
		args = append(args, fmt.Sprintf(fmtLastPage, cfg.PageRange.Last))
	}

	switch threads := cfg.RenderingThreads; {
	case threads > 0:
		args = append(args, fmt.Sprintf(fmtThreads, threads))
	case threads < 0:
		args = append(args, fmt.Sprintf(fmtThreads, numCPU()))
	}

	args = append(args, fontArgs(cfg.Fonts)...)

	if cfg.IncludeDir != "" {
		args = append(args, fmt.Sprintf(fmtInclude, cfg.IncludeDir))
	}
	return args
}

func fontArgs(f types.FontConfig) []string {
	var args []string
	sep := string(os.PathListSeparator)

	if len(f.Paths) > 0 {
		args = append(args, fmt.Sprintf(fmtFontPath, strings.Join(f.Paths, sep)))
	}
	if f.DisablePlatformFonts {
		args = append(args, flagNoPlatFonts)
	}
	if f.DisableFontMap {
		args = append(args, flagNoFontMap)
	}
	if len(f.Maps) > 0 {
		args = append(args, fmt.Sprintf(fmtFontMap, strings.Join(f.Maps, sep)))
	}
	if f.Substitute != "" {
		args = append(args, fmt.Sprintf(fmtSubstFont, f.Substitute))
	}
	if f.FCOFontFile != "" {
		args = append(args, fmt.Sprintf(fmtFCOFontFile, f.FCOFontFile))
	}
	if f.FAPIFontMap != "" {
		args = append(args, fmt.Sprintf(fmtFAPIFontMap, f.FAPIFontMap))
	}
	if f.DisablePrecompiled {
		args = append(args, flagNoPrecompiled)
	}
	return args
}

// OutputPath returns the output file argument value. With multiPage set and
// no placeholder present, "%d" is inserted before the last extension dot.
func OutputPath(path string, multiPage bool) string {
	if !multiPage || strings.Contains(path, pagePlaceholder) {
		return path
	}
	dot := strings.LastIndex(path, ".")
	if dot <= 0 || strings.ContainsAny(path[dot:], `/\`) {
		return path
	}
	return path[:dot] + "%d" + path[dot:]
}

// ParametersUsed renders args for diagnostics: the program name is dropped and
// the output and input paths are quoted.
func ParametersUsed(args []string) string {
	if len(args) < 3 {
		return strings.Join(args, " ")
	}
	var b strings.Builder
	for _, a := range args[1 : len(args)-2] {
		b.WriteString(a)
		b.WriteByte(' ')
	}
	out := strings.TrimPrefix(args[len(args)-2], "-sOutputFile=")
	b.WriteString("-sOutputFile=" + strconv.Quote(out))
	b.WriteByte(' ')
	b.WriteString(strconv.Quote(args[len(args)-1]))
	return b.String()
}
