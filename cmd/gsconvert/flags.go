// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pdiddy/gsconvert/internal/convert"
	"github.com/pdiddy/gsconvert/pkg/types"
)

// addRenderFlags registers the rendering flags shared by the converting
// commands.
func addRenderFlags(fs *pflag.FlagSet) {
	fs.String("device", "", "output device, e.g. png16m, jpeg, tiff24nc, pdfwrite")
	fs.String("resolution", "", "resolution in dpi: X or XxY")
	fs.Int("first-page", 0, "first page to render (1-based)")
	fs.Int("last-page", 0, "last page to render (1-based)")
	fs.Int("text-alpha", 0, "text antialiasing bits: 1, 2 or 4")
	fs.Int("graphics-alpha", 0, "graphics antialiasing bits: 1, 2 or 4")
	fs.Int("jpeg-quality", 0, "JPEG quality 1-100 (jpeg device only)")
	fs.Int("threads", 0, "rendering threads (-1 = one per CPU)")
	fs.Bool("fit-page", false, "scale pages to fit the output page size")
	fs.String("profile", "", "YAML render profile replacing the configured render settings")
	fs.String("png-background", "", "pngalpha background colour as RRGGBB")
	fs.Int("tiff-strip-size", 0, "strip size in bytes for the black-and-white TIFF devices")
	fs.Int("tiff-adjust-width", 0, "snap TIFF widths to A4/B4 (1) or leave them (0)")
	fs.String("language-level", "", "PostScript language level for pswrite and epswrite: 1, 1.5, 2 or 3")
}

// renderConfig starts from the configured render settings, or the profile
// when one is given, and applies the flags that were set.
func renderConfig(cmd *cobra.Command, base types.RenderConfig) (types.RenderConfig, error) {
	fs := cmd.Flags()
	cfg := base

	if profile, _ := fs.GetString("profile"); profile != "" {
		p, err := convert.LoadProfile(profile)
		if err != nil {
			return cfg, err
		}
		cfg = p
	}

	if fs.Changed("device") {
		v, _ := fs.GetString("device")
		cfg.Device = types.ParseDevice(v)
	}
	if fs.Changed("resolution") {
		v, _ := fs.GetString("resolution")
		res, err := parseResolution(v)
		if err != nil {
			return cfg, err
		}
		cfg.Resolution = res
	}
	ints := []struct {
		flag string
		dst  *int
	}{
		{"first-page", &cfg.PageRange.First},
		{"last-page", &cfg.PageRange.Last},
		{"text-alpha", &cfg.TextAlphaBits},
		{"graphics-alpha", &cfg.GraphicsAlphaBits},
		{"jpeg-quality", &cfg.JPEGQuality},
		{"threads", &cfg.RenderingThreads},
	}
	for _, f := range ints {
		if fs.Changed(f.flag) {
			*f.dst, _ = fs.GetInt(f.flag)
		}
	}
	if fs.Changed("fit-page") {
		cfg.FitPage, _ = fs.GetBool("fit-page")
	}
	if fs.Lookup("multi-page") != nil && fs.Changed("multi-page") {
		cfg.MultiPage, _ = fs.GetBool("multi-page")
	}
	cfg.DeviceOptions = append(append([]types.DeviceOption(nil), cfg.DeviceOptions...), deviceOptions(fs, cfg.Device)...)
	return cfg, nil
}

// deviceOptions expands the device-specific flags that apply to device into
// switch presets. Flags for other devices are ignored.
func deviceOptions(fs *pflag.FlagSet, device types.Device) []types.DeviceOption {
	var opts []types.DeviceOption
	switch device {
	case types.DevicePNGAlpha:
		if bg, _ := fs.GetString("png-background"); bg != "" {
			opts = append(opts, types.PNGAlphaOptions(bg)...)
		}
	case types.DeviceTIFFCrle, types.DeviceTIFFG3, types.DeviceTIFFG32d, types.DeviceTIFFG4, types.DeviceTIFFLZW, types.DeviceTIFFPack:
		if fs.Changed("tiff-strip-size") || fs.Changed("tiff-adjust-width") {
			strip, _ := fs.GetInt("tiff-strip-size")
			adjust, _ := fs.GetInt("tiff-adjust-width")
			opts = append(opts, types.TIFFOptions(strip, adjust)...)
		}
	case types.DevicePSWrite:
		if level, _ := fs.GetString("language-level"); level != "" {
			opts = append(opts, types.PSOptions(level)...)
		}
	case types.DeviceEPSWrite:
		if level, _ := fs.GetString("language-level"); level != "" {
			opts = append(opts, types.EPSOptions(level)...)
		}
	}
	return opts
}

// parseResolution accepts "300" or "300x150".
func parseResolution(s string) (types.Resolution, error) {
	xs, ys, hasY := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	x, err := strconv.Atoi(xs)
	if err != nil || x <= 0 {
		return types.Resolution{}, fmt.Errorf("invalid resolution %q: want X or XxY in dpi", s)
	}
	res := types.Resolution{X: x}
	if hasY {
		y, err := strconv.Atoi(ys)
		if err != nil || y <= 0 {
			return types.Resolution{}, fmt.Errorf("invalid resolution %q: want X or XxY in dpi", s)
		}
		res.Y = y
	}
	return res, nil
}
