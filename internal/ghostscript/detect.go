// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ghostscript

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/gsconvert/pkg/types"
)

// loader abstracts dynamic loading for testing.
type loader interface {
	Open(path string) (uintptr, error)
	Exists(path string) bool
}

// osLoader is the production loader.
type osLoader struct{}

func (osLoader) Open(path string) (uintptr, error) { return openLibrary(path) }

func (osLoader) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

var defaultLoader loader = osLoader{}

// libraryNames returns the library file names tried on goos, most recent
// release first.
func libraryNames(goos string) []string {
	switch goos {
	case "windows":
		return []string{"gsdll64.dll", "gsdll32.dll"}
	case "darwin":
		return []string{"libgs.10.dylib", "libgs.dylib"}
	default:
		return []string{"libgs.so.10", "libgs.so.9", "libgs.so"}
	}
}

// candidates lists the paths to try in order. Without configured directories
// the bare names are returned so the system loader's search path applies.
func candidates(cfg types.EngineConfig, goos string) []string {
	if cfg.LibraryPath != "" {
		return []string{cfg.LibraryPath}
	}
	names := libraryNames(goos)
	if len(cfg.LibraryDirs) == 0 {
		return names
	}
	out := make([]string, 0, len(cfg.LibraryDirs)*len(names))
	for _, dir := range cfg.LibraryDirs {
		for _, name := range names {
			out = append(out, filepath.Join(dir, name))
		}
	}
	return out
}

// locate opens the first candidate that loads. An explicit library path must
// exist. When nothing loads, an architecture mismatch is reported ahead of a
// generic load failure, and both ahead of not found.
func locate(cfg types.EngineConfig, ld loader, goos string) (string, uintptr, error) {
	if cfg.LibraryPath != "" {
		if !ld.Exists(cfg.LibraryPath) {
			return "", 0, fmt.Errorf("%w: %s", ErrLibraryNotFound, cfg.LibraryPath)
		}
		h, err := ld.Open(cfg.LibraryPath)
		if err != nil {
			return "", 0, err
		}
		return cfg.LibraryPath, h, nil
	}

	var mismatch, loadErr error
	tried := candidates(cfg, goos)
	for _, path := range tried {
		if len(cfg.LibraryDirs) > 0 && !ld.Exists(path) {
			continue
		}
		h, err := ld.Open(path)
		if err == nil {
			return path, h, nil
		}
		switch {
		case errors.Is(err, ErrArchitectureMismatch):
			if mismatch == nil {
				mismatch = err
			}
		case errors.Is(err, ErrLibraryNotFound):
		default:
			if loadErr == nil {
				loadErr = err
			}
		}
	}

	switch {
	case mismatch != nil:
		return "", 0, mismatch
	case loadErr != nil:
		return "", 0, loadErr
	default:
		return "", 0, fmt.Errorf("%w: tried %s", ErrLibraryNotFound, strings.Join(tried, ", "))
	}
}

// classifyLoadError maps a dynamic loader message to one of the library
// errors. The loader only reports text, so the match is on known phrases.
func classifyLoadError(path string, err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "wrong elf class"),
		strings.Contains(msg, "incompatible architecture"),
		strings.Contains(msg, "wrong architecture"):
		return fmt.Errorf("%w: %s: %v", ErrArchitectureMismatch, path, err)
	case strings.Contains(msg, "no such file"),
		strings.Contains(msg, "image not found"),
		strings.Contains(msg, "not found"):
		return fmt.Errorf("%w: %s: %v", ErrLibraryNotFound, path, err)
	default:
		return fmt.Errorf("%w: %s: %v", ErrLibraryLoad, path, err)
	}
}
