// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ghostscript

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
)

func openLibrary(path string) (uintptr, error) {
	h, err := windows.LoadLibrary(path)
	if err != nil {
		switch {
		case errors.Is(err, windows.ERROR_BAD_EXE_FORMAT):
			return 0, fmt.Errorf("%w: %s: %v", ErrArchitectureMismatch, path, err)
		case errors.Is(err, windows.ERROR_MOD_NOT_FOUND), errors.Is(err, windows.ERROR_FILE_NOT_FOUND):
			return 0, fmt.Errorf("%w: %s: %v", ErrLibraryNotFound, path, err)
		default:
			return 0, fmt.Errorf("%w: %s: %v", ErrLibraryLoad, path, err)
		}
	}
	return uintptr(h), nil
}

func closeLibrary(h uintptr) error {
	return windows.FreeLibrary(windows.Handle(h))
}
