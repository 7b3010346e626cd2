// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build darwin || freebsd || linux

package ghostscript

import "github.com/ebitengine/purego"

func openLibrary(path string) (uintptr, error) {
	h, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return 0, classifyLoadError(path, err)
	}
	return h, nil
}

func closeLibrary(h uintptr) error {
	return purego.Dlclose(h)
}
