// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build !windows

package ghostscript

// cLong matches C long, which has pointer width on LP64 and ILP32 systems.
type cLong = int
