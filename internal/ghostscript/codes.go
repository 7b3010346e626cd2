// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ghostscript

import "fmt"

// Category groups interpreter return codes by where they come from.
type Category int

const (
	// CategoryUnknown covers any code outside the known ranges.
	CategoryUnknown Category = iota
	// CategoryLevel1 is a PostScript level 1 error (-1 to -25).
	CategoryLevel1
	// CategoryLevel2 is a level 2 or Display PostScript error (-26 to -30).
	CategoryLevel2
	// CategoryInternal is an interpreter pseudo-code (-100 to -110).
	CategoryInternal
	// CategoryCustom is raised by this package, never by the interpreter.
	CategoryCustom
)

func (c Category) String() string {
	switch c {
	case CategoryLevel1:
		return "level 1 error"
	case CategoryLevel2:
		return "level 2 error"
	case CategoryInternal:
		return "internal code"
	case CategoryCustom:
		return "driver error"
	default:
		return "unknown error"
	}
}

// Return codes with special handling.
const (
	CodeOK                  = 0
	CodeUnknownError        = -1
	CodeIOError             = -12
	CodeFatal               = -100
	CodeQuit                = -101
	CodeUnsupportedFileType = -10000
	CodeLibraryLoadFailed   = -10001
	CodeLibraryNotFound     = -10002
)

var codeNames = map[int]string{
	-1:  "e_unknownerror",
	-2:  "e_dictfull",
	-3:  "e_dictstackoverflow",
	-4:  "e_dictstackunderflow",
	-5:  "e_execstackoverflow",
	-6:  "e_interrupt",
	-7:  "e_invalidaccess",
	-8:  "e_invalidexit",
	-9:  "e_invalidfileaccess",
	-10: "e_invalidfont",
	-11: "e_invalidrestore",
	-12: "e_ioerror",
	-13: "e_limitcheck",
	-14: "e_nocurrentpoint",
	-15: "e_rangecheck",
	-16: "e_stackoverflow",
	-17: "e_stackunderflow",
	-18: "e_syntaxerror",
	-19: "e_timeout",
	-20: "e_typecheck",
	-21: "e_undefined",
	-22: "e_undefinedfilename",
	-23: "e_undefinedresult",
	-24: "e_unmatchedmark",
	-25: "e_VMerror",

	-26: "e_configurationerror",
	-27: "e_invalidcontext",
	-28: "e_undefinedresource",
	-29: "e_unregistered",
	-30: "e_invalidid",

	-100: "e_Fatal",
	-101: "e_Quit",
	-102: "e_InterpreterExit",
	-103: "e_RemapColor",
	-104: "e_ExecStackUnderflow",
	-105: "e_VMreclaim",
	-106: "e_NeedInput",
	-107: "e_NeedStdin",
	-108: "e_NeedStdout",
	-109: "e_NeedStderr",
	-110: "e_Info",

	CodeUnsupportedFileType: "unsupported_file_type",
	CodeLibraryLoadFailed:   "library_load_failed",
	CodeLibraryNotFound:     "library_not_found",
}

var customMessages = map[int]string{
	CodeUnsupportedFileType: "input file type is not supported by the interpreter",
	CodeLibraryLoadFailed:   "unable to load the interpreter library",
	CodeLibraryNotFound:     "interpreter library not found in the configured locations",
}

// ReturnCode is a classified interpreter return value. Value keeps the raw
// number for diagnostics.
type ReturnCode struct {
	Value    int
	Category Category
	Name     string
}

// Classify tags a raw return value with its category and symbolic name.
func Classify(v int) ReturnCode {
	rc := ReturnCode{Value: v, Name: codeNames[v]}
	switch {
	case v >= -25 && v <= -1:
		rc.Category = CategoryLevel1
	case v >= -30 && v <= -26:
		rc.Category = CategoryLevel2
	case v >= -110 && v <= -100:
		rc.Category = CategoryInternal
	case v == CodeUnsupportedFileType, v == CodeLibraryLoadFailed, v == CodeLibraryNotFound:
		rc.Category = CategoryCustom
	}
	return rc
}

// Success reports whether the code ends a run without error. The graceful
// quit code counts as success.
func (rc ReturnCode) Success() bool {
	return rc.Value >= CodeOK || rc.Value == CodeQuit
}

// Message resolves a human-readable description of the code.
func (rc ReturnCode) Message() string {
	if rc.Value >= CodeOK {
		return "success"
	}
	if msg, ok := customMessages[rc.Value]; ok {
		return msg
	}
	if rc.Name == "" {
		return "unknown error"
	}
	return fmt.Sprintf("%s: %s", rc.Category, rc.Name)
}

func (rc ReturnCode) String() string {
	return fmt.Sprintf("%s (%d)", rc.Message(), rc.Value)
}
