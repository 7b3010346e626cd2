// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stdio

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Supported encoding names for the interpreter's text streams.
const (
	EncodingUTF8   = "utf8"
	EncodingCP1252 = "cp1252"
	EncodingAuto   = "auto"
)

// ResolveEncoding maps an encoding name to a golang.org/x/text Encoding. A
// nil Encoding means the bytes are already UTF-8 and pass through. "auto" and
// the empty name pick the platform's ANSI code page on Windows and UTF-8
// elsewhere.
func ResolveEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case EncodingAuto, "":
		if runtime.GOOS == "windows" {
			return charmap.Windows1252, nil
		}
		return nil, nil
	case EncodingUTF8, "utf-8":
		return nil, nil
	case EncodingCP1252, "windows-1252", "ansi":
		return charmap.Windows1252, nil
	case "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	default:
		return nil, fmt.Errorf("unsupported encoding: %q (supported: utf8, cp1252, latin1, auto)", name)
	}
}

// decoder turns raw interpreter bytes into text. Undecodable input falls
// back to the raw bytes.
type decoder struct {
	enc encoding.Encoding
}

func (d decoder) text(p []byte) string {
	if d.enc == nil {
		return string(p)
	}
	out, err := d.enc.NewDecoder().Bytes(p)
	if err != nil {
		return string(p)
	}
	return string(out)
}
