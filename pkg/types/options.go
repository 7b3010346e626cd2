// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strconv"

// JPEGOptions sets the IJG quality (0-100, interpreter default 75) for the
// jpeg devices.
func JPEGOptions(quality int) []DeviceOption {
	return []DeviceOption{{Switch: "-dJPEGQ=", Value: strconv.Itoa(quality)}}
}

// PNGAlphaOptions sets the suggested bKGD background for pngalpha. The colour
// is given as RRGGBB, with or without a leading '#'.
func PNGAlphaOptions(background string) []DeviceOption {
	if len(background) > 0 && background[0] == '#' {
		background = background[1:]
	}
	return []DeviceOption{{Switch: "-dBackgroundColor=", Value: "16#" + background}}
}

// TIFFOptions sets the strip size and A4/B4 width snapping for the
// black-and-white TIFF devices.
func TIFFOptions(maxStripSize, adjustWidth int) []DeviceOption {
	return []DeviceOption{
		{Switch: "-dMaxStripSize=", Value: strconv.Itoa(maxStripSize)},
		{Switch: "-dAdjustWidth=", Value: strconv.Itoa(adjustWidth)},
	}
}

// PSOptions sets the language level (1, 1.5, 2 or 3) written by pswrite.
func PSOptions(languageLevel string) []DeviceOption {
	return []DeviceOption{{Switch: "-dLanguageLevel=", Value: languageLevel}}
}

// EPSOptions sets the language level written by epswrite.
func EPSOptions(languageLevel string) []DeviceOption {
	return PSOptions(languageLevel)
}
