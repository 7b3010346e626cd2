// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Device identifies a Ghostscript output device. The set is closed: tags that
// are not in the catalogue resolve to DeviceUnknown.
type Device string

// DeviceUnknown is the fallback for tags outside the catalogue. It is passed to
// the interpreter as "-sDEVICE=unknown", which the interpreter rejects.
const DeviceUnknown Device = "unknown"

// Raster, fax and high-level devices known to the converter.
const (
	DevicePNG16m    Device = "png16m"
	DevicePNGGray   Device = "pnggray"
	DevicePNG256    Device = "png256"
	DevicePNG16     Device = "png16"
	DevicePNGMono   Device = "pngmono"
	DevicePNGAlpha  Device = "pngalpha"
	DeviceJPEG      Device = "jpeg"
	DeviceJPEGGray  Device = "jpeggray"
	DevicePBM       Device = "pbm"
	DevicePBMRaw    Device = "pbmraw"
	DevicePGM       Device = "pgm"
	DevicePGMRaw    Device = "pgmraw"
	DevicePGNM      Device = "pgnm"
	DevicePGNMRaw   Device = "pgnmraw"
	DevicePNM       Device = "pnm"
	DevicePNMRaw    Device = "pnmraw"
	DevicePPM       Device = "ppm"
	DevicePPMRaw    Device = "ppmraw"
	DevicePKM       Device = "pkm"
	DevicePKMRaw    Device = "pkmraw"
	DevicePKSM      Device = "pksm"
	DevicePKSMRaw   Device = "pksmraw"
	DeviceTIFFGray  Device = "tiffgray"
	DeviceTIFF12nc  Device = "tiff12nc"
	DeviceTIFF24nc  Device = "tiff24nc"
	DeviceTIFF32nc  Device = "tiff32nc"
	DeviceTIFFSep   Device = "tiffsep"
	DeviceTIFFCrle  Device = "tiffcrle"
	DeviceTIFFG3    Device = "tiffg3"
	DeviceTIFFG32d  Device = "tiffg32d"
	DeviceTIFFG4    Device = "tiffg4"
	DeviceTIFFLZW   Device = "tifflzw"
	DeviceTIFFPack  Device = "tiffpack"
	DeviceFaxG3     Device = "faxg3"
	DeviceFaxG32d   Device = "faxg32d"
	DeviceFaxG4     Device = "faxg4"
	DeviceBMPMono   Device = "bmpmono"
	DeviceBMPGray   Device = "bmpgray"
	DeviceBMPSep1   Device = "bmpsep1"
	DeviceBMPSep8   Device = "bmpsep8"
	DeviceBMP16     Device = "bmp16"
	DeviceBMP256    Device = "bmp256"
	DeviceBMP16m    Device = "bmp16m"
	DeviceBMP32b    Device = "bmp32b"
	DevicePCXMono   Device = "pcxmono"
	DevicePCXGray   Device = "pcxgray"
	DevicePCX16     Device = "pcx16"
	DevicePCX256    Device = "pcx256"
	DevicePCX24b    Device = "pcx24b"
	DevicePCXCMYK   Device = "pcxcmyk"
	DevicePSDCMYK   Device = "psdcmyk"
	DevicePSDRGB    Device = "psdrgb"
	DevicePDFWrite  Device = "pdfwrite"
	DevicePSWrite   Device = "pswrite"
	DeviceEPSWrite  Device = "epswrite"
	DevicePXLMono   Device = "pxlmono"
	DevicePXLColor  Device = "pxlcolor"
)

// deviceExtensions maps every catalogued device to the file extension of the
// files it writes.
var deviceExtensions = map[Device]string{
	DevicePNG16m: "png", DevicePNGGray: "png", DevicePNG256: "png",
	DevicePNG16: "png", DevicePNGMono: "png", DevicePNGAlpha: "png",

	DeviceJPEG: "jpg", DeviceJPEGGray: "jpg",

	DevicePBM: "pnm", DevicePBMRaw: "pnm", DevicePGM: "pnm", DevicePGMRaw: "pnm",
	DevicePGNM: "pnm", DevicePGNMRaw: "pnm", DevicePNM: "pnm", DevicePNMRaw: "pnm",
	DevicePPM: "pnm", DevicePPMRaw: "pnm", DevicePKM: "pnm", DevicePKMRaw: "pnm",
	DevicePKSM: "pnm", DevicePKSMRaw: "pnm",

	DeviceTIFFGray: "tif", DeviceTIFF12nc: "tif", DeviceTIFF24nc: "tif",
	DeviceTIFF32nc: "tif", DeviceTIFFSep: "tif", DeviceTIFFCrle: "tif",
	DeviceTIFFG3: "tif", DeviceTIFFG32d: "tif", DeviceTIFFG4: "tif",
	DeviceTIFFLZW: "tif", DeviceTIFFPack: "tif",

	DeviceFaxG3: "raw", DeviceFaxG32d: "raw", DeviceFaxG4: "raw",

	DeviceBMPMono: "bmp", DeviceBMPGray: "bmp", DeviceBMPSep1: "bmp",
	DeviceBMPSep8: "bmp", DeviceBMP16: "bmp", DeviceBMP256: "bmp",
	DeviceBMP16m: "bmp", DeviceBMP32b: "bmp",

	DevicePCXMono: "pcx", DevicePCXGray: "pcx", DevicePCX16: "pcx",
	DevicePCX256: "pcx", DevicePCX24b: "pcx", DevicePCXCMYK: "pcx",

	DevicePSDCMYK: "psd", DevicePSDRGB: "psd",

	DevicePDFWrite: "pdf",
	DevicePSWrite:  "ps",
	DeviceEPSWrite: "eps",
	DevicePXLMono:  "pxl", DevicePXLColor: "pxl",
}

// ParseDevice resolves a device tag case-insensitively. Empty input stays
// empty so that callers can report an unset device; any other tag outside the
// catalogue becomes DeviceUnknown.
func ParseDevice(tag string) Device {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return ""
	}
	d := Device(tag)
	if _, ok := deviceExtensions[d]; ok {
		return d
	}
	return DeviceUnknown
}

// Known reports whether d is in the device catalogue.
func (d Device) Known() bool {
	_, ok := deviceExtensions[d]
	return ok
}

// Extension returns the file extension (without the dot) written by d, or ""
// for unknown devices.
func (d Device) Extension() string {
	return deviceExtensions[d]
}

// Devices returns the catalogued device tags in no particular order.
func Devices() []Device {
	out := make([]Device, 0, len(deviceExtensions))
	for d := range deviceExtensions {
		out = append(out, d)
	}
	return out
}
