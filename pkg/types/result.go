// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus is the outcome of one conversion.
type ConversionStatus string

const (
	ConversionDone    ConversionStatus = "converted"
	ConversionFailed  ConversionStatus = "failed"
	ConversionSkipped ConversionStatus = "skipped"
)

// ConversionResult describes one finished conversion. It is returned to the
// caller, written to manifests, and stored in the journal.
type ConversionResult struct {
	ID     string           `json:"id" yaml:"id"`
	Input  string           `json:"input" yaml:"input"`
	Device Device           `json:"device" yaml:"device"`
	Status ConversionStatus `json:"status" yaml:"status"`

	// Outputs are the produced files in page order.
	Outputs []string `json:"outputs,omitempty" yaml:"outputs,omitempty"`

	// PageCount is read from the interpreter's banner; 0 when it never
	// printed one.
	PageCount int `json:"page_count" yaml:"page_count"`

	// SpotColors are the separation names in discovery order.
	SpotColors []string `json:"spot_colors,omitempty" yaml:"spot_colors,omitempty"`

	// Parameters is the argument list for diagnostics, without the program
	// name and with the file arguments quoted.
	Parameters string `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	// Code is the interpreter return code, or a driver code for failures
	// raised before the interpreter ran.
	Code  int    `json:"code" yaml:"code"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}

// Succeeded reports whether the conversion produced its outputs.
func (r ConversionResult) Succeeded() bool {
	return r.Status == ConversionDone
}
