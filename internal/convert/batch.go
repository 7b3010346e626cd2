// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/pdiddy/gsconvert/pkg/types"
)

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int

	// Results has one entry per input, in input order.
	Results []types.ConversionResult
}

// Total returns the total number of inputs processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any input failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertOne converts a single input into outDir and writes a status line
// to w. Inputs in formats the interpreter cannot read are skipped.
func ConvertOne(ctx context.Context, c Converter, input, outDir string, render types.RenderConfig, w io.Writer) types.ConversionResult {
	base := filepath.Base(input)

	if !Supported(input) {
		fmt.Fprintf(w, "skipped: %s (unsupported format)\n", base)
		return types.ConversionResult{Input: input, Device: render.Device, Status: types.ConversionSkipped}
	}

	res, err := c.Convert(ctx, Request{Input: input, OutputDir: outDir, Render: render})
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		res.Status = types.ConversionFailed
		return res
	}

	fmt.Fprintf(w, "converted: %s (%d pages, %d files)\n", base, res.PageCount, len(res.Outputs))
	return res
}

// ConvertBatch converts inputs one after another, printing per-file status
// to w and returning a summary. A cancelled ctx fails the remaining inputs.
func ConvertBatch(ctx context.Context, c Converter, inputs []string, outDir string, render types.RenderConfig, w io.Writer) BatchResult {
	var result BatchResult
	for _, in := range inputs {
		res := ConvertOne(ctx, c, in, outDir, render, w)
		switch res.Status {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionSkipped:
			result.Skipped++
		default:
			result.Failed++
		}
		result.Results = append(result.Results, res)
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}
