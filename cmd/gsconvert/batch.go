// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gsconvert/internal/convert"
)

var batchCmd = &cobra.Command{
	Use:   "batch <inputs...>",
	Short: "Convert many documents one after another",
	Long: `Batch converts every input into --out-dir with the same render settings.
Inputs in formats the interpreter cannot read are skipped. The command exits
non-zero if any input failed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	env, err := openEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	render, err := renderConfig(cmd, env.cfg.Render)
	if err != nil {
		return err
	}
	outDir, _ := cmd.Flags().GetString("out-dir")
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	result := convert.ConvertBatch(cmd.Context(), env.svc, args, outDir, render, os.Stdout)
	if err := writeManifest(cmd, result.Results...); err != nil {
		env.log.Warn().Err(err).Msg("writing manifest")
	}
	if result.HasFailures() {
		for _, r := range result.Results {
			if r.Error != "" {
				failColor.Fprintf(os.Stderr, "✗ %s: %s\n", r.Input, r.Error)
			}
		}
		return fmt.Errorf("%d input(s) failed conversion", result.Failed)
	}
	return nil
}

func init() {
	addRenderFlags(batchCmd.Flags())
	batchCmd.Flags().String("out-dir", "", "directory for output files (default: next to each input)")
	batchCmd.Flags().String("manifest", "", "write all conversion results as YAML to this file")

	rootCmd.AddCommand(batchCmd)
}
