// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gsconvert/internal/stdio"
)

var separateCmd = &cobra.Command{
	Use:   "separate <input> [outdir]",
	Short: "Render one TIFF per page and colorant",
	Long: `Separate renders input with the tiffsep device and names every
separation file after its colorant, e.g. brochure_1.Cyan.tif or
brochure_2.PANTONE 286 C.tif. The spot colors found are printed at the end.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSeparate,
}

func runSeparate(cmd *cobra.Command, args []string) error {
	env, err := openEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	render, err := renderConfig(cmd, env.cfg.Render)
	if err != nil {
		return err
	}

	var outDir string
	if len(args) > 1 {
		outDir = args[1]
	}
	prefix, _ := cmd.Flags().GetString("prefix")

	var l stdio.Listener
	if progress, _ := cmd.Flags().GetBool("progress"); progress {
		l = newProgressListener()
	}

	res, convErr := env.svc.CreateSeparations(cmd.Context(), args[0], outDir, prefix, render, l)
	if err := writeManifest(cmd, res); err != nil {
		env.log.Warn().Err(err).Msg("writing manifest")
	}
	if convErr != nil {
		return convErr
	}

	okColor.Printf("✓ separated %s (%d pages, %d files)\n", res.Input, res.PageCount, len(res.Outputs))
	for _, out := range res.Outputs {
		fmt.Println(out)
	}
	if len(res.SpotColors) > 0 {
		infoColor.Println("Spot colors:")
		for _, name := range res.SpotColors {
			fmt.Printf("  %s\n", name)
		}
	}
	return nil
}

func init() {
	addRenderFlags(separateCmd.Flags())
	separateCmd.Flags().String("prefix", "", "output file prefix (default: input base name)")
	separateCmd.Flags().String("manifest", "", "write the conversion result as YAML to this file")
	separateCmd.Flags().Bool("progress", false, "show a page progress bar")

	rootCmd.AddCommand(separateCmd)
}
