// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gsconvert/internal/convert"
	"github.com/pdiddy/gsconvert/internal/stdio"
	"github.com/pdiddy/gsconvert/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> [output]",
	Short: "Convert one PostScript, EPS or PDF document",
	Long: `Convert renders input with the configured device. The output is a path or
a template carrying a page placeholder such as page%03d.png; without one the
name is derived from the input and the device, one file per page.

On failure the interpreter's return code, its category and the argument
list are printed and the command exits non-zero.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	env, err := openEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	render, err := renderConfig(cmd, env.cfg.Render)
	if err != nil {
		return err
	}

	req := convert.Request{Input: args[0], Render: render}
	if len(args) > 1 {
		req.Output = args[1]
	}
	var listeners stdio.Listeners
	if progress, _ := cmd.Flags().GetBool("progress"); progress {
		listeners = append(listeners, newProgressListener())
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		listeners = append(listeners, echoListener())
	}
	if len(listeners) > 0 {
		req.Listener = listeners
	}

	res, convErr := env.svc.Convert(cmd.Context(), req)
	if err := writeManifest(cmd, res); err != nil {
		env.log.Warn().Err(err).Msg("writing manifest")
	}
	if convErr != nil {
		return convErr
	}

	okColor.Printf("✓ converted %s (%d pages)\n", res.Input, res.PageCount)
	for _, out := range res.Outputs {
		fmt.Println(out)
	}
	return nil
}

// writeManifest writes res to the --manifest file, if one was requested.
func writeManifest(cmd *cobra.Command, results ...types.ConversionResult) error {
	path, _ := cmd.Flags().GetString("manifest")
	if path == "" {
		return nil
	}
	return convert.WriteManifest(path, results...)
}

// echoListener copies the interpreter's raw text to stderr.
func echoListener() stdio.Listener {
	return stdio.ListenerFunc(func(e stdio.Event) {
		if e.Kind == stdio.EventMessage {
			fmt.Fprint(os.Stderr, e.Text)
		}
	})
}

func init() {
	addRenderFlags(convertCmd.Flags())
	convertCmd.Flags().Bool("multi-page", false, "write one file per page into an output path without a placeholder")
	convertCmd.Flags().String("manifest", "", "write the conversion result as YAML to this file")
	convertCmd.Flags().Bool("progress", false, "show a page progress bar")
	convertCmd.Flags().BoolP("verbose", "v", false, "echo interpreter output")

	rootCmd.AddCommand(convertCmd)
}
