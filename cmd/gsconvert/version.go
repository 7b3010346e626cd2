// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gsconvert/internal/ghostscript"
	"github.com/pdiddy/gsconvert/internal/logging"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of gsconvert",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("gsconvert %s\n", version)

		if engine, _ := cmd.Flags().GetBool("engine"); !engine {
			return nil
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		lib, err := ghostscript.Open(cfg.Engine, logging.New(cfg.Log))
		if err != nil {
			return err
		}
		defer lib.Close()

		rev, err := lib.Revision()
		if err != nil {
			return err
		}
		fmt.Printf("%s\n%s\nlibrary: %s\n", rev, rev.Copyright, lib.Path())
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("engine", false, "also print the interpreter library revision")
	rootCmd.AddCommand(versionCmd)
}
