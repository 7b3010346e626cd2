// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the gsconvert CLI.
// Implements: docs/ARCHITECTURE § Command Line.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the gsconvert CLI.
var rootCmd = &cobra.Command{
	Use:   "gsconvert",
	Short: "Convert PostScript and PDF documents with the Ghostscript library",
	Long: `gsconvert drives the Ghostscript interpreter library in-process to render
PostScript, EPS and PDF documents to raster and vector devices.

Settings come from gsconvert.yaml (./ or ~/.config/gsconvert/), GSCONVERT_*
environment variables, a .env file, and command flags, in increasing order
of precedence.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./gsconvert.yaml or ~/.config/gsconvert/gsconvert.yaml)")
	rootCmd.PersistentFlags().String("library", "", "path to the Ghostscript shared library")
	rootCmd.PersistentFlags().String("journal", "", "conversion history database (empty disables it)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error")

	_ = viper.BindPFlag("engine.library_path", rootCmd.PersistentFlags().Lookup("library"))
	_ = viper.BindPFlag("journal.path", rootCmd.PersistentFlags().Lookup("journal"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	// A missing .env is not an error.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("gsconvert")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "gsconvert"))
		}
	}

	viper.SetEnvPrefix("GSCONVERT")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printFailure(os.Stderr, err)
		os.Exit(1)
	}
}
