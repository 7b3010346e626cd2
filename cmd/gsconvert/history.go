// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gsconvert/internal/journal"
	"github.com/pdiddy/gsconvert/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent conversions from the journal",
	Long: `History reads the conversion journal (journal.path in the config file or
--journal) and lists the most recent conversions, newest first.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Journal.Path == "" {
		return fmt.Errorf("no journal configured: set journal.path or pass --journal")
	}

	store, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	results, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistory(os.Stdout, results, jsonOutput)
}

func formatHistory(w io.Writer, results []types.ConversionResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-19s  %-9s  %-10s  %5s  %6s  %s\n",
		"Started", "Status", "Device", "Pages", "Code", "Input")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for _, r := range results {
		device := string(r.Device)
		if len(device) > 10 {
			device = device[:7] + "..."
		}
		fmt.Fprintf(w, "%-19s  %-9s  %-10s  %5d  %6d  %s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Status, device, r.PageCount, r.Code, r.Input)
	}

	fmt.Fprintf(w, "\n%d conversions\n", len(results))
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of conversions to list")
	historyCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(historyCmd)
}
