// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/gutenfetch/internal/catalog"
	"github.com/pdiddy/gutenfetch/internal/fetch"
	"github.com/pdiddy/gutenfetch/internal/httputil"
	"github.com/pdiddy/gutenfetch/pkg/types"
)

const (
	defaultCount     = 10
	defaultOutputDir = "output"
	defaultRetries   = 3
	defaultChunkSize = 64 * 1024
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "gutenfetch/0.1"
)

func init() {
	rootCmd.Flags().StringP("output", "o", defaultOutputDir, "output directory for downloaded books")
	rootCmd.Flags().Bool("metadata", true, "save each book's catalog record as a JSON sidecar")
	rootCmd.Flags().Int("retries", defaultRetries, "download attempts per file")
	rootCmd.Flags().Int("chunk-size", defaultChunkSize, "chunk size in bytes for streamed downloads")
	rootCmd.Flags().String("sort", string(catalog.SortPopular), "sort mode: popular, ascending, descending, title, author, or random")
	rootCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	rootCmd.Flags().Duration("delay", 0, "pause between consecutive downloads")
	rootCmd.Flags().String("report", "", "write a YAML run report to this path")

	// Flags bridge into viper so config file and GUTENFETCH_* env vars
	// supply values when a flag is not set on the command line.
	for _, name := range []string{"output", "metadata", "retries", "chunk-size", "sort", "timeout", "delay", "report"} {
		viper.BindPFlag(name, rootCmd.Flags().Lookup(name))
	}
	viper.SetDefault("user-agent", defaultUserAgent)
}

func runFetch(cmd *cobra.Command, args []string) error {
	count := defaultCount
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("count must be a positive integer, got %q", args[0])
		}
		count = n
	}

	mode, err := catalog.ParseSortMode(viper.GetString("sort"))
	if err != nil {
		return err
	}

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: viper.GetString("user-agent"),
		},
		OutputDir:     viper.GetString("output"),
		SaveMetadata:  viper.GetBool("metadata"),
		MaxRetries:    viper.GetInt("retries"),
		ChunkSize:     viper.GetInt("chunk-size"),
		DownloadDelay: viper.GetDuration("delay"),
		ReportPath:    viper.GetString("report"),
	}

	client := httputil.NewClient(cfg.HTTPConfig)

	result, err := fetch.Run(cmd.Context(), client, mode, count, cfg, os.Stdout)
	if err != nil {
		return err
	}

	// Per-book failures are reported in the summary but do not change the
	// exit status; only run-level errors do.
	if result.HasFailures() {
		fmt.Fprintf(os.Stderr, "%d book(s) failed; see summary for details\n", result.Failed)
	}
	return nil
}
