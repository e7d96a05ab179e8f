// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the gutenfetch CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command; running it performs the fetch.
var rootCmd = &cobra.Command{
	Use:   "gutenfetch [count]",
	Short: "Download the most popular Project Gutenberg e-books as EPUB",
	Long: `gutenfetch downloads the top N e-books from the Gutendex catalog
(https://gutendex.com) in EPUB format, preferring the no-images variant.

Books already present in the output directory are skipped, so interrupted
runs can simply be re-run. Each book's full catalog record is saved as a
JSON sidecar next to the EPUB unless --metadata=false is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./gutenfetch.yaml or ~/.config/gutenfetch/config.yaml)")
}

func initConfig() {
	// A local .env feeds the environment before viper binds it.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("gutenfetch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "gutenfetch"))
		}
	}

	viper.SetEnvPrefix("GUTENFETCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
