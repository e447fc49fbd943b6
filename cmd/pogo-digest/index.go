// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/pogo-digest/internal/index"
	"github.com/pdiddy/pogo-digest/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the lexical search artifacts",
	Long: `Index fits the TF-IDF and BM25 models over each domain's canonical
records and persists them as search artifacts alongside a metadata
sidecar. A domain too sparse to fit produces a diagnostic file instead
of an artifact and the other domains still build.`,
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)
	lib := openLibrary(cmd)

	minTokens, _ := cmd.Flags().GetInt("min-tokens")
	cfg := types.IndexConfig{MinTokens: minTokens}

	name, _ := cmd.Flags().GetString("domain")
	if name != "" {
		domains, err := domainsFromFlag(cmd)
		if err != nil {
			return err
		}
		return index.BuildDomain(lib, domains[0], cfg, log)
	}
	return index.BuildAll(lib, cfg, log)
}

func init() {
	indexCmd.Flags().String("domain", "", "index a single domain (default: all)")
	indexCmd.Flags().Int("min-tokens", index.DefaultMinTokens, "minimum tokens for a document to be indexed")

	rootCmd.AddCommand(indexCmd)
}
