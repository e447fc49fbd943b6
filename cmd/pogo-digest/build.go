// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pdiddy/pogo-digest/internal/dedup"
	"github.com/pdiddy/pogo-digest/internal/library"
	"github.com/pdiddy/pogo-digest/internal/normalize"
	"github.com/pdiddy/pogo-digest/internal/schema"
	"github.com/pdiddy/pogo-digest/pkg/types"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Normalize, merge, validate, and publish the canonical library",
	Long: `Build turns the raw scrape snapshot into the canonical library. For
each domain it normalizes raw records through the field tables, merges
duplicates by grouping key, validates the merged records against the
domain's JSON schema, and publishes the result atomically.

A record failing schema validation aborts the domain's publish and names
the offending record; the previously published canonical file stays in
place. Use --strict to also treat a missing domain schema as an error.`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)
	lib := openLibrary(cmd)
	strict, _ := cmd.Flags().GetBool("strict")

	domains, err := domainsFromFlag(cmd)
	if err != nil {
		return err
	}

	var failed []string
	for _, domain := range domains {
		if err := buildDomain(lib, log, domain, strict); err != nil {
			log.Error().Str("domain", string(domain)).Err(err).Msg("build failed")
			failed = append(failed, string(domain))
			continue
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("build failed for: %v", failed)
	}
	return nil
}

func buildDomain(lib *library.Library, log zerolog.Logger, domain types.Domain, strict bool) error {
	raws, err := lib.LoadRaw(domain)
	if err != nil {
		return fmt.Errorf("loading raw records: %w", err)
	}

	dropped := 0
	records := normalize.Batch(domain, raws, func(i int, err error) {
		dropped++
		log.Debug().Str("domain", string(domain)).Int("row", i).Err(err).Msg("row dropped")
	})

	merged, removed := dedup.Merge(domain, records)

	if err := schema.Validate(domain, merged); err != nil {
		if errors.Is(err, schema.ErrNoSchema) && !strict {
			log.Warn().Str("domain", string(domain)).Msg("no schema, publishing unvalidated")
		} else {
			return fmt.Errorf("validation: %w", err)
		}
	}

	if err := lib.Publish(domain, merged); err != nil {
		return fmt.Errorf("publishing: %w", err)
	}

	fmt.Fprintf(os.Stdout, "%-10s  %d raw -> %d canonical (%d dropped, %d merged)\n",
		domain, len(raws), len(merged), dropped, removed)
	return nil
}

// domainsFromFlag resolves --domain into the domain list to process.
func domainsFromFlag(cmd *cobra.Command) ([]types.Domain, error) {
	name, _ := cmd.Flags().GetString("domain")
	if name == "" {
		return types.Domains, nil
	}
	domain, ok := types.ParseDomain(name)
	if !ok {
		return nil, fmt.Errorf("unknown domain %q", name)
	}
	return []types.Domain{domain}, nil
}

func init() {
	buildCmd.Flags().String("domain", "", "build a single domain (default: all)")
	buildCmd.Flags().Bool("strict", false, "treat a missing domain schema as an error")

	rootCmd.AddCommand(buildCmd)
}
