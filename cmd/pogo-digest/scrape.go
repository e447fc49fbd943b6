// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pogo-digest/internal/httputil"
	"github.com/pdiddy/pogo-digest/internal/scrape"
	"github.com/pdiddy/pogo-digest/pkg/types"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetch raw records from the configured sources",
	Long: `Scrape fetches raw records from the configured upstream sources (RSS
feeds, LeekDuck pages, PvPoke ranking exports, the item seed) and saves
them into the library's raw area, one snapshot file per domain.

Sources are configured under the "scrape.sources" section of the config
file. A failing source is reported and skipped; the run only fails when
every source fails.`,
	RunE: runScrape,
}

func runScrape(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)
	lib := openLibrary(cmd)

	var cfg types.ScrapeConfig
	if manifest, _ := cmd.Flags().GetString("sources"); manifest != "" {
		loaded, err := scrape.ReadManifest(manifest)
		if err != nil {
			return err
		}
		cfg = loaded
	} else if err := viper.UnmarshalKey("scrape", &cfg); err != nil {
		return fmt.Errorf("reading scrape config: %w", err)
	}
	if cacheDir, _ := cmd.Flags().GetString("cache-dir"); cacheDir != "" {
		cfg.CacheDir = cacheDir
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "pogo-digest/" + version
	}

	sources, err := scrape.FromConfig(cfg)
	if err != nil {
		return err
	}
	if name, _ := cmd.Flags().GetString("domain"); name != "" {
		domain, ok := types.ParseDomain(name)
		if !ok {
			return fmt.Errorf("unknown domain %q", name)
		}
		kept := sources[:0]
		for _, s := range sources {
			if s.Domain() == domain {
				kept = append(kept, s)
			}
		}
		sources = kept
		if len(sources) == 0 {
			return fmt.Errorf("no sources configured for domain %s", domain)
		}
	}

	client := httputil.NewClient(cfg.HTTPConfig)
	out, err := scrape.Run(cmd.Context(), sources, client, cfg.SourceDelay, log)
	if err != nil {
		return err
	}
	if err := scrape.Save(lib, out); err != nil {
		return err
	}

	total := 0
	for domain, records := range out.Raw {
		fmt.Fprintf(os.Stdout, "%-10s  %d records\n", domain, len(records))
		total += len(records)
	}
	fmt.Fprintf(os.Stdout, "\n%d raw records from %d sources (%d failed)\n",
		total, len(sources), len(out.SourceErrors))
	return nil
}

func init() {
	scrapeCmd.Flags().String("domain", "", "scrape a single domain's sources (default: all)")
	scrapeCmd.Flags().String("cache-dir", "", "HTTP response cache directory (empty disables caching)")
	scrapeCmd.Flags().String("sources", "", "YAML source manifest replacing the scrape config section")

	rootCmd.AddCommand(scrapeCmd)
}
