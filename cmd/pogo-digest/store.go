// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pogo-digest/internal/store"
	"github.com/pdiddy/pogo-digest/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the SQLite library store (sync, retrieve, stats)",
	Long: `Store mirrors the canonical library into a SQLite database with FTS5
full-text search. Use subcommands to sync the mirror, query it, or show
per-domain counts.`,
}

var storeSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror the canonical library into the database",
	Long: `Sync copies every domain's canonical records into the database.
Domains whose canonical file has not changed since the last sync are
skipped.`,
	RunE: runStoreSync,
}

func runStoreSync(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.Sync(cmd.Context(), openLibrary(cmd), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d domain(s) failed to sync", summary.Failed)
	}
	return nil
}

var storeRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Query the store with full-text search and filters",
	Long: `Retrieve searches the mirrored records using FTS5 full-text search,
structured filters (--domain, --since), or a combination of both.`,
	RunE: runStoreRetrieve,
}

func runStoreRetrieve(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := store.QueryOptions{Query: strings.Join(args, " ")}
	if name, _ := cmd.Flags().GetString("domain"); name != "" {
		domain, ok := types.ParseDomain(name)
		if !ok {
			return fmt.Errorf("unknown domain %q", name)
		}
		opts.Domain = domain
	}
	opts.Since, _ = cmd.Flags().GetString("since")
	opts.MaxResults, _ = cmd.Flags().GetInt("max-results")

	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide search text, --domain, or --since")
	}

	results, err := s.Retrieve(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-10s  %-50s  %-10s  %s\n", "Rank", "Domain", "Title", "Date", "Sources")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for i, r := range results {
		title := r.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-10s  %-50s  %-10s  %s\n",
			i+1, r.Domain, title, r.Date, strings.Join(r.Sources, "; "))
	}
	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

var storeStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-domain record counts",
	RunE:  runStoreStats,
}

func runStoreStats(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	counts, err := s.Stats(cmd.Context())
	if err != nil {
		return err
	}

	total := 0
	for _, domain := range types.Domains {
		fmt.Fprintf(os.Stdout, "%-10s  %d\n", domain, counts[domain])
		total += counts[domain]
	}
	fmt.Fprintf(os.Stdout, "\n%d records\n", total)
	return nil
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	maxResults, _ := cmd.Flags().GetInt("max-results")
	return store.Open(types.StoreConfig{
		LibraryDir: openLibrary(cmd).BaseDir(),
		MaxResults: maxResults,
	})
}

func init() {
	storeRetrieveCmd.Flags().String("domain", "", "filter by domain")
	storeRetrieveCmd.Flags().String("since", "", "keep records dated on or after this date (YYYY-MM-DD)")
	storeRetrieveCmd.Flags().Int("max-results", 20, "maximum number of results")
	storeRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	storeCmd.AddCommand(storeSyncCmd, storeRetrieveCmd, storeStatsCmd)
	rootCmd.AddCommand(storeCmd)
}
