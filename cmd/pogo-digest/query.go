// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pogo-digest/internal/query"
	"github.com/pdiddy/pogo-digest/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Search the indexed library",
	Long: `Query routes free text to a domain (balance, features, wiki, or the
events default), scores it against that domain's lexical artifact, and
reranks hits by record recency. Event queries containing dates are
additionally filtered to the date span.

Use --domain to bypass the router and --bm25 to rank with the BM25
artifact instead of TF-IDF cosine similarity.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	q := strings.Join(args, " ")

	opts := query.Options{}
	if name, _ := cmd.Flags().GetString("domain"); name != "" {
		domain, ok := types.ParseDomain(name)
		if !ok {
			return fmt.Errorf("unknown domain %q", name)
		}
		opts.Domain = domain
	}
	opts.TopK, _ = cmd.Flags().GetInt("top")
	opts.UseBM25, _ = cmd.Flags().GetBool("bm25")

	lib := openLibrary(cmd)
	domain, results, err := query.Search(lib, q, opts)
	if err != nil {
		return err
	}

	if domain == types.DomainEvents {
		results = filterBySpan(results, q)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return query.FormatJSON(results, os.Stdout)
	}
	fmt.Fprintf(os.Stdout, "Domain: %s\n\n", domain)
	query.FormatTable(domain, results, os.Stdout)
	return nil
}

// filterBySpan drops event hits outside the query's date constraint.
// Hits without a resolvable record pass through untouched.
func filterBySpan(results []query.Result, q string) []query.Result {
	start, end := query.DateSpan(q)
	if start == "" {
		return results
	}

	kept := results[:0]
	for _, r := range results {
		if r.Record == nil {
			kept = append(kept, r)
			continue
		}
		date := r.Record.Str("Start Date")
		if date == "" {
			continue
		}
		if date < start {
			continue
		}
		if end != "" && date >= end {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

func init() {
	queryCmd.Flags().String("domain", "", "target domain (default: routed from the query)")
	queryCmd.Flags().Int("top", query.DefaultTopK, "maximum number of results")
	queryCmd.Flags().Bool("bm25", false, "rank with BM25 instead of TF-IDF")
	queryCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(queryCmd)
}
