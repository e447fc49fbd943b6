// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pogo-digest/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the digest artifacts",
	Long: `Export renders the canonical library into the digest artifacts:
per-domain CSVs, the Excel workbook (All/Events/Undated sheets), an ICS
calendar of dated events, and JSON sidecars for undated and upcoming
events.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)
	lib := openLibrary(cmd)

	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = "digest"
	}

	domains, err := domainsFromFlag(cmd)
	if err != nil {
		return err
	}

	if err := export.WriteDomains(lib, domains, outDir, time.Now(), log); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Exported digest to %s\n", outDir)
	return nil
}

func init() {
	exportCmd.Flags().String("out", "digest", "output directory for digest artifacts")
	exportCmd.Flags().String("domain", "", "export a single domain (default: all)")

	rootCmd.AddCommand(exportCmd)
}
