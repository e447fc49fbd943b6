// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/pogo-digest/pkg/types"
)

// WriteCSV writes one domain's records as CSV with the canonical
// column order. The file is published atomically.
func WriteCSV(path string, domain types.Domain, records []types.Record) error {
	header := Header(domain)
	if header == nil {
		return fmt.Errorf("no field table for domain %q", domain)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".csv-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}

	w := csv.NewWriter(tmp)
	writeErr := w.Write(header)
	for _, rec := range records {
		if writeErr != nil {
			break
		}
		writeErr = w.Write(Row(domain, rec))
	}
	w.Flush()
	if writeErr == nil {
		writeErr = w.Error()
	}
	if writeErr != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("publishing %s: %w", path, err)
	}
	return nil
}
