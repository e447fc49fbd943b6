// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library owns the on-disk canonical store: one JSON array per
// domain plus an NDJSON sidecar for streaming consumers. Every publish
// is a full rebuild written to a temp file and renamed into place, so
// readers never observe a partially written artifact.
package library

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/pogo-digest/pkg/types"
)

const (
	rawDir   = "raw"
	indexDir = "index"

	indexFile  = "index.json"
	ndjsonFile = "index.ndjson"
)

// Library reads and writes the canonical artifacts under a base
// directory.
type Library struct {
	baseDir string
}

// New returns a Library rooted at baseDir.
func New(baseDir string) *Library {
	return &Library{baseDir: baseDir}
}

// BaseDir returns the library root.
func (l *Library) BaseDir() string {
	return l.baseDir
}

// DomainDir returns the directory holding a domain's canonical files.
func (l *Library) DomainDir(domain types.Domain) string {
	return filepath.Join(l.baseDir, string(domain))
}

// IndexDir returns the directory holding search artifacts and the
// library database.
func (l *Library) IndexDir() string {
	return filepath.Join(l.baseDir, indexDir)
}

// RawPath returns the path of a domain's raw scraped rows.
func (l *Library) RawPath(domain types.Domain) string {
	return filepath.Join(l.baseDir, rawDir, string(domain)+".json")
}

// CanonicalPath returns the authoritative path of a domain's canonical
// array.
func (l *Library) CanonicalPath(domain types.Domain) string {
	return filepath.Join(l.DomainDir(domain), indexFile)
}

// SaveRaw writes raw scraped rows for a domain.
func (l *Library) SaveRaw(domain types.Domain, rows []types.RawRecord) error {
	return writeJSONAtomic(l.RawPath(domain), rows)
}

// LoadRaw reads raw scraped rows for a domain. A missing file is an
// empty batch, not an error.
func (l *Library) LoadRaw(domain types.Domain) ([]types.RawRecord, error) {
	data, err := os.ReadFile(l.RawPath(domain))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", l.RawPath(domain), err)
	}
	var rows []types.RawRecord
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", l.RawPath(domain), err)
	}
	return rows, nil
}

// Publish atomically replaces a domain's canonical array and NDJSON
// sidecar. Either both artifacts land or the previous pair stays
// intact.
func (l *Library) Publish(domain types.Domain, records []types.Record) error {
	dir := l.DomainDir(domain)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	if err := writeJSONAtomic(filepath.Join(dir, indexFile), records); err != nil {
		return err
	}
	return writeNDJSONAtomic(filepath.Join(dir, ndjsonFile), records)
}

// Load reads a domain's canonical array. A missing file is an empty
// domain, not an error.
func (l *Library) Load(domain types.Domain) ([]types.Record, error) {
	path := l.CanonicalPath(domain)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var records []types.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}

// writeJSONAtomic writes v as indented UTF-8 JSON via temp-then-rename.
func writeJSONAtomic(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return replaceFile(path, append(data, '\n'))
}

// writeNDJSONAtomic writes one compact JSON object per line.
func writeNDJSONAtomic(path string, records []types.Record) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".ndjson-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			tmp.Close()
			return fmt.Errorf("encoding %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func replaceFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".json-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
