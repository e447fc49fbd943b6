// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/pogo-digest/pkg/types"
)

// Doc is one indexable document drawn from a canonical record: a
// stable id, a human-readable title, the concatenated text, and the
// record's own date (used for recency weighting at query time).
type Doc struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
	Date  string `json:"date,omitempty"`
}

// TFIDFArtifact is the persisted vector-space bundle for one domain.
// IDs, Titles, Dates, and Docs are positionally aligned with the
// fitted model's row order.
type TFIDFArtifact struct {
	Domain types.Domain `json:"domain"`
	Model  *Vectorizer  `json:"model"`
	Docs   []SparseVec  `json:"docs"`
	IDs    []string     `json:"ids"`
	Titles []string     `json:"titles"`
	Dates  []string     `json:"dates"`
}

// BM25Artifact is the persisted term-frequency ranking bundle for one
// domain.
type BM25Artifact struct {
	Domain types.Domain `json:"domain"`
	Model  *BM25        `json:"model"`
	IDs    []string     `json:"ids"`
	Titles []string     `json:"titles"`
	Dates  []string     `json:"dates"`
}

// Meta is the per-domain metadata sidecar reporting what the indexer
// did: fitted row count, rows skipped for having too little text, and
// the fitted vocabulary size (zero when fitting failed or was skipped).
type Meta struct {
	Domain      types.Domain `json:"domain"`
	NumRows     int          `json:"num_rows"`
	SkippedRows int          `json:"skipped_rows"`
	VocabSize   int          `json:"vocab_size"`
}

func tfidfPath(dir string, domain types.Domain) string {
	return filepath.Join(dir, string(domain)+"_tfidf.json")
}

func bm25Path(dir string, domain types.Domain) string {
	return filepath.Join(dir, string(domain)+"_bm25.json")
}

func metaPath(dir string, domain types.Domain) string {
	return filepath.Join(dir, string(domain)+"_meta.json")
}

func errorPath(dir string, domain types.Domain, model string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.error.txt", domain, model))
}

// LoadTFIDF reads a domain's persisted vector-space artifact.
func LoadTFIDF(dir string, domain types.Domain) (*TFIDFArtifact, error) {
	var a TFIDFArtifact
	if err := readJSON(tfidfPath(dir, domain), &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// LoadBM25 reads a domain's persisted BM25 artifact.
func LoadBM25(dir string, domain types.Domain) (*BM25Artifact, error) {
	var a BM25Artifact
	if err := readJSON(bm25Path(dir, domain), &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// LoadMeta reads a domain's metadata sidecar.
func LoadMeta(dir string, domain types.Domain) (*Meta, error) {
	var m Meta
	if err := readJSON(metaPath(dir, domain), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// writeJSONAtomic persists v via temp-then-rename so a crashed build
// never leaves a truncated artifact behind.
func writeJSONAtomic(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".artifact-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// writeFittingError records a model-fitting failure as a diagnostic
// file in place of the artifact.
func writeFittingError(dir string, domain types.Domain, model string, fitErr error) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(errorPath(dir, domain, model), []byte(fitErr.Error()+"\n"), 0o644)
}
