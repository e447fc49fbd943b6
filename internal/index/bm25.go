// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import "math"

// BM25 Okapi parameters. Standard values; the corpus is too small to
// be worth tuning.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// BM25 is a fitted Okapi BM25 model over tokenized documents. Exported
// fields round-trip through JSON for persistence.
type BM25 struct {
	K1        float64          `json:"k1"`
	B         float64          `json:"b"`
	NumDocs   int              `json:"num_docs"`
	AvgDocLen float64          `json:"avg_doc_len"`
	DocLens   []int            `json:"doc_lens"`
	DocTF     []map[string]int `json:"doc_tf"`
	DF        map[string]int   `json:"df"`
}

// FitBM25 builds the model from tokenized documents, positionally
// aligned with the input.
func FitBM25(docs [][]string) (*BM25, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyVocabulary
	}

	m := &BM25{
		K1:      bm25K1,
		B:       bm25B,
		NumDocs: len(docs),
		DocLens: make([]int, len(docs)),
		DocTF:   make([]map[string]int, len(docs)),
		DF:      make(map[string]int),
	}

	totalLen := 0
	for i, tokens := range docs {
		tf := make(map[string]int, len(tokens))
		for _, t := range tokens {
			tf[t]++
		}
		m.DocTF[i] = tf
		m.DocLens[i] = len(tokens)
		totalLen += len(tokens)
		for t := range tf {
			m.DF[t]++
		}
	}
	if len(m.DF) == 0 {
		return nil, ErrEmptyVocabulary
	}
	m.AvgDocLen = float64(totalLen) / float64(len(docs))
	return m, nil
}

// Scores ranks every document against the query tokens. The result is
// positionally aligned with the fitted documents.
func (m *BM25) Scores(query []string) []float64 {
	scores := make([]float64, m.NumDocs)
	if m.AvgDocLen == 0 {
		return scores
	}
	for _, t := range query {
		df, ok := m.DF[t]
		if !ok {
			continue
		}
		idf := math.Log((float64(m.NumDocs)-float64(df)+0.5)/(float64(df)+0.5) + 1)
		for i := range m.DocTF {
			tf := float64(m.DocTF[i][t])
			if tf == 0 {
				continue
			}
			norm := m.K1 * (1 - m.B + m.B*float64(m.DocLens[i])/m.AvgDocLen)
			scores[i] += idf * tf * (m.K1 + 1) / (tf + norm)
		}
	}
	return scores
}
