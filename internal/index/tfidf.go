// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"errors"
	"math"
	"sort"
)

// ErrEmptyVocabulary reports that no terms survived fitting; the caller
// records a diagnostic for the domain and moves on.
var ErrEmptyVocabulary = errors.New("empty vocabulary")

// SparseVec is one document's L2-normalized TF-IDF vector: parallel
// index/value arrays sorted by vocabulary index.
type SparseVec struct {
	Indices []int     `json:"indices"`
	Values  []float64 `json:"values"`
}

// Vectorizer is a fitted TF-IDF vector space over unigram and bigram
// terms with smoothed IDF. The exported fields round-trip through JSON
// so a fitted model can be persisted and reloaded for querying.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
	NumDocs    int            `json:"num_docs"`
}

// FitVectorizer builds the vocabulary and IDF table from tokenized
// documents and returns the fitted model plus one sparse vector per
// document, positionally aligned with the input.
func FitVectorizer(docs [][]string) (*Vectorizer, []SparseVec, error) {
	if len(docs) == 0 {
		return nil, nil, ErrEmptyVocabulary
	}

	df := make(map[string]int)
	termLists := make([][]string, len(docs))
	for i, tokens := range docs {
		terms := Terms(tokens)
		termLists[i] = terms
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}
	if len(df) == 0 {
		return nil, nil, ErrEmptyVocabulary
	}

	// Stable vocabulary order.
	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	v := &Vectorizer{
		Vocabulary: make(map[string]int, len(terms)),
		IDF:        make([]float64, len(terms)),
		NumDocs:    len(docs),
	}
	n := float64(len(docs))
	for i, t := range terms {
		v.Vocabulary[t] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(df[t]))) + 1.0
	}

	vecs := make([]SparseVec, len(docs))
	for i, termList := range termLists {
		vecs[i] = v.vectorize(termList)
	}
	return v, vecs, nil
}

// TransformQuery maps query text into the fitted vector space.
// Out-of-vocabulary terms contribute nothing; an all-unknown query
// yields the zero vector.
func (v *Vectorizer) TransformQuery(text string) SparseVec {
	return v.vectorize(Terms(Tokenize(text)))
}

func (v *Vectorizer) vectorize(terms []string) SparseVec {
	tf := make(map[int]int)
	total := 0
	for _, t := range terms {
		if idx, ok := v.Vocabulary[t]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return SparseVec{}
	}

	idxs := make([]int, 0, len(tf))
	for idx := range tf {
		idxs = append(idxs, idx)
	}
	sort.Ints(idxs)

	vec := SparseVec{
		Indices: idxs,
		Values:  make([]float64, len(idxs)),
	}
	norm := 0.0
	for i, idx := range idxs {
		w := float64(tf[idx]) / float64(total) * v.IDF[idx]
		vec.Values[i] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec.Values {
			vec.Values[i] /= norm
		}
	}
	return vec
}

// Cosine computes the dot product of two L2-normalized sparse vectors.
func Cosine(a, b SparseVec) float64 {
	sum := 0.0
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}
