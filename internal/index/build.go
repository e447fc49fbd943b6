// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index builds the per-domain lexical search artifacts: a
// TF-IDF vector space (unigrams and bigrams) and a BM25 ranking model
// over the concatenated text fields of canonical records. A domain
// whose text is too sparse to fit produces a diagnostic file instead
// of an artifact; it never aborts the other domains.
package index

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pogo-digest/internal/library"
	"github.com/pdiddy/pogo-digest/pkg/types"
)

// DefaultMinTokens is the minimum token count for a document to enter
// the fitted models. Shorter rows are counted as skipped but keep
// their canonical record.
const DefaultMinTokens = 3

// docFuncs turns a canonical record into an indexable document. The
// designated text fields per domain mirror what each record actually
// carries; the id embeds the domain so hits are self-describing.
var docFuncs = map[types.Domain]func(types.Record) Doc{
	types.DomainEvents: func(r types.Record) Doc {
		title := NormText(r.Str("Event Name"))
		return Doc{
			ID:    "event:" + title,
			Title: title,
			Text:  JoinParts(title, NormText(r.Str("Category")), NormText(r.Str("Source"))),
			Date:  r.Str("Start Date"),
		}
	},
	types.DomainFeatures: func(r types.Record) Doc {
		title := NormText(r.Str("Feature Name"))
		return Doc{
			ID:    "feature:" + title,
			Title: title,
			Text:  JoinParts(title, NormText(r.Str("Summary")), NormText(r.Str("Source"))),
			Date:  r.Str("Date Announced"),
		}
	},
	types.DomainBalance: func(r types.Record) Doc {
		title := NormText(r.Str("Change Title"))
		return Doc{
			ID:    "balance:" + title,
			Title: title,
			Text:  JoinParts(title, NormText(r.Str("Summary")), NormText(r.Str("Source"))),
			Date:  r.Str("Date Announced"),
		}
	},
	types.DomainWiki: func(r types.Record) Doc {
		title := NormText(r.Str("Title"))
		return Doc{
			ID:    "wiki:" + title,
			Title: title,
			Text:  JoinParts(title, NormText(r.Str("Summary")), NormText(r.Str("Source"))),
		}
	},
	types.DomainAttackers: func(r types.Record) Doc {
		name := NormText(r.Str("Pokemon"))
		doc := Doc{
			ID:    "attacker:" + name,
			Title: name,
		}
		moves := strings.Join(r.List("Moves"), ", ")
		dps := ""
		if v := r.Str("DPS"); v != "" {
			dps = "DPS " + v
		}
		doc.Text = JoinParts(name, NormText(r.Str("Type")), NormText(moves), dps)
		return doc
	},
	types.DomainPVP: func(r types.Record) Doc {
		name := NormText(r.Str("Pokemon"))
		return Doc{
			ID:    "pvp:" + name,
			Title: name,
			Text:  JoinParts(name, NormText(r.Str("League")), NormText(r.Str("Cup")), NormText(r.Str("Score"))),
		}
	},
	types.DomainResearch: func(r types.Record) Doc {
		task := NormText(r.Str("Task"))
		return Doc{
			ID:    "research:" + task,
			Title: task,
			Text:  JoinParts(task, NormText(r.Str("Reward"))),
		}
	},
	types.DomainEggs: func(r types.Record) Doc {
		name := NormText(r.Str("Pokemon"))
		return Doc{
			ID:    "egg:" + name,
			Title: name,
			Text:  JoinParts(name, NormText(r.Str("Tier")), NormText(r.Str("Distance")), NormText(r.Str("Notes"))),
		}
	},
	types.DomainItems: func(r types.Record) Doc {
		name := NormText(r.Str("Name"))
		return Doc{
			ID:    "item:" + name,
			Title: name,
			Text:  JoinParts(name, NormText(strings.Join(r.List("Effects"), ", ")), NormText(r.Str("Notes"))),
		}
	},
	types.DomainShinies: func(r types.Record) Doc {
		name := NormText(r.Str("Pokemon"))
		return Doc{
			ID:    "shiny:" + name,
			Title: name,
			Text:  JoinParts(name, NormText(r.Str("Available From")), NormText(r.Str("Notes"))),
			Date:  r.Str("Available From"),
		}
	},
}

// Docs maps a domain's canonical records to indexable documents.
func Docs(domain types.Domain, records []types.Record) []Doc {
	fn, ok := docFuncs[domain]
	if !ok {
		return nil
	}
	docs := make([]Doc, 0, len(records))
	for _, r := range records {
		docs = append(docs, fn(r))
	}
	return docs
}

// BuildDomain builds and persists the TF-IDF and BM25 artifacts plus
// the metadata sidecar for one domain. Fitting failures (for example
// an empty vocabulary) become diagnostic files; only I/O failures are
// returned as errors.
func BuildDomain(lib *library.Library, domain types.Domain, cfg types.IndexConfig, log zerolog.Logger) error {
	minTokens := cfg.MinTokens
	if minTokens <= 0 {
		minTokens = DefaultMinTokens
	}

	records, err := lib.Load(domain)
	if err != nil {
		return err
	}

	all := Docs(domain, records)

	// Keep only documents with enough text to be retrievable; the rest
	// are tracked in the metadata sidecar.
	var kept []Doc
	var tokenized [][]string
	for _, d := range all {
		tokens := Tokenize(d.Text)
		if len(tokens) < minTokens {
			continue
		}
		kept = append(kept, d)
		tokenized = append(tokenized, tokens)
	}
	skipped := len(all) - len(kept)

	outDir := lib.IndexDir()
	ids := make([]string, len(kept))
	titles := make([]string, len(kept))
	dates := make([]string, len(kept))
	for i, d := range kept {
		ids[i] = d.ID
		titles[i] = d.Title
		dates[i] = d.Date
	}

	vocabSize := 0
	if len(kept) > 0 {
		model, vecs, fitErr := FitVectorizer(tokenized)
		if fitErr != nil {
			log.Warn().Str("domain", string(domain)).Err(fitErr).Msg("tfidf fitting failed")
			if err := writeFittingError(outDir, domain, "tfidf", fitErr); err != nil {
				return err
			}
		} else {
			vocabSize = len(model.Vocabulary)
			artifact := TFIDFArtifact{
				Domain: domain,
				Model:  model,
				Docs:   vecs,
				IDs:    ids,
				Titles: titles,
				Dates:  dates,
			}
			if err := writeJSONAtomic(tfidfPath(outDir, domain), artifact); err != nil {
				return err
			}
		}

		bm25, fitErr := FitBM25(tokenized)
		if fitErr != nil {
			log.Warn().Str("domain", string(domain)).Err(fitErr).Msg("bm25 fitting failed")
			if err := writeFittingError(outDir, domain, "bm25", fitErr); err != nil {
				return err
			}
		} else {
			artifact := BM25Artifact{
				Domain: domain,
				Model:  bm25,
				IDs:    ids,
				Titles: titles,
				Dates:  dates,
			}
			if err := writeJSONAtomic(bm25Path(outDir, domain), artifact); err != nil {
				return err
			}
		}
	}

	meta := Meta{
		Domain:      domain,
		NumRows:     len(kept),
		SkippedRows: skipped,
		VocabSize:   vocabSize,
	}
	if err := writeJSONAtomic(metaPath(outDir, domain), meta); err != nil {
		return err
	}

	log.Info().
		Str("domain", string(domain)).
		Int("rows", len(kept)).
		Int("skipped", skipped).
		Int("vocab", vocabSize).
		Msg("index built")
	return nil
}

// BuildAll indexes every domain. One domain's failure is recorded and
// the run continues; the returned error summarizes any failed domains.
func BuildAll(lib *library.Library, cfg types.IndexConfig, log zerolog.Logger) error {
	var failed []string
	for _, domain := range types.Domains {
		if err := BuildDomain(lib, domain, cfg, log); err != nil {
			log.Error().Str("domain", string(domain)).Err(err).Msg("index build failed")
			failed = append(failed, string(domain))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("index build failed for: %s", strings.Join(failed, ", "))
	}
	return nil
}
