// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schema validates canonical record arrays against the
// declarative per-domain JSON schemas embedded in schemas/. A failed
// validation names the first offending record's index and constraint;
// partial publication is never acceptable, so one bad record fails the
// whole array.
package schema

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/pdiddy/pogo-digest/pkg/types"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// ErrNoSchema reports that no schema artifact exists for a domain. The
// caller decides whether that is a warning (permissive default) or an
// error (strict mode).
var ErrNoSchema = errors.New("no schema for domain")

// ValidationError locates the first record that violated the domain
// schema.
type ValidationError struct {
	Domain types.Domain
	Index  int
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: record %d: %v", e.Domain, e.Index, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

var (
	mu       sync.Mutex
	compiled = map[types.Domain]*jsonschema.Schema{}
)

// load compiles (once) and returns the schema for a domain.
func load(domain types.Domain) (*jsonschema.Schema, error) {
	mu.Lock()
	defer mu.Unlock()

	if s, ok := compiled[domain]; ok {
		return s, nil
	}

	name := fmt.Sprintf("schemas/%s.schema.json", domain)
	data, err := schemaFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSchema, domain)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true
	if err := compiler.AddResource(name, strings.NewReader(string(data))); err != nil {
		return nil, fmt.Errorf("adding schema resource %s: %w", name, err)
	}
	s, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compiling schema %s: %w", name, err)
	}

	compiled[domain] = s
	return s, nil
}

// Validate checks every record in the array against the domain's
// embedded schema. It returns nil on success, ErrNoSchema when the
// domain has no schema artifact, or a *ValidationError pinpointing the
// first violation.
func Validate(domain types.Domain, records []types.Record) error {
	s, err := load(domain)
	if err != nil {
		return err
	}

	for i, rec := range records {
		// Round-trip through JSON so the validator sees the same value
		// shapes a consumer of the published artifact would.
		data, err := json.Marshal(rec)
		if err != nil {
			return &ValidationError{Domain: domain, Index: i, Err: err}
		}
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return &ValidationError{Domain: domain, Index: i, Err: err}
		}
		if err := s.Validate(v); err != nil {
			return &ValidationError{Domain: domain, Index: i, Err: err}
		}
	}
	return nil
}
