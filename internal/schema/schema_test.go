// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schema

import (
	"errors"
	"testing"

	"github.com/pdiddy/pogo-digest/pkg/types"
)

func validEvent(name string) types.Record {
	rec := types.Record{}
	rec.SetStr("Event Name", name)
	rec.SetStr("Start Date", "2025-06-02")
	rec.SetStr("End Date", "2025-06-02")
	rec.SetStr("Category", "Community Day")
	rec.SetStr("Category Normalized", "CD")
	rec.SetStr("Category (raw)", "Community Day")
	rec.SetStr("Source", "leekduck")
	rec.SetStr("Source URL", "https://example.com/cd")
	rec.SetBool("Has Valid Dates", true)
	rec.SetStr("Date Parse Status", "parsed")
	rec.AddSource("leekduck")
	return rec
}

func TestValidateAccepts(t *testing.T) {
	records := []types.Record{validEvent("Rowlet CD"), validEvent("Raid Hour")}
	if err := Validate(types.DomainEvents, records); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateEmptyDateAllowed(t *testing.T) {
	rec := validEvent("Mystery Event")
	rec.SetStr("Start Date", "")
	rec.SetStr("End Date", "")
	rec.SetBool("Has Valid Dates", false)
	rec.SetStr("Date Parse Status", "missing")
	if err := Validate(types.DomainEvents, []types.Record{rec}); err != nil {
		t.Fatalf("empty dates must validate: %v", err)
	}
}

func TestValidateNamesFirstOffender(t *testing.T) {
	bad := validEvent("Bad Event")
	bad.SetStr("Start Date", "06/02/2025")

	records := []types.Record{validEvent("Fine"), bad, validEvent("Also Fine")}
	err := Validate(types.DomainEvents, records)
	if err == nil {
		t.Fatal("expected validation failure")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T", err)
	}
	if verr.Domain != types.DomainEvents || verr.Index != 1 {
		t.Errorf("offender = %s record %d, want events record 1", verr.Domain, verr.Index)
	}
}

func TestValidateRejectsBadCategoryBucket(t *testing.T) {
	bad := validEvent("Bad Bucket")
	bad.SetStr("Category Normalized", "Legendary")
	if err := Validate(types.DomainEvents, []types.Record{bad}); err == nil {
		t.Fatal("unknown bucket must fail validation")
	}
}

func TestValidateRejectsBadLeague(t *testing.T) {
	rec := types.Record{}
	rec.SetStr("League", "hyper")
	rec.SetStr("Pokemon", "Azumarill")
	rec.SetStr("Source URL", "https://pvpoke.com/x")
	rec.AddSource("pvpoke")
	if err := Validate(types.DomainPVP, []types.Record{rec}); err == nil {
		t.Fatal("unknown league must fail validation")
	}
}

func TestValidateUnknownDomain(t *testing.T) {
	err := Validate(types.Domain("raids"), nil)
	if !errors.Is(err, ErrNoSchema) {
		t.Fatalf("err = %v, want ErrNoSchema", err)
	}
}

func TestValidateEverySchemaCompiles(t *testing.T) {
	for _, domain := range types.Domains {
		if _, err := load(domain); err != nil {
			t.Errorf("schema for %s: %v", domain, err)
		}
	}
}
