// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParseDomain(t *testing.T) {
	if d, ok := ParseDomain("Events"); !ok || d != DomainEvents {
		t.Errorf("ParseDomain(Events) = %q, %v", d, ok)
	}
	if d, ok := ParseDomain("  pvp "); !ok || d != DomainPVP {
		t.Errorf("ParseDomain(pvp) = %q, %v", d, ok)
	}
	if _, ok := ParseDomain("raids"); ok {
		t.Error("ParseDomain accepted unknown domain")
	}
}

func TestRecordAccessors(t *testing.T) {
	r := Record{}
	r.SetStr("Name", "Rowlet")
	r.SetBool("Shiny", true)
	r.SetList("Moves", []string{"Razor Leaf", "Energy Ball"})

	if r.Str("Name") != "Rowlet" || r.Str("Missing") != "" {
		t.Errorf("Str: %q / %q", r.Str("Name"), r.Str("Missing"))
	}
	if !r.Bool("Shiny") || r.Bool("Missing") {
		t.Error("Bool accessor wrong")
	}
	if got := r.List("Moves"); len(got) != 2 {
		t.Errorf("List = %v", got)
	}
	// Wrong-typed reads degrade to zero values.
	if r.Str("Shiny") != "" || r.Bool("Name") {
		t.Error("cross-typed read did not degrade")
	}
}

func TestRecordListSurvivesJSONRoundTrip(t *testing.T) {
	r := Record{}
	r.SetList("Moves", []string{"Razor Leaf"})
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Record
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := back.List("Moves"); !reflect.DeepEqual(got, []string{"Razor Leaf"}) {
		t.Errorf("List after round trip = %v", got)
	}
}

func TestSourcesGrowOnly(t *testing.T) {
	r := Record{}
	r.AddSource("leekduck")
	r.AddSource("leekduck")
	r.AddSource("")
	r.AddSource("pvpoke")
	r.AddSources([]string{"forum", "pvpoke"})

	want := []string{"forum", "leekduck", "pvpoke"}
	if got := r.Sources(); !reflect.DeepEqual(got, want) {
		t.Errorf("Sources = %v, want %v", got, want)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	r := Record{}
	r.SetStr("Name", "Rowlet")
	r.SetList("Moves", []string{"Razor Leaf"})

	c := r.Clone()
	c.SetStr("Name", "Dartrix")
	c.SetList("Moves", append(c.List("Moves"), "Energy Ball"))

	if r.Str("Name") != "Rowlet" {
		t.Error("clone mutated original string")
	}
	if len(r.List("Moves")) != 1 {
		t.Errorf("clone mutated original list: %v", r.List("Moves"))
	}
}
