package db

import "testing"

func TestIndexBuilder_Build(t *testing.T) {
	def, err := NewIndex("discovery:restaurant:idx").
		Prefix("discovery:restaurant:").
		Text("name").
		Text("description").
		Tag("cuisine_ids").
		Tag("tag_ids").
		Numeric("rating").
		Numeric("min_price").
		Numeric("max_price").
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(def.Fields) != 7 {
		t.Errorf("expected 7 fields, got %d", len(def.Fields))
	}
	if def.Prefixes[0] != "discovery:restaurant:" {
		t.Errorf("prefix = %q", def.Prefixes[0])
	}
}

func TestIndexBuilder_DuplicateField(t *testing.T) {
	_, err := NewIndex("idx").Text("name").Tag("name").Build()
	if err == nil {
		t.Fatal("expected error for duplicate field")
	}
}

func TestIndexBuilder_EmptySchema(t *testing.T) {
	_, err := NewIndex("idx").Build()
	if err == nil {
		t.Fatal("expected error for empty schema")
	}
}

func TestIndexDefinition_String(t *testing.T) {
	def := NewIndex("idx").Prefix("p:").Text("name").Tag("tags").MustBuild()
	want := "FT.CREATE idx ON HASH PREFIX p: SCHEMA name TEXT tags TAG"
	if got := def.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTagClause(t *testing.T) {
	if got := TagClause("cuisine_ids", nil); got != "" {
		t.Errorf("empty values: got %q", got)
	}
	got := TagClause("cuisine_ids", []string{"c1", "c2"})
	if got != "@cuisine_ids:{c1 | c2}" {
		t.Errorf("TagClause = %q", got)
	}
	got = TagClause("tag_ids", []string{"late-night"})
	if got != "@tag_ids:{late\\-night}" {
		t.Errorf("TagClause with escape = %q", got)
	}
}

func TestNumericClause(t *testing.T) {
	lo, hi := 2.5, 4.0
	if got := NumericClause("rating", &lo, nil); got != "@rating:[2.5 +inf]" {
		t.Errorf("NumericClause = %q", got)
	}
	if got := NumericClause("price", nil, &hi); got != "@price:[-inf 4]" {
		t.Errorf("NumericClause = %q", got)
	}
}

func TestAnd(t *testing.T) {
	if got := And("", ""); got != MatchAll {
		t.Errorf("And of empties = %q, want %q", got, MatchAll)
	}
	if got := And("@a:{x}", "", "@b:[0 1]"); got != "@a:{x} @b:[0 1]" {
		t.Errorf("And = %q", got)
	}
}
