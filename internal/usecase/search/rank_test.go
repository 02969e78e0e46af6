package search

import (
	"testing"

	"github.com/vietbites/discovery/internal/domain/search/result"
	"github.com/vietbites/discovery/internal/domain/search/sortby"
)

func ids(items []result.Item) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].Restaurant().ID()
	}
	return out
}

func TestRankRelevanceWeighting(t *testing.T) {
	// 4.9*0.7 + 5*0.3 = 4.93 vs 3.0*0.7 + 50*0.3 = 17.1: review volume can
	// outweigh rating under the composite, and that is the intended blend.
	wellRated := build(t, "niche", "Hidden Gem", "", nil, nil, 4.9, 5)
	popular := build(t, "busy", "Tourist Magnet", "", nil, nil, 3.0, 50)

	items := []result.Item{
		result.NewItem(wellRated, nil),
		result.NewItem(popular, nil),
	}
	rank(items, sortby.Relevance, false)

	got := ids(items)
	if got[0] != "busy" {
		t.Errorf("order = %v, want composite score to rank busy first", got)
	}
}

func TestRankNameAscending(t *testing.T) {
	items := []result.Item{
		result.NewItem(build(t, "1", "Banh Xeo Ba Duong", "", nil, nil, 4, 1), nil),
		result.NewItem(build(t, "2", "An Cafe", "", nil, nil, 4, 1), nil),
		result.NewItem(build(t, "3", "An Cafe", "", nil, nil, 4, 1), nil),
	}
	rank(items, sortby.Name, false)

	got := ids(items)
	want := []string{"2", "3", "1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestRankDistanceAscending(t *testing.T) {
	far, near := 4.2, 0.3
	items := []result.Item{
		result.NewItem(build(t, "far", "Far Spot", "", nil, nil, 5, 100), &far),
		result.NewItem(build(t, "near", "Near Spot", "", nil, nil, 1, 1), &near),
	}
	rank(items, sortby.Distance, true)

	if got := ids(items); got[0] != "near" {
		t.Errorf("order = %v, want near first", got)
	}
}

func TestRankDeterministicAcrossRuns(t *testing.T) {
	mk := func() []result.Item {
		return []result.Item{
			result.NewItem(build(t, "c", "Gamma", "", nil, nil, 4.0, 10), nil),
			result.NewItem(build(t, "a", "Alpha", "", nil, nil, 4.0, 10), nil),
			result.NewItem(build(t, "b", "Beta", "", nil, nil, 4.0, 10), nil),
		}
	}

	first := mk()
	rank(first, sortby.Relevance, false)
	second := mk()
	rank(second, sortby.Relevance, false)

	got, again := ids(first), ids(second)
	for i := range got {
		if got[i] != again[i] {
			t.Fatalf("orders differ: %v vs %v", got, again)
		}
	}
	if got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("tie-break order = %v, want ascending ids", got)
	}
}
