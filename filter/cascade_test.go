package filter

import (
	"reflect"
	"testing"
)

type cam struct {
	region, sub, name string
}

func camCascade() *Cascade[cam] {
	return New(Accessors[cam]{
		Region:    func(c cam) string { return c.region },
		SubRegion: func(c cam) string { return c.sub },
		Leaf:      func(c cam) string { return c.name },
	})
}

var sample = []cam{
	{"Building A", "Entry 1", "C1"},
	{"Building A", "Exit 1", "C2"},
	{"Building B", "Entry 1", "C3"},
}

func TestRegionOptionsDistinctFirstSeen(t *testing.T) {
	records := append([]cam{}, sample...)
	records = append(records, cam{"Building A", "Entry 1", "C4"})

	got := camCascade().RegionOptions(records)
	want := []string{"Building A", "Building B"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("RegionOptions = %v, want %v", got, want)
	}
}

func TestSubRegionOptions(t *testing.T) {
	c := camCascade()
	tests := []struct {
		name   string
		region string
		want   []string
	}{
		{"building a", "Building A", []string{"Entry 1", "Exit 1"}},
		{"building b", "Building B", []string{"Entry 1"}},
		{"unknown region", "Parking", []string{}},
		{"empty region", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.SubRegionOptions(sample, tt.region)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SubRegionOptions(%q) = %v, want %v", tt.region, got, tt.want)
			}
		})
	}
}

func TestLeafOptions(t *testing.T) {
	c := camCascade()
	if got := c.LeafOptions(sample, "Building A", "Exit 1"); !reflect.DeepEqual(got, []string{"C2"}) {
		t.Errorf("LeafOptions = %v, want [C2]", got)
	}
	if got := c.LeafOptions(sample, "Building A", ""); len(got) != 0 {
		t.Errorf("LeafOptions with empty sub-region = %v, want empty", got)
	}
}

func TestTwoLevelCascadeHasNoLeaves(t *testing.T) {
	c := New(Accessors[cam]{
		Region:    func(c cam) string { return c.region },
		SubRegion: func(c cam) string { return c.sub },
	})
	if got := c.LeafOptions(sample, "Building A", "Entry 1"); len(got) != 0 {
		t.Fatalf("LeafOptions = %v, want empty", got)
	}
	got := c.Apply(sample, Selection{Region: "Building A", SubRegion: "Entry 1", Leaf: "ignored"})
	if len(got) != 1 || got[0].name != "C1" {
		t.Fatalf("Apply = %v, want only C1", got)
	}
}

func TestSelectRegionClearsDescendants(t *testing.T) {
	sel := Selection{Region: "Building A", SubRegion: "Exit 1", Leaf: "C2"}
	sel.Select(LevelRegion, "Building B")
	if sel.SubRegion != "" || sel.Leaf != "" {
		t.Fatalf("descendants not cleared: %+v", sel)
	}
	if sel.Region != "Building B" {
		t.Fatalf("Region = %q, want Building B", sel.Region)
	}
}

func TestSelectSubRegionClearsLeaf(t *testing.T) {
	sel := Selection{Region: "Building A", SubRegion: "Exit 1", Leaf: "C2"}
	sel.Select(LevelSubRegion, "Entry 1")
	if sel.Leaf != "" || sel.SubRegion != "Entry 1" || sel.Region != "Building A" {
		t.Fatalf("unexpected selection: %+v", sel)
	}
}

func TestSelectBelowEmptyAncestorIgnored(t *testing.T) {
	var sel Selection
	sel.Select(LevelSubRegion, "Entry 1")
	sel.Select(LevelLeaf, "C1")
	if !sel.IsEmpty() {
		t.Fatalf("selection should stay empty, got %+v", sel)
	}
	if !sel.Valid() {
		t.Fatal("selection should be valid")
	}
}

func TestSelectAlwaysKeepsInvariant(t *testing.T) {
	values := []string{"", "Building A", "Exit 1", "C2"}
	levels := []Level{LevelRegion, LevelSubRegion, LevelLeaf}
	var sel Selection
	for _, l1 := range levels {
		for _, v1 := range values {
			for _, l2 := range levels {
				for _, v2 := range values {
					sel.Reset()
					sel.Select(l1, v1)
					sel.Select(l2, v2)
					if !sel.Valid() {
						t.Fatalf("invalid after Select(%v,%q) Select(%v,%q): %+v", l1, v1, l2, v2, sel)
					}
				}
			}
		}
	}
}

func TestReset(t *testing.T) {
	sel := Selection{Region: "Building A", SubRegion: "Exit 1", Leaf: "C2"}
	sel.Reset()
	if !sel.IsEmpty() {
		t.Fatalf("Reset left %+v", sel)
	}
}

func TestApplyEmptySelectionReturnsAll(t *testing.T) {
	got := camCascade().Apply(sample, Selection{})
	if !reflect.DeepEqual(got, sample) {
		t.Fatalf("Apply = %v, want %v", got, sample)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	c := camCascade()
	sel := Selection{Region: "Building A"}
	first := c.Apply(sample, sel)
	second := c.Apply(sample, sel)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Apply not idempotent: %v vs %v", first, second)
	}
	if again := c.Apply(first, sel); !reflect.DeepEqual(again, first) {
		t.Fatalf("Apply over its own output changed it: %v", again)
	}
}

func TestScenarioFullSelection(t *testing.T) {
	c := camCascade()
	var sel Selection

	sel.Select(LevelRegion, "Building A")
	if got := c.SubRegionOptions(sample, sel.Region); !reflect.DeepEqual(got, []string{"Entry 1", "Exit 1"}) {
		t.Fatalf("sub-region options = %v", got)
	}
	sel.Select(LevelSubRegion, "Exit 1")
	if got := c.LeafOptions(sample, sel.Region, sel.SubRegion); !reflect.DeepEqual(got, []string{"C2"}) {
		t.Fatalf("leaf options = %v", got)
	}
	sel.Select(LevelLeaf, "C2")

	got := c.Apply(sample, sel)
	if len(got) != 1 || got[0] != sample[1] {
		t.Fatalf("Apply = %v, want only the second record", got)
	}
}

func TestScenarioRegionSwitchDropsStaleSubRegion(t *testing.T) {
	var sel Selection
	sel.Select(LevelRegion, "Building A")
	sel.Select(LevelSubRegion, "Exit 1")
	sel.Select(LevelRegion, "Building B")
	if sel.SubRegion != "" || sel.Leaf != "" {
		t.Fatalf("stale values retained: %+v", sel)
	}
}

func TestEmptyCollection(t *testing.T) {
	c := camCascade()
	sel := Selection{Region: "Building A", SubRegion: "Exit 1", Leaf: "C2"}
	opts := c.Options(nil, sel)
	if len(opts.Regions) != 0 || len(opts.SubRegions) != 0 || len(opts.Leaves) != 0 {
		t.Fatalf("expected empty options, got %+v", opts)
	}
	if got := c.Apply(nil, sel); len(got) != 0 {
		t.Fatalf("Apply = %v, want empty", got)
	}
	if got := c.Apply(nil, Selection{}); got == nil {
		t.Fatal("Apply should return an empty, non-nil slice")
	}
}

func TestPrune(t *testing.T) {
	c := camCascade()
	tests := []struct {
		name string
		in   Selection
		want Selection
	}{
		{"valid kept", Selection{"Building A", "Exit 1", "C2"}, Selection{"Building A", "Exit 1", "C2"}},
		{"unknown region", Selection{"Parking", "Exit 1", "C2"}, Selection{}},
		{"stale sub-region", Selection{"Building B", "Exit 1", "C2"}, Selection{Region: "Building B"}},
		{"stale leaf", Selection{"Building A", "Exit 1", "C1"}, Selection{Region: "Building A", SubRegion: "Exit 1"}},
		{"orphan leaf", Selection{Region: "Building A", Leaf: "C1"}, Selection{Region: "Building A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Prune(sample, tt.in); got != tt.want {
				t.Errorf("Prune(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"region":     LevelRegion,
		"subRegion":  LevelSubRegion,
		"sub_region": LevelSubRegion,
		"camera":     LevelLeaf,
	} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("floor"); err == nil {
		t.Error("expected error for unknown level")
	}
}
