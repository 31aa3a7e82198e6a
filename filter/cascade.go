// Package filter derives the dependent region → sub-region → leaf dropdown
// options shared by the dashboard, log report, camera and area screens.
package filter

// Accessors pull the three classification fields out of a record.
// Leaf may be nil for two-level pickers (region and sub-region only).
type Accessors[T any] struct {
	Region    func(T) string
	SubRegion func(T) string
	Leaf      func(T) string
}

// Options holds the legal values at each level for a given selection.
type Options struct {
	Regions    []string `json:"regions"`
	SubRegions []string `json:"sub_regions"`
	Leaves     []string `json:"leaves"`
}

// Cascade is a stateless engine over records of type T.
type Cascade[T any] struct {
	acc Accessors[T]
}

// New builds a Cascade. Region and SubRegion accessors are required.
func New[T any](acc Accessors[T]) *Cascade[T] {
	if acc.Region == nil || acc.SubRegion == nil {
		panic("filter: Region and SubRegion accessors are required")
	}
	return &Cascade[T]{acc: acc}
}

// RegionOptions returns the distinct region values in first-seen order.
func (c *Cascade[T]) RegionOptions(records []T) []string {
	return distinct(records, func(T) bool { return true }, c.acc.Region)
}

// SubRegionOptions returns the distinct sub-regions of records in region.
// Empty when region is empty.
func (c *Cascade[T]) SubRegionOptions(records []T, region string) []string {
	if region == "" {
		return []string{}
	}
	return distinct(records, func(r T) bool {
		return c.acc.Region(r) == region
	}, c.acc.SubRegion)
}

// LeafOptions returns the distinct leaves under region and subRegion.
// Empty when subRegion is empty or the cascade has no leaf level.
func (c *Cascade[T]) LeafOptions(records []T, region, subRegion string) []string {
	if c.acc.Leaf == nil || region == "" || subRegion == "" {
		return []string{}
	}
	return distinct(records, func(r T) bool {
		return c.acc.Region(r) == region && c.acc.SubRegion(r) == subRegion
	}, c.acc.Leaf)
}

// Options derives all three option lists for sel in one call.
func (c *Cascade[T]) Options(records []T, sel Selection) Options {
	return Options{
		Regions:    c.RegionOptions(records),
		SubRegions: c.SubRegionOptions(records, sel.Region),
		Leaves:     c.LeafOptions(records, sel.Region, sel.SubRegion),
	}
}

// Apply keeps the records matching every non-empty level of sel, preserving order.
// Matching is exact string equality. The input slice is never modified.
func (c *Cascade[T]) Apply(records []T, sel Selection) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if c.matches(r, sel) {
			out = append(out, r)
		}
	}
	return out
}

// Prune clears any level whose value is no longer among the options derived
// from records, along with its descendants.
func (c *Cascade[T]) Prune(records []T, sel Selection) Selection {
	sel = sel.Normalize()
	if sel.Region != "" && !contains(c.RegionOptions(records), sel.Region) {
		return Selection{}
	}
	if sel.SubRegion != "" && !contains(c.SubRegionOptions(records, sel.Region), sel.SubRegion) {
		sel.SubRegion = ""
		sel.Leaf = ""
		return sel
	}
	if sel.Leaf != "" && !contains(c.LeafOptions(records, sel.Region, sel.SubRegion), sel.Leaf) {
		sel.Leaf = ""
	}
	return sel
}

func (c *Cascade[T]) matches(r T, sel Selection) bool {
	if sel.Region != "" && c.acc.Region(r) != sel.Region {
		return false
	}
	if sel.SubRegion != "" && c.acc.SubRegion(r) != sel.SubRegion {
		return false
	}
	if sel.Leaf != "" && c.acc.Leaf != nil && c.acc.Leaf(r) != sel.Leaf {
		return false
	}
	return true
}

func distinct[T any](records []T, keep func(T) bool, field func(T) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range records {
		if !keep(r) {
			continue
		}
		v := field(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
