package filter

import (
	"fmt"
	"strings"
)

// Level identifies one of the three dependent dropdowns.
type Level int

const (
	LevelRegion Level = iota
	LevelSubRegion
	LevelLeaf
)

func (l Level) String() string {
	switch l {
	case LevelRegion:
		return "region"
	case LevelSubRegion:
		return "sub_region"
	case LevelLeaf:
		return "leaf"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel accepts the snake_case and camelCase spellings used by query strings and the console.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "region":
		return LevelRegion, nil
	case "sub_region", "subregion", "sub-region":
		return LevelSubRegion, nil
	case "leaf", "camera":
		return LevelLeaf, nil
	}
	return 0, fmt.Errorf("unknown filter level %q", s)
}

// Selection is the (region, subRegion, leaf) triple of a single view.
// An empty string means "nothing selected" at that level.
//
// A descendant is only ever non-empty when all of its ancestors are.
type Selection struct {
	Region    string `json:"region" form:"region"`
	SubRegion string `json:"sub_region" form:"sub_region"`
	Leaf      string `json:"leaf" form:"leaf"`
}

// Select sets level to value and clears every descendant level.
// Selecting below an empty ancestor is ignored.
func (s *Selection) Select(level Level, value string) {
	switch level {
	case LevelRegion:
		s.Region = value
		s.SubRegion = ""
		s.Leaf = ""
	case LevelSubRegion:
		if s.Region == "" {
			return
		}
		s.SubRegion = value
		s.Leaf = ""
	case LevelLeaf:
		if s.SubRegion == "" {
			return
		}
		s.Leaf = value
	}
}

// Reset clears all three levels.
func (s *Selection) Reset() {
	*s = Selection{}
}

// Get returns the value held at level.
func (s Selection) Get(level Level) string {
	switch level {
	case LevelRegion:
		return s.Region
	case LevelSubRegion:
		return s.SubRegion
	case LevelLeaf:
		return s.Leaf
	}
	return ""
}

// IsEmpty reports whether no level is selected.
func (s Selection) IsEmpty() bool {
	return s.Region == "" && s.SubRegion == "" && s.Leaf == ""
}

// Valid reports whether the ancestor invariant holds.
func (s Selection) Valid() bool {
	if s.Region == "" && (s.SubRegion != "" || s.Leaf != "") {
		return false
	}
	if s.SubRegion == "" && s.Leaf != "" {
		return false
	}
	return true
}

// Normalize trims whitespace and drops any descendant held below an empty ancestor.
// Selections built from query strings go through this before use.
func (s Selection) Normalize() Selection {
	out := Selection{
		Region:    strings.TrimSpace(s.Region),
		SubRegion: strings.TrimSpace(s.SubRegion),
		Leaf:      strings.TrimSpace(s.Leaf),
	}
	if out.Region == "" {
		return Selection{}
	}
	if out.SubRegion == "" {
		out.Leaf = ""
	}
	return out
}
