package assetview

import (
	"sort"
	"strings"
)

// FilterSpec is the active set of narrowing predicates for a view. Zero-value
// fields are inactive and match everything.
type FilterSpec struct {
	Status   Status
	Location string
	Owner    string
	Search   string
}

// matches reports whether the record satisfies every active predicate.
func (f FilterSpec) matches(r Record) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(r.AssetID), q) &&
			!strings.Contains(strings.ToLower(r.Owner), q) &&
			!strings.Contains(strings.ToLower(r.Location), q) {
			return false
		}
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.Location != "" && r.Location != f.Location {
		return false
	}
	if f.Owner != "" && r.Owner != f.Owner {
		return false
	}
	return true
}

// VisibleSlice returns the records matching every active predicate of the
// filter, preserving input order. The result is a fresh slice; the input is
// never modified.
func VisibleSlice(assets []Record, f FilterSpec) []Record {
	out := make([]Record, 0, len(assets))
	for _, r := range assets {
		if f.matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// DistinctValues returns the de-duplicated values of the named field across
// the records, sorted for stable presentation. Supported fields: owner,
// location, status, category.
func DistinctValues(assets []Record, field string) []string {
	seen := map[string]struct{}{}
	for _, r := range assets {
		var v string
		switch field {
		case "owner":
			v = r.Owner
		case "location":
			v = r.Location
		case "status":
			v = string(r.Status)
		case "category":
			v = r.Category
		}
		if v != "" {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
