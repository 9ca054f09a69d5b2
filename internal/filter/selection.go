// Package filter evaluates a listing set against the user's current filter
// selection. The selection is an immutable value updated through pure
// reducer functions, so every state transition is unit-testable without a
// UI harness and re-applying a selection is always idempotent.
package filter

import "sort"

// Selection is the active filter state for one search session. PriceMin and
// PriceMax stay nil until the user drags a slider handle, meaning
// "unbounded". Selected maps a facet group key to the set of selected item
// ids; ids carry a per-group prefix so they never collide across groups.
type Selection struct {
	PriceMin *float64
	PriceMax *float64
	Selected map[string]map[string]bool
}

// New returns an empty selection.
func New() Selection {
	return Selection{Selected: map[string]map[string]bool{}}
}

// Toggle returns a new selection with the item flipped on or off. The input
// selection is not mutated.
func Toggle(s Selection, group, id string) Selection {
	out := s.clone()
	set := out.Selected[group]
	if set == nil {
		set = map[string]bool{}
		out.Selected[group] = set
	}
	if set[id] {
		delete(set, id)
		if len(set) == 0 {
			delete(out.Selected, group)
		}
	} else {
		set[id] = true
	}
	return out
}

// ClearGroup returns a new selection with every id of the group removed.
func ClearGroup(s Selection, group string) Selection {
	out := s.clone()
	delete(out.Selected, group)
	return out
}

// Clear returns a new selection with all groups and price bounds removed.
func Clear(s Selection) Selection {
	return New()
}

// SetPriceBounds returns a new selection with the given price bounds. A nil
// bound means unbounded on that side.
func SetPriceBounds(s Selection, min, max *float64) Selection {
	out := s.clone()
	out.PriceMin = copyFloat(min)
	out.PriceMax = copyFloat(max)
	return out
}

// Has reports whether an item is selected.
func (s Selection) Has(group, id string) bool {
	return s.Selected[group][id]
}

// IDs returns the sorted selected ids for a group.
func (s Selection) IDs(group string) []string {
	set := s.Selected[group]
	if len(set) == 0 {
		return nil
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether no filter is active at all.
func (s Selection) Empty() bool {
	return s.PriceMin == nil && s.PriceMax == nil && len(s.Selected) == 0
}

func (s Selection) clone() Selection {
	out := Selection{
		PriceMin: copyFloat(s.PriceMin),
		PriceMax: copyFloat(s.PriceMax),
		Selected: make(map[string]map[string]bool, len(s.Selected)),
	}
	for group, set := range s.Selected {
		copied := make(map[string]bool, len(set))
		for id := range set {
			copied[id] = true
		}
		out.Selected[group] = copied
	}
	return out
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
