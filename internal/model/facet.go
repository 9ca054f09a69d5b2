package model

// FacetItem is one selectable value within a facet group.
type FacetItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FacetGroup is a named, ordered list of facet items shown in the sidebar.
// A group is only surfaced when at least one item has a non-zero count.
type FacetGroup struct {
	Key          string      `json:"key"`
	Title        string      `json:"title"`
	Items        []FacetItem `json:"items"`
	ShowAllLabel string      `json:"show_all_label,omitempty"`
}

// HasItem reports whether the group contains an item with the given id.
func (g FacetGroup) HasItem(id string) bool {
	for _, it := range g.Items {
		if it.ID == id {
			return true
		}
	}
	return false
}
