package member

import (
	"maps"
	"slices"
)

// Selection is the set of selected record ids. It is not scoped to a page;
// only select-all reads the visible window.
type Selection struct {
	ids map[ID]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[ID]struct{})}
}

// Toggle adds id if absent and removes it if present.
func (s *Selection) Toggle(id ID) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// SelectAllVisible adds every visible id. Ids selected on other pages stay
// selected.
func (s *Selection) SelectAllVisible(visible []ID) {
	for _, id := range visible {
		s.ids[id] = struct{}{}
	}
}

func (s *Selection) ClearAll() {
	clear(s.ids)
}

// IsAllVisibleSelected reports whether the visible set is non-empty and
// fully selected. It drives the header checkbox.
func (s *Selection) IsAllVisibleSelected(visible []ID) bool {
	if len(visible) == 0 {
		return false
	}
	for _, id := range visible {
		if _, ok := s.ids[id]; !ok {
			return false
		}
	}
	return true
}

// Purge drops removed ids. Called in the same step as the store removal.
func (s *Selection) Purge(removed []ID) {
	for _, id := range removed {
		delete(s.ids, id)
	}
}

// Retain keeps only the ids for which keep returns true.
func (s *Selection) Retain(keep func(ID) bool) {
	maps.DeleteFunc(s.ids, func(id ID, _ struct{}) bool { return !keep(id) })
}

func (s *Selection) Has(id ID) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Len() int { return len(s.ids) }

// IDs returns the selected ids sorted.
func (s *Selection) IDs() []ID {
	return slices.Sorted(maps.Keys(s.ids))
}
