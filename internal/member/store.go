package member

import "slices"

// Store holds the canonical record collection in load order.
type Store struct {
	records []Record
	index   map[ID]int
}

func NewStore(records ...Record) *Store {
	s := &Store{}
	s.ReplaceAll(records)
	return s
}

// ReplaceAll swaps the whole collection. The input is copied; a repeated id
// keeps its first occurrence.
func (s *Store) ReplaceAll(records []Record) {
	out := make([]Record, 0, len(records))
	index := make(map[ID]int, len(records))
	for _, r := range records {
		if _, dup := index[r.ID]; dup {
			continue
		}
		index[r.ID] = len(out)
		out = append(out, r)
	}
	s.records = out
	s.index = index
}

// RemoveWhere deletes every record whose id matches pred and returns the
// removed ids in store order.
func (s *Store) RemoveWhere(pred func(ID) bool) []ID {
	var removed []ID
	kept := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		if pred(r.ID) {
			removed = append(removed, r.ID)
			continue
		}
		kept = append(kept, r)
	}
	if len(removed) == 0 {
		return nil
	}
	s.ReplaceAll(kept)
	return removed
}

// UpdateOne merges d into the record with id. Absent ids are a no-op.
func (s *Store) UpdateOne(id ID, d Draft) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.records[i] = s.records[i].Apply(d)
	return true
}

func (s *Store) Get(id ID) (Record, bool) {
	i, ok := s.index[id]
	if !ok {
		return Record{}, false
	}
	return s.records[i], true
}

func (s *Store) Has(id ID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Store) Len() int { return len(s.records) }

// All returns a copy of the collection in store order.
func (s *Store) All() []Record {
	return slices.Clone(s.records)
}
