// Package selection holds the bounded set of plans a user picked for
// comparison or quotation.
package selection

import "errors"

// MaxPlans is the hard cap on selected plans.
const MaxPlans = 3

// ErrCapacityExceeded signals an append on a full selection.
var ErrCapacityExceeded = errors.New("selection: no more than 3 plans can be compared")

// Selection is an ordered set of distinct plan identifiers. The zero value is
// an empty selection. Operations never mutate the receiver.
type Selection struct {
	ids []int64
}

// Of builds a selection from ids, dropping duplicates and anything past MaxPlans.
func Of(ids ...int64) Selection {
	var s Selection
	for _, id := range ids {
		if s.Contains(id) {
			continue
		}
		next, err := s.add(id)
		if err != nil {
			break
		}
		s = next
	}
	return s
}

// Toggle removes id when present and appends it otherwise. Appending to a full
// selection returns the receiver unchanged together with ErrCapacityExceeded.
func (s Selection) Toggle(id int64) (Selection, error) {
	if s.Contains(id) {
		return s.remove(id), nil
	}
	return s.add(id)
}

// Clear returns the empty selection.
func (s Selection) Clear() Selection {
	return Selection{}
}

// ReplaceWithSingle discards the current members and returns a selection
// holding only id.
func (s Selection) ReplaceWithSingle(id int64) Selection {
	return Selection{ids: []int64{id}}
}

// Contains reports whether id is selected.
func (s Selection) Contains(id int64) bool {
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// Len returns the number of selected plans.
func (s Selection) Len() int { return len(s.ids) }

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool { return len(s.ids) == 0 }

// IsFull reports whether the cap has been reached.
func (s Selection) IsFull() bool { return len(s.ids) >= MaxPlans }

// IDs returns a copy of the selected identifiers in selection order.
func (s Selection) IDs() []int64 {
	out := make([]int64, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s Selection) add(id int64) (Selection, error) {
	if s.IsFull() {
		return s, ErrCapacityExceeded
	}
	ids := make([]int64, len(s.ids), len(s.ids)+1)
	copy(ids, s.ids)
	return Selection{ids: append(ids, id)}, nil
}

func (s Selection) remove(id int64) Selection {
	ids := make([]int64, 0, len(s.ids))
	for _, existing := range s.ids {
		if existing != id {
			ids = append(ids, existing)
		}
	}
	return Selection{ids: ids}
}
