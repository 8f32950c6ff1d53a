package spacedrep

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrUnknownItem is returned when grading an item the scheduler doesn't track.
var ErrUnknownItem = errors.New("unknown review item")

// Scheduler tracks SM-2 state for a set of review items.
type Scheduler struct {
	items map[string]*ReviewState
}

// NewScheduler creates a scheduler, loading review state from the snapshot.
// Entries with unparseable timestamps are skipped.
func NewScheduler(snap *SnapshotData) *Scheduler {
	s := &Scheduler{items: make(map[string]*ReviewState)}
	if snap == nil || snap.Items == nil {
		return s
	}
	for id, d := range snap.Items {
		if d == nil {
			continue
		}
		rs, err := fromData(id, d)
		if err != nil {
			continue
		}
		s.items[id] = rs
	}
	return s
}

// Add starts tracking a new item with the initial SM-2 state. Returns false
// if the item is already tracked.
func (s *Scheduler) Add(itemID, topic string) bool {
	if _, ok := s.items[itemID]; ok {
		return false
	}
	rs := InitialState()
	rs.ItemID = itemID
	rs.Topic = topic
	s.items[itemID] = &rs
	return true
}

// Remove stops tracking an item.
func (s *Scheduler) Remove(itemID string) bool {
	if _, ok := s.items[itemID]; !ok {
		return false
	}
	delete(s.items, itemID)
	return true
}

// Grade applies a recall grade to a tracked item and returns its new state.
func (s *Scheduler) Grade(itemID string, quality int, now time.Time) (ReviewState, error) {
	rs, ok := s.items[itemID]
	if !ok {
		return ReviewState{}, fmt.Errorf("grade %q: %w", itemID, ErrUnknownItem)
	}
	next := ApplyGrade(*rs, quality, now)
	s.items[itemID] = &next
	return next, nil
}

// DueItems returns the ids of items due for review, most overdue first.
// Never-scheduled items sort ahead of everything else.
func (s *Scheduler) DueItems(now time.Time) []string {
	type dueItem struct {
		id      string
		fresh   bool
		overdue float64
	}
	var due []dueItem

	for id, rs := range s.items {
		if rs.IsDue(now) {
			due = append(due, dueItem{id: id, fresh: rs.NextReviewAt == nil, overdue: rs.OverdueDays(now)})
		}
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].fresh != due[j].fresh {
			return due[i].fresh
		}
		if due[i].overdue != due[j].overdue {
			return due[i].overdue > due[j].overdue
		}
		return due[i].id < due[j].id
	})

	ids := make([]string, len(due))
	for i, d := range due {
		ids[i] = d.id
	}
	return ids
}

// Get returns a copy of an item's state.
func (s *Scheduler) Get(itemID string) (ReviewState, bool) {
	rs, ok := s.items[itemID]
	if !ok {
		return ReviewState{}, false
	}
	return *rs, true
}

// All returns copies of every tracked item, sorted by id.
func (s *Scheduler) All() []ReviewState {
	ids := make([]string, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]ReviewState, len(ids))
	for i, id := range ids {
		out[i] = *s.items[id]
	}
	return out
}

// Len returns the number of tracked items.
func (s *Scheduler) Len() int {
	return len(s.items)
}

// SnapshotData exports the current review state for persistence.
func (s *Scheduler) SnapshotData() *SnapshotData {
	data := &SnapshotData{Items: make(map[string]*ReviewStateData, len(s.items))}
	for id, rs := range s.items {
		data.Items[id] = toData(rs)
	}
	return data
}
