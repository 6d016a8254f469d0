package engine

import (
	"sort"
	"strings"

	"taskmaster/internal/task"
)

// Filter narrows the displayed set by completion status.
type Filter int

const (
	FilterAll Filter = iota
	FilterPending
	FilterDone
)

// String returns the filter name shown in the view header.
func (f Filter) String() string {
	switch f {
	case FilterPending:
		return "pending"
	case FilterDone:
		return "done"
	default:
		return "all"
	}
}

// SortField selects the secondary sort key; the view is always bucketed
// pending-before-done first.
type SortField int

const (
	SortCreated SortField = iota
	SortPriority
	SortAlpha
)

// String returns the sort field name shown in the view header.
func (f SortField) String() string {
	switch f {
	case SortPriority:
		return "priority"
	case SortAlpha:
		return "alpha"
	default:
		return "created"
	}
}

// Stats summarizes the full, unfiltered task sequence.
type Stats struct {
	Total   int
	Pending int
	Done    int
	Overdue int
}

// Filter returns the active status filter.
func (s *Store) Filter() Filter { return s.filter }

// SortField returns the active sort field.
func (s *Store) SortField() SortField { return s.sortField }

// SortReversed reports whether the sort order is reversed.
func (s *Store) SortReversed() bool { return s.sortReverse }

// Search returns the active search query, possibly empty.
func (s *Store) Search() string { return s.search }

// Len returns the size of the full task sequence.
func (s *Store) Len() int { return len(s.tasks) }

// Tasks returns the full task sequence in insertion order. The slice is a
// copy; the tasks are shared references.
func (s *Store) Tasks() []*task.Task {
	out := make([]*task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// CycleFilter advances all -> pending -> done -> all and returns the new
// filter.
func (s *Store) CycleFilter() Filter {
	switch s.filter {
	case FilterAll:
		s.filter = FilterPending
	case FilterPending:
		s.filter = FilterDone
	default:
		s.filter = FilterAll
	}
	return s.filter
}

// CycleSort advances created -> priority -> alpha -> created and returns
// the new sort field.
func (s *Store) CycleSort() SortField {
	switch s.sortField {
	case SortCreated:
		s.sortField = SortPriority
	case SortPriority:
		s.sortField = SortAlpha
	default:
		s.sortField = SortCreated
	}
	return s.sortField
}

// ToggleSortDirection flips the reverse flag and returns the new value.
func (s *Store) ToggleSortDirection() bool {
	s.sortReverse = !s.sortReverse
	return s.sortReverse
}

// SetSearch sets the search query.
func (s *Store) SetSearch(query string) {
	s.search = query
}

// ClearSearch resets the search query.
func (s *Store) ClearSearch() {
	s.search = ""
}

// FilteredView runs the filter -> search -> sort pipeline and returns the
// ordered view the UI renders. The returned tasks are shared references,
// not copies; the UI must address them by ID when mutating, since the view
// can go stale between render and action.
func (s *Store) FilteredView() []*task.Task {
	view := make([]*task.Task, 0, len(s.tasks))
	query := strings.ToLower(s.search)
	for _, t := range s.tasks {
		if !s.matchesFilter(t) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(t.Description), query) {
			continue
		}
		view = append(view, t)
	}

	// Stable sort on a total composite order; reversing flips the whole
	// order including the pending/done bucketing, while equal keys keep
	// their sequence order either way.
	sort.SliceStable(view, func(i, j int) bool {
		c := s.compare(view[i], view[j])
		if s.sortReverse {
			return c > 0
		}
		return c < 0
	})
	return view
}

func (s *Store) matchesFilter(t *task.Task) bool {
	switch s.filter {
	case FilterPending:
		return t.Status == task.StatusPending
	case FilterDone:
		return t.Status == task.StatusDone
	default:
		return true
	}
}

// compare orders two tasks: pending before done, then by the active sort
// field ascending, with created-at breaking priority and alpha ties.
func (s *Store) compare(a, b *task.Task) int {
	if c := statusBucket(a) - statusBucket(b); c != 0 {
		return c
	}
	switch s.sortField {
	case SortPriority:
		if c := int(a.Priority) - int(b.Priority); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	case SortAlpha:
		if c := strings.Compare(strings.ToLower(a.Description), strings.ToLower(b.Description)); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func statusBucket(t *task.Task) int {
	if t.Status == task.StatusDone {
		return 1
	}
	return 0
}

// Stats computes counts over the full sequence, ignoring filter and
// search. Overdue uses the store clock and counts pending tasks only.
func (s *Store) Stats() Stats {
	now := s.now()
	st := Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Status == task.StatusDone {
			st.Done++
		} else {
			st.Pending++
		}
		if t.OverdueAt(now) {
			st.Overdue++
		}
	}
	return st
}

// Bucket classifies a task's deadline urgency using the store's configured
// due-soon window and clock.
func (s *Store) Bucket(t *task.Task) task.DeadlineBucket {
	return t.BucketAt(s.now(), s.dueSoonWindow)
}
