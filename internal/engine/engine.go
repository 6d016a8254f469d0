// Package engine owns the authoritative task list: every mutation goes
// through the Store, which rewrites the backing file synchronously after
// each change, and every read goes through the filter/search/sort pipeline
// in view.go.
package engine

import (
	"errors"
	"fmt"
	"os"
	"time"

	"taskmaster/internal/fsutil"
	"taskmaster/internal/task"
)

const dataFilePerm os.FileMode = 0600

// PersistenceError reports that the data file could not be rewritten after
// a mutation. The in-memory mutation has already been applied and stands;
// the caller should surface this as a warning, not roll back.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("save tasks to %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Store is the authoritative ordered task collection plus the transient
// view state (filter, sort, search) the UI renders through. It is not safe
// for concurrent use; the TUI event loop is its only caller.
type Store struct {
	path  string
	tasks []*task.Task

	filter      Filter
	sortField   SortField
	sortReverse bool
	search      string

	dueSoonWindow time.Duration
	now           func() time.Time
}

// New creates a store backed by the given data file. Call Load before use.
func New(path string) *Store {
	return &Store{
		path:          path,
		tasks:         []*task.Task{},
		dueSoonWindow: task.DefaultDueSoonWindow,
		now:           time.Now,
	}
}

// SetNowFunc overrides the clock used for overdue/due-soon evaluation.
// Passing nil resets it to time.Now.
func (s *Store) SetNowFunc(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	s.now = now
}

// SetDueSoonWindow sets the look-ahead window for due-soon classification.
func (s *Store) SetDueSoonWindow(d time.Duration) {
	if d > 0 {
		s.dueSoonWindow = d
	}
}

// DueSoonWindow returns the active due-soon window.
func (s *Store) DueSoonWindow() time.Duration { return s.dueSoonWindow }

// Path returns the backing data file path.
func (s *Store) Path() string { return s.path }

// Load reads the full data file. A missing file is a fresh start, not an
// error. A file that fails to parse is moved aside with a timestamped
// suffix, the store starts empty, and the returned error (wrapping
// task.ErrMalformedRecord) is a warning for the UI — never fatal, never
// silent data loss.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.tasks = []*task.Task{}
			return nil
		}
		s.tasks = []*task.Task{}
		return fmt.Errorf("read %s: %w", s.path, err)
	}

	tasks, err := task.DecodeRecords(data)
	if err != nil {
		s.tasks = []*task.Task{}
		if aside := fsutil.PreserveCorrupt(s.path); aside != "" {
			return fmt.Errorf("load %s: %w (file moved to %s)", s.path, err, aside)
		}
		return fmt.Errorf("load %s: %w", s.path, err)
	}

	s.tasks = tasks
	return nil
}

// save rewrites the full task sequence. Mutations call it after the
// in-memory change is already applied.
func (s *Store) save() error {
	data, err := task.EncodeRecords(s.tasks)
	if err != nil {
		return &PersistenceError{Path: s.path, Err: err}
	}
	fsutil.BestEffortBackup(s.path, dataFilePerm)
	if err := fsutil.WriteFileAtomic(s.path, data, dataFilePerm); err != nil {
		return &PersistenceError{Path: s.path, Err: err}
	}
	return nil
}

// find returns the task with the given ID from the full sequence, or nil.
func (s *Store) find(id string) *task.Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Add creates a task and inserts it at the front of the sequence. Adding
// resets the filter to all and clears the search query so the new task is
// visible immediately. Returns task.ErrEmptyDescription for blank input,
// or a *PersistenceError (with the task still added) if the save fails.
func (s *Store) Add(description string) (*task.Task, error) {
	t, err := task.New(description)
	if err != nil {
		return nil, err
	}
	s.tasks = append([]*task.Task{t}, s.tasks...)
	s.filter = FilterAll
	s.search = ""
	return t, s.save()
}

// Delete removes the task with the given ID. An unknown ID is a silent
// no-op: the filtered view the caller addressed may have been stale.
func (s *Store) Delete(id string) (bool, error) {
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true, s.save()
		}
	}
	return false, nil
}

// Toggle flips the status of the task with the given ID, looked up in the
// full sequence rather than the filtered view. Returns the toggled task,
// or nil for an unknown ID.
func (s *Store) Toggle(id string) (*task.Task, error) {
	t := s.find(id)
	if t == nil {
		return nil, nil
	}
	t.ToggleStatus()
	return t, s.save()
}

// Edit replaces the description of the task with the given ID. Unknown IDs
// are a silent no-op; invalid descriptions return task.ErrEmptyDescription
// with the task unchanged.
func (s *Store) Edit(id, description string) (bool, error) {
	t := s.find(id)
	if t == nil {
		return false, nil
	}
	if err := t.UpdateDescription(description); err != nil {
		return false, err
	}
	return true, s.save()
}

// Reprioritize sets the priority of the task with the given ID.
func (s *Store) Reprioritize(id string, p task.Priority) (bool, error) {
	t := s.find(id)
	if t == nil {
		return false, nil
	}
	t.UpdatePriority(p)
	return true, s.save()
}

// SetDeadline sets or clears (nil) the due date of the task with the
// given ID.
func (s *Store) SetDeadline(id string, due *time.Time) (bool, error) {
	t := s.find(id)
	if t == nil {
		return false, nil
	}
	t.SetDueDate(due)
	return true, s.save()
}

// ArchiveDone removes every done task in one step and reports how many
// were removed. With no done tasks it reports zero and does not touch the
// file. Filter, sort, and search state are preserved.
func (s *Store) ArchiveDone() (int, error) {
	kept := s.tasks[:0:0]
	removed := 0
	for _, t := range s.tasks {
		if t.Status == task.StatusDone {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	if removed == 0 {
		return 0, nil
	}
	s.tasks = kept
	return removed, s.save()
}

// IsPersistenceError reports whether err is a save failure whose in-memory
// mutation still stands.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
