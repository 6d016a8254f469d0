// Package task defines the task entity: its fields, invariants, and the
// time-derived state (overdue, due-soon, deadline bucket) that sorting and
// rendering are built on.
package task

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the completion state of a task.
type Status int

const (
	StatusPending Status = iota
	StatusDone
)

// String returns the persisted name of the status.
func (s Status) String() string {
	if s == StatusDone {
		return "DONE"
	}
	return "PENDING"
}

// Priority is the urgency level of a task. The ordinal values define the
// sort order: low sorts before medium sorts before high.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

// String returns the persisted name of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "LOW"
	case PriorityHigh:
		return "HIGH"
	default:
		return "MEDIUM"
	}
}

// DeadlineBucket classifies a task's urgency relative to its due date.
type DeadlineBucket int

const (
	BucketNone DeadlineBucket = iota
	BucketDone
	BucketOverdue
	BucketSoon
	BucketNormal
)

// String returns the bucket name used by rendering and tests.
func (b DeadlineBucket) String() string {
	switch b {
	case BucketDone:
		return "done"
	case BucketOverdue:
		return "overdue"
	case BucketSoon:
		return "soon"
	case BucketNormal:
		return "normal"
	default:
		return "none"
	}
}

const (
	// MaxDescriptionLen is the cap on a task description, in runes.
	// Longer input is silently truncated, not rejected.
	MaxDescriptionLen = 200

	// DefaultDueSoonWindow is the look-ahead used by IsDueSoon when the
	// caller has no configured window.
	DefaultDueSoonWindow = 24 * time.Hour
)

// ErrEmptyDescription is returned when a task is created or edited with an
// empty or whitespace-only description.
var ErrEmptyDescription = errors.New("task description cannot be empty")

// Task is one user-visible item. The ID is immutable and is the sole
// equality key; everything else changes only through the mutation methods,
// each of which refreshes UpdatedAt.
type Task struct {
	ID          string
	Description string
	Status      Status
	Priority    Priority
	CreatedAt   time.Time
	DueDate     *time.Time
	UpdatedAt   time.Time
}

// New creates a pending, medium-priority task with a fresh UUID and the
// current time as both created and updated timestamps.
func New(description string) (*Task, error) {
	desc, err := cleanDescription(description)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Task{
		ID:          uuid.NewString(),
		Description: desc,
		Status:      StatusPending,
		Priority:    PriorityMedium,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// cleanDescription trims, validates, and truncates a description to
// MaxDescriptionLen runes.
func cleanDescription(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyDescription
	}
	if r := []rune(s); len(r) > MaxDescriptionLen {
		s = string(r[:MaxDescriptionLen])
	}
	return s, nil
}

// Equal reports whether two tasks are the same task, by ID only.
func (t *Task) Equal(other *Task) bool {
	return other != nil && t.ID == other.ID
}

// ToggleStatus flips the task between pending and done.
func (t *Task) ToggleStatus() {
	if t.Status == StatusDone {
		t.Status = StatusPending
	} else {
		t.Status = StatusDone
	}
	t.touch()
}

// UpdateDescription replaces the description, applying the same
// trim/validate/truncate rules as New. On error the task is unchanged.
func (t *Task) UpdateDescription(text string) error {
	desc, err := cleanDescription(text)
	if err != nil {
		return err
	}
	t.Description = desc
	t.touch()
	return nil
}

// UpdatePriority sets the priority.
func (t *Task) UpdatePriority(p Priority) {
	t.Priority = p
	t.touch()
}

// SetDueDate sets or clears (nil) the due date.
func (t *Task) SetDueDate(due *time.Time) {
	if due != nil {
		d := *due
		due = &d
	}
	t.DueDate = due
	t.touch()
}

func (t *Task) touch() {
	now := time.Now()
	if now.Before(t.CreatedAt) {
		now = t.CreatedAt
	}
	t.UpdatedAt = now
}

// IsOverdue reports whether the task has a due date in the past and is
// still pending. Done tasks are never overdue.
func (t *Task) IsOverdue() bool {
	return t.OverdueAt(time.Now())
}

// OverdueAt is IsOverdue evaluated at an explicit instant.
func (t *Task) OverdueAt(now time.Time) bool {
	if t.DueDate == nil || t.Status == StatusDone {
		return false
	}
	return now.After(*t.DueDate)
}

// IsDueSoon reports whether the task is pending with a due date within the
// given window from now. A non-positive window falls back to
// DefaultDueSoonWindow. Done tasks are never due soon.
func (t *Task) IsDueSoon(window time.Duration) bool {
	return t.DueSoonAt(time.Now(), window)
}

// DueSoonAt is IsDueSoon evaluated at an explicit instant.
func (t *Task) DueSoonAt(now time.Time, window time.Duration) bool {
	if t.DueDate == nil || t.Status == StatusDone {
		return false
	}
	if window <= 0 {
		window = DefaultDueSoonWindow
	}
	due := *t.DueDate
	return now.Before(due) && !due.After(now.Add(window))
}

// HoursUntilDue returns the signed distance to the due date in hours,
// negative when past. The second result is false when no due date is set.
func (t *Task) HoursUntilDue() (float64, bool) {
	return t.hoursUntilDueAt(time.Now())
}

func (t *Task) hoursUntilDueAt(now time.Time) (float64, bool) {
	if t.DueDate == nil {
		return 0, false
	}
	return t.DueDate.Sub(now).Hours(), true
}

// Bucket classifies the task's deadline urgency: none when there is no due
// date, done when completed, then overdue / soon / normal in that
// precedence order.
func (t *Task) Bucket(window time.Duration) DeadlineBucket {
	return t.BucketAt(time.Now(), window)
}

// BucketAt is Bucket evaluated at an explicit instant.
func (t *Task) BucketAt(now time.Time, window time.Duration) DeadlineBucket {
	switch {
	case t.DueDate == nil:
		return BucketNone
	case t.Status == StatusDone:
		return BucketDone
	case t.OverdueAt(now):
		return BucketOverdue
	case t.DueSoonAt(now, window):
		return BucketSoon
	default:
		return BucketNormal
	}
}
