package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrMalformedRecord is wrapped by every deserialization failure: a missing
// required field, an unrecognized enum value, or an invalid timestamp.
var ErrMalformedRecord = errors.New("malformed task record")

// Record is the persisted, field-for-field shape of a task. Timestamps are
// RFC 3339 strings; a nil due date means no deadline.
type Record struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	CreatedAt   string  `json:"created_at"`
	DueDate     *string `json:"due_date"`
	UpdatedAt   string  `json:"updated_at"`
}

// Record returns the serialized form of the task.
func (t *Task) Record() Record {
	r := Record{
		ID:          t.ID,
		Description: t.Description,
		Status:      t.Status.String(),
		Priority:    t.Priority.String(),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339Nano),
	}
	if t.DueDate != nil {
		due := t.DueDate.Format(time.RFC3339Nano)
		r.DueDate = &due
	}
	return r
}

// FromRecord reconstructs a task from its persisted form. Any violation of
// the record shape fails with an error wrapping ErrMalformedRecord; a
// missing priority defaults to medium for records written by older
// versions.
func FromRecord(r Record) (*Task, error) {
	if r.ID == "" {
		return nil, malformed("id", "missing")
	}
	desc, err := cleanDescription(r.Description)
	if err != nil {
		return nil, malformed("description", "empty")
	}

	var status Status
	switch r.Status {
	case "PENDING":
		status = StatusPending
	case "DONE":
		status = StatusDone
	case "":
		return nil, malformed("status", "missing")
	default:
		return nil, malformed("status", fmt.Sprintf("unknown value %q", r.Status))
	}

	var prio Priority
	switch r.Priority {
	case "LOW":
		prio = PriorityLow
	case "MEDIUM", "":
		prio = PriorityMedium
	case "HIGH":
		prio = PriorityHigh
	default:
		return nil, malformed("priority", fmt.Sprintf("unknown value %q", r.Priority))
	}

	createdAt, err := parseTimestamp("created_at", r.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseTimestamp("updated_at", r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if updatedAt.Before(createdAt) {
		updatedAt = createdAt
	}

	var due *time.Time
	if r.DueDate != nil {
		d, err := parseTimestamp("due_date", *r.DueDate)
		if err != nil {
			return nil, err
		}
		due = &d
	}

	return &Task{
		ID:          r.ID,
		Description: desc,
		Status:      status,
		Priority:    prio,
		CreatedAt:   createdAt,
		DueDate:     due,
		UpdatedAt:   updatedAt,
	}, nil
}

// EncodeRecords serializes tasks as an indented JSON array of records.
func EncodeRecords(tasks []*Task) ([]byte, error) {
	records := make([]Record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, t.Record())
	}
	return json.MarshalIndent(records, "", "  ")
}

// DecodeRecords parses a JSON array of records into tasks. The whole decode
// fails on the first malformed record; partial results are never returned.
func DecodeRecords(data []byte) ([]*Task, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	tasks := make([]*Task, 0, len(records))
	for _, r := range records {
		t, err := FromRecord(r)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func malformed(field, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformedRecord, field, reason)
}

func parseTimestamp(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, malformed(field, "missing")
	}
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, malformed(field, fmt.Sprintf("invalid timestamp %q", value))
	}
	return ts, nil
}
