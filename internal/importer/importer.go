// Package importer migrates tasks from other productivity tools into the
// task store. Todoist CSV exports and Taskwarrior JSON exports are
// supported.
package importer

import (
	"fmt"
	"io"
	"time"

	"taskmaster/internal/engine"
	"taskmaster/internal/task"
)

// Result contains statistics about an import operation.
type Result struct {
	Imported int      // Number of successfully imported tasks
	Errors   []string // Error messages for failed imports
}

// Preview represents a task parsed from an export before import.
type Preview struct {
	Description string
	Priority    task.Priority
	DueDate     *time.Time
	Done        bool
}

// Importer defines the interface for import implementations.
type Importer interface {
	// Name returns the format name, e.g. "todoist".
	Name() string

	// Preview parses the export without touching the store.
	Preview(r io.Reader) ([]Preview, error)

	// Import parses the export and adds every task to the store.
	Import(r io.Reader, store *engine.Store) (*Result, error)
}

// ForFormat returns the importer for a format name, or nil for an unknown
// format.
func ForFormat(name string) Importer {
	switch name {
	case "todoist":
		return &TodoistImporter{}
	case "taskwarrior":
		return &TaskwarriorImporter{}
	default:
		return nil
	}
}

// importAll adds parsed previews to the store, carrying over priority, due
// date, and completion state. Failures are collected per task; one bad
// task never aborts the rest.
func importAll(previews []Preview, store *engine.Store) *Result {
	result := &Result{}
	for _, p := range previews {
		t, err := store.Add(p.Description)
		if t == nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", p.Description, err))
			continue
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", p.Description, err))
		}
		if p.Priority != task.PriorityMedium {
			store.Reprioritize(t.ID, p.Priority)
		}
		if p.DueDate != nil {
			store.SetDeadline(t.ID, p.DueDate)
		}
		if p.Done {
			store.Toggle(t.ID)
		}
		result.Imported++
	}
	return result
}
