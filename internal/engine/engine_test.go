package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"taskmaster/internal/task"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "tasks.json"))
}

func makeTask(t *testing.T, description string, created time.Time, p task.Priority, status task.Status) *task.Task {
	t.Helper()
	tk, err := task.New(description)
	if err != nil {
		t.Fatalf("task.New(%q) error = %v", description, err)
	}
	tk.CreatedAt = created
	tk.UpdatedAt = created
	tk.Priority = p
	tk.Status = status
	return tk
}

func TestLoad_MissingFile(t *testing.T) {
	s := newTestStore(t)

	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v, want nil for missing file", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	err := s.Load()
	if !errors.Is(err, task.ErrMalformedRecord) {
		t.Fatalf("Load() error = %v, want ErrMalformedRecord", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after corrupt load", s.Len())
	}

	// The unreadable file is moved aside, never deleted.
	if _, statErr := os.Stat(s.Path()); !os.IsNotExist(statErr) {
		t.Error("corrupt file still present at original path")
	}
	preserved, _ := filepath.Glob(s.Path() + ".corrupt.*")
	if len(preserved) != 1 {
		t.Errorf("preserved copies = %d, want 1", len(preserved))
	}
}

func TestLoad_OneMalformedRecordAbortsAll(t *testing.T) {
	s := newTestStore(t)
	good := makeTask(t, "fine", time.Now(), task.PriorityLow, task.StatusPending).Record()
	data := fmt.Sprintf(`[
		{"id": %q, "description": "fine", "status": "PENDING", "priority": "LOW",
		 "created_at": %q, "due_date": null, "updated_at": %q},
		{"id": "second", "description": "bad status", "status": "MAYBE", "priority": "LOW",
		 "created_at": %q, "due_date": null, "updated_at": %q}
	]`, good.ID, good.CreatedAt, good.UpdatedAt, good.CreatedAt, good.UpdatedAt)
	if err := os.WriteFile(s.Path(), []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	if err := s.Load(); !errors.Is(err, task.ErrMalformedRecord) {
		t.Fatalf("Load() error = %v, want ErrMalformedRecord", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0: partial loads are not allowed", s.Len())
	}
}

func TestAddAndReload(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Add("First task"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := s.Add("Second task"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	fresh := New(s.Path())
	if err := fresh.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	tasks := fresh.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("Len() = %d, want 2", len(tasks))
	}
	if tasks[0].Description != "Second task" {
		t.Errorf("tasks[0] = %q, want the most recent add first", tasks[0].Description)
	}
	if tasks[1].Description != "First task" {
		t.Errorf("tasks[1] = %q, want %q", tasks[1].Description, "First task")
	}
}

func TestAdd_InsertsAtFront(t *testing.T) {
	s := newTestStore(t)

	a, _ := s.Add("older")
	b, _ := s.Add("newer")

	tasks := s.Tasks()
	if tasks[0].ID != b.ID || tasks[1].ID != a.ID {
		t.Error("newest task is not first in the sequence")
	}
}

func TestAdd_ResetsViewState(t *testing.T) {
	s := newTestStore(t)
	s.CycleFilter()
	s.CycleFilter() // done
	s.SetSearch("hidden")

	if _, err := s.Add("Visible immediately"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if s.Filter() != FilterAll {
		t.Errorf("Filter() = %v, want all", s.Filter())
	}
	if s.Search() != "" {
		t.Errorf("Search() = %q, want empty", s.Search())
	}
	view := s.FilteredView()
	if len(view) != 1 || view[0].Description != "Visible immediately" {
		t.Error("new task is not visible in the view")
	}
}

func TestAdd_EmptyDescription(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Add("   "); err != task.ErrEmptyDescription {
		t.Fatalf("Add() error = %v, want ErrEmptyDescription", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Error("rejected add still wrote the data file")
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	keep, _ := s.Add("keep")
	drop, _ := s.Add("drop")

	ok, err := s.Delete(drop.ID)
	if err != nil || !ok {
		t.Fatalf("Delete() = %v, %v, want true, nil", ok, err)
	}
	if s.Len() != 1 || s.Tasks()[0].ID != keep.ID {
		t.Error("wrong task removed")
	}

	fresh := New(s.Path())
	if err := fresh.Load(); err != nil {
		t.Fatal(err)
	}
	if fresh.Len() != 1 {
		t.Errorf("reloaded Len() = %d, want 1", fresh.Len())
	}
}

func TestDelete_UnknownID(t *testing.T) {
	s := newTestStore(t)
	s.Add("only task")

	ok, err := s.Delete("no-such-id")
	if err != nil {
		t.Fatalf("Delete() error = %v, want nil", err)
	}
	if ok {
		t.Error("Delete() = true for unknown ID")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestToggle(t *testing.T) {
	s := newTestStore(t)
	tk, _ := s.Add("flip me")

	got, err := s.Toggle(tk.ID)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if got == nil || got.Status != task.StatusDone {
		t.Errorf("Toggle() = %+v, want done", got)
	}

	got, err = s.Toggle(tk.ID)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if got.Status != task.StatusPending {
		t.Errorf("second Toggle() status = %v, want pending", got.Status)
	}

	if got, err := s.Toggle("stale-id"); got != nil || err != nil {
		t.Errorf("Toggle(unknown) = %v, %v, want nil, nil", got, err)
	}
}

func TestEdit(t *testing.T) {
	s := newTestStore(t)
	tk, _ := s.Add("tpyo")

	ok, err := s.Edit(tk.ID, "  typo fixed  ")
	if err != nil || !ok {
		t.Fatalf("Edit() = %v, %v, want true, nil", ok, err)
	}
	if tk.Description != "typo fixed" {
		t.Errorf("Description = %q, want %q", tk.Description, "typo fixed")
	}

	ok, err = s.Edit(tk.ID, "   ")
	if err != task.ErrEmptyDescription {
		t.Fatalf("Edit(blank) error = %v, want ErrEmptyDescription", err)
	}
	if ok || tk.Description != "typo fixed" {
		t.Error("rejected edit changed the task")
	}

	if ok, err := s.Edit("stale-id", "anything"); ok || err != nil {
		t.Errorf("Edit(unknown) = %v, %v, want false, nil", ok, err)
	}
}

func TestReprioritize(t *testing.T) {
	s := newTestStore(t)
	tk, _ := s.Add("bump")

	ok, err := s.Reprioritize(tk.ID, task.PriorityHigh)
	if err != nil || !ok {
		t.Fatalf("Reprioritize() = %v, %v, want true, nil", ok, err)
	}
	if tk.Priority != task.PriorityHigh {
		t.Errorf("Priority = %v, want high", tk.Priority)
	}

	if ok, err := s.Reprioritize("stale-id", task.PriorityLow); ok || err != nil {
		t.Errorf("Reprioritize(unknown) = %v, %v, want false, nil", ok, err)
	}
}

func TestSetDeadline(t *testing.T) {
	s := newTestStore(t)
	tk, _ := s.Add("due soon")

	due := time.Now().Add(24 * time.Hour)
	if ok, err := s.SetDeadline(tk.ID, &due); err != nil || !ok {
		t.Fatalf("SetDeadline() = %v, %v, want true, nil", ok, err)
	}
	if tk.DueDate == nil || !tk.DueDate.Equal(due) {
		t.Errorf("DueDate = %v, want %v", tk.DueDate, due)
	}

	if ok, err := s.SetDeadline(tk.ID, nil); err != nil || !ok {
		t.Fatalf("SetDeadline(nil) = %v, %v, want true, nil", ok, err)
	}
	if tk.DueDate != nil {
		t.Errorf("DueDate = %v, want nil after clear", tk.DueDate)
	}
}

func TestArchiveDone(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.Add("stays pending")
	b, _ := s.Add("finished")
	c, _ := s.Add("also finished")
	s.Toggle(b.ID)
	s.Toggle(c.ID)

	s.CycleFilter() // pending
	s.CycleSort()   // priority
	s.SetSearch("pend")

	removed, err := s.ArchiveDone()
	if err != nil {
		t.Fatalf("ArchiveDone() error = %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if s.Len() != 1 || s.Tasks()[0].ID != a.ID {
		t.Error("pending task did not survive the archive")
	}

	// Archiving does not disturb the view state.
	if s.Filter() != FilterPending || s.SortField() != SortPriority || s.Search() != "pend" {
		t.Error("archive reset filter, sort, or search state")
	}
}

func TestArchiveDone_NothingToArchive(t *testing.T) {
	s := newTestStore(t)
	s.Add("still pending")

	before, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}

	removed, archiveErr := s.ArchiveDone()
	if archiveErr != nil {
		t.Fatalf("ArchiveDone() error = %v", archiveErr)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}

	after, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("no-op archive rewrote the data file")
	}
}

func TestPersistenceFailure_MutationStands(t *testing.T) {
	// A path under a directory that does not exist makes every save fail.
	s := New(filepath.Join(t.TempDir(), "no-such-dir", "tasks.json"))

	tk, err := s.Add("kept in memory")
	if tk == nil {
		t.Fatal("Add() returned no task")
	}
	if !IsPersistenceError(err) {
		t.Fatalf("Add() error = %v, want *PersistenceError", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1: the in-memory mutation must stand", s.Len())
	}

	var pe *PersistenceError
	if !errors.As(err, &pe) {
		t.Fatal("error does not unwrap to *PersistenceError")
	}
	if pe.Path != s.Path() {
		t.Errorf("PersistenceError.Path = %q, want %q", pe.Path, s.Path())
	}
}

func TestIsPersistenceError(t *testing.T) {
	pe := &PersistenceError{Path: "x", Err: errors.New("disk full")}

	if !IsPersistenceError(pe) {
		t.Error("IsPersistenceError(pe) = false")
	}
	if !IsPersistenceError(fmt.Errorf("wrapped: %w", pe)) {
		t.Error("IsPersistenceError(wrapped) = false")
	}
	if IsPersistenceError(errors.New("unrelated")) {
		t.Error("IsPersistenceError(unrelated) = true")
	}
	if IsPersistenceError(nil) {
		t.Error("IsPersistenceError(nil) = true")
	}
}

func TestBackupWrittenOnSave(t *testing.T) {
	s := newTestStore(t)
	s.Add("first")

	before, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}

	s.Add("second")

	bak, err := os.ReadFile(s.Path() + ".bak")
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(bak) != string(before) {
		t.Error("backup does not hold the previous file contents")
	}
}

func FuzzAdd(f *testing.F) {
	f.Add("Buy milk")
	f.Add("   ")
	f.Add(strings.Repeat("x", 500))
	f.Add("unicode: ünïcödé ✨")
	f.Add("\t\n mixed \x00 bytes")

	f.Fuzz(func(t *testing.T, description string) {
		s := New(filepath.Join(t.TempDir(), "tasks.json"))

		tk, err := s.Add(description)
		if strings.TrimSpace(description) == "" {
			if err != task.ErrEmptyDescription {
				t.Fatalf("Add(%q) error = %v, want ErrEmptyDescription", description, err)
			}
			if s.Len() != 0 {
				t.Fatal("rejected add changed the store")
			}
			return
		}
		if err != nil {
			t.Fatalf("Add(%q) error = %v", description, err)
		}
		if got := len([]rune(tk.Description)); got > task.MaxDescriptionLen {
			t.Fatalf("stored description has %d runes, cap is %d", got, task.MaxDescriptionLen)
		}

		fresh := New(s.Path())
		if err := fresh.Load(); err != nil {
			t.Fatalf("reload after add: %v", err)
		}
		if fresh.Len() != 1 {
			t.Fatalf("reloaded Len() = %d, want 1", fresh.Len())
		}
	})
}
