package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"taskmaster/internal/config"
	"taskmaster/internal/engine"
	"taskmaster/internal/task"
)

// runExport implements the "export" subcommand: it loads the task file and
// prints every task to stdout as JSON or CSV.
func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	format := fs.String("format", "json", "output format: json or csv")
	fs.StringVar(format, "f", "json", "output format (shorthand)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store := engine.New(cfg.DataFile)
	if err := store.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tasks: %v\n", err)
		os.Exit(1)
	}

	switch *format {
	case "json":
		data, err := task.EncodeRecords(store.Tasks())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding tasks: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))

	case "csv":
		if err := writeCSV(os.Stdout, store.Tasks()); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
			os.Exit(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (use json or csv)\n", *format)
		os.Exit(1)
	}
}

func writeCSV(out *os.File, tasks []*task.Task) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"id", "description", "status", "priority", "created_at", "due_date", "updated_at", "overdue"}); err != nil {
		return err
	}
	for _, t := range tasks {
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.Format(time.RFC3339)
		}
		row := []string{
			t.ID,
			t.Description,
			t.Status.String(),
			t.Priority.String(),
			t.CreatedAt.Format(time.RFC3339),
			due,
			t.UpdatedAt.Format(time.RFC3339),
			strconv.FormatBool(t.IsOverdue()),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
