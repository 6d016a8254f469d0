package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"taskmaster/internal/config"
	"taskmaster/internal/engine"
	"taskmaster/internal/importer"
)

// runImport implements the "import" subcommand: it reads a Todoist or
// Taskwarrior export from a file (or stdin) and adds the tasks to the
// task file.
func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	format := fs.String("format", "", "export format: todoist or taskwarrior")
	fs.StringVar(format, "f", "", "export format (shorthand)")
	dryRun := fs.Bool("n", false, "preview without importing")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: taskmaster import -f todoist|taskwarrior [-n] [file]")
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	imp := importer.ForFormat(*format)
	if imp == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (use todoist or taskwarrior)\n", *format)
		os.Exit(1)
	}

	var in io.Reader = os.Stdin
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", fs.Arg(0), err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	if *dryRun {
		previews, err := imp.Preview(in)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing %s export: %v\n", imp.Name(), err)
			os.Exit(1)
		}
		for _, p := range previews {
			status := " "
			if p.Done {
				status = "x"
			}
			line := fmt.Sprintf("[%s] %-6s %s", status, p.Priority, p.Description)
			if p.DueDate != nil {
				line += " (due " + p.DueDate.Format("2006-01-02") + ")"
			}
			fmt.Println(line)
		}
		fmt.Printf("%d task(s) would be imported\n", len(previews))
		return
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

	result, err := imp.Import(in, store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %s export: %v\n", imp.Name(), err)
		os.Exit(1)
	}

	for _, msg := range result.Errors {
		fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
	}
	fmt.Printf("Imported %d task(s) into %s\n", result.Imported, store.Path())
}
