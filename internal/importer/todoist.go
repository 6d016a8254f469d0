// This file implements Todoist CSV import.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"taskmaster/internal/engine"
	"taskmaster/internal/task"
)

// TodoistImporter handles importing from Todoist CSV exports.
type TodoistImporter struct{}

// Name returns the importer name.
func (t *TodoistImporter) Name() string {
	return "todoist"
}

// Import reads tasks from Todoist CSV and adds them to the store.
func (t *TodoistImporter) Import(reader io.Reader, store *engine.Store) (*Result, error) {
	previews, err := t.Preview(reader)
	if err != nil {
		return nil, err
	}
	return importAll(previews, store), nil
}

// Preview reads and parses the Todoist CSV format without importing.
func (t *TodoistImporter) Preview(reader io.Reader) ([]Preview, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true
	csvReader.ReuseRecord = true

	header, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\uFEFF") // UTF-8 BOM (common in some exports)
		}
		colIndex[strings.ToUpper(strings.TrimSpace(col))] = i
	}

	for _, col := range []string{"TYPE", "CONTENT"} {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	var previews []Preview

	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if len(record) == 0 {
			continue
		}

		// Skip section headers, notes, and other non-task rows.
		typeIdx := colIndex["TYPE"]
		if typeIdx >= len(record) || strings.ToLower(record[typeIdx]) != "task" {
			continue
		}

		p := Preview{Priority: task.PriorityMedium}

		if idx, ok := colIndex["CONTENT"]; ok && idx < len(record) {
			p.Description = strings.TrimSpace(record[idx])
		}
		if p.Description == "" {
			continue
		}

		if idx, ok := colIndex["PRIORITY"]; ok && idx < len(record) {
			p.Priority = mapTodoistPriority(record[idx])
		}

		if idx, ok := colIndex["DATE"]; ok && idx < len(record) {
			p.DueDate = parseTodoistDate(record[idx])
		}

		previews = append(previews, p)
	}

	return previews, nil
}

// mapTodoistPriority converts Todoist priority to ours.
// Todoist: 1 = urgent (highest), 2 = high, 3 = medium, 4 = normal (lowest)
func mapTodoistPriority(priority string) task.Priority {
	switch strings.TrimSpace(priority) {
	case "1", "2":
		return task.PriorityHigh
	case "3":
		return task.PriorityMedium
	case "4":
		return task.PriorityLow
	default:
		return task.PriorityMedium
	}
}

// parseTodoistDate parses various Todoist date formats.
func parseTodoistDate(dateStr string) *time.Time {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return nil
	}

	formats := []string{
		"2006-01-02",
		"Jan 2 2006",
		"Jan 2, 2006",
		"2 Jan 2006",
		"January 2, 2006",
		"01/02/2006",
		"02/01/2006",
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, dateStr, time.Local); err == nil {
			return &t
		}
	}

	return nil
}
