// This file implements Taskwarrior JSON import.
package importer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"taskmaster/internal/engine"
	"taskmaster/internal/task"
)

// TaskwarriorImporter handles importing from Taskwarrior JSON exports.
type TaskwarriorImporter struct{}

// taskwarriorTask represents a task in Taskwarrior's JSON format.
type taskwarriorTask struct {
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Due         string `json:"due"`
	Entry       string `json:"entry"`
	End         string `json:"end"`
	UUID        string `json:"uuid"`
}

// Name returns the importer name.
func (t *TaskwarriorImporter) Name() string {
	return "taskwarrior"
}

// Import reads tasks from Taskwarrior JSON and adds them to the store.
func (t *TaskwarriorImporter) Import(reader io.Reader, store *engine.Store) (*Result, error) {
	previews, err := t.Preview(reader)
	if err != nil {
		return nil, err
	}
	return importAll(previews, store), nil
}

// Preview reads and parses Taskwarrior JSON without importing. Both the
// JSON array format and newline-delimited JSON (NDJSON) are supported.
func (t *TaskwarriorImporter) Preview(reader io.Reader) ([]Preview, error) {
	br := bufio.NewReader(reader)
	prefix, first, err := readFirstNonSpaceByte(br)
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty input")
		}
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	r := io.MultiReader(bytes.NewReader(prefix), br)
	if first == '[' {
		return parseTaskwarriorJSONArray(r)
	}
	return parseTaskwarriorNDJSON(r)
}

const maxTaskwarriorNDJSONLineBytes = 4 << 20 // 4MiB

func readFirstNonSpaceByte(r *bufio.Reader) ([]byte, byte, error) {
	var prefix []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && len(prefix) == 0 {
				return nil, 0, io.EOF
			}
			return prefix, 0, err
		}
		prefix = append(prefix, b)
		if !isSpaceByte(b) {
			return prefix, b, nil
		}
	}
}

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

func parseTaskwarriorJSONArray(r io.Reader) ([]Preview, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON array: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("failed to parse JSON array: expected '['")
	}

	var previews []Preview
	var idx int
	for dec.More() {
		idx++
		var tw taskwarriorTask
		if err := dec.Decode(&tw); err != nil {
			return nil, fmt.Errorf("failed to decode task %d: %w", idx, err)
		}
		if p, ok := previewFromTaskwarrior(tw); ok {
			previews = append(previews, p)
		}
	}

	// Consume closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to parse JSON array: %w", err)
	}

	return previews, nil
}

func parseTaskwarriorNDJSON(r io.Reader) ([]Preview, error) {
	br := bufio.NewReader(r)
	var previews []Preview
	var lineNo int
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > maxTaskwarriorNDJSONLineBytes {
			return nil, fmt.Errorf("taskwarrior NDJSON line %d exceeds %d bytes", lineNo+1, maxTaskwarriorNDJSONLineBytes)
		}
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to read NDJSON: %w", err)
		}
		if len(line) == 0 && err == io.EOF {
			break
		}

		lineNo++
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			if err == io.EOF {
				break
			}
			continue
		}

		var tw taskwarriorTask
		if uerr := json.Unmarshal(line, &tw); uerr != nil {
			return nil, fmt.Errorf("invalid JSON on line %d: %w", lineNo, uerr)
		}
		if p, ok := previewFromTaskwarrior(tw); ok {
			previews = append(previews, p)
		}

		if err == io.EOF {
			break
		}
	}

	if lineNo == 0 {
		return nil, fmt.Errorf("empty input")
	}

	return previews, nil
}

func previewFromTaskwarrior(tw taskwarriorTask) (Preview, bool) {
	if tw.Status == "deleted" {
		return Preview{}, false
	}
	if strings.TrimSpace(tw.Description) == "" {
		return Preview{}, false
	}

	p := Preview{
		Description: strings.TrimSpace(tw.Description),
		Priority:    mapTaskwarriorPriority(tw.Priority),
		Done:        tw.Status == "completed",
	}

	if tw.Due != "" {
		p.DueDate = parseTaskwarriorDate(tw.Due)
	}

	return p, true
}

// mapTaskwarriorPriority converts Taskwarrior priority to ours.
// Taskwarrior: H = high, M = medium, L = low; unset means medium here.
func mapTaskwarriorPriority(priority string) task.Priority {
	switch strings.ToUpper(strings.TrimSpace(priority)) {
	case "H":
		return task.PriorityHigh
	case "M":
		return task.PriorityMedium
	case "L":
		return task.PriorityLow
	default:
		return task.PriorityMedium
	}
}

// parseTaskwarriorDate parses Taskwarrior's date format.
// Format: 20140928T211124Z (ISO 8601 basic format)
func parseTaskwarriorDate(dateStr string) *time.Time {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return nil
	}

	formats := []string{
		"20060102T150405Z",
		"20060102T150405",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			localTime := t.Local()
			return &localTime
		}
	}

	return nil
}
