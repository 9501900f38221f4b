package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/sectorbook/internal/model"
)

// Filter selects audit entries. Zero fields match everything.
type Filter struct {
	RunID     string
	UseCaseID string
	Action    string
	Since     time.Time
	// Limit keeps only the last N matches when > 0.
	Limit int
}

func (f Filter) match(e Entry) bool {
	if f.RunID != "" && e.RunID != f.RunID {
		return false
	}
	if f.UseCaseID != "" && e.UseCaseID != f.UseCaseID {
		return false
	}
	if f.Action != "" && e.Action != f.Action {
		return false
	}
	if !f.Since.IsZero() {
		ts, err := time.Parse(model.TimestampFormat, e.Timestamp)
		if err != nil || ts.Before(f.Since) {
			return false
		}
	}
	return true
}

// Summary counts matched entries by status.
type Summary struct {
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"by_status"`
	FirstTimestamp string         `json:"first_timestamp,omitempty"`
	LastTimestamp  string         `json:"last_timestamp,omitempty"`
}

// Result is the output of Read.
type Result struct {
	Entries []Entry `json:"entries"`
	Summary Summary `json:"summary"`
}

// Read returns the entries in the log at path that match f, oldest first.
// Malformed lines are skipped; use Verify to detect them.
func Read(path string, f Filter) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer file.Close()

	res := &Result{Entries: []Entry{}}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		if f.match(e) {
			res.Entries = append(res.Entries, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}

	if f.Limit > 0 && len(res.Entries) > f.Limit {
		res.Entries = res.Entries[len(res.Entries)-f.Limit:]
	}
	res.Summary = summarize(res.Entries)
	return res, nil
}

func summarize(entries []Entry) Summary {
	s := Summary{ByStatus: map[string]int{}}
	for _, e := range entries {
		s.Total++
		s.ByStatus[e.Status]++
		if s.FirstTimestamp == "" {
			s.FirstTimestamp = e.Timestamp
		}
		s.LastTimestamp = e.Timestamp
	}
	return s
}
