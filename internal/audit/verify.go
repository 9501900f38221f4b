package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// VerifyResult holds the outcome of a hash chain verification.
type VerifyResult struct {
	Valid     bool   `json:"valid"`
	Lines     int    `json:"lines"`
	Runs      int    `json:"runs"`
	Error     string `json:"error,omitempty"`
	ErrorLine int    `json:"error_line,omitempty"`
}

// Verify walks the log at path and reports the first broken link, if any.
// Runs counts the distinct run ids seen on a valid chain.
func Verify(path string) VerifyResult {
	f, err := os.Open(path)
	if err != nil {
		return VerifyResult{Error: fmt.Sprintf("open: %v", err)}
	}
	defer f.Close()

	var (
		res  VerifyResult
		tail = GenesisHash
		runs = make(map[string]struct{})
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		res.Lines++
		line := scanner.Bytes()

		if err := checkLink(line, tail); err != nil {
			res.Error = err.Error()
			res.ErrorLine = res.Lines
			return res
		}
		tail = HashLine(line)

		var e struct {
			RunID string `json:"run_id"`
		}
		if json.Unmarshal(line, &e) == nil && e.RunID != "" {
			runs[e.RunID] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return VerifyResult{Error: fmt.Sprintf("scan: %v", err)}
	}

	res.Valid = true
	res.Runs = len(runs)
	return res
}

// checkLink parses one line and compares its prev_hash with the hash of the
// line before it.
func checkLink(line []byte, want string) error {
	var entry Entry
	if err := json.Unmarshal(line, &entry); err != nil {
		return fmt.Errorf("parse error: %v", err)
	}
	if entry.PrevHash == want {
		return nil
	}
	if want == GenesisHash {
		return fmt.Errorf("first entry prev_hash is %q, expected genesis hash", entry.PrevHash)
	}
	return fmt.Errorf("hash mismatch: expected %s, got %s", want, entry.PrevHash)
}
