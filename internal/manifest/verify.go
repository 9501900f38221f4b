package manifest

import (
	"errors"
	"io/fs"
	"path/filepath"
)

// Check outcomes reported by Verify.
const (
	CheckOK       = "ok"
	CheckMismatch = "mismatch"
	CheckMissing  = "missing"
	// CheckAbsent means the manifest itself recorded the file as missing.
	CheckAbsent = "absent"
	CheckError  = "error"
)

// Check is the verification outcome of one manifest record.
type Check struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

// VerifyResult summarizes a re-hash of an output directory.
type VerifyResult struct {
	Dir    string  `json:"dir"`
	Valid  bool    `json:"valid"`
	Checks []Check `json:"checks"`
	Error  string  `json:"error,omitempty"`
}

// Verify re-hashes every artifact recorded in dir's manifest. Artifacts the
// manifest marked MISSING do not fail verification; files that vanished or
// changed since do.
func Verify(dir string) VerifyResult {
	res := VerifyResult{Dir: dir, Valid: true}

	m, err := Read(dir)
	if err != nil {
		return VerifyResult{Dir: dir, Error: err.Error(), Checks: []Check{}}
	}

	res.Checks = make([]Check, 0, len(m.Artifacts))
	for _, rec := range m.Artifacts {
		c := Check{Filename: rec.Filename, Expected: rec.SHA256Hash}
		if rec.Missing() {
			c.Status = CheckAbsent
			res.Checks = append(res.Checks, c)
			continue
		}

		actual, err := HashFile(filepath.Join(dir, rec.Filename))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			c.Status = CheckMissing
		case err != nil:
			c.Status = CheckError
			c.Detail = err.Error()
		case actual != rec.SHA256Hash:
			c.Status = CheckMismatch
			c.Actual = actual
		default:
			c.Status = CheckOK
			c.Actual = actual
		}
		if c.Status != CheckOK {
			res.Valid = false
		}
		res.Checks = append(res.Checks, c)
	}
	return res
}
