package audit

// Actions recorded in the audit log.
const (
	ActionGenerate = "generate_artifacts"
	ActionArchive  = "archive"
	ActionVerify   = "verify_manifest"
)

// Entry is one line in the hash-chained JSONL audit log.
// Plain struct fields keep json.Marshal output stable for hashing.
type Entry struct {
	Timestamp      string `json:"ts"`
	TraceID        string `json:"trace_id"`
	RunID          string `json:"run_id"`
	UseCaseID      string `json:"use_case_id"`
	Action         string `json:"action"`
	Status         string `json:"status"`
	ManifestDigest string `json:"manifest_digest,omitempty"`
	Detail         string `json:"detail,omitempty"`
	PrevHash       string `json:"prev_hash"`
}
