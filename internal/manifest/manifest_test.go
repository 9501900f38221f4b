package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func writeArtifact(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func sha(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

func TestBuildOneRecordPerExpectedName(t *testing.T) {
	for _, present := range [][]string{nil, {ChecklistFile}, ExpectedArtifacts} {
		dir := t.TempDir()
		for _, name := range present {
			writeArtifact(t, dir, name, "content of "+name)
		}
		m, err := Build(dir, nil, fixedNow)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if len(m.Artifacts) != 6 {
			t.Fatalf("expected 6 records, got %d", len(m.Artifacts))
		}
		var names []string
		for _, r := range m.Artifacts {
			names = append(names, r.Filename)
		}
		if diff := cmp.Diff(ExpectedArtifacts, names); diff != "" {
			t.Errorf("record order (-want +got):\n%s", diff)
		}
	}
}

func TestBuildHashesAndMissing(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, PlaybookFile, `{"controls":[]}`)

	m, err := Build(dir, nil, fixedNow)
	if err != nil {
		t.Fatal(err)
	}

	got := m.Artifacts[0]
	if got.SHA256Hash != sha(`{"controls":[]}`) {
		t.Errorf("hash = %s", got.SHA256Hash)
	}
	if got.Status != "" || got.Notes != "" {
		t.Errorf("present file should carry no status: %+v", got)
	}
	if got.Filepath != filepath.Join(dir, PlaybookFile) {
		t.Errorf("filepath = %s", got.Filepath)
	}

	missing := m.Artifacts[1]
	if !missing.Missing() || missing.Notes != "File not found or not generated." || missing.SHA256Hash != "" {
		t.Errorf("unexpected missing record: %+v", missing)
	}
	if m.ManifestTimestamp != "2026-03-14T09:26:53.000Z" {
		t.Errorf("timestamp = %s", m.ManifestTimestamp)
	}
}

func TestBuildWritesManifestFile(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, SummaryFile, "# Summary\n")
	m, err := Build(dir, nil, fixedNow)
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "{\n  \"manifest_timestamp\"") {
		t.Errorf("manifest not 2-space indented:\n%s", data)
	}

	back, err := Read(dir)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(m, back); diff != "" {
		t.Errorf("read back (-built +read):\n%s", diff)
	}
}

func TestBuildDoesNotTouchArtifacts(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, KPIsFile, "[\"uptime\"]")
	info, _ := os.Stat(filepath.Join(dir, KPIsFile))

	if _, err := Build(dir, nil, fixedNow); err != nil {
		t.Fatal(err)
	}
	after, _ := os.Stat(filepath.Join(dir, KPIsFile))
	if !after.ModTime().Equal(info.ModTime()) || after.Size() != info.Size() {
		t.Error("artifact modified by Build")
	}
}

func TestHashFileOneByteChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.md")
	writeArtifact(t, dir, "a.md", "hello world")
	first, err := HashFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if first != sha("hello world") {
		t.Errorf("hash = %s", first)
	}
	writeArtifact(t, dir, "a.md", "hello World")
	second, _ := HashFile(path)
	if first == second {
		t.Error("one-byte change did not change the hash")
	}
}

func TestHashFileLargerThanChunk(t *testing.T) {
	dir := t.TempDir()
	content := strings.Repeat("0123456789abcdef", 3*chunkSize/16+7)
	writeArtifact(t, dir, "big.md", content)
	got, err := HashFile(filepath.Join(dir, "big.md"))
	if err != nil {
		t.Fatal(err)
	}
	if got != sha(content) {
		t.Error("chunked hash differs from one-shot hash")
	}
}

func TestDigestStableAcrossRebuilds(t *testing.T) {
	dir := t.TempDir()
	for _, name := range ExpectedArtifacts[:3] {
		writeArtifact(t, dir, name, name)
	}
	a, _ := Build(dir, nil, fixedNow)
	b, _ := Build(dir, nil, fixedNow)

	da, err := Digest(a)
	if err != nil {
		t.Fatal(err)
	}
	db, _ := Digest(b)
	if da != db {
		t.Errorf("digest changed across identical builds: %s vs %s", da, db)
	}

	c, _ := Build(dir, nil, fixedNow.Add(time.Second))
	dc, _ := Digest(c)
	if dc == da {
		t.Error("digest should cover the manifest timestamp")
	}
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	for _, name := range ExpectedArtifacts[:5] {
		writeArtifact(t, dir, name, "v1 "+name)
	}
	if _, err := Build(dir, nil, fixedNow); err != nil {
		t.Fatal(err)
	}

	res := Verify(dir)
	if !res.Valid {
		t.Fatalf("fresh manifest should verify: %+v", res)
	}
	if res.Checks[5].Status != CheckAbsent {
		t.Errorf("recorded-missing artifact status = %s", res.Checks[5].Status)
	}

	writeArtifact(t, dir, ChecklistFile, "tampered")
	if err := os.Remove(filepath.Join(dir, PlaybookFile)); err != nil {
		t.Fatal(err)
	}

	res = Verify(dir)
	if res.Valid {
		t.Fatal("tampered directory should not verify")
	}
	if res.Checks[0].Status != CheckMissing {
		t.Errorf("removed artifact status = %s", res.Checks[0].Status)
	}
	if res.Checks[1].Status != CheckMismatch || res.Checks[1].Actual != sha("tampered") {
		t.Errorf("tampered artifact check = %+v", res.Checks[1])
	}
	if res.Checks[2].Status != CheckOK {
		t.Errorf("untouched artifact status = %s", res.Checks[2].Status)
	}
}

func TestVerifyWithoutManifest(t *testing.T) {
	res := Verify(t.TempDir())
	if res.Valid || res.Error == "" {
		t.Errorf("expected error result, got %+v", res)
	}
}
