package schema

import (
	"strings"
	"testing"
)

const listSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {"type": "string"}
}`

func TestValidateAcceptsMatchingDocument(t *testing.T) {
	s := MustCompile("string-list", listSchema)
	if err := s.Validate([]byte(`["a", "b"]`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsWrongType(t *testing.T) {
	s := MustCompile("string-list", listSchema)
	err := s.Validate([]byte(`["a", 3]`))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "string-list") {
		t.Errorf("error should name the schema, got %v", err)
	}
}

func TestValidateRejectsMalformedJSON(t *testing.T) {
	s := MustCompile("string-list", listSchema)
	if err := s.Validate([]byte(`[`)); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestCompileRejectsBrokenSchema(t *testing.T) {
	if _, err := Compile("broken", `{"type": 12}`); err == nil {
		t.Fatal("expected compile error")
	}
}
