package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-scheming/pkg/validators"
)

func TestLintFile_ReportsIssues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	content := `
dataset_type: broken
dataset_fields:
  - field_name: title
    validators: not_empty shout
  - field_name: kind
    validators: scheming_choices
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}

	violations, err := lintFile(validators.NewCompiler(nil), path)
	if err != nil {
		t.Fatalf("lint: %v", err)
	}

	var buf bytes.Buffer
	if n := report(&buf, violations); n != 2 {
		t.Fatalf("expected 2 violations, got %d: %s", n, buf.String())
	}
	want := path + `: dataset_fields.0.validators -> validator/converter not found: "shout"` + "\n" +
		path + ": dataset_fields.1.validators -> scheming_choices needs declared choices\n"
	if buf.String() != want {
		t.Fatalf("unexpected report:\n%s", buf.String())
	}
}

func TestLintFile_LoadError(t *testing.T) {
	if _, err := lintFile(validators.NewCompiler(nil), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
