package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		sampleFormat, sampleGenerate = "json", 0
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSampleThenCheck(t *testing.T) {
	out, err := execute(t, "sample", "--format", "toml")
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if !strings.Contains(out, "[[tasks]]") {
		t.Fatalf("sample output is not TOML:\n%s", out)
	}

	path := filepath.Join(t.TempDir(), "board.toml")
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		t.Fatal(err)
	}

	out, err = execute(t, "check", path)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	for _, want := range []string{"8 tasks, 4 columns", "In Progress", "2/3"} {
		if !strings.Contains(out, want) {
			t.Errorf("check output missing %q:\n%s", want, out)
		}
	}
}

func TestSampleRejectsUnknownFormat(t *testing.T) {
	if _, err := execute(t, "sample", "--format", "yaml"); err == nil {
		t.Error("sample --format yaml should fail")
	}
}

func TestCheckMissingFile(t *testing.T) {
	if _, err := execute(t, "check", filepath.Join(t.TempDir(), "none.json")); err == nil {
		t.Error("check on a missing file should fail")
	}
}

func TestVersionShort(t *testing.T) {
	t.Cleanup(func() { versionShort = false })
	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) == "" || strings.Contains(out, "commit:") {
		t.Errorf("version --short = %q", out)
	}
}
