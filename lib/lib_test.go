package lib

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseConfigFile(t *testing.T) {
	dir := t.TempDir()

	fname := filepath.Join(dir, "config.toml")
	text := "EosID = 9\nTablePath = \"/data/tables\"\nThreads = 2\n"
	if err := os.WriteFile(fname, []byte(text), 0644); err != nil {
		t.Fatalf("Could not write %s: %s", fname, err.Error())
	}

	args, err := ParseConfigFile(fname)
	if err != nil {
		t.Fatalf("ParseConfigFile failed: %s", err.Error())
	}
	if args.EosID != 9 {
		t.Errorf("Expected EosID = 9, got %d.", args.EosID)
	}
	if args.TablePath != "/data/tables" {
		t.Errorf("Expected TablePath = '/data/tables', got '%s'.",
			args.TablePath)
	}
	if args.Threads != 2 {
		t.Errorf("Expected Threads = 2, got %d.", args.Threads)
	}
}

func TestParseConfigFileDefaults(t *testing.T) {
	dir := t.TempDir()

	fname := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(fname, []byte("EosID = 0\n"), 0644); err != nil {
		t.Fatalf("Could not write %s: %s", fname, err.Error())
	}

	t.Setenv("HYDROPROGRAMPATH", "/hydro/data")
	args, err := ParseConfigFile(fname)
	if err != nil {
		t.Fatalf("ParseConfigFile failed: %s", err.Error())
	}
	if args.TablePath != "/hydro/data" {
		t.Errorf("Expected TablePath to fall back to HYDROPROGRAMPATH, "+
			"got '%s'.", args.TablePath)
	}
	if args.Threads != -1 {
		t.Errorf("Expected Threads to default to -1, got %d.", args.Threads)
	}

	t.Setenv("HYDROPROGRAMPATH", "")
	args, err = ParseConfigFile(fname)
	if err != nil {
		t.Fatalf("ParseConfigFile failed: %s", err.Error())
	}
	if args.TablePath != "." {
		t.Errorf("Expected TablePath to default to '.', got '%s'.",
			args.TablePath)
	}
}

func TestParseConfigFileMissing(t *testing.T) {
	_, err := ParseConfigFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Errorf("Expected a missing config file to fail to parse.")
	}
}
