package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseMaxFeatures(t *testing.T) {
	if _, err := parseMaxFeatures("sqrt"); err != nil {
		t.Error("unexpected error for sqrt:", err)
	}
	if _, err := parseMaxFeatures("log2"); err != nil {
		t.Error("unexpected error for log2:", err)
	}
	if _, err := parseMaxFeatures("7"); err != nil {
		t.Error("unexpected error for integer value:", err)
	}
	if _, err := parseMaxFeatures("bogus"); err == nil {
		t.Error("expected an error for an unrecognized max_features value")
	}
}

func TestLoadFileConfigEmptyPath(t *testing.T) {
	fc, err := loadFileConfig("")
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	opts, err := fc.options()
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if len(opts) != 0 {
		t.Error("expected no options from an empty config path, got:", len(opts))
	}
}

func TestLoadFileConfigYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "num_trees: 50\nmax_depth: 8\nmax_features: sqrt\ncompute_oob: true\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	fc, err := loadFileConfig(path)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if fc.NumTrees == nil || *fc.NumTrees != 50 {
		t.Error("expected num_trees=50 from YAML")
	}
	if fc.MaxDepth == nil || *fc.MaxDepth != 8 {
		t.Error("expected max_depth=8 from YAML")
	}

	opts, err := fc.options()
	if err != nil {
		t.Fatal("unexpected error building options:", err)
	}
	if len(opts) != 4 {
		t.Error("expected 4 options (num_trees, max_depth, max_features, compute_oob), got:", len(opts))
	}
}

func TestLoadFileConfigMissingFile(t *testing.T) {
	if _, err := loadFileConfig("/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
