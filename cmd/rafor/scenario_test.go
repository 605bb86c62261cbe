package main

import (
	"os"
	"path/filepath"
	"testing"
)

// These exercise the wine-quality and magic04 scenarios end-to-end through
// the fit/eval CLI surface. Both datasets are external and not vendored
// into this repository, so each test skips when its fixture is absent from
// testdata/ rather than failing the suite.

func TestWineQualityScenario(t *testing.T) {
	fixture := filepath.Join("testdata", "winequality-red.csv")
	if _, err := os.Stat(fixture); err != nil {
		t.Skip("winequality-red.csv not present in testdata/, skipping scenario test")
	}

	dir := t.TempDir()
	modelPath := filepath.Join(dir, "wine.model")

	rootCmd.SetArgs([]string{
		"fit", "--data", fixture, "--out", modelPath,
		"--task", "regression", "--header", "--trees", "20", "--oob",
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal("fit failed:", err)
	}

	rootCmd.SetArgs([]string{"eval", "--model", modelPath, "--data", fixture, "--header"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal("eval failed:", err)
	}
}

func TestMagic04Scenario(t *testing.T) {
	fixture := filepath.Join("testdata", "magic04.csv")
	if _, err := os.Stat(fixture); err != nil {
		t.Skip("magic04.csv not present in testdata/, skipping scenario test")
	}

	dir := t.TempDir()
	modelPath := filepath.Join(dir, "magic04.model")

	rootCmd.SetArgs([]string{
		"fit", "--data", fixture, "--out", modelPath,
		"--task", "classification", "--header", "--trees", "20", "--oob",
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal("fit failed:", err)
	}

	rootCmd.SetArgs([]string{"eval", "--model", modelPath, "--data", fixture, "--header"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal("eval failed:", err)
	}
}
