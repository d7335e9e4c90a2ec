package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestMigrateCommands(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "reviews.db"))
	t.Setenv("LOG_LEVEL", "error")

	run := func(args ...string) string {
		t.Helper()
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs(args)
		defer rootCmd.SetArgs(nil)
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("%v failed: %v", args, err)
		}
		return out.String()
	}

	run("migrate", "up")
	if got := run("migrate"); !strings.Contains(got, "version: 2") {
		t.Errorf("Expected version 2 after up, got %q", got)
	}

	run("migrate", "down")
	if got := run("migrate"); !strings.Contains(got, "version: 1") {
		t.Errorf("Expected version 1 after down, got %q", got)
	}

	run("migrate", "goto", "2")
	if got := run("migrate"); !strings.Contains(got, "version: 2") {
		t.Errorf("Expected version 2 after goto, got %q", got)
	}
}

func TestMigrateGoto_InvalidVersion(t *testing.T) {
	rootCmd.SetArgs([]string{"migrate", "goto", "two"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("Expected error for non-numeric version")
	}
}
