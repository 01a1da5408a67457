package postgres

import (
	"path/filepath"
	"testing"
)

func TestRunMigrationsMissingSource(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	if err := RunMigrations("postgres://invalid:5432/db?sslmode=disable", missing); err == nil {
		t.Fatalf("expected error for missing migrations directory")
	}
}
