package generate

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sdstools/sdsclean/internal/core"
	"github.com/sdstools/sdsclean/internal/csv"
	"github.com/sdstools/sdsclean/internal/schema"
)

func TestRunProducesAllFiles(t *testing.T) {
	dir := t.TempDir()
	opts := Options{Orgs: 3, Users: 8, Classes: 4, Seed: 1}
	if err := Run(dir, opts); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	wantRows := map[string]int{
		"orgs.csv":             3,
		"users.csv":            8,
		"courses.csv":          4,
		"academicSessions.csv": 4, // year plus three terms
		"classes.csv":          4,
		"roles.csv":            8,  // one per user
		"enrollments.csv":      16, // two per user
	}
	for _, sch := range schema.Files() {
		header, records, err := csv.ReadRecords(filepath.Join(dir, sch.Name))
		if err != nil {
			t.Fatalf("reading %s: %v", sch.Name, err)
		}
		if _, ok := sch.MatchVariant(header); !ok {
			t.Errorf("%s: generated header %v matches no layout", sch.Name, header)
		}
		if len(records) != wantRows[sch.Name] {
			t.Errorf("%s: %d rows, want %d", sch.Name, len(records), wantRows[sch.Name])
		}
	}
}

func TestRunOutputValidatesClean(t *testing.T) {
	dir := t.TempDir()
	if err := Run(dir, Options{Orgs: 5, Users: 20, Classes: 6, Seed: 42}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	res, err := core.NewPipeline(core.PipelineConfig{Dir: dir}).Run(context.Background())
	if err != nil {
		t.Fatalf("pipeline error: %v", err)
	}
	if res.HasErrors() {
		t.Errorf("generated roster has validation errors: %+v", res.Errors)
	}
	for name, stats := range res.Files {
		if stats.Removed != 0 {
			t.Errorf("%s: %d rows removed from generated data", name, stats.Removed)
		}
	}
}

func TestRunDeterministicWithSeed(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	opts := Options{Orgs: 3, Users: 5, Classes: 2, Seed: 7}
	if err := Run(dirA, opts); err != nil {
		t.Fatal(err)
	}
	if err := Run(dirB, opts); err != nil {
		t.Fatal(err)
	}

	for _, sch := range schema.Files() {
		_, a, err := csv.ReadRecords(filepath.Join(dirA, sch.Name))
		if err != nil {
			t.Fatal(err)
		}
		_, b, err := csv.ReadRecords(filepath.Join(dirB, sch.Name))
		if err != nil {
			t.Fatal(err)
		}
		if len(a) != len(b) {
			t.Fatalf("%s: row counts differ: %d vs %d", sch.Name, len(a), len(b))
		}
		for i := range a {
			for field, v := range a[i] {
				if b[i][field] != v {
					t.Errorf("%s row %d field %s: %q vs %q", sch.Name, i, field, v, b[i][field])
				}
			}
		}
	}
}

func TestRunRejectsZeroCounts(t *testing.T) {
	if err := Run(t.TempDir(), Options{Orgs: 0, Users: 1, Classes: 1}); err == nil {
		t.Error("Run() accepted zero orgs")
	}
}
