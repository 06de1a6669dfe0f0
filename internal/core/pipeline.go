package core

// pipeline.go orchestrates a full validation run.
//
// Files process in a fixed dependency order (orgs, users, roles, then the
// optional classes, enrollments, academicSessions, courses) so every
// file's cross-reference targets have published their accepted
// identifiers before the dependent file is read. Processing is strictly
// sequential: the order is a dependency chain, not an independent task
// set.

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/sdstools/sdsclean/internal/csv"
	"github.com/sdstools/sdsclean/internal/schema"
)

// DefaultOutputDirName is the subdirectory of the input directory that
// receives the cleaned copies.
const DefaultOutputDirName = "validated_output"

// DefaultReportFileName is the JSON report written into the input
// directory.
const DefaultReportFileName = "validation_report.json"

// PipelineConfig configures one validation run.
type PipelineConfig struct {
	// Dir is the directory containing the input CSV files.
	Dir string
	// OutputDirName overrides DefaultOutputDirName when non-empty.
	OutputDirName string
	// ReportFileName overrides DefaultReportFileName when non-empty.
	ReportFileName string
}

// Pipeline validates and cleans one roster directory. A Pipeline holds
// the mutable state of a single run and must not be reused; create a new
// one per run.
type Pipeline struct {
	dir        string
	outputDir  string
	reportPath string

	errors  []ValidationError
	removed map[string][]Record
	stats   map[string]FileStats
	xref    *CrossReferenceIndex
}

// NewPipeline creates a pipeline for one run over cfg.Dir.
func NewPipeline(cfg PipelineConfig) *Pipeline {
	outName := cfg.OutputDirName
	if outName == "" {
		outName = DefaultOutputDirName
	}
	reportName := cfg.ReportFileName
	if reportName == "" {
		reportName = DefaultReportFileName
	}
	return &Pipeline{
		dir:        cfg.Dir,
		outputDir:  filepath.Join(cfg.Dir, outName),
		reportPath: filepath.Join(cfg.Dir, reportName),
		removed:    make(map[string][]Record),
		stats:      make(map[string]FileStats),
		xref:       NewCrossReferenceIndex(),
	}
}

// Run executes the full validation. Validation findings never produce an
// error return; the error is reserved for failures that prevent the run
// from producing its artifacts at all (output directory or report cannot
// be written).
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	started := time.Now()
	runID := uuid.New().String()
	logger := slog.Default().With("run_id", runID, "dir", p.dir)

	// Each run starts from a clean output location so repeated runs are
	// idempotent and leave no stale artifacts.
	if err := os.RemoveAll(p.outputDir); err != nil {
		return Result{}, fmt.Errorf("resetting output directory: %w", err)
	}
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return Result{}, fmt.Errorf("creating output directory: %w", err)
	}

	p.checkFileExistence()

	for _, sch := range schema.Files() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		path := filepath.Join(p.dir, sch.Name)
		if _, err := os.Stat(path); err != nil {
			// Required-file absence was already reported; optional files
			// are simply skipped.
			continue
		}
		p.processFile(logger, sch)
	}

	report := p.buildReport()
	if err := writeReport(p.reportPath, report); err != nil {
		return Result{}, fmt.Errorf("writing report: %w", err)
	}

	result := Result{
		RunID:      runID,
		Directory:  p.dir,
		Errors:     report.Errors,
		OutputDir:  p.outputDir,
		ReportPath: p.reportPath,
		Files:      p.stats,
		StartedAt:  started,
		Duration:   time.Since(started),
	}

	logger.Info("validation run complete",
		"errors", len(result.Errors),
		"removed", result.RemovedCount(),
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

// checkFileExistence reports each absent required file. Processing of an
// absent file is skipped entirely by the caller's stat check.
func (p *Pipeline) checkFileExistence() {
	for _, name := range schema.RequiredFiles() {
		if _, err := os.Stat(filepath.Join(p.dir, name)); err != nil {
			p.fileError(name, fmt.Sprintf("Required file %s not found", name))
		}
	}
}

// processFile runs the per-file state machine: header read and variant
// match, per-row validation with duplicate suppression, clean-copy
// emission, and accepted-identifier publication.
func (p *Pipeline) processFile(logger *slog.Logger, sch schema.FileSchema) {
	inPath := filepath.Join(p.dir, sch.Name)

	header, records, err := csv.ReadRecords(inPath)
	if err != nil {
		// I/O and parse failures are file-scoped: this file stops, the
		// run continues.
		p.fileError(sch.Name, err.Error())
		return
	}

	variant, ok := sch.MatchVariant(header)
	if !ok {
		p.errors = append(p.errors, ValidationError{
			File:    sch.Name,
			Line:    1,
			Field:   "header",
			Message: headerMismatchMessage(sch, header),
		})
		return
	}

	required := sch.RequiredFields(variant)
	validator := NewRecordValidator(sch.Name, required, &p.errors)

	var cleaned []Record
	var removed []Record
	seen := make(map[string]struct{})

	for i, rec := range records {
		line := i + 2 // header is line 1

		key := rec["sourcedId"]
		if key == "" {
			key = rec["classSourcedId"]
		}

		// A duplicate identifier short-circuits the remaining checks for
		// this row only. Roles and enrollments carry compound identities
		// and are exempt.
		if sch.Unique {
			if _, dup := seen[key]; dup {
				p.errors = append(p.errors, ValidationError{
					File:    sch.Name,
					Line:    line,
					Field:   "sourcedId",
					Message: fmt.Sprintf("Duplicate sourcedId: %s", key),
				})
				removed = append(removed, rec)
				continue
			}
		}

		fieldsOK := validator.Validate(rec, line)
		refsOK := p.xref.Check(sch.Name, rec, line, &p.errors)

		if fieldsOK && refsOK {
			cleaned = append(cleaned, rec)
			seen[key] = struct{}{}
		} else {
			removed = append(removed, rec)
		}
	}

	if len(removed) > 0 {
		p.removed[sch.Name] = removed
	}
	p.stats[sch.Name] = FileStats{
		Rows:     len(records),
		Accepted: len(cleaned),
		Removed:  len(removed),
	}

	outPath := filepath.Join(p.outputDir, sch.Name)
	if err := csv.WriteRecords(outPath, sch.Headers(variant), cleaned); err != nil {
		// The clean copy could not be written; do not publish identifiers
		// a later file would then trust.
		p.fileError(sch.Name, err.Error())
		return
	}

	p.xref.Publish(sch.Name, seen)

	logger.Debug("file processed",
		"file", sch.Name,
		"rows", len(records),
		"accepted", len(cleaned),
		"removed", len(removed),
	)
}

// fileError records a file-scoped error (line 0, no field).
func (p *Pipeline) fileError(file, message string) {
	p.errors = append(p.errors, ValidationError{
		File:    file,
		Line:    0,
		Field:   "",
		Message: message,
	})
}

// headerMismatchMessage names every accepted layout plus the actual
// header.
func headerMismatchMessage(sch schema.FileSchema, actual []string) string {
	if sch.LegacyHeaders != nil {
		return fmt.Sprintf("Invalid header. Expected %v or %v, got %v",
			sch.CanonicalHeaders, sch.LegacyHeaders, actual)
	}
	return fmt.Sprintf("Invalid header. Expected %v, got %v", sch.CanonicalHeaders, actual)
}
