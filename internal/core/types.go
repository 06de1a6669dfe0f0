// Package core provides the roster validation and cleaning engine.
// This package has no CLI or HTTP dependencies and can be driven by any
// frontend.
package core

import "time"

// Record is one parsed CSV data row, keyed by header field name.
type Record = map[string]string

// ValidationError describes a single violation found during a run.
// Line numbers are 1-based with the header as line 1; file-scoped errors
// (missing file, I/O failure) use line 0 and an empty field.
type ValidationError struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Report is the run's final artifact, written as JSON next to the input
// directory.
type Report struct {
	HasErrors      bool                `json:"hasErrors"`
	Errors         []ValidationError   `json:"errors"`
	RemovedRecords map[string][]Record `json:"removedRecords"`
}

// FileStats summarizes one file's processing for the run result.
type FileStats struct {
	Rows     int `json:"rows"`
	Accepted int `json:"accepted"`
	Removed  int `json:"removed"`
}

// Result is what a completed run returns. A run always completes:
// validation findings land in Errors and the report, never in an error
// return.
type Result struct {
	RunID      string               `json:"runId"`
	Directory  string               `json:"directory"`
	Errors     []ValidationError    `json:"errors"`
	OutputDir  string               `json:"outputDir"`
	ReportPath string               `json:"reportPath"`
	Files      map[string]FileStats `json:"files"`
	StartedAt  time.Time            `json:"startedAt"`
	Duration   time.Duration        `json:"duration"`
}

// HasErrors reports whether the run detected any violation.
func (r Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// RemovedCount returns the total number of rows excluded across all files.
func (r Result) RemovedCount() int {
	n := 0
	for _, s := range r.Files {
		n += s.Removed
	}
	return n
}
