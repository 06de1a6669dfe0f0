package core

import (
	"encoding/json"
	"fmt"
	"os"
)

// buildReport assembles the JSON report from the run's accumulated state.
// Errors is always non-nil so the report serializes as [] rather than
// null when the run is clean.
func (p *Pipeline) buildReport() Report {
	errs := p.errors
	if errs == nil {
		errs = []ValidationError{}
	}
	return Report{
		HasErrors:      len(p.errors) > 0,
		Errors:         errs,
		RemovedRecords: p.removed,
	}
}

// writeReport writes the report as indented JSON. The file is truncated
// if it already exists, so re-runs always reflect the latest state.
func writeReport(path string, report Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadReport loads a previously written report, used by the serve mode
// and by tests comparing successive runs.
func ReadReport(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return Report{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return report, nil
}
