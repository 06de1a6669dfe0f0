package core

import "fmt"

// referenceRule ties a field in a dependent file to the file whose
// accepted identifiers it must resolve against.
type referenceRule struct {
	field  string
	target string
}

// referenceRules lists the direct references checked per file type.
var referenceRules = map[string][]referenceRule{
	"roles.csv": {
		{field: "userSourcedId", target: "users.csv"},
		{field: "orgSourcedId", target: "orgs.csv"},
	},
	"enrollments.csv": {
		{field: "userSourcedId", target: "users.csv"},
		{field: "classSourcedId", target: "classes.csv"},
	},
}

// CrossReferenceIndex accumulates the accepted-identifier set of each file
// that has finished processing in the current run. It is owned by the
// pipeline for the duration of one run; repeated runs never share state.
type CrossReferenceIndex struct {
	accepted map[string]map[string]struct{}
}

// NewCrossReferenceIndex creates an empty index.
func NewCrossReferenceIndex() *CrossReferenceIndex {
	return &CrossReferenceIndex{
		accepted: make(map[string]map[string]struct{}),
	}
}

// Publish registers a file's accepted identifiers for use by files
// processed later in the run.
func (x *CrossReferenceIndex) Publish(file string, ids map[string]struct{}) {
	x.accepted[file] = ids
}

// Processed reports whether a file has published its identifiers.
func (x *CrossReferenceIndex) Processed(file string) bool {
	_, ok := x.accepted[file]
	return ok
}

// IsKnown reports whether id was accepted by file. When file was never
// processed in this run, the check is skipped, not failed: an absent
// optional file must not cascade into reference failures for every
// dependent row.
func (x *CrossReferenceIndex) IsKnown(file, id string) bool {
	ids, ok := x.accepted[file]
	if !ok {
		return true
	}
	_, ok = ids[id]
	return ok
}

// Check validates a record's references per its file's rule set, appending
// a finding for each unresolved reference. Files without rules always
// pass.
func (x *CrossReferenceIndex) Check(file string, rec Record, line int, sink *[]ValidationError) bool {
	ok := true
	for _, rule := range referenceRules[file] {
		value := rec[rule.field]
		if !x.IsKnown(rule.target, value) {
			*sink = append(*sink, ValidationError{
				File:    file,
				Line:    line,
				Field:   rule.field,
				Message: fmt.Sprintf("Missing ref %s", value),
			})
			ok = false
		}
	}
	return ok
}
