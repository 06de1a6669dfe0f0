// Package schema defines the expected layout of each roster interchange
// file: canonical headers, the legacy-compatible alternate headers used by
// older exports, and the required fields for each variant.
package schema

// Variant identifies which header layout a file matched.
type Variant int

const (
	// VariantCanonical is the current header layout.
	VariantCanonical Variant = iota
	// VariantLegacy is the older compatible layout, distinguished by the
	// presence of a sourcedId field in roles and enrollments files.
	VariantLegacy
)

// FileSchema describes one roster CSV file.
type FileSchema struct {
	Name              string
	Required          bool // file must exist in the input directory
	Unique            bool // enforce per-file sourcedId uniqueness
	CanonicalHeaders  []string
	CanonicalRequired []string
	LegacyHeaders     []string // nil when the file has no legacy variant
	LegacyRequired    []string
}

// files lists every known roster file in processing order: required files
// first, so cross-reference targets publish their accepted identifiers
// before dependent files are validated.
var files = []FileSchema{
	{
		Name:              "orgs.csv",
		Required:          true,
		Unique:            true,
		CanonicalHeaders:  []string{"sourcedId", "name", "type", "parentSourcedId"},
		CanonicalRequired: []string{"sourcedId", "name", "type"},
	},
	{
		Name:              "users.csv",
		Required:          true,
		Unique:            true,
		CanonicalHeaders:  []string{"sourcedId", "username", "givenName", "familyName", "password", "activeDirectoryMatchId", "email", "phone", "sms"},
		CanonicalRequired: []string{"sourcedId", "username"},
	},
	{
		Name:              "roles.csv",
		Required:          true,
		CanonicalHeaders:  []string{"userSourcedId", "orgSourcedId", "role", "sessionSourcedId", "grade", "isPrimary", "roleStartDate", "roleEndDate"},
		CanonicalRequired: []string{"userSourcedId", "orgSourcedId", "role"},
		LegacyHeaders:     []string{"sourcedId", "userSourcedId", "orgSourcedId", "role", "sessionSourcedId"},
		LegacyRequired:    []string{"sourcedId", "userSourcedId", "orgSourcedId", "role"},
	},
	{
		Name:              "classes.csv",
		Unique:            true,
		CanonicalHeaders:  []string{"sourcedId", "orgSourcedId", "title", "sessionSourcedIds", "courseSourcedId"},
		CanonicalRequired: []string{"sourcedId", "orgSourcedId", "title"},
	},
	{
		Name:              "enrollments.csv",
		CanonicalHeaders:  []string{"classSourcedId", "userSourcedId", "role"},
		CanonicalRequired: []string{"classSourcedId", "userSourcedId", "role"},
		LegacyHeaders:     []string{"sourcedId", "classSourcedId", "userSourcedId", "role"},
		LegacyRequired:    []string{"sourcedId", "classSourcedId", "userSourcedId", "role"},
	},
	{
		Name:              "academicSessions.csv",
		Unique:            true,
		CanonicalHeaders:  []string{"sourcedId", "title", "type", "startDate", "endDate", "parentSourcedId"},
		CanonicalRequired: []string{"sourcedId", "title", "type", "startDate", "endDate"},
	},
	{
		Name:              "courses.csv",
		Unique:            true,
		CanonicalHeaders:  []string{"sourcedId", "orgSourcedId", "title", "courseCode", "grades"},
		CanonicalRequired: []string{"sourcedId", "orgSourcedId", "title"},
	},
}

// Files returns every known file schema in processing order.
func Files() []FileSchema {
	out := make([]FileSchema, len(files))
	copy(out, files)
	return out
}

// Lookup returns the schema for a file name.
func Lookup(name string) (FileSchema, bool) {
	for _, f := range files {
		if f.Name == name {
			return f, true
		}
	}
	return FileSchema{}, false
}

// RequiredFiles returns the names of the files that must be present.
func RequiredFiles() []string {
	var out []string
	for _, f := range files {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// MatchVariant compares an actual header set against the file's known
// layouts. Comparison is order-insensitive: permuting the header row is
// not a mismatch. The second return is false when neither layout matches.
func (s FileSchema) MatchVariant(headers []string) (Variant, bool) {
	if sameFieldSet(headers, s.CanonicalHeaders) {
		return VariantCanonical, true
	}
	if s.LegacyHeaders != nil && sameFieldSet(headers, s.LegacyHeaders) {
		return VariantLegacy, true
	}
	return VariantCanonical, false
}

// Headers returns the header layout for a variant, in its defined order.
func (s FileSchema) Headers(v Variant) []string {
	if v == VariantLegacy && s.LegacyHeaders != nil {
		return s.LegacyHeaders
	}
	return s.CanonicalHeaders
}

// RequiredFields returns the required-field list for a variant.
func (s FileSchema) RequiredFields(v Variant) []string {
	if v == VariantLegacy && s.LegacyRequired != nil {
		return s.LegacyRequired
	}
	return s.CanonicalRequired
}

// sameFieldSet reports whether two header slices contain the same field
// names, ignoring order.
func sameFieldSet(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, f := range a {
		set[f] = struct{}{}
	}
	if len(set) != len(b) {
		return false
	}
	for _, f := range b {
		if _, ok := set[f]; !ok {
			return false
		}
	}
	return true
}
