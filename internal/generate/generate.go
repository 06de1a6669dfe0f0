// Package generate produces sample roster directories: a consistent set
// of interchange CSV files whose cross-references all resolve. The output
// is meant for demos and for exercising the validation pipeline end to
// end.
package generate

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"

	"github.com/sdstools/sdsclean/internal/csv"
	"github.com/sdstools/sdsclean/internal/schema"
)

// Options controls the size of the generated roster.
type Options struct {
	Orgs    int
	Users   int
	Classes int
	// Seed makes the output reproducible. Zero means a random seed.
	Seed int64
}

// DefaultOptions matches the sizes most demos want.
func DefaultOptions() Options {
	return Options{Orgs: 5, Users: 50, Classes: 10}
}

// generator carries the identifier pools that later files draw their
// references from.
type generator struct {
	dir  string
	rand *rand.Rand

	orgIDs     []string
	userIDs    []string
	classIDs   []string
	courseIDs  []string
	sessionIDs []string
}

// Run writes a complete sample roster into dir. The directory must
// already exist. All generated references resolve, so a validation run
// over the output reports no errors.
func Run(dir string, opts Options) error {
	if opts.Orgs < 1 || opts.Users < 1 || opts.Classes < 1 {
		return fmt.Errorf("generate: counts must be at least 1 (orgs=%d users=%d classes=%d)",
			opts.Orgs, opts.Users, opts.Classes)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	g := &generator{dir: dir, rand: rand.New(rand.NewSource(seed))}

	steps := []func() error{
		func() error { return g.orgs(opts.Orgs) },
		func() error { return g.users(opts.Users) },
		func() error { return g.courses(opts.Classes) },
		g.academicSessions,
		func() error { return g.classes(opts.Classes) },
		g.roles,
		g.enrollments,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) write(name string, variant schema.Variant, records []map[string]string) error {
	sch, ok := schema.Lookup(name)
	if !ok {
		return fmt.Errorf("generate: unknown file %s", name)
	}
	path := filepath.Join(g.dir, name)
	if err := csv.WriteRecords(path, sch.Headers(variant), records); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	return nil
}

func (g *generator) pick(pool []string) string {
	return pool[g.rand.Intn(len(pool))]
}

func (g *generator) orgs(count int) error {
	types := []string{"school", "department", "district"}

	// The first org is the district every other org may parent to.
	parentID := "org_1"
	g.orgIDs = append(g.orgIDs, parentID)
	records := []map[string]string{{
		"sourcedId":       parentID,
		"name":            "Organization 1",
		"type":            "district",
		"parentSourcedId": "",
	}}

	for i := 2; i <= count; i++ {
		id := fmt.Sprintf("org_%d", i)
		g.orgIDs = append(g.orgIDs, id)
		parent := ""
		if g.rand.Float64() > 0.5 {
			parent = parentID
		}
		records = append(records, map[string]string{
			"sourcedId":       id,
			"name":            fmt.Sprintf("Organization %d", i),
			"type":            g.pick(types),
			"parentSourcedId": parent,
		})
	}
	return g.write("orgs.csv", schema.VariantCanonical, records)
}

func (g *generator) users(count int) error {
	givenNames := []string{"Alex", "Chris", "Pat", "Jordan", "Taylor"}
	familyNames := []string{"Smith", "Johnson", "Williams", "Brown", "Jones"}

	var records []map[string]string
	for i := 1; i <= count; i++ {
		id := fmt.Sprintf("user_%d", i)
		g.userIDs = append(g.userIDs, id)
		given := g.pick(givenNames)
		family := g.pick(familyNames)
		username := fmt.Sprintf("%s.%s%d", strings.ToLower(given), strings.ToLower(family), i)

		records = append(records, map[string]string{
			"sourcedId":              id,
			"username":               username,
			"givenName":              given,
			"familyName":             family,
			"password":               fmt.Sprintf("Pass%dword!", i),
			"activeDirectoryMatchId": fmt.Sprintf("AD%d", i),
			"email":                  username + "@example.com",
			"phone":                  fmt.Sprintf("+8190%08d", g.rand.Intn(90000000)+10000000),
			"sms":                    fmt.Sprintf("+8180%08d", g.rand.Intn(90000000)+10000000),
		})
	}
	return g.write("users.csv", schema.VariantCanonical, records)
}

func (g *generator) courses(count int) error {
	subjects := []string{"Mathematics", "Japanese", "Science", "Social Studies", "English"}

	var records []map[string]string
	for i := 1; i <= count; i++ {
		id := fmt.Sprintf("course_%d", i)
		g.courseIDs = append(g.courseIDs, id)
		records = append(records, map[string]string{
			"sourcedId":    id,
			"orgSourcedId": g.pick(g.orgIDs),
			"title":        fmt.Sprintf("%s %d", g.pick(subjects), i),
			"courseCode":   fmt.Sprintf("SUBJ%d", i),
			"grades":       fmt.Sprintf("Grade %d", g.rand.Intn(12)+1),
		})
	}
	return g.write("courses.csv", schema.VariantCanonical, records)
}

func (g *generator) academicSessions() error {
	yearID := "session_2026"
	g.sessionIDs = append(g.sessionIDs, yearID)
	records := []map[string]string{{
		"sourcedId":       yearID,
		"title":           "School Year 2026",
		"type":            "schoolYear",
		"startDate":       "2026-04-01",
		"endDate":         "2027-03-31",
		"parentSourcedId": "",
	}}

	terms := []struct {
		title, start, end string
	}{
		{"Term 1", "2026-04-01", "2026-07-31"},
		{"Term 2", "2026-09-01", "2026-12-31"},
		{"Term 3", "2027-01-01", "2027-03-31"},
	}
	for i, term := range terms {
		id := fmt.Sprintf("%s_term%d", yearID, i+1)
		g.sessionIDs = append(g.sessionIDs, id)
		records = append(records, map[string]string{
			"sourcedId":       id,
			"title":           term.title,
			"type":            "term",
			"startDate":       term.start,
			"endDate":         term.end,
			"parentSourcedId": yearID,
		})
	}
	return g.write("academicSessions.csv", schema.VariantCanonical, records)
}

func (g *generator) classes(count int) error {
	var records []map[string]string
	for i := 1; i <= count; i++ {
		id := fmt.Sprintf("class_%d", i)
		g.classIDs = append(g.classIDs, id)

		// One to three session references, joined into a single cell.
		n := g.rand.Intn(3) + 1
		sessions := make([]string, len(g.sessionIDs))
		copy(sessions, g.sessionIDs)
		g.rand.Shuffle(len(sessions), func(a, b int) {
			sessions[a], sessions[b] = sessions[b], sessions[a]
		})

		records = append(records, map[string]string{
			"sourcedId":         id,
			"orgSourcedId":      g.pick(g.orgIDs),
			"title":             fmt.Sprintf("Class %d", i),
			"sessionSourcedIds": strings.Join(sessions[:n], ","),
			"courseSourcedId":   g.pick(g.courseIDs),
		})
	}
	return g.write("classes.csv", schema.VariantCanonical, records)
}

func (g *generator) roles() error {
	roleNames := []string{"teacher", "student", "administrator"}

	var records []map[string]string
	for i, userID := range g.userIDs {
		records = append(records, map[string]string{
			"sourcedId":        fmt.Sprintf("role_%d", i+1),
			"userSourcedId":    userID,
			"orgSourcedId":     g.pick(g.orgIDs),
			"role":             g.pick(roleNames),
			"sessionSourcedId": g.pick(g.sessionIDs),
		})
	}
	return g.write("roles.csv", schema.VariantLegacy, records)
}

func (g *generator) enrollments() error {
	roleNames := []string{"teacher", "student"}

	// Each user lands in two classes on average.
	count := len(g.userIDs) * 2
	var records []map[string]string
	for i := 1; i <= count; i++ {
		records = append(records, map[string]string{
			"sourcedId":      fmt.Sprintf("enrollment_%d", i),
			"classSourcedId": g.pick(g.classIDs),
			"userSourcedId":  g.pick(g.userIDs),
			"role":           g.pick(roleNames),
		})
	}
	return g.write("enrollments.csv", schema.VariantLegacy, records)
}
