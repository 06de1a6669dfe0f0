package core

// validation.go provides per-record field checks.
//
// All checks run independently so a single record can surface multiple
// distinct violations in one pass: a row with a missing username AND a
// malformed email reports both. The validator appends findings to the
// run's shared error collection so file and line context stay with each
// finding.

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/ttacon/libphonenumber"
)

// dateFields are checked independently wherever they appear.
var dateFields = []string{"startDate", "endDate", "roleStartDate", "roleEndDate"}

// datePattern enforces the exact YYYY-MM-DD layout; time.Parse alone would
// also accept unpadded months and days.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// RecordValidator checks records of a single file against its selected
// variant's required-field list plus the field-format rules.
type RecordValidator struct {
	file     string
	required []string
	errors   *[]ValidationError
}

// NewRecordValidator creates a validator for one file. Findings are
// appended to sink in discovery order.
func NewRecordValidator(file string, required []string, sink *[]ValidationError) *RecordValidator {
	return &RecordValidator{
		file:     file,
		required: required,
		errors:   sink,
	}
}

// Validate runs every check against a record and reports whether all
// passed. Checks never short-circuit each other.
func (v *RecordValidator) Validate(rec Record, line int) bool {
	ok := v.checkRequired(rec, line)
	if !v.checkFormats(rec, line) {
		ok = false
	}
	return ok
}

func (v *RecordValidator) checkRequired(rec Record, line int) bool {
	ok := true
	for _, field := range v.required {
		if rec[field] == "" {
			v.record(line, field, fmt.Sprintf("Required field %s missing", field))
			ok = false
		}
	}
	return ok
}

func (v *RecordValidator) checkFormats(rec Record, line int) bool {
	ok := true

	if email, present := rec["email"]; present && email != "" && !isValidEmail(email) {
		v.record(line, "email", fmt.Sprintf("Invalid email %s", email))
		ok = false
	}

	if phone, present := rec["phone"]; present && phone != "" && !isValidPhone(phone) {
		v.record(line, "phone", fmt.Sprintf("Invalid phone %s", phone))
		ok = false
	}

	for _, field := range dateFields {
		if date, present := rec[field]; present && date != "" && !isValidDate(date) {
			v.record(line, field, fmt.Sprintf("Invalid date %s", date))
			ok = false
		}
	}

	if enabled, present := rec["enabledUser"]; present && enabled != "true" && enabled != "false" {
		v.record(line, "enabledUser", fmt.Sprintf("Invalid boolean %s", enabled))
		ok = false
	}

	return ok
}

func (v *RecordValidator) record(line int, field, message string) {
	*v.errors = append(*v.errors, ValidationError{
		File:    v.file,
		Line:    line,
		Field:   field,
		Message: message,
	})
}

// isValidEmail accepts addresses that parse, contain an @, and are already
// in their own lowercase form. Mixed-case addresses are rejected rather
// than normalized.
func isValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	a := addr.Address
	return strings.Contains(a, "@") && a == strings.ToLower(a)
}

// isValidPhone requires a parseable international number: no default
// region is assumed, so the value must carry its own country code.
func isValidPhone(s string) bool {
	num, err := libphonenumber.Parse(s, "")
	if err != nil {
		return false
	}
	return libphonenumber.IsValidNumber(num)
}

// isValidDate requires the exact YYYY-MM-DD pattern and a calendar-valid
// date (2023-02-30 is rejected).
func isValidDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
