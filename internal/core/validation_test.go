package core

import "testing"

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name     string
		required []string
		rec      Record
		wantOK   bool
		wantErrs int
	}{
		{
			name:     "all present",
			required: []string{"sourcedId", "name", "type"},
			rec:      Record{"sourcedId": "org_1", "name": "North High", "type": "school"},
			wantOK:   true,
		},
		{
			name:     "one missing",
			required: []string{"sourcedId", "name", "type"},
			rec:      Record{"sourcedId": "org_1", "name": "", "type": "school"},
			wantOK:   false,
			wantErrs: 1,
		},
		{
			name:     "two missing reported independently",
			required: []string{"sourcedId", "username"},
			rec:      Record{"sourcedId": "", "username": ""},
			wantOK:   false,
			wantErrs: 2,
		},
		{
			name:     "key absent counts as missing",
			required: []string{"sourcedId", "title"},
			rec:      Record{"sourcedId": "c_1"},
			wantOK:   false,
			wantErrs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errs []ValidationError
			v := NewRecordValidator("orgs.csv", tt.required, &errs)
			got := v.Validate(tt.rec, 2)
			if got != tt.wantOK {
				t.Errorf("Validate() = %v, want %v", got, tt.wantOK)
			}
			if len(errs) != tt.wantErrs {
				t.Errorf("got %d errors, want %d: %+v", len(errs), tt.wantErrs, errs)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"tanaka@example.org", true},
		{"first.last@school.example.jp", true},
		{"Tanaka@example.org", false}, // uppercase rejected, not normalized
		{"no-at-sign.example.org", false},
		{"@example.org", false},
		{"", true}, // empty is the required-field check's concern
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			var errs []ValidationError
			v := NewRecordValidator("users.csv", nil, &errs)
			rec := Record{"email": tt.email}
			v.Validate(rec, 3)
			if gotValid := len(errs) == 0; gotValid != tt.valid {
				t.Errorf("email %q: valid = %v, want %v (errors: %+v)", tt.email, gotValid, tt.valid, errs)
			}
			if !tt.valid {
				want := "Invalid email " + tt.email
				if errs[0].Message != want {
					t.Errorf("message = %q, want %q", errs[0].Message, want)
				}
				if errs[0].Field != "email" || errs[0].Line != 3 {
					t.Errorf("finding = %+v, want field email line 3", errs[0])
				}
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"+81312345678", true},
		{"+14155552671", true},
		{"0312345678", false}, // no country code, no region to assume
		{"not-a-number", false},
		{"+815", false},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			var errs []ValidationError
			v := NewRecordValidator("users.csv", nil, &errs)
			v.Validate(Record{"phone": tt.phone}, 2)
			if gotValid := len(errs) == 0; gotValid != tt.valid {
				t.Errorf("phone %q: valid = %v, want %v", tt.phone, gotValid, tt.valid)
			}
		})
	}
}

func TestValidateDates(t *testing.T) {
	tests := []struct {
		name  string
		rec   Record
		valid bool
		field string
	}{
		{"iso date", Record{"startDate": "2026-04-01"}, true, ""},
		{"slash separators", Record{"startDate": "2026/04/01"}, false, "startDate"},
		{"unpadded month", Record{"endDate": "2026-4-01"}, false, "endDate"},
		{"impossible day", Record{"startDate": "2026-02-30"}, false, "startDate"},
		{"role start checked", Record{"roleStartDate": "01-04-2026"}, false, "roleStartDate"},
		{"role end checked", Record{"roleEndDate": "2027-03-31"}, true, ""},
		{"empty passes", Record{"startDate": ""}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errs []ValidationError
			v := NewRecordValidator("academicSessions.csv", nil, &errs)
			v.Validate(tt.rec, 4)
			if gotValid := len(errs) == 0; gotValid != tt.valid {
				t.Fatalf("valid = %v, want %v (errors: %+v)", gotValid, tt.valid, errs)
			}
			if !tt.valid && errs[0].Field != tt.field {
				t.Errorf("field = %q, want %q", errs[0].Field, tt.field)
			}
		})
	}
}

func TestValidateEnabledUser(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"true", true},
		{"false", true},
		{"TRUE", false},
		{"yes", false},
		{"1", false},
		{"", false}, // present but empty is not a valid boolean
	}

	for _, tt := range tests {
		t.Run("value_"+tt.value, func(t *testing.T) {
			var errs []ValidationError
			v := NewRecordValidator("users.csv", nil, &errs)
			v.Validate(Record{"enabledUser": tt.value}, 2)
			if gotValid := len(errs) == 0; gotValid != tt.valid {
				t.Errorf("enabledUser %q: valid = %v, want %v", tt.value, gotValid, tt.valid)
			}
		})
	}

	t.Run("key absent passes", func(t *testing.T) {
		var errs []ValidationError
		v := NewRecordValidator("orgs.csv", nil, &errs)
		v.Validate(Record{"sourcedId": "org_1"}, 2)
		if len(errs) != 0 {
			t.Errorf("unexpected errors: %+v", errs)
		}
	})
}

func TestValidateCollectsAllViolations(t *testing.T) {
	var errs []ValidationError
	v := NewRecordValidator("users.csv", []string{"sourcedId", "username"}, &errs)

	rec := Record{
		"sourcedId":   "u_1",
		"username":    "",
		"email":       "BAD@Example.org",
		"phone":       "12345",
		"enabledUser": "maybe",
	}
	if v.Validate(rec, 7) {
		t.Fatal("Validate() = true for record with four violations")
	}
	if len(errs) != 4 {
		t.Fatalf("got %d errors, want 4: %+v", len(errs), errs)
	}
	for _, e := range errs {
		if e.File != "users.csv" || e.Line != 7 {
			t.Errorf("finding %+v: want file users.csv line 7", e)
		}
	}
}
