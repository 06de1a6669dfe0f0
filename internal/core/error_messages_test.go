package core

import "testing"

func TestClassifyFinding(t *testing.T) {
	tests := []struct {
		message  string
		wantCode string
	}{
		{"Required file orgs.csv not found", "FILE001"},
		{"Invalid header. Expected [sourcedId name], got [id name]", "HDR001"},
		{"Required field username missing", "VAL001"},
		{"Invalid email Suzuki@Example.org", "VAL002"},
		{"Invalid phone 0312345678", "VAL003"},
		{"Invalid date 2023/04/01", "VAL004"},
		{"Invalid boolean yes", "VAL005"},
		{"Duplicate sourcedId: org_1", "VAL006"},
		{"Missing ref u_9", "REF001"},
		{"open users.csv: permission denied", "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode+"_"+tt.message[:12], func(t *testing.T) {
			got := ClassifyFinding(tt.message)
			if got.Code != tt.wantCode {
				t.Errorf("ClassifyFinding(%q).Code = %s, want %s", tt.message, got.Code, tt.wantCode)
			}
			if got.Action == "" {
				t.Errorf("ClassifyFinding(%q) has empty action", tt.message)
			}
		})
	}
}
