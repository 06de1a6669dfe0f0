package core

// Error codes for support reference. Users quote the code when asking
// for help with a rejected roster; the codes group by category:
//
//	FILE001 - Required file not found
//	HDR001  - Header does not match any accepted layout
//	VAL001  - Required field missing
//	VAL002  - Invalid email
//	VAL003  - Invalid phone
//	VAL004  - Invalid date
//	VAL005  - Invalid boolean
//	VAL006  - Duplicate sourcedId
//	REF001  - Missing cross-file reference
//	ERR000  - Unrecognized finding (fallback)
//
// Patterns match case-insensitively with strings.Contains, first match
// wins, so more specific patterns come before general ones.

import "strings"

// UserMessage carries the support code and remediation guidance for one
// finding category.
type UserMessage struct {
	Code   string
	Action string
}

type messagePattern struct {
	pattern string
	msg     UserMessage
}

var messagePatterns = []messagePattern{
	{
		pattern: "required file",
		msg: UserMessage{
			Code:   "FILE001",
			Action: "Place the named file in the roster directory. orgs.csv, users.csv and roles.csv are always required.",
		},
	},
	{
		pattern: "invalid header",
		msg: UserMessage{
			Code:   "HDR001",
			Action: "The first line must contain exactly the accepted column names. Column order does not matter; spelling and case do.",
		},
	},
	{
		pattern: "required field",
		msg: UserMessage{
			Code:   "VAL001",
			Action: "Fill in the named column for this row.",
		},
	},
	{
		pattern: "invalid email",
		msg: UserMessage{
			Code:   "VAL002",
			Action: "Use a standard lowercase address such as name@example.org.",
		},
	},
	{
		pattern: "invalid phone",
		msg: UserMessage{
			Code:   "VAL003",
			Action: "Use international format with a country code, such as +81312345678.",
		},
	},
	{
		pattern: "invalid date",
		msg: UserMessage{
			Code:   "VAL004",
			Action: "Use YYYY-MM-DD, for example 2026-04-01.",
		},
	},
	{
		pattern: "invalid boolean",
		msg: UserMessage{
			Code:   "VAL005",
			Action: "Use exactly true or false.",
		},
	},
	{
		pattern: "duplicate sourcedid",
		msg: UserMessage{
			Code:   "VAL006",
			Action: "Each identifier may appear only once in this file. The first occurrence is kept.",
		},
	},
	{
		pattern: "missing ref",
		msg: UserMessage{
			Code:   "REF001",
			Action: "The referenced record must exist and pass validation in its own file.",
		},
	},
}

var defaultUserMessage = UserMessage{
	Code:   "ERR000",
	Action: "Check the file can be opened as UTF-8 CSV and try again.",
}

// ClassifyFinding maps a validation finding's message to its support
// code and remediation guidance. Unrecognized messages map to ERR000.
func ClassifyFinding(message string) UserMessage {
	lower := strings.ToLower(message)
	for _, mp := range messagePatterns {
		if strings.Contains(lower, mp.pattern) {
			return mp.msg
		}
	}
	return defaultUserMessage
}
