package core

// # Error Codes Reference
//
// This file defines user-facing error messages with codes for support reference.
// When an operator reports a problem, the code identifies the failure without
// reading the log file.
//
// Error codes are grouped by category:
//
// # File Errors (FILE001-FILE099, LOAD001-LOAD099, WRITE001-WRITE099)
//
//	FILE001  - Data file not found
//	FILE002  - Data file not accessible (permissions)
//	LOAD001  - Data file could not be read as a table
//	LOAD002  - Data file has no header row
//	WRITE001 - Data file could not be written (it may be partially written)
//
// # Record Errors (KEY001-KEY099, ROW001-ROW099, COL001-COL099)
//
//	KEY001 - No record matches the given key
//	KEY002 - A record with this key already exists
//	KEY003 - Wrong number of key values for the table
//	ROW001 - Record has the wrong number of values
//	ROW002 - Key column position outside the table
//	COL001 - Column not found in the table
//
// # Validation Errors (VAL000-VAL099)
//
//	VAL001 - Invalid date
//	VAL002 - Invalid number
//	VAL003 - Required field is empty
//	VAL004 - Value not in the allowed list
//	VAL005 - Value contains characters the file format cannot hold
//	VAL006 - Invalid time
//	VAL007 - Invalid yes/no value
//	VAL008 - Header is missing registered columns
//	VAL000 - Other validation failure
//
// # Table Errors (TBL001-TBL099)
//
//	TBL001 - Unknown table or report
//	TBL002 - Table unavailable (an earlier step failed)
//
// ERR000 is the fallback when nothing matches; check the log file for the
// technical error.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/JonMunkholm/esports/internal/store"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern maps a technical error to a user message. An entry matches
// when errors.Is(err, target) holds or, for entries without a target, when
// the lowercased error text contains pattern.
type errorPattern struct {
	target  error
	pattern string
	msg     UserMessage
}

func (ep errorPattern) matches(err error, lower string) bool {
	if ep.target != nil {
		return errors.Is(err, ep.target)
	}
	return strings.Contains(lower, ep.pattern)
}

// errorPatterns is searched in order and the first match wins, so more
// specific entries come before general ones. Validation text patterns sit
// ahead of the ErrValidation catch-all.
//
// To add a new error pattern:
//  1. Choose the appropriate category and code range
//  2. Add the entry in the correct position (specific before general)
//  3. Update the reference at the top of this file
var errorPatterns = []errorPattern{
	// =========================================================================
	// Record Errors
	// =========================================================================
	{
		target: ErrDuplicateKey,
		msg: UserMessage{
			Message: "A record with this key already exists",
			Action:  "Use Update to change the existing record or choose another key",
			Code:    "KEY002",
		},
	},
	{
		target: store.ErrKeyNotFound,
		msg: UserMessage{
			Message: "No matching record found",
			Action:  "Check the key value and try again",
			Code:    "KEY001",
		},
	},
	{
		target: ErrKeyCount,
		msg: UserMessage{
			Message: "Wrong number of key values for this table",
			Action:  "Enter one value per key column",
			Code:    "KEY003",
		},
	},

	// =========================================================================
	// File Errors
	// =========================================================================
	{
		target: os.ErrNotExist,
		msg: UserMessage{
			Message: "Data file not found",
			Action:  "Run Setup to create the data files, or check ESPORTS_DATA_DIR",
			Code:    "FILE001",
		},
	},
	{
		target: os.ErrPermission,
		msg: UserMessage{
			Message: "Data file cannot be accessed",
			Action:  "Check the permissions on the data directory",
			Code:    "FILE002",
		},
	},
	{
		target: store.ErrEmptyHeader,
		msg: UserMessage{
			Message: "Data file has no header row",
			Action:  "Run Setup to initialize the file, or restore its first line",
			Code:    "LOAD002",
		},
	},
	{
		target: store.ErrLoad,
		msg: UserMessage{
			Message: "Data file could not be read",
			Action:  "Check the file in the data directory for damage",
			Code:    "LOAD001",
		},
	},
	{
		target: store.ErrWrite,
		msg: UserMessage{
			Message: "Data file could not be written",
			Action:  "Check that the data directory is writable; the file may be incomplete",
			Code:    "WRITE001",
		},
	},

	// =========================================================================
	// Shape Errors
	// =========================================================================
	{
		target: store.ErrColumnNotFound,
		msg: UserMessage{
			Message: "Column not found in table",
			Action:  "Check the column name against the table header",
			Code:    "COL001",
		},
	},
	{
		target: store.ErrColumnCount,
		msg: UserMessage{
			Message: "Record has the wrong number of values",
			Action:  "Enter a value for every column",
			Code:    "ROW001",
		},
	},
	{
		target: store.ErrIndexOutOfRange,
		msg: UserMessage{
			Message: "Key column is outside the table",
			Action:  "Check that the file header matches the table definition",
			Code:    "ROW002",
		},
	},

	// =========================================================================
	// Table Errors
	// =========================================================================
	{
		target: ErrUnknownTable,
		msg: UserMessage{
			Message: "Unknown table",
			Action:  "Choose a table from the menu",
			Code:    "TBL001",
		},
	},
	{
		target: store.ErrNoTable,
		msg: UserMessage{
			Message: "Table unavailable",
			Action:  "An earlier step failed; check the log file",
			Code:    "TBL002",
		},
	},

	// =========================================================================
	// Validation Errors
	// =========================================================================
	{
		pattern: "invalid date",
		msg: UserMessage{
			Message: "Invalid date format detected",
			Action:  "Use YYYY-MM-DD, MM/DD/YYYY, or Jan 15, 2024",
			Code:    "VAL001",
		},
	},
	{
		pattern: "invalid number",
		msg: UserMessage{
			Message: "Invalid number format detected",
			Action:  "Use digits with an optional sign and decimal point",
			Code:    "VAL002",
		},
	},
	{
		pattern: "required field",
		msg: UserMessage{
			Message: "Required field is empty",
			Action:  "Fill in every required field",
			Code:    "VAL003",
		},
	},
	{
		pattern: "invalid enum",
		msg: UserMessage{
			Message: "Value is not in the allowed list",
			Action:  "Pick one of the listed values",
			Code:    "VAL004",
		},
	},
	{
		pattern: "invalid characters",
		msg: UserMessage{
			Message: "Value contains commas, quotes or line breaks",
			Action:  "Remove them; only the last column may contain commas",
			Code:    "VAL005",
		},
	},
	{
		pattern: "invalid time",
		msg: UserMessage{
			Message: "Invalid time format detected",
			Action:  "Use HH:MM (24h) or 7:30 PM",
			Code:    "VAL006",
		},
	},
	{
		pattern: "must be yes/no",
		msg: UserMessage{
			Message: "Invalid yes/no value",
			Action:  "Use yes/no, true/false, or 1/0",
			Code:    "VAL007",
		},
	},
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "File header is missing columns",
			Action:  "Compare the file header with the table definition",
			Code:    "VAL008",
		},
	},
	{
		target: ErrValidation,
		msg: UserMessage{
			Message: "Some values are not valid",
			Action:  "Correct the highlighted fields and try again",
			Code:    "VAL000",
		},
	},

	// =========================================================================
	// Operation Errors
	// =========================================================================
	{
		target: context.Canceled,
		msg: UserMessage{
			Message: "Operation was cancelled",
			Action:  "Start the action again if needed",
			Code:    "OPS001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
// This is the fallback for unexpected errors. Check the log file for the
// original technical error when ERR000 is reported.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or check the log file",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It walks the known patterns in order and returns the first match. If no
// pattern matches, a generic fallback message with code ERR000 is returned.
//
// Example:
//
//	_, err := st.DeleteByKey(ctx, "teams.csv", "T9", 0)
//	msg := MapError(err)
//	// msg.Code == "KEY001"
//	// msg.Message == "No matching record found"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var ue *UserError
	if errors.As(err, &ue) {
		return ue.User
	}

	lower := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if ep.matches(err, lower) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
//
// Example output: "No matching record found (Code: KEY001). Check the key value and try again"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing checks if an error matches a known pattern and should be shown to users.
// Returns true if the error matches a specific pattern (not the generic ERR000 fallback).
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	msg := MapError(err)
	return msg.Code != defaultMessage.Code
}

// UserError wraps a technical error with a user-friendly message.
// The original error is preserved for logging while providing a clean message for users.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError creates a UserError by mapping a technical error to a user-friendly message.
// Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
