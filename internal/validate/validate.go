package validate

import (
	"strings"
	"unicode/utf8"
)

// FieldQuestion is the form field the question errors are attached to.
const FieldQuestion = "question"

const (
	MinQuestionLength = 10
	MaxQuestionLength = 1000
)

const (
	ErrEmptyQuestion    = "Please enter a medical question"
	ErrQuestionTooShort = "Question must be at least 10 characters long"
	ErrQuestionTooLong  = "Question must be less than 1000 characters"
)

// Result maps a field name to its error message. An empty Result is valid.
type Result map[string]string

func (r Result) Valid() bool {
	return len(r) == 0
}

// Error returns the message for field, or "" when the field passed.
func (r Result) Error(field string) string {
	return r[field]
}

// Question checks a raw question as typed by the user. Whitespace around the
// question is ignored and length is counted in characters, not bytes.
func Question(raw string) Result {
	result := Result{}
	trimmed := strings.TrimSpace(raw)
	length := utf8.RuneCountInString(trimmed)

	switch {
	case length == 0:
		result[FieldQuestion] = ErrEmptyQuestion
	case length < MinQuestionLength:
		result[FieldQuestion] = ErrQuestionTooShort
	case length > MaxQuestionLength:
		result[FieldQuestion] = ErrQuestionTooLong
	}

	return result
}
