// Package model holds the request and payload shapes of the form relay.
//
// A body is decoded once into a Submission; the request records pick their
// fields out of it by exact key and keep every field as a Field, so a
// value of the wrong JSON type is reported by validation instead of
// failing the decode. Outbound payloads are plain strings, already
// sanitized.
package model

import (
	"github.com/taamulcredit/formrelay/internal/validation"
)

// SubmissionType is the "type" discriminator the upstream script routes on.
type SubmissionType string

const (
	TypeContact    SubmissionType = "contact"
	TypeNewsletter SubmissionType = "newsletter"
	TypeCallback   SubmissionType = "callback"
)

// Field is one raw value from a decoded JSON body. The zero value is an
// absent field.
type Field struct {
	raw any
}

// NewField wraps an already decoded value.
func NewField(raw any) Field {
	return Field{raw: raw}
}

// Raw returns the decoded value: nil, string, float64, bool, []any or map[string]any.
func (f Field) Raw() any {
	return f.raw
}

// Truthy reports whether the field holds a non-empty value.
func (f Field) Truthy() bool {
	return validation.Truthy(f.raw)
}

// Sanitized returns the spreadsheet-safe text of the field.
func (f Field) Sanitized() string {
	return validation.Sanitize(f.raw)
}

// Ack is the body of every successful response.
type Ack struct {
	Success bool `json:"success"`
}

// UpstreamResult is what the script endpoint answers.
type UpstreamResult struct {
	Success bool `json:"success"`
}
