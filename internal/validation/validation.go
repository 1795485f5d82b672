// Package validation contains the logic for validating and cleaning
// form submissions.
//
// It uses the `validator` library for the field-level predicates
// (email, phone, enumerations), evaluates explicit per-form rule lists
// into a Verdict, and sanitizes every forwarded value against
// spreadsheet formula injection.
package validation
