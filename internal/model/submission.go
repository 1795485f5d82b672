package model

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// Submission is an inbound body: field name to whatever JSON value was
// sent. Keys are matched exactly; "Email" is not "email".
type Submission map[string]any

// Field returns the value under key, absent keys being the zero Field.
func (s Submission) Field(key string) Field {
	return NewField(s[key])
}

// DecodeSubmission reads exactly one JSON value from r.
//
// Anything that is not valid JSON, or is followed by more data, is an
// error. A valid value that is not an object (null, an array, a string,
// a number) decodes to an empty Submission, so every field is absent and
// validation reports it.
func DecodeSubmission(r io.Reader) (Submission, error) {
	dec := json.NewDecoder(r)

	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, errors.Wrap(err, "body is not valid JSON")
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, errors.New("body holds more than one JSON value")
		}
		return nil, errors.Wrap(err, "unexpected data after JSON body")
	}

	object, ok := body.(map[string]any)
	if !ok {
		return Submission{}, nil
	}

	return Submission(object), nil
}
