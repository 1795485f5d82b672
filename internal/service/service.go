// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives
// validated submissions from the handler, builds the sanitized upstream
// payload, relays it through the repository and turns an upstream
// rejection into the form-specific client error.
package service
