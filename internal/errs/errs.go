// Package errs defines custom error types and utilities.
//
// Its purpose is to create specific error structures
// (HTTPError for client responses, Error for internal failure kinds)
// so every failure reaches the client in one consistent JSON shape
// and internal detail never leaks into a response body.
package errs
