// Package repository handles every interaction with the place submissions
// are stored.
//
// Storage is delegated to the upstream script endpoint, so the only
// repository here is an HTTP client that posts sanitized payloads and
// reads back the script's verdict.
package repository
