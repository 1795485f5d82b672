// Package handler is the first layer after the router.
//
// It decodes form submissions, drops honeypot hits, runs the form rules
// from the validation package and calls the service layer. It also serves
// the health and documentation endpoints.
package handler
