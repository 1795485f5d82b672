// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as CORS for the form endpoints, request ids, request
// logging, tracing, panic recovery and the global error handler.
package middleware
