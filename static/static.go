// Package static embeds the API documentation assets so the binary (and
// the serverless function) carry them without a working directory.
package static

import "embed"

//go:embed openapi.html openapi.json
var FS embed.FS
