// Package ui embeds the HTML templates and static assets so the binary is
// self-contained and tests can run from any working directory.
package ui

import "embed"

//go:embed templates static
var Files embed.FS
