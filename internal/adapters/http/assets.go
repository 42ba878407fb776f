package web

import "embed"

// assets holds the page templates and static files.
//
//go:embed templates/*.html static/*.css
var assets embed.FS
