// Package web provides the embedded static assets (stylesheet and the small
// script that dismisses notices) served at /static/.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree.
//
//go:embed all:static
var StaticFS embed.FS
