// Package views embeds the HTML template tree rendered by pkg/view.
package views

import "embed"

//go:embed templates/*.html
var FS embed.FS
