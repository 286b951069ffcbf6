// Package web holds embedded view and layout templates for the demo
// app.
package web

import "embed"

// TemplateFS contains all HTML templates.
//
//go:embed templates
var TemplateFS embed.FS
