// Package web holds the page templates.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// IndexTemplate is the name gin renders the single page under.
const IndexTemplate = "index.tmpl"

// Templates parses every embedded template.
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.tmpl")
}
