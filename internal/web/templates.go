// Package web holds the embedded HTML templates for the server-rendered
// pages.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var FS embed.FS

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.ParseFS(FS, "templates/*.html"))
}
