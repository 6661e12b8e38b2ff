// Package templates holds the HTML views, compiled into the binary.
package templates

import (
	"embed"
	"html/template"
	"time"
)

//go:embed *.tmpl
var files embed.FS

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("2 Jan 2006")
	},
}

// Load parses all views; gin looks them up by file name, e.g. "index.tmpl"
func Load() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(files, "*.tmpl"))
}
