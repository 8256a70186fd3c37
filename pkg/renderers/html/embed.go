package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/fields/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the bundled field templates rooted so that names read
// "fields/input.tmpl". Override directories use the same layout.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
