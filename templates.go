package tzcatalog

import (
	"io/fs"

	"github.com/goliatone/go-tzcatalog/pkg/page"
)

// EmbeddedTemplates exposes the built-in selector page templates so callers
// can reuse or extend them without importing the page package directly.
func EmbeddedTemplates() fs.FS {
	return page.Templates()
}
