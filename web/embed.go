// Package web embeds the assets the server ships in its binary: the HTML
// templates of the public site and the back-office (templates/layouts holds
// the base layout and the admin navigation partial, templates/pages one file
// per screen) and the stylesheet under static/. Uploaded files are not
// embedded; they live on disk under the storage root.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var templateFS embed.FS

//go:embed all:static
var staticFS embed.FS

// TemplateFS provides access to the embedded template files.
var TemplateFS fs.FS = templateFS

// StaticFS provides access to the embedded static asset files.
var StaticFS fs.FS = staticFS
