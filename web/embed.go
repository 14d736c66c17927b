// Package web embeds the static landing page served from the Go binary.
package web

import (
	"embed"
	"io/fs"
	"log"
)

//go:embed all:static
var static embed.FS

// StaticFS returns a filesystem rooted at the embedded static/ directory,
// ready to use with http.FileServerFS or http.FS.
func StaticFS() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		log.Fatalf("web.StaticFS: %v", err)
	}
	return sub
}

// IndexHTML returns the landing page bytes.
func IndexHTML() []byte {
	b, err := static.ReadFile("static/index.html")
	if err != nil {
		log.Fatalf("web.IndexHTML: %v", err)
	}
	return b
}
