package server

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed web/index.html web/static/*
var embeddedWeb embed.FS

func indexPage() ([]byte, error) {
	return fs.ReadFile(embeddedWeb, "web/index.html")
}

// staticHandler serves web/static under /static/.
func staticHandler() http.Handler {
	sub, err := fs.Sub(embeddedWeb, "web/static")
	if err != nil {
		return http.NotFoundHandler()
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}
