package ui

import "embed"

// Assets holds the page template, static files and the glossary markdown.
//
//go:embed templates/*.html static/* content/*.md
var Assets embed.FS
