package ui

import (
	"html/template"
	"io/fs"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const glossaryPath = "content/glossary.md"

// renderGlossary turns the embedded glossary markdown into HTML for the help panel.
// The markdown is ours and embedded, so the output is trusted.
func renderGlossary(assets fs.FS) (template.HTML, error) {
	source, err := fs.ReadFile(assets, glossaryPath)
	if err != nil {
		return "", err
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return template.HTML(markdown.ToHTML(source, p, renderer)), nil
}
