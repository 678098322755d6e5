package ui

import (
	"bytes"

	"github.com/gin-gonic/gin"
)

// renderPage executes the page template with the given view
func (s *Server) renderPage(c *gin.Context, status int, view PageView) {
	view.Glossary = s.glossary
	view.ServiceURL = s.serviceURL

	// Render to a buffer first so a template error never leaves a half-written page
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, pageTemplate, view); err != nil {
		s.logger.Error("template error for %s: %v", pageTemplate, err)
		c.AbortWithStatusJSON(500, gin.H{"error": "Template rendering failed", "details": err.Error()})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(status)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		s.logger.Warn("error writing page response: %v", err)
	}
}
