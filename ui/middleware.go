package ui

import (
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestLogger())

	staticFS, err := fs.Sub(s.assets, "static")
	if err != nil {
		s.logger.Error("failed to create static filesystem: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// requestLogger logs one line per request at INFO, static assets at DEBUG.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		elapsed := float64(time.Since(start).Nanoseconds()) / 1e6
		if strings.HasPrefix(path, "/static/") {
			s.logger.Debug("%s %s %d %.2fms", c.Request.Method, path, c.Writer.Status(), elapsed)
			return
		}
		s.logger.Info("%s %s %d %.2fms", c.Request.Method, path, c.Writer.Status(), elapsed)
	}
}
