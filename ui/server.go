package ui

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"dpplayground/adapters/excel"
	"dpplayground/app"
	"dpplayground/internal"
	"dpplayground/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	pageTemplate  = "index.html"
	healthTimeout = 750 * time.Millisecond
)

// Options wires a Server. Service is required; the rest have defaults.
type Options struct {
	Service    *app.PlaygroundService
	Importer   *excel.DataReader
	Metrics    *metrics.PlaygroundMetrics
	Gatherer   prometheus.Gatherer // nil disables /metrics
	ServiceURL string              // shown next to the status badge
	GinMode    string
	Assets     fs.FS // defaults to the embedded Assets
	Logger     *internal.Logger
}

// Server is the playground web page
type Server struct {
	router     *gin.Engine
	templates  *template.Template
	assets     fs.FS
	glossary   template.HTML
	service    *app.PlaygroundService
	importer   *excel.DataReader
	metrics    *metrics.PlaygroundMetrics
	gatherer   prometheus.Gatherer
	serviceURL string
	logger     *internal.Logger
}

// NewServer parses the templates and registers every route.
func NewServer(opts Options) (*Server, error) {
	if opts.Service == nil {
		return nil, fmt.Errorf("playground service is required")
	}
	if opts.Logger == nil {
		opts.Logger = internal.DefaultLogger
	}
	if opts.Importer == nil {
		opts.Importer = excel.NewDataReader(opts.Logger)
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.Noop()
	}
	if opts.Assets == nil {
		opts.Assets = Assets
	}
	if opts.GinMode != "" {
		gin.SetMode(opts.GinMode)
	}

	s := &Server{
		router:     gin.New(),
		assets:     opts.Assets,
		service:    opts.Service,
		importer:   opts.Importer,
		metrics:    opts.Metrics,
		gatherer:   opts.Gatherer,
		serviceURL: opts.ServiceURL,
		logger:     opts.Logger.Named("Server"),
	}

	if err := s.parseTemplates(); err != nil {
		return nil, err
	}

	glossary, err := renderGlossary(s.assets)
	if err != nil {
		return nil, fmt.Errorf("failed to render glossary: %w", err)
	}
	s.glossary = glossary

	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) parseTemplates() error {
	funcMap := template.FuncMap{
		"fixed": func(v float64, digits int) string {
			return strconv.FormatFloat(v, 'f', digits, 64)
		},
	}

	templatesFS, err := fs.Sub(s.assets, "templates")
	if err != nil {
		return fmt.Errorf("failed to create templates filesystem: %w", err)
	}

	files, err := fs.Glob(templatesFS, "*.html")
	if err != nil {
		return fmt.Errorf("failed to glob templates: %w", err)
	}
	s.logger.Debug("found %d template files: %v", len(files), files)

	s.templates = template.New("").Funcs(funcMap)
	for _, file := range files {
		content, err := fs.ReadFile(templatesFS, file)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", file, err)
		}
		if _, err := s.templates.New(file).Parse(string(content)); err != nil {
			return fmt.Errorf("failed to parse template %s: %w", file, err)
		}
	}
	if s.templates.Lookup(pageTemplate) == nil {
		return fmt.Errorf("template %s not found", pageTemplate)
	}
	return nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/calculate", s.handleCalculate)
	s.router.POST("/import", s.handleImport)

	s.router.POST("/api/calculate", s.handleAPICalculate)
	s.router.GET("/healthz", s.handleHealthz)
	if s.gatherer != nil {
		s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// serviceOnline probes the calculation service for the status badge.
func (s *Server) serviceOnline(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	if err := s.service.Health(ctx); err != nil {
		s.logger.Debug("calculation service health check failed: %v", err)
		return false
	}
	return true
}
