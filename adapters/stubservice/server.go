// Package stubservice is a stand-in for the differential privacy calculation
// service, for local development and end-to-end checks. It applies no privacy
// mechanism: DP values equal the actual statistics unless a fixture is loaded.
package stubservice

import (
	"encoding/json"
	"math"
	"net/http"
	"os"

	"dpplayground/domain/playground"
	"dpplayground/internal"
	"dpplayground/internal/errors"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/montanaflynn/stats"
)

// Server serves /, /health and /calculate.
type Server struct {
	router  *chi.Mux
	fixture *playground.CalculationResult
	logger  *internal.Logger
}

// NewServer creates a stub service. A non-nil fixture is returned verbatim by
// every valid /calculate call.
func NewServer(fixture *playground.CalculationResult, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:  chi.NewRouter(),
		fixture: fixture,
		logger:  logger.Named("Stub"),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	if s.logger.GetLevel() >= internal.LogLevelDebug {
		s.router.Use(middleware.Logger)
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleRoot)
	s.router.Get("/health", s.handleHealth)
	s.router.Post("/calculate", s.handleCalculate)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"service": "dp-playground-stub"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req playground.CalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}

	if !finite(req.Epsilon) || !finite(req.LowerBound) || !finite(req.UpperBound) {
		writeDetail(w, http.StatusUnprocessableEntity, "epsilon, lower_bound and upper_bound must be numbers")
		return
	}
	if req.LowerBound >= req.UpperBound {
		writeDetail(w, http.StatusBadRequest, "lower_bound must be less than upper_bound")
		return
	}

	result := s.fixture
	if result == nil {
		computed := Compute(req.Data)
		result = &computed
	}

	s.logger.Debug("[%s] calculated %d values", middleware.GetReqID(r.Context()), len(req.Data))
	writeJSON(w, http.StatusOK, result)
}

// Compute returns the plain statistics with DP values equal to the actual ones.
// An empty dataset yields zeros.
func Compute(data []float64) playground.CalculationResult {
	count := float64(len(data))
	sum, mean := 0.0, 0.0
	if len(data) > 0 {
		sum, _ = stats.Sum(data)
		mean, _ = stats.Mean(data)
	}
	return playground.CalculationResult{
		ActualCount: count,
		Count:       count,
		ActualSum:   sum,
		Sum:         sum,
		ActualMean:  mean,
		Mean:        mean,
	}
}

// LoadFixture reads a CalculationResult JSON file
func LoadFixture(path string) (*playground.CalculationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read fixture %s", path)
	}
	var result playground.CalculationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.Wrapf(err, "failed to parse fixture %s", path)
	}
	return &result, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
