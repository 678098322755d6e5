package ui

import (
	"fmt"
	"net/http"

	"dpplayground/adapters/excel"
	"dpplayground/domain/playground"

	"github.com/gin-gonic/gin"
)

// handleIndex serves the page with the default form
func (s *Server) handleIndex(c *gin.Context) {
	view := NewPageView(playground.NewState())
	view.ServiceOnline = s.serviceOnline(c.Request.Context())
	s.renderPage(c, http.StatusOK, view)
}

// handleCalculate runs one submit cycle for the posted form and renders the outcome.
// A failed calculation is still a 200: the page shows the error banner.
func (s *Server) handleCalculate(c *gin.Context) {
	state := playground.NewState().WithForm(formFromPost(c))
	next := s.service.Submit(c.Request.Context(), state)

	view := NewPageView(next)
	view.ServiceOnline = next.Phase == playground.PhaseSuccess || s.serviceOnline(c.Request.Context())
	s.renderPage(c, http.StatusOK, view)
}

// handleImport replaces the dataset with the first numeric column of an uploaded file.
func (s *Server) handleImport(c *gin.Context) {
	form := formFromPost(c)
	view := NewPageView(playground.NewState().WithForm(form))

	dataset, format, err := s.readUpload(c)
	s.metrics.ObserveImport(format, err == nil)
	if err != nil {
		s.logger.Warn("import failed: %v", err)
		view.ImportError = err.Error()
		s.renderPage(c, http.StatusBadRequest, view)
		return
	}

	form.DatasetText = dataset.DatasetText()
	view = NewPageView(playground.NewState().WithForm(form))
	view.ImportNote = importNote(dataset)
	s.renderPage(c, http.StatusOK, view)
}

func (s *Server) readUpload(c *gin.Context) (*excel.ImportedDataset, string, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("no file uploaded")
	}
	format := excel.FileType(header.Filename)

	file, err := header.Open()
	if err != nil {
		return nil, format, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	dataset, err := s.importer.Read(file, header.Filename)
	return dataset, format, err
}

func importNote(d *excel.ImportedDataset) string {
	note := fmt.Sprintf("Imported %d values", len(d.Values))
	if d.Column != "" {
		note += fmt.Sprintf(" from column %q", d.Column)
	}
	if d.Skipped > 0 {
		note += fmt.Sprintf(" (%d non-numeric cells skipped)", d.Skipped)
	}
	return note
}

// formFromPost reads the four form fields. Blank or non-numeric parameters
// become NaN, the same as an empty number input.
func formFromPost(c *gin.Context) playground.FormState {
	return playground.FormState{
		DatasetText: c.PostForm("dataset"),
		Epsilon:     playground.ParseParam(c.PostForm("epsilon")),
		LowerBound:  playground.ParseParam(c.PostForm("lower_bound")),
		UpperBound:  playground.ParseParam(c.PostForm("upper_bound")),
	}
}

// handleHealthz is the page server's own liveness probe
func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
