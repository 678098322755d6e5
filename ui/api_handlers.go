package ui

import (
	"math"
	"net/http"

	"dpplayground/domain/playground"
	"dpplayground/internal/errors"

	"github.com/gin-gonic/gin"
)

// apiForm is the JSON body of POST /api/calculate. Fields left out keep the
// page defaults; an explicit null behaves like a blank number input.
type apiForm struct {
	Dataset    *string  `json:"dataset"`
	Epsilon    *float64 `json:"epsilon"`
	LowerBound *float64 `json:"lower_bound"`
	UpperBound *float64 `json:"upper_bound"`
}

func defaultAPIForm() apiForm {
	d := playground.DefaultForm()
	return apiForm{
		Dataset:    &d.DatasetText,
		Epsilon:    &d.Epsilon,
		LowerBound: &d.LowerBound,
		UpperBound: &d.UpperBound,
	}
}

func (f apiForm) formState() playground.FormState {
	form := playground.FormState{
		Epsilon:    orNaN(f.Epsilon),
		LowerBound: orNaN(f.LowerBound),
		UpperBound: orNaN(f.UpperBound),
	}
	if f.Dataset != nil {
		form.DatasetText = *f.Dataset
	}
	return form
}

func orNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

// handleAPICalculate runs the same submit cycle as the page for scripted callers.
// Calculation failures answer 502 with the banner text in "error"; a body that
// does not bind answers 400 with code INVALID_INPUT.
func (s *Server) handleAPICalculate(c *gin.Context) {
	body := defaultAPIForm()
	if err := c.ShouldBindJSON(&body); err != nil {
		invalid := errors.InvalidInput("invalid request body", err)
		s.logger.Debug("api calculate rejected: %v", invalid)
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error(), "code": invalid.Code})
		return
	}

	_, report := s.service.Calculate(c.Request.Context(), body.formState())
	if report.Failed() {
		c.JSON(http.StatusBadGateway, report)
		return
	}
	c.JSON(http.StatusOK, report)
}
