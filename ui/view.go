package ui

import (
	"html/template"

	"dpplayground/domain/playground"
)

// FormView is the form as the template shows it; numbers are pre-rendered so
// NaN comes back as an empty field.
type FormView struct {
	DatasetText string
	Epsilon     string
	LowerBound  string
	UpperBound  string
}

// PageView is everything index.html renders. It is built only by
// NewPageView, a pure projection of the playground state.
type PageView struct {
	Title         string
	Form          FormView
	Phase         playground.Phase
	Loading       bool
	Error         string
	ImportError   string
	ImportNote    string
	Metrics       []playground.DisplayMetric
	HasResults    bool
	Summary       playground.DatasetSummary
	ServiceOnline bool
	ServiceURL    string
	Glossary      template.HTML
}

// NewPageView projects a state into the page model.
func NewPageView(state playground.State) PageView {
	metrics := state.Metrics()
	return PageView{
		Title: "Differential Privacy Playground",
		Form: FormView{
			DatasetText: state.Form.DatasetText,
			Epsilon:     playground.FormatParam(state.Form.Epsilon),
			LowerBound:  playground.FormatParam(state.Form.LowerBound),
			UpperBound:  playground.FormatParam(state.Form.UpperBound),
		},
		Phase:      state.Phase,
		Loading:    state.Loading(),
		Error:      state.Error,
		Metrics:    metrics,
		HasResults: len(metrics) > 0,
		Summary:    playground.Summarize(state.Form),
	}
}
