package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"dpplayground/adapters/excel"
	"dpplayground/domain/playground"
	"dpplayground/ui/termview"

	"github.com/spf13/cobra"
)

// formFlags are the form fields as command line flags. Parameters stay strings
// so that a blank or non-numeric value behaves like the web form (NaN).
type formFlags struct {
	data    string
	epsilon string
	lower   string
	upper   string
	file    string
}

func (f *formFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.data, "data", "d", playground.DefaultDatasetText, "Comma-separated dataset")
	cmd.Flags().StringVarP(&f.epsilon, "epsilon", "e", formatDefault(playground.DefaultEpsilon),
		"Privacy budget; lower = more privacy, less accuracy")
	cmd.Flags().StringVar(&f.lower, "lower", formatDefault(playground.DefaultLowerBound), "Lower clamping bound")
	cmd.Flags().StringVar(&f.upper, "upper", formatDefault(playground.DefaultUpperBound), "Upper clamping bound")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Read the dataset from the first numeric column of a .csv or .xlsx file")
}

func formatDefault(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// form builds the FormState, importing the dataset from --file when given.
func (f *formFlags) form(opts *rootOptions) (playground.FormState, error) {
	form := playground.FormState{
		DatasetText: f.data,
		Epsilon:     playground.ParseParam(f.epsilon),
		LowerBound:  playground.ParseParam(f.lower),
		UpperBound:  playground.ParseParam(f.upper),
	}
	if f.file != "" {
		dataset, err := opts.container.Importer.ReadFile(f.file)
		opts.container.Metrics.ObserveImport(excel.FileType(f.file), err == nil)
		if err != nil {
			return form, err
		}
		form.DatasetText = dataset.DatasetText()
	}
	return form, nil
}

func newCalcCmd(opts *rootOptions) *cobra.Command {
	var flags formFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Run one calculation and print the Count, Sum and Mean cards",
		Example: `  dpctl calc
  dpctl calc --data "3, 7, 12, 40" --epsilon 0.5 --lower 0 --upper 50
  dpctl calc --file ages.csv --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := flags.form(opts)
			if err != nil {
				return err
			}

			state, report := opts.container.Playground.Calculate(cmd.Context(), form)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(out, termview.State(state))
			}

			if report.Failed() {
				return &exitError{reason: report.Error}
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the request, result and cards as JSON")
	return cmd
}
