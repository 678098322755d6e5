package main

import (
	"dpplayground/ui/tui"

	"github.com/spf13/cobra"
)

func newTUICmd(opts *rootOptions) *cobra.Command {
	var flags formFlags

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive playground in the terminal",
		Long: `Opens the playground form in the terminal. Edit the fields, press enter to
calculate; a new calculation cannot start while one is in flight.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := flags.form(opts)
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), opts.container.Playground, form)
		},
	}

	flags.register(cmd)
	return cmd
}
