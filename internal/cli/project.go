package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"lifeevents/internal/form"
)

func newProjectCommand(a *app) *cobra.Command {
	var flags fieldFlags

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Print the projected total income",
		Long: `Print annual gross income times the years between start and end date
(or now, when no end date is given), in whole US dollars. Missing start date
or income prints $0.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := a.cfg.Location()
			if err != nil {
				return err
			}
			now, err := flags.clock(loc)
			if err != nil {
				return err
			}

			c := form.New(form.WithClock(now), form.WithLocation(loc), form.WithLogger(a.logger))
			if err := flags.fill(cmd, c); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), c.Project(cmd.Context()))
			return nil
		},
	}
	flags.bind(cmd, false)
	return cmd
}
