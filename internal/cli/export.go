package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lifeevents/internal/core"
	"lifeevents/internal/export"
	"lifeevents/internal/form"
)

// ErrInvalidLifeEvent is returned when the record fails validation.
var ErrInvalidLifeEvent = errors.New("life event is invalid")

func newExportCommand(a *app) *cobra.Command {
	var (
		flags  fieldFlags
		outDir string
		mirror bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Validate a life event and write employment_data.json",
		Long: `Validate the life event given by flags and, when valid, write it to
employment_data.json in the output directory. With --mirror the file is also
delivered to the AMQP and Google Drive mirrors configured in the environment.

Validation failures are printed one per line and exit non-zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			loc, err := a.cfg.Location()
			if err != nil {
				return err
			}
			now, err := flags.clock(loc)
			if err != nil {
				return err
			}

			if outDir == "" {
				outDir = a.cfg.ExportDir
			}
			if outDir == "" {
				outDir = "."
			}
			dir := export.NewDirSink(outDir)

			var mirrors []export.Mirror
			if mirror {
				m, err := OpenMirrors(ctx, a.cfg, a.logger, false)
				if err != nil {
					return err
				}
				defer m.Close()
				mirrors = m.List
			}

			c := form.New(
				form.WithClock(now),
				form.WithLocation(loc),
				form.WithLogger(a.logger),
				form.WithSink(export.NewFanout(dir, a.logger, mirrors...)),
			)
			if err := flags.fill(cmd, c); err != nil {
				return err
			}

			outcome, err := c.Save(ctx)
			if err != nil {
				return err
			}
			if !outcome.Exported() {
				printFieldErrors(cmd, outcome.Errors)
				return ErrInvalidLifeEvent
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total Income: %s\n", c.TotalIncome())
			fmt.Fprintf(out, "%s: %s\n", outcome.Message, dir.Path(outcome.Document.Filename))
			return nil
		},
	}

	flags.bind(cmd, true)
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default EXPORT_DIR or .)")
	cmd.Flags().BoolVar(&mirror, "mirror", false, "Also deliver to the configured AMQP and Google Drive mirrors")
	return cmd
}

func printFieldErrors(cmd *cobra.Command, errs core.FieldErrors) {
	w := cmd.ErrOrStderr()
	for _, field := range errs.Fields() {
		fmt.Fprintf(w, "%s: %s\n", field, errs.Get(field))
	}
}
