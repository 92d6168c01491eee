package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lifeevents/internal/config"
	"lifeevents/internal/log"
)

// app is the state shared by every subcommand once the root has run.
type app struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *log.Logger
}

// NewRootCommand builds the lifeevents command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "lifeevents",
		Short: "Employment life event form: total income projection and JSON export",
		Long: `lifeevents edits a single employment life event (employer, annual gross
income, start and end dates, notes), shows the projected total income and
exports the record as employment_data.json.

Example Usage:
  lifeevents serve                                  # Serve the form over HTTP
  lifeevents project --income 60000 --start 2020-01-15
  lifeevents export --employer Acme --income 60000 --start 2020-01-15 --out ./exports`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			LoadEnvFile()

			path := a.cfgFile
			if path == "" {
				path = os.Getenv("CONFIG_PATH")
			}
			cfg, err := LoadAndValidateConfig(path)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = SetupLogger(cfg, a.verbose, cmd.ErrOrStderr())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Path to a YAML configuration file (env CONFIG_PATH)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newServeCommand(a),
		newExportCommand(a),
		newProjectCommand(a),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
