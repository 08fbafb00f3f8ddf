package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alexanderramin/poa/internal/config"
	"github.com/alexanderramin/poa/internal/service"
)

// App holds the services used by CLI commands.
type App struct {
	Import   service.ImportService
	Reports  service.ReportService
	LoadLogs service.LoadLogService
	Catalog  service.CatalogService

	// Config is resolved before any subcommand runs.
	Config *config.Config

	// Open wires the services from the resolved configuration. Tests leave
	// it nil and set the services directly.
	Open func(cfg *config.Config) error

	// IsInteractive reports whether prompts can be shown.
	IsInteractive func() bool

	// Confirm asks a yes/no question. Defaults to a huh prompt.
	Confirm func(title, description string) (bool, error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) actor() string {
	if a.Config == nil {
		return ""
	}
	return a.Config.Actor
}

// NewRootCmd creates the top-level "poa" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	v := viper.New()
	root := &cobra.Command{
		Use:           "poa",
		Short:         "Annual operating plan (POA) spreadsheet import and reporting",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfgFile, err := cmd.Flags().GetString(config.KeyConfig)
			if err != nil {
				return err
			}
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			app.Config = cfg
			if app.Open != nil {
				return app.Open(cfg)
			}
			return nil
		},
	}
	// Flag names are constants; binding cannot fail.
	_ = config.BindFlags(root.PersistentFlags(), v)

	root.AddCommand(
		newImportCmd(app),
		newReportCmd(app),
		newExportCmd(app),
		newLogsCmd(app),
		newCatalogCmd(app),
	)

	return root
}
