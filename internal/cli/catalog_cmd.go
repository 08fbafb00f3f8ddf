package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/poa/internal/catalog"
	"github.com/alexanderramin/poa/internal/cli/formatter"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage reference data",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "load FILE",
		Short: "Create project types, plans and budget items from a YAML file",
		Long: `Create the reference data listed in a YAML file. Entries that already
exist (matched by code) are left unchanged, so loading the same file twice
is safe.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.LoadFile(args[0])
			if err != nil {
				return err
			}
			res, err := app.Catalog.Load(cmd.Context(), c)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"Created", "Count"},
				[][]string{
					{"project types", strconv.Itoa(res.ProjectTypes)},
					{"plan types", strconv.Itoa(res.PlanTypes)},
					{"projects", strconv.Itoa(res.Projects)},
					{"plans", strconv.Itoa(res.Plans)},
					{"budget item codes", strconv.Itoa(res.Codes)},
					{"task details", strconv.Itoa(res.Details)},
				}, 1))
			return nil
		},
	})
	return cmd
}
