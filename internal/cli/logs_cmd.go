package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/poa/internal/cli/formatter"
)

func newLogsCmd(app *App) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "List workbook load audit entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.LoadLogs.List(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLoadLogs(entries))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last day (inclusive), YYYY-MM-DD")
	return cmd
}
