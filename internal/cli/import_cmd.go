package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/poa/internal/cli/formatter"
	"github.com/alexanderramin/poa/internal/service"
)

func newImportCmd(app *App) *cobra.Command {
	var (
		sheet   string
		planID  string
		confirm bool
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Load a POA workbook sheet into a plan",
		Long: `Load one sheet of an .xls or .xlsx workbook into a plan.

If the plan already has activities they are replaced, which requires
confirmation: an interactive prompt on a terminal, or --confirm otherwise.
Any failure removes everything written by the import.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading workbook: %w", err)
			}
			req := service.ImportRequest{
				FileName: filepath.Base(args[0]),
				Content:  content,
				Sheet:    sheet,
				PlanID:   planID,
				Confirm:  confirm,
				Actor:    app.actor(),
			}

			ctx := cmd.Context()
			result, err := app.Import.Import(ctx, req)
			if err != nil {
				return err
			}

			if result.RequiresConfirmation && !asJSON && app.interactive() {
				ask := app.Confirm
				if ask == nil {
					ask = huhConfirm
				}
				ok, err := ask("Replace existing activities?", result.Message)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Import cancelled, nothing was changed."))
					return nil
				}
				req.Confirm = true
				if result, err = app.Import.Import(ctx, req); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			if result.RequiresConfirmation {
				fmt.Fprint(out, formatter.FormatConfirmation(result.Message))
				return nil
			}
			fmt.Fprint(out, formatter.FormatImportSummary(formatter.ImportSummary{
				PlanCode:           result.PlanCode,
				FileName:           req.FileName,
				Sheet:              req.Sheet,
				Activities:         result.ActivityCount,
				Tasks:              result.TaskCount,
				Allocations:        result.AllocationCount,
				ReplacedActivities: result.ReplacedActivities,
			}))
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet name")
	cmd.Flags().StringVar(&planID, "plan", "", "plan id or code")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "replace existing activities without asking")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("sheet")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}
