package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/poa/internal/cli/formatter"
	"github.com/alexanderramin/poa/internal/export"
	"github.com/alexanderramin/poa/internal/report"
)

func newReportCmd(app *App) *cobra.Command {
	var (
		year     string
		category string
		asJSON   bool
		xlsxPath string
		pdfPath  string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate the plans of a year and project category",
		Long: `Aggregate every plan of a year whose project belongs to a category.

Categories: Investigacion, Vinculacion, Transferencia.`,
		Example: `  poa report --year 2025 --category Investigacion
  poa report --year 2025 --category Vinculacion --json > report.json
  poa report --year 2025 --category Investigacion --xlsx reporte-poa.xlsx --pdf reporte-poa.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.Reports.Build(cmd.Context(), year, category)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if xlsxPath != "" {
				if err := writeRendered(xlsxPath, r, export.XLSX); err != nil {
					return err
				}
				fmt.Fprintln(out, formatter.Dim("wrote "+xlsxPath))
			}
			if pdfPath != "" {
				if err := writeRendered(pdfPath, r, export.PDF); err != nil {
					return err
				}
				fmt.Fprintln(out, formatter.Dim("wrote "+pdfPath))
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			}
			if xlsxPath == "" && pdfPath == "" {
				fmt.Fprint(out, formatter.FormatReport(r))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&year, "year", "", "fiscal year, e.g. 2025")
	cmd.Flags().StringVar(&category, "category", "", "project category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write the report as a spreadsheet")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "also write the report as a PDF")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func writeRendered(path string, r *report.Report, render func(*report.Report) ([]byte, error)) error {
	data, err := render(r)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
