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

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a saved report JSON as a spreadsheet or PDF",
	}
	cmd.AddCommand(
		newExportFormatCmd("xlsx", export.XLSXFileName, export.XLSX),
		newExportFormatCmd("pdf", export.PDFFileName, export.PDF),
	)
	return cmd
}

func newExportFormatCmd(format, defaultName string, render func(*report.Report) ([]byte, error)) *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   format,
		Short: "Render a report as " + format,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := readReport(in)
			if err != nil {
				return err
			}
			if err := writeRendered(out, r, render); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("wrote "+out))
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "report JSON produced by 'poa report --json'")
	cmd.Flags().StringVar(&out, "out", defaultName, "output file")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func readReport(path string) (*report.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var r report.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decoding report %s: %w", path, err)
	}
	return &r, nil
}
