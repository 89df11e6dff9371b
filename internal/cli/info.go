package cli

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/vellumcad/vellum"
	"github.com/vellumcad/vellum/measure"
)

// infoCmd represents the info command.
var infoCmd = newInfoCmd()

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info [files...]",
		Short: "Show drawing statistics",
		Long:  "Show the model tree size, path counts, total path length, and extents of each drawing.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([]infoRow, 0, len(args))
			for _, file := range args {
				m, err := vellum.Load(file)
				if err != nil {
					return fmt.Errorf("reading %s: %w", file, err)
				}

				rows = append(rows, infoRow{
					path:  file,
					units: m.Units,
					stats: measure.ModelStats(m),
				})
			}

			cmd.Print(renderInfoTable(rows))

			return nil
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

type infoRow struct {
	path  string
	units string
	stats measure.Stats
}

func renderInfoTable(rows []infoRow) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Units", "Models", "Paths", "Length", "Extents"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
	})

	totalPaths := 0
	totalLength := 0.0

	for _, row := range rows {
		units := row.units
		if units == "" {
			units = "-"
		}

		table.Append([]string{
			row.path,
			units,
			fmt.Sprintf("%d", row.stats.Models),
			fmt.Sprintf("%d", row.stats.Paths),
			fmt.Sprintf("%.3f", row.stats.Length),
			extentsLabel(row.stats.Extents),
		})

		totalPaths += row.stats.Paths
		totalLength += row.stats.Length
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(rows)),
		"",
		"",
		fmt.Sprintf("%d", totalPaths),
		fmt.Sprintf("%.3f", totalLength),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

func extentsLabel(ext measure.Extents) string {
	if ext.IsEmpty() {
		return "empty"
	}

	return fmt.Sprintf("%.3f x %.3f", ext.Width(), ext.Height())
}
