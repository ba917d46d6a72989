package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ShlokRathi29/India-crime-analysis/internal/cli/config"
)

// NewDatasetsCommand creates the datasets command.
func NewDatasetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the loaded crime datasets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig()
			logger := config.GetLogger(cmd.Context())

			catalog, _, err := loadData(cfg, logger)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Dataset", "File", "Records", "Years", "Groups"})

			for _, name := range catalog.Names() {
				d, _ := catalog.Get(name)
				years := d.Years()
				span := "-"
				if len(years) > 0 {
					span = fmt.Sprintf("%d-%d", years[0], years[len(years)-1])
				}
				t.AppendRow(table.Row{name, d.File, len(d.Records), span, len(d.Groups())})
			}
			t.Render()

			return nil
		},
	}
}
