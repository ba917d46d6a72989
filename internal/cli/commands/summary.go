package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ShlokRathi29/India-crime-analysis/internal/cli/config"
	"github.com/ShlokRathi29/India-crime-analysis/internal/stats"
)

// SummaryOptions holds options for the summary command.
type SummaryOptions struct {
	Dataset  string
	YearFrom int
	YearTo   int
	Group    string
	Top      int
	ByRecov  bool
}

// NewSummaryCommand creates the summary command.
func NewSummaryCommand() *cobra.Command {
	opts := &SummaryOptions{}

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print KPIs and state rankings for a dataset",
		Example: `  # Overall property crime summary
  crimedash summary --dataset "Property Crime"

  # Murders in a year range, ranked by recovery rate
  crimedash summary --dataset Murders --year-from 2005 --year-to 2010 --by-recovery`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSummary(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Dataset, "dataset", "", "Dataset display name (default: first available)")
	cmd.Flags().IntVar(&opts.YearFrom, "year-from", 0, "First year to include")
	cmd.Flags().IntVar(&opts.YearTo, "year-to", 0, "Last year to include")
	cmd.Flags().StringVar(&opts.Group, "group", "", "Restrict to one crime group")
	cmd.Flags().IntVar(&opts.Top, "top", 10, "Number of states to rank")
	cmd.Flags().BoolVar(&opts.ByRecov, "by-recovery", false, "Rank by recovery rate instead of total crimes")

	return cmd
}

func runSummary(cmd *cobra.Command, opts *SummaryOptions) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	catalog, geoRef, err := loadData(cfg, logger)
	if err != nil {
		return err
	}

	name := opts.Dataset
	if name == "" {
		names := catalog.Names()
		if len(names) == 0 {
			return fmt.Errorf("no datasets loaded")
		}
		name = names[0]
	}
	d, ok := catalog.Get(name)
	if !ok {
		return fmt.Errorf("unknown dataset %q (run 'crimedash datasets' to list them)", name)
	}

	filter := stats.Filter{
		YearFrom: opts.YearFrom,
		YearTo:   opts.YearTo,
		Group:    opts.Group,
	}
	summaries := stats.Aggregate(d.Records, filter, geoRef.StateNames())
	kpi := stats.ComputeKPI(summaries)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Dataset:        %s\n", name)
	fmt.Fprintf(out, "Total Crimes:   %s\n", humanize.Commaf(kpi.TotalCrimes))
	fmt.Fprintf(out, "Total Recovered: %s\n", humanize.Commaf(kpi.TotalRecovered))
	fmt.Fprintf(out, "Recovery Rate:  %.2f%%\n\n", kpi.RecoveryRatePct)

	var ranked []stats.StateSummary
	if opts.ByRecov {
		ranked = stats.TopByRecovery(summaries, opts.Top)
	} else {
		ranked = stats.TopByCrimes(summaries, opts.Top)
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "State/UT", "Total Crimes", "Recovery %", "Loss Value"})
	for i, s := range ranked {
		t.AppendRow(table.Row{
			i + 1,
			s.State,
			humanize.Commaf(s.TotalCrimes),
			fmt.Sprintf("%.2f", s.RecoveryRate*100),
			humanize.Commaf(s.LossValue),
		})
	}
	t.Render()

	return nil
}
