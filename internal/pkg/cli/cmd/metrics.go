package cmd

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

const metricsShortDescription = `Show service metrics`

// wellKnownMetrics are printed by default, a scrape contains much more.
var wellKnownMetrics = []string{ // nolint: gochecknoglobals
	"mapping_validate_total",
	"mapping_dry_run_total",
	"mapping_compile_total",
	"mapping_apply_total",
	"mapping_errors_total",
}

func metricsCommand(root *rootCommand) *cobra.Command {
	all := false
	prefix := ""

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: metricsShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := root.apiClient().FetchMetrics(root.ctx)
			if err != nil {
				return err
			}

			if all || prefix != "" {
				names := map[string]bool{}
				for _, sample := range snapshot.Samples {
					if prefix == "" || strings.HasPrefix(sample.Name, prefix) {
						names[sample.Name] = true
					}
				}
				sorted := make([]string, 0, len(names))
				for name := range names {
					sorted = append(sorted, name)
				}
				sort.Strings(sorted)
				for _, name := range sorted {
					root.logger.Infof("%s = %g", name, snapshot.Value(name))
				}
				return nil
			}

			for _, name := range wellKnownMetrics {
				root.logger.Infof("%s = %g", name, snapshot.Value(name))
			}
			if count := snapshot.HistogramCount("mapping_request_duration_seconds"); count > 0 {
				avg := snapshot.HistogramSum("mapping_request_duration_seconds") / count
				root.logger.Infof("avg request duration = %.3fs over %g requests", avg, count)
			}
			return nil
		},
	}

	cmd.Flags().SortFlags = true
	cmd.Flags().BoolVar(&all, "all", false, "print every metric")
	cmd.Flags().StringVar(&prefix, "prefix", "", "print metrics with the given name prefix")
	return cmd
}
