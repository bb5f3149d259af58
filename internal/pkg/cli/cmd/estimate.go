package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mappingstudio/mapping-studio/internal/pkg/api"
	"github.com/mappingstudio/mapping-studio/internal/pkg/utils/errors"
)

const estimateSizeShortDescription = `Estimate the on-disk size of the index`

func estimateSizeCommand(root *rootCommand) *cobra.Command {
	statsPath := ""
	numDocs := int64(0)
	replicas := 1
	targetShardSizeGB := 30.0
	asJSON := false

	cmd := &cobra.Command{
		Use:   "estimate-size <mapping.json>",
		Short: estimateSizeShortDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMapping(args[0])
			if err != nil {
				return err
			}
			if numDocs <= 0 {
				return errors.New("expected document count, use --num-docs")
			}

			var stats []api.FieldStats
			if statsPath != "" {
				if err := loadJSONFile(statsPath, &stats); err != nil {
					return err
				}
			}

			result, err := root.apiClient().EstimateSize(root.ctx, api.EstimateSizeRequest{
				Mapping:           m,
				FieldStats:        stats,
				NumDocs:           numDocs,
				Replicas:          replicas,
				TargetShardSizeGB: targetShardSizeGB,
			})
			if err != nil {
				return err
			}
			if asJSON {
				return root.printJSON(result)
			}
			if !result.Success {
				return errors.New("size estimation failed")
			}

			root.logger.Infof("Estimated size: %s (%d bytes).", result.EstimatedSizeHuman, result.EstimatedSizeBytes)
			root.logger.Infof("Recommended: %d shards, %d replicas.", result.RecommendedShards, result.RecommendedReplicas)
			return nil
		},
	}

	cmd.Flags().SortFlags = true
	cmd.Flags().StringVar(&statsPath, "field-stats", "", "JSON file with per-field statistics")
	cmd.Flags().Int64Var(&numDocs, "num-docs", 0, "expected document count")
	cmd.Flags().IntVar(&replicas, "replicas", 1, "replica count")
	cmd.Flags().Float64Var(&targetShardSizeGB, "target-shard-size-gb", 30, "target shard size in GB")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}
