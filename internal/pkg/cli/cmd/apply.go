package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mappingstudio/mapping-studio/internal/pkg/api"
	"github.com/mappingstudio/mapping-studio/internal/pkg/utils/errors"
)

const applyShortDescription = `Apply a mapping to the live index`

func applyCommand(root *rootCommand) *cobra.Command {
	opts := api.ApplyOptions{}
	compiledHash := ""
	autoApprove := false

	cmd := &cobra.Command{
		Use:   "apply <mapping.json>",
		Short: applyShortDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMapping(args[0])
			if err != nil {
				return err
			}

			if !autoApprove {
				ok, err := root.prompt.Confirm(`Apply mapping "`+m.Name+`" to the live index?`, false)
				if err != nil {
					return err
				}
				if !ok {
					root.logger.Info("Cancelled.")
					return nil
				}
			}

			result, err := root.apiClient().Apply(root.ctx, api.ApplyRequest{
				Mapping:      m,
				CompiledHash: compiledHash,
				Options:      opts,
			})
			if err != nil {
				return err
			}
			if !result.Success {
				return errors.Errorf("apply failed: %s", result.Message)
			}

			root.logger.Infof(`Index "%s" %s.`, result.IndexName, result.Status)
			if result.Details.PipelineCreated {
				root.logger.Infof(`Ingest pipeline "%s" created.`, result.PipelineName)
			}
			if result.Details.ILMPolicyCreated != nil && *result.Details.ILMPolicyCreated {
				root.logger.Infof(`ILM policy "%s" created.`, result.ILMPolicyName)
			}
			root.logger.Debugf("Shards: %d, replicas: %d.", result.Details.Shards, result.Details.Replicas)
			return nil
		},
	}

	cmd.Flags().SortFlags = true
	cmd.Flags().BoolVar(&opts.CreateIndex, "create-index", true, "create the index if missing")
	cmd.Flags().BoolVar(&opts.CreatePipeline, "create-pipeline", true, "create the ingest pipeline")
	cmd.Flags().BoolVar(&opts.CreateILMPolicy, "create-ilm-policy", false, "create the ILM policy")
	cmd.Flags().IntVar(&opts.WaitForActiveShards, "wait-for-active-shards", 1, "shard copies to wait for")
	cmd.Flags().StringVar(&compiledHash, "compiled-hash", "", "reuse a previous compilation")
	cmd.Flags().BoolVar(&autoApprove, "yes", false, "do not ask for confirmation")
	return cmd
}
