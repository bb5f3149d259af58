package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mappingstudio/mapping-studio/internal/pkg/utils/errors"
)

const compileShortDescription = `Compile a mapping to index settings and an ingest pipeline`

func compileCommand(root *rootCommand) *cobra.Command {
	includePlan := false
	asJSON := false

	cmd := &cobra.Command{
		Use:   "compile <mapping.json>",
		Short: compileShortDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMapping(args[0])
			if err != nil {
				return err
			}

			result, err := root.apiClient().Compile(root.ctx, m, includePlan)
			if err != nil {
				return err
			}
			if asJSON {
				return root.printJSON(result)
			}

			for _, warning := range result.Warnings {
				root.logger.Warn(warning)
			}
			for _, e := range result.Errors {
				root.logger.Error(e)
			}
			if !result.Success {
				return errors.New("compilation failed")
			}

			root.logger.Infof("Compiled, hash %s.", result.CompiledHash)
			if root.options.Verbose {
				root.logger.Info("Index mapping:")
				if err := root.printJSON(result.ESMapping); err != nil {
					return err
				}
				root.logger.Info("Ingest pipeline:")
				if err := root.printJSON(result.Pipeline); err != nil {
					return err
				}
			}
			if includePlan && result.Plan != nil {
				root.logger.Info("Plan:")
				return root.printJSON(result.Plan)
			}
			return nil
		},
	}

	cmd.Flags().SortFlags = true
	cmd.Flags().BoolVar(&includePlan, "plan", false, "include the execution plan")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}
