package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mappingstudio/mapping-studio/internal/pkg/utils/errors"
)

const inferTypesShortDescription = `Suggest field types from sample rows`

func inferTypesCommand(root *rootCommand) *cobra.Command {
	globalsPath := ""
	asJSON := false

	cmd := &cobra.Command{
		Use:   "infer-types <rows.json>",
		Short: inferTypesShortDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := loadRows(args[0])
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				return errors.New("no sample rows")
			}
			globals, err := loadGlobals(globalsPath)
			if err != nil {
				return err
			}

			result, err := root.apiClient().InferTypes(root.ctx, rows, globals)
			if err != nil {
				return err
			}
			if asJSON {
				return root.printJSON(result)
			}

			for _, inferred := range result.InferredTypes {
				root.logger.Infof("%s: %s (%.0f%%)", inferred.Field, inferred.SuggestedType, inferred.Confidence*100)
				if root.options.Verbose && inferred.Reasoning != "" {
					root.logger.Debugf("  %s", inferred.Reasoning)
				}
			}
			root.logger.Infof("%d fields.", result.TotalFields)
			return nil
		},
	}

	cmd.Flags().SortFlags = true
	cmd.Flags().StringVar(&globalsPath, "globals", "", "JSON file with global values")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}
