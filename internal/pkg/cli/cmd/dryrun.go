package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mappingstudio/mapping-studio/internal/pkg/api"
	"github.com/mappingstudio/mapping-studio/internal/pkg/utils/errors"
)

const dryRunShortDescription = `Transform sample rows without writing anything`

func dryRunCommand(root *rootCommand) *cobra.Command {
	rowsPath := ""
	globalsPath := ""
	asJSON := false

	cmd := &cobra.Command{
		Use:   "dry-run <mapping.json>",
		Short: dryRunShortDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMapping(args[0])
			if err != nil {
				return err
			}
			rows, err := loadRows(rowsPath)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				return errors.New("no sample rows, use --rows")
			}
			globals, err := loadGlobals(globalsPath)
			if err != nil {
				return err
			}
			if len(rows) > api.MaxDryRunRows {
				root.logger.Warnf("Only the first %d rows are sent.", api.MaxDryRunRows)
			}

			result, err := root.apiClient().DryRun(root.ctx, m, rows, globals)
			if err != nil {
				return err
			}
			if asJSON {
				return root.printJSON(result)
			}

			for _, issue := range result.Issues {
				if issue.Severity == api.SeverityError {
					root.logger.Errorf("row %d [%s] %s", issue.Row, issue.Code, issue.Message)
				} else {
					root.logger.Warnf("row %d [%s] %s", issue.Row, issue.Code, issue.Message)
				}
			}
			root.logger.Infof("Processed %d rows: %d ok, %d failed.", result.ProcessedRows, result.SuccessfulRows, result.FailedRows)
			if len(result.DocsPreview) > 0 && root.options.Verbose {
				root.logger.Info("Preview:")
				if err := root.printJSON(result.DocsPreview); err != nil {
					return err
				}
			}
			if !result.Success {
				return errors.New("dry run failed")
			}
			return nil
		},
	}

	cmd.Flags().SortFlags = true
	cmd.Flags().StringVar(&rowsPath, "rows", "", "JSON file with sample rows")
	cmd.Flags().StringVar(&globalsPath, "globals", "", "JSON file with global values")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}
