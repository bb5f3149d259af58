package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mappingstudio/mapping-studio/internal/pkg/api"
	"github.com/mappingstudio/mapping-studio/internal/pkg/utils/errors"
)

const checkIDsShortDescription = `Check sample rows for duplicate document ids`

func checkIDsCommand(root *rootCommand) *cobra.Command {
	rowsPath := ""
	asJSON := false

	cmd := &cobra.Command{
		Use:   "check-ids <mapping.json>",
		Short: checkIDsShortDescription,
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

			result, err := root.apiClient().CheckIDs(root.ctx, api.CheckIDsRequest{Mapping: m, Rows: rows})
			if err != nil {
				return err
			}
			if asJSON {
				return root.printJSON(result)
			}

			if len(result.DuplicateIDs) > 0 {
				for _, id := range result.DuplicateIDs {
					root.logger.Warnf("duplicate id: %s", id)
				}
				return errors.Errorf("%d duplicate ids in %d rows", len(result.DuplicateIDs), result.TotalChecked)
			}
			root.logger.Infof("No duplicates in %d rows.", result.TotalChecked)
			return nil
		},
	}

	cmd.Flags().SortFlags = true
	cmd.Flags().StringVar(&rowsPath, "rows", "", "JSON file with sample rows")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}
