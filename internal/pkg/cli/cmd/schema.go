package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mappingstudio/mapping-studio/internal/pkg/utils/errors"
)

const schemaShortDescription = `Show the mappings schema of the service`

func schemaCommand(root *rootCommand) *cobra.Command {
	asJSON := false

	cmd := &cobra.Command{
		Use:   "schema",
		Short: schemaShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, offline, err := root.apiClient().FetchSchema(root.ctx)
			if err != nil {
				return err
			}
			if offline {
				root.logger.Warn("service unreachable, using the cached schema")
			}
			if info == nil {
				return errors.New("no schema available")
			}

			if asJSON {
				return root.printJSON(map[string]any{
					"schema":      info.Schema,
					"field_types": info.FieldTypes,
					"operations":  info.Operations,
					"etag":        info.ETag,
				})
			}

			root.logger.Infof("Field types: %s", strings.Join(info.FieldTypes, ", "))
			root.logger.Infof("Operations: %s", strings.Join(info.Operations, ", "))
			if info.ETag != "" {
				root.logger.Debugf("ETag: %s", info.ETag)
			}
			return nil
		},
	}

	cmd.Flags().SortFlags = true
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full schema as JSON")
	return cmd
}
