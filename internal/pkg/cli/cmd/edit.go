package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mappingstudio/mapping-studio/internal/pkg/cli/dialog"
)

const editShortDescription = `Edit a mapping file interactively`

func editCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <mapping.json>",
		Short: editShortDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMapping(args[0])
			if err != nil {
				return err
			}
			before, err := m.Fingerprint()
			if err != nil {
				return err
			}

			d := dialog.New(root.prompt, root.logger, root.fetchSchema())
			out, err := d.EditMapping(m)
			if err != nil {
				return err
			}

			after, err := out.Fingerprint()
			if err != nil {
				return err
			}
			if after == before {
				root.logger.Info("No changes.")
				return nil
			}

			if err := saveMapping(args[0], out); err != nil {
				return err
			}
			root.logger.Infof(`Saved "%s".`, args[0])
			return nil
		},
	}
	return cmd
}
