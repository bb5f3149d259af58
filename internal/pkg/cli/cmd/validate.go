package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mappingstudio/mapping-studio/internal/pkg/api"
	"github.com/mappingstudio/mapping-studio/internal/pkg/model"
	"github.com/mappingstudio/mapping-studio/internal/pkg/opschema"
	"github.com/mappingstudio/mapping-studio/internal/pkg/utils/errors"
	"github.com/mappingstudio/mapping-studio/internal/pkg/validator"
)

const validateShortDescription = `Validate a mapping file, locally and against the service`

func validateCommand(root *rootCommand) *cobra.Command {
	localOnly := false
	cmd := &cobra.Command{
		Use:   "validate <mapping.json>",
		Short: validateShortDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMapping(args[0])
			if err != nil {
				return err
			}

			if err := root.validateLocal(m); err != nil {
				return err
			}
			root.logger.Info("Local validation OK.")
			if localOnly {
				return nil
			}

			result, err := root.apiClient().ValidateMapping(root.ctx, m)
			if err != nil {
				return err
			}
			root.printIssues(result.Issues)
			if !result.Valid {
				return errors.New("the mapping is not valid")
			}
			root.logger.Infof("Valid, schema version %s.", result.SchemaVersion)
			return nil
		},
	}

	cmd.Flags().SortFlags = true
	cmd.Flags().BoolVar(&localOnly, "local-only", false, "skip the service call")
	return cmd
}

// validateLocal checks the document structure, the operation parameters
// and, when a schema is available, the JSON schema.
func (root *rootCommand) validateLocal(m *model.Mapping) error {
	errs := errors.NewMultiError()
	if err := validator.Validate(m); err != nil {
		errs.Append(err)
	}

	for _, f := range m.Fields {
		for i, op := range f.Pipeline {
			for _, issue := range opschema.Validate(op) {
				errs.Append(errors.Errorf(`field "%s", operation %d (%s): %s`, f.Target, i+1, op.Op, issue))
			}
		}
	}

	if info := root.fetchSchema(); info != nil {
		if err := info.ValidateDocument(m); err != nil {
			errs.Append(err)
		}
	}
	return errs.ErrorOrNil()
}

func (root *rootCommand) printIssues(issues []api.Issue) {
	for _, issue := range issues {
		msg := issue.Message
		if issue.Path != "" {
			msg = issue.Path + ": " + msg
		}
		if issue.Suggestion != "" {
			msg += " (" + issue.Suggestion + ")"
		}
		switch issue.Severity {
		case api.SeverityError:
			root.logger.Errorf("[%s] %s", issue.Code, msg)
		case api.SeverityWarning:
			root.logger.Warnf("[%s] %s", issue.Code, msg)
		default:
			root.logger.Infof("[%s] %s", issue.Code, msg)
		}
	}
}
