package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mappingstudio/mapping-studio/internal/pkg/diff"
	"github.com/mappingstudio/mapping-studio/internal/pkg/encoding/json"
)

const diffShortDescription = `Print differences between two mapping files`

func diffCommand(root *rootCommand) *cobra.Command {
	advanced := false
	detectMove := false
	includeUnchanged := false
	asJSON := false

	cmd := &cobra.Command{
		Use:   "diff <old.json> <new.json>",
		Short: diffShortDescription,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := loadJSONValue(args[0])
			if err != nil {
				return err
			}
			right, err := loadJSONValue(args[1])
			if err != nil {
				return err
			}

			if advanced {
				return root.printAdvancedDiff(left, right, detectMove, asJSON)
			}
			return root.printSimpleDiff(left, right, includeUnchanged, asJSON)
		},
	}

	cmd.Flags().SortFlags = true
	cmd.Flags().BoolVar(&advanced, "advanced", false, "compute a structural patch instead of a path listing")
	cmd.Flags().BoolVar(&detectMove, "detect-move", false, "report relocated array elements as moves (with --advanced)")
	cmd.Flags().BoolVar(&includeUnchanged, "include-unchanged", false, "list unchanged paths too")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print machine-readable output")
	return cmd
}

func (root *rootCommand) printSimpleDiff(left, right any, includeUnchanged, asJSON bool) error {
	results, err := diff.Simple(left, right, diff.SimpleOptions{IncludeUnchanged: includeUnchanged})
	if err != nil {
		return err
	}

	if asJSON {
		return root.printJSON(map[string]any{
			"results": results,
			"summary": diff.Summarize(results),
		})
	}

	if len(results) == 0 {
		root.logger.Info("No differences.")
		return nil
	}

	added := color.New(color.FgGreen).SprintfFunc()
	removed := color.New(color.FgRed).SprintfFunc()
	modified := color.New(color.FgYellow).SprintfFunc()
	for _, r := range results {
		switch r.Type {
		case diff.Added:
			root.logger.Info(added("+ %s = %s", r.Path, formatJSON(r.NewValue)))
		case diff.Removed:
			root.logger.Info(removed("- %s = %s", r.Path, formatJSON(r.OldValue)))
		case diff.Modified:
			root.logger.Info(modified("~ %s: %s => %s", r.Path, formatJSON(r.OldValue), formatJSON(r.NewValue)))
		case diff.Unchanged:
			root.logger.Infof("  %s", r.Path)
		}
	}

	summary := diff.Summarize(results)
	root.logger.Info("")
	root.logger.Infof("Added: %d, removed: %d, modified: %d.", summary.Added, summary.Removed, summary.Modified)
	return nil
}

func (root *rootCommand) printAdvancedDiff(left, right any, detectMove, asJSON bool) error {
	patch, err := diff.Advanced(left, right, diff.AdvancedOptions{DetectMove: detectMove})
	if err != nil {
		return err
	}

	if asJSON {
		return root.printJSON(map[string]any{
			"delta": patch.Delta,
			"stats": patch.Stats(),
		})
	}

	if patch.Empty() {
		root.logger.Info("No differences.")
		return nil
	}

	root.logger.Info(patch.Render())
	stats := patch.Stats()
	root.logger.Info("")
	root.logger.Infof("Added: %d, removed: %d, modified: %d, moved: %d.", stats.Added, stats.Removed, stats.Modified, stats.Moved)
	return nil
}

// loadJSONValue reads any JSON document, not only mappings, so the diff
// command also serves compiled outputs and dry-run previews.
func loadJSONValue(path string) (any, error) {
	var out any
	if err := loadJSONFile(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func formatJSON(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return json.MustEncodeString(v, false)
}
