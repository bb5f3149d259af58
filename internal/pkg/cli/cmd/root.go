// Package cmd wires the CLI commands to the mapping service client,
// the diff engine and the interactive editor.
package cmd

import (
	"context"
	"io"
	"os"
	"path"
	"time"

	"github.com/spf13/cobra"

	"github.com/mappingstudio/mapping-studio/internal/pkg/api"
	"github.com/mappingstudio/mapping-studio/internal/pkg/cli/options"
	"github.com/mappingstudio/mapping-studio/internal/pkg/cli/prompt"
	"github.com/mappingstudio/mapping-studio/internal/pkg/log"
	"github.com/mappingstudio/mapping-studio/internal/pkg/schema"
)

const description = `
Mapping Studio CLI

Author and verify index mappings from your terminal or CI pipeline.

Edit a mapping interactively with "edit", inspect changes with "diff"
and push the result with "validate", "compile" and "apply".
`

type rootCommand struct {
	cmd     *cobra.Command
	prompt  prompt.Prompt
	options *options.Options // parsed flags and env variables
	logger  log.Logger       // console logger
	cache   *schema.Cache    // schema fetched during this run
	api     *api.Client      // lazy, see apiClient()
	ctx     context.Context
	start   time.Time
}

// NewRootCommand creates the parent of all sub-commands.
func NewRootCommand(stdin io.Reader, stdout io.Writer, stderr io.Writer, p prompt.Prompt) *rootCommand {
	root := &rootCommand{
		prompt: p,
		cache:  schema.NewCache(),
		ctx:    context.Background(),
		start:  time.Now(),
	}

	root.cmd = &cobra.Command{
		Use:           path.Base(os.Args[0]),
		Short:         description,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.cmd.Help()
		},
	}

	root.cmd.SetIn(stdin)
	root.cmd.SetOut(stdout)
	root.cmd.SetErr(stderr)

	// Persistent flags for all sub-commands
	flags := root.cmd.PersistentFlags()
	flags.SortFlags = true
	options.Flags(flags)

	// Init when flags are parsed
	root.cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		opts, err := options.Load(cmd.Flags())
		if err != nil {
			return err
		}
		root.options = opts
		root.logger = log.NewLogger(stdout, stderr, opts.Verbose)
		return nil
	}

	// Sub-commands
	root.cmd.AddCommand(
		editCommand(root),
		diffCommand(root),
		validateCommand(root),
		dryRunCommand(root),
		compileCommand(root),
		applyCommand(root),
		inferTypesCommand(root),
		estimateSizeCommand(root),
		checkIDsCommand(root),
		schemaCommand(root),
		metricsCommand(root),
	)

	return root
}

// Execute runs the command, returns the exit code.
func (root *rootCommand) Execute() int {
	defer func() {
		if root.logger != nil {
			root.logger.Debugf("Done in %s.", time.Since(root.start))
			_ = root.logger.Sync()
		}
	}()

	if err := root.cmd.Execute(); err != nil {
		if root.logger == nil {
			root.logger = log.NewLogger(root.cmd.OutOrStdout(), root.cmd.ErrOrStderr(), false)
		}
		root.logger.Error(err.Error())
		return 1
	}
	return 0
}

// apiClient returns the shared client, created on first use, after the
// options are loaded.
func (root *rootCommand) apiClient() *api.Client {
	if root.api == nil {
		root.api = api.NewClient(
			root.options.APIURL,
			root.logger,
			root.cache,
			api.WithTimeout(root.options.Timeout),
		)
	}
	return root.api
}

// fetchSchema loads the mappings schema, preferring a fresh fetch and
// degrading to the cached copy when the service is unreachable.
func (root *rootCommand) fetchSchema() *schema.Info {
	info, offline, err := root.apiClient().FetchSchema(root.ctx)
	if err != nil {
		root.logger.Warnf("schema not available: %s", err)
		return nil
	}
	if offline {
		root.logger.Warn("service unreachable, using the cached schema")
	}
	return info
}
