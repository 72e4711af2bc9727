package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taigrr/list-examples/internal/output"
)

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "list-examples",
		Short: "Validate the examples registry and print it for CI",
		Long: `list-examples reads the examples registry (examples.yaml at the
repository root), validates every entry and prints the validated set
as JSON or as a GitHub Actions matrix.

Warnings go to stderr and never change the exit status.`,
		Example: `list-examples --format gha-matrix
list-examples --format gha-matrix-grouped --exclude 'khalani_examples/**'`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}

	opts.bindFlags(cmd)
	cmd.AddCommand(newServeCmd(opts))
	return cmd
}

func runList(cmd *cobra.Command, opts *options) error {
	mode, err := output.ParseMode(opts.format)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.debug)

	examples, err := loadRegistry(cmd.Context(), opts, logger)
	if err != nil {
		return err
	}

	examples, err = filterExamples(examples, opts.include, opts.exclude)
	if err != nil {
		return err
	}

	data, err := render(examples, mode, func(msg string) { logger.Warn(msg) })
	if err != nil {
		return err
	}

	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
