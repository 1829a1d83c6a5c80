// Package cmd contains the CLI of the application,
// built using the Cobra library.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/naka-gawa/github-stars/internal/config"
	"github.com/naka-gawa/github-stars/internal/gateway"
	"github.com/naka-gawa/github-stars/internal/presenter"
	"github.com/naka-gawa/github-stars/internal/version"
	"github.com/spf13/cobra"
)

// Exit codes returned by Execute.
const (
	exitGeneral   = 1
	exitHTTP      = 2
	exitTransport = 3
)

// newRootCmd builds the root command. Every call returns a fresh command
// with its own flag set, so tests can run it repeatedly.
func newRootCmd() *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   "github-stars <username>",
		Short: "Count the stars of a GitHub user's public repositories.",
		Long: `github-stars lists the public repositories of a GitHub user that have
at least --threshold stars, most starred first, followed by the total number
of stars across all of the user's public repositories.`,
		Args:          cobra.ExactArgs(1),
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Username = args[0]
			return runStars(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&cfg.Threshold, "threshold", "t", cfg.Threshold, "Minimum stars required to show a repository")
	flags.StringVarP(&cfg.Format, "format", "f", cfg.Format, "Output format ("+strings.Join(presenter.Formats(), "|")+")")
	flags.IntVarP(&cfg.Concurrency, "concurrency", "c", cfg.Concurrency, "Maximum number of pages fetched in parallel")
	flags.StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "GitHub REST API base URL")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Deadline for the whole run")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Enable verbose/debug logging")

	return cmd
}

// Execute runs the root command and exits with a status derived from the error.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var httpErr *gateway.HTTPError
	if errors.As(err, &httpErr) {
		return exitHTTP
	}
	var transportErr *gateway.TransportError
	if errors.As(err, &transportErr) {
		return exitTransport
	}
	return exitGeneral
}
