package cmd

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/naka-gawa/github-stars/internal/config"
	"github.com/naka-gawa/github-stars/internal/gateway"
	"github.com/naka-gawa/github-stars/internal/presenter"
	"github.com/naka-gawa/github-stars/internal/usecase"
)

// runStars wires the gateway, the aggregator and the presenter for one run.
// Nothing is written to stdout unless the aggregation succeeded.
func runStars(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
	if cfg.Verbose {
		logger.SetOutput(stderr)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	// Inject dependencies and run the main business logic.
	githubGateway, err := gateway.NewGitHubGateway(gateway.Options{
		BaseURL: cfg.APIURL,
		Timeout: cfg.Timeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	render, err := presenter.New(cfg.Format)
	if err != nil {
		return err
	}
	aggregator := usecase.NewAggregator(githubGateway, logger, usecase.WithConcurrency(cfg.Concurrency))

	summary, err := aggregator.Aggregate(ctx, cfg.Username, cfg.Threshold)
	if err != nil {
		return fmt.Errorf("could not count stars: %w", err)
	}

	if err := render.Render(stdout, summary); err != nil {
		return fmt.Errorf("failed to render results: %w", err)
	}
	return nil
}
