// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/github-stars/internal/domain"
	"github.com/naka-gawa/github-stars/internal/gateway"
	"golang.org/x/sync/errgroup"
)

// DefaultPageSize is the number of repositories requested per page, the GitHub maximum.
const DefaultPageSize = 100

// FetchError wraps the first gateway error that aborted an aggregation.
// Page is 0 when the profile request failed.
type FetchError struct {
	Username string
	Page     int
	Err      error
}

func (e *FetchError) Error() string {
	if e.Page == 0 {
		return fmt.Sprintf("failed to fetch profile of %s: %v", e.Username, e.Err)
	}
	return fmt.Sprintf("failed to fetch repositories of %s (page %d): %v", e.Username, e.Page, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Aggregator is the use case for counting the stars of a GitHub user.
// It orchestrates the paginated fetching and folds the pages into a summary.
type Aggregator struct {
	fetcher     gateway.Fetcher
	logger      *log.Logger
	pageSize    int
	concurrency int
}

// Option customizes an Aggregator.
type Option func(*Aggregator)

// WithConcurrency sets how many pages may be requested at the same time.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(a *Aggregator) {
		if n >= 1 {
			a.concurrency = n
		}
	}
}

// WithPageSize overrides DefaultPageSize. Values below 1 are ignored.
func WithPageSize(n int) Option {
	return func(a *Aggregator) {
		if n >= 1 {
			a.pageSize = n
		}
	}
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger *log.Logger, opts ...Option) *Aggregator {
	a := &Aggregator{
		fetcher:     fetcher,
		logger:      logger,
		pageSize:    DefaultPageSize,
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate fetches every repository page of username and returns the repositories
// with at least threshold stars, most starred first, together with the star total
// of all repositories.
//
// Pages are requested from the last one down to the first. The first failed request
// aborts the whole aggregation and no partial result is returned.
func (a *Aggregator) Aggregate(ctx context.Context, username string, threshold int) (*domain.StarSummary, error) {
	a.logger.Println("Usecase: Starting star aggregation...")

	profile, err := a.fetcher.FetchUserProfile(ctx, username)
	if err != nil {
		return nil, &FetchError{Username: username, Err: err}
	}

	totalPages := pageCount(profile.PublicRepos, a.pageSize)
	pages, err := a.fetchPages(ctx, username, totalPages)
	if err != nil {
		return nil, err
	}
	a.logger.Printf("Usecase: All %d pages fetched successfully.", totalPages)

	summary := foldPages(pages, threshold)
	a.logSummary(pages, summary)
	return summary, nil
}

// fetchPages requests pages totalPages..1. Each page is stored in its own slot,
// indexed by page number minus one, so concurrent fetches never share state.
func (a *Aggregator) fetchPages(ctx context.Context, username string, totalPages int) ([][]domain.Repository, error) {
	pages := make([][]domain.Repository, totalPages)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(a.concurrency)

	for page := totalPages; page >= 1; page-- {
		page := page
		eg.Go(func() error {
			// A previous page may have failed while this one waited for a slot.
			if err := egCtx.Err(); err != nil {
				return &FetchError{Username: username, Page: page, Err: err}
			}
			a.logger.Printf("  Fetching page %d/%d...", page, totalPages)
			records, err := a.fetcher.FetchRepositoryPage(egCtx, username, a.pageSize, page)
			if err != nil {
				return &FetchError{Username: username, Page: page, Err: err}
			}
			pages[page-1] = records
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

// foldPages sums the stars of every record and keeps the ones at or above threshold.
// The retained records are ordered by stars descending, then by name.
func foldPages(pages [][]domain.Repository, threshold int) *domain.StarSummary {
	summary := &domain.StarSummary{Repositories: []domain.Repository{}}
	for i := len(pages) - 1; i >= 0; i-- {
		for _, repo := range pages[i] {
			summary.TotalStars += repo.Stars
			if repo.Stars < threshold {
				continue
			}
			summary.Repositories = append(summary.Repositories, repo)
		}
	}

	sortRepositories(summary.Repositories)
	return summary
}

func sortRepositories(repos []domain.Repository) {
	sort.Slice(repos, func(i, j int) bool {
		if repos[i].Stars != repos[j].Stars {
			return repos[i].Stars > repos[j].Stars
		}
		return repos[i].Name < repos[j].Name
	})
}

func pageCount(declared, pageSize int) int {
	if declared <= 0 {
		return 0
	}
	return (declared + pageSize - 1) / pageSize
}

func (a *Aggregator) logSummary(pages [][]domain.Repository, summary *domain.StarSummary) {
	var counts []int
	for _, page := range pages {
		for _, repo := range page {
			counts = append(counts, repo.Stars)
		}
	}
	if len(counts) == 0 {
		a.logger.Println("Usecase: Aggregation complete, no repositories found.")
		return
	}

	median, err := stats.Median(stats.LoadRawData(counts))
	if err != nil {
		a.logger.Printf("Usecase: Aggregation complete, %d repositories, %d stars.", len(counts), summary.TotalStars)
		return
	}
	a.logger.Printf("Usecase: Aggregation complete, %d repositories (%d shown), %d stars, median %.1f.",
		len(counts), len(summary.Repositories), summary.TotalStars, median)
}
