// Package gateway provides a gateway to the GitHub REST API,
// abstracting away the underlying go-github client.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/naka-gawa/github-stars/internal/domain"
	"github.com/naka-gawa/github-stars/internal/version"
)

// DefaultBaseURL is the public GitHub REST endpoint.
const DefaultBaseURL = "https://api.github.com/"

// ErrEmptyUsername is returned before any request is made for a blank username,
// which go-github would otherwise resolve to the authenticated user.
var ErrEmptyUsername = errors.New("username must not be empty")

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchUserProfile(ctx context.Context, username string) (*domain.UserProfile, error)
	FetchRepositoryPage(ctx context.Context, username string, pageSize, page int) ([]domain.Repository, error)
}

// Options configures the GitHub gateway.
type Options struct {
	// BaseURL of the REST API. Defaults to DefaultBaseURL.
	BaseURL string
	// Timeout bounds every single HTTP request. Zero means no client-side timeout.
	Timeout time.Duration
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient *github.Client
	logger     *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(opts Options, logger *log.Logger) (*GitHubGateway, error) {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	// go-github rejects base URLs without a trailing slash.
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse API base URL %q: %w", opts.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported API base URL scheme %q", parsed.Scheme)
	}

	restClient := github.NewClient(&http.Client{Timeout: opts.Timeout})
	restClient.BaseURL = parsed
	restClient.UserAgent = version.UserAgent()

	return &GitHubGateway{
		restClient: restClient,
		logger:     logger,
	}, nil
}

// FetchUserProfile fetches the public profile of username.
func (g *GitHubGateway) FetchUserProfile(ctx context.Context, username string) (*domain.UserProfile, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrEmptyUsername
	}
	g.logger.Printf("Fetching profile of %s...", username)

	user, resp, err := g.restClient.Users.Get(ctx, username)
	if err != nil {
		return nil, classifyError("fetch user profile", resp, err)
	}

	profile := &domain.UserProfile{
		Login:       user.GetLogin(),
		ID:          user.GetID(),
		PublicRepos: user.GetPublicRepos(),
	}
	g.logger.Printf("Profile of %s declares %d public repositories.", profile.Login, profile.PublicRepos)
	return profile, nil
}

// FetchRepositoryPage fetches a single page of the public repositories of username.
// Pages are 1-based, as in the GitHub API.
func (g *GitHubGateway) FetchRepositoryPage(ctx context.Context, username string, pageSize, page int) ([]domain.Repository, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrEmptyUsername
	}

	opts := &github.RepositoryListByUserOptions{
		ListOptions: github.ListOptions{PerPage: pageSize, Page: page},
	}
	repos, resp, err := g.restClient.Repositories.ListByUser(ctx, username, opts)
	if err != nil {
		return nil, classifyError(fmt.Sprintf("fetch repositories page %d", page), resp, err)
	}

	records := make([]domain.Repository, 0, len(repos))
	for _, repo := range repos {
		records = append(records, domain.Repository{
			Name:        repo.GetName(),
			Description: repo.Description,
			Stars:       repo.GetStargazersCount(),
		})
	}
	g.logger.Printf("  Fetched %d repositories from page %d.", len(records), page)
	return records, nil
}
