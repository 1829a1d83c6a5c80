// Package config holds the run configuration of github-stars.
//
// Values come from command-line flags only; there is no configuration file
// and no environment lookup. Default returns the values used for flags the
// user did not set, and Validate checks a fully populated Config before any
// request is made.
package config

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/naka-gawa/github-stars/internal/gateway"
	"github.com/naka-gawa/github-stars/internal/presenter"
)

// Config represents the complete configuration of a single run.
type Config struct {
	// Username whose public repositories are counted.
	Username string
	// Threshold is the minimum number of stars a repository needs to be displayed.
	// It never affects the total.
	Threshold int
	// Format selects the presenter, see presenter.Formats.
	Format string
	// Concurrency is the maximum number of page requests in flight.
	Concurrency int
	// APIURL is the GitHub REST API base URL.
	APIURL string
	// Timeout bounds the whole run.
	Timeout time.Duration
	// Verbose enables progress logging on stderr.
	Verbose bool
}

// Default returns a Config with the documented flag defaults.
func Default() *Config {
	return &Config{
		Threshold:   1,
		Format:      presenter.FormatPlain,
		Concurrency: 1,
		APIURL:      gateway.DefaultBaseURL,
		Timeout:     60 * time.Second,
	}
}

// usernamePattern follows GitHub's login rules, loosely: alphanumerics,
// hyphens and underscores, not starting with a hyphen, at most 39 characters.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_-]{0,38}$`)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate reports the first invalid value of c.
func (c *Config) Validate() error {
	if !usernamePattern.MatchString(c.Username) {
		return fmt.Errorf("%w: %q is not a valid GitHub username", ErrInvalidConfig, c.Username)
	}
	if c.Threshold < 0 {
		return fmt.Errorf("%w: threshold must be zero or positive, got %d", ErrInvalidConfig, c.Threshold)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1, got %d", ErrInvalidConfig, c.Concurrency)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, c.Timeout)
	}
	if _, err := presenter.New(c.Format); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
