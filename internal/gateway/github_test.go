package gateway

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/naka-gawa/github-stars/internal/domain"
	"github.com/naka-gawa/github-stars/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler) (*GitHubGateway, *httptest.Server) {
	server := httptest.NewServer(handler)

	// No trailing slash on purpose, the constructor must add it.
	gateway, err := NewGitHubGateway(Options{BaseURL: server.URL}, log.New(io.Discard, "", 0))
	require.NoError(t, err)

	return gateway, server
}

func strPtr(s string) *string { return &s }

func TestNewGitHubGateway_InvalidBaseURL(t *testing.T) {
	_, err := NewGitHubGateway(Options{BaseURL: "ftp://example.com"}, log.New(io.Discard, "", 0))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported API base URL scheme")
}

func TestGitHubGateway_FetchUserProfile(t *testing.T) {
	testCases := []struct {
		name            string
		handlerFunc     func(w http.ResponseWriter, r *http.Request)
		expectedProfile *domain.UserProfile
		assertErr       func(t *testing.T, err error)
	}{
		{
			name: "happy path - decodes the profile",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/users/octocat", r.URL.Path)
				assert.Equal(t, version.UserAgent(), r.Header.Get("User-Agent"))
				fmt.Fprint(w, `{"login": "octocat", "id": 583231, "public_repos": 8}`)
			},
			expectedProfile: &domain.UserProfile{Login: "octocat", ID: 583231, PublicRepos: 8},
		},
		{
			name: "error case - unknown user",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message": "Not Found"}`)
			},
			assertErr: func(t *testing.T, err error) {
				var httpErr *HTTPError
				require.ErrorAs(t, err, &httpErr)
				assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
				assert.Equal(t, "Not Found", httpErr.Message)
				assert.Contains(t, err.Error(), "github API returned status 404")
			},
		},
		{
			name: "error case - malformed body",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"login": "octocat", "public_repos": "many"}`)
			},
			assertErr: func(t *testing.T, err error) {
				var decodeErr *DecodeError
				require.ErrorAs(t, err, &decodeErr)
				assert.Contains(t, err.Error(), "failed to decode response")
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			defer server.Close()

			profile, err := gateway.FetchUserProfile(context.Background(), "octocat")
			if tc.assertErr != nil {
				assert.Nil(t, profile)
				tc.assertErr(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedProfile, profile)
		})
	}
}

func TestGitHubGateway_FetchRepositoryPage(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat/repos", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, version.UserAgent(), r.Header.Get("User-Agent"))
		fmt.Fprint(w, `[
			{"name": "hello-world", "description": "My first repository", "stargazers_count": 42},
			{"name": "spoon-knife", "description": null, "stargazers_count": 0}
		]`)
	}
	gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
	defer server.Close()

	repos, err := gateway.FetchRepositoryPage(context.Background(), "octocat", 100, 2)
	require.NoError(t, err)
	assert.Equal(t, []domain.Repository{
		{Name: "hello-world", Description: strPtr("My first repository"), Stars: 42},
		{Name: "spoon-knife", Description: nil, Stars: 0},
	}, repos)
}

func TestGitHubGateway_FetchRepositoryPage_Errors(t *testing.T) {
	t.Run("server error is an HTTPError", func(t *testing.T) {
		gateway, server := setupTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"message": "Internal Server Error"}`)
		}))
		defer server.Close()

		_, err := gateway.FetchRepositoryPage(context.Background(), "octocat", 100, 1)
		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
		assert.Contains(t, err.Error(), "fetch repositories page 1")
	})

	t.Run("non-array body is a DecodeError", func(t *testing.T) {
		gateway, server := setupTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"name": "not-a-list"}`)
		}))
		defer server.Close()

		_, err := gateway.FetchRepositoryPage(context.Background(), "octocat", 100, 1)
		var decodeErr *DecodeError
		assert.ErrorAs(t, err, &decodeErr)
	})

	t.Run("closed server is a TransportError", func(t *testing.T) {
		gateway, server := setupTestGateway(t, http.NotFoundHandler())
		server.Close()

		_, err := gateway.FetchRepositoryPage(context.Background(), "octocat", 100, 1)
		var transportErr *TransportError
		assert.ErrorAs(t, err, &transportErr)
	})

	t.Run("empty username makes no request", func(t *testing.T) {
		gateway, server := setupTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("unexpected request to %s", r.URL)
		}))
		defer server.Close()

		_, err := gateway.FetchRepositoryPage(context.Background(), " ", 100, 1)
		assert.ErrorIs(t, err, ErrEmptyUsername)
		_, err = gateway.FetchUserProfile(context.Background(), "")
		assert.ErrorIs(t, err, ErrEmptyUsername)
	})
}
