package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v66/github"
	"github.com/meysamhadeli/repoctx/repo_analyzer/models"
)

// GithubConfig configures the hosted repository API client.
type GithubConfig struct {
	Token string
	// BaseURL overrides the API endpoint, e.g. for GitHub Enterprise or tests.
	BaseURL    string
	HTTPClient *http.Client
}

// GithubProvider looks up repository facts through the GitHub REST API.
type GithubProvider struct {
	client *gh.Client
}

// NewGithubProvider initializes a new GithubProvider authenticated with the configured token.
func NewGithubProvider(config *GithubConfig) (*GithubProvider, error) {
	client := gh.NewClient(config.HTTPClient)
	if config.Token != "" {
		client = client.WithAuthToken(config.Token)
	}

	if config.BaseURL != "" {
		baseURL := config.BaseURL
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		parsed, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid github base url %q: %w", config.BaseURL, err)
		}
		client.BaseURL = parsed
	}

	return &GithubProvider{client: client}, nil
}

// RepositoryMetadata fetches the repository owner/repo.
func (p *GithubProvider) RepositoryMetadata(ctx context.Context, owner string, repo string) (*models.RepoMetadata, error) {
	repository, _, err := p.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to get repository %s/%s: %w", owner, repo, err)
	}

	return &models.RepoMetadata{
		FullName:      repository.GetFullName(),
		Description:   repository.GetDescription(),
		DefaultBranch: repository.GetDefaultBranch(),
		Stars:         repository.GetStargazersCount(),
		Topics:        repository.Topics,
	}, nil
}
