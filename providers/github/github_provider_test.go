package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/widgets", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"full_name":"acme/widgets","description":"Widgets","default_branch":"trunk","stargazers_count":42,"topics":["go","cli"]}`)
	}))
	defer server.Close()

	provider, err := NewGithubProvider(&GithubConfig{Token: "tok", BaseURL: server.URL})
	require.NoError(t, err)

	metadata, err := provider.RepositoryMetadata(context.Background(), "acme", "widgets")
	require.NoError(t, err)

	assert.Equal(t, "acme/widgets", metadata.FullName)
	assert.Equal(t, "Widgets", metadata.Description)
	assert.Equal(t, "trunk", metadata.DefaultBranch)
	assert.Equal(t, 42, metadata.Stars)
	assert.Equal(t, []string{"go", "cli"}, metadata.Topics)
}

func TestRepositoryMetadata_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	}))
	defer server.Close()

	provider, err := NewGithubProvider(&GithubConfig{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = provider.RepositoryMetadata(context.Background(), "acme", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acme/missing")
}
