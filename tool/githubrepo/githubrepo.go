// Package githubrepo implements the remote-repository capability group:
// search, listRepos and getFile, delegating to a Provider. The shipped
// RESTProvider talks to the GitHub REST API; StubProvider keeps the group
// usable offline. Provider failures are soft-failed at the registry boundary
// and never propagate to the orchestrator.
package githubrepo

import (
	"context"
	"fmt"
	"strings"

	gogithub "github.com/google/go-github/v66/github"

	"roundtable/tool"
)

// Provider is the boundary to the remote repository service. All methods
// return text meant for a conversational agent.
type Provider interface {
	Search(ctx context.Context, query string) (string, error)
	ListRepos(ctx context.Context, username string) (string, error)
	GetFile(ctx context.Context, repo, path, branch string) (string, error)
}

// StubProvider returns canned placeholder text without making network calls.
// Useful for demos and tests where no credentials are available.
type StubProvider struct{}

// Search implements Provider.
func (StubProvider) Search(_ context.Context, query string) (string, error) {
	return fmt.Sprintf("GitHub search results for '%s': remote provider not configured", query), nil
}

// ListRepos implements Provider.
func (StubProvider) ListRepos(_ context.Context, username string) (string, error) {
	if username != "" {
		return fmt.Sprintf("Listing repositories for user '%s': remote provider not configured", username), nil
	}
	return "Listing your repositories: remote provider not configured", nil
}

// GetFile implements Provider.
func (StubProvider) GetFile(_ context.Context, repo, path, branch string) (string, error) {
	return fmt.Sprintf("Getting file '%s' from repository '%s' (branch: %s): remote provider not configured", path, repo, branch), nil
}

// RESTProvider delegates to the GitHub REST API.
type RESTProvider struct {
	client *gogithub.Client
}

// NewRESTProvider builds a RESTProvider. An empty token yields an
// unauthenticated client subject to the public rate limits.
func NewRESTProvider(token string) *RESTProvider {
	client := gogithub.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &RESTProvider{client: client}
}

// NewRESTProviderFromClient wraps an existing client, e.g. one with a custom
// transport for testing.
func NewRESTProviderFromClient(client *gogithub.Client) *RESTProvider {
	return &RESTProvider{client: client}
}

// Search implements Provider via the repository search endpoint.
func (p *RESTProvider) Search(ctx context.Context, query string) (string, error) {
	res, _, err := p.client.Search.Repositories(ctx, query, &gogithub.SearchOptions{
		ListOptions: gogithub.ListOptions{PerPage: 10},
	})
	if err != nil {
		return "", fmt.Errorf("github search: %w", err)
	}
	if len(res.Repositories) == 0 {
		return fmt.Sprintf("No repositories found for '%s'", query), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "GitHub search results for '%s':\n", query)
	for _, r := range res.Repositories {
		fmt.Fprintf(&b, "- %s (%d stars): %s\n", r.GetFullName(), r.GetStargazersCount(), r.GetDescription())
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// ListRepos implements Provider. An empty username lists the authenticated
// user's repositories.
func (p *RESTProvider) ListRepos(ctx context.Context, username string) (string, error) {
	var (
		repos []*gogithub.Repository
		err   error
	)
	if username == "" {
		repos, _, err = p.client.Repositories.ListByAuthenticatedUser(ctx, nil)
	} else {
		repos, _, err = p.client.Repositories.ListByUser(ctx, username, nil)
	}
	if err != nil {
		return "", fmt.Errorf("github list repos: %w", err)
	}
	if len(repos) == 0 {
		return "No repositories found", nil
	}
	names := make([]string, len(repos))
	for i, r := range repos {
		names[i] = r.GetFullName()
	}
	return fmt.Sprintf("Repositories: %s", strings.Join(names, ", ")), nil
}

// GetFile implements Provider. repo takes the "owner/name" form.
func (p *RESTProvider) GetFile(ctx context.Context, repo, path, branch string) (string, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok {
		return fmt.Sprintf("Invalid repository %q, expected owner/name", repo), nil
	}
	fc, _, _, err := p.client.Repositories.GetContents(ctx, owner, name, path, &gogithub.RepositoryContentGetOptions{Ref: branch})
	if err != nil {
		return "", fmt.Errorf("github get file: %w", err)
	}
	if fc == nil {
		return fmt.Sprintf("'%s' in repository '%s' is not a file", path, repo), nil
	}
	content, err := fc.GetContent()
	if err != nil {
		return "", fmt.Errorf("github decode file: %w", err)
	}
	return content, nil
}

// Tools returns the remote-repository capability group bound to a provider,
// in fixed order.
func Tools(p Provider) []tool.Tool {
	return []tool.Tool{
		tool.NewFunc(
			"search",
			"search(query): Search GitHub repositories",
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{"type": "string", "description": "Search query"},
				},
				"required": []string{"query"},
			},
			func(ctx context.Context, args map[string]any) (string, error) {
				return p.Search(ctx, tool.StringArg(args, "query", ""))
			},
		),
		tool.NewFunc(
			"listRepos",
			"listRepos(username): List GitHub repositories for a user, or your own when omitted",
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"username": map[string]any{"type": "string", "description": "GitHub user or organization, optional"},
				},
			},
			func(ctx context.Context, args map[string]any) (string, error) {
				return p.ListRepos(ctx, tool.StringArg(args, "username", ""))
			},
		),
		tool.NewFunc(
			"getFile",
			"getFile(repo, path, branch): Get file contents from a GitHub repository",
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"repo":   map[string]any{"type": "string", "description": "Repository in owner/name form"},
					"path":   map[string]any{"type": "string", "description": "File path inside the repository"},
					"branch": map[string]any{"type": "string", "description": "Branch name, defaults to main"},
				},
				"required": []string{"repo", "path"},
			},
			func(ctx context.Context, args map[string]any) (string, error) {
				return p.GetFile(ctx,
					tool.StringArg(args, "repo", ""),
					tool.StringArg(args, "path", ""),
					tool.StringArg(args, "branch", "main"),
				)
			},
		),
	}
}
