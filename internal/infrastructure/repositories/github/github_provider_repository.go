package github

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	gh "github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
	"github.com/rios0rios0/pkgprovision/internal/domain/repositories"
)

const (
	providerName = "github"
	scopesHeader = "X-OAuth-Scopes"
)

// GitHubProviderRepository implements repositories.ProviderRepository for GitHub.
type GitHubProviderRepository struct {
	baseURL string
	client  *gh.Client
}

// NewGitHubProviderRepository creates a GitHub provider authenticated with the session token.
// A non-empty BaseURL targets a GitHub Enterprise Server instance.
func NewGitHubProviderRepository(settings entities.ProviderSettings) (repositories.ProviderRepository, error) {
	client, err := newClient(settings.Token, settings.BaseURL)
	if err != nil {
		return nil, err
	}
	return &GitHubProviderRepository{
		baseURL: settings.BaseURL,
		client:  client,
	}, nil
}

func newClient(token, baseURL string) (*gh.Client, error) {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := gh.NewClient(oauth2.NewClient(context.Background(), source))
	if baseURL == "" {
		return client, nil
	}

	base := strings.TrimSuffix(baseURL, "/") + "/"
	enterprise, err := client.WithEnterpriseURLs(base, base+"upload/")
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub base URL %q: %w", baseURL, err)
	}
	return enterprise, nil
}

func (p *GitHubProviderRepository) Name() string { return providerName }

func (p *GitHubProviderRepository) Whoami(ctx context.Context) (string, error) {
	user, _, err := p.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to get the authenticated user: %w", err)
	}
	return user.GetLogin(), nil
}

func (p *GitHubProviderRepository) OrgExists(ctx context.Context, org string) (bool, error) {
	_, resp, err := p.client.Organizations.Get(ctx, org)
	if isNotFound(resp) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get organization %q: %w", org, err)
	}
	return true, nil
}

func (p *GitHubProviderRepository) IsMember(ctx context.Context, org, user string) (bool, error) {
	member, _, err := p.client.Organizations.IsMember(ctx, org, user)
	if err != nil {
		return false, fmt.Errorf("failed to check membership of %q in %q: %w", user, org, err)
	}
	return member, nil
}

func (p *GitHubProviderRepository) FindRepo(
	ctx context.Context,
	owner entities.Identity,
	name string,
) (*entities.RepositoryRef, error) {
	repo, resp, err := p.client.Repositories.Get(ctx, owner.AccountName, name)
	if isNotFound(resp) {
		return nil, nil //nolint:nilnil // absence is not an error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get repository %s/%s: %w", owner.AccountName, name, err)
	}
	return toRepositoryRef(owner, repo), nil
}

// CreateRepo creates the repository under the organization, or under the
// authenticated user for personal identities.
func (p *GitHubProviderRepository) CreateRepo(
	ctx context.Context,
	owner entities.Identity,
	name string,
	opts entities.CreateRepoOptions,
) (*entities.RepositoryRef, error) {
	org := ""
	if owner.IsOrganization {
		org = owner.AccountName
	}

	repo, _, err := p.client.Repositories.Create(ctx, org, &gh.Repository{
		Name:        gh.String(name),
		Description: gh.String(opts.Description),
		Private:     gh.Bool(opts.Visibility != entities.VisibilityPublic),
		AutoInit:    gh.Bool(opts.AutoInit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create repository %s/%s: %w", owner.AccountName, name, err)
	}

	return toRepositoryRef(owner, repo), nil
}

func (p *GitHubProviderRepository) Authenticate(ctx context.Context, secret string) (*entities.AuthResult, error) {
	client, err := newClient(secret, p.baseURL)
	if err != nil {
		return nil, err
	}

	user, resp, err := client.Users.Get(ctx, "")
	if resp != nil && resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("token rejected: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	return &entities.AuthResult{Login: user.GetLogin()}, nil
}

// ScopesOf reads the scope list GitHub returns as response metadata for classic tokens.
func (p *GitHubProviderRepository) ScopesOf(ctx context.Context, secret string) (*entities.ScopeReport, error) {
	client, err := newClient(secret, p.baseURL)
	if err != nil {
		return nil, err
	}

	_, resp, err := client.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to read token scopes: %w", err)
	}

	values := resp.Header.Values(scopesHeader)
	return &entities.ScopeReport{
		Scopes:   entities.ParseScopeHeader(strings.Join(values, ",")),
		Reported: len(values) > 0,
	}, nil
}

func toRepositoryRef(owner entities.Identity, repo *gh.Repository) *entities.RepositoryRef {
	visibility := entities.VisibilityPublic
	if repo.GetPrivate() {
		visibility = entities.VisibilityPrivate
	}

	defaultBranch := "main"
	if repo.DefaultBranch != nil {
		defaultBranch = *repo.DefaultBranch
	}

	ref := &entities.RepositoryRef{
		Owner:      owner,
		Exists:     true,
		Visibility: visibility,
	}
	ref.ID = strconv.FormatInt(repo.GetID(), 10)
	ref.Name = repo.GetName()
	ref.Organization = owner.AccountName
	ref.DefaultBranch = "refs/heads/" + defaultBranch
	ref.RemoteURL = repo.GetCloneURL()
	ref.SSHURL = repo.GetSSHURL()
	ref.ProviderName = providerName
	return ref
}

func isNotFound(resp *gh.Response) bool {
	return resp != nil && resp.StatusCode == http.StatusNotFound
}
