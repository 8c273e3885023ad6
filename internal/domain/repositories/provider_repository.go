package repositories

import (
	"context"

	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
)

// ProviderRepository abstracts the Git hosting service the workflow provisions against.
// Calls are synchronous and are never retried.
type ProviderRepository interface {
	// Name returns the provider identifier (e.g. "github").
	Name() string

	// Whoami returns the login of the session user.
	Whoami(ctx context.Context) (string, error)

	// OrgExists reports whether the organization exists and is visible to the session user.
	OrgExists(ctx context.Context, org string) (bool, error)

	// IsMember reports whether user is a member of org.
	IsMember(ctx context.Context, org, user string) (bool, error)

	// FindRepo returns the observed owner/name repository, or nil when it does not exist.
	FindRepo(ctx context.Context, owner entities.Identity, name string) (*entities.RepositoryRef, error)

	// CreateRepo creates name under owner with the given policy.
	CreateRepo(
		ctx context.Context,
		owner entities.Identity,
		name string,
		opts entities.CreateRepoOptions,
	) (*entities.RepositoryRef, error)

	// Authenticate checks that secret is a valid credential.
	Authenticate(ctx context.Context, secret string) (*entities.AuthResult, error)

	// ScopesOf returns the scopes advertised for secret.
	ScopesOf(ctx context.Context, secret string) (*entities.ScopeReport, error)
}
