//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
	"github.com/rios0rios0/pkgprovision/internal/domain/repositories"
)

// CreateRepoCall records one CreateRepo invocation.
type CreateRepoCall struct {
	Owner   entities.Identity
	Name    string
	Options entities.CreateRepoOptions
}

// SpyProviderRepository implements repositories.ProviderRepository as a configurable spy.
// Configure the response fields for the methods your test exercises,
// then inspect the call-tracking fields to verify behavior.
type SpyProviderRepository struct {
	// --- Whoami ---
	Login     string
	WhoamiErr error

	// --- OrgExists ---
	Organizations map[string]bool
	OrgExistsErr  error
	OrgChecks     []string

	// --- IsMember ---
	Members     map[string]bool // keyed by "org/user"
	IsMemberErr error

	// --- FindRepo ---
	ExistingRepos map[string]bool // keyed by "owner/name", private unless listed in PublicRepos
	PublicRepos   map[string]bool
	FindRepoErr   error
	FindRepoCalls []string

	// --- CreateRepo ---
	CreateRepoErr   error
	CreateRepoCalls []CreateRepoCall

	// --- Authenticate ---
	ValidSecrets    map[string]string // secret -> login
	AuthenticateErr error

	// --- ScopesOf ---
	Scopes         []string
	ScopesReported bool
	ScopesErr      error
}

var _ repositories.ProviderRepository = (*SpyProviderRepository)(nil)

func (p *SpyProviderRepository) Name() string { return "github" }

func (p *SpyProviderRepository) Whoami(_ context.Context) (string, error) {
	return p.Login, p.WhoamiErr
}

func (p *SpyProviderRepository) OrgExists(_ context.Context, org string) (bool, error) {
	p.OrgChecks = append(p.OrgChecks, org)
	if p.OrgExistsErr != nil {
		return false, p.OrgExistsErr
	}
	return p.Organizations[org], nil
}

func (p *SpyProviderRepository) IsMember(_ context.Context, org, user string) (bool, error) {
	if p.IsMemberErr != nil {
		return false, p.IsMemberErr
	}
	return p.Members[org+"/"+user], nil
}

func (p *SpyProviderRepository) FindRepo(
	_ context.Context,
	owner entities.Identity,
	name string,
) (*entities.RepositoryRef, error) {
	key := owner.AccountName + "/" + name
	p.FindRepoCalls = append(p.FindRepoCalls, key)
	if p.FindRepoErr != nil {
		return nil, p.FindRepoErr
	}
	if !p.ExistingRepos[key] {
		return nil, nil //nolint:nilnil // absent repository
	}

	ref := &entities.RepositoryRef{Owner: owner, Exists: true, Visibility: entities.VisibilityPrivate}
	if p.PublicRepos[key] {
		ref.Visibility = entities.VisibilityPublic
	}
	ref.Name = name
	ref.Organization = owner.AccountName
	ref.ProviderName = p.Name()
	return ref, nil
}

func (p *SpyProviderRepository) CreateRepo(
	_ context.Context,
	owner entities.Identity,
	name string,
	opts entities.CreateRepoOptions,
) (*entities.RepositoryRef, error) {
	p.CreateRepoCalls = append(p.CreateRepoCalls, CreateRepoCall{Owner: owner, Name: name, Options: opts})
	if p.CreateRepoErr != nil {
		return nil, p.CreateRepoErr
	}

	if p.ExistingRepos == nil {
		p.ExistingRepos = make(map[string]bool)
	}
	p.ExistingRepos[owner.AccountName+"/"+name] = true

	ref := &entities.RepositoryRef{Owner: owner, Exists: true, Visibility: opts.Visibility}
	ref.Name = name
	ref.Organization = owner.AccountName
	ref.ProviderName = p.Name()
	return ref, nil
}

func (p *SpyProviderRepository) Authenticate(_ context.Context, secret string) (*entities.AuthResult, error) {
	if p.AuthenticateErr != nil {
		return nil, p.AuthenticateErr
	}
	login, ok := p.ValidSecrets[secret]
	if !ok {
		return nil, fmt.Errorf("token rejected")
	}
	return &entities.AuthResult{Login: login}, nil
}

func (p *SpyProviderRepository) ScopesOf(_ context.Context, _ string) (*entities.ScopeReport, error) {
	if p.ScopesErr != nil {
		return nil, p.ScopesErr
	}
	return &entities.ScopeReport{Scopes: p.Scopes, Reported: p.ScopesReported}, nil
}
