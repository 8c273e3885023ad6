//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

const defaultSecret = "ghp_testtoken1234567890"

// CredentialBuilder helps create test credentials with a fluent interface.
type CredentialBuilder struct {
	*testkit.BaseBuilder
	secret   string
	login    string
	scopes   []string
	reported bool
}

// NewCredentialBuilder creates a credential with every required and optional scope.
func NewCredentialBuilder() *CredentialBuilder {
	return &CredentialBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		secret:      defaultSecret,
		login:       "octocat",
		scopes:      append(entities.RequiredScopes(), entities.OptionalScopes()...),
		reported:    true,
	}
}

// WithSecret sets the raw token.
func (b *CredentialBuilder) WithSecret(secret string) *CredentialBuilder {
	b.secret = secret
	return b
}

// WithLogin sets the login the token authenticates as.
func (b *CredentialBuilder) WithLogin(login string) *CredentialBuilder {
	b.login = login
	return b
}

// WithScopes sets the granted scopes.
func (b *CredentialBuilder) WithScopes(scopes ...string) *CredentialBuilder {
	b.scopes = scopes
	b.reported = true
	return b
}

// WithoutScopeReport simulates a fine-grained token.
func (b *CredentialBuilder) WithoutScopeReport() *CredentialBuilder {
	b.scopes = nil
	b.reported = false
	return b
}

// Build creates the credential (satisfies testkit.Builder interface).
func (b *CredentialBuilder) Build() interface{} {
	return b.BuildCredential()
}

// BuildCredential creates the credential with a concrete return type.
func (b *CredentialBuilder) BuildCredential() *entities.Credential {
	return entities.NewCredential(b.secret, b.login, entities.ScopeReport{
		Scopes:   b.scopes,
		Reported: b.reported,
	})
}

// Reset clears the builder state, allowing it to be reused.
func (b *CredentialBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.secret = defaultSecret
	b.login = "octocat"
	b.scopes = append(entities.RequiredScopes(), entities.OptionalScopes()...)
	b.reported = true
	return b
}

// Clone creates a deep copy of the CredentialBuilder.
func (b *CredentialBuilder) Clone() testkit.Builder {
	return &CredentialBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		secret:      b.secret,
		login:       b.login,
		scopes:      append([]string(nil), b.scopes...),
		reported:    b.reported,
	}
}
