//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pkgprovision/internal/domain/commands"
	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
	doubles "github.com/rios0rios0/pkgprovision/test/infrastructure/repositorydoubles"
)

func TestTokenValidatorValidate(t *testing.T) {
	t.Parallel()

	t.Run("should return a credential with every scope granted", func(t *testing.T) {
		t.Parallel()

		// given
		provider := &doubles.SpyProviderRepository{
			ValidSecrets:   map[string]string{"ghp_secret": "octocat"},
			Scopes:         []string{"write:packages", "read:packages", "repo"},
			ScopesReported: true,
		}

		// when
		credential, err := commands.NewTokenValidator(provider).Validate(context.Background(), "ghp_secret")

		// then
		require.NoError(t, err)
		assert.Equal(t, "octocat", credential.Login)
		assert.Equal(t, "ghp_secret", credential.Secret())
		assert.Empty(t, credential.Partition().MissingRequired)
	})

	t.Run("should succeed with missing required scopes", func(t *testing.T) {
		t.Parallel()

		// given
		provider := &doubles.SpyProviderRepository{
			ValidSecrets:   map[string]string{"ghp_secret": "octocat"},
			Scopes:         []string{"repo"},
			ScopesReported: true,
		}

		// when
		credential, err := commands.NewTokenValidator(provider).Validate(context.Background(), "ghp_secret")

		// then
		require.NoError(t, err)
		assert.ElementsMatch(t,
			[]string{entities.ScopeWritePackages, entities.ScopeReadPackages},
			credential.Partition().MissingRequired,
		)
	})

	t.Run("should succeed when the scopes are not reported", func(t *testing.T) {
		t.Parallel()

		// given
		provider := &doubles.SpyProviderRepository{ValidSecrets: map[string]string{"github_pat_x": "octocat"}}

		// when
		credential, err := commands.NewTokenValidator(provider).Validate(context.Background(), "github_pat_x")

		// then
		require.NoError(t, err)
		assert.False(t, credential.ScopesReported)
	})

	t.Run("should keep going when reading the scopes fails", func(t *testing.T) {
		t.Parallel()

		// given
		provider := &doubles.SpyProviderRepository{
			ValidSecrets: map[string]string{"ghp_secret": "octocat"},
			ScopesErr:    errors.New("timeout"),
		}

		// when
		credential, err := commands.NewTokenValidator(provider).Validate(context.Background(), "ghp_secret")

		// then
		require.NoError(t, err)
		assert.Empty(t, credential.GrantedScopes)
	})

	t.Run("should raise an authentication error for a rejected token", func(t *testing.T) {
		t.Parallel()

		// given
		provider := &doubles.SpyProviderRepository{ValidSecrets: map[string]string{}}

		// when
		_, err := commands.NewTokenValidator(provider).Validate(context.Background(), "ghp_wrong")

		// then
		require.ErrorIs(t, err, entities.ErrAuthentication)
		assert.NotContains(t, err.Error(), "ghp_wrong")
	})

	t.Run("should raise an authentication error for an empty token", func(t *testing.T) {
		t.Parallel()

		// given
		provider := &doubles.SpyProviderRepository{}

		// when
		_, err := commands.NewTokenValidator(provider).Validate(context.Background(), "   ")

		// then
		require.ErrorIs(t, err, entities.ErrAuthentication)
	})
}
