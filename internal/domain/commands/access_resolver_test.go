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

func TestAccessResolverResolve(t *testing.T) {
	t.Parallel()

	t.Run("should return the organization when it exists", func(t *testing.T) {
		t.Parallel()

		// given
		provider := &doubles.SpyProviderRepository{
			Login:         "octocat",
			Organizations: map[string]bool{"acme": true},
			Members:       map[string]bool{"acme/octocat": true},
		}
		confirmer := &doubles.ScriptedConfirmer{}

		// when
		identity, err := commands.NewAccessResolver(provider, confirmer).Resolve(context.Background(), "acme")

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.NewOrganizationIdentity("acme"), identity)
		assert.Empty(t, confirmer.Questions)
	})

	t.Run("should keep the organization when the caller is not a member", func(t *testing.T) {
		t.Parallel()

		// given
		provider := &doubles.SpyProviderRepository{
			Login:         "octocat",
			Organizations: map[string]bool{"acme": true},
		}

		// when
		identity, err := commands.NewAccessResolver(provider, &doubles.ScriptedConfirmer{}).
			Resolve(context.Background(), "acme")

		// then
		require.NoError(t, err)
		assert.True(t, identity.IsOrganization)
	})

	t.Run("should return the personal account when no organization is preferred", func(t *testing.T) {
		t.Parallel()

		// given
		provider := &doubles.SpyProviderRepository{Login: "octocat"}

		// when
		identity, err := commands.NewAccessResolver(provider, &doubles.ScriptedConfirmer{}).
			Resolve(context.Background(), "")

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.NewPersonalIdentity("octocat"), identity)
		assert.Empty(t, provider.OrgChecks)
	})

	t.Run("should fall back to the personal account when confirmed", func(t *testing.T) {
		t.Parallel()

		// given
		provider := &doubles.SpyProviderRepository{Login: "octocat"}
		confirmer := &doubles.ScriptedConfirmer{Answers: []bool{true}}

		// when
		identity, err := commands.NewAccessResolver(provider, confirmer).Resolve(context.Background(), "acme")

		// then
		require.NoError(t, err)
		assert.Equal(t, "octocat", identity.AccountName)
		assert.False(t, identity.IsOrganization)
		assert.Len(t, confirmer.Questions, 1)
	})

	t.Run("should raise a resolution error when the fallback is declined", func(t *testing.T) {
		t.Parallel()

		// given
		provider := &doubles.SpyProviderRepository{Login: "octocat"}
		confirmer := &doubles.ScriptedConfirmer{Answers: []bool{false}}

		// when
		_, err := commands.NewAccessResolver(provider, confirmer).Resolve(context.Background(), "acme")

		// then
		require.ErrorIs(t, err, entities.ErrResolution)
		var provisionErr *entities.ProvisionError
		require.ErrorAs(t, err, &provisionErr)
		assert.Equal(t, "organization", provisionErr.Field)
		assert.NotEmpty(t, provisionErr.Hint)
	})

	t.Run("should raise a resolution error when the caller is unknown", func(t *testing.T) {
		t.Parallel()

		// given
		provider := &doubles.SpyProviderRepository{WhoamiErr: errors.New("401")}

		// when
		_, err := commands.NewAccessResolver(provider, &doubles.ScriptedConfirmer{}).
			Resolve(context.Background(), "acme")

		// then
		require.ErrorIs(t, err, entities.ErrResolution)
		assert.Empty(t, provider.OrgChecks)
	})

	t.Run("should raise an authentication error when the session token is the rejected PAT", func(t *testing.T) {
		t.Parallel()

		// given
		provider := &doubles.SpyProviderRepository{WhoamiErr: errors.New("401 Bad credentials")}

		// when
		_, err := commands.NewAccessResolver(provider, &doubles.ScriptedConfirmer{}).
			WithSessionCredential(true).
			Resolve(context.Background(), "acme")

		// then
		require.ErrorIs(t, err, entities.ErrAuthentication)
		require.NotErrorIs(t, err, entities.ErrResolution)
		var provisionErr *entities.ProvisionError
		require.ErrorAs(t, err, &provisionErr)
		assert.Equal(t, "token", provisionErr.Field)
		assert.Empty(t, provider.OrgChecks)
	})

	t.Run("should raise a resolution error when the organization lookup fails", func(t *testing.T) {
		t.Parallel()

		// given
		provider := &doubles.SpyProviderRepository{Login: "octocat", OrgExistsErr: errors.New("boom")}

		// when
		_, err := commands.NewAccessResolver(provider, &doubles.ScriptedConfirmer{}).
			Resolve(context.Background(), "acme")

		// then
		require.ErrorIs(t, err, entities.ErrResolution)
	})
}
