//go:build unit

package commands_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pkgprovision/internal/domain/commands"
	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
	"github.com/rios0rios0/pkgprovision/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/pkgprovision/internal/infrastructure/repositories"
	"github.com/rios0rios0/pkgprovision/internal/infrastructure/repositories/gradle"
	"github.com/rios0rios0/pkgprovision/internal/infrastructure/repositories/maven"
	"github.com/rios0rios0/pkgprovision/internal/infrastructure/repositories/summary"
	"github.com/rios0rios0/pkgprovision/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/pkgprovision/test/infrastructure/repositorydoubles"
)

const testSecret = "ghp_abcdefghijklmnop"

func newRegistries(spy *doubles.SpyProviderRepository) (*infraRepos.ProviderRegistry, *infraRepos.DocumentRegistry) {
	providerRegistry := infraRepos.NewProviderRegistry()
	providerRegistry.Register("github", func(_ entities.ProviderSettings) (repositories.ProviderRepository, error) {
		return spy, nil
	})

	documentRegistry := infraRepos.NewDocumentRegistry()
	documentRegistry.Register(maven.NewSettingsDocument)
	documentRegistry.Register(gradle.NewPropertiesDocument)
	documentRegistry.Register(maven.NewPomDocument)
	documentRegistry.Register(summary.NewEnvDocument)
	return providerRegistry, documentRegistry
}

func newAcmeProvider() *doubles.SpyProviderRepository {
	return &doubles.SpyProviderRepository{
		Login:          "octocat",
		Organizations:  map[string]bool{"acme": true},
		Members:        map[string]bool{"acme/octocat": true},
		ValidSecrets:   map[string]string{testSecret: "octocat"},
		Scopes:         []string{"write:packages", "read:packages", "repo"},
		ScopesReported: true,
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestProvisionCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should create the repository and write every document", func(t *testing.T) {
		t.Parallel()

		// given
		spy := newAcmeProvider()
		providerRegistry, documentRegistry := newRegistries(spy)
		confirmer := &doubles.ScriptedConfirmer{Answers: []bool{true}}
		cmd := commands.NewProvisionCommand(providerRegistry, documentRegistry, nil, confirmer)
		settings := entitybuilders.NewSettingsBuilder(t.TempDir()).
			WithOrganization("acme").WithRepository("pkg-a").BuildSettings()

		// when
		report, err := cmd.Execute(context.Background(), settings, commands.ProvisionOptions{Token: testSecret})

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.NewOrganizationIdentity("acme"), report.Identity)
		assert.True(t, report.Repository.Exists)
		assert.Equal(t, entities.VisibilityPrivate, report.Repository.Visibility)
		require.Len(t, spy.CreateRepoCalls, 1)
		assert.True(t, spy.CreateRepoCalls[0].Options.AutoInit)

		require.Len(t, report.Documents, 3)
		for _, doc := range report.Documents {
			assert.Equal(t, entities.DocumentCreated, doc.Action, doc.Name)
			assert.Empty(t, doc.BackupPath, doc.Name)
		}
		assert.Contains(t, readFile(t, settings.Maven.SettingsPath), "https://maven.pkg.github.com/acme/pkg-a")
		assert.Contains(t, readFile(t, settings.Gradle.PropertiesPath), "gpr.key="+testSecret)
		assert.NotContains(t, readFile(t, settings.SummaryPath), testSecret)
	})

	t.Run("should stop before any repository call when the fallback is declined", func(t *testing.T) {
		t.Parallel()

		// given
		spy := newAcmeProvider()
		spy.Organizations = map[string]bool{}
		providerRegistry, documentRegistry := newRegistries(spy)
		confirmer := &doubles.ScriptedConfirmer{Answers: []bool{false}}
		cmd := commands.NewProvisionCommand(providerRegistry, documentRegistry, nil, confirmer)
		settings := entitybuilders.NewSettingsBuilder(t.TempDir()).WithOrganization("acme").BuildSettings()

		// when
		report, err := cmd.Execute(context.Background(), settings, commands.ProvisionOptions{Token: testSecret})

		// then
		require.ErrorIs(t, err, entities.ErrResolution)
		assert.Nil(t, report)
		assert.Empty(t, spy.FindRepoCalls)
		assert.Empty(t, spy.CreateRepoCalls)
		assert.NoFileExists(t, settings.Maven.SettingsPath)
		assert.NoFileExists(t, settings.Gradle.PropertiesPath)
	})

	t.Run("should write the documents when the token misses the package scopes", func(t *testing.T) {
		t.Parallel()

		// given
		spy := newAcmeProvider()
		spy.ExistingRepos = map[string]bool{"acme/" + entities.DefaultRepositoryName: true}
		spy.Scopes = []string{"repo"}
		providerRegistry, documentRegistry := newRegistries(spy)
		cmd := commands.NewProvisionCommand(providerRegistry, documentRegistry, nil, &doubles.ScriptedConfirmer{})
		settings := entitybuilders.NewSettingsBuilder(t.TempDir()).WithOrganization("acme").BuildSettings()

		// when
		report, err := cmd.Execute(context.Background(), settings, commands.ProvisionOptions{Token: testSecret})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"repo"}, report.Credential.GrantedScopes)
		assert.Contains(t, readFile(t, settings.Maven.SettingsPath), "<password>"+testSecret+"</password>")
		assert.Contains(t, readFile(t, settings.Gradle.PropertiesPath), "gpr.user=octocat")
	})

	t.Run("should converge to the same files when run twice", func(t *testing.T) {
		t.Parallel()

		// given
		spy := newAcmeProvider()
		providerRegistry, documentRegistry := newRegistries(spy)
		cmd := commands.NewProvisionCommand(
			providerRegistry, documentRegistry, nil, &doubles.ScriptedConfirmer{Default: true},
		)
		settings := entitybuilders.NewSettingsBuilder(t.TempDir()).WithOrganization("acme").BuildSettings()
		opts := commands.ProvisionOptions{Token: testSecret}

		_, err := cmd.Execute(context.Background(), settings, opts)
		require.NoError(t, err)
		firstSettings := readFile(t, settings.Maven.SettingsPath)
		firstProperties := readFile(t, settings.Gradle.PropertiesPath)

		// when
		report, err := cmd.Execute(context.Background(), settings, opts)

		// then
		require.NoError(t, err)
		assert.Len(t, spy.CreateRepoCalls, 1)
		assert.Equal(t, firstSettings, readFile(t, settings.Maven.SettingsPath))
		assert.Equal(t, firstProperties, readFile(t, settings.Gradle.PropertiesPath))
		for _, doc := range report.Documents {
			assert.Equal(t, entities.DocumentUnchanged, doc.Action, doc.Name)
		}
	})

	t.Run("should keep unrelated properties and back up both documents", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		settings := entitybuilders.NewSettingsBuilder(dir).WithOrganization("acme").BuildSettings()
		require.NoError(t, os.MkdirAll(filepath.Dir(settings.Gradle.PropertiesPath), 0o700))
		require.NoError(t, os.MkdirAll(filepath.Dir(settings.Maven.SettingsPath), 0o700))
		require.NoError(t, os.WriteFile(settings.Gradle.PropertiesPath, []byte("foo=bar\n"), 0o600))
		require.NoError(t, os.WriteFile(settings.Maven.SettingsPath, []byte("<settings/>\n"), 0o600))

		spy := newAcmeProvider()
		spy.ExistingRepos = map[string]bool{"acme/" + entities.DefaultRepositoryName: true}
		providerRegistry, documentRegistry := newRegistries(spy)
		cmd := commands.NewProvisionCommand(providerRegistry, documentRegistry, nil, &doubles.ScriptedConfirmer{})

		// when
		_, err := cmd.Execute(context.Background(), settings, commands.ProvisionOptions{Token: testSecret})

		// then
		require.NoError(t, err)
		properties := readFile(t, settings.Gradle.PropertiesPath)
		assert.Contains(t, properties, "foo=bar\n")
		assert.Contains(t, properties, "gpr.key="+testSecret)
		assert.Equal(t, "foo=bar\n", readFile(t, settings.Gradle.PropertiesPath+".backup"))
		assert.Equal(t, "<settings/>\n", readFile(t, settings.Maven.SettingsPath+".backup"))
	})

	t.Run("should detect the organization from the origin remote", func(t *testing.T) {
		t.Parallel()

		// given
		spy := newAcmeProvider()
		spy.ExistingRepos = map[string]bool{"acme/" + entities.DefaultRepositoryName: true}
		providerRegistry, documentRegistry := newRegistries(spy)
		origin := &doubles.StubOriginRepository{Owner: "acme"}
		cmd := commands.NewProvisionCommand(providerRegistry, documentRegistry, origin, &doubles.ScriptedConfirmer{})
		settings := entitybuilders.NewSettingsBuilder(t.TempDir()).BuildSettings()

		// when
		report, err := cmd.Execute(context.Background(), settings,
			commands.ProvisionOptions{Token: testSecret, WorkDir: "."})

		// then
		require.NoError(t, err)
		assert.Equal(t, "acme", report.Identity.AccountName)
		assert.Equal(t, []string{"."}, origin.Dirs)
	})

	t.Run("should confirm everything when AssumeYes is set", func(t *testing.T) {
		t.Parallel()

		// given
		spy := newAcmeProvider()
		providerRegistry, documentRegistry := newRegistries(spy)
		confirmer := &doubles.ScriptedConfirmer{Default: false}
		cmd := commands.NewProvisionCommand(providerRegistry, documentRegistry, nil, confirmer)
		settings := entitybuilders.NewSettingsBuilder(t.TempDir()).WithOrganization("acme").BuildSettings()

		// when
		_, err := cmd.Execute(context.Background(), settings,
			commands.ProvisionOptions{Token: testSecret, AssumeYes: true})

		// then
		require.NoError(t, err)
		assert.Len(t, spy.CreateRepoCalls, 1)
		assert.Empty(t, confirmer.Questions)
	})

	t.Run("should raise an authentication error for a rejected token", func(t *testing.T) {
		t.Parallel()

		// given
		spy := newAcmeProvider()
		spy.ExistingRepos = map[string]bool{"acme/" + entities.DefaultRepositoryName: true}
		providerRegistry, documentRegistry := newRegistries(spy)
		cmd := commands.NewProvisionCommand(providerRegistry, documentRegistry, nil, &doubles.ScriptedConfirmer{})
		settings := entitybuilders.NewSettingsBuilder(t.TempDir()).WithOrganization("acme").BuildSettings()

		// when
		_, err := cmd.Execute(context.Background(), settings, commands.ProvisionOptions{Token: "ghp_wrong"})

		// then
		require.ErrorIs(t, err, entities.ErrAuthentication)
		assert.NoFileExists(t, settings.Maven.SettingsPath)
	})
}

// newSessionCheckingRegistry rejects the session token unless it is one of the spy's valid secrets.
func newSessionCheckingRegistry(spy *doubles.SpyProviderRepository) *infraRepos.ProviderRegistry {
	registry := infraRepos.NewProviderRegistry()
	registry.Register("github", func(settings entities.ProviderSettings) (repositories.ProviderRepository, error) {
		if _, ok := spy.ValidSecrets[settings.Token]; !ok {
			spy.WhoamiErr = errors.New("401 Bad credentials")
		}
		return spy, nil
	})
	return registry
}

//nolint:paralleltest // uses t.Setenv
func TestProvisionCommandWithoutSessionToken(t *testing.T) {
	t.Run("should raise an authentication error when the PAT is rejected", func(t *testing.T) {
		// given
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("GH_TOKEN", "")
		spy := newAcmeProvider()
		_, documentRegistry := newRegistries(spy)
		cmd := commands.NewProvisionCommand(
			newSessionCheckingRegistry(spy), documentRegistry, nil, &doubles.ScriptedConfirmer{},
		)
		settings := entitybuilders.NewSettingsBuilder(t.TempDir()).WithOrganization("acme").BuildSettings()
		settings.Provider.Token = ""

		// when
		_, err := cmd.Execute(context.Background(), settings, commands.ProvisionOptions{Token: "ghp_bad"})

		// then
		require.ErrorIs(t, err, entities.ErrAuthentication)
		require.NotErrorIs(t, err, entities.ErrResolution)
		var provisionErr *entities.ProvisionError
		require.ErrorAs(t, err, &provisionErr)
		assert.Equal(t, "token", provisionErr.Field)
		assert.Empty(t, spy.OrgChecks)
		assert.NoFileExists(t, settings.Maven.SettingsPath)
	})

	t.Run("should provision with the PAT as session token when it is valid", func(t *testing.T) {
		// given
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("GH_TOKEN", "")
		spy := newAcmeProvider()
		spy.ExistingRepos = map[string]bool{"acme/" + entities.DefaultRepositoryName: true}
		_, documentRegistry := newRegistries(spy)
		cmd := commands.NewProvisionCommand(
			newSessionCheckingRegistry(spy), documentRegistry, nil, &doubles.ScriptedConfirmer{},
		)
		settings := entitybuilders.NewSettingsBuilder(t.TempDir()).WithOrganization("acme").BuildSettings()
		settings.Provider.Token = ""

		// when
		report, err := cmd.Execute(context.Background(), settings, commands.ProvisionOptions{Token: testSecret})

		// then
		require.NoError(t, err)
		assert.Equal(t, "acme", report.Identity.AccountName)
	})
}
