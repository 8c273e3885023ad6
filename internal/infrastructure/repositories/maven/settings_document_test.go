//go:build unit

package maven_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
	"github.com/rios0rios0/pkgprovision/internal/infrastructure/repositories/maven"
	"github.com/rios0rios0/pkgprovision/test/domain/entitybuilders"
)

func provisionValues() entities.ProvisionValues {
	return entities.ProvisionValues{
		Identity:      entities.NewOrganizationIdentity("acme"),
		Credential:    entitybuilders.NewCredentialBuilder().WithSecret("ghp_secret").WithLogin("octocat").BuildCredential(),
		Repository:    "pkg-a",
		ServerID:      "github",
		RepositoryURL: "https://maven.pkg.github.com/acme/pkg-a",
	}
}

func TestRenderSettings(t *testing.T) {
	t.Parallel()

	t.Run("should render one server and one active profile with the same id", func(t *testing.T) {
		t.Parallel()

		// when
		data, err := maven.RenderSettings(provisionValues())

		// then
		require.NoError(t, err)
		doc := etree.NewDocument()
		require.NoError(t, doc.ReadFromBytes(data))
		root := doc.SelectElement("settings")
		require.NotNil(t, root)
		assert.Equal(t, "http://maven.apache.org/SETTINGS/1.0.0", root.SelectAttrValue("xmlns", ""))

		servers := root.FindElements("./servers/server")
		require.Len(t, servers, 1)
		assert.Equal(t, "github", servers[0].SelectElement("id").Text())
		assert.Equal(t, "octocat", servers[0].SelectElement("username").Text())
		assert.Equal(t, "ghp_secret", servers[0].SelectElement("password").Text())

		urls := root.FindElements("./profiles/profile/repositories/repository/url")
		require.Len(t, urls, 2)
		assert.Equal(t, "https://maven.pkg.github.com/acme/pkg-a", urls[1].Text())
		assert.Equal(t, "github", root.FindElement("./activeProfiles/activeProfile").Text())
	})

	t.Run("should escape markup characters in the secret", func(t *testing.T) {
		t.Parallel()

		// given
		values := provisionValues()
		values.Credential = entitybuilders.NewCredentialBuilder().WithSecret("a<b&c").BuildCredential()

		// when
		data, err := maven.RenderSettings(values)

		// then
		require.NoError(t, err)
		doc := etree.NewDocument()
		require.NoError(t, doc.ReadFromBytes(data))
		assert.Equal(t, "a<b&c", doc.FindElement("//password").Text())
	})

	t.Run("should refuse to render without a credential", func(t *testing.T) {
		t.Parallel()

		// given
		values := provisionValues()
		values.Credential = nil

		// when
		_, err := maven.RenderSettings(values)

		// then
		require.Error(t, err)
	})
}

func TestSettingsDocument(t *testing.T) {
	t.Parallel()

	t.Run("should overwrite an existing file and keep the previous one as backup", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entitybuilders.NewSettingsBuilder(t.TempDir()).BuildSettings()
		path := settings.Maven.SettingsPath
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte("<settings><mirrors/></settings>"), 0o600))
		document := maven.NewSettingsDocument(settings)

		// when
		result, err := document.Apply(provisionValues())

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.DocumentOverwritten, result.Action)
		backup, err := os.ReadFile(path + ".backup")
		require.NoError(t, err)
		assert.Equal(t, "<settings><mirrors/></settings>", string(backup))

		status, err := document.Inspect()
		require.NoError(t, err)
		assert.True(t, status.Configured)
	})

	t.Run("should report unchanged on the second run", func(t *testing.T) {
		t.Parallel()

		// given
		document := maven.NewSettingsDocument(entitybuilders.NewSettingsBuilder(t.TempDir()).BuildSettings())
		first, err := document.Apply(provisionValues())
		require.NoError(t, err)

		// when
		second, err := document.Apply(provisionValues())

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.DocumentCreated, first.Action)
		assert.Equal(t, entities.DocumentUnchanged, second.Action)
	})

	t.Run("should flag a settings file without the server", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entitybuilders.NewSettingsBuilder(t.TempDir()).BuildSettings()
		path := settings.Maven.SettingsPath
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte("<settings><servers/></settings>"), 0o600))

		// when
		status, err := maven.NewSettingsDocument(settings).Inspect()

		// then
		require.NoError(t, err)
		assert.True(t, status.Exists)
		assert.False(t, status.Configured)
	})
}
