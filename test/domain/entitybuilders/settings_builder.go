//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"path/filepath"

	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// SettingsBuilder creates settings whose documents all live under one directory.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	dir          string
	organization string
	repository   string
	token        string
	pomPath      string
}

// NewSettingsBuilder creates a settings builder rooted at dir (usually t.TempDir()).
func NewSettingsBuilder(dir string) *SettingsBuilder {
	return &SettingsBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		dir:         dir,
		repository:  entities.DefaultRepositoryName,
	}
}

// WithOrganization sets the preferred organization.
func (b *SettingsBuilder) WithOrganization(org string) *SettingsBuilder {
	b.organization = org
	return b
}

// WithRepository sets the repository name.
func (b *SettingsBuilder) WithRepository(name string) *SettingsBuilder {
	b.repository = name
	return b
}

// WithToken sets the Personal Access Token.
func (b *SettingsBuilder) WithToken(token string) *SettingsBuilder {
	b.token = token
	return b
}

// WithPomPath sets the pom.xml path.
func (b *SettingsBuilder) WithPomPath(path string) *SettingsBuilder {
	b.pomPath = path
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	return &entities.Settings{
		Provider:     entities.ProviderSettings{Type: entities.DefaultProviderType, Token: "session-token"},
		Organization: b.organization,
		Repository:   b.repository,
		Token:        b.token,
		Maven: entities.MavenSettings{
			SettingsPath: filepath.Join(b.dir, ".m2", "settings.xml"),
			PomPath:      b.pomPath,
			ServerID:     entities.DefaultServerID,
			RegistryURL:  entities.DefaultRegistryURL,
		},
		Gradle:      entities.GradleSettings{PropertiesPath: filepath.Join(b.dir, ".gradle", "gradle.properties")},
		SummaryPath: filepath.Join(b.dir, entities.DefaultSummaryPath),
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.organization = ""
	b.repository = entities.DefaultRepositoryName
	b.token = ""
	b.pomPath = ""
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	return &SettingsBuilder{
		BaseBuilder:  b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		dir:          b.dir,
		organization: b.organization,
		repository:   b.repository,
		token:        b.token,
		pomPath:      b.pomPath,
	}
}
