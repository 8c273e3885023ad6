package entities

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sethvargo/go-envconfig"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

const (
	DefaultProviderType   = "github"
	DefaultRepositoryName = "flatbuffers-java"
	DefaultServerID       = "github"
	DefaultRegistryURL    = "https://maven.pkg.github.com"
	DefaultSummaryPath    = ".github-packages.env"
)

// Settings is the top-level configuration for pkgprovision.
type Settings struct {
	Provider     ProviderSettings `yaml:"provider"`
	Organization string           `yaml:"organization" env:"PKGPROVISION_ORGANIZATION, overwrite"`
	Repository   string           `yaml:"repository"   env:"PKGPROVISION_REPOSITORY, overwrite"`
	Token        string           `yaml:"token"        env:"PKGPROVISION_TOKEN, overwrite"`
	Package      PackageSettings  `yaml:"package"`
	Maven        MavenSettings    `yaml:"maven"`
	Gradle       GradleSettings   `yaml:"gradle"`
	SummaryPath  string           `yaml:"summary_path" env:"PKGPROVISION_SUMMARY_PATH, overwrite"`
}

// ProviderSettings describes the Git hosting provider.
type ProviderSettings struct {
	Type    string `yaml:"type"     env:"PKGPROVISION_PROVIDER, overwrite"`
	Token   string `yaml:"token"    env:"PKGPROVISION_PROVIDER_TOKEN, overwrite"` // Inline, ${ENV_VAR}, or file path
	BaseURL string `yaml:"base_url" env:"PKGPROVISION_PROVIDER_BASE_URL, overwrite"`
}

// PackageSettings identifies the published artifact.
type PackageSettings struct {
	GroupID    string `yaml:"group_id"    env:"PKGPROVISION_GROUP_ID, overwrite"`
	ArtifactID string `yaml:"artifact_id" env:"PKGPROVISION_ARTIFACT_ID, overwrite"`
	Version    string `yaml:"version"     env:"PKGPROVISION_VERSION, overwrite"`
}

// MavenSettings locates the Maven documents.
type MavenSettings struct {
	SettingsPath string `yaml:"settings_path" env:"PKGPROVISION_MAVEN_SETTINGS, overwrite"`
	PomPath      string `yaml:"pom_path"      env:"PKGPROVISION_POM, overwrite"`
	ServerID     string `yaml:"server_id"     env:"PKGPROVISION_SERVER_ID, overwrite"`
	RegistryURL  string `yaml:"registry_url"  env:"PKGPROVISION_REGISTRY_URL, overwrite"`
}

// GradleSettings locates the Gradle properties document.
type GradleSettings struct {
	PropertiesPath string `yaml:"properties_path" env:"PKGPROVISION_GRADLE_PROPERTIES, overwrite"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings loads settings from path (optional, may be empty), applies
// environment overrides and fills in defaults.
func NewSettings(ctx context.Context, path string) (*Settings, error) {
	var settings Settings

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	}

	if err := envconfig.Process(ctx, &settings); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}

	settings.Token = ResolveToken(settings.Token)
	settings.Provider.Token = ResolveToken(settings.Provider.Token)

	if err := settings.applyDefaults(); err != nil {
		return nil, err
	}
	if err := settings.validate(); err != nil {
		return nil, err
	}

	return &settings, nil
}

func (s *Settings) applyDefaults() error {
	if s.Provider.Type == "" {
		s.Provider.Type = DefaultProviderType
	}
	if s.Repository == "" {
		s.Repository = DefaultRepositoryName
	}
	if s.Maven.ServerID == "" {
		s.Maven.ServerID = DefaultServerID
	}
	if s.Maven.RegistryURL == "" {
		s.Maven.RegistryURL = DefaultRegistryURL
	}
	if s.SummaryPath == "" {
		s.SummaryPath = DefaultSummaryPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil && (s.Maven.SettingsPath == "" || s.Gradle.PropertiesPath == "") {
		return fmt.Errorf("cannot determine home directory for default config paths: %w", err)
	}
	if s.Maven.SettingsPath == "" {
		s.Maven.SettingsPath = filepath.Join(homeDir, ".m2", "settings.xml")
	}
	if s.Gradle.PropertiesPath == "" {
		s.Gradle.PropertiesPath = filepath.Join(homeDir, ".gradle", "gradle.properties")
	}

	s.Maven.SettingsPath = expandHome(s.Maven.SettingsPath, homeDir)
	s.Maven.PomPath = expandHome(s.Maven.PomPath, homeDir)
	s.Gradle.PropertiesPath = expandHome(s.Gradle.PropertiesPath, homeDir)
	s.SummaryPath = expandHome(s.SummaryPath, homeDir)
	return nil
}

// validate checks for invalid configuration values.
func (s *Settings) validate() error {
	if s.Package.Version != "" && !semver.IsValid(normalizeVersion(s.Package.Version)) {
		return fmt.Errorf("package.version %q is not a semantic version", s.Package.Version)
	}
	if !strings.HasPrefix(s.Maven.RegistryURL, "https://") {
		return fmt.Errorf("maven.registry_url %q must be an https URL", s.Maven.RegistryURL)
	}
	return nil
}

// RepositoryURL returns the GitHub Packages Maven endpoint for owner/repository.
func (s *Settings) RepositoryURL(owner string) string {
	return strings.TrimSuffix(s.Maven.RegistryURL, "/") + "/" + owner + "/" + s.Repository
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".pkgprovision.yaml",
		".pkgprovision.yml",
		"pkgprovision.yaml",
		"pkgprovision.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ResolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func ResolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// ResolveSessionTokenFromEnv reads the GitHub CLI style token variables.
func ResolveSessionTokenFromEnv() string {
	if t := os.Getenv("GITHUB_TOKEN"); t != "" {
		return t
	}
	return os.Getenv("GH_TOKEN")
}

func expandHome(path, homeDir string) string {
	if homeDir == "" || !strings.HasPrefix(path, "~/") {
		return path
	}
	return filepath.Join(homeDir, path[2:])
}

func normalizeVersion(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
