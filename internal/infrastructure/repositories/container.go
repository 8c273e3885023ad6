package repositories

import (
	"go.uber.org/dig"

	ghRepo "github.com/rios0rios0/pkgprovision/internal/infrastructure/repositories/github"
	"github.com/rios0rios0/pkgprovision/internal/infrastructure/repositories/gitremote"
	gradleRepo "github.com/rios0rios0/pkgprovision/internal/infrastructure/repositories/gradle"
	mavenRepo "github.com/rios0rios0/pkgprovision/internal/infrastructure/repositories/maven"
	summaryRepo "github.com/rios0rios0/pkgprovision/internal/infrastructure/repositories/summary"
	"github.com/rios0rios0/pkgprovision/internal/infrastructure/repositories/terminal"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register provider registry with all provider factories
	if err := container.Provide(func() *ProviderRegistry {
		reg := NewProviderRegistry()
		reg.Register("github", ghRepo.NewGitHubProviderRepository)
		return reg
	}); err != nil {
		return err
	}

	// Register config documents in the order they are written
	if err := container.Provide(func() *DocumentRegistry {
		reg := NewDocumentRegistry()
		reg.Register(mavenRepo.NewSettingsDocument)
		reg.Register(gradleRepo.NewPropertiesDocument)
		reg.Register(mavenRepo.NewPomDocument)
		reg.Register(summaryRepo.NewEnvDocument)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(gitremote.NewGitOriginRepository); err != nil {
		return err
	}
	if err := container.Provide(terminal.NewPrompter); err != nil {
		return err
	}
	if err := container.Provide(terminal.NewConfirmer); err != nil {
		return err
	}

	return nil
}
