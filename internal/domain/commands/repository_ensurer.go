package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
	"github.com/rios0rios0/pkgprovision/internal/domain/repositories"
)

// RepositoryEnsurer guarantees the destination repository exists.
// It never deletes or modifies an existing repository.
type RepositoryEnsurer struct {
	provider  repositories.ProviderRepository
	confirmer repositories.Confirmer
}

// NewRepositoryEnsurer creates a RepositoryEnsurer.
func NewRepositoryEnsurer(
	provider repositories.ProviderRepository,
	confirmer repositories.Confirmer,
) *RepositoryEnsurer {
	return &RepositoryEnsurer{provider: provider, confirmer: confirmer}
}

// Ensure checks owner/name and creates it on confirmation. A declined creation
// returns a reference with Exists == false and no error.
func (it *RepositoryEnsurer) Ensure(
	ctx context.Context,
	owner entities.Identity,
	name string,
) (*entities.RepositoryRef, error) {
	if err := owner.Validate(); err != nil {
		return nil, entities.NewProvisionError(entities.ErrRepositoryCreation, "owner", "", err)
	}

	ref := &entities.RepositoryRef{Owner: owner}
	ref.Name = name
	ref.Organization = owner.AccountName
	ref.ProviderName = it.provider.Name()

	found, err := it.provider.FindRepo(ctx, owner, name)
	if err != nil {
		return nil, entities.NewProvisionError(
			entities.ErrRepositoryCreation, "repository", "",
			fmt.Errorf("checking %s: %w", ref.FullName(), err),
		)
	}
	if found != nil {
		logger.Infof("Repository %s already exists (%s)", found.FullName(), found.Visibility)
		found.Exists = true
		return found, nil
	}

	question := fmt.Sprintf("Repository %s does not exist. Create it as a private repository?", ref.FullName())
	if !it.confirmer.Confirm(question) {
		logger.Warnf("Repository %s was not created; publishing will fail until it exists", ref.FullName())
		return ref, nil
	}

	created, err := it.provider.CreateRepo(ctx, owner, name, entities.DefaultCreateRepoOptions())
	if err != nil {
		return nil, entities.NewProvisionError(
			entities.ErrRepositoryCreation, "repository",
			fmt.Sprintf("check that the session token may create repositories in %q", owner.AccountName),
			err,
		)
	}

	logger.Infof("Created repository %s (%s)", created.FullName(), created.Visibility)
	return created, nil
}
