package entities

import (
	gitforgeEntities "github.com/rios0rios0/gitforge/pkg/global/domain/entities"
)

// Repository is re-exported from gitforge.
type Repository = gitforgeEntities.Repository

// Visibility is the access level of a remote repository.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// RepositoryDescription is the fixed description given to repositories created by the workflow.
const RepositoryDescription = "GitHub Packages registry for the FlatBuffers Java bindings"

// RepositoryRef reflects the observed state of the destination repository.
type RepositoryRef struct {
	Repository

	Owner      Identity
	Exists     bool
	Visibility Visibility
}

// FullName returns "owner/name".
func (r RepositoryRef) FullName() string {
	return r.Owner.AccountName + "/" + r.Name
}

// CreateRepoOptions is the fixed policy applied when creating a repository.
type CreateRepoOptions struct {
	Visibility  Visibility
	Description string
	AutoInit    bool
}

// DefaultCreateRepoOptions returns the creation policy: private, fixed description, auto-initialized.
func DefaultCreateRepoOptions() CreateRepoOptions {
	return CreateRepoOptions{
		Visibility:  VisibilityPrivate,
		Description: RepositoryDescription,
		AutoInit:    true,
	}
}
