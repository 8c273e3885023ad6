//go:build unit

package entities_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
)

func TestProvisionError(t *testing.T) {
	t.Parallel()

	t.Run("should match both the kind and the cause", func(t *testing.T) {
		t.Parallel()

		// given
		cause := errors.New("403 forbidden")

		// when
		err := entities.NewProvisionError(entities.ErrRepositoryCreation, "repository", "hint", cause)

		// then
		assert.ErrorIs(t, err, entities.ErrRepositoryCreation)
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, entities.ErrPersistence)
		assert.Equal(t, "repository creation failed (repository): 403 forbidden", err.Error())
	})

	t.Run("should render without field or cause", func(t *testing.T) {
		t.Parallel()

		// when
		err := entities.NewProvisionError(entities.ErrAuthentication, "", "", nil)

		// then
		assert.Equal(t, "authentication failed", err.Error())
		assert.ErrorIs(t, err, entities.ErrAuthentication)
	})
}

func TestIdentity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "acme (organization)", entities.NewOrganizationIdentity("acme").String())
	assert.Equal(t, "octocat (personal account)", entities.NewPersonalIdentity("octocat").String())
	assert.Error(t, entities.Identity{}.Validate())
}
