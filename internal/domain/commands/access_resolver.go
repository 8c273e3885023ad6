package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
	"github.com/rios0rios0/pkgprovision/internal/domain/repositories"
)

// AccessResolver determines the account to operate against.
type AccessResolver struct {
	provider  repositories.ProviderRepository
	confirmer repositories.Confirmer

	// sessionIsCredential is set when the session token is the PAT being provisioned,
	// so a failed whoami means the PAT itself was rejected.
	sessionIsCredential bool
}

// NewAccessResolver creates an AccessResolver.
func NewAccessResolver(
	provider repositories.ProviderRepository,
	confirmer repositories.Confirmer,
) *AccessResolver {
	return &AccessResolver{provider: provider, confirmer: confirmer}
}

// WithSessionCredential marks the session token as the PAT under validation.
func (it *AccessResolver) WithSessionCredential(isCredential bool) *AccessResolver {
	it.sessionIsCredential = isCredential
	return it
}

// Resolve returns the organization identity when preferredOrg is usable, or the
// caller's personal identity when the operator accepts the fallback.
func (it *AccessResolver) Resolve(ctx context.Context, preferredOrg string) (entities.Identity, error) {
	user, err := it.provider.Whoami(ctx)
	if err != nil && it.sessionIsCredential {
		return entities.Identity{}, entities.NewProvisionError(entities.ErrAuthentication, "token", tokenHint, err)
	}
	if err != nil {
		return entities.Identity{}, entities.NewProvisionError(
			entities.ErrResolution, "caller",
			"check that the session token is valid (GITHUB_TOKEN, GH_TOKEN or provider.token)", err,
		)
	}
	if user == "" {
		return entities.Identity{}, entities.NewProvisionError(
			entities.ErrResolution, "caller", "the provider returned an empty login", nil,
		)
	}
	logger.Infof("Authenticated as %q", user)

	if preferredOrg == "" || preferredOrg == user {
		return entities.NewPersonalIdentity(user), nil
	}

	exists, err := it.provider.OrgExists(ctx, preferredOrg)
	if err != nil {
		return entities.Identity{}, entities.NewProvisionError(
			entities.ErrResolution, "organization", "", fmt.Errorf("checking %q: %w", preferredOrg, err),
		)
	}

	if exists {
		member, memberErr := it.provider.IsMember(ctx, preferredOrg, user)
		switch {
		case memberErr != nil:
			logger.Warnf("Could not check membership of %q in %q: %v", user, preferredOrg, memberErr)
		case !member:
			logger.Warnf(
				"%q is not a public or private member of %q; access may still be granted through a team",
				user, preferredOrg,
			)
		default:
			logger.Infof("%q is a member of %q", user, preferredOrg)
		}
		return entities.NewOrganizationIdentity(preferredOrg), nil
	}

	logger.Warnf("Organization %q does not exist or is not visible to %q", preferredOrg, user)
	question := fmt.Sprintf("Use your personal account %q instead of %q?", user, preferredOrg)
	if !it.confirmer.Confirm(question) {
		return entities.Identity{}, entities.NewProvisionError(
			entities.ErrResolution, "organization",
			fmt.Sprintf("create the organization %q or ask an owner to invite %q", preferredOrg, user), nil,
		)
	}

	logger.Infof("Falling back to personal account %q", user)
	return entities.NewPersonalIdentity(user), nil
}
