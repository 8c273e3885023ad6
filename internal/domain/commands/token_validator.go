package commands

import (
	"context"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
	"github.com/rios0rios0/pkgprovision/internal/domain/repositories"
)

const tokenHint = "create a classic Personal Access Token with write:packages and read:packages"

// TokenValidator authenticates a Personal Access Token and reports its scopes.
// Missing scopes are warnings: the workflow persists what it is given and lets
// the publish step fail loudly if the token is really insufficient.
type TokenValidator struct {
	provider repositories.ProviderRepository
}

// NewTokenValidator creates a TokenValidator.
func NewTokenValidator(provider repositories.ProviderRepository) *TokenValidator {
	return &TokenValidator{provider: provider}
}

// Validate returns the credential for secret, or an authentication error.
func (it *TokenValidator) Validate(ctx context.Context, secret string) (*entities.Credential, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, entities.NewProvisionError(entities.ErrAuthentication, "token", tokenHint, nil)
	}

	auth, err := it.provider.Authenticate(ctx, secret)
	if err != nil {
		return nil, entities.NewProvisionError(entities.ErrAuthentication, "token", tokenHint, err)
	}

	report, err := it.provider.ScopesOf(ctx, secret)
	if err != nil {
		logger.Warnf("Could not read the scopes of the token: %v", err)
		report = &entities.ScopeReport{}
	}

	credential := entities.NewCredential(secret, auth.Login, *report)
	logger.Infof("Token %s authenticates as %q", credential.Redacted(), credential.Login)

	if !credential.ScopesReported {
		logger.Warn("The token does not advertise classic scopes (fine-grained token?); skipping scope checks")
		return credential, nil
	}

	logScopePartition(credential.Partition())
	return credential, nil
}

func logScopePartition(partition entities.ScopePartition) {
	for _, scope := range partition.PresentRequired {
		logger.Infof("Scope %q granted", scope)
	}
	for _, scope := range partition.MissingRequired {
		logger.Warnf("Scope %q is missing; publishing or consuming packages will likely fail (grant %s)",
			scope, scope)
	}
	for _, scope := range partition.MissingOptional {
		logger.Infof("Optional scope %q is not granted", scope)
	}
	if partition.Complete() {
		logger.Info("All expected scopes are granted")
	}
}

// scopeSummary renders the scope state of a credential for the final report.
func scopeSummary(credential *entities.Credential) string {
	if !credential.ScopesReported {
		return "scopes not reported"
	}
	partition := credential.Partition()
	if len(partition.MissingRequired) == 0 {
		return "all required scopes granted"
	}
	return fmt.Sprintf("missing %s", strings.Join(partition.MissingRequired, ", "))
}
