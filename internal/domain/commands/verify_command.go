package commands

import (
	"context"
	"errors"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
	"github.com/rios0rios0/pkgprovision/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/pkgprovision/internal/infrastructure/repositories"
)

// Verify is the interface for the verify command (read-only checks).
type Verify interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ProvisionOptions) (*entities.VerifyReport, error)
}

// VerifyCommand re-runs the provisioning checks without mutating anything:
// no repository is created and no document is written.
type VerifyCommand struct {
	providerRegistry *infraRepos.ProviderRegistry
	documentRegistry *infraRepos.DocumentRegistry
	origin           repositories.OriginRepository
	confirmer        repositories.Confirmer
}

// NewVerifyCommand creates a new VerifyCommand.
func NewVerifyCommand(
	providerRegistry *infraRepos.ProviderRegistry,
	documentRegistry *infraRepos.DocumentRegistry,
	origin repositories.OriginRepository,
	confirmer repositories.Confirmer,
) *VerifyCommand {
	return &VerifyCommand{
		providerRegistry: providerRegistry,
		documentRegistry: documentRegistry,
		origin:           origin,
		confirmer:        confirmer,
	}
}

// Execute returns the verification report. Only an unresolvable account is an error;
// the remaining checks are recorded in the report so that all of them are shown.
func (it *VerifyCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts ProvisionOptions,
) (*entities.VerifyReport, error) {
	secret := firstNonEmpty(opts.Token, settings.Token)
	provider, sessionIsCredential, err := newSessionProvider(it.providerRegistry, settings, secret)
	if err != nil {
		return nil, err
	}

	confirmer := it.confirmer
	if opts.AssumeYes {
		confirmer = AlwaysConfirm()
	}

	preferredOrg := preferredOrganization(it.origin, settings, opts.Organization, opts.WorkDir)
	identity, err := NewAccessResolver(provider, confirmer).
		WithSessionCredential(sessionIsCredential).
		Resolve(ctx, preferredOrg)
	if err != nil {
		return nil, err
	}

	report := &entities.VerifyReport{Identity: identity}

	repoName := firstNonEmpty(opts.Repository, settings.Repository)
	ref, err := NewRepositoryEnsurer(provider, NeverConfirm()).Ensure(ctx, identity, repoName)
	if err != nil {
		logger.Errorf("Repository check failed: %v", err)
		ref = &entities.RepositoryRef{Owner: identity}
		ref.Name = repoName
	}
	report.Repository = *ref

	credential, err := NewTokenValidator(provider).Validate(ctx, secret)
	if err != nil {
		logger.Errorf("Token check failed: %v", err)
	}
	report.Credential = credential

	report.Documents = NewConfigMerger(it.documentRegistry.Build(settings)).Inspect()
	logVerifyReport(report)
	return report, nil
}

// ErrUnhealthy is returned by callers when a verification report is not healthy.
var ErrUnhealthy = errors.New("provisioning is incomplete")

func logVerifyReport(report *entities.VerifyReport) {
	logger.Info("Verification summary:")
	logger.Infof("  account:    %s", report.Identity)
	logger.Infof("  repository: %s (exists: %t)", report.Repository.FullName(), report.Repository.Exists)
	if report.Credential != nil {
		logger.Infof("  token:      %s (%s)", report.Credential, scopeSummary(report.Credential))
	} else {
		logger.Warn("  token:      not valid")
	}
	for _, doc := range report.Documents {
		state := "configured"
		switch {
		case doc.Skipped:
			state = "skipped"
		case !doc.Exists:
			state = "missing"
		case !doc.Configured:
			state = "not configured"
		}
		line := "  " + doc.Name + ": " + state + " " + doc.Path
		if len(doc.Details) > 0 {
			line += " (" + strings.Join(doc.Details, "; ") + ")"
		}
		if doc.Configured || doc.Skipped {
			logger.Info(line)
		} else {
			logger.Warn(line)
		}
	}
}
