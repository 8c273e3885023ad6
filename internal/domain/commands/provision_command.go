package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
	"github.com/rios0rios0/pkgprovision/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/pkgprovision/internal/infrastructure/repositories"
)

// Provision is the interface for the provision command (mutating workflow).
type Provision interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ProvisionOptions) (*entities.ProvisionReport, error)
}

// ProvisionOptions holds runtime options for a single run. Non-empty values
// take precedence over the settings.
type ProvisionOptions struct {
	Token        string
	Organization string
	Repository   string
	WorkDir      string // used to detect the organization from the origin remote
	AssumeYes    bool
}

// ProvisionCommand runs the provisioning workflow:
// resolve access -> ensure repository -> validate token -> merge config documents.
type ProvisionCommand struct {
	providerRegistry *infraRepos.ProviderRegistry
	documentRegistry *infraRepos.DocumentRegistry
	origin           repositories.OriginRepository
	confirmer        repositories.Confirmer
}

// NewProvisionCommand creates a new ProvisionCommand.
func NewProvisionCommand(
	providerRegistry *infraRepos.ProviderRegistry,
	documentRegistry *infraRepos.DocumentRegistry,
	origin repositories.OriginRepository,
	confirmer repositories.Confirmer,
) *ProvisionCommand {
	return &ProvisionCommand{
		providerRegistry: providerRegistry,
		documentRegistry: documentRegistry,
		origin:           origin,
		confirmer:        confirmer,
	}
}

// Execute runs the four steps in sequence. Any fatal error aborts the run immediately.
func (it *ProvisionCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts ProvisionOptions,
) (*entities.ProvisionReport, error) {
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
	logger.Infof("Operating as %s", identity)

	repoName := firstNonEmpty(opts.Repository, settings.Repository)
	ref, err := NewRepositoryEnsurer(provider, confirmer).Ensure(ctx, identity, repoName)
	if err != nil {
		return nil, err
	}

	credential, err := NewTokenValidator(provider).Validate(ctx, secret)
	if err != nil {
		return nil, err
	}

	values := entities.ProvisionValues{
		Identity:      identity,
		Credential:    credential,
		Repository:    repoName,
		ServerID:      settings.Maven.ServerID,
		RepositoryURL: settings.RepositoryURL(identity.AccountName),
		Package:       settings.Package,
	}
	results, err := NewConfigMerger(it.documentRegistry.Build(settings)).Merge(ctx, values)
	if err != nil {
		return nil, err
	}

	report := &entities.ProvisionReport{
		Identity:   identity,
		Repository: *ref,
		Credential: credential,
		Documents:  results,
	}
	logProvisionReport(report)
	return report, nil
}

// newSessionProvider builds the provider used for account and repository calls.
// The session token falls back to the PAT being provisioned; the returned flag
// reports whether that fallback was taken.
func newSessionProvider(
	registry *infraRepos.ProviderRegistry,
	settings *entities.Settings,
	secret string,
) (repositories.ProviderRepository, bool, error) {
	providerSettings := settings.Provider
	providerSettings.Token = firstNonEmpty(settings.Provider.Token, entities.ResolveSessionTokenFromEnv())
	sessionIsCredential := false
	if providerSettings.Token == "" {
		providerSettings.Token = secret
		sessionIsCredential = true
	}
	if providerSettings.Token == "" {
		return nil, false, entities.NewProvisionError(
			entities.ErrAuthentication, "token",
			"pass --token, set PKGPROVISION_TOKEN or GITHUB_TOKEN", nil,
		)
	}

	provider, err := registry.Get(providerSettings.Type, providerSettings)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create provider: %w", err)
	}
	return provider, sessionIsCredential, nil
}

// preferredOrganization picks the organization from the options, the settings, or
// the origin remote of the working copy, in that order. Empty means "personal account".
func preferredOrganization(
	origin repositories.OriginRepository,
	settings *entities.Settings,
	override, workDir string,
) string {
	if org := firstNonEmpty(override, settings.Organization); org != "" {
		return org
	}
	if origin == nil || workDir == "" {
		return ""
	}

	owner, err := origin.DetectOwner(workDir)
	if err != nil {
		logger.Debugf("No organization detected from %s: %v", workDir, err)
		return ""
	}
	logger.Infof("Detected organization %q from the origin remote", owner)
	return owner
}

func logProvisionReport(report *entities.ProvisionReport) {
	logger.Info("Provisioning complete:")
	logger.Infof("  account:    %s", report.Identity)
	logger.Infof("  repository: %s (exists: %t, visibility: %s)",
		report.Repository.FullName(), report.Repository.Exists, report.Repository.Visibility)
	logger.Infof("  token:      %s (%s)", report.Credential, scopeSummary(report.Credential))
	for _, doc := range report.Documents {
		logger.Infof("  %-15s %s %s", doc.Name+":", doc.Action, doc.Path)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
