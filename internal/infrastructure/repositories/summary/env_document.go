package summary

import (
	"strconv"

	"github.com/joho/godotenv"

	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
	"github.com/rios0rios0/pkgprovision/internal/domain/repositories"
	"github.com/rios0rios0/pkgprovision/internal/infrastructure/repositories/files"
)

const (
	envDocumentName = "summary"

	KeyOwner         = "GITHUB_OWNER"
	KeyOwnerIsOrg    = "GITHUB_OWNER_IS_ORG"
	KeyRepository    = "GITHUB_REPOSITORY"
	KeyUser          = "GITHUB_USER"
	KeyRepositoryURL = "MAVEN_REPOSITORY_URL"
)

// EnvDocument is the shell-sourceable summary read by sibling scripts.
// It is owned entirely by the workflow and never contains the token.
type EnvDocument struct {
	path string
}

// NewEnvDocument creates the summary document for the given settings.
func NewEnvDocument(settings *entities.Settings) repositories.ConfigDocumentRepository {
	return &EnvDocument{path: settings.SummaryPath}
}

func (d *EnvDocument) Name() string { return envDocumentName }
func (d *EnvDocument) Path() string { return d.path }

// Values returns the summary entries for a run.
func Values(values entities.ProvisionValues) map[string]string {
	return map[string]string{
		KeyOwner:         values.Identity.AccountName,
		KeyOwnerIsOrg:    strconv.FormatBool(values.Identity.IsOrganization),
		KeyRepository:    values.Repository,
		KeyUser:          values.Credential.Login,
		KeyRepositoryURL: values.RepositoryURL,
	}
}

// Apply regenerates the summary file.
func (d *EnvDocument) Apply(values entities.ProvisionValues) (*entities.DocumentResult, error) {
	content, err := godotenv.Marshal(Values(values))
	if err != nil {
		return nil, err
	}
	rendered := []byte(content + "\n")

	existing, existed, err := files.Read(d.path)
	if err != nil {
		return nil, err
	}

	backupPath, err := files.Replace(d.path, existing, existed, rendered)
	if err != nil {
		return nil, err
	}

	action := entities.DocumentCreated
	switch {
	case files.Unchanged(existing, existed, rendered):
		action = entities.DocumentUnchanged
	case existed:
		action = entities.DocumentOverwritten
	}

	return &entities.DocumentResult{
		Name:       d.Name(),
		Path:       d.path,
		BackupPath: backupPath,
		Action:     action,
	}, nil
}

// Inspect reads the summary back with the dotenv parser.
func (d *EnvDocument) Inspect() (*entities.DocumentStatus, error) {
	status := &entities.DocumentStatus{Name: d.Name(), Path: d.path}

	_, existed, err := files.Read(d.path)
	if err != nil || !existed {
		return status, err
	}
	status.Exists = true

	env, err := godotenv.Read(d.path)
	if err != nil {
		return nil, err
	}

	for _, key := range []string{KeyOwner, KeyRepository, KeyRepositoryURL} {
		if env[key] == "" {
			status.Details = append(status.Details, key+" is not set")
		}
	}
	if len(status.Details) == 0 {
		status.Configured = true
		status.Details = append(status.Details, env[KeyOwner]+"/"+env[KeyRepository])
	}
	return status, nil
}
