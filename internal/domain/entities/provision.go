package entities

// ProvisionValues is everything a configuration document needs to render itself.
// It is passed explicitly from step to step instead of living in ambient state.
type ProvisionValues struct {
	Identity      Identity
	Credential    *Credential
	Repository    string
	ServerID      string
	RepositoryURL string
	Package       PackageSettings
}

// DocumentAction is what a config document did during a run.
type DocumentAction string

const (
	DocumentCreated     DocumentAction = "created"
	DocumentOverwritten DocumentAction = "overwritten"
	DocumentMerged      DocumentAction = "merged"
	DocumentUnchanged   DocumentAction = "unchanged"
	DocumentSkipped     DocumentAction = "skipped"
)

// DocumentResult is returned by a successful document write.
type DocumentResult struct {
	Name       string
	Path       string
	BackupPath string // empty when the file did not exist before the run
	Action     DocumentAction
}

// DocumentStatus is the read-only inspection of a config document. Skipped marks an
// optional document that does not apply, e.g. a configured pom.xml that is absent.
type DocumentStatus struct {
	Name       string
	Path       string
	Exists     bool
	Configured bool
	Skipped    bool
	Details    []string
}

// ProvisionReport summarises a completed provisioning run.
type ProvisionReport struct {
	Identity   Identity
	Repository RepositoryRef
	Credential *Credential
	Documents  []DocumentResult
}

// VerifyReport summarises a read-only verification run.
type VerifyReport struct {
	Identity   Identity
	Repository RepositoryRef
	Credential *Credential
	Documents  []DocumentStatus
}

// Healthy is true when the token authenticated, the repository exists and every
// applicable document is configured.
func (r *VerifyReport) Healthy() bool {
	if r.Credential == nil || !r.Repository.Exists {
		return false
	}
	for _, doc := range r.Documents {
		if !doc.Skipped && !doc.Configured {
			return false
		}
	}
	return true
}
