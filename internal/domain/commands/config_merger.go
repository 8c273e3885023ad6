package commands

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
	"github.com/rios0rios0/pkgprovision/internal/domain/repositories"
)

// ConfigMerger writes the provisioned values into every registered document, in order.
// The first failure aborts the run; documents already written are left as they are.
type ConfigMerger struct {
	documents []repositories.ConfigDocumentRepository
}

// NewConfigMerger creates a ConfigMerger over documents.
func NewConfigMerger(documents []repositories.ConfigDocumentRepository) *ConfigMerger {
	return &ConfigMerger{documents: documents}
}

// Merge applies values to each document.
func (it *ConfigMerger) Merge(
	ctx context.Context,
	values entities.ProvisionValues,
) ([]entities.DocumentResult, error) {
	if err := values.Identity.Validate(); err != nil {
		return nil, entities.NewProvisionError(entities.ErrPersistence, "identity", "", err)
	}
	if values.Credential == nil {
		return nil, entities.NewProvisionError(
			entities.ErrPersistence, "credential", "", errors.New("no validated credential"),
		)
	}

	results := make([]entities.DocumentResult, 0, len(it.documents))
	for _, document := range it.documents {
		if err := ctx.Err(); err != nil {
			return results, entities.NewProvisionError(entities.ErrPersistence, document.Path(), "", err)
		}

		result, err := document.Apply(values)
		if err != nil {
			return results, entities.NewProvisionError(
				entities.ErrPersistence, document.Path(),
				"check permissions and free space; any backup taken before the failure is kept next to the file",
				err,
			)
		}

		if result.BackupPath != "" {
			logger.Infof("[%s] Backed up %s to %s", document.Name(), result.Path, result.BackupPath)
		}
		logger.Infof("[%s] %s %s", document.Name(), result.Action, result.Path)
		results = append(results, *result)
	}

	return results, nil
}

// Inspect reads every document without modifying it.
func (it *ConfigMerger) Inspect() []entities.DocumentStatus {
	statuses := make([]entities.DocumentStatus, 0, len(it.documents))
	for _, document := range it.documents {
		status, err := document.Inspect()
		if err != nil {
			logger.Errorf("[%s] Failed to inspect %s: %v", document.Name(), document.Path(), err)
			failed := &entities.DocumentStatus{
				Name:    document.Name(),
				Path:    document.Path(),
				Details: []string{err.Error()},
			}
			// existence is only known when the document got far enough to report it
			if status != nil {
				failed.Exists = status.Exists
			}
			status = failed
		}
		statuses = append(statuses, *status)
	}
	return statuses
}
