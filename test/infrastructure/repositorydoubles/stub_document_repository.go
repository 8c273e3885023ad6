//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
	"github.com/rios0rios0/pkgprovision/internal/domain/repositories"
)

// SpyDocumentRepository implements repositories.ConfigDocumentRepository in memory.
type SpyDocumentRepository struct {
	DocumentName string
	DocumentPath string

	ApplyErr    error
	AppliedWith []entities.ProvisionValues

	Status     *entities.DocumentStatus
	InspectErr error
}

var _ repositories.ConfigDocumentRepository = (*SpyDocumentRepository)(nil)

func (d *SpyDocumentRepository) Name() string { return d.DocumentName }
func (d *SpyDocumentRepository) Path() string { return d.DocumentPath }

func (d *SpyDocumentRepository) Apply(values entities.ProvisionValues) (*entities.DocumentResult, error) {
	d.AppliedWith = append(d.AppliedWith, values)
	if d.ApplyErr != nil {
		return nil, d.ApplyErr
	}
	return &entities.DocumentResult{
		Name:   d.DocumentName,
		Path:   d.DocumentPath,
		Action: entities.DocumentCreated,
	}, nil
}

func (d *SpyDocumentRepository) Inspect() (*entities.DocumentStatus, error) {
	if d.InspectErr != nil {
		return d.Status, d.InspectErr
	}
	if d.Status != nil {
		return d.Status, nil
	}
	return &entities.DocumentStatus{Name: d.DocumentName, Path: d.DocumentPath}, nil
}
