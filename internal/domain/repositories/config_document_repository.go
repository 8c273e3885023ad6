package repositories

import (
	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
)

// ConfigDocumentRepository is a configuration file the workflow owns (fully or partly).
// Each implementation decides its own policy: regenerate or merge. All of them take a
// sibling backup before the first mutation of a pre-existing file.
type ConfigDocumentRepository interface {
	// Name returns the document identifier (e.g. "maven-settings").
	Name() string

	// Path returns the file location.
	Path() string

	// Apply writes values into the document.
	Apply(values entities.ProvisionValues) (*entities.DocumentResult, error)

	// Inspect reads the document without modifying it.
	Inspect() (*entities.DocumentStatus, error)
}
