package repositories

import (
	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
	domainRepos "github.com/rios0rios0/pkgprovision/internal/domain/repositories"
)

// DocumentFactory creates a config document for the given settings. It returns
// nil when the document does not apply (e.g. no pom.xml configured).
type DocumentFactory func(settings *entities.Settings) domainRepos.ConfigDocumentRepository

// DocumentRegistry keeps the config documents in the order they are written.
type DocumentRegistry struct {
	factories []DocumentFactory
}

// NewDocumentRegistry creates an empty document registry.
func NewDocumentRegistry() *DocumentRegistry {
	return &DocumentRegistry{}
}

// Register appends a document factory.
func (r *DocumentRegistry) Register(factory DocumentFactory) {
	r.factories = append(r.factories, factory)
}

// Build instantiates every applicable document for settings, in registration order.
func (r *DocumentRegistry) Build(settings *entities.Settings) []domainRepos.ConfigDocumentRepository {
	documents := make([]domainRepos.ConfigDocumentRepository, 0, len(r.factories))
	for _, factory := range r.factories {
		if document := factory(settings); document != nil {
			documents = append(documents, document)
		}
	}
	return documents
}
