package maven

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
	"github.com/rios0rios0/pkgprovision/internal/domain/repositories"
	"github.com/rios0rios0/pkgprovision/internal/infrastructure/repositories/files"
)

const (
	pomDocumentName = "maven-pom"
	pomIndentSpaces = 4
)

// PomDocument patches the distribution repository (and optionally the groupId) of an
// existing pom.xml. Everything else in the file is left as parsed.
type PomDocument struct {
	path     string
	serverID string
	groupID  string
}

// NewPomDocument returns the pom.xml document, or nil when no pom path is configured.
func NewPomDocument(settings *entities.Settings) repositories.ConfigDocumentRepository {
	if settings.Maven.PomPath == "" {
		return nil
	}
	return &PomDocument{
		path:     settings.Maven.PomPath,
		serverID: settings.Maven.ServerID,
		groupID:  settings.Package.GroupID,
	}
}

func (d *PomDocument) Name() string { return pomDocumentName }
func (d *PomDocument) Path() string { return d.path }

// Apply rewrites project/distributionManagement/repository. A missing pom.xml is skipped.
func (d *PomDocument) Apply(values entities.ProvisionValues) (*entities.DocumentResult, error) {
	result := &entities.DocumentResult{Name: d.Name(), Path: d.path}

	existing, existed, err := files.Read(d.path)
	if err != nil {
		return nil, err
	}
	if !existed {
		result.Action = entities.DocumentSkipped
		return result, nil
	}

	patched, err := PatchPom(existing, d.serverID, values.RepositoryURL, d.groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to patch %s: %w", d.path, err)
	}

	result.BackupPath, err = files.Replace(d.path, existing, existed, patched)
	if err != nil {
		return nil, err
	}

	result.Action = entities.DocumentMerged
	if files.Unchanged(existing, existed, patched) {
		result.Action = entities.DocumentUnchanged
	}
	return result, nil
}

// Inspect checks that the distribution repository points at GitHub Packages.
// A missing pom.xml is skipped, as Apply does.
func (d *PomDocument) Inspect() (*entities.DocumentStatus, error) {
	status := &entities.DocumentStatus{Name: d.Name(), Path: d.path}

	data, existed, err := files.Read(d.path)
	if err != nil {
		return nil, err
	}
	if !existed {
		status.Skipped = true
		status.Details = append(status.Details, "file not found, nothing to patch")
		return status, nil
	}
	status.Exists = true

	doc := etree.NewDocument()
	if readErr := doc.ReadFromBytes(data); readErr != nil {
		return status, fmt.Errorf("failed to parse %s: %w", d.path, readErr)
	}

	repo := doc.FindElement("./project/distributionManagement/repository")
	if repo == nil {
		status.Details = append(status.Details, "no distributionManagement repository")
		return status, nil
	}

	url := childText(repo, "url")
	status.Configured = childText(repo, "id") == d.serverID && url != ""
	status.Details = append(status.Details, "distribution url "+url)
	return status, nil
}

// PatchPom sets the distribution repository id and url (and groupId when non-empty)
// through the document model, so text elsewhere in the file is never touched.
func PatchPom(data []byte, serverID, repositoryURL, groupID string) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}

	project := doc.Root()
	if project == nil || project.Tag != "project" {
		return nil, fmt.Errorf("root element is not <project>")
	}

	created := false
	child := func(parent *etree.Element, tag string) *etree.Element {
		if el := parent.SelectElement(tag); el != nil {
			return el
		}
		created = true
		return parent.CreateElement(tag)
	}

	repo := child(child(project, "distributionManagement"), "repository")
	setText(child(repo, "id"), serverID)
	setText(child(repo, "url"), repositoryURL)
	if groupID != "" {
		setText(child(project, "groupId"), groupID)
	}

	if created {
		doc.Indent(pomIndentSpaces)
	}
	return doc.WriteToBytes()
}

func setText(el *etree.Element, value string) {
	if strings.TrimSpace(el.Text()) != value {
		el.SetText(value)
	}
}
