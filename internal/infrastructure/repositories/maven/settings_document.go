package maven

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
	"github.com/rios0rios0/pkgprovision/internal/domain/repositories"
	"github.com/rios0rios0/pkgprovision/internal/infrastructure/repositories/files"
)

const (
	settingsDocumentName = "maven-settings"
	settingsNamespace    = "http://maven.apache.org/SETTINGS/1.0.0"
	settingsSchema       = "http://maven.apache.org/xsd/settings-1.0.0.xsd"
	xsiNamespace         = "http://www.w3.org/2001/XMLSchema-instance"
	centralURL           = "https://repo1.maven.org/maven2"
	indentSpaces         = 2
)

// SettingsDocument is the Maven settings.xml. It only holds provisioning structure,
// so it is regenerated as a whole on every run instead of being merged.
type SettingsDocument struct {
	path     string
	serverID string
}

// NewSettingsDocument creates the settings.xml document for the given settings.
func NewSettingsDocument(settings *entities.Settings) repositories.ConfigDocumentRepository {
	return &SettingsDocument{
		path:     settings.Maven.SettingsPath,
		serverID: settings.Maven.ServerID,
	}
}

func (d *SettingsDocument) Name() string { return settingsDocumentName }
func (d *SettingsDocument) Path() string { return d.path }

// Apply overwrites settings.xml, taking a backup of the previous file first.
func (d *SettingsDocument) Apply(values entities.ProvisionValues) (*entities.DocumentResult, error) {
	rendered, err := RenderSettings(values)
	if err != nil {
		return nil, err
	}

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

// Inspect checks that the server block for the configured id carries credentials.
func (d *SettingsDocument) Inspect() (*entities.DocumentStatus, error) {
	status := &entities.DocumentStatus{Name: d.Name(), Path: d.path}

	data, existed, err := files.Read(d.path)
	if err != nil || !existed {
		return status, err
	}
	status.Exists = true

	doc := etree.NewDocument()
	if readErr := doc.ReadFromBytes(data); readErr != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", d.path, readErr)
	}

	root := doc.SelectElement("settings")
	if root == nil {
		status.Details = append(status.Details, "no <settings> root element")
		return status, nil
	}

	server := findByID(root.FindElements("./servers/server"), d.serverID)
	if server == nil {
		status.Details = append(status.Details, fmt.Sprintf("no server with id %q", d.serverID))
		return status, nil
	}
	if childText(server, "username") == "" || childText(server, "password") == "" {
		status.Details = append(status.Details, fmt.Sprintf("server %q has no username or password", d.serverID))
		return status, nil
	}

	if findByID(root.FindElements("./profiles/profile"), d.serverID) == nil {
		status.Details = append(status.Details, fmt.Sprintf("no profile with id %q", d.serverID))
	}
	status.Configured = true
	status.Details = append(status.Details, "server user "+childText(server, "username"))
	return status, nil
}

// RenderSettings builds a schema-valid settings.xml with one server and one active profile
// sharing the server id.
func RenderSettings(values entities.ProvisionValues) ([]byte, error) {
	if values.Credential == nil {
		return nil, fmt.Errorf("cannot render settings.xml without a credential")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("settings")
	root.CreateAttr("xmlns", settingsNamespace)
	root.CreateAttr("xmlns:xsi", xsiNamespace)
	root.CreateAttr("xsi:schemaLocation", settingsNamespace+" "+settingsSchema)

	server := root.CreateElement("servers").CreateElement("server")
	server.CreateElement("id").SetText(values.ServerID)
	server.CreateElement("username").SetText(values.Credential.Login)
	server.CreateElement("password").SetText(values.Credential.Secret())

	profile := root.CreateElement("profiles").CreateElement("profile")
	profile.CreateElement("id").SetText(values.ServerID)
	repos := profile.CreateElement("repositories")

	central := repos.CreateElement("repository")
	central.CreateElement("id").SetText("central")
	central.CreateElement("url").SetText(centralURL)

	packages := repos.CreateElement("repository")
	packages.CreateElement("id").SetText(values.ServerID)
	packages.CreateElement("url").SetText(values.RepositoryURL)
	packages.CreateElement("snapshots").CreateElement("enabled").SetText("true")

	root.CreateElement("activeProfiles").CreateElement("activeProfile").SetText(values.ServerID)

	doc.Indent(indentSpaces)
	return doc.WriteToBytes()
}

func findByID(elements []*etree.Element, id string) *etree.Element {
	for _, el := range elements {
		if childText(el, "id") == id {
			return el
		}
	}
	return nil
}

func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return child.Text()
}
