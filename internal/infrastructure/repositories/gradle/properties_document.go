package gradle

import (
	"fmt"
	"strings"

	"github.com/magiconair/properties"

	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
	"github.com/rios0rios0/pkgprovision/internal/domain/repositories"
	"github.com/rios0rios0/pkgprovision/internal/infrastructure/repositories/files"
)

const (
	propertiesDocumentName = "gradle-properties"

	// SectionHeader delimits the keys appended by pkgprovision.
	SectionHeader = "# GitHub Packages credentials (managed by pkgprovision)"

	KeyUser       = "gpr.user"
	KeyToken      = "gpr.key"
	KeyOwner      = "gpr.owner"
	KeyRepository = "gpr.repository"
)

// Property is a single key=value entry owned by the workflow.
type Property struct {
	Key   string
	Value string
}

// PropertiesDocument is the Gradle gradle.properties. It is shared with other tools,
// so it is merged in place: only the keys listed in Entries are touched.
type PropertiesDocument struct {
	path string
}

// NewPropertiesDocument creates the gradle.properties document for the given settings.
func NewPropertiesDocument(settings *entities.Settings) repositories.ConfigDocumentRepository {
	return &PropertiesDocument{path: settings.Gradle.PropertiesPath}
}

func (d *PropertiesDocument) Name() string { return propertiesDocumentName }
func (d *PropertiesDocument) Path() string { return d.path }

// Entries returns the keys owned by the workflow, in the order they are appended.
func Entries(values entities.ProvisionValues) []Property {
	return []Property{
		{Key: KeyUser, Value: values.Credential.Login},
		{Key: KeyToken, Value: values.Credential.Secret()},
		{Key: KeyOwner, Value: values.Identity.AccountName},
		{Key: KeyRepository, Value: values.Repository},
	}
}

// Apply merges the owned keys into gradle.properties, taking a backup of the previous file first.
func (d *PropertiesDocument) Apply(values entities.ProvisionValues) (*entities.DocumentResult, error) {
	if values.Credential == nil {
		return nil, fmt.Errorf("cannot merge %s without a credential", d.path)
	}

	existing, existed, err := files.Read(d.path)
	if err != nil {
		return nil, err
	}

	merged := []byte(MergeProperties(string(existing), Entries(values)))
	backupPath, err := files.Replace(d.path, existing, existed, merged)
	if err != nil {
		return nil, err
	}

	action := entities.DocumentCreated
	switch {
	case files.Unchanged(existing, existed, merged):
		action = entities.DocumentUnchanged
	case existed:
		action = entities.DocumentMerged
	}

	return &entities.DocumentResult{
		Name:       d.Name(),
		Path:       d.path,
		BackupPath: backupPath,
		Action:     action,
	}, nil
}

// Inspect loads the file as Java properties and checks the owned credential keys.
func (d *PropertiesDocument) Inspect() (*entities.DocumentStatus, error) {
	status := &entities.DocumentStatus{Name: d.Name(), Path: d.path}

	_, existed, err := files.Read(d.path)
	if err != nil || !existed {
		return status, err
	}
	status.Exists = true

	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	props, err := loader.LoadFile(d.path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", d.path, err)
	}

	user, hasUser := props.Get(KeyUser)
	token, hasToken := props.Get(KeyToken)
	if !hasUser || user == "" {
		status.Details = append(status.Details, KeyUser+" is not set")
	}
	if !hasToken || token == "" {
		status.Details = append(status.Details, KeyToken+" is not set")
	}
	if len(status.Details) > 0 {
		return status, nil
	}

	status.Configured = true
	status.Details = append(status.Details,
		fmt.Sprintf("%s=%s", KeyUser, user),
		fmt.Sprintf("%s=%s", KeyToken, entities.RedactSecret(token)),
	)
	return status, nil
}

// MergeProperties replaces the value of every owned key already present in content
// and appends the missing ones under SectionHeader. Lines it does not own are kept verbatim.
//
// Behaviour:
//   - Every occurrence of an owned key is rewritten as "key=value"; lines continuing its
//     previous value are dropped.
//   - If SectionHeader exists, missing keys are appended after the last line of that section.
//   - Otherwise a blank line, SectionHeader and the missing keys are appended at the end.
func MergeProperties(content string, entries []Property) string {
	found := make(map[string]bool, len(entries))
	values := make(map[string]string, len(entries))
	for _, entry := range entries {
		values[entry.Key] = entry.Value
	}

	var lines []string
	continuation := false
	replacing := false
	for _, line := range splitLines(content) {
		if continuation {
			continuation = continues(line)
			if !replacing {
				lines = append(lines, line)
			}
			continue
		}
		replacing = false

		key, ok := propertyKey(line)
		if !ok {
			lines = append(lines, line)
			continue
		}
		continuation = continues(line)

		if value, owned := values[key]; owned {
			lines = append(lines, formatProperty(key, value))
			found[key] = true
			replacing = true
			continue
		}
		lines = append(lines, line)
	}

	var missing []string
	for _, entry := range entries {
		if !found[entry.Key] {
			missing = append(missing, formatProperty(entry.Key, entry.Value))
		}
	}

	if len(missing) > 0 {
		headerIdx := findHeaderIndex(lines)
		if headerIdx >= 0 {
			lines = insertLines(lines, findSectionEnd(lines, headerIdx)+1, missing)
		} else {
			if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) != "" {
				lines = append(lines, "")
			}
			lines = append(lines, SectionHeader)
			lines = append(lines, missing...)
		}
	}

	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// splitLines splits content into lines, dropping the final empty element of a trailing newline.
func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

// propertyKey extracts the key of a key=value, key:value or "key value" line.
func propertyKey(line string) (string, bool) {
	trimmed := strings.TrimLeft(line, " \t\f")
	if trimmed == "" || trimmed[0] == '#' || trimmed[0] == '!' {
		return "", false
	}

	end := strings.IndexAny(trimmed, "=: \t\f")
	if end < 0 {
		return trimmed, true
	}
	return trimmed[:end], true
}

// continues reports whether line ends with an odd number of backslashes.
func continues(line string) bool {
	count := 0
	for i := len(line) - 1; i >= 0 && line[i] == '\\'; i-- {
		count++
	}
	return count%2 == 1
}

func formatProperty(key, value string) string {
	return key + "=" + strings.ReplaceAll(value, `\`, `\\`)
}

// findHeaderIndex returns the line index of SectionHeader, or -1 if not found.
func findHeaderIndex(lines []string) int {
	for i, line := range lines {
		if strings.TrimSpace(line) == SectionHeader {
			return i
		}
	}
	return -1
}

// findSectionEnd returns the index of the last non-blank line of the section starting at headerIdx.
func findSectionEnd(lines []string, headerIdx int) int {
	end := headerIdx
	for i := headerIdx + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			break
		}
		end = i
	}
	return end
}

// insertLines inserts extra lines into slice at the given index.
func insertLines(lines []string, at int, extra []string) []string {
	result := make([]string, 0, len(lines)+len(extra))
	result = append(result, lines[:at]...)
	result = append(result, extra...)
	result = append(result, lines[at:]...)
	return result
}
