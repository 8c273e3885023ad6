package entities

import (
	"slices"
	"strings"
)

const (
	ScopeWritePackages  = "write:packages"
	ScopeReadPackages   = "read:packages"
	ScopeRepo           = "repo"
	ScopeDeletePackages = "delete:packages"

	redactedVisibleChars = 4
)

// RequiredScopes are needed to publish and consume packages.
// Their absence is a warning: the provisioning itself still completes.
func RequiredScopes() []string {
	return []string{ScopeWritePackages, ScopeReadPackages}
}

// OptionalScopes are advisory only.
func OptionalScopes() []string {
	return []string{ScopeRepo, ScopeDeletePackages}
}

// AuthResult is returned by a successful authentication.
type AuthResult struct {
	Login string
}

// ScopeReport is the scope list attached to a credential by the provider.
// Reported is false when the provider did not advertise any scope header,
// which is the case for fine-grained tokens.
type ScopeReport struct {
	Scopes   []string
	Reported bool
}

// Credential is a validated Personal Access Token.
type Credential struct {
	Login          string
	GrantedScopes  []string
	ScopesReported bool

	secret string
}

// NewCredential builds a credential for the given secret.
func NewCredential(secret, login string, report ScopeReport) *Credential {
	scopes := slices.Clone(report.Scopes)
	slices.Sort(scopes)
	return &Credential{
		Login:          login,
		GrantedScopes:  scopes,
		ScopesReported: report.Reported,
		secret:         secret,
	}
}

// Secret returns the raw token. Only config writers should call it.
func (c *Credential) Secret() string {
	return c.secret
}

// HasScope reports whether the scope was granted.
func (c *Credential) HasScope(scope string) bool {
	return slices.Contains(c.GrantedScopes, scope)
}

// Partition splits the required and optional scope sets into present and missing members.
func (c *Credential) Partition() ScopePartition {
	return PartitionScopes(c.GrantedScopes)
}

// Redacted returns the secret with everything but its first characters masked.
func (c *Credential) Redacted() string {
	return RedactSecret(c.secret)
}

func (c *Credential) String() string {
	return c.Login + ":" + c.Redacted()
}

// RedactSecret masks a secret for logging.
func RedactSecret(secret string) string {
	if len(secret) <= redactedVisibleChars {
		return strings.Repeat("*", len(secret))
	}
	return secret[:redactedVisibleChars] + strings.Repeat("*", len(secret)-redactedVisibleChars)
}

// ScopePartition is the outcome of comparing granted scopes with the expected sets.
type ScopePartition struct {
	PresentRequired []string
	MissingRequired []string
	PresentOptional []string
	MissingOptional []string
}

// Complete is true when nothing required or optional is missing.
func (p ScopePartition) Complete() bool {
	return len(p.MissingRequired) == 0 && len(p.MissingOptional) == 0
}

// PartitionScopes compares granted scopes against RequiredScopes and OptionalScopes.
func PartitionScopes(granted []string) ScopePartition {
	var partition ScopePartition
	for _, scope := range RequiredScopes() {
		if slices.Contains(granted, scope) {
			partition.PresentRequired = append(partition.PresentRequired, scope)
		} else {
			partition.MissingRequired = append(partition.MissingRequired, scope)
		}
	}
	for _, scope := range OptionalScopes() {
		if slices.Contains(granted, scope) {
			partition.PresentOptional = append(partition.PresentOptional, scope)
		} else {
			partition.MissingOptional = append(partition.MissingOptional, scope)
		}
	}
	return partition
}

// ParseScopeHeader splits a comma separated scope header value.
func ParseScopeHeader(header string) []string {
	var scopes []string
	for _, raw := range strings.Split(header, ",") {
		if scope := strings.TrimSpace(raw); scope != "" {
			scopes = append(scopes, scope)
		}
	}
	return scopes
}
