package entities

import "errors"

// Identity is the GitHub account the workflow operates against.
// It is resolved once per run and never mutated afterwards.
type Identity struct {
	AccountName    string
	IsOrganization bool
}

// NewPersonalIdentity returns the identity of a user account.
func NewPersonalIdentity(login string) Identity {
	return Identity{AccountName: login}
}

// NewOrganizationIdentity returns the identity of an organization account.
func NewOrganizationIdentity(org string) Identity {
	return Identity{AccountName: org, IsOrganization: true}
}

// Validate ensures the identity can be used by the dependent steps.
func (i Identity) Validate() error {
	if i.AccountName == "" {
		return errors.New("identity account name is empty")
	}
	return nil
}

// Kind returns a human-readable label for the account type.
func (i Identity) Kind() string {
	if i.IsOrganization {
		return "organization"
	}
	return "personal account"
}

func (i Identity) String() string {
	return i.AccountName + " (" + i.Kind() + ")"
}
