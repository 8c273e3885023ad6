//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/pkgprovision/internal/domain/commands"
	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
)

// StubProvisionCommand is a stub implementation of commands.Provision.
type StubProvisionCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Report           *entities.ProvisionReport
	LastSettings     *entities.Settings
	LastOpts         commands.ProvisionOptions
}

var _ commands.Provision = (*StubProvisionCommand)(nil)

func (s *StubProvisionCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.ProvisionOptions,
) (*entities.ProvisionReport, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.Report, s.ExecuteErr
}
