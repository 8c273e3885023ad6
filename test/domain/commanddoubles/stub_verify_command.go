//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/pkgprovision/internal/domain/commands"
	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
)

// StubVerifyCommand is a stub implementation of commands.Verify.
type StubVerifyCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Report           *entities.VerifyReport
	LastOpts         commands.ProvisionOptions
}

var _ commands.Verify = (*StubVerifyCommand)(nil)

func (s *StubVerifyCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	opts commands.ProvisionOptions,
) (*entities.VerifyReport, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.Report, s.ExecuteErr
}
