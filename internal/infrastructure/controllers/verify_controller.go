package controllers

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/pkgprovision/internal/domain/commands"
	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
	"github.com/rios0rios0/pkgprovision/internal/infrastructure/repositories/terminal"
)

// VerifyController handles the "verify" subcommand.
type VerifyController struct {
	command  commands.Verify
	prompter *terminal.Prompter
}

// NewVerifyController creates a new VerifyController.
func NewVerifyController(command commands.Verify, prompter *terminal.Prompter) *VerifyController {
	return &VerifyController{command: command, prompter: prompter}
}

// GetBind returns the Cobra command metadata for the verify controller.
func (it *VerifyController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "verify",
		Short: "Check the provisioning without changing anything",
		Long: `Re-run the provisioning checks in read-only mode: account resolution,
repository existence, token scopes and the content of every config document.
Nothing is created or written. Exits with status 1 when something is missing.`,
	}
}

// Execute runs the read-only verification.
func (it *VerifyController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	settings, opts, err := loadRun(ctx, cmd, it.prompter)
	if err != nil {
		return renderError("Loading configuration", err)
	}

	report, err := it.command.Execute(ctx, settings, opts)
	if err != nil {
		return renderError("Verification", err)
	}
	if !report.Healthy() {
		return renderError("Verification", commands.ErrUnhealthy)
	}
	return nil
}
