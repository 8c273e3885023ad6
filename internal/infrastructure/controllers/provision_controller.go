package controllers

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/pkgprovision/internal/domain/commands"
	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
	"github.com/rios0rios0/pkgprovision/internal/infrastructure/repositories/terminal"
)

// ProvisionController handles the "provision" subcommand.
type ProvisionController struct {
	command  commands.Provision
	prompter *terminal.Prompter
}

// NewProvisionController creates a new ProvisionController.
func NewProvisionController(command commands.Provision, prompter *terminal.Prompter) *ProvisionController {
	return &ProvisionController{command: command, prompter: prompter}
}

// GetBind returns the Cobra command metadata for the provision controller.
func (it *ProvisionController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "provision",
		Short: "Create the package repository and write Maven/Gradle credentials",
		Long: `Resolve the GitHub account, ensure the package repository exists,
validate the Personal Access Token and write the build tool configuration:

  ~/.m2/settings.xml            regenerated (previous file kept as settings.xml.backup)
  ~/.gradle/gradle.properties   merged, unrelated keys are kept
  pom.xml                       distribution repository patched (when maven.pom_path is set)
  .github-packages.env          summary for other scripts to source

Running it again with the same inputs leaves the files unchanged.`,
	}
}

// Execute runs the provisioning workflow.
func (it *ProvisionController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	settings, opts, err := loadRun(ctx, cmd, it.prompter)
	if err != nil {
		return renderError("Loading configuration", err)
	}

	if _, runErr := it.command.Execute(ctx, settings, opts); runErr != nil {
		return renderError("Provisioning", runErr)
	}
	return nil
}
