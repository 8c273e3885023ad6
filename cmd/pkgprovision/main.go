package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/pkgprovision/internal"
	"github.com/rios0rios0/pkgprovision/internal/infrastructure/controllers"
)

func buildRootCommand(provisionController *controllers.ProvisionController) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "pkgprovision",
		Short: "Provision GitHub Packages credentials for Maven and Gradle",
		Long: `Prepares a developer machine to publish to GitHub Packages:
resolves the owning account, makes sure the package repository exists,
validates the Personal Access Token and writes the Maven and Gradle
credential files.

Usage modes:
  pkgprovision             Run the provisioning workflow (same as "provision")
  pkgprovision provision   Run the provisioning workflow
  pkgprovision verify      Check the current state without changing anything`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          provisionController.Execute,
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().String("token", "",
		"GitHub Personal Access Token (overrides config and env)")
	cmd.PersistentFlags().StringP("org", "o", "",
		"Organization that should own the package repository")
	cmd.PersistentFlags().StringP("repo", "r", "",
		"Name of the package repository")
	cmd.PersistentFlags().BoolP("yes", "y", false,
		"Answer yes to every confirmation and never prompt")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  cobra.NoArgs,
			RunE:  controller.Execute,
		}
		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	appContext, provisionController := injectAppContext()
	cobraRoot := buildRootCommand(provisionController)
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'pkgprovision': %s", err)
	}
}
