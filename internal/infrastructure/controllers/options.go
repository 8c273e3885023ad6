package controllers

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/pkgprovision/internal/domain/commands"
	"github.com/rios0rios0/pkgprovision/internal/domain/entities"
	"github.com/rios0rios0/pkgprovision/internal/infrastructure/repositories/terminal"
)

const tokenQuestion = "GitHub Personal Access Token (write:packages, read:packages):"

// loadRun reads the persistent flags, loads the settings and asks for the token when
// none was supplied and the run is interactive.
func loadRun(
	ctx context.Context,
	cmd *cobra.Command,
	prompter *terminal.Prompter,
) (*entities.Settings, commands.ProvisionOptions, error) {
	configPath, _ := cmd.Flags().GetString("config")
	token, _ := cmd.Flags().GetString("token")
	org, _ := cmd.Flags().GetString("org")
	repo, _ := cmd.Flags().GetString("repo")
	assumeYes, _ := cmd.Flags().GetBool("yes")
	verbose, _ := cmd.Flags().GetBool("verbose")

	if verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	if configPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found, using defaults: %v", err)
		}
		configPath = found
	}
	if configPath != "" {
		logger.Infof("Using config file: %s", configPath)
	}

	settings, err := entities.NewSettings(ctx, configPath)
	if err != nil {
		return nil, commands.ProvisionOptions{}, err
	}

	opts := commands.ProvisionOptions{
		Token:        token,
		Organization: org,
		Repository:   repo,
		WorkDir:      ".",
		AssumeYes:    assumeYes,
	}

	if opts.Token == "" && settings.Token == "" && !assumeYes {
		secret, askErr := prompter.AskSecret(tokenQuestion)
		if askErr != nil {
			logger.Warnf("No token entered: %v", askErr)
		}
		opts.Token = secret
	}

	return settings, opts, nil
}

// renderError logs the structured detail of a workflow error and returns it for the exit code.
func renderError(action string, err error) error {
	var provisionErr *entities.ProvisionError
	if errors.As(err, &provisionErr) {
		logger.Errorf("%s failed: %v", action, provisionErr.Kind)
		if provisionErr.Field != "" {
			logger.Errorf("  offending field: %s", provisionErr.Field)
		}
		if provisionErr.Err != nil {
			logger.Errorf("  cause: %v", provisionErr.Err)
		}
		if provisionErr.Hint != "" {
			logger.Errorf("  hint: %s", provisionErr.Hint)
		}
		return err
	}

	logger.Errorf("%s failed: %v", action, err)
	return err
}
