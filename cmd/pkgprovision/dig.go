package main

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/pkgprovision/internal"
	"github.com/rios0rios0/pkgprovision/internal/infrastructure/controllers"
)

func injectAppContext() (*internal.AppInternal, *controllers.ProvisionController) {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var appInternal *internal.AppInternal
	var provisionController *controllers.ProvisionController
	if err := container.Invoke(func(ai *internal.AppInternal, pc *controllers.ProvisionController) {
		appInternal = ai
		provisionController = pc
	}); err != nil {
		panic(err)
	}

	return appInternal, provisionController
}
