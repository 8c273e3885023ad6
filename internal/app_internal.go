package internal

import "github.com/rios0rios0/pkgprovision/internal/domain/entities"

// AppInternal holds the controllers exposed as CLI subcommands.
type AppInternal struct {
	controllers []entities.Controller
}

func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: *controllers}
}

func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}
