//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"errors"

	"github.com/rios0rios0/pkgprovision/internal/domain/repositories"
)

// StubOriginRepository returns a fixed owner for every directory.
type StubOriginRepository struct {
	Owner string
	Err   error
	Dirs  []string
}

var _ repositories.OriginRepository = (*StubOriginRepository)(nil)

func (o *StubOriginRepository) DetectOwner(dir string) (string, error) {
	o.Dirs = append(o.Dirs, dir)
	if o.Err != nil {
		return "", o.Err
	}
	if o.Owner == "" {
		return "", errors.New("no origin remote")
	}
	return o.Owner, nil
}
