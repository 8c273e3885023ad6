package commands

import (
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pkgprovision/internal/domain/repositories"
)

// staticConfirmer answers every question the same way without asking.
type staticConfirmer bool

func (c staticConfirmer) Confirm(question string) bool {
	logger.Debugf("%s -> %t (non-interactive)", question, bool(c))
	return bool(c)
}

// AlwaysConfirm is used by --yes runs.
func AlwaysConfirm() repositories.Confirmer { return staticConfirmer(true) }

// NeverConfirm is used by read-only runs so that nothing gets created.
func NeverConfirm() repositories.Confirmer { return staticConfirmer(false) }
