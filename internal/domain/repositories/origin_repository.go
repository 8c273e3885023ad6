package repositories

// OriginRepository inspects a local Git working copy.
type OriginRepository interface {
	// DetectOwner returns the GitHub owner of the "origin" remote of the repository at dir.
	DetectOwner(dir string) (string, error)
}
