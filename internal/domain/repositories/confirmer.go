package repositories

// Confirmer is the decision source for every yes/no question the workflow asks.
// Interactive runs read the terminal, tests script the answers.
type Confirmer interface {
	Confirm(question string) bool
}
