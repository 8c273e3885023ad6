//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import "github.com/rios0rios0/pkgprovision/internal/domain/repositories"

// ScriptedConfirmer answers questions from a fixed list, then falls back to Default.
type ScriptedConfirmer struct {
	Answers   []bool
	Default   bool
	Questions []string
}

var _ repositories.Confirmer = (*ScriptedConfirmer)(nil)

func (c *ScriptedConfirmer) Confirm(question string) bool {
	c.Questions = append(c.Questions, question)
	if len(c.Answers) == 0 {
		return c.Default
	}
	answer := c.Answers[0]
	c.Answers = c.Answers[1:]
	return answer
}
