package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/rios0rios0/pkgprovision/internal/domain/repositories"
)

// Prompter asks the operator questions on the terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

// NewPrompter creates a prompter bound to stdin/stderr.
func NewPrompter() *Prompter {
	return NewPrompterWithIO(os.Stdin, os.Stderr, int(os.Stdin.Fd()))
}

// NewPrompterWithIO creates a prompter over arbitrary streams. fd is used to read
// secrets without echo when it refers to a terminal.
func NewPrompterWithIO(in io.Reader, out io.Writer, fd int) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, fd: fd}
}

// NewConfirmer exposes the prompter as the domain decision source.
func NewConfirmer(prompter *Prompter) repositories.Confirmer {
	return prompter
}

// Confirm asks a yes/no question. Anything but "y" or "yes" (including EOF) is "no".
func (p *Prompter) Confirm(question string) bool {
	answer, err := p.Ask(question + " [y/N]")
	if err != nil {
		logger.Debugf("No answer to %q: %v", question, err)
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Ask reads a single trimmed line.
func (p *Prompter) Ask(question string) (string, error) {
	fmt.Fprintf(p.out, "%s ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// AskSecret reads a line without echoing it when stdin is a terminal.
func (p *Prompter) AskSecret(question string) (string, error) {
	if !term.IsTerminal(p.fd) {
		return p.Ask(question)
	}

	fmt.Fprintf(p.out, "%s ", question)
	secret, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}
