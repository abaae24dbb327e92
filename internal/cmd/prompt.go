package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

// prompter asks for missing values on the command's input. Passwords are
// read without echo when the input is a terminal.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  uintptr
	tty bool
}

func newPrompter(cmd *cobra.Command) *prompter {
	in := cmd.InOrStdin()
	p := &prompter{
		in:  bufio.NewReader(in),
		out: cmd.ErrOrStderr(),
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(f.Fd()) {
		p.fd = f.Fd()
		p.tty = true
	}
	return p
}

// value returns current when set, otherwise asks for label.
func (p *prompter) value(label, current string) (string, error) {
	if current = strings.TrimSpace(current); current != "" {
		return current, nil
	}
	fmt.Fprintf(p.out, "%s: ", label)
	return p.readLine(label)
}

func (p *prompter) password(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if !p.tty {
		return p.readLine(label)
	}
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return string(b), nil
}

// confirm asks a yes/no question. Anything but y or yes is a no.
func (p *prompter) confirm(question string) bool {
	fmt.Fprintf(p.out, "%s [y/N] ", question)
	answer, err := p.readLine("answer")
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}

func (p *prompter) readLine(label string) (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%s is required", strings.ToLower(label))
		}
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
