package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (r *runner) reader(cmd *cobra.Command) *bufio.Reader {
	if r.in == nil {
		r.in = bufio.NewReader(cmd.InOrStdin())
	}
	return r.in
}

func (r *runner) readLine(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(out(cmd), prompt)
	line, err := r.reader(cmd).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (r *runner) readPassword(cmd *cobra.Command, prompt string) (string, error) {
	if r.opts.ReadPassword != nil {
		return r.opts.ReadPassword(prompt)
	}
	if cmd.InOrStdin() != os.Stdin || !term.IsTerminal(int(os.Stdin.Fd())) {
		return r.readLine(cmd, prompt)
	}
	fmt.Fprint(out(cmd), prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out(cmd))
	return string(pass), err
}

// confirm asks a yes/no question; anything but y or yes is a no.
func (r *runner) confirm(cmd *cobra.Command, question string) bool {
	answer, err := r.readLine(cmd, question+" [y/N]: ")
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
