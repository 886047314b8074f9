package tools

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Prompt asks the user to confirm the next step.
type Prompt struct {
	AssumeYes bool

	in  io.Reader
	out io.Writer
	r   *bufio.Reader
}

// NewPrompt reads answers from in and writes questions to out.
func NewPrompt(in io.Reader, out io.Writer, assumeYes bool) *Prompt {
	return &Prompt{AssumeYes: assumeYes, in: in, out: out, r: bufio.NewReader(in)}
}

// Confirm waits for ENTER. It returns ErrAborted if the input is closed.
func (p *Prompt) Confirm(what string) error {
	if p.AssumeYes {
		return nil
	}

	if f, ok := p.in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) { //nolint:gosec
		return ErrNotInteractive
	}

	_, _ = fmt.Fprintf(p.out, "Press ENTER to %s, CTRL+C to abort.", what)

	if _, err := p.r.ReadString('\n'); err != nil {
		_, _ = fmt.Fprintln(p.out)
		return ErrAborted
	}

	return nil
}
