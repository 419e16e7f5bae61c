package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNonInteractive is returned when confirmation is required but stdin is
// not a terminal. Callers skip the file.
var ErrNonInteractive = errors.New("non-interactive stdin: use --yes to overwrite existing output")

type Confirmer struct {
	In            io.Reader
	Out           io.Writer
	IsInteractive func() bool

	reader *bufio.Reader
}

func DefaultConfirmer() *Confirmer {
	return &Confirmer{
		In:  os.Stdin,
		Out: os.Stderr,
		IsInteractive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// ConfirmOverwrite asks whether the existing output at path may be replaced.
// It is safe to call repeatedly on the same Confirmer.
func (c *Confirmer) ConfirmOverwrite(path string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	if c.IsInteractive == nil || !c.IsInteractive() {
		return false, ErrNonInteractive
	}
	if c.Out != nil {
		fmt.Fprintf(c.Out, "Output file %s already exists. Overwrite? (y/N): ", path)
	}
	if c.reader == nil {
		c.reader = bufio.NewReader(c.In)
	}
	response, err := c.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
