package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/roach88/protosim/internal/sim"
)

var _ sim.ModeSelector = (*Prompter)(nil)

// Prompter asks the user to choose between login and read-only mode.
// It re-prompts on any answer other than "1" or "2" and has no time limit.
type Prompter struct {
	console *Console
	reader  *bufio.Reader
}

// NewPrompter reads answers from in and renders through c.
func NewPrompter(c *Console, in io.Reader) *Prompter {
	return &Prompter{console: c, reader: bufio.NewReader(in)}
}

type line struct {
	text string
	err  error
}

// SelectMode prints the menu and blocks until a valid answer, end of input,
// or ctx cancellation. End of input is an error.
func (p *Prompter) SelectMode(ctx context.Context) (sim.Mode, error) {
	p.console.Menu()

	lines := make(chan line)
	done := make(chan struct{})
	defer close(done)
	go p.readLines(lines, done)

	for {
		p.console.Ask()

		var l line
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case l = <-lines:
		}
		if l.err != nil {
			return 0, fmt.Errorf("read selection: %w", l.err)
		}

		switch strings.TrimSpace(l.text) {
		case "1":
			return sim.ModeLogin, nil
		case "2":
			return sim.ModeReadOnly, nil
		default:
			p.console.InvalidSelection()
		}
	}
}

// readLines feeds lines to out until the reader fails or done is closed.
// A final unterminated line is delivered before the error.
func (p *Prompter) readLines(out chan<- line, done <-chan struct{}) {
	for {
		text, err := p.reader.ReadString('\n')
		l := line{text: text}
		if err != nil && text == "" {
			l.err = err
		}
		select {
		case out <- l:
		case <-done:
			return
		}
		if l.err != nil {
			return
		}
	}
}
