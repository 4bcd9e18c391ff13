// Package console is the line-oriented terminal the session talks through.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/term"
)

// Tone selects the style of a Result line.
type Tone int

const (
	ToneGood Tone = iota
	ToneFair
	TonePoor
)

type line struct {
	text string
	err  error
}

// Console reads answers one line at a time and writes prompts and text.
// Reading happens on a background goroutine so a prompt can be abandoned
// when the context is cancelled. Close stops that goroutine.
type Console struct {
	in     io.Reader
	out    io.Writer
	styled bool

	once      sync.Once
	closeOnce sync.Once
	lines     chan line
	done      chan struct{}
	stopped   chan struct{}
}

// New creates a Console. Output is styled only when styled is true.
func New(in io.Reader, out io.Writer, styled bool) *Console {
	return &Console{
		in:      in,
		out:     out,
		styled:  styled,
		lines:   make(chan line, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Stdio creates a Console on the process's standard streams, styled when
// stdout is a terminal and neither noColor nor NO_COLOR is set.
func Stdio(noColor bool) *Console {
	return New(os.Stdin, os.Stdout, ColorEnabled(os.Stdout, noColor))
}

// ColorEnabled reports whether styled output should be written to f.
func ColorEnabled(f *os.File, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(f.Fd())
}

func (c *Console) read() {
	defer close(c.stopped)

	r := bufio.NewReader(c.in)
	for {
		s, err := r.ReadString('\n')
		if s != "" && !c.send(line{text: strings.TrimRight(s, "\r\n")}) {
			return
		}
		if err != nil {
			if c.send(line{err: err}) {
				close(c.lines)
			}
			return
		}
	}
}

// send hands l to the next Prompt, giving up once the console is closed.
func (c *Console) send(l line) bool {
	select {
	case c.lines <- l:
		return true
	case <-c.done:
		return false
	}
}

// Close stops the background reader. A read already blocked on the input
// finishes when the input yields, and its line is dropped. Prompt returns
// io.EOF afterwards. Close is safe to call more than once.
func (c *Console) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	// never start a reader after Close
	c.once.Do(func() { close(c.stopped) })
	return nil
}

// Prompt writes label and waits for the next input line, returned without
// its line terminator. At end of input it returns io.EOF; a final line with
// no terminator is still returned first, and after Close it is io.EOF
// too. When ctx is done it returns ctx.Err().
func (c *Console) Prompt(ctx context.Context, label string) (string, error) {
	c.once.Do(func() { go c.read() })

	select {
	case <-c.done:
		return "", io.EOF
	default:
	}

	fmt.Fprint(c.out, c.render(Label, label))

	select {
	case <-c.done:
		fmt.Fprintln(c.out)
		return "", io.EOF
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return "", ctx.Err()
	case l, ok := <-c.lines:
		if !ok {
			fmt.Fprintln(c.out)
			return "", io.EOF
		}
		if l.err != nil {
			fmt.Fprintln(c.out)
			return "", l.err
		}
		return l.text, nil
	}
}

// Println writes s followed by a newline.
func (c *Console) Println(s string) {
	fmt.Fprintln(c.out, s)
}

// Title writes a banner line.
func (c *Console) Title(s string) {
	fmt.Fprintln(c.out, c.render(Title, s))
}

// Heading writes a section heading preceded by a blank line.
func (c *Console) Heading(s string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.render(Heading, s))
}

// Block writes a multi-line body such as a summary.
func (c *Console) Block(s string) {
	fmt.Fprintln(c.out, c.render(Card, s))
}

// Hint writes secondary, de-emphasized text.
func (c *Console) Hint(s string) {
	fmt.Fprintln(c.out, c.render(Hint, s))
}

// Result writes an outcome line colored by tone.
func (c *Console) Result(s string, tone Tone) {
	st := Poor
	switch tone {
	case ToneGood:
		st = Good
	case ToneFair:
		st = Fair
	}
	fmt.Fprintln(c.out, c.render(st, s))
}

func (c *Console) render(st lipgloss.Style, s string) string {
	if !c.styled {
		return s
	}
	return st.Render(s)
}
