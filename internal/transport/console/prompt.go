// Package console is the terminal side of the game: reading columns and
// setup answers from a human, and printing boards and results.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iamasit07/4-in-a-row/duel/internal/domain"
)

// Prompt reads answers line by line. One Prompt should own the input stream
// so that buffered input is not lost between questions.
type Prompt struct {
	in      *bufio.Reader
	out     io.Writer
	markers domain.Markers
}

func NewPrompt(in io.Reader, out io.Writer, markers domain.Markers) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out, markers: markers}
}

// SetMarkers changes the symbols used in move prompts.
func (p *Prompt) SetMarkers(m domain.Markers) {
	p.markers = m
}

func (p *Prompt) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// readInt returns the first integer answer in [lo, hi]. Other lines are
// reported and discarded.
func (p *Prompt) readInt(lo, hi int, rangeMsg string) (int, error) {
	for {
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		n, err := parseInt(line)
		if err != nil {
			fmt.Fprintf(p.out, "Invalid input. Enter a number (%d-%d): ", lo, hi)
			continue
		}
		if n < lo || n > hi {
			fmt.Fprintf(p.out, "%s (%d-%d): ", rangeMsg, lo, hi)
			continue
		}
		return n, nil
	}
}

func parseInt(s string) (int, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, domain.ErrInputFormat
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInputFormat, fields[0])
	}
	return n, nil
}

// ReadColumn reads a 1-based column and returns it 0-based.
func (p *Prompt) ReadColumn() (int, error) {
	n, err := p.readInt(1, domain.Columns, "Invalid column. Enter a number")
	if err != nil {
		return -1, err
	}
	return n - 1, nil
}

// NextMove asks the human playing self for a column.
func (p *Prompt) NextMove(ctx context.Context, board domain.Board, self domain.PlayerID) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	fmt.Fprintf(p.out, "Player %c, enter column (1-%d): ", p.markers.For(self), domain.Columns)
	return p.ReadColumn()
}

// AskInt prints question and reads a number in [lo, hi].
func (p *Prompt) AskInt(question string, lo, hi int) (int, error) {
	fmt.Fprint(p.out, question)
	return p.readInt(lo, hi, "Please choose")
}

// AskMarker reads a single printable symbol that differs from taken.
func (p *Prompt) AskMarker(question string, taken byte) (byte, error) {
	for {
		fmt.Fprint(p.out, question)
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if len(line) != 1 || line[0] <= ' ' || line[0] > '~' {
			fmt.Fprintln(p.out, "Enter exactly one printable character.")
			continue
		}
		if line[0] == domain.EmptyMarker || line[0] == taken {
			fmt.Fprintf(p.out, "Symbol %q is not available.\n", line[0])
			continue
		}
		return line[0], nil
	}
}
