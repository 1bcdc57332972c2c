package console

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/iamasit07/4-in-a-row/duel/internal/domain"
)

var (
	colorA      = tcell.ColorRed
	colorB      = tcell.ColorYellow
	colorEmpty  = tcell.ColorGray
	colorCursor = tcell.ColorGreen
)

// Screen is the full-terminal front end: a board widget, a message pane and
// a hint line. It plays the human side through NextMove and reports progress
// as a game observer. Messages reuse View, so both front ends say the same thing.
type Screen struct {
	*View

	app  *tview.Application
	grid *tview.Box
	pane *tview.TextView
	hint *tview.TextView

	mu       sync.Mutex
	board    domain.Board
	selected int

	moves    chan int
	quit     chan struct{}
	quitOnce sync.Once
	started  atomic.Bool
	running  atomic.Bool
	done     chan struct{}
}

func NewScreen(markers domain.Markers, nameA, nameB string) *Screen {
	s := &Screen{
		app:      tview.NewApplication(),
		grid:     tview.NewBox(),
		pane:     tview.NewTextView(),
		hint:     tview.NewTextView(),
		board:    domain.NewBoard(),
		selected: domain.Center,
		moves:    make(chan int, 1),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	s.View = &View{Out: paneWriter{s}, Markers: markers, NameA: nameA, NameB: nameB}

	s.grid.SetBorder(true).SetTitle(" Connect Four ")
	s.grid.SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
		s.mu.Lock()
		board, selected := s.board, s.selected
		s.mu.Unlock()
		drawBoard(screen, x+2, y+1, &board, s.Markers, selected)
		return x, y, width, height
	})
	s.pane.SetScrollable(true).ScrollToEnd()
	s.pane.SetBorder(true).SetTitle(" Moves ")

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(s.grid, domain.Rows+4, 0, false).
		AddItem(s.pane, 0, 1, false).
		AddItem(s.hint, 1, 0, false)

	s.app.SetRoot(layout, true).SetInputCapture(s.handleKey)
	return s
}

// drawBoard paints the cursor row, the six board rows and the column numbers.
// Every cell is two characters wide.
func drawBoard(scr tcell.Screen, x, y int, b *domain.Board, m domain.Markers, selected int) {
	base := tcell.StyleDefault
	for c := 0; c < domain.Columns; c++ {
		cursor := ' '
		if c == selected {
			cursor = 'v'
		}
		scr.SetContent(x+c*2, y, cursor, nil, base.Foreground(colorCursor))
	}
	for r := 0; r < domain.Rows; r++ {
		for c := 0; c < domain.Columns; c++ {
			p := b[r][c]
			style := base.Foreground(colorEmpty)
			switch p {
			case domain.Player1:
				style = base.Foreground(colorA).Bold(true)
			case domain.Player2:
				style = base.Foreground(colorB).Bold(true)
			}
			scr.SetContent(x+c*2, y+1+r, rune(m.For(p)), nil, style)
			scr.SetContent(x+c*2+1, y+1+r, ' ', nil, base)
		}
	}
	for c := 0; c < domain.Columns; c++ {
		style := base
		if c == selected {
			style = base.Foreground(colorCursor)
		}
		scr.SetContent(x+c*2, y+1+domain.Rows, rune('1'+c), nil, style)
	}
}

// paneWriter appends View messages to the message pane.
type paneWriter struct{ s *Screen }

func (w paneWriter) Write(p []byte) (int, error) {
	n, err := w.s.pane.Write(p)
	w.s.redraw()
	return n, err
}

func (s *Screen) redraw() {
	if s.running.Load() {
		go s.app.QueueUpdateDraw(func() {})
	}
}

func (s *Screen) setHint(text string) {
	s.hint.SetText(text)
	s.redraw()
}

// Start runs the terminal UI until Quit or Stop.
func (s *Screen) Start() {
	s.started.Store(true)
	s.running.Store(true)
	go func() {
		defer close(s.done)
		if err := s.app.Run(); err != nil {
			fmt.Fprintf(s.pane, "terminal error: %v\n", err)
		}
		s.running.Store(false)
		s.Quit()
	}()
}

// Stop restores the terminal. It is safe to call when Start was never called.
func (s *Screen) Stop() {
	if !s.started.Load() {
		return
	}
	if s.running.Load() {
		s.app.Stop()
	}
	<-s.done
}

// Quit releases a pending NextMove with an end-of-input error.
func (s *Screen) Quit() {
	s.quitOnce.Do(func() { close(s.quit) })
	if s.running.Load() {
		s.app.Stop()
	}
}

// Wait keeps the final position on screen until the player leaves.
func (s *Screen) Wait(ctx context.Context) {
	s.setHint("Game over. Press q to quit.")
	select {
	case <-s.quit:
	case <-ctx.Done():
	}
	s.Stop()
}

func (s *Screen) BoardChanged(b domain.Board) {
	s.mu.Lock()
	s.board = b
	s.mu.Unlock()
	s.redraw()
}

func (s *Screen) send(column int) {
	select {
	case s.moves <- column:
	default:
	}
}

func (s *Screen) handleKey(ev *tcell.EventKey) *tcell.EventKey {
	switch ev.Key() {
	case tcell.KeyLeft:
		s.moveSelection(-1)
	case tcell.KeyRight:
		s.moveSelection(1)
	case tcell.KeyEnter:
		s.mu.Lock()
		column := s.selected
		s.mu.Unlock()
		s.send(column)
	case tcell.KeyCtrlC, tcell.KeyEscape:
		s.Quit()
	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r == 'h':
			s.moveSelection(-1)
		case r == 'l':
			s.moveSelection(1)
		case r == 'q':
			s.Quit()
		case r >= '1' && r < '1'+domain.Columns:
			s.send(int(r - '1'))
		}
	}
	return nil
}

func (s *Screen) moveSelection(delta int) {
	s.mu.Lock()
	s.selected = min(max(s.selected+delta, 0), domain.Columns-1)
	s.mu.Unlock()
	s.redraw()
}

// NextMove waits for a column key or Enter on the selected column. Keys
// pressed while it was not this player's turn are dropped.
func (s *Screen) NextMove(ctx context.Context, board domain.Board, self domain.PlayerID) (int, error) {
drain:
	for {
		select {
		case <-s.moves:
		default:
			break drain
		}
	}

	s.setHint(fmt.Sprintf("Player %c: press 1-%d, or move with left/right and press Enter. q quits.",
		s.Markers.For(self), domain.Columns))
	defer s.setHint("")

	select {
	case column := <-s.moves:
		return column, nil
	case <-s.quit:
		return -1, fmt.Errorf("read input: %w", io.EOF)
	case <-ctx.Done():
		return -1, ctx.Err()
	}
}
