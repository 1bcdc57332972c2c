package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/iamasit07/4-in-a-row/duel/internal/domain"
)

func RenderBoard(w io.Writer, b *domain.Board, m domain.Markers) {
	var sb strings.Builder
	for r := 0; r < domain.Rows; r++ {
		for c := 0; c < domain.Columns; c++ {
			sb.WriteByte(m.For(b[r][c]))
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	for c := 0; c < domain.Columns; c++ {
		fmt.Fprintf(&sb, "%d ", c+1)
	}
	sb.WriteString("\n\n")
	io.WriteString(w, sb.String())
}

// View prints game progress for the local player. Names label the two sides
// in messages ("Server", "Client", "Bot", ...); empty names fall back to the marker.
type View struct {
	Out     io.Writer
	Markers domain.Markers
	NameA   string
	NameB   string
}

func (v *View) name(p domain.PlayerID) string {
	name := v.NameA
	if p == domain.Player2 {
		name = v.NameB
	}
	if name == "" {
		return fmt.Sprintf("Player %c", v.Markers.For(p))
	}
	return fmt.Sprintf("%s (Player %c)", name, v.Markers.For(p))
}

func (v *View) BoardChanged(b domain.Board) {
	RenderBoard(v.Out, &b, v.Markers)
}

func (v *View) MoveRejected(p domain.PlayerID, column int, err error) {
	fmt.Fprintf(v.Out, "Invalid move for %s in column %d: %v. Try again.\n", v.name(p), column+1, err)
}

func (v *View) MovePlayed(p domain.PlayerID, column int) {
	fmt.Fprintf(v.Out, "%s played column %d\n", v.name(p), column+1)
}

func (v *View) Waiting(p domain.PlayerID) {
	fmt.Fprintf(v.Out, "Waiting for %s...\n", v.name(p))
}

func (v *View) GameOver(status domain.GameStatus, err error) {
	switch status {
	case domain.StatusWinA:
		fmt.Fprintf(v.Out, "%s wins!\n", v.name(domain.Player1))
	case domain.StatusWinB:
		fmt.Fprintf(v.Out, "%s wins!\n", v.name(domain.Player2))
	case domain.StatusDraw:
		fmt.Fprintln(v.Out, "It's a draw!")
	default:
		if err != nil {
			fmt.Fprintf(v.Out, "Game aborted: %v\n", err)
		} else {
			fmt.Fprintln(v.Out, "Game aborted.")
		}
	}
}
