package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/iamasit07/4-in-a-row/duel/internal/domain"
)

func TestNextMoveSkipsBadInput(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompt(strings.NewReader("abc\n\n9\n0\n 4 \n"), &out, domain.DefaultMarkers)

	col, err := p.NextMove(context.Background(), domain.NewBoard(), domain.Player2)
	if err != nil {
		t.Fatalf("next move: %v", err)
	}
	if col != 3 {
		t.Fatalf("got column %d, want 3", col)
	}

	text := out.String()
	if !strings.HasPrefix(text, "Player O, enter column (1-7): ") {
		t.Fatalf("unexpected prompt %q", text)
	}
	if strings.Count(text, "Invalid input") != 2 || strings.Count(text, "Invalid column") != 2 {
		t.Fatalf("expected two format and two range complaints, got %q", text)
	}
}

func TestReadColumnEOF(t *testing.T) {
	p := NewPrompt(strings.NewReader("x\n"), io.Discard, domain.DefaultMarkers)
	if _, err := p.ReadColumn(); !errors.Is(err, io.EOF) {
		t.Fatalf("got %v, want EOF", err)
	}
}

func TestLastLineWithoutNewline(t *testing.T) {
	p := NewPrompt(strings.NewReader("7"), io.Discard, domain.DefaultMarkers)
	col, err := p.ReadColumn()
	if err != nil || col != 6 {
		t.Fatalf("got %d (%v), want 6", col, err)
	}
}

func TestSharedReaderKeepsBufferedAnswers(t *testing.T) {
	p := NewPrompt(strings.NewReader("2\nX\nO\n3\n"), io.Discard, domain.DefaultMarkers)
	mode, _ := p.AskInt("mode? ", 1, 2)
	a, _ := p.AskMarker("A? ", 0)
	b, _ := p.AskMarker("B? ", a)
	d, err := p.AskInt("difficulty? ", 1, 3)
	if err != nil || mode != 2 || a != 'X' || b != 'O' || d != 3 {
		t.Fatalf("got mode=%d a=%c b=%c d=%d err=%v", mode, a, b, d, err)
	}
}

func TestAskMarkerRejectsTakenAndReserved(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompt(strings.NewReader("X\n.\nab\nY\n"), &out, domain.DefaultMarkers)
	m, err := p.AskMarker("B? ", 'X')
	if err != nil || m != 'Y' {
		t.Fatalf("got %q (%v), want 'Y'", m, err)
	}
	if strings.Count(out.String(), "not available") != 2 {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestNextMoveHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewPrompt(strings.NewReader("1\n"), io.Discard, domain.DefaultMarkers)
	if _, err := p.NextMove(ctx, domain.NewBoard(), domain.Player1); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
}

func TestRenderBoard(t *testing.T) {
	b := domain.NewBoard()
	b.Drop(0, domain.Player1)
	b.Drop(0, domain.Player2)
	var out bytes.Buffer
	RenderBoard(&out, &b, domain.DefaultMarkers)

	lines := strings.Split(out.String(), "\n")
	if lines[4] != "O . . . . . . " || lines[5] != "X . . . . . . " || lines[6] != "1 2 3 4 5 6 7 " {
		t.Fatalf("unexpected rendering:\n%s", out.String())
	}
}

func TestViewMessages(t *testing.T) {
	var out bytes.Buffer
	v := &View{Out: &out, Markers: domain.DefaultMarkers, NameA: "Server"}
	v.MovePlayed(domain.Player1, 3)
	v.GameOver(domain.StatusWinB, nil)
	v.GameOver(domain.StatusAborted, domain.ErrTransport)

	want := "Server (Player X) played column 4\nPlayer O wins!\nGame aborted: connection lost\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}
