package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1 // PlayerA, the accepting peer
	Player2 PlayerID = 2 // PlayerB, the connecting peer
)

// Opponent returns the other side. Empty maps to Empty.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "A"
	case Player2:
		return "B"
	}
	return "empty"
}

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
	Center  = Columns / 2
)

// GameStatus values double as the wire status codes.
type GameStatus int

const (
	StatusOngoing GameStatus = 0
	StatusWinA    GameStatus = 1
	StatusWinB    GameStatus = 2
	StatusDraw    GameStatus = 3

	// StatusAborted is a local outcome only and is never transmitted.
	StatusAborted GameStatus = -1
)

func (s GameStatus) IsTerminal() bool {
	return s != StatusOngoing
}

func (s GameStatus) String() string {
	switch s {
	case StatusOngoing:
		return "ongoing"
	case StatusWinA:
		return "win_a"
	case StatusWinB:
		return "win_b"
	case StatusDraw:
		return "draw"
	case StatusAborted:
		return "aborted"
	}
	return "status(" + strconv.Itoa(int(s)) + ")"
}

// WinStatus maps a winning side to its status code.
func WinStatus(p PlayerID) GameStatus {
	if p == Player2 {
		return StatusWinB
	}
	return StatusWinA
}

// Mode is announced once by the authority at session start.
type Mode int

const (
	ModeHumanVsHuman Mode = 1
	ModeVsBot        Mode = 2
)

func (m Mode) Valid() bool {
	return m == ModeHumanVsHuman || m == ModeVsBot
}

type Difficulty int

const (
	Easy   Difficulty = 1
	Medium Difficulty = 2
	Hard   Difficulty = 3
)

var BotNames = map[Difficulty]string{
	Easy:   "Alice",
	Medium: "Bob",
	Hard:   "Charles",
}

func GetBotName(d Difficulty) string {
	if name, ok := BotNames[d]; ok {
		return name
	}
	return "BOT"
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return "difficulty(" + strconv.Itoa(int(d)) + ")"
}

// ParseDifficulty accepts either the tier number or its name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "easy":
		return Easy, nil
	case "2", "medium":
		return Medium, nil
	case "3", "hard":
		return Hard, nil
	}
	return 0, fmt.Errorf("unknown difficulty %q", s)
}

// Markers are the characters used for the two sides on the wire and on screen.
type Markers struct {
	A byte
	B byte
}

const EmptyMarker byte = '.'

var DefaultMarkers = Markers{A: 'X', B: 'O'}

func (m Markers) Validate() error {
	if m.A == EmptyMarker || m.B == EmptyMarker {
		return fmt.Errorf("marker %q is reserved for empty cells", EmptyMarker)
	}
	if m.A == m.B {
		return fmt.Errorf("both sides use marker %q", m.A)
	}
	if m.A <= ' ' || m.B <= ' ' {
		return fmt.Errorf("markers must be printable")
	}
	return nil
}

func (m Markers) For(p PlayerID) byte {
	switch p {
	case Player1:
		return m.A
	case Player2:
		return m.B
	}
	return EmptyMarker
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove       Error = "invalid move"
	ErrColumnFull        Error = "column is full"
	ErrNoMoves           Error = "no legal moves"
	ErrProtocolViolation Error = "protocol violation"
	ErrTransport         Error = "connection lost"
	ErrInputFormat       Error = "invalid input"
)
