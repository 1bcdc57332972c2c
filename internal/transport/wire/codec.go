// Package wire implements the fixed-size binary protocol spoken between the
// authority and the remote peer. Integers are 4 bytes in network byte order;
// the board travels as 42 raw marker bytes, top row first.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/iamasit07/4-in-a-row/duel/internal/domain"
)

const (
	BoardSize    = domain.Rows * domain.Columns
	IntSize      = 4
	SnapshotSize = BoardSize + 2*IntSize
)

// Markers are the cell bytes both peers use on the wire. Local display
// symbols never travel, so peers with different settings still agree.
var Markers = domain.DefaultMarkers

// Snapshot is what the authority transmits after every accepted move.
type Snapshot struct {
	Board    domain.Board
	Status   domain.GameStatus
	YourTurn bool
}

// Codec reads and writes protocol messages on an ordered byte stream.
// A short read or write is a transport failure and is never retried.
type Codec struct {
	rw      io.ReadWriter
	markers domain.Markers
}

func NewCodec(rw io.ReadWriter, markers domain.Markers) *Codec {
	return &Codec{rw: rw, markers: markers}
}

func (c *Codec) SendMode(mode domain.Mode) error {
	return c.writeInt("mode", int(mode))
}

// RecvMode returns the raw mode value; callers decide what is acceptable.
func (c *Codec) RecvMode() (domain.Mode, error) {
	v, err := c.readInt("mode")
	return domain.Mode(v), err
}

func (c *Codec) SendSnapshot(s Snapshot) error {
	if s.Status < domain.StatusOngoing || s.Status > domain.StatusDraw {
		return fmt.Errorf("status %v cannot be transmitted", s.Status)
	}

	buf := make([]byte, SnapshotSize)
	board := EncodeBoard(&s.Board, c.markers)
	copy(buf, board[:])
	binary.BigEndian.PutUint32(buf[BoardSize:], uint32(int32(s.Status)))
	turn := 0
	if s.YourTurn {
		turn = 1
	}
	binary.BigEndian.PutUint32(buf[BoardSize+IntSize:], uint32(int32(turn)))

	if _, err := c.rw.Write(buf); err != nil {
		return fmt.Errorf("%w: write snapshot: %w", domain.ErrTransport, err)
	}
	return nil
}

func (c *Codec) RecvSnapshot() (Snapshot, error) {
	var raw [BoardSize]byte
	if _, err := io.ReadFull(c.rw, raw[:]); err != nil {
		return Snapshot{}, fmt.Errorf("%w: read board: %w", domain.ErrTransport, err)
	}
	status, err := c.readInt("status")
	if err != nil {
		return Snapshot{}, err
	}
	turn, err := c.readInt("yourTurn")
	if err != nil {
		return Snapshot{}, err
	}

	board, err := DecodeBoard(raw[:], c.markers)
	if err != nil {
		return Snapshot{}, err
	}
	if status < int(domain.StatusOngoing) || status > int(domain.StatusDraw) {
		return Snapshot{}, fmt.Errorf("%w: status %d", domain.ErrProtocolViolation, status)
	}
	if turn != 0 && turn != 1 {
		return Snapshot{}, fmt.Errorf("%w: yourTurn %d", domain.ErrProtocolViolation, turn)
	}
	return Snapshot{Board: board, Status: domain.GameStatus(status), YourTurn: turn == 1}, nil
}

func (c *Codec) SendMove(column int) error {
	return c.writeInt("move", column)
}

// RecvMove returns the column as sent. Legality is checked by the coordinator.
func (c *Codec) RecvMove() (int, error) {
	return c.readInt("move")
}

func (c *Codec) writeInt(field string, v int) error {
	var buf [IntSize]byte
	binary.BigEndian.PutUint32(buf[:], uint32(int32(v)))
	if _, err := c.rw.Write(buf[:]); err != nil {
		return fmt.Errorf("%w: write %s: %w", domain.ErrTransport, field, err)
	}
	return nil
}

func (c *Codec) readInt(field string) (int, error) {
	var buf [IntSize]byte
	if _, err := io.ReadFull(c.rw, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: read %s: %w", domain.ErrTransport, field, err)
	}
	return int(int32(binary.BigEndian.Uint32(buf[:]))), nil
}

func EncodeBoard(b *domain.Board, m domain.Markers) [BoardSize]byte {
	var out [BoardSize]byte
	for r := 0; r < domain.Rows; r++ {
		for c := 0; c < domain.Columns; c++ {
			out[r*domain.Columns+c] = m.For(b[r][c])
		}
	}
	return out
}

// DecodeBoard rebuilds a board from its wire form. Unknown bytes and pieces
// floating above an empty cell are protocol violations.
func DecodeBoard(raw []byte, m domain.Markers) (domain.Board, error) {
	var b domain.Board
	if len(raw) != BoardSize {
		return b, fmt.Errorf("%w: board is %d bytes", domain.ErrProtocolViolation, len(raw))
	}
	for i, ch := range raw {
		r, c := i/domain.Columns, i%domain.Columns
		switch ch {
		case domain.EmptyMarker:
			b[r][c] = domain.Empty
		case m.A:
			b[r][c] = domain.Player1
		case m.B:
			b[r][c] = domain.Player2
		default:
			return domain.Board{}, fmt.Errorf("%w: unknown cell %q at row %d column %d", domain.ErrProtocolViolation, ch, r, c)
		}
	}
	if !b.Settled() {
		return domain.Board{}, fmt.Errorf("%w: floating piece on board", domain.ErrProtocolViolation)
	}
	return b, nil
}
