package websocket

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const Path = "/ws"

// Stream turns a message-oriented websocket connection into the ordered byte
// stream the wire codec expects. Every Write is sent as one binary message and
// reads continue across message boundaries.
type Stream struct {
	conn *websocket.Conn

	// conn.WriteMessage is not safe for concurrent use
	writeMu sync.Mutex

	reader io.Reader
}

func NewStream(conn *websocket.Conn) *Stream {
	return &Stream{conn: conn}
}

func (s *Stream) Read(p []byte) (int, error) {
	for {
		if s.reader == nil {
			mt, r, err := s.conn.NextReader()
			if err != nil {
				return 0, err
			}
			if mt != websocket.BinaryMessage {
				continue
			}
			s.reader = r
		}

		n, err := s.reader.Read(p)
		if err == io.EOF {
			s.reader = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (s *Stream) Write(p []byte) (int, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close sends a close frame on a best effort basis and releases the socket.
func (s *Stream) Close() error {
	s.writeMu.Lock()
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	s.writeMu.Unlock()
	return s.conn.Close()
}

func (s *Stream) RemoteAddr() net.Addr {
	return s.conn.RemoteAddr()
}

// Dial connects to the authority's websocket endpoint.
func Dial(ctx context.Context, host string, port int, log *zap.SugaredLogger) (*Stream, error) {
	u := url.URL{Scheme: "ws", Host: net.JoinHostPort(host, strconv.Itoa(port)), Path: Path}
	log.Infof("[WS] Connecting to %s", u.String())

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("connect to %s: %w (status %d)", u.String(), err, resp.StatusCode)
		}
		return nil, fmt.Errorf("connect to %s: %w", u.String(), err)
	}
	log.Infof("[WS] Connected to %s", u.String())
	return NewStream(conn), nil
}
