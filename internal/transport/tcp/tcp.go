package tcp

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"go.uber.org/zap"
)

// ListenOnce waits for exactly one peer on port and stops listening once it
// has connected. Cancelling ctx aborts the wait.
func ListenOnce(ctx context.Context, port int, log *zap.SugaredLogger) (net.Conn, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", ":"+strconv.Itoa(port))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", port, err)
	}
	return acceptOne(ctx, ln, log)
}

func acceptOne(ctx context.Context, ln net.Listener, log *zap.SugaredLogger) (net.Conn, error) {
	defer ln.Close()

	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	log.Infof("[TCP] Waiting for peer on %s", ln.Addr())
	conn, err := ln.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("accept: %w", err)
	}
	log.Infof("[TCP] Peer connected from %s", conn.RemoteAddr())
	return conn, nil
}

func Dial(ctx context.Context, host string, port int, log *zap.SugaredLogger) (net.Conn, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	log.Infof("[TCP] Connecting to %s", addr)

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", addr, err)
	}
	log.Infof("[TCP] Connected to %s", addr)
	return conn, nil
}
