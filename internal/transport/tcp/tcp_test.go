package tcp

import (
	"context"
	"errors"
	"net"
	"strconv"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestAcceptOneThenDial(t *testing.T) {
	log := zap.NewNop().Sugar()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := ln.Addr().(*net.TCPAddr).Port

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := acceptOne(ctx, ln, log)
		if err != nil {
			t.Errorf("accept: %v", err)
		}
		accepted <- conn
	}()

	client, err := Dial(ctx, "127.0.0.1", port, log)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	server := <-accepted
	if server == nil {
		t.FailNow()
	}
	defer server.Close()

	if _, err := client.Write([]byte("ping")); err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, 4)
	if _, err := server.Read(buf); err != nil || string(buf) != "ping" {
		t.Fatalf("read %q (%v)", buf, err)
	}

	// the listener is closed after the first peer
	if c, err := net.DialTimeout("tcp", "127.0.0.1:"+strconv.Itoa(port), time.Second); err == nil {
		c.Close()
		t.Fatalf("second peer should be refused")
	}
}

func TestAcceptOneHonoursCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	if _, err := acceptOne(ctx, ln, zap.NewNop().Sugar()); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}
