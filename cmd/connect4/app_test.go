package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row/duel/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:             9000,
		Transport:        "tcp",
		Difficulty:       "3",
		RemoteDifficulty: "3",
		SearchDepth:      2,
		SearchWorkers:    1,
		CacheTTL:         time.Hour,
		LogLevel:         "info",
		MarkerA:          "X",
		MarkerB:          "O",
	}
}

func TestLocalHumanVersusHuman(t *testing.T) {
	in := strings.NewReader("1\nR\nY\n4\n3\n4\n3\n4\n3\n4\n")
	var out bytes.Buffer
	a := newApp(testConfig(), zap.NewNop().Sugar(), in, &out)

	if err := a.run(context.Background(), command{name: "local"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Player R wins!") {
		t.Fatalf("missing winner in output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Player Y, enter column") {
		t.Fatalf("second player was not prompted with its symbol:\n%s", out.String())
	}
}

func TestLocalHumanVersusBot(t *testing.T) {
	var script strings.Builder
	script.WriteString("2\nX\n1\n")
	for i := 0; i < 30; i++ {
		script.WriteString("1\n2\n3\n4\n5\n6\n7\n")
	}
	var out bytes.Buffer
	a := newApp(testConfig(), zap.NewNop().Sugar(), strings.NewReader(script.String()), &out)

	if err := a.run(context.Background(), command{name: "local"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "wins!") && !strings.Contains(got, "It's a draw!") {
		t.Fatalf("game did not finish:\n%s", got)
	}
	if !strings.Contains(got, "Alice (bot)") {
		t.Fatalf("bot name missing:\n%s", got)
	}
}

func TestLocalRejectsBotSymbol(t *testing.T) {
	in := strings.NewReader("2\nO\n")
	var out bytes.Buffer
	a := newApp(testConfig(), zap.NewNop().Sugar(), in, &out)

	if err := a.run(context.Background(), command{name: "local"}); err == nil {
		t.Fatal("expected EOF after the rejected symbol")
	}
	if !strings.Contains(out.String(), "not available") {
		t.Fatalf("symbol O should be refused:\n%s", out.String())
	}
}
