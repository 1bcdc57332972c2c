package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/iamasit07/4-in-a-row/duel/internal/config"
	"github.com/iamasit07/4-in-a-row/duel/internal/logger"
)

const usage = `Usage:
  connect4 [flags] local              play on this machine
  connect4 [flags] serve [port]       wait for one opponent (default port 9000)
  connect4 [flags] join <host> [port] connect to a waiting server

Flags:
`

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup always happens.
func run() int {
	flags := pflag.NewFlagSet("connect4", pflag.ExitOnError)
	config.RegisterFlags(flags)
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}
	flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 2
	}
	if cfg.TUI && !isatty.IsTerminal(os.Stdin.Fd()) {
		fmt.Fprintln(os.Stderr, "--tui needs a terminal, using line prompts")
		cfg.TUI = false
	}
	cmd, err := parseCommand(flags.Args(), cfg.Port)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n", err)
		flags.Usage()
		return 2
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogOutput())
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 2
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(cfg, log, os.Stdin, os.Stdout)
	defer a.Close()

	done := make(chan error, 1)
	go func() { done <- a.run(ctx, cmd) }()

	select {
	case err = <-done:
	case <-ctx.Done():
		log.Info("Received shutdown signal")
		// A blocked console read cannot be interrupted; give the session a moment to close.
		select {
		case err = <-done:
		case <-time.After(time.Second):
			err = ctx.Err()
		}
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stdout, "\nInterrupted.")
			return 130
		}
		log.Debugf("exit: %v", err)
		return 1
	}
	return 0
}
