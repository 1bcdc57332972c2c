package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row/duel/internal/config"
	"github.com/iamasit07/4-in-a-row/duel/internal/domain"
	"github.com/iamasit07/4-in-a-row/duel/internal/repository/redis"
	"github.com/iamasit07/4-in-a-row/duel/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/duel/internal/service/game"
	"github.com/iamasit07/4-in-a-row/duel/internal/transport/console"
	"github.com/iamasit07/4-in-a-row/duel/internal/transport/tcp"
	"github.com/iamasit07/4-in-a-row/duel/internal/transport/websocket"
)

type app struct {
	cfg    *config.Config
	log    *zap.SugaredLogger
	out    io.Writer
	prompt *console.Prompt
	engine *bot.Engine

	cache  game.CacheRepository
	closer io.Closer
}

func newApp(cfg *config.Config, log *zap.SugaredLogger, in io.Reader, out io.Writer) *app {
	return &app{
		cfg:    cfg,
		log:    log,
		out:    out,
		prompt: console.NewPrompt(in, out, cfg.Markers()),
		engine: bot.NewEngine(bot.WithDepth(cfg.SearchDepth), bot.WithWorkers(cfg.SearchWorkers)),
	}
}

func (a *app) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

// connectCache enables the move cache when redis is configured and reachable.
func (a *app) connectCache(ctx context.Context) {
	if !a.cfg.CacheEnabled() {
		return
	}
	client, err := redis.NewClient(ctx, a.cfg.RedisURL, a.cfg.RedisPassword, a.log)
	if err != nil {
		a.log.Warnf("[CACHE] Redis unavailable, move cache disabled: %v", err)
		return
	}
	c := redis.NewRedisCache(client)
	a.cache, a.closer = c, c
}

func (a *app) botMover(d domain.Difficulty) *game.BotMover {
	return &game.BotMover{
		Engine:     a.engine,
		Difficulty: d,
		Cache:      a.cache,
		CacheTTL:   a.cfg.CacheTTL,
		Log:        a.log,
	}
}

// frontend is where a session is shown and where the local human plays.
type frontend struct {
	*console.View
	observer game.Observer
	human    game.Mover
	screen   *console.Screen
}

// newFrontend starts the full-screen board when configured, else the line
// console. Setup questions are asked on the line console before this.
func (a *app) newFrontend(markers domain.Markers, nameA, nameB string) *frontend {
	if a.cfg.TUI {
		s := console.NewScreen(markers, nameA, nameB)
		s.Start()
		return &frontend{View: s.View, observer: s, human: s, screen: s}
	}
	a.prompt.SetMarkers(markers)
	v := &console.View{Out: a.out, Markers: markers, NameA: nameA, NameB: nameB}
	return &frontend{View: v, observer: v, human: a.prompt}
}

// finish keeps the final board up until the player leaves the screen.
func (f *frontend) finish(ctx context.Context) {
	if f.screen != nil {
		f.screen.Wait(ctx)
	}
}

func (a *app) run(ctx context.Context, cmd command) error {
	a.connectCache(ctx)
	switch cmd.name {
	case "local":
		return a.runLocal(ctx)
	case "serve":
		return a.runServe(ctx, cmd.port)
	case "join":
		return a.runJoin(ctx, cmd.host, cmd.port)
	}
	return fmt.Errorf("unknown command %q", cmd.name)
}

func (a *app) runLocal(ctx context.Context) error {
	mode, err := a.prompt.AskInt("Choose mode: 1) Human vs Human  2) Human vs Bot: ", 1, 2)
	if err != nil {
		return err
	}

	var markers domain.Markers
	nameB := ""
	var d domain.Difficulty

	if domain.Mode(mode) == domain.ModeVsBot {
		markers.B = domain.DefaultMarkers.B
		if markers.A, err = a.prompt.AskMarker("Your symbol: ", markers.B); err != nil {
			return err
		}
		level, err := a.prompt.AskInt("Bot difficulty (1=easy, 2=medium, 3=hard): ", 1, 3)
		if err != nil {
			return err
		}
		d = domain.Difficulty(level)
		nameB = domain.GetBotName(d) + " (bot)"
	} else {
		if markers.A, err = a.prompt.AskMarker("Player 1 symbol: ", 0); err != nil {
			return err
		}
		if markers.B, err = a.prompt.AskMarker("Player 2 symbol: ", markers.A); err != nil {
			return err
		}
	}

	f := a.newFrontend(markers, "", nameB)
	defer f.finish(ctx)

	var b game.Mover = f.human
	if domain.Mode(mode) == domain.ModeVsBot {
		b = a.botMover(d)
	}
	_, err = game.NewLocalMatch(f.human, b, game.Options{
		Observer: f.observer,
		Logger:   a.log,
	}).Run(ctx)
	return err
}

func (a *app) listen(ctx context.Context, port int) (io.ReadWriteCloser, error) {
	if a.cfg.Transport == "ws" {
		return websocket.ListenOnce(ctx, port, a.log)
	}
	return tcp.ListenOnce(ctx, port, a.log)
}

func (a *app) dial(ctx context.Context, host string, port int) (io.ReadWriteCloser, error) {
	if a.cfg.Transport == "ws" {
		return websocket.Dial(ctx, host, port, a.log)
	}
	return tcp.Dial(ctx, host, port, a.log)
}

func (a *app) runServe(ctx context.Context, port int) error {
	markers := a.cfg.Markers()
	fmt.Fprintf(a.out, "Waiting for a player on port %d (%s)...\n", port, a.cfg.Transport)
	conn, err := a.listen(ctx, port)
	if err != nil {
		return err
	}

	mode, err := a.prompt.AskInt("Player connected. Choose mode: 1) Human vs Human  2) Client plays as bot: ", 1, 2)
	if err != nil {
		conn.Close()
		return err
	}

	nameA := "You"
	if a.cfg.AuthorityBot {
		nameA = domain.GetBotName(a.cfg.BotDifficulty()) + " (bot)"
	}
	f := a.newFrontend(markers, nameA, "Client")
	defer f.finish(ctx)

	var mover game.Mover = f.human
	if a.cfg.AuthorityBot {
		mover = a.botMover(a.cfg.BotDifficulty())
	}

	_, err = game.NewAuthority(conn, domain.Mode(mode), mover, game.Options{
		Observer: f.observer,
		Logger:   a.log,
	}).Run(ctx)
	return err
}

func (a *app) runJoin(ctx context.Context, host string, port int) error {
	markers := a.cfg.Markers()
	conn, err := a.dial(ctx, host, port)
	if err != nil {
		fmt.Fprintf(a.out, "Could not connect to %s:%d\n", host, port)
		return err
	}
	fmt.Fprintln(a.out, "Connected. Waiting for the server...")

	f := a.newFrontend(markers, "Server", "You")
	defer f.finish(ctx)

	choose := func(mode domain.Mode) (game.Mover, error) {
		if mode == domain.ModeVsBot {
			d := a.cfg.RemoteBotDifficulty()
			f.NameB = domain.GetBotName(d) + " (bot)"
			fmt.Fprintf(f.Out, "Server chose mode 2: %s plays for you.\n", domain.GetBotName(d))
			return a.botMover(d), nil
		}
		fmt.Fprintln(f.Out, "Server chose mode 1: you play.")
		return f.human, nil
	}

	_, err = game.NewRemote(conn, choose, game.Options{
		Observer: f.observer,
		Logger:   a.log,
	}).Run(ctx)
	return err
}
