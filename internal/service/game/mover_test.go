package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/iamasit07/4-in-a-row/duel/internal/domain"
	"github.com/iamasit07/4-in-a-row/duel/internal/domain/domaintest"
	"github.com/iamasit07/4-in-a-row/duel/internal/service/bot"
)

type fakeCache struct {
	data map[string]string
	sets int
	err  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if c.err != nil {
		return c.err
	}
	c.sets++
	c.data[key] = fmt.Sprint(value)
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	v, ok := c.data[key]
	if !ok {
		return "", errors.New("miss")
	}
	return v, nil
}

func hardMover(cache CacheRepository) *BotMover {
	return &BotMover{
		Engine:     bot.NewEngine(bot.WithDepth(2), bot.WithRand(rand.New(rand.NewSource(1)))),
		Difficulty: domain.Hard,
		Cache:      cache,
		CacheTTL:   time.Hour,
	}
}

func TestBotMoverStoresAndReusesDecision(t *testing.T) {
	cache := newFakeCache()
	m := hardMover(cache)
	b := domain.NewBoard()

	first, err := m.NextMove(context.Background(), b, domain.Player1)
	if err != nil {
		t.Fatal(err)
	}
	key := m.cacheKey(&b, domain.Player1)
	if cache.data[key] != fmt.Sprint(first) {
		t.Fatalf("cache[%s] = %q, want %d", key, cache.data[key], first)
	}
	if !strings.HasPrefix(key, "c4:move:3:2:") {
		t.Fatalf("unexpected key %q", key)
	}

	cache.data[key] = "6"
	second, err := m.NextMove(context.Background(), b, domain.Player1)
	if err != nil {
		t.Fatal(err)
	}
	if second != 6 {
		t.Fatalf("cached column ignored: got %d", second)
	}
	if cache.sets != 1 {
		t.Fatalf("sets = %d, want 1", cache.sets)
	}
}

func TestBotMoverDiscardsIllegalCacheEntry(t *testing.T) {
	cache := newFakeCache()
	m := hardMover(cache)

	var b domain.Board
	for i := 0; i < domain.Rows; i++ {
		p := domain.Player1
		if i%2 == 1 {
			p = domain.Player2
		}
		if _, err := b.Drop(0, p); err != nil {
			t.Fatal(err)
		}
	}
	cache.data[m.cacheKey(&b, domain.Player1)] = "0"

	col, err := m.NextMove(context.Background(), b, domain.Player1)
	if err != nil {
		t.Fatal(err)
	}
	if col == 0 || !b.IsValidMove(col) {
		t.Fatalf("got column %d", col)
	}
}

func TestBotMoverIgnoresCacheFailures(t *testing.T) {
	cache := newFakeCache()
	cache.err = errors.New("redis down")
	m := hardMover(cache)

	var b domain.Board
	b.Drop(3, domain.Player1)
	b.Drop(3, domain.Player1)
	b.Drop(3, domain.Player1)

	col, err := m.NextMove(context.Background(), b, domain.Player1)
	if err != nil || col != 3 {
		t.Fatalf("NextMove = %d, %v", col, err)
	}
}

func TestBotMoverCachesHardOnly(t *testing.T) {
	cache := newFakeCache()
	m := &BotMover{Engine: bot.NewEngine(), Difficulty: domain.Medium, Cache: cache}
	if _, err := m.NextMove(context.Background(), domain.NewBoard(), domain.Player2); err != nil {
		t.Fatal(err)
	}
	if cache.sets != 0 {
		t.Fatalf("medium tier wrote %d cache entries", cache.sets)
	}
}

func TestBotMoverFullBoard(t *testing.T) {
	m := &BotMover{Engine: bot.NewEngine(), Difficulty: domain.Easy}
	if _, err := m.NextMove(context.Background(), domaintest.DrawBoard(t), domain.Player1); !errors.Is(err, domain.ErrNoMoves) {
		t.Fatalf("err = %v, want ErrNoMoves", err)
	}
}

func TestBotVersusBotOverNetwork(t *testing.T) {
	engine := bot.NewEngine(bot.WithDepth(3), bot.WithRand(rand.New(rand.NewSource(7))))
	a := &BotMover{Engine: engine, Difficulty: domain.Hard}
	b := &BotMover{Engine: engine, Difficulty: domain.Medium}

	aOut, rOut := playPair(t, a, domain.ModeVsBot, b, nil, nil)
	if aOut.err != nil || rOut.err != nil {
		t.Fatalf("errors: %v / %v", aOut.err, rOut.err)
	}
	if !aOut.res.Status.IsTerminal() || aOut.res.Status != rOut.res.Status {
		t.Fatalf("status = %v / %v", aOut.res.Status, rOut.res.Status)
	}
	if aOut.res.Board != rOut.res.Board || aOut.res.Snapshots != aOut.res.Moves {
		t.Fatalf("authority %+v remote %+v", aOut.res, rOut.res)
	}
}
