package game

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row/duel/internal/domain"
	"github.com/iamasit07/4-in-a-row/duel/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/duel/internal/transport/wire"
)

// CacheRepository stores chosen columns between runs. Get returns an error on a miss.
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}

const cacheKeyPrefix = "c4:move:"

// BotMover plays with the search engine at a fixed difficulty.
type BotMover struct {
	Engine     *bot.Engine
	Difficulty domain.Difficulty
	Cache      CacheRepository // optional, hard tier only
	CacheTTL   time.Duration
	Log        *zap.SugaredLogger
}

func (m *BotMover) logger() *zap.SugaredLogger {
	if m.Log == nil {
		return zap.NewNop().Sugar()
	}
	return m.Log
}

func (m *BotMover) cacheKey(board *domain.Board, self domain.PlayerID) string {
	var sb strings.Builder
	sb.WriteString(cacheKeyPrefix)
	sb.WriteString(strconv.Itoa(int(m.Difficulty)))
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(m.Engine.Depth()))
	sb.WriteByte(':')
	sb.WriteString(self.String())
	sb.WriteByte(':')
	sb.WriteString(board.Key(wire.Markers))
	return sb.String()
}

func (m *BotMover) NextMove(ctx context.Context, board domain.Board, self domain.PlayerID) (int, error) {
	log := m.logger()
	name := domain.GetBotName(m.Difficulty)

	useCache := m.Cache != nil && m.Difficulty == domain.Hard
	var key string
	if useCache {
		key = m.cacheKey(&board, self)
		if v, err := m.Cache.Get(ctx, key); err == nil {
			if col, err := strconv.Atoi(v); err == nil && board.IsValidMove(col) {
				log.Infof("[BOT] %s chooses column %d (cached)", name, col+1)
				return col, nil
			}
			log.Warnf("[CACHE] Ignoring unusable entry %q for %s", v, key)
		}
	}

	d := m.Engine.Explain(board, self, self.Opponent(), m.Difficulty)
	if d.Column < 0 {
		return -1, domain.ErrNoMoves
	}
	if d.Reason == bot.ReasonSearch {
		log.Infof("[BOT] %s chooses column %d (%s, score %d)", name, d.Column+1, d.Reason, d.Score)
	} else {
		log.Infof("[BOT] %s chooses column %d (%s)", name, d.Column+1, d.Reason)
	}

	if useCache && d.Reason != bot.ReasonRandomFallback {
		if err := m.Cache.Set(ctx, key, d.Column, m.CacheTTL); err != nil && !errors.Is(err, context.Canceled) {
			log.Warnf("[CACHE] Failed to store %s: %v", key, err)
		}
	}
	return d.Column, nil
}
