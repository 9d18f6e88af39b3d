package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/game-day-dashboard-poc/pkg/contracts/events"
)

// GamesCache guarda no Redis a visão corrente dos jogos do dia, escrita pelo
// consumer de settlement e lida pela API do dashboard.
type GamesCache struct{ R *redis.Client }

func New(r *redis.Client) *GamesCache { return &GamesCache{R: r} }

const keyGames = "games:current"

func (c *GamesCache) Get(ctx context.Context) ([]events.Game, bool, error) {
	b, err := c.R.Get(ctx, keyGames).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var games []events.Game
	if err := json.Unmarshal(b, &games); err != nil {
		return nil, false, err
	}
	return games, true, nil
}

func (c *GamesCache) Set(ctx context.Context, games []events.Game, ttl time.Duration) error {
	b, err := json.Marshal(games)
	if err != nil {
		return err
	}
	return c.R.Set(ctx, keyGames, b, ttl).Err()
}
