package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/game-day-dashboard-poc/internal/feed-ingest/publisher"
	"github.com/radieske/game-day-dashboard-poc/internal/gamefeed"
	"github.com/radieske/game-day-dashboard-poc/pkg/contracts/events"
)

// Poller consulta o provedor de IA em intervalo fixo e publica o snapshot de
// jogos no Kafka. Quando o provedor falha (rede, chave, resposta
// imprestável), publica o catálogo mock no lugar — o ciclo nunca aborta.
type Poller struct {
	Log       *zap.Logger
	Feed      *gamefeed.Client
	Publisher *publisher.KafkaPublisher
	Interval  time.Duration

	// Callbacks de métricas por origem do snapshot
	OnRefresh  func(source string)
	OnFeedFail func()

	mu      sync.Mutex
	version int
}

// Run executa um refresh imediato e depois a cada Interval, até o contexto
// ser cancelado.
func (p *Poller) Run(ctx context.Context) {
	p.RefreshNow(ctx)

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			p.Log.Info("poller stopped")
			return
		case <-ticker.C:
			p.RefreshNow(ctx)
		}
	}
}

// RefreshNow força um ciclo de refresh fora do timer (endpoint on-demand).
func (p *Poller) RefreshNow(ctx context.Context) {
	games, source := p.fetch(ctx)

	p.mu.Lock()
	p.version++
	version := p.version
	p.mu.Unlock()

	ev := events.GamesRefreshed{
		Games:     games,
		Source:    source,
		FetchedAt: time.Now().UTC(),
		Version:   version,
	}
	if err := p.Publisher.Publish(ctx, ev); err != nil {
		p.Log.Error("publish snapshot failed", zap.Error(err))
		return
	}
	if p.OnRefresh != nil {
		p.OnRefresh(source)
	}
	p.Log.Info("feed refreshed",
		zap.Int("games", len(games)),
		zap.String("source", source),
		zap.Int("version", version),
	)
}

// PublishLive publica um snapshot incremental com um único jogo recebido
// pelo stream ao vivo. O consumidor casa por id, então um snapshot parcial
// só atualiza o que veio nele.
func (p *Poller) PublishLive(ctx context.Context, game events.Game) {
	p.mu.Lock()
	p.version++
	version := p.version
	p.mu.Unlock()

	ev := events.GamesRefreshed{
		Games:     []events.Game{game},
		Source:    "ws-live",
		FetchedAt: time.Now().UTC(),
		Version:   version,
	}
	if err := p.Publisher.Publish(ctx, ev); err != nil {
		p.Log.Error("publish live update failed", zap.String("game_id", game.ID), zap.Error(err))
		return
	}
	if p.OnRefresh != nil {
		p.OnRefresh("ws-live")
	}
}

// fetch tenta o provedor e cai pro mock em qualquer falha
func (p *Poller) fetch(ctx context.Context) ([]events.Game, string) {
	games, err := p.Feed.GamesOfTheDay(ctx)
	if err != nil {
		p.Log.Warn("provider fetch failed, using mock fixtures", zap.Error(err))
		if p.OnFeedFail != nil {
			p.OnFeedFail()
		}
		return gamefeed.MockGames(), "mock-fallback"
	}
	return games, "ai-provider"
}
