package settlement

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/game-day-dashboard-poc/internal/predictions"
	sharedkafka "github.com/radieske/game-day-dashboard-poc/internal/shared/kafka"
	"github.com/radieske/game-day-dashboard-poc/pkg/contracts/events"
)

// MessageReader é satisfeito por *kafka.Reader
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// Settler liquida as apostas pendentes das sessões ativas
type Settler interface {
	SettleAll(ctx context.Context, finished []events.Game)
}

// Scorer registra previsão x resultado e devolve os registros novos
type Scorer interface {
	Process(ctx context.Context, finished []events.Game) []predictions.PredictionResult
}

// SnapshotCache guarda a visão corrente dos jogos pra API ler
type SnapshotCache interface {
	Set(ctx context.Context, games []events.Game, ttl time.Duration) error
}

// AuditRepo persiste a trilha de auditoria da liquidação
type AuditRepo interface {
	UpsertGameResult(ctx context.Context, g events.Game) error
	InsertPredictionResult(ctx context.Context, p predictions.PredictionResult) error
}

// Processor consome snapshots de jogos do Kafka, mantém a visão corrente em
// cache, liquida apostas pendentes e grava a trilha de auditoria no banco.
// Callbacks de métricas podem ser usadas para monitoramento de cada etapa.
type Processor struct {
	Log     *zap.Logger
	Reader  MessageReader
	Ledgers Settler
	Scorer  Scorer
	Cache   SnapshotCache
	Repo    AuditRepo
	DLQ     *sharedkafka.Writer

	CacheTTL time.Duration

	OnConsumed func()       // métricas (counter++)
	OnSettled  func()       // métricas: snapshot liquidado
	OnError    func(string) // métricas por fase

	// visão corrente acumulada; snapshots "ws-live" trazem um jogo só,
	// então cada mensagem é mesclada em vez de substituir o conjunto
	current map[string]events.Game
}

// Run inicia o loop principal de consumo e processamento das mensagens Kafka
func (p *Processor) Run(ctx context.Context) error {
	if p.current == nil {
		p.current = make(map[string]events.Game)
	}
	ttl := p.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	for {
		m, err := p.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err() // encerra se o contexto for cancelado
			}
			p.Log.Warn("kafka read failed", zap.Error(err))
			p.errored("read")
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if p.OnConsumed != nil {
			p.OnConsumed() // callback de métrica: mensagem consumida
		}

		var ev events.GamesRefreshed
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			p.Log.Warn("invalid message", zap.Error(err))
			p.errored("decode")
			p.toDLQ(ctx, m)
			continue
		}

		p.process(ctx, ev, ttl)
	}
}

// process mescla o snapshot na visão corrente e roda liquidação + auditoria
func (p *Processor) process(ctx context.Context, ev events.GamesRefreshed, ttl time.Duration) {
	for _, g := range ev.Games {
		if g.ID == "" {
			p.Log.Warn("skipping feed record without id",
				zap.String("home", g.HomeTeam), zap.String("away", g.AwayTeam))
			continue
		}
		p.current[g.ID] = g
	}

	games := p.snapshot()

	// Atualiza o cache antes de liquidar; a API serve a visão nova mesmo se
	// a liquidação falhar parcialmente
	if p.Cache != nil {
		if err := p.Cache.Set(ctx, games, ttl); err != nil {
			p.Log.Warn("redis set failed", zap.Error(err))
			p.errored("cache")
		}
	}

	var finished []events.Game
	for _, g := range games {
		if _, ok := g.FinalOutcome(); ok {
			finished = append(finished, g)
		}
	}
	if len(finished) == 0 {
		return
	}

	p.Ledgers.SettleAll(ctx, finished)
	if p.OnSettled != nil {
		p.OnSettled()
	}

	added := p.Scorer.Process(ctx, finished)

	if p.Repo == nil {
		return
	}
	for _, g := range finished {
		if err := p.Repo.UpsertGameResult(ctx, g); err != nil {
			p.Log.Warn("db upsert failed", zap.String("game_id", g.ID), zap.Error(err))
			p.errored("db_upsert")
		}
	}
	for _, r := range added {
		if err := p.Repo.InsertPredictionResult(ctx, r); err != nil {
			p.Log.Warn("db insert prediction failed", zap.String("game_id", r.GameID), zap.Error(err))
			p.errored("db_prediction")
		}
	}
}

// snapshot devolve a visão corrente ordenada por data e horário do jogo
func (p *Processor) snapshot() []events.Game {
	out := make([]events.Game, 0, len(p.current))
	for _, g := range p.current {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// toDLQ reencaminha a mensagem crua pro tópico de DLQ
func (p *Processor) toDLQ(ctx context.Context, m kafka.Message) {
	if p.DLQ == nil {
		return
	}
	wctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := p.DLQ.WriteMessages(wctx, kafka.Message{Key: m.Key, Value: m.Value, Time: time.Now()}); err != nil {
		p.Log.Warn("dlq write failed", zap.Error(err))
		p.errored("dlq")
	}
}

func (p *Processor) errored(stage string) {
	if p.OnError != nil {
		p.OnError(stage)
	}
}
