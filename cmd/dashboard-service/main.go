package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	dcache "github.com/radieske/game-day-dashboard-poc/internal/dashboard-service/cache"
	dhttp "github.com/radieske/game-day-dashboard-poc/internal/dashboard-service/http"
	"github.com/radieske/game-day-dashboard-poc/internal/dashboard-service/notify"
	"github.com/radieske/game-day-dashboard-poc/internal/dashboard-service/session"
	"github.com/radieske/game-day-dashboard-poc/internal/dashboard-service/ws"
	"github.com/radieske/game-day-dashboard-poc/internal/gamefeed"
	"github.com/radieske/game-day-dashboard-poc/internal/predictions"
	"github.com/radieske/game-day-dashboard-poc/internal/settlement"
	"github.com/radieske/game-day-dashboard-poc/internal/settlement/repository"
	sharedcache "github.com/radieske/game-day-dashboard-poc/internal/shared/cache"
	"github.com/radieske/game-day-dashboard-poc/internal/shared/config"
	"github.com/radieske/game-day-dashboard-poc/internal/shared/db"
	sharedkafka "github.com/radieske/game-day-dashboard-poc/internal/shared/kafka"
	"github.com/radieske/game-day-dashboard-poc/internal/shared/logger"
	"github.com/radieske/game-day-dashboard-poc/internal/shared/metrics"
	"github.com/radieske/game-day-dashboard-poc/internal/storage"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Inicializa dependências: Postgres e Redis
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	redisClient, err := sharedcache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()

	// Backend de persistência do ledger e do histórico de previsões
	store, err := storage.Open(cfg.StorageBackend, cfg.StorageDir, cfg.SQLitePath, pg, redisClient)
	if err != nil {
		log.Fatal("storage backend", zap.String("backend", cfg.StorageBackend), zap.Error(err))
	}
	log.Info("storage backend ready", zap.String("backend", cfg.StorageBackend))

	// Notificações: log estruturado + Pub/Sub pro hub WebSocket
	notifier := notify.Multi{
		&notify.ZapNotifier{Log: log},
		&notify.RedisNotifier{R: redisClient, Channel: cfg.RedisPubSubChannel, Log: log},
	}

	sessions := session.NewManager(log, store, notifier, cfg.InitialBalance)
	scorer := predictions.NewScorer(log, store)
	gamesCache := dcache.New(redisClient)
	feed := gamefeed.NewClient(cfg.ProviderURL, cfg.ProviderAPIKey, cfg.ProviderModel, log)

	// Hub WebSocket alimentado pelo canal Redis Pub/Sub de notificações
	hub := ws.NewHub(func(r *http.Request) bool { return true })

	// Kafka: consumer de snapshots (consumer group dashboard-settlement) + DLQ
	reader := sharedkafka.NewReader(cfg.KafkaBrokers, cfg.TopicGamesRefreshed, "dashboard-settlement")
	defer reader.Close()
	dlq := sharedkafka.NewWriter(cfg.KafkaBrokers, cfg.TopicGamesRefreshedDLQ)
	defer dlq.Close()

	// Métricas Prometheus para monitoramento da liquidação
	consumed := prometheus.NewCounter(prometheus.CounterOpts{Name: "dashboard_snapshots_consumed_total", Help: "snapshots consumidos"})
	settled := prometheus.NewCounter(prometheus.CounterOpts{Name: "dashboard_settlement_runs_total", Help: "passadas de liquidação"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "dashboard_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(consumed, settled, errorsBy)

	proc := &settlement.Processor{
		Log:        log,
		Reader:     reader,
		Ledgers:    sessions,
		Scorer:     scorer,
		Cache:      gamesCache,
		Repo:       repository.NewPostgresRepo(pg),
		DLQ:        dlq,
		OnConsumed: func() { consumed.Inc() },
		OnSettled:  func() { settled.Inc() },
		OnError:    func(stage string) { errorsBy.WithLabelValues(stage).Inc() },
	}

	// Servidor de métricas e health check pingando as dependências
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return fmt.Errorf("pg: %w", err)
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		return nil
	})

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ws.StartRedisSubscriber(ctx, redisClient, cfg.RedisPubSubChannel, hub, log)

	go func() {
		if err := proc.Run(ctx); err != nil && ctx.Err() == nil {
			log.Fatal("settlement processor stopped", zap.Error(err))
		}
	}()

	// API REST pública
	api := dhttp.NewServer(log, sessions, scorer, gamesCache, feed, hub.HandleWS)
	apiSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: api.Router(),
	}
	go func() {
		log.Info("dashboard-service listening", zap.String("addr", apiSrv.Addr))
		if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("api", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutCancel()
	_ = apiSrv.Shutdown(shutCtx)
	log.Info("dashboard-service stopped")
}
