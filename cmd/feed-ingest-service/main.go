package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/game-day-dashboard-poc/internal/feed-ingest/publisher"
	"github.com/radieske/game-day-dashboard-poc/internal/feed-ingest/service"
	"github.com/radieske/game-day-dashboard-poc/internal/gamefeed"
	"github.com/radieske/game-day-dashboard-poc/internal/shared/config"
	"github.com/radieske/game-day-dashboard-poc/internal/shared/logger"
	"github.com/radieske/game-day-dashboard-poc/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	brokers := strings.Split(cfg.KafkaBrokers, ",")
	pub := publisher.NewKafkaPublisher(brokers, cfg.TopicGamesRefreshed, cfg.Env, log)
	defer pub.Close()

	feed := gamefeed.NewClient(cfg.ProviderURL, cfg.ProviderAPIKey, cfg.ProviderModel, log)

	// Métricas Prometheus para o ciclo de refresh
	refreshes := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "feed_refreshes_total", Help: "snapshots publicados por origem"}, []string{"source"})
	feedFails := prometheus.NewCounter(prometheus.CounterOpts{Name: "feed_provider_failures_total", Help: "falhas do provedor (caiu pro mock)"})
	prometheus.MustRegister(refreshes, feedFails)

	poller := &service.Poller{
		Log:       log,
		Feed:      feed,
		Publisher: pub,
		Interval:  cfg.RefreshInterval,
		OnRefresh: func(source string) { refreshes.WithLabelValues(source).Inc() },
		OnFeedFail: func() {
			feedFails.Inc()
		},
	}

	wsClient := &service.WSClient{
		URL:    cfg.ProviderWSURL,
		Log:    log,
		Poller: poller,
	}

	metrics.StartMetricsServer(cfg.MetricsPort, nil)

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go poller.Run(ctx)
	go wsClient.Start(ctx)

	// HTTP mínimo: refresh on-demand fora do timer
	mux := http.NewServeMux()
	mux.HandleFunc("/refresh", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		poller.RefreshNow(r.Context())
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("refresh triggered"))
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: mux,
	}
	go func() {
		log.Info("feed-ingest-service listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutCancel()
	_ = srv.Shutdown(shutCtx)
	log.Info("feed-ingest-service stopped")
}
