package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/radieske/game-day-dashboard-poc/internal/ledger"
	"github.com/radieske/game-day-dashboard-poc/pkg/contracts/events"
)

// ZapNotifier registra cada notificação no log estruturado. Usado sozinho
// em testes e combinado com o broadcaster Redis em produção.
type ZapNotifier struct {
	Log *zap.Logger
}

func (z *ZapNotifier) Notify(userID string, severity events.Severity, message string) {
	z.Log.Info("user notification",
		zap.String("user_id", userID),
		zap.String("severity", string(severity)),
		zap.String("message", message),
	)
}

// RedisNotifier publica a notificação no canal Pub/Sub consumido pelo hub
// WebSocket. Falha de publicação é registrada e engolida: notificação é
// best-effort, nunca bloqueia uma operação do ledger.
type RedisNotifier struct {
	R       *redis.Client
	Channel string
	Log     *zap.Logger
}

func (n *RedisNotifier) Notify(userID string, severity events.Severity, message string) {
	payload, _ := json.Marshal(events.Notification{
		UserID:   userID,
		Message:  message,
		Severity: severity,
		Ts:       time.Now().UTC(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	if err := n.R.Publish(ctx, n.Channel, payload).Err(); err != nil {
		n.Log.Warn("notification publish failed", zap.Error(err))
	}
}

// Multi encadeia vários sinks de notificação
type Multi []ledger.Notifier

func (m Multi) Notify(userID string, severity events.Severity, message string) {
	for _, n := range m {
		n.Notify(userID, severity, message)
	}
}
