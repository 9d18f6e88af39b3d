package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/radieske/game-day-dashboard-poc/pkg/contracts/events"
)

// WSClient consome o stream de atualizações ao vivo do provedor (placar e
// status mudando durante a partida) e repassa cada jogo recebido ao Poller,
// que publica no Kafka como um snapshot incremental.
type WSClient struct {
	URL    string
	Log    *zap.Logger
	Poller *Poller
}

// Start inicia o loop de conexão e escuta do WebSocket.
// Em caso de desconexão, tenta reconectar automaticamente com backoff.
func (c *WSClient) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			c.Log.Info("context canceled, stopping WS client")
			return
		default:
			if err := c.connectAndListen(ctx); err != nil {
				c.Log.Warn("connection closed", zap.Error(err))
				time.Sleep(3 * time.Second) // Aguarda antes de tentar reconectar
			}
		}
	}
}

// connectAndListen estabelece a conexão WebSocket e processa mensagens recebidas.
func (c *WSClient) connectAndListen(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.URL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	c.Log.Info("connected to provider WS", zap.String("url", c.URL))

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) || errors.Is(err, context.Canceled) {
				return nil
			}
			c.Log.Error("read message failed", zap.Error(err))
			return err
		}

		var game events.Game
		if err := json.Unmarshal(message, &game); err != nil {
			c.Log.Warn("invalid live update", zap.Error(err))
			continue
		}
		if game.ID == "" {
			c.Log.Warn("live update without game id, skipping")
			continue
		}

		c.Poller.PublishLive(ctx, game)
	}
}
