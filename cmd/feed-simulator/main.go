package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/game-day-dashboard-poc/internal/feed-simulator/catalog"
	"github.com/radieske/game-day-dashboard-poc/internal/shared/config"
	"github.com/radieske/game-day-dashboard-poc/internal/shared/logger"
	"github.com/radieske/game-day-dashboard-poc/internal/shared/metrics"
	"github.com/radieske/game-day-dashboard-poc/pkg/contracts/events"
)

var (
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	// Métricas Prometheus para monitoramento de conexões e chamadas
	wsConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "simulator_ws_connections",
		Help: "Clientes WebSocket conectados",
	})
	wsMessagesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "simulator_ws_messages_sent_total",
		Help: "Total de mensagens WS enviadas",
	})
	generateCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "simulator_generate_calls_total",
		Help: "Chamadas ao endpoint /v1/generate por tipo de prompt",
	}, []string{"kind"})
)

// Representa uma conexão de cliente WebSocket
type clientConn struct {
	id   string
	conn *websocket.Conn
}

// hub gerencia os clientes conectados via WebSocket e faz broadcast das
// atualizações ao vivo do catálogo.
type hub struct {
	mu      sync.RWMutex
	clients map[string]*clientConn
	log     *zap.Logger
}

func newHub(log *zap.Logger) *hub {
	return &hub{
		clients: make(map[string]*clientConn),
		log:     log,
	}
}

// Adiciona um novo cliente ao hub e incrementa a métrica de conexões
func (h *hub) add(c *clientConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
	wsConnections.Inc()
	h.log.Info("ws client connected", zap.String("client_id", c.id))
}

// Remove um cliente do hub e decrementa a métrica de conexões
func (h *hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[id]; ok {
		delete(h.clients, id)
		wsConnections.Dec()
		h.log.Info("ws client disconnected", zap.String("client_id", id))
	}
}

// Envia uma mensagem para todos os clientes conectados
func (h *hub) broadcast(v any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	msg, _ := json.Marshal(v)
	for id, c := range h.clients {
		c.conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Warn("ws write failed", zap.String("client_id", id), zap.Error(err))
			_ = c.conn.Close()
		} else {
			wsMessagesSent.Inc()
		}
	}
}

type generateReq struct {
	Model            string `json:"model"`
	Prompt           string `json:"prompt"`
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type generateResp struct {
	Text string `json:"text"`
}

// server responde ao endpoint /v1/generate imitando um provedor generativo:
// identifica o tipo de prompt por substring e devolve texto com JSON dentro,
// às vezes embrulhado em prosa e cercas markdown como um modelo real faria.
type server struct {
	log *zap.Logger
	cat *catalog.Catalog
	rng *rand.Rand
}

func (s *server) generateHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	var kind, text string
	switch {
	case strings.Contains(req.Prompt, "Head-to-Head"):
		kind = "h2h"
		teams := quoted(req.Prompt, 2)
		text = wrapJSON(s.pastGames(teams))
	case strings.Contains(req.Prompt, "histórico de jogos do time"):
		kind = "team_history"
		teams := quoted(req.Prompt, 1)
		text = wrapJSON(s.pastGames(teams))
	case strings.Contains(req.Prompt, "analista esportivo"):
		kind = "analysis"
		text = s.analysis()
	default:
		kind = "games"
		text = "Claro! Aqui estão os jogos de hoje:\n```json\n" + mustJSON(s.cat.Games()) + "\n```"
	}
	generateCalls.WithLabelValues(kind).Inc()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(generateResp{Text: text})
}

// pastGames sintetiza um histórico plausível pros times pedidos
func (s *server) pastGames(teams []string) []events.PastGame {
	home, away := "Time A", "Time B"
	if len(teams) > 0 && teams[0] != "" {
		home = teams[0]
	}
	if len(teams) > 1 && teams[1] != "" {
		away = teams[1]
	} else {
		away = "Adversário FC"
	}

	out := make([]events.PastGame, 0, 5)
	for i := 0; i < 5; i++ {
		date := time.Now().AddDate(0, 0, -(i+1)*6).Format("2006-01-02")
		out = append(out, events.PastGame{
			Date:      date,
			HomeTeam:  home,
			AwayTeam:  away,
			HomeScore: s.rng.Intn(4),
			AwayScore: s.rng.Intn(4),
			League:    "Campeonato Simulado",
		})
		home, away = away, home // alterna o mando de campo
	}
	return out
}

func (s *server) analysis() string {
	draw := 20.0
	a := events.AiAnalysis{
		PredictedWinner: "Empate",
		Confidence:      float64(55 + s.rng.Intn(30)),
		Probabilities: events.AnalysisProbabilities{
			Home: 40,
			Away: 40,
			Draw: draw,
		},
		KeyFactors:       []string{"retrospecto equilibrado", "desfalques no ataque", "fator casa neutro"},
		DetailedAnalysis: "Partida equilibrada entre equipes de campanhas parecidas. O retrospecto recente e as ausências dos dois lados apontam para um jogo truncado e de poucos gols.",
		Sources:          []string{},
	}
	return mustJSON(a)
}

// wrapJSON embrulha o payload em prosa, como um modelo generativo real
func wrapJSON(v any) string {
	return "Aqui está o histórico solicitado:\n" + mustJSON(v) + "\nEspero ter ajudado!"
}

func mustJSON(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

// quoted extrai os primeiros n trechos entre aspas duplas do prompt
func quoted(s string, n int) []string {
	parts := strings.Split(s, `"`)
	var out []string
	for i := 1; i < len(parts) && len(out) < n; i += 2 {
		out = append(out, parts[i])
	}
	return out
}

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	prometheus.MustRegister(wsConnections, wsMessagesSent, generateCalls)

	cat := catalog.New()
	h := newHub(log)
	s := &server{
		log: log,
		cat: cat,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	// Avança o catálogo e transmite as partidas que mudaram a cada 15 segundos
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			for _, g := range cat.Tick() {
				h.broadcast(g)
			}
		}
	}()

	appMux := http.NewServeMux()
	appMux.HandleFunc("/v1/generate", s.generateHandler)

	appMux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("ws upgrade failed", zap.Error(err))
			return
		}
		id := fmt.Sprintf("%d", time.Now().UnixNano())
		c := &clientConn{id: id, conn: conn}
		h.add(c)

		// Goroutine para manter a conexão viva e remover cliente ao desconectar
		go func() {
			defer func() {
				h.remove(id)
				_ = conn.Close()
			}()
			_ = conn.SetReadDeadline(time.Time{})
			for {
				// Lê e descarta mensagens do cliente para manter o socket limpo
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	})

	metrics.StartMetricsServer(cfg.MetricsPort, nil)

	publicAddr := fmt.Sprintf(":%s", cfg.HTTPPort)
	log.Info("feed simulator running",
		zap.String("addr", publicAddr),
		zap.String("paths", "/v1/generate,/ws"),
	)
	if err := http.ListenAndServe(publicAddr, appMux); err != nil {
		log.Fatal("public server error", zap.Error(err))
	}
}
