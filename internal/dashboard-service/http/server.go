package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/game-day-dashboard-poc/internal/dashboard-service/dto"
	"github.com/radieske/game-day-dashboard-poc/internal/dashboard-service/session"
	"github.com/radieske/game-day-dashboard-poc/internal/gamefeed"
	"github.com/radieske/game-day-dashboard-poc/internal/ledger"
	"github.com/radieske/game-day-dashboard-poc/internal/predictions"
	"github.com/radieske/game-day-dashboard-poc/pkg/contracts/events"
)

// GamesSource é a visão corrente dos jogos do dia (cache Redis em produção)
type GamesSource interface {
	Get(ctx context.Context) ([]events.Game, bool, error)
}

// FeedClient são as operações de passthrough pro provedor de IA
type FeedClient interface {
	TeamHistory(ctx context.Context, team string) ([]events.PastGame, error)
	HeadToHead(ctx context.Context, home, away string) ([]events.PastGame, error)
	Analysis(ctx context.Context, game events.Game, depth gamefeed.AnalysisDepth) (*events.AiAnalysis, error)
}

// Server expõe a API REST do dashboard: jogos, carteira, apostas, histórico
// de previsões e passthrough de análise/histórico.
type Server struct {
	log      *zap.Logger
	sessions *session.Manager
	scorer   *predictions.Scorer
	games    GamesSource
	feed     FeedClient
	wsHandle http.HandlerFunc
}

func NewServer(log *zap.Logger, sessions *session.Manager, scorer *predictions.Scorer, games GamesSource, feed FeedClient, wsHandle http.HandlerFunc) *Server {
	return &Server{
		log:      log,
		sessions: sessions,
		scorer:   scorer,
		games:    games,
		feed:     feed,
		wsHandle: wsHandle,
	}
}

// Router retorna o roteador HTTP com os endpoints REST
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/v1/games", s.listGames)
	r.Post("/v1/games/{id}/analysis", s.analyzeGame)
	r.Get("/v1/teams/{team}/history", s.teamHistory)
	r.Get("/v1/h2h", s.headToHead)

	r.Get("/v1/wallet", s.getWallet)
	r.Get("/v1/bets", s.listBets)
	r.Post("/v1/bets", s.placeBet)
	r.Delete("/v1/bets/{id}", s.cancelBet)

	r.Get("/v1/predictions", s.listPredictions)
	r.Get("/v1/predictions/hitrate", s.hitRate)

	if s.wsHandle != nil {
		r.Get("/ws", s.wsHandle)
	}
	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.ErrorResponse{Error: msg})
}

// listGames retorna a visão corrente dos jogos do dia
func (s *Server) listGames(w http.ResponseWriter, r *http.Request) {
	games, ok, err := s.games.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		games = []events.Game{} // nenhum snapshot consumido ainda
	}
	writeJSON(w, http.StatusOK, games)
}

// analyzeGame repassa o pedido de análise pro provedor de IA
func (s *Server) analyzeGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	depth := gamefeed.AnalysisQuick
	if req.Depth == string(gamefeed.AnalysisDeep) {
		depth = gamefeed.AnalysisDeep
	}

	game, ok := s.findGame(r.Context(), id)
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}

	analysis, err := s.feed.Analysis(r.Context(), game, depth)
	if err != nil {
		s.log.Warn("analysis failed", zap.String("game_id", id), zap.Error(err))
		writeError(w, http.StatusBadGateway, "analysis unavailable")
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// teamHistory repassa o histórico recente de um time
func (s *Server) teamHistory(w http.ResponseWriter, r *http.Request) {
	team := chi.URLParam(r, "team")
	past, err := s.feed.TeamHistory(r.Context(), team)
	if err != nil {
		writeError(w, http.StatusBadGateway, "history unavailable")
		return
	}
	writeJSON(w, http.StatusOK, past)
}

// headToHead repassa os confrontos diretos entre dois times
func (s *Server) headToHead(w http.ResponseWriter, r *http.Request) {
	home := r.URL.Query().Get("home")
	away := r.URL.Query().Get("away")
	if home == "" || away == "" {
		writeError(w, http.StatusBadRequest, "home and away required")
		return
	}
	past, err := s.feed.HeadToHead(r.Context(), home, away)
	if err != nil {
		writeError(w, http.StatusBadGateway, "history unavailable")
		return
	}
	writeJSON(w, http.StatusOK, past)
}

// getWallet retorna o saldo atual do usuário
func (s *Server) getWallet(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId required")
		return
	}
	l := s.sessions.Get(userID)
	writeJSON(w, http.StatusOK, dto.WalletResponse{UserID: userID, Balance: l.Balance()})
}

// listBets retorna o histórico de apostas, mais recente primeiro
func (s *Server) listBets(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId required")
		return
	}
	l := s.sessions.Get(userID)
	writeJSON(w, http.StatusOK, dto.BetHistoryResponse{
		UserID:  userID,
		Balance: l.Balance(),
		Bets:    l.Bets(),
	})
}

// placeBet registra uma aposta PENDING debitando o stake
func (s *Server) placeBet(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.UserID == "" || req.GameID == "" {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	game, ok := s.findGame(r.Context(), req.GameID)
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}

	l := s.sessions.Get(req.UserID)
	bet, err := l.Place(r.Context(), game, req.BetOn, req.Amount, req.Odds)
	switch {
	case errors.Is(err, ledger.ErrInvalidBetParameters):
		writeError(w, http.StatusBadRequest, "invalid bet parameters")
		return
	case errors.Is(err, ledger.ErrInsufficientBalance):
		writeError(w, http.StatusConflict, "insufficient balance")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.PlaceBetResponse{Bet: bet, NewBalance: l.Balance()})
}

// cancelBet devolve o stake e remove a aposta pendente
func (s *Server) cancelBet(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId required")
		return
	}
	betID := chi.URLParam(r, "id")

	l := s.sessions.Get(userID)
	if err := l.Cancel(r.Context(), betID); err != nil {
		writeError(w, http.StatusNotFound, "bet not found")
		return
	}
	writeJSON(w, http.StatusOK, dto.WalletResponse{UserID: userID, Balance: l.Balance()})
}

// listPredictions retorna o histórico previsão x resultado
func (s *Server) listPredictions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.PredictionHistoryResponse{History: s.scorer.History()})
}

// hitRate retorna a taxa de acerto das previsões do feed
func (s *Server) hitRate(w http.ResponseWriter, r *http.Request) {
	rate, total := s.scorer.HitRate()
	writeJSON(w, http.StatusOK, dto.HitRateResponse{HitRate: rate, Total: total})
}

// findGame procura um jogo na visão corrente pelo id
func (s *Server) findGame(ctx context.Context, id string) (events.Game, bool) {
	games, ok, err := s.games.Get(ctx)
	if err != nil || !ok {
		return events.Game{}, false
	}
	for _, g := range games {
		if g.ID == id {
			return g, true
		}
	}
	return events.Game{}, false
}
