package predictions

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/radieske/game-day-dashboard-poc/internal/storage"
	"github.com/radieske/game-day-dashboard-poc/pkg/contracts/events"
)

// PredictionResult compara a previsão do feed com o resultado real de um
// jogo encerrado. Histórico append-only, no máximo um registro por gameId.
type PredictionResult struct {
	GameID           string         `json:"gameId"`
	GameDate         string         `json:"gameDate"`
	HomeTeam         string         `json:"homeTeam"`
	HomeLogo         string         `json:"homeLogo"`
	AwayTeam         string         `json:"awayTeam"`
	AwayLogo         string         `json:"awayLogo"`
	HomeScore        int            `json:"homeScore"`
	AwayScore        int            `json:"awayScore"`
	PredictedOutcome events.Outcome `json:"predictedOutcome"`
	ActualOutcome    events.Outcome `json:"actualOutcome"`
	IsHit            bool           `json:"isHit"`
	Sport            string         `json:"sport"`
}

// PredictedOutcome resolve o resultado implícito na tripla de probabilidades
// por comparação estrita par a par (draw nulo conta como zero).
//
// Regra exata: HOME_WIN se home > away e home > draw; senão AWAY_WIN se
// away > home e away > draw; senão DRAW. Empate exato home==away resolve
// para DRAW mesmo quando a probabilidade de empate é menor que ambas.
func PredictedOutcome(p events.GamePrediction) events.Outcome {
	draw := 0.0
	if p.DrawPercentage != nil {
		draw = *p.DrawPercentage
	}
	switch {
	case p.HomeWinPercentage > p.AwayWinPercentage && p.HomeWinPercentage > draw:
		return events.OutcomeHomeWin
	case p.AwayWinPercentage > p.HomeWinPercentage && p.AwayWinPercentage > draw:
		return events.OutcomeAwayWin
	default:
		return events.OutcomeDraw
	}
}

// Record acrescenta ao histórico um resultado por jogo encerrado que tinha
// previsão e placar final, pulando gameIds já registrados. Pura exceto pelo
// dedup contra o histórico recebido; segura pra chamar a cada ciclo de
// refresh sem produzir duplicatas.
//
// Retorna o histórico combinado ordenado por data do jogo, decrescente.
func Record(finished []events.Game, history []PredictionResult) []PredictionResult {
	out := make([]PredictionResult, len(history))
	copy(out, history)

	seen := make(map[string]struct{}, len(history))
	for _, r := range history {
		seen[r.GameID] = struct{}{}
	}

	for _, g := range finished {
		if g.ID == "" || g.Prediction == nil {
			continue
		}
		if _, done := seen[g.ID]; done {
			continue
		}
		actual, ok := g.FinalOutcome()
		if !ok {
			continue
		}

		predicted := PredictedOutcome(*g.Prediction)
		out = append(out, PredictionResult{
			GameID:           g.ID,
			GameDate:         g.Date,
			HomeTeam:         g.HomeTeam,
			HomeLogo:         g.HomeLogo,
			AwayTeam:         g.AwayTeam,
			AwayLogo:         g.AwayLogo,
			HomeScore:        *g.HomeScore,
			AwayScore:        *g.AwayScore,
			PredictedOutcome: predicted,
			ActualOutcome:    actual,
			IsHit:            predicted == actual,
			Sport:            g.Sport,
		})
		seen[g.ID] = struct{}{}
	}

	// datas em AAAA-MM-DD ordenam lexicograficamente; sort estável preserva
	// a ordem relativa de registros antigos com a mesma data
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GameDate > out[j].GameDate
	})
	return out
}

// Scorer guarda o histórico persistido de comparações previsão x resultado,
// usado só pra estatística de acerto no dashboard.
type Scorer struct {
	mu      sync.Mutex
	log     *zap.Logger
	store   storage.Store
	history []PredictionResult
}

// NewScorer carrega o histórico persistido; falha de leitura é registrada e
// o histórico começa vazio.
func NewScorer(log *zap.Logger, store storage.Store) *Scorer {
	s := &Scorer{log: log, store: store}
	if _, err := store.Load(context.Background(), storage.KeyPredictionHistory, &s.history); err != nil {
		log.Warn("load prediction history failed", zap.Error(err))
	}
	return s
}

// Process registra os jogos encerrados do snapshot, persiste o histórico e
// retorna só os registros novos desta passada (pra trilha de auditoria)
func (s *Scorer) Process(ctx context.Context, finished []events.Game) []PredictionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := make(map[string]struct{}, len(s.history))
	for _, r := range s.history {
		before[r.GameID] = struct{}{}
	}

	s.history = Record(finished, s.history)

	var added []PredictionResult
	for _, r := range s.history {
		if _, ok := before[r.GameID]; !ok {
			added = append(added, r)
		}
	}
	if len(added) == 0 {
		return nil
	}
	if err := s.store.Save(ctx, storage.KeyPredictionHistory, s.history); err != nil {
		s.log.Warn("persist prediction history failed", zap.Error(err))
	}
	return added
}

// History retorna uma cópia do histórico, mais recente primeiro
func (s *Scorer) History() []PredictionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PredictionResult, len(s.history))
	copy(out, s.history)
	return out
}

// HitRate retorna a fração de previsões corretas (0 quando não há histórico)
func (s *Scorer) HitRate() (rate float64, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return 0, 0
	}
	hits := 0
	for _, r := range s.history {
		if r.IsHit {
			hits++
		}
	}
	return float64(hits) / float64(len(s.history)), len(s.history)
}
