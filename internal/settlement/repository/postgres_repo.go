package repository

import (
	"context"
	"database/sql"

	"github.com/radieske/game-day-dashboard-poc/internal/predictions"
	"github.com/radieske/game-day-dashboard-poc/pkg/contracts/events"
)

// PostgresRepo implementa a trilha de auditoria da liquidação em Postgres:
// resultado final de cada jogo e acerto/erro de cada previsão do feed.
// Espera as tabelas:
//
//	CREATE TABLE IF NOT EXISTS game_results (
//	    game_id    TEXT PRIMARY KEY,
//	    game_date  TEXT NOT NULL,
//	    sport      TEXT NOT NULL,
//	    home_team  TEXT NOT NULL,
//	    away_team  TEXT NOT NULL,
//	    home_score INT  NOT NULL,
//	    away_score INT  NOT NULL,
//	    outcome    TEXT NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE TABLE IF NOT EXISTS prediction_results (
//	    game_id           TEXT PRIMARY KEY,
//	    game_date         TEXT NOT NULL,
//	    sport             TEXT NOT NULL,
//	    home_team         TEXT NOT NULL,
//	    away_team         TEXT NOT NULL,
//	    home_score        INT  NOT NULL,
//	    away_score        INT  NOT NULL,
//	    predicted_outcome TEXT NOT NULL,
//	    actual_outcome    TEXT NOT NULL,
//	    is_hit            BOOLEAN NOT NULL,
//	    created_at        TIMESTAMPTZ NOT NULL
//	);
//
// DB: conexão com o banco de dados
type PostgresRepo struct {
	DB *sql.DB
}

// NewPostgresRepo retorna uma instância de repositório Postgres
func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{DB: db}
}

// UpsertGameResult insere ou atualiza o resultado final de um jogo encerrado
// na tabela game_results. Utiliza ON CONFLICT para garantir atomicidade e
// evitar duplicidade por game_id.
func (r *PostgresRepo) UpsertGameResult(ctx context.Context, g events.Game) error {
	outcome, ok := g.FinalOutcome()
	if !ok {
		return nil // sem placar completo não há o que auditar
	}
	const q = `
		INSERT INTO game_results
		  (game_id, game_date, sport, home_team, away_team, home_score, away_score, outcome, updated_at)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7,$8,NOW())
		ON CONFLICT (game_id) DO UPDATE SET
		  home_score = EXCLUDED.home_score,
		  away_score = EXCLUDED.away_score,
		  outcome    = EXCLUDED.outcome,
		  updated_at = NOW()
	`
	_, err := r.DB.ExecContext(ctx, q,
		g.ID, g.Date, g.Sport, g.HomeTeam, g.AwayTeam,
		*g.HomeScore, *g.AwayScore, string(outcome),
	)
	return err
}

// InsertPredictionResult insere o confronto previsão x resultado na tabela
// prediction_results. DO NOTHING porque o histórico é append-only por game_id.
func (r *PostgresRepo) InsertPredictionResult(ctx context.Context, p predictions.PredictionResult) error {
	const q = `
		INSERT INTO prediction_results
		  (game_id, game_date, sport, home_team, away_team, home_score, away_score,
		   predicted_outcome, actual_outcome, is_hit, created_at)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,NOW())
		ON CONFLICT (game_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, q,
		p.GameID, p.GameDate, p.Sport, p.HomeTeam, p.AwayTeam,
		p.HomeScore, p.AwayScore,
		string(p.PredictedOutcome), string(p.ActualOutcome), p.IsHit,
	)
	return err
}
