package dto

import (
	"github.com/radieske/game-day-dashboard-poc/internal/ledger"
	"github.com/radieske/game-day-dashboard-poc/internal/predictions"
)

type WalletResponse struct {
	UserID  string  `json:"userId"`
	Balance float64 `json:"balance"`
}

type PlaceBetResponse struct {
	Bet        ledger.Bet `json:"bet"`
	NewBalance float64    `json:"newBalance"`
}

type BetHistoryResponse struct {
	UserID  string       `json:"userId"`
	Balance float64      `json:"balance"`
	Bets    []ledger.Bet `json:"bets"` // mais recente primeiro
}

type PredictionHistoryResponse struct {
	History []predictions.PredictionResult `json:"history"`
}

type HitRateResponse struct {
	HitRate float64 `json:"hitRate"`
	Total   int     `json:"total"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
