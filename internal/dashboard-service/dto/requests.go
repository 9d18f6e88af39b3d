package dto

import "github.com/radieske/game-day-dashboard-poc/pkg/contracts/events"

type PlaceBetRequest struct {
	UserID string         `json:"userId"`
	GameID string         `json:"gameId"`
	BetOn  events.Outcome `json:"betOn"` // HOME_WIN | AWAY_WIN | DRAW
	Amount float64        `json:"amount"`
	Odds   float64        `json:"odds"` // odd que o cliente viu
}

type AnalysisRequest struct {
	Depth string `json:"depth"` // quick | deep
}
