package ledger

import (
	"github.com/radieske/game-day-dashboard-poc/pkg/contracts/events"
)

// Status do ciclo de vida de uma aposta.
// PENDING -> WON | LOST via Settle; cancelamento remove o registro inteiro.
type BetStatus string

const (
	StatusPending BetStatus = "PENDING"
	StatusWon     BetStatus = "WON"
	StatusLost    BetStatus = "LOST"
)

// GameDetails é o snapshot de exibição congelado no momento da aposta.
// Mantém a entrada do histórico legível mesmo se o feed trocar ou sumir
// com o jogo depois.
type GameDetails struct {
	HomeTeam string `json:"homeTeam"`
	HomeLogo string `json:"homeLogo"`
	AwayTeam string `json:"awayTeam"`
	AwayLogo string `json:"awayLogo"`
	Date     string `json:"date"`
	Sport    string `json:"sport"`
}

// Bet é uma aposta do usuário. Odds e PotentialWinnings são congelados na
// criação e nunca recalculados.
type Bet struct {
	ID                string         `json:"id"`
	GameID            string         `json:"gameId"`
	BetOn             events.Outcome `json:"betOn"`
	Amount            float64        `json:"amount"`
	Odds              float64        `json:"odds"`
	Status            BetStatus      `json:"status"`
	PotentialWinnings float64        `json:"potentialWinnings"`
	GameDetails       GameDetails    `json:"gameDetails"`
	FinalHomeScore    *int           `json:"finalHomeScore,omitempty"`
	FinalAwayScore    *int           `json:"finalAwayScore,omitempty"`
}

// State é o registro persistido do ledger (layout compatível com o
// localStorage do app original: chave betting_data_v1).
type State struct {
	UserBalance float64 `json:"userBalance"`
	BetHistory  []Bet   `json:"betHistory"`
}
