package gamefeed

import (
	"time"

	"github.com/radieske/game-day-dashboard-poc/pkg/contracts/events"
)

// MockGames devolve o catálogo fixo usado como fallback quando o provedor
// falha ou responde algo imprestável. O ciclo de refresh nunca aborta por
// causa do feed.
func MockGames() []events.Game {
	today := time.Now().Format("2006-01-02")

	return []events.Game{
		{
			ID:       "futebol-brasileirao-FLAxPAL-" + today,
			Sport:    "Futebol",
			Date:     today,
			HomeTeam: "Flamengo",
			AwayTeam: "Palmeiras",
			Time:     "16:00",
			League:   "Brasileirão Série A",
			Status:   events.StatusScheduled,
			Prediction: &events.GamePrediction{
				HomeWinPercentage: 42,
				AwayWinPercentage: 31,
				DrawPercentage:    fptr(27),
			},
			Odds: &events.GameOdds{HomeWin: fptr(2.10), AwayWin: fptr(3.20), Draw: fptr(3.00)},
		},
		{
			ID:          "futebol-brasileirao-GRExINT-" + today,
			Sport:       "Futebol",
			Date:        today,
			HomeTeam:    "Grêmio",
			AwayTeam:    "Internacional",
			Time:        "67",
			League:      "Brasileirão Série A",
			HomeScore:   iptr(1),
			AwayScore:   iptr(1),
			Status:      events.StatusLive,
			ElapsedTime: iptr(67),
			Prediction: &events.GamePrediction{
				HomeWinPercentage: 35,
				AwayWinPercentage: 37,
				DrawPercentage:    fptr(28),
			},
			Odds: &events.GameOdds{HomeWin: fptr(2.80), AwayWin: fptr(2.60), Draw: fptr(2.90)},
		},
		{
			ID:        "futebol-brasileirao-CORxSAN-" + today,
			Sport:     "Futebol",
			Date:      today,
			HomeTeam:  "Corinthians",
			AwayTeam:  "Santos",
			Time:      "Encerrado",
			League:    "Brasileirão Série A",
			HomeScore: iptr(2),
			AwayScore: iptr(0),
			Status:    events.StatusFinished,
			Prediction: &events.GamePrediction{
				HomeWinPercentage: 48,
				AwayWinPercentage: 24,
				DrawPercentage:    fptr(28),
			},
		},
		{
			ID:       "tenis-atp-DJOxALC-" + today,
			Sport:    "Tênis",
			Date:     today,
			HomeTeam: "Djokovic",
			AwayTeam: "Alcaraz",
			Time:     "19:30",
			League:   "ATP Finals",
			Status:   events.StatusScheduled,
			Prediction: &events.GamePrediction{
				HomeWinPercentage: 46,
				AwayWinPercentage: 54,
				DrawPercentage:    nil, // tênis não tem empate
			},
			Odds: &events.GameOdds{HomeWin: fptr(2.05), AwayWin: fptr(1.78)},
		},
	}
}

func iptr(v int) *int         { return &v }
func fptr(v float64) *float64 { return &v }
