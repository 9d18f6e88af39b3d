package events

// Status de um jogo conforme informado pelo feed
type GameStatus string

const (
	StatusScheduled GameStatus = "SCHEDULED"
	StatusLive      GameStatus = "LIVE"
	StatusFinished  GameStatus = "FINISHED"
	StatusPostponed GameStatus = "POSTPONED"
)

// Outcome representa um resultado de partida (real ou previsto)
type Outcome string

const (
	OutcomeHomeWin Outcome = "HOME_WIN"
	OutcomeAwayWin Outcome = "AWAY_WIN"
	OutcomeDraw    Outcome = "DRAW"
)

// GameStats contém estatísticas de um lado da partida
// Todos os campos são opcionais; o feed pode omitir qualquer um
type GameStats struct {
	Fouls       *int `json:"fouls"`
	YellowCards *int `json:"yellowCards"`
	RedCards    *int `json:"redCards"`
	Possession  *int `json:"possession"` // percentual
	ShotsOnGoal *int `json:"shotsOnGoal"`
	TotalShots  *int `json:"totalShots"`
	Corners     *int `json:"corners"`
	Offsides    *int `json:"offsides"`
}

// GamePrediction é a tripla de probabilidades fornecida pelo feed
// DrawPercentage é nulo em esportes sem empate (ex: tênis)
type GamePrediction struct {
	HomeWinPercentage float64  `json:"homeWinPercentage"`
	AwayWinPercentage float64  `json:"awayWinPercentage"`
	DrawPercentage    *float64 `json:"drawPercentage"`
}

// GameOdds são os multiplicadores de pagamento por resultado
type GameOdds struct {
	HomeWin *float64 `json:"homeWin"`
	AwayWin *float64 `json:"awayWin"`
	Draw    *float64 `json:"draw"`
}

// Broadcast indica onde assistir a partida
type Broadcast struct {
	Name string  `json:"name"`
	URL  *string `json:"url,omitempty"`
}

// Game é o registro de partida produzido pelo feed externo.
// O feed é tratado como não confiável: qualquer campo opcional pode vir nulo
// e o mesmo id pode reaparecer com dados diferentes entre chamadas.
// Invariante esperada (não garantida pelo feed): placares não nulos somente
// quando status é LIVE ou FINISHED.
type Game struct {
	ID           string          `json:"id"`
	Sport        string          `json:"sport"`
	Date         string          `json:"date"` // AAAA-MM-DD
	HomeTeam     string          `json:"homeTeam"`
	HomeLogo     string          `json:"homeLogo"`
	AwayTeam     string          `json:"awayTeam"`
	AwayLogo     string          `json:"awayLogo"`
	Time         string          `json:"time"`
	League       string          `json:"league"`
	HomeScore    *int            `json:"homeScore"`
	AwayScore    *int            `json:"awayScore"`
	Status       GameStatus      `json:"status"`
	ElapsedTime  *int            `json:"elapsedTime,omitempty"`
	HomeStats    *GameStats      `json:"homeStats,omitempty"`
	AwayStats    *GameStats      `json:"awayStats,omitempty"`
	Prediction   *GamePrediction `json:"prediction,omitempty"`
	Odds         *GameOdds       `json:"odds,omitempty"`
	WhereToWatch []Broadcast     `json:"whereToWatch,omitempty"`
}

// FinalOutcome devolve o resultado real de um jogo encerrado.
// Retorna false quando o jogo não está FINISHED ou algum placar é nulo.
func (g *Game) FinalOutcome() (Outcome, bool) {
	if g.Status != StatusFinished || g.HomeScore == nil || g.AwayScore == nil {
		return "", false
	}
	switch {
	case *g.HomeScore > *g.AwayScore:
		return OutcomeHomeWin, true
	case *g.AwayScore > *g.HomeScore:
		return OutcomeAwayWin, true
	default:
		return OutcomeDraw, true
	}
}

// PastGame é um registro de confronto passado (histórico de time ou H2H)
type PastGame struct {
	Date      string `json:"date"`
	HomeTeam  string `json:"homeTeam"`
	HomeLogo  string `json:"homeLogo"`
	AwayTeam  string `json:"awayTeam"`
	AwayLogo  string `json:"awayLogo"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
	League    string `json:"league"`
}
