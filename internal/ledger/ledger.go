package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radieske/game-day-dashboard-poc/internal/storage"
	"github.com/radieske/game-day-dashboard-poc/pkg/contracts/events"
)

// Notifier é o sink de notificações da camada de apresentação (toasts).
type Notifier interface {
	Notify(userID string, severity events.Severity, message string)
}

// Ledger é o dono exclusivo do saldo e do histórico de apostas de um usuário.
// Garante que nenhuma aposta excede o saldo e que cada aposta PENDING é
// liquidada no máximo uma vez.
//
// Todas as operações rodam até o fim sob o mutex; a persistência é síncrona,
// tentada uma vez por mutação, e falha de escrita nunca corrompe o estado em
// memória (que segue autoritativo para a sessão).
type Ledger struct {
	mu       sync.Mutex
	log      *zap.Logger
	store    storage.Store
	notifier Notifier

	userID  string
	balance float64
	bets    []Bet // ordem de inserção, mais recente primeiro
}

// New cria o ledger da sessão, carregando o estado persistido se existir.
// Falha de leitura é registrada e ignorada: a sessão começa do saldo inicial.
func New(log *zap.Logger, store storage.Store, notifier Notifier, userID string, initialBalance float64) *Ledger {
	l := &Ledger{
		log:      log,
		store:    store,
		notifier: notifier,
		userID:   userID,
		balance:  initialBalance,
	}

	var st State
	ok, err := store.Load(context.Background(), storage.BettingKey(userID), &st)
	if err != nil {
		log.Warn("load betting state failed", zap.String("user_id", userID), zap.Error(err))
		return l
	}
	if ok {
		l.balance = st.UserBalance
		l.bets = st.BetHistory
	}
	return l
}

// Balance retorna o saldo atual
func (l *Ledger) Balance() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Bets retorna uma cópia do histórico, mais recente primeiro
func (l *Ledger) Bets() []Bet {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Bet, len(l.bets))
	copy(out, l.bets)
	return out
}

// Place debita o stake e registra uma aposta PENDING com snapshot de exibição
// do jogo. Não há limite de apostas pendentes por jogo.
func (l *Ledger) Place(ctx context.Context, game events.Game, betOn events.Outcome, amount, odds float64) (Bet, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if game.ID == "" || amount <= 0 || odds <= 0 || !validOutcome(betOn) {
		l.notify(events.SeverityError, "Aposta inválida.")
		return Bet{}, ErrInvalidBetParameters
	}
	if amount > l.balance {
		l.notify(events.SeverityError, "Saldo insuficiente para esta aposta.")
		return Bet{}, ErrInsufficientBalance
	}

	bet := Bet{
		ID:                uuid.NewString(),
		GameID:            game.ID,
		BetOn:             betOn,
		Amount:            amount,
		Odds:              odds,
		Status:            StatusPending,
		PotentialWinnings: amount * odds,
		GameDetails: GameDetails{
			HomeTeam: game.HomeTeam,
			HomeLogo: game.HomeLogo,
			AwayTeam: game.AwayTeam,
			AwayLogo: game.AwayLogo,
			Date:     game.Date,
			Sport:    game.Sport,
		},
	}

	l.balance -= amount
	l.bets = append([]Bet{bet}, l.bets...)
	l.persist(ctx)

	l.notify(events.SeveritySuccess, "Aposta realizada com sucesso!")
	return bet, nil
}

// Cancel devolve o stake e remove a aposta do histórico por completo
// (sem estado terminal "cancelada"). Só apostas PENDING podem ser canceladas.
func (l *Ledger) Cancel(ctx context.Context, betID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i := range l.bets {
		if l.bets[i].ID == betID && l.bets[i].Status == StatusPending {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrBetNotFound
	}

	l.balance += l.bets[idx].Amount
	l.bets = append(l.bets[:idx:idx], l.bets[idx+1:]...)
	l.persist(ctx)

	l.notify(events.SeverityInfo, "Aposta cancelada.")
	return nil
}

// Settle liquida as apostas PENDING cujos jogos aparecem encerrados com
// placar conhecido no snapshot recebido. Idempotente: uma aposta já WON/LOST
// nunca muda de novo, e um jogo ainda SCHEDULED/LIVE ou sem placar deixa a
// aposta PENDING. Jogos sem id são descartados sem abortar a passada.
func (l *Ledger) Settle(ctx context.Context, finished []events.Game) {
	l.mu.Lock()
	defer l.mu.Unlock()

	byID := make(map[string]events.Game, len(finished))
	for _, g := range finished {
		if g.ID == "" {
			l.log.Warn("skipping feed record without id",
				zap.String("home", g.HomeTeam), zap.String("away", g.AwayTeam))
			continue
		}
		byID[g.ID] = g
	}

	settled := 0
	for i := range l.bets {
		bet := &l.bets[i]
		if bet.Status != StatusPending {
			continue
		}
		game, ok := byID[bet.GameID]
		if !ok {
			continue
		}
		actual, ok := game.FinalOutcome()
		if !ok {
			continue
		}

		bet.FinalHomeScore = game.HomeScore
		bet.FinalAwayScore = game.AwayScore
		if bet.BetOn == actual {
			bet.Status = StatusWon
			l.balance += bet.PotentialWinnings
			l.notify(events.SeveritySuccess,
				fmt.Sprintf("Você ganhou $%.2f em %s vs %s!", bet.PotentialWinnings, game.HomeTeam, game.AwayTeam))
		} else {
			// stake já foi debitado na criação; perder não debita de novo
			bet.Status = StatusLost
			l.notify(events.SeverityError,
				fmt.Sprintf("Você perdeu $%.2f em %s vs %s.", bet.Amount, game.HomeTeam, game.AwayTeam))
		}
		settled++
	}

	if settled > 0 {
		l.persist(ctx)
		l.log.Info("bets settled", zap.String("user_id", l.userID), zap.Int("count", settled))
	}
}

// persist grava o estado atual; falha é registrada e engolida
func (l *Ledger) persist(ctx context.Context) {
	st := State{UserBalance: l.balance, BetHistory: l.bets}
	if err := l.store.Save(ctx, storage.BettingKey(l.userID), st); err != nil {
		l.log.Warn("persist betting state failed", zap.String("user_id", l.userID), zap.Error(err))
	}
}

func (l *Ledger) notify(sev events.Severity, msg string) {
	if l.notifier != nil {
		l.notifier.Notify(l.userID, sev, msg)
	}
}

func validOutcome(o events.Outcome) bool {
	switch o {
	case events.OutcomeHomeWin, events.OutcomeAwayWin, events.OutcomeDraw:
		return true
	}
	return false
}
