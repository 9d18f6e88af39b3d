package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/game-day-dashboard-poc/internal/storage"
	"github.com/radieske/game-day-dashboard-poc/pkg/contracts/events"
)

// fakeNotifier captura as notificações emitidas pelo ledger
type fakeNotifier struct {
	msgs []string
	sevs []events.Severity
}

func (f *fakeNotifier) Notify(_ string, severity events.Severity, message string) {
	f.msgs = append(f.msgs, message)
	f.sevs = append(f.sevs, severity)
}

func intp(v int) *int { return &v }

func scheduledGame(id string) events.Game {
	return events.Game{
		ID:       id,
		Sport:    "Futebol",
		Date:     "2026-08-29",
		HomeTeam: "Flamengo",
		AwayTeam: "Palmeiras",
		Status:   events.StatusScheduled,
	}
}

func finishedGame(id string, home, away int) events.Game {
	g := scheduledGame(id)
	g.Status = events.StatusFinished
	g.HomeScore = intp(home)
	g.AwayScore = intp(away)
	return g
}

func newTestLedger(t *testing.T, balance float64) (*Ledger, *storage.Memory, *fakeNotifier) {
	t.Helper()
	store := storage.NewMemory()
	notifier := &fakeNotifier{}
	return New(zap.NewNop(), store, notifier, "user-1", balance), store, notifier
}

func TestPlaceDebitsStakeAndFreezesWinnings(t *testing.T) {
	l, _, notifier := newTestLedger(t, 100)

	bet, err := l.Place(context.Background(), scheduledGame("g1"), events.OutcomeHomeWin, 20, 2.5)
	require.NoError(t, err)

	assert.Equal(t, 80.0, l.Balance())
	assert.Equal(t, StatusPending, bet.Status)
	assert.Equal(t, 50.0, bet.PotentialWinnings)
	assert.NotEmpty(t, bet.ID)
	assert.Equal(t, "Flamengo", bet.GameDetails.HomeTeam)
	assert.Contains(t, notifier.msgs, "Aposta realizada com sucesso!")
}

func TestPlaceMostRecentFirst(t *testing.T) {
	l, _, _ := newTestLedger(t, 100)

	first, err := l.Place(context.Background(), scheduledGame("g1"), events.OutcomeHomeWin, 10, 2)
	require.NoError(t, err)
	second, err := l.Place(context.Background(), scheduledGame("g2"), events.OutcomeDraw, 10, 3)
	require.NoError(t, err)

	bets := l.Bets()
	require.Len(t, bets, 2)
	assert.Equal(t, second.ID, bets[0].ID)
	assert.Equal(t, first.ID, bets[1].ID)
}

func TestPlaceInsufficientBalance(t *testing.T) {
	l, _, notifier := newTestLedger(t, 10)

	_, err := l.Place(context.Background(), scheduledGame("g1"), events.OutcomeHomeWin, 10.01, 2)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, 10.0, l.Balance())
	assert.Empty(t, l.Bets())
	assert.Contains(t, notifier.msgs, "Saldo insuficiente para esta aposta.")
}

func TestPlaceExactBalanceAllowed(t *testing.T) {
	l, _, _ := newTestLedger(t, 10)

	_, err := l.Place(context.Background(), scheduledGame("g1"), events.OutcomeHomeWin, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, l.Balance())
}

func TestPlaceInvalidParameters(t *testing.T) {
	cases := []struct {
		name   string
		game   events.Game
		betOn  events.Outcome
		amount float64
		odds   float64
	}{
		{"jogo sem id", events.Game{}, events.OutcomeHomeWin, 10, 2},
		{"valor zero", scheduledGame("g1"), events.OutcomeHomeWin, 0, 2},
		{"valor negativo", scheduledGame("g1"), events.OutcomeHomeWin, -5, 2},
		{"odd zero", scheduledGame("g1"), events.OutcomeHomeWin, 10, 0},
		{"odd negativa", scheduledGame("g1"), events.OutcomeHomeWin, 10, -1.5},
		{"resultado desconhecido", scheduledGame("g1"), events.Outcome("HOME"), 10, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l, _, _ := newTestLedger(t, 100)
			_, err := l.Place(context.Background(), tc.game, tc.betOn, tc.amount, tc.odds)
			assert.ErrorIs(t, err, ErrInvalidBetParameters)
			assert.Equal(t, 100.0, l.Balance())
			assert.Empty(t, l.Bets())
		})
	}
}

func TestCancelRefundsAndRemoves(t *testing.T) {
	l, _, notifier := newTestLedger(t, 100)

	bet, err := l.Place(context.Background(), scheduledGame("g1"), events.OutcomeHomeWin, 30, 2)
	require.NoError(t, err)
	require.Equal(t, 70.0, l.Balance())

	require.NoError(t, l.Cancel(context.Background(), bet.ID))
	assert.Equal(t, 100.0, l.Balance())
	assert.Empty(t, l.Bets())
	assert.Contains(t, notifier.msgs, "Aposta cancelada.")
}

func TestCancelUnknownBet(t *testing.T) {
	l, _, _ := newTestLedger(t, 100)
	assert.ErrorIs(t, l.Cancel(context.Background(), "nope"), ErrBetNotFound)
}

func TestCancelSettledBetRejected(t *testing.T) {
	l, _, _ := newTestLedger(t, 100)

	bet, err := l.Place(context.Background(), scheduledGame("g1"), events.OutcomeHomeWin, 20, 2.5)
	require.NoError(t, err)
	l.Settle(context.Background(), []events.Game{finishedGame("g1", 2, 0)})

	assert.ErrorIs(t, l.Cancel(context.Background(), bet.ID), ErrBetNotFound)
	// o crédito da vitória permanece
	assert.Equal(t, 130.0, l.Balance())
}

func TestSettleWinCreditsWinnings(t *testing.T) {
	l, _, notifier := newTestLedger(t, 100)

	_, err := l.Place(context.Background(), scheduledGame("g1"), events.OutcomeHomeWin, 20, 2.5)
	require.NoError(t, err)
	require.Equal(t, 80.0, l.Balance())

	l.Settle(context.Background(), []events.Game{finishedGame("g1", 2, 0)})

	assert.Equal(t, 130.0, l.Balance())
	bet := l.Bets()[0]
	assert.Equal(t, StatusWon, bet.Status)
	require.NotNil(t, bet.FinalHomeScore)
	require.NotNil(t, bet.FinalAwayScore)
	assert.Equal(t, 2, *bet.FinalHomeScore)
	assert.Equal(t, 0, *bet.FinalAwayScore)
	assert.Contains(t, notifier.msgs, "Você ganhou $50.00 em Flamengo vs Palmeiras!")
}

func TestSettleLossDoesNotDebitAgain(t *testing.T) {
	l, _, notifier := newTestLedger(t, 100)

	_, err := l.Place(context.Background(), scheduledGame("g1"), events.OutcomeHomeWin, 20, 2.5)
	require.NoError(t, err)

	l.Settle(context.Background(), []events.Game{finishedGame("g1", 0, 1)})

	assert.Equal(t, 80.0, l.Balance())
	assert.Equal(t, StatusLost, l.Bets()[0].Status)
	assert.Contains(t, notifier.msgs, "Você perdeu $20.00 em Flamengo vs Palmeiras.")
}

func TestSettleIsIdempotent(t *testing.T) {
	l, _, notifier := newTestLedger(t, 100)

	_, err := l.Place(context.Background(), scheduledGame("g1"), events.OutcomeHomeWin, 20, 2.5)
	require.NoError(t, err)

	finished := []events.Game{finishedGame("g1", 2, 0)}
	l.Settle(context.Background(), finished)
	require.Equal(t, 130.0, l.Balance())

	notified := len(notifier.msgs)
	l.Settle(context.Background(), finished)
	l.Settle(context.Background(), finished)

	assert.Equal(t, 130.0, l.Balance())
	assert.Len(t, notifier.msgs, notified)
}

func TestSettleSkipsLiveAndMissingScores(t *testing.T) {
	l, _, _ := newTestLedger(t, 100)

	_, err := l.Place(context.Background(), scheduledGame("g1"), events.OutcomeHomeWin, 20, 2)
	require.NoError(t, err)

	live := scheduledGame("g1")
	live.Status = events.StatusLive
	live.HomeScore = intp(1)
	live.AwayScore = intp(0)

	noScore := scheduledGame("g1")
	noScore.Status = events.StatusFinished // placar nulo

	l.Settle(context.Background(), []events.Game{live, noScore})

	assert.Equal(t, StatusPending, l.Bets()[0].Status)
	assert.Equal(t, 80.0, l.Balance())
}

func TestSettleSkipsRecordsWithoutID(t *testing.T) {
	l, _, _ := newTestLedger(t, 100)

	_, err := l.Place(context.Background(), scheduledGame("g1"), events.OutcomeDraw, 20, 3)
	require.NoError(t, err)

	broken := finishedGame("", 1, 1)
	valid := finishedGame("g1", 1, 1)
	l.Settle(context.Background(), []events.Game{broken, valid})

	assert.Equal(t, StatusWon, l.Bets()[0].Status)
	assert.Equal(t, 140.0, l.Balance())
}

func TestSettleDrawOutcome(t *testing.T) {
	l, _, _ := newTestLedger(t, 100)

	_, err := l.Place(context.Background(), scheduledGame("g1"), events.OutcomeHomeWin, 20, 2)
	require.NoError(t, err)

	l.Settle(context.Background(), []events.Game{finishedGame("g1", 1, 1)})
	assert.Equal(t, StatusLost, l.Bets()[0].Status)
}

func TestStateSurvivesRestart(t *testing.T) {
	store := storage.NewMemory()
	log := zap.NewNop()

	l := New(log, store, nil, "user-1", 100)
	bet, err := l.Place(context.Background(), scheduledGame("g1"), events.OutcomeHomeWin, 25, 2)
	require.NoError(t, err)

	// nova sessão com o mesmo store: saldo e histórico voltam
	l2 := New(log, store, nil, "user-1", 1000)
	assert.Equal(t, 75.0, l2.Balance())
	require.Len(t, l2.Bets(), 1)
	assert.Equal(t, bet.ID, l2.Bets()[0].ID)

	// usuário diferente começa do saldo inicial
	other := New(log, store, nil, "user-2", 1000)
	assert.Equal(t, 1000.0, other.Balance())
	assert.Empty(t, other.Bets())
}

func TestConservationAcrossLifecycle(t *testing.T) {
	l, _, _ := newTestLedger(t, 100)
	ctx := context.Background()

	// place + cancel devolve o estado original
	bet, err := l.Place(ctx, scheduledGame("g1"), events.OutcomeHomeWin, 40, 1.8)
	require.NoError(t, err)
	require.NoError(t, l.Cancel(ctx, bet.ID))
	assert.Equal(t, 100.0, l.Balance())

	// place + derrota só debita o stake
	_, err = l.Place(ctx, scheduledGame("g2"), events.OutcomeAwayWin, 40, 1.8)
	require.NoError(t, err)
	g2 := finishedGame("g2", 3, 1)
	l.Settle(ctx, []events.Game{g2})
	assert.Equal(t, 60.0, l.Balance())
}
