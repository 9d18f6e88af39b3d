package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/game-day-dashboard-poc/internal/ledger"
	"github.com/radieske/game-day-dashboard-poc/internal/storage"
	"github.com/radieske/game-day-dashboard-poc/pkg/contracts/events"
)

func ip(v int) *int { return &v }

func TestGetReturnsSameLedgerPerUser(t *testing.T) {
	m := NewManager(zap.NewNop(), storage.NewMemory(), nil, 500)

	a := m.Get("u1")
	b := m.Get("u1")
	c := m.Get("u2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 500.0, a.Balance())
}

func TestSettleAllCoversActiveSessions(t *testing.T) {
	m := NewManager(zap.NewNop(), storage.NewMemory(), nil, 100)
	ctx := context.Background()

	game := events.Game{
		ID: "g1", Date: "2026-08-29", Sport: "Futebol",
		HomeTeam: "Flamengo", AwayTeam: "Palmeiras",
		Status: events.StatusScheduled,
	}
	_, err := m.Get("u1").Place(ctx, game, events.OutcomeHomeWin, 10, 2)
	require.NoError(t, err)
	_, err = m.Get("u2").Place(ctx, game, events.OutcomeAwayWin, 10, 2)
	require.NoError(t, err)

	fin := game
	fin.Status = events.StatusFinished
	fin.HomeScore = ip(1)
	fin.AwayScore = ip(0)
	m.SettleAll(ctx, []events.Game{fin})

	assert.Equal(t, ledger.StatusWon, m.Get("u1").Bets()[0].Status)
	assert.Equal(t, 110.0, m.Get("u1").Balance())
	assert.Equal(t, ledger.StatusLost, m.Get("u2").Bets()[0].Status)
	assert.Equal(t, 90.0, m.Get("u2").Balance())
}
