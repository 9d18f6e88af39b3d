package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/radieske/game-day-dashboard-poc/internal/ledger"
	"github.com/radieske/game-day-dashboard-poc/internal/storage"
	"github.com/radieske/game-day-dashboard-poc/pkg/contracts/events"
)

// Manager mantém um ledger por usuário ativo. Cada ledger é criado na
// primeira operação da sessão, carregando o estado persistido, e fica em
// memória até o processo encerrar.
type Manager struct {
	mu             sync.Mutex
	log            *zap.Logger
	store          storage.Store
	notifier       ledger.Notifier
	initialBalance float64
	ledgers        map[string]*ledger.Ledger
}

func NewManager(log *zap.Logger, store storage.Store, notifier ledger.Notifier, initialBalance float64) *Manager {
	return &Manager{
		log:            log,
		store:          store,
		notifier:       notifier,
		initialBalance: initialBalance,
		ledgers:        make(map[string]*ledger.Ledger),
	}
}

// Get devolve o ledger do usuário, criando a sessão se for a primeira vez
func (m *Manager) Get(userID string) *ledger.Ledger {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.ledgers[userID]; ok {
		return l
	}
	l := ledger.New(m.log, m.store, m.notifier, userID, m.initialBalance)
	m.ledgers[userID] = l
	return l
}

// SettleAll liquida as apostas pendentes de todas as sessões ativas contra
// o snapshot de jogos encerrados
func (m *Manager) SettleAll(ctx context.Context, finished []events.Game) {
	m.mu.Lock()
	ledgers := make([]*ledger.Ledger, 0, len(m.ledgers))
	for _, l := range m.ledgers {
		ledgers = append(ledgers, l)
	}
	m.mu.Unlock()

	for _, l := range ledgers {
		l.Settle(ctx, finished)
	}
}
