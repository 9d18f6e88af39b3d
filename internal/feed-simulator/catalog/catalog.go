package catalog

import (
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/radieske/game-day-dashboard-poc/internal/gamefeed"
	"github.com/radieske/game-day-dashboard-poc/pkg/contracts/events"
)

// Catalog mantém o estado simulado dos jogos do dia. Cada Tick avança o
// ciclo de vida das partidas (SCHEDULED -> LIVE -> FINISHED) com placares
// aleatórios, imitando um feed real mudando entre chamadas.
type Catalog struct {
	mu    sync.Mutex
	rng   *rand.Rand
	games []events.Game
}

// New semeia o catálogo com as fixtures padrão do feed
func New() *Catalog {
	return &Catalog{
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		games: gamefeed.MockGames(),
	}
}

// Games devolve uma cópia do estado atual
func (c *Catalog) Games() []events.Game {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]events.Game, len(c.games))
	copy(out, c.games)
	return out
}

// Tick avança o ciclo de vida das partidas e devolve só as que mudaram,
// pra broadcast incremental no WebSocket
func (c *Catalog) Tick() []events.Game {
	c.mu.Lock()
	defer c.mu.Unlock()

	var changed []events.Game
	for i := range c.games {
		g := &c.games[i]
		switch g.Status {
		case events.StatusScheduled:
			// ~30% de chance da partida começar neste tick
			if c.rng.Intn(100) < 30 {
				home, away, elapsed := 0, 0, 1
				g.Status = events.StatusLive
				g.HomeScore = &home
				g.AwayScore = &away
				g.ElapsedTime = &elapsed
				g.Time = "1'"
				changed = append(changed, *g)
			}
		case events.StatusLive:
			elapsed := 0
			if g.ElapsedTime != nil {
				elapsed = *g.ElapsedTime
			}
			elapsed += 5 + c.rng.Intn(10)
			if elapsed >= 90 {
				g.Status = events.StatusFinished
				g.ElapsedTime = nil
				g.Time = "Encerrado"
			} else {
				e := elapsed
				g.ElapsedTime = &e
				g.Time = strconv.Itoa(elapsed) + "'"
				// ~25% de chance de gol por tick, pra cada lado
				if c.rng.Intn(100) < 25 {
					bump(g.HomeScore)
				}
				if c.rng.Intn(100) < 25 {
					bump(g.AwayScore)
				}
			}
			changed = append(changed, *g)
		}
	}
	return changed
}

func bump(score *int) {
	if score != nil {
		*score++
	}
}
