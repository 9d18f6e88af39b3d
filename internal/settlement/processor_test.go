package settlement

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/game-day-dashboard-poc/internal/predictions"
	"github.com/radieske/game-day-dashboard-poc/pkg/contracts/events"
)

// fakeReader entrega as mensagens na ordem e cancela o contexto ao esgotar,
// encerrando o Run de forma determinística
type fakeReader struct {
	msgs   []kafka.Message
	i      int
	cancel context.CancelFunc
}

func (r *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if r.i >= len(r.msgs) {
		r.cancel()
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	m := r.msgs[r.i]
	r.i++
	return m, nil
}

type fakeSettler struct {
	calls [][]events.Game
}

func (f *fakeSettler) SettleAll(_ context.Context, finished []events.Game) {
	f.calls = append(f.calls, finished)
}

type fakeScorer struct {
	added []predictions.PredictionResult
	calls int
}

func (f *fakeScorer) Process(_ context.Context, _ []events.Game) []predictions.PredictionResult {
	f.calls++
	out := f.added
	f.added = nil // só a primeira passada tem registros novos
	return out
}

type fakeCache struct {
	sets [][]events.Game
}

func (f *fakeCache) Set(_ context.Context, games []events.Game, _ time.Duration) error {
	f.sets = append(f.sets, games)
	return nil
}

type fakeRepo struct {
	games []string
	preds []string
}

func (f *fakeRepo) UpsertGameResult(_ context.Context, g events.Game) error {
	f.games = append(f.games, g.ID)
	return nil
}

func (f *fakeRepo) InsertPredictionResult(_ context.Context, p predictions.PredictionResult) error {
	f.preds = append(f.preds, p.GameID)
	return nil
}

func ip(v int) *int { return &v }

func snapshotMsg(t *testing.T, source string, games ...events.Game) kafka.Message {
	t.Helper()
	b, err := json.Marshal(events.GamesRefreshed{
		Games:     games,
		Source:    source,
		FetchedAt: time.Now().UTC(),
		Version:   1,
	})
	require.NoError(t, err)
	return kafka.Message{Key: []byte(source), Value: b}
}

func runProcessor(t *testing.T, msgs []kafka.Message) (*fakeSettler, *fakeScorer, *fakeCache, *fakeRepo, map[string]int) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	settler := &fakeSettler{}
	scorer := &fakeScorer{added: []predictions.PredictionResult{{GameID: "fin-1"}}}
	cache := &fakeCache{}
	repo := &fakeRepo{}
	errStages := map[string]int{}

	proc := &Processor{
		Log:     zap.NewNop(),
		Reader:  &fakeReader{msgs: msgs, cancel: cancel},
		Ledgers: settler,
		Scorer:  scorer,
		Cache:   cache,
		Repo:    repo,
		OnError: func(stage string) { errStages[stage]++ },
	}

	err := proc.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	return settler, scorer, cache, repo, errStages
}

func TestProcessorSettlesFinishedGames(t *testing.T) {
	live := events.Game{ID: "live-1", Date: "2026-08-29", Status: events.StatusLive, HomeScore: ip(1), AwayScore: ip(1)}
	fin := events.Game{ID: "fin-1", Date: "2026-08-29", Status: events.StatusFinished, HomeScore: ip(2), AwayScore: ip(0)}

	settler, scorer, cache, repo, _ := runProcessor(t, []kafka.Message{
		snapshotMsg(t, "ai-provider", live, fin),
	})

	// cache recebe a visão completa, liquidação só os encerrados
	require.Len(t, cache.sets, 1)
	assert.Len(t, cache.sets[0], 2)
	require.Len(t, settler.calls, 1)
	require.Len(t, settler.calls[0], 1)
	assert.Equal(t, "fin-1", settler.calls[0][0].ID)

	assert.Equal(t, 1, scorer.calls)
	assert.Equal(t, []string{"fin-1"}, repo.games)
	assert.Equal(t, []string{"fin-1"}, repo.preds)
}

func TestProcessorMergesLiveSnapshots(t *testing.T) {
	g1 := events.Game{ID: "g1", Date: "2026-08-29", Time: "16:00", Status: events.StatusScheduled}
	g2 := events.Game{ID: "g2", Date: "2026-08-29", Time: "19:00", Status: events.StatusScheduled}
	// g2 encerra num snapshot incremental de um jogo só
	g2fin := g2
	g2fin.Status = events.StatusFinished
	g2fin.HomeScore = ip(3)
	g2fin.AwayScore = ip(1)

	settler, _, cache, _, _ := runProcessor(t, []kafka.Message{
		snapshotMsg(t, "ai-provider", g1, g2),
		snapshotMsg(t, "ws-live", g2fin),
	})

	// a segunda visão mantém g1 e traz g2 atualizado
	require.Len(t, cache.sets, 2)
	second := cache.sets[1]
	require.Len(t, second, 2)
	assert.Equal(t, "g1", second[0].ID)
	assert.Equal(t, "g2", second[1].ID)
	assert.Equal(t, events.StatusFinished, second[1].Status)

	require.Len(t, settler.calls, 1)
	assert.Equal(t, "g2", settler.calls[0][0].ID)
}

func TestProcessorSkipsRecordsWithoutID(t *testing.T) {
	broken := events.Game{Date: "2026-08-29", Status: events.StatusFinished, HomeScore: ip(1), AwayScore: ip(0)}
	ok := events.Game{ID: "g1", Date: "2026-08-29", Status: events.StatusScheduled}

	_, _, cache, _, _ := runProcessor(t, []kafka.Message{
		snapshotMsg(t, "ai-provider", broken, ok),
	})

	require.Len(t, cache.sets, 1)
	require.Len(t, cache.sets[0], 1)
	assert.Equal(t, "g1", cache.sets[0][0].ID)
}

func TestProcessorRoutesBadPayloadToErrorStage(t *testing.T) {
	good := snapshotMsg(t, "ai-provider",
		events.Game{ID: "g1", Date: "2026-08-29", Status: events.StatusScheduled})

	settler, _, cache, _, errStages := runProcessor(t, []kafka.Message{
		{Key: []byte("bad"), Value: []byte("isso não é json")},
		good,
	})

	assert.Equal(t, 1, errStages["decode"])
	// a mensagem ruim não derruba o loop; a boa ainda é processada
	require.Len(t, cache.sets, 1)
	assert.Empty(t, settler.calls) // nenhum jogo encerrado
}
