package gamefeed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObjectWithProse(t *testing.T) {
	text := "Claro! Segue a análise:\n```json\n{\"predictedWinner\": \"Flamengo\"}\n```\nEspero ter ajudado."
	raw, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"predictedWinner": "Flamengo"}`, string(raw))
}

func TestExtractJSONArrayWithProse(t *testing.T) {
	text := "Aqui estão os jogos:\n[{\"id\": \"g1\"}, {\"id\": \"g2\"}]\nBom proveito!"
	raw, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"g1"},{"id":"g2"}]`, string(raw))
}

func TestExtractJSONPrefersArrayWhenItStartsFirst(t *testing.T) {
	// o array contém objetos, então os dois delimitadores existem;
	// o array começa antes e deve vencer
	text := `[{"id":"g1"}] e também {"solto": true}`
	raw, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.Equal(t, byte('['), raw[0])
}

func TestExtractJSONObjectWhenItStartsFirst(t *testing.T) {
	text := `{"campo": [1,2,3]}`
	raw, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"campo":[1,2,3]}`, string(raw))
}

func TestExtractJSONNoPayload(t *testing.T) {
	_, err := ExtractJSON("desculpe, não consegui encontrar os jogos de hoje")
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestExtractJSONInvalidSegment(t *testing.T) {
	_, err := ExtractJSON("resultado: {isso não é json}")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoJSON)
}

func TestDecodeGamesDropsRecordsWithoutID(t *testing.T) {
	raw := []byte(`[
		{"id": "g1", "homeTeam": "Flamengo", "awayTeam": "Palmeiras", "status": "SCHEDULED"},
		{"homeTeam": "Sem", "awayTeam": "Id", "status": "SCHEDULED"},
		{"id": "g2", "homeTeam": "Grêmio", "awayTeam": "Internacional", "status": "LIVE"}
	]`)

	games, dropped, err := DecodeGames(raw)
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
	require.Len(t, games, 2)
	assert.Equal(t, "g1", games[0].ID)
	assert.Equal(t, "g2", games[1].ID)
}

func TestDecodeGamesInvalidPayload(t *testing.T) {
	_, _, err := DecodeGames([]byte(`{"não": "é array"}`))
	assert.Error(t, err)
}

func TestDecodeGamesNullableFields(t *testing.T) {
	raw := []byte(`[{
		"id": "tenis-1",
		"sport": "Tênis",
		"homeTeam": "Djokovic",
		"awayTeam": "Alcaraz",
		"homeScore": null,
		"awayScore": null,
		"status": "SCHEDULED",
		"prediction": {"homeWinPercentage": 52, "awayWinPercentage": 48, "drawPercentage": null}
	}]`)

	games, dropped, err := DecodeGames(raw)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	require.Len(t, games, 1)
	assert.Nil(t, games[0].HomeScore)
	require.NotNil(t, games[0].Prediction)
	assert.Nil(t, games[0].Prediction.DrawPercentage)
}
