package gamefeed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/game-day-dashboard-poc/pkg/contracts/events"
)

// Profundidade da análise de partida
type AnalysisDepth string

const (
	AnalysisQuick AnalysisDepth = "quick"
	AnalysisDeep  AnalysisDepth = "deep"
)

// Client fala com o provedor generativo de dados esportivos (ou com o
// feed-simulator local, que expõe o mesmo endpoint). O provedor é opaco:
// manda-se um prompt, volta texto livre com JSON dentro.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	HTTP    *http.Client
	Log     *zap.Logger
}

func NewClient(baseURL, apiKey, model string, log *zap.Logger) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		APIKey:  apiKey,
		Model:   model,
		HTTP:    &http.Client{Timeout: 90 * time.Second},
		Log:     log,
	}
}

type generateRequest struct {
	Model            string `json:"model"`
	Prompt           string `json:"prompt"`
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// generate envia o prompt e devolve o texto bruto da resposta
func (c *Client) generate(ctx context.Context, model, prompt, mime string) (string, error) {
	body, err := json.Marshal(generateRequest{Model: model, Prompt: prompt, ResponseMimeType: mime})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("x-goog-api-key", c.APIKey)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return "", fmt.Errorf("provider http %d", res.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode provider response: %w", err)
	}
	return out.Text, nil
}

// GamesOfTheDay busca o snapshot de jogos do dia. Registros sem id são
// descartados; o restante da resposta segue válido.
func (c *Client) GamesOfTheDay(ctx context.Context) ([]events.Game, error) {
	text, err := c.generate(ctx, c.Model, promptGamesOfTheDay, "")
	if err != nil {
		return nil, fmt.Errorf("fetch games: %w", err)
	}
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, fmt.Errorf("parse games response: %w", err)
	}
	games, dropped, err := DecodeGames(raw)
	if err != nil {
		return nil, fmt.Errorf("parse games response: %w", err)
	}
	if dropped > 0 {
		c.Log.Warn("feed records dropped", zap.Int("count", dropped))
	}
	return games, nil
}

// TeamHistory busca os jogos do último mês de um time
func (c *Client) TeamHistory(ctx context.Context, team string) ([]events.PastGame, error) {
	return c.fetchHistory(ctx, promptTeamHistory(team))
}

// HeadToHead busca os últimos confrontos diretos entre dois times
func (c *Client) HeadToHead(ctx context.Context, home, away string) ([]events.PastGame, error) {
	return c.fetchHistory(ctx, promptHeadToHead(home, away))
}

func (c *Client) fetchHistory(ctx context.Context, prompt string) ([]events.PastGame, error) {
	text, err := c.generate(ctx, c.Model, prompt, "")
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, fmt.Errorf("parse history response: %w", err)
	}
	var past []events.PastGame
	if err := json.Unmarshal(raw, &past); err != nil {
		return nil, fmt.Errorf("parse history response: %w", err)
	}
	return past, nil
}

// Analysis pede uma análise estruturada da partida. Usa um modelo mais
// parrudo e responseMimeType JSON, então a resposta vem limpa — ainda assim
// o unmarshal é defendido por erro normal, nunca panic.
func (c *Client) Analysis(ctx context.Context, game events.Game, depth AnalysisDepth) (*events.AiAnalysis, error) {
	model := strings.Replace(c.Model, "flash", "pro", 1)
	text, err := c.generate(ctx, model, promptAnalysis(game, depth), "application/json")
	if err != nil {
		return nil, fmt.Errorf("fetch analysis: %w", err)
	}
	var out events.AiAnalysis
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &out); err != nil {
		return nil, fmt.Errorf("parse analysis response: %w", err)
	}
	return &out, nil
}
