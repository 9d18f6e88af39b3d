package events

import "time"

// Evento publicado no tópico "games_refreshed" a cada ciclo de atualização
// do feed. Carrega o snapshot completo de jogos do dia.
type GamesRefreshed struct {
	Games     []Game    `json:"games"`
	Source    string    `json:"source"` // "ai-provider" | "mock-fallback" | "ws-live"
	FetchedAt time.Time `json:"fetched_at"`
	Version   int       `json:"version"` // incrementado a cada ciclo
}
