package events

import "time"

// Severidade de uma notificação para o usuário
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Notification é o evento enviado ao sink de notificações da camada de
// apresentação (toast no navegador). Publicado via Redis Pub/Sub e
// retransmitido pelo hub WebSocket do dashboard-service.
type Notification struct {
	UserID   string   `json:"userId"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Ts       time.Time `json:"ts"`
}
