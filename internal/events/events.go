package events

import "context"

// Tipos de evento publicados no canal de despacho
const (
	EventMediaBuyStatusChanged = "media_buy_status_changed"
	EventTaskCompleted         = "workflow_task_completed"
	EventCreativeReviewed      = "creative_reviewed"
)

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

// Publisher publica eventos de mudança de estado para consumidores
// externos (consoles, bots de notificação). A publicação é melhor
// esforço: quem chama nunca deve falhar a operação por causa dela.
type Publisher interface {
	Publish(ctx context.Context, channel string, event Event) error
}

// NoopPublisher é usado quando a publicação de eventos está desligada.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) Publish(_ context.Context, _ string, _ Event) error {
	return nil
}
