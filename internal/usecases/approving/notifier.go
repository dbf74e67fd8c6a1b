package approving

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
	"github.com/vfg2006/adcp-dispatch-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Notifier avisa o comprador quando uma tarefa assíncrona chega a um
// estado terminal.
type Notifier interface {
	NotifyCompletion(ctx context.Context, webhookURL string, event domain.TaskEvent) error
}

// WebhookNotifier faz um único POST no webhook registrado na tarefa.
// Não há retentativa: falha de entrega é registrada e descartada, o
// estado terminal da tarefa nunca muda por causa do webhook.
type WebhookNotifier struct {
	client *http.Client
}

func NewWebhookNotifier(timeout time.Duration) *WebhookNotifier {
	return &WebhookNotifier{
		client: &http.Client{Timeout: timeout},
	}
}

func (n *WebhookNotifier) NotifyCompletion(ctx context.Context, webhookURL string, event domain.TaskEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("task_id", event.TaskID).
			Warn("Falha ao entregar webhook de conclusão")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		err := fmt.Errorf("webhook respondeu com status %d", resp.StatusCode)
		log.ForContext(ctx).WithError(err).WithField("task_id", event.TaskID).
			Warn("Webhook de conclusão recusado pelo destino")
		return err
	}

	return nil
}

// NoopNotifier é usado quando a tarefa não tem webhook registrado.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

func (n *NoopNotifier) NotifyCompletion(_ context.Context, _ string, _ domain.TaskEvent) error {
	return nil
}
