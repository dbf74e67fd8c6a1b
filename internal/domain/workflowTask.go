package domain

import (
	"encoding/json"
	"time"
)

// Nomes canônicos das operações de despacho. As operações de escrita podem
// gerar tasks diferidas; as de leitura aparecem apenas na trilha de
// auditoria.
const (
	OperationCreateMediaBuy         = "create_media_buy"
	OperationUpdateMediaBuy         = "update_media_buy"
	OperationAddCreativeAssets      = "add_creative_assets"
	OperationUpdatePerformanceIndex = "update_performance_index"
	OperationCheckMediaBuyStatus    = "check_media_buy_status"
	OperationGetMediaBuyDelivery    = "get_media_buy_delivery"
)

// WorkflowTask é uma operação que não pôde concluir de forma síncrona e
// aguarda aprovação humana ou um timer de conclusão automática. A operação
// dona da task é fixada na criação; estados terminais são imutáveis.
type WorkflowTask struct {
	ID             string          `json:"id"`
	Operation      string          `json:"operation"`
	TenantID       string          `json:"tenant_id"`
	PrincipalID    string          `json:"principal_id"`
	Status         TaskStatus      `json:"status"`
	Payload        json.RawMessage `json:"payload,omitempty"`
	Detail         *string         `json:"detail,omitempty"`
	MediaBuyID     *string         `json:"media_buy_id,omitempty"`
	WebhookURL     *string         `json:"webhook_url,omitempty"`
	AutoCompleteAt *time.Time      `json:"auto_complete_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
}

// TaskEvent é o corpo publicado para o webhook de uma task assíncrona quando
// ela atinge um estado terminal. Entrega com uma única tentativa.
type TaskEvent struct {
	Event           string     `json:"event"`
	TaskID          string     `json:"task_id"`
	PrincipalID     string     `json:"principal_id"`
	Status          TaskStatus `json:"status"`
	Approved        bool       `json:"approved"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	Timestamp       time.Time  `json:"timestamp"`
}
