package domain

import (
	"time"
)

// DeliveryReport consolida a entrega de uma compra em um período.
type DeliveryReport struct {
	MediaBuyID  string            `json:"media_buy_id"`
	PeriodStart time.Time         `json:"period_start"`
	PeriodEnd   time.Time         `json:"period_end"`
	Impressions int64             `json:"impressions"`
	Spend       float64           `json:"spend"`
	Currency    string            `json:"currency"`
	Pacing      float64           `json:"pacing"`
	ByPackage   []PackageDelivery `json:"by_package,omitempty"`
}

type PackageDelivery struct {
	PackageID   string  `json:"package_id"`
	Impressions int64   `json:"impressions"`
	Spend       float64 `json:"spend"`
}

// DeliverySnapshot é a fotografia diária de entrega persistida pelo job de
// sincronização para consultas históricas.
type DeliverySnapshot struct {
	ID          int64     `json:"id"`
	MediaBuyID  string    `json:"media_buy_id"`
	Date        time.Time `json:"date"`
	Impressions int64     `json:"impressions"`
	Spend       float64   `json:"spend"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AuditEvent é o registro estruturado de uma tentativa de operação. Entrega
// em melhor esforço: nunca bloqueia nem falha a operação primária.
type AuditEvent struct {
	ID          int64          `json:"id"`
	Operation   string         `json:"operation"`
	TenantID    string         `json:"tenant_id"`
	PrincipalID string         `json:"principal_id"`
	MediaBuyID  *string        `json:"media_buy_id,omitempty"`
	Success     bool           `json:"success"`
	Detail      map[string]any `json:"detail,omitempty"`
	OccurredAt  time.Time      `json:"occurred_at"`
}
