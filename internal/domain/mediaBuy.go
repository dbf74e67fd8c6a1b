package domain

import (
	"time"
)

// MediaBuyRequest é a requisição de compra neutra de plataforma, já tipada e
// validada pela camada de protocolo. Imutável depois de submetida a um
// integrador.
type MediaBuyRequest struct {
	BuyerRef    string            `json:"buyer_ref"`
	PONumber    string            `json:"po_number,omitempty"`
	StartTime   time.Time         `json:"start_time"`
	EndTime     time.Time         `json:"end_time"`
	TotalBudget float64           `json:"total_budget"`
	Currency    string            `json:"currency"`
	Packages    []Package         `json:"packages"`
	Targeting   *TargetingOverlay `json:"targeting_overlay,omitempty"`
	StrategyID  *string           `json:"strategy_id,omitempty"`
}

// Package referencia um ou mais produtos do catálogo com meta de orçamento ou
// de impressões e, opcionalmente, segmentação e seleção de preço próprias.
type Package struct {
	BuyerRef        string            `json:"buyer_ref"`
	ProductIDs      []string          `json:"product_ids"`
	Budget          *float64          `json:"budget,omitempty"`
	Impressions     *int64            `json:"impressions,omitempty"`
	Targeting       *TargetingOverlay `json:"targeting_overlay,omitempty"`
	PricingOptionID *string           `json:"pricing_option_id,omitempty"`
	BidPrice        *float64          `json:"bid_price,omitempty"`
}

// ResolvedPricing é o resultado da resolução de preço de um pacote, usado
// para totais de orçamento e para a montagem de ordens nas plataformas.
type ResolvedPricing struct {
	PricingOptionID string  `json:"pricing_option_id"`
	Model           string  `json:"model"`
	Rate            float64 `json:"rate"`
	Currency        string  `json:"currency"`
	IsFixed         bool    `json:"is_fixed"`
	TotalSpend      float64 `json:"total_spend"`
}

// MediaBuyRecord é a representação de uma compra efetivada, de posse do
// integrador que a criou. Nunca é removida: cancelamentos apenas a movem para
// o status "canceled".
type MediaBuyRecord struct {
	ID                 string             `json:"id"`
	PlatformBuyID      string             `json:"platform_buy_id"`
	TenantID           string             `json:"tenant_id"`
	PrincipalID        string             `json:"principal_id"`
	BuyerRef           string             `json:"buyer_ref"`
	PONumber           string             `json:"po_number,omitempty"`
	Status             MediaBuyStatus     `json:"status"`
	NativeStatus       string             `json:"native_status"`
	TotalBudget        float64            `json:"total_budget"`
	Currency           string             `json:"currency"`
	StartTime          time.Time          `json:"start_time"`
	EndTime            time.Time          `json:"end_time"`
	Packages           []PackageRecord    `json:"packages"`
	Creatives          []CreativeAsset    `json:"creatives,omitempty"`
	PerformanceIndexes map[string]float64 `json:"performance_indexes,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// PackageRecord é um pacote já resolvido e aceito dentro de uma compra.
type PackageRecord struct {
	ID             string          `json:"id"`
	BuyerRef       string          `json:"buyer_ref"`
	ProductID      string          `json:"product_id"`
	DeliveryType   string          `json:"delivery_type,omitempty"`
	PlatformLineID string          `json:"platform_line_id,omitempty"`
	Pricing        ResolvedPricing `json:"pricing"`
	Impressions    *int64          `json:"impressions,omitempty"`
	Budget         float64         `json:"budget"`
	Active         bool            `json:"active"`
}

// UpdateMediaBuyRequest descreve uma alteração parcial de compra. Campos nil
// permanecem intactos; alterações por pacote são aplicadas uma a uma com
// falhas itemizadas.
type UpdateMediaBuyRequest struct {
	MediaBuyID  string          `json:"media_buy_id"`
	Active      *bool           `json:"active,omitempty"`
	EndTime     *time.Time      `json:"end_time,omitempty"`
	TotalBudget *float64        `json:"total_budget,omitempty"`
	Packages    []PackageUpdate `json:"packages,omitempty"`
}

type PackageUpdate struct {
	PackageID   string   `json:"package_id"`
	Active      *bool    `json:"active,omitempty"`
	Budget      *float64 `json:"budget,omitempty"`
	Impressions *int64   `json:"impressions,omitempty"`
}

// PackageUpdateResult itemiza o resultado de uma alteração de pacote dentro
// de um update parcial.
type PackageUpdateResult struct {
	PackageID string `json:"package_id"`
	Applied   bool   `json:"applied"`
	Detail    string `json:"detail,omitempty"`
}

// PerformanceIndex é o índice de performance informado pelo comprador para um
// produto dentro de uma compra.
type PerformanceIndex struct {
	ProductID string  `json:"product_id"`
	Index     float64 `json:"performance_index"`
}
