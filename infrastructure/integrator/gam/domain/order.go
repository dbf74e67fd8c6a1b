package gamdomain

import "math"

// Status nativos de ordem da API do Ad Manager. São valores de fio: nunca
// chegam ao protocolo sem passar pela tabela de conversão do integrador.
const (
	OrderStatusDraft           = "DRAFT"
	OrderStatusPendingApproval = "PENDING_APPROVAL"
	OrderStatusApproved        = "APPROVED"
	OrderStatusReady           = "READY"
	OrderStatusDelivering      = "DELIVERING"
	OrderStatusPaused          = "PAUSED"
	OrderStatusCanceled        = "CANCELED"
	OrderStatusCompleted       = "COMPLETED"
)

// Ações aceitas pelo endpoint de ações de ordem.
const (
	OrderActionSubmit = "submit"
	OrderActionPause  = "pause"
	OrderActionResume = "resume"
)

// Order representa uma ordem de veiculação na rede do Ad Manager. Datas em
// RFC3339; valores monetários em microunidades.
type Order struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	AdvertiserID string `json:"advertiser_id,omitempty"`
	Status       string `json:"status,omitempty"`
	StartTime    string `json:"start_time,omitempty"`
	EndTime      string `json:"end_time,omitempty"`
	TotalBudget  *Money `json:"total_budget,omitempty"`
	ExternalRef  string `json:"external_ref,omitempty"`
}

// Money segue a convenção de microunidades do Ad Manager: uma unidade da
// moeda equivale a 1.000.000 de micros.
type Money struct {
	CurrencyCode string `json:"currency_code"`
	MicroAmount  int64  `json:"micro_amount"`
}

// NewMoney converte um valor em unidades da moeda para microunidades.
func NewMoney(currency string, amount float64) *Money {
	return &Money{
		CurrencyCode: currency,
		MicroAmount:  int64(math.Round(amount * 1e6)),
	}
}

// Amount converte as microunidades de volta para unidades da moeda.
func (m *Money) Amount() float64 {
	if m == nil {
		return 0
	}
	return float64(m.MicroAmount) / 1e6
}

// FromMicros converte microunidades avulsas para unidades da moeda.
func FromMicros(micros int64) float64 {
	return float64(micros) / 1e6
}
