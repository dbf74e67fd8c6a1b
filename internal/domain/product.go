package domain

import (
	"time"
)

const (
	DeliveryTypeGuaranteed    = "guaranteed"
	DeliveryTypeNonGuaranteed = "non_guaranteed"
)

// Modelos de precificação conhecidos pelo catálogo.
const (
	PricingModelCPM  = "cpm"
	PricingModelCPCV = "cpcv"
)

// Product é um item do catálogo de inventário. As opções de preço pertencem
// ao produto e são somente-leitura para o motor de despacho.
type Product struct {
	ID             string          `json:"product_id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	DeliveryType   string          `json:"delivery_type"`
	Formats        []string        `json:"formats,omitempty"`
	PricingOptions []PricingOption `json:"pricing_options"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// PricingOption é uma forma de comprar o produto: taxa fixa ou leilão, com
// moeda, piso e gasto mínimo por pacote.
type PricingOption struct {
	ID                 string         `json:"pricing_option_id"`
	Model              string         `json:"model"`
	Currency           string         `json:"currency"`
	Rate               *float64       `json:"rate,omitempty"`
	Guidance           *PriceGuidance `json:"price_guidance,omitempty"`
	MinSpendPerPackage *float64       `json:"min_spend_per_package,omitempty"`
	IsFixed            bool           `json:"is_fixed"`
}

// PriceGuidance orienta lances de leilão: piso obrigatório e percentis
// observados opcionais.
type PriceGuidance struct {
	Floor float64  `json:"floor"`
	P50   *float64 `json:"p50,omitempty"`
	P90   *float64 `json:"p90,omitempty"`
}
