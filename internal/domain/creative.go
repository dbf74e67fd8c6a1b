package domain

import (
	"time"
)

// CreativeAsset é um criativo enviado para veiculação em uma compra. O
// status de revisão é atribuído pela plataforma de destino.
type CreativeAsset struct {
	ID              string         `json:"creative_id"`
	Name            string         `json:"name,omitempty"`
	Format          string         `json:"format"`
	MediaURL        string         `json:"media_url"`
	ClickURL        string         `json:"click_url,omitempty"`
	Width           *int           `json:"width,omitempty"`
	Height          *int           `json:"height,omitempty"`
	DurationMs      *int           `json:"duration_ms,omitempty"`
	PackageIDs      []string       `json:"package_ids,omitempty"`
	Status          CreativeStatus `json:"status"`
	RejectionReason *string        `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// CreativeResult itemiza o desfecho de um criativo dentro de um envio em
// lote. Rejeições individuais não interrompem o restante do lote.
type CreativeResult struct {
	CreativeID string         `json:"creative_id"`
	Status     CreativeStatus `json:"status"`
	Detail     string         `json:"detail,omitempty"`
}
