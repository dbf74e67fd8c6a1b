package gamdomain

// ForecastRequest pede previsão de disponibilidade para um line item ainda
// não criado na plataforma.
type ForecastRequest struct {
	LineItem LineItem `json:"line_item"`
}

// Forecast é a resposta do servidor de previsão: unidades que casam com a
// segmentação, quantas ainda estão livres e quantas já estão reservadas por
// outras ordens.
type Forecast struct {
	MatchedUnits   int64 `json:"matched_units"`
	AvailableUnits int64 `json:"available_units"`
	ReservedUnits  int64 `json:"reserved_units"`
}
