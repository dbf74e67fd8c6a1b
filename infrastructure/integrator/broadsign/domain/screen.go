package broadsigndomain

// Screen é uma tela do inventário DOOH. O multiplicador de impressões por
// exibição converte exibições em impressões estimadas pela audiência do
// local onde a tela está instalada.
type Screen struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	VenueType          string  `json:"venue_type"`
	Country            string  `json:"country"`
	Region             string  `json:"region"`
	ImpressionsPerPlay float64 `json:"impressions_per_play"`
}
