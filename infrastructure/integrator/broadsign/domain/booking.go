package broadsigndomain

// Booking reserva espaço de exibição de uma campanha em um conjunto de
// telas. A plataforma distribui as exibições entre as telas reservadas até
// alcançar a meta de impressões.
type Booking struct {
	ID              int64   `json:"id,omitempty"`
	CampaignID      int64   `json:"campaign_id,omitempty"`
	ExternalRef     string  `json:"external_ref,omitempty"`
	ScreenIDs       []int64 `json:"screen_ids,omitempty"`
	ImpressionsGoal int64   `json:"impressions_goal,omitempty"`
	Active          *bool   `json:"active,omitempty"`
}
