package broadsigndomain

// Status do ciclo de vida de uma campanha no Broadsign.
const (
	CampaignStatusDraft    = 0
	CampaignStatusPending  = 1
	CampaignStatusLive     = 2
	CampaignStatusPaused   = 3
	CampaignStatusDone     = 4
	CampaignStatusCanceled = 5
	CampaignStatusRejected = 6
)

// Campaign é uma campanha DOOH no domínio do anunciante. As datas usam o
// formato YYYY-MM-DD: a grade de exibição das telas é diária.
type Campaign struct {
	ID          int64   `json:"id,omitempty"`
	DomainID    string  `json:"domain_id,omitempty"`
	Name        string  `json:"name,omitempty"`
	Status      *int    `json:"status,omitempty"`
	StartDate   string  `json:"start_date,omitempty"`
	EndDate     string  `json:"end_date,omitempty"`
	TotalBudget float64 `json:"total_budget,omitempty"`
	Currency    string  `json:"currency,omitempty"`
	ExternalRef string  `json:"external_ref,omitempty"`
}

// StatusCode devolve o status numérico da campanha, tratando resposta sem o
// campo como rascunho.
func (c *Campaign) StatusCode() int {
	if c == nil || c.Status == nil {
		return CampaignStatusDraft
	}
	return *c.Status
}
