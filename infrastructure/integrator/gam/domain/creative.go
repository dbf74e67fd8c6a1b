package gamdomain

// Status de revisão de criativo na plataforma.
const (
	CreativeStatusApproved      = "APPROVED"
	CreativeStatusPendingReview = "PENDING_REVIEW"
	CreativeStatusRejected      = "REJECTED"
)

// Creative é um criativo enviado para revisão e associado a line items.
type Creative struct {
	ID               string   `json:"id,omitempty"`
	AdvertiserID     string   `json:"advertiser_id,omitempty"`
	Name             string   `json:"name,omitempty"`
	Format           string   `json:"format,omitempty"`
	Size             *Size    `json:"size,omitempty"`
	MediaURL         string   `json:"media_url,omitempty"`
	ClickThroughURL  string   `json:"click_through_url,omitempty"`
	DurationMs       int      `json:"duration_ms,omitempty"`
	LineItemIDs      []string `json:"line_item_ids,omitempty"`
	Status           string   `json:"status,omitempty"`
	PolicyViolations []string `json:"policy_violations,omitempty"`
}

type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}
