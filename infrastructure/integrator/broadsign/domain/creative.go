package broadsigndomain

// Resultado da moderação de conteúdo de um criativo.
const (
	ModerationPending  = 0
	ModerationApproved = 1
	ModerationRejected = 2
)

// CreativeUpload é um criativo enviado para moderação de conteúdo. Telas em
// espaço público exigem revisão antes de qualquer exibição.
type CreativeUpload struct {
	ID               int64  `json:"id,omitempty"`
	CampaignID       int64  `json:"campaign_id,omitempty"`
	Name             string `json:"name,omitempty"`
	Format           string `json:"format,omitempty"`
	MediaURL         string `json:"media_url,omitempty"`
	DurationMs       int    `json:"duration_ms,omitempty"`
	ModerationStatus int    `json:"moderation_status,omitempty"`
	ModerationNotes  string `json:"moderation_notes,omitempty"`
}
