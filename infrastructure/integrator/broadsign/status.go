package broadsign

import (
	"fmt"

	broadsigndomain "github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/broadsign/domain"
	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
)

// Mapeamento do status numérico do Broadsign para o vocabulário canônico do
// protocolo.
var statusMap = map[int]domain.MediaBuyStatus{
	broadsigndomain.CampaignStatusDraft:    domain.MediaBuyStatusPendingStart,
	broadsigndomain.CampaignStatusPending:  domain.MediaBuyStatusPendingStart,
	broadsigndomain.CampaignStatusLive:     domain.MediaBuyStatusDelivering,
	broadsigndomain.CampaignStatusPaused:   domain.MediaBuyStatusPaused,
	broadsigndomain.CampaignStatusDone:     domain.MediaBuyStatusCompleted,
	broadsigndomain.CampaignStatusCanceled: domain.MediaBuyStatusCanceled,
	broadsigndomain.CampaignStatusRejected: domain.MediaBuyStatusFailed,
}

var statusNames = map[int]string{
	broadsigndomain.CampaignStatusDraft:    "draft",
	broadsigndomain.CampaignStatusPending:  "pending",
	broadsigndomain.CampaignStatusLive:     "live",
	broadsigndomain.CampaignStatusPaused:   "paused",
	broadsigndomain.CampaignStatusDone:     "done",
	broadsigndomain.CampaignStatusCanceled: "canceled",
	broadsigndomain.CampaignStatusRejected: "rejected",
}

// ToCanonical converte o status numérico da campanha para o status do
// protocolo. Códigos desconhecidos caem em pending_start até a plataforma
// esclarecer o estado.
func ToCanonical(native int) domain.MediaBuyStatus {
	if status, ok := statusMap[native]; ok {
		return status
	}
	return domain.MediaBuyStatusPendingStart
}

// NativeName é o nome legível do status numérico, guardado no registro para
// diagnóstico.
func NativeName(native int) string {
	if name, ok := statusNames[native]; ok {
		return name
	}
	return fmt.Sprintf("status_%d", native)
}

var moderationMap = map[int]domain.CreativeStatus{
	broadsigndomain.ModerationPending:  domain.CreativeStatusPendingReview,
	broadsigndomain.ModerationApproved: domain.CreativeStatusApproved,
	broadsigndomain.ModerationRejected: domain.CreativeStatusRejected,
}

func moderationToCanonical(native int) domain.CreativeStatus {
	if status, ok := moderationMap[native]; ok {
		return status
	}
	return domain.CreativeStatusPendingReview
}
