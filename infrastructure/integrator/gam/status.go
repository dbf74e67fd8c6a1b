package gam

import (
	gamdomain "github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/gam/domain"
	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
)

// statusMap converte os status nativos de ordem do Ad Manager para o
// vocabulário canônico do protocolo.
var statusMap = map[string]domain.MediaBuyStatus{
	gamdomain.OrderStatusDraft:           domain.MediaBuyStatusPendingStart,
	gamdomain.OrderStatusPendingApproval: domain.MediaBuyStatusPendingStart,
	gamdomain.OrderStatusApproved:        domain.MediaBuyStatusScheduled,
	gamdomain.OrderStatusReady:           domain.MediaBuyStatusScheduled,
	gamdomain.OrderStatusDelivering:      domain.MediaBuyStatusDelivering,
	gamdomain.OrderStatusPaused:          domain.MediaBuyStatusPaused,
	gamdomain.OrderStatusCanceled:        domain.MediaBuyStatusCanceled,
	gamdomain.OrderStatusCompleted:       domain.MediaBuyStatusCompleted,
}

// ToCanonical converte um status nativo de ordem para o canônico. Status
// desconhecidos caem em pending_start em vez de derrubar a consulta.
func ToCanonical(native string) domain.MediaBuyStatus {
	if mapped, ok := statusMap[native]; ok {
		return mapped
	}
	return domain.MediaBuyStatusPendingStart
}

// activationActions traduz a intenção canônica de ativação para a ação
// nativa de ordem que a realiza no Ad Manager.
var activationActions = map[domain.MediaBuyStatus]string{
	domain.MediaBuyStatusDelivering: gamdomain.OrderActionResume,
	domain.MediaBuyStatusPaused:     gamdomain.OrderActionPause,
}

// activationAction devolve a ação nativa de ordem para ativar ou pausar
// a veiculação.
func activationAction(active bool) string {
	if active {
		return activationActions[domain.MediaBuyStatusDelivering]
	}
	return activationActions[domain.MediaBuyStatusPaused]
}

var creativeStatusMap = map[string]domain.CreativeStatus{
	gamdomain.CreativeStatusApproved:      domain.CreativeStatusApproved,
	gamdomain.CreativeStatusPendingReview: domain.CreativeStatusPendingReview,
	gamdomain.CreativeStatusRejected:      domain.CreativeStatusRejected,
}

// creativeStatusToCanonical converte o status de revisão de um criativo.
// Status desconhecidos ficam como pendentes de revisão.
func creativeStatusToCanonical(native string) domain.CreativeStatus {
	if mapped, ok := creativeStatusMap[native]; ok {
		return mapped
	}
	return domain.CreativeStatusPendingReview
}
