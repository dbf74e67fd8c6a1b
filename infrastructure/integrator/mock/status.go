package mock

import (
	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
)

// Status nativos da plataforma simulada.
const (
	nativeCreated   = "created"
	nativeScheduled = "scheduled"
	nativeLive      = "live"
	nativePaused    = "paused"
	nativeFinished  = "finished"
	nativeCancelled = "cancelled"
)

var statusMap = map[string]domain.MediaBuyStatus{
	nativeCreated:   domain.MediaBuyStatusPendingStart,
	nativeScheduled: domain.MediaBuyStatusScheduled,
	nativeLive:      domain.MediaBuyStatusDelivering,
	nativePaused:    domain.MediaBuyStatusPaused,
	nativeFinished:  domain.MediaBuyStatusCompleted,
	nativeCancelled: domain.MediaBuyStatusCanceled,
}

// nativeMap é a direção inversa de statusMap: o código nativo que a
// simulação usa para realizar cada status canônico.
var nativeMap = map[domain.MediaBuyStatus]string{
	domain.MediaBuyStatusPendingStart: nativeCreated,
	domain.MediaBuyStatusScheduled:    nativeScheduled,
	domain.MediaBuyStatusDelivering:   nativeLive,
	domain.MediaBuyStatusPaused:       nativePaused,
	domain.MediaBuyStatusCompleted:    nativeFinished,
	domain.MediaBuyStatusCanceled:     nativeCancelled,
}

// ToCanonical traduz um status nativo da simulação para o vocabulário
// canônico. Códigos desconhecidos caem em pending_start: uma consulta de
// status nunca falha por causa de um código novo.
func ToCanonical(native string) domain.MediaBuyStatus {
	if status, ok := statusMap[native]; ok {
		return status
	}
	return domain.MediaBuyStatusPendingStart
}

// FromCanonical traduz um status canônico para o código nativo da
// simulação. Status canônicos fora da tabela viram created.
func FromCanonical(status domain.MediaBuyStatus) string {
	if native, ok := nativeMap[status]; ok {
		return native
	}
	return nativeCreated
}
