package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adcp-dispatch-api/internal/scheduler"
	"github.com/vfg2006/adcp-dispatch-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeWorkflowSweep = "workflow-sweep"
	CronJobTypeDeliverySync  = "delivery-sync"
	CronJobTypeAll           = "all"
)

// CronJobServices contém os agendadores que podem ser executados manualmente
type CronJobServices struct {
	WorkflowSweeperService *scheduler.WorkflowSweeperService
	DeliverySyncService    *scheduler.DeliverySyncService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job não especificado", nil)
			return
		}

		logrus.WithField("cron_type", cronType).Info("Execução manual de cron job solicitada")

		switch cronType {
		case CronJobTypeWorkflowSweep:
			if services.WorkflowSweeperService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Varredor de tasks não disponível", nil)
				return
			}
			services.WorkflowSweeperService.TriggerManualSync()

		case CronJobTypeDeliverySync:
			if services.DeliverySyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Sincronizador de entrega não disponível", nil)
				return
			}
			services.DeliverySyncService.TriggerManualSync()

		case CronJobTypeAll:
			if services.WorkflowSweeperService != nil {
				services.WorkflowSweeperService.TriggerManualSync()
			}
			if services.DeliverySyncService != nil {
				services.DeliverySyncService.TriggerManualSync()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job desconhecido: "+cronType, nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "triggered",
			"type":   cronType,
		})
	}
}

// GetCronStatus retorna o status atual dos agendadores
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}

		if services.WorkflowSweeperService != nil {
			status["workflow_sweep"] = services.WorkflowSweeperService.GetStatus()
		}
		if services.DeliverySyncService != nil {
			status["delivery_sync"] = services.DeliverySyncService.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
