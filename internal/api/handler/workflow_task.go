package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/adcp-dispatch-api/internal/usecases/dispatching"
	"github.com/vfg2006/adcp-dispatch-api/pkg/apiErrors"
	"github.com/vfg2006/adcp-dispatch-api/pkg/log"
)

// CompleteTaskRequest é a decisão do operador sobre uma task pendente.
type CompleteTaskRequest struct {
	Outcome string `json:"outcome"` // approve, reject ou fail
	Reason  string `json:"reason,omitempty"`
}

// GetWorkflowTask devolve a task de workflow do principal autenticado
func GetWorkflowTask(service dispatching.TaskDispatcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := principalFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidAuthToken, "Principal não autenticado", nil)
			return
		}

		taskID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		task, err := service.GetTask(r.Context(), principal, taskID)
		if err != nil {
			apiErrors.WriteDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, task)
	})
}

// ListMediaBuyTasks lista as tasks de workflow geradas para uma compra do
// principal autenticado
func ListMediaBuyTasks(service dispatching.TaskDispatcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := principalFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidAuthToken, "Principal não autenticado", nil)
			return
		}

		mediaBuyID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		tasks, err := service.ListTasks(r.Context(), principal, mediaBuyID)
		if err != nil {
			apiErrors.WriteDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"media_buy_id": mediaBuyID,
			"tasks":        tasks,
		})
	})
}

// CompleteWorkflowTask aplica o desfecho decidido pelo operador sobre uma
// task pendente. A primeira transição vence: tasks já terminais voltam no
// estado atual sem erro.
func CompleteWorkflowTask(service dispatching.TaskDispatcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		taskID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var req CompleteTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		logger.WithFields(log.Fields{
			"task_id": taskID,
			"outcome": req.Outcome,
		}).Info("workflow: operator completing task")

		task, err := service.CompleteTask(r.Context(), taskID, req.Outcome, req.Reason)
		if err != nil {
			logger.WithError(err).WithField("task_id", taskID).
				Warn("workflow: task completion failed")
			apiErrors.WriteDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, task)
	})
}
