package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
	"github.com/vfg2006/adcp-dispatch-api/internal/usecases/dispatching"
	"github.com/vfg2006/adcp-dispatch-api/pkg/apiErrors"
	"github.com/vfg2006/adcp-dispatch-api/pkg/log"
	"github.com/vfg2006/adcp-dispatch-api/pkg/middleware"
	"github.com/vfg2006/adcp-dispatch-api/pkg/utils"
)

// CreateMediaBuyRequest é o corpo da criação de compra: a requisição neutra
// de plataforma mais o webhook opcional notificado quando uma task diferida
// atinge estado terminal.
type CreateMediaBuyRequest struct {
	domain.MediaBuyRequest
	WebhookURL *string `json:"webhook_url,omitempty"`
}

// CreateMediaBuy despacha uma nova compra para a plataforma do principal
// autenticado
func CreateMediaBuy(service dispatching.MediaBuyDispatcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		principal, ok := principalFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidAuthToken, "Principal não autenticado", nil)
			return
		}

		var req CreateMediaBuyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		logger.WithFields(log.Fields{
			"principal_id": principal.PrincipalID,
			"buyer_ref":    req.BuyerRef,
			"packages":     len(req.Packages),
		}).Info("dispatch: creating media buy")

		submission, err := service.CreateMediaBuy(r.Context(), principal, &req.MediaBuyRequest, req.WebhookURL)
		if err != nil {
			logger.WithError(err).WithField("buyer_ref", req.BuyerRef).
				Warn("dispatch: media buy creation failed")
			apiErrors.WriteDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, submission)
	})
}

// UpdateMediaBuy aplica uma alteração parcial com falhas itemizadas por
// pacote
func UpdateMediaBuy(service dispatching.MediaBuyDispatcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		principal, ok := principalFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidAuthToken, "Principal não autenticado", nil)
			return
		}

		mediaBuyID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var body struct {
			domain.UpdateMediaBuyRequest
			WebhookURL *string `json:"webhook_url,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}
		body.MediaBuyID = mediaBuyID

		logger.WithFields(log.Fields{
			"principal_id": principal.PrincipalID,
			"media_buy_id": mediaBuyID,
			"packages":     len(body.Packages),
		}).Info("dispatch: updating media buy")

		submission, err := service.UpdateMediaBuy(r.Context(), principal, &body.UpdateMediaBuyRequest, body.WebhookURL)
		if err != nil {
			logger.WithError(err).WithField("media_buy_id", mediaBuyID).
				Warn("dispatch: media buy update failed")
			apiErrors.WriteDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, submission)
	})
}

// AddCreativeAssets envia criativos para a compra com resultado itemizado
// por criativo
func AddCreativeAssets(service dispatching.MediaBuyDispatcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		principal, ok := principalFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidAuthToken, "Principal não autenticado", nil)
			return
		}

		mediaBuyID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var body struct {
			Assets []domain.CreativeAsset `json:"assets"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}
		if len(body.Assets) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "A lista de criativos não pode ser vazia", nil)
			return
		}

		results, err := service.AddCreativeAssets(r.Context(), principal, mediaBuyID, body.Assets)
		if err != nil {
			logger.WithError(err).WithField("media_buy_id", mediaBuyID).
				Warn("dispatch: creative upload failed")
			apiErrors.WriteDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"media_buy_id": mediaBuyID,
			"results":      results,
		})
	})
}

// CheckMediaBuyStatus atualiza e devolve o status canônico da compra
func CheckMediaBuyStatus(service dispatching.MediaBuyDispatcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		principal, ok := principalFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidAuthToken, "Principal não autenticado", nil)
			return
		}

		mediaBuyID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		record, err := service.CheckStatus(r.Context(), principal, mediaBuyID)
		if err != nil {
			logger.WithError(err).WithField("media_buy_id", mediaBuyID).
				Warn("dispatch: status check failed")
			apiErrors.WriteDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"media_buy_id":  record.ID,
			"status":        record.Status,
			"native_status": record.NativeStatus,
			"updated_at":    record.UpdatedAt,
		})
	})
}

// GetMediaBuyDelivery consolida a entrega da compra no período consultado
func GetMediaBuyDelivery(service dispatching.MediaBuyDispatcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		principal, ok := principalFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidAuthToken, "Principal não autenticado", nil)
			return
		}

		mediaBuyID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		periodStart, err := utils.ParseDate(r.URL.Query().Get("start_date"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro start_date inválido", nil)
			return
		}
		periodEnd, err := utils.ParseDate(r.URL.Query().Get("end_date"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro end_date inválido", nil)
			return
		}

		report, err := service.GetDelivery(r.Context(), principal, mediaBuyID, *periodStart, *periodEnd)
		if err != nil {
			logger.WithError(err).WithField("media_buy_id", mediaBuyID).
				Warn("dispatch: delivery report failed")
			apiErrors.WriteDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, report)
	})
}

// GetMediaBuyDeliveryHistory lista os snapshots diários consolidados pelo job
// de sincronização de entrega
func GetMediaBuyDeliveryHistory(service dispatching.MediaBuyDispatcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		principal, ok := principalFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidAuthToken, "Principal não autenticado", nil)
			return
		}

		mediaBuyID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		periodStart, err := utils.ParseDate(r.URL.Query().Get("start_date"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro start_date inválido", nil)
			return
		}
		periodEnd, err := utils.ParseDate(r.URL.Query().Get("end_date"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro end_date inválido", nil)
			return
		}

		snapshots, err := service.GetDeliveryHistory(r.Context(), principal, mediaBuyID, *periodStart, *periodEnd)
		if err != nil {
			logger.WithError(err).WithField("media_buy_id", mediaBuyID).
				Warn("dispatch: delivery history failed")
			apiErrors.WriteDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"media_buy_id": mediaBuyID,
			"snapshots":    snapshots,
		})
	})
}

// UpdatePerformanceIndex repassa índices de performance do comprador para a
// plataforma
func UpdatePerformanceIndex(service dispatching.MediaBuyDispatcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		principal, ok := principalFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidAuthToken, "Principal não autenticado", nil)
			return
		}

		mediaBuyID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var body struct {
			Indexes []domain.PerformanceIndex `json:"performance_indexes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}
		if len(body.Indexes) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "A lista de índices não pode ser vazia", nil)
			return
		}

		affected, err := service.UpdatePerformanceIndex(r.Context(), principal, mediaBuyID, body.Indexes)
		if err != nil {
			logger.WithError(err).WithField("media_buy_id", mediaBuyID).
				Warn("dispatch: performance index update failed")
			apiErrors.WriteDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"media_buy_id": mediaBuyID,
			"accepted":     affected,
		})
	})
}

// ListMediaBuys lista as compras do principal autenticado
func ListMediaBuys(service dispatching.MediaBuyDispatcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := principalFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidAuthToken, "Principal não autenticado", nil)
			return
		}

		records, err := service.ListMediaBuys(r.Context(), principal)
		if err != nil {
			apiErrors.WriteDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"media_buys": records,
		})
	})
}

// principalFromContext recupera o principal colocado no contexto pelo
// middleware de autenticação de compradores.
func principalFromContext(r *http.Request) (*domain.Principal, bool) {
	principal, ok := r.Context().Value(middleware.ContextKeyPrincipal).(*domain.Principal)
	return principal, ok && principal != nil
}

// writeJSON escreve a resposta JSON com o status informado.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.L.WithError(err).Warn("api: error encoding response")
	}
}
