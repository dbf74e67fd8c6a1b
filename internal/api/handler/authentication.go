package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
	"github.com/vfg2006/adcp-dispatch-api/internal/usecases/authenticating"
	"github.com/vfg2006/adcp-dispatch-api/pkg/apiErrors"
)

// OperatorTokenRequest emite um token de operador. A rota é restrita a
// administradores: o primeiro token de admin é emitido fora da API pelo
// tooling de deploy, com o mesmo segredo compartilhado.
type OperatorTokenRequest struct {
	OperatorID string `json:"operator_id"`
	Role       string `json:"role"`
}

// RegisterPrincipalRequest cadastra o comprador de um tenant.
type RegisterPrincipalRequest struct {
	TenantID       string            `json:"tenant_id"`
	PrincipalID    string            `json:"principal_id"`
	Name           string            `json:"name"`
	AdapterType    string            `json:"adapter_type"`
	PlatformConfig map[string]string `json:"platform_config,omitempty"`
}

// APIKeyResponse devolve a chave completa recém-emitida. O texto plano só
// existe nesta resposta.
type APIKeyResponse struct {
	PrincipalID string `json:"principal_id"`
	APIKey      string `json:"api_key"`
}

// GenerateOperatorToken emite um JWT de operador com o papel informado
func GenerateOperatorToken(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req OperatorTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		token, err := service.GenerateOperatorToken(req.OperatorID, req.Role)
		if err != nil {
			handleAuthError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"token": token,
		})
	})
}

// RegisterPrincipal cadastra um comprador e devolve sua chave de API inicial
func RegisterPrincipal(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req RegisterPrincipalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		principal := &domain.Principal{
			TenantID:       req.TenantID,
			PrincipalID:    req.PrincipalID,
			Name:           req.Name,
			AdapterType:    req.AdapterType,
			PlatformConfig: req.PlatformConfig,
		}

		apiKey, err := service.RegisterPrincipal(principal)
		if err != nil {
			logrus.WithError(err).WithField("principal_id", req.PrincipalID).
				Warn("auth: principal registration failed")
			handleAuthError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, APIKeyResponse{
			PrincipalID: principal.PrincipalID,
			APIKey:      apiKey,
		})
	})
}

// ListPrincipals lista os compradores cadastrados, sem hashes de chave
func ListPrincipals(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principals, err := service.ListPrincipals()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao listar principals", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"principals": principals,
		})
	})
}

// RotateAPIKey emite uma nova chave de API para o principal, invalidando a
// anterior
func RotateAPIKey(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principalID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		apiKey, err := service.RotateAPIKey(principalID)
		if err != nil {
			logrus.WithError(err).WithField("principal_id", principalID).
				Warn("auth: api key rotation failed")
			handleAuthError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, APIKeyResponse{
			PrincipalID: principalID,
			APIKey:      apiKey,
		})
	})
}

// handleAuthError traduz erros de autenticação para a resposta apropriada
func handleAuthError(w http.ResponseWriter, err error) {
	// O AuthError já carrega o código de API
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		details := map[string]any{}
		if authErr.PrincipalID != "" {
			details["principal_id"] = authErr.PrincipalID
		}
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), details)
		return
	}

	switch {
	case authenticating.IsCredentialsError(err):
		apiErrors.WriteError(w, apiErrors.ErrInvalidAuthToken, err.Error(), nil)
	case authenticating.IsAuthorizationError(err):
		apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, err.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno de autenticação", nil)
	}
}
