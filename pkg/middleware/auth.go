package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vfg2006/adcp-dispatch-api/internal/usecases/authenticating"
	"github.com/vfg2006/adcp-dispatch-api/pkg/apiErrors"
)

type contextKey string

const (
	// ContextKeyPrincipal guarda o principal autenticado da requisição
	ContextKeyPrincipal contextKey = "principal"
	// ContextKeyOperator guarda as claims do operador autenticado
	ContextKeyOperator contextKey = "operator"
)

// PrincipalAuthHeader é o cabeçalho de autenticação de compradores do protocolo
const PrincipalAuthHeader = "x-adcp-auth"

// PrincipalAuth autentica o comprador pela chave de API do tenant e coloca o
// principal resolvido no contexto da requisição
func PrincipalAuth(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(PrincipalAuthHeader)
			if token == "" {
				// Compradores fora do protocolo podem usar Authorization: Bearer
				authHeader := r.Header.Get("Authorization")
				trimmed := strings.TrimPrefix(authHeader, "Bearer ")
				if trimmed != authHeader {
					token = trimmed
				}
			}

			if token == "" {
				apiErrors.WriteError(w, apiErrors.ErrMissingAuthToken, "Cabeçalho de autenticação ausente", nil)
				return
			}

			principal, err := authService.AuthenticatePrincipal(r.Context(), token)
			if err != nil {
				if errors.Is(err, authenticating.ErrPrincipalDisabled) {
					apiErrors.WriteError(w, apiErrors.ErrPrincipalDisabled, "Principal desativado", nil)
					return
				}
				apiErrors.WriteError(w, apiErrors.ErrInvalidAuthToken, "Chave de API inválida", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyPrincipal, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
