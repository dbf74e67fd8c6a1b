package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
	"github.com/vfg2006/adcp-dispatch-api/internal/usecases/authenticating"
	"github.com/vfg2006/adcp-dispatch-api/pkg/apiErrors"
)

// OperatorAuth valida o token JWT de operador do cabeçalho Authorization e
// coloca as claims no contexto da requisição
func OperatorAuth(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidOperatorToken, "Cabeçalho Authorization ausente", nil)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				apiErrors.WriteError(w, apiErrors.ErrInvalidOperatorToken, "Token Bearer é obrigatório", nil)
				return
			}

			claims, err := authService.ValidateOperatorToken(tokenString)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidOperatorToken, "Token de operador inválido", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyOperator, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RoleMiddleware cria um middleware que restringe o acesso com base nos papéis
// do operador. allowedRoles é a lista de papéis com permissão para a rota
func RoleMiddleware(allowedRoles []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Obter claims do operador do contexto
			claims, ok := r.Context().Value(ContextKeyOperator).(*domain.OperatorClaims)

			if !ok {
				logrus.Warning("Tentativa de acesso de operador sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidOperatorToken, "Operador não autenticado", nil)
				return
			}

			// Verificar se o papel do operador está na lista de papéis permitidos
			isAllowed := false
			for _, role := range allowedRoles {
				if claims.Role == role {
					isAllowed = true
					break
				}
			}

			if !isAllowed {
				logrus.Warningf("Acesso negado para operador ID=%s, Role=%s", claims.OperatorID, claims.Role)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			// Se tiver permissão, continua para o próximo handler
			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly é um middleware que permite acesso apenas para administradores
func AdminOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]string{domain.RoleAdmin})
}

// AdminOrOperator é um middleware que permite acesso para administradores e
// operadores de aprovação
func AdminOrOperator() func(http.Handler) http.Handler {
	return RoleMiddleware([]string{domain.RoleAdmin, domain.RoleOperator})
}
