package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tipos de integrador configuráveis por tenant.
const (
	AdapterTypeMock      = "mock"
	AdapterTypeGAM       = "gam"
	AdapterTypeBroadsign = "broadsign"
)

// Principal identifica o comprador autenticado de um tenant e a plataforma
// que atende suas compras. O hash da chave de API nunca sai da camada de
// autenticação.
type Principal struct {
	TenantID       string            `json:"tenant_id"`
	PrincipalID    string            `json:"principal_id"`
	Name           string            `json:"name"`
	AdapterType    string            `json:"adapter_type"`
	PlatformConfig map[string]string `json:"platform_config,omitempty"`
	APIKeyHash     string            `json:"-"`
	Active         bool              `json:"active"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// Papéis aceitos em tokens de operador.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// OperatorClaims são as claims dos tokens JWT usados pelos endpoints de
// operação (conclusão de tasks, disparo de jobs).
type OperatorClaims struct {
	OperatorID string `json:"operator_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}
