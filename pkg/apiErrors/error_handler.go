package apiErrors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
)

// Códigos de erro expostos pela API de despacho
const (
	// Erros de autenticação (AUTH)
	ErrMissingAuthToken      = "AUTH_001" // Token de autenticação ausente
	ErrInvalidAuthToken      = "AUTH_002" // Token de autenticação inválido
	ErrPrincipalDisabled     = "AUTH_003" // Principal desativado
	ErrInvalidOperatorToken  = "AUTH_004" // Token de operador inválido ou expirado
	ErrInsufficientPrivilege = "AUTH_005" // Papel sem permissão para a operação

	// Erros de validação (VAL)
	ErrInvalidRequest       = "VAL_001" // Requisição malformada
	ErrUnsupportedTargeting = "VAL_002" // Dimensão de segmentação não suportada
	ErrPricingSelection     = "VAL_003" // Seleção de preço ausente ou inválida
	ErrBidBelowFloor        = "VAL_004" // Lance abaixo do piso
	ErrBelowMinimumSpend    = "VAL_005" // Gasto abaixo do mínimo por pacote
	ErrCurrencyMismatch     = "VAL_006" // Moeda diferente da opção de preço

	// Erros de integridade de catálogo (INT)
	ErrCatalogIntegrity = "INT_001" // Produto chegou ao despacho sem opções de preço

	// Erros de plataforma (PLT)
	ErrPlatformFailure      = "PLT_001" // Falha na chamada à plataforma
	ErrInventoryUnavailable = "PLT_002" // Inventário indisponível
	ErrPlatformAuth         = "PLT_003" // Autenticação na plataforma falhou

	// Erros de workflow (WKF)
	ErrSimulatedRejection = "WKF_001" // Aprovação simulada recusou a operação
	ErrTaskNotFound       = "WKF_002" // Task não encontrada

	// Erros de consulta (NF)
	ErrMediaBuyNotFound = "NF_001" // Compra não encontrada
	ErrProductNotFound  = "NF_002" // Produto não encontrado

	// Erros do servidor (SRV)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrTooManyRequests   = "SRV_003" // Limite de requisições excedido
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrMissingAuthToken:      http.StatusUnauthorized,
	ErrInvalidAuthToken:      http.StatusUnauthorized,
	ErrPrincipalDisabled:     http.StatusForbidden,
	ErrInvalidOperatorToken:  http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrUnsupportedTargeting:  http.StatusBadRequest,
	ErrPricingSelection:      http.StatusBadRequest,
	ErrBidBelowFloor:         http.StatusBadRequest,
	ErrBelowMinimumSpend:     http.StatusBadRequest,
	ErrCurrencyMismatch:      http.StatusBadRequest,
	ErrCatalogIntegrity:      http.StatusInternalServerError,
	ErrPlatformFailure:       http.StatusBadGateway,
	ErrInventoryUnavailable:  http.StatusConflict,
	ErrPlatformAuth:          http.StatusBadGateway,
	ErrSimulatedRejection:    http.StatusUnprocessableEntity,
	ErrTaskNotFound:          http.StatusNotFound,
	ErrMediaBuyNotFound:      http.StatusNotFound,
	ErrProductNotFound:       http.StatusNotFound,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrTooManyRequests:       http.StatusTooManyRequests,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// WriteDomainError traduz um erro da taxonomia do motor de despacho para o
// código de API correspondente e escreve a resposta. Toda rejeição sai com
// código legível por máquina e mensagem legível por humanos.
func WriteDomainError(w http.ResponseWriter, err error) {
	code := CodeFor(err)

	var details any
	var ve *domain.ValidationError
	if errors.As(err, &ve) && len(ve.Violations) > 0 {
		details = ve.Violations
	}

	WriteError(w, code, err.Error(), details)
}

// CodeFor resolve o código de API de um erro da taxonomia do motor
func CodeFor(err error) string {
	switch {
	case domain.IsDataIntegrityError(err):
		return ErrCatalogIntegrity
	case domain.IsSimulatedRejection(err):
		return ErrSimulatedRejection
	case domain.IsInventoryUnavailable(err):
		return ErrInventoryUnavailable
	case domain.IsPlatformError(err):
		if errors.Is(err, domain.ErrPlatformAuth) {
			return ErrPlatformAuth
		}
		return ErrPlatformFailure
	case domain.IsValidationError(err):
		switch {
		case errors.Is(err, domain.ErrUnsupportedTargeting):
			return ErrUnsupportedTargeting
		case errors.Is(err, domain.ErrBidBelowFloor):
			return ErrBidBelowFloor
		case errors.Is(err, domain.ErrBelowMinimumSpend):
			return ErrBelowMinimumSpend
		case errors.Is(err, domain.ErrCurrencyMismatch):
			return ErrCurrencyMismatch
		case errors.Is(err, domain.ErrNoPricingSelection),
			errors.Is(err, domain.ErrPricingOptionNotFound),
			errors.Is(err, domain.ErrNoRateSpecified),
			errors.Is(err, domain.ErrNoBidPrice):
			return ErrPricingSelection
		}
		return ErrInvalidRequest
	case errors.Is(err, domain.ErrMediaBuyNotFound):
		return ErrMediaBuyNotFound
	case errors.Is(err, domain.ErrTaskNotFound):
		return ErrTaskNotFound
	case errors.Is(err, domain.ErrProductNotFound):
		return ErrProductNotFound
	}
	return ErrInternalServer
}

// FromError cria um erro de API a partir de um erro Go
// Útil para quando você quer envolver um erro existente em um erro de API
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
