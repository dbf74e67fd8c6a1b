package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Erros base do motor de despacho
var (
	// Erros de resolução de preço
	ErrNoPricingOptions      = errors.New("product has no pricing options")
	ErrNoPricingSelection    = errors.New("pricing model selection required")
	ErrPricingOptionNotFound = errors.New("pricing option not found")
	ErrCurrencyMismatch      = errors.New("pricing option currency mismatch")
	ErrNoRateSpecified       = errors.New("no rate specified for fixed pricing")
	ErrNoBidPrice            = errors.New("bid price required for auction pricing")
	ErrBidBelowFloor         = errors.New("bid below floor price")
	ErrBelowMinimumSpend     = errors.New("below minimum spend")
	ErrNoVolume              = errors.New("package has no budget or impression goal")

	// Erros de segmentação
	ErrUnsupportedTargeting = errors.New("unsupported targeting")

	// Erros de plataforma
	ErrInventoryUnavailable = errors.New("requested inventory unavailable")
	ErrPlatformAuth         = errors.New("platform authentication failed")

	// Erros de consulta
	ErrMediaBuyNotFound = errors.New("media buy not found")
	ErrTaskNotFound     = errors.New("workflow task not found")
	ErrProductNotFound  = errors.New("product not found")

	// Erros de operação de task
	ErrInvalidTaskOutcome = errors.New("invalid task outcome")
)

// ValidationError agrega todas as violações encontradas em uma requisição.
// Fatal e corrigível pelo comprador: cada campo ofensivo é nomeado para que
// tudo seja corrigido em uma única rodada.
type ValidationError struct {
	Err        error    // Erro base
	Violations []string // Todas as violações, nunca só a primeira
}

// Error implementa a interface error
func (e *ValidationError) Error() string {
	if len(e.Violations) > 0 {
		return fmt.Sprintf("%s: %s", e.Err.Error(), strings.Join(e.Violations, "; "))
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError cria um novo ValidationError
func NewValidationError(baseErr error, violations ...string) *ValidationError {
	return &ValidationError{
		Err:        baseErr,
		Violations: violations,
	}
}

// DataIntegrityError indica corrupção de catálogo a montante, não uma
// requisição ruim. Fatal e não corrigível pelo comprador.
type DataIntegrityError struct {
	Err    error
	Detail string
}

// Error implementa a interface error
func (e *DataIntegrityError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Detail)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *DataIntegrityError) Unwrap() error {
	return e.Err
}

// NewDataIntegrityError cria um novo DataIntegrityError
func NewDataIntegrityError(baseErr error, detail string) *DataIntegrityError {
	return &DataIntegrityError{
		Err:    baseErr,
		Detail: detail,
	}
}

// PlatformError encapsula uma falha de chamada à plataforma de destino.
// Repassado como está: retentativa é responsabilidade do chamador, nunca do
// gateway. Unavailable distingue inventário indisponível de falhas de
// transporte ou autenticação.
type PlatformError struct {
	Platform    string // Integrador de origem
	Op          string // Operação remota que falhou
	Err         error  // Erro base
	Unavailable bool   // Inventário indisponível, não é erro de validação
}

// Error implementa a interface error
func (e *PlatformError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Platform, e.Op, e.Err.Error())
}

// Unwrap retorna o erro subjacente
func (e *PlatformError) Unwrap() error {
	return e.Err
}

// NewPlatformError cria um novo PlatformError
func NewPlatformError(platform, op string, baseErr error) *PlatformError {
	return &PlatformError{
		Platform: platform,
		Op:       op,
		Err:      baseErr,
	}
}

// NewUnavailableError cria um PlatformError de inventário indisponível
func NewUnavailableError(platform, op string, baseErr error) *PlatformError {
	return &PlatformError{
		Platform:    platform,
		Op:          op,
		Err:         baseErr,
		Unavailable: true,
	}
}

// SimulatedRejection é a recusa da simulação de aprovação humana. Carrega uma
// razão legível sorteada do conjunto configurado.
type SimulatedRejection struct {
	Reason string
}

// Error implementa a interface error
func (e *SimulatedRejection) Error() string {
	return fmt.Sprintf("operation rejected: %s", e.Reason)
}

// IsValidationError verifica se o erro é corrigível pelo comprador
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsDataIntegrityError verifica se o erro indica catálogo corrompido
func IsDataIntegrityError(err error) bool {
	var de *DataIntegrityError
	return errors.As(err, &de)
}

// IsPlatformError verifica se o erro veio da plataforma de destino
func IsPlatformError(err error) bool {
	var pe *PlatformError
	return errors.As(err, &pe)
}

// IsInventoryUnavailable verifica se a falha foi de inventário indisponível
func IsInventoryUnavailable(err error) bool {
	var pe *PlatformError
	if errors.As(err, &pe) {
		return pe.Unavailable
	}
	return errors.Is(err, ErrInventoryUnavailable)
}

// IsSimulatedRejection verifica se a simulação de aprovação recusou a operação
func IsSimulatedRejection(err error) bool {
	var sr *SimulatedRejection
	return errors.As(err, &sr)
}
