package authenticating

import (
	"errors"
	"fmt"
)

// Tipos de erros de autenticação personalizados
var (
	// Erros de autenticação de compradores
	ErrInvalidAPIKey          = errors.New("chave de API inválida")
	ErrPrincipalDisabled      = errors.New("principal desativado")
	ErrPrincipalNotFound      = errors.New("principal não encontrado")
	ErrPrincipalAlreadyExists = errors.New("principal já cadastrado")

	// Erros de tokens de operador
	ErrInvalidToken          = errors.New("token inválido")
	ErrExpiredToken          = errors.New("token expirado")
	ErrUnknownRole           = errors.New("papel de operador desconhecido")
	ErrInsufficientPrivilege = errors.New("privilégios insuficientes")

	// Erros de validação
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// AuthError é um erro com contexto adicional para autenticação
type AuthError struct {
	Err         error  // Erro base
	Code        string // Código de erro para API
	PrincipalID string // Principal envolvido (quando aplicável)
	Details     string // Detalhes adicionais
}

// Error implementa a interface error
func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsCredentialsError verifica se o erro está relacionado a credenciais inválidas
func IsCredentialsError(err error) bool {
	return errors.Is(err, ErrInvalidAPIKey) ||
		errors.Is(err, ErrPrincipalDisabled) ||
		errors.Is(err, ErrPrincipalNotFound)
}

// IsAuthorizationError verifica se o erro está relacionado a problemas de autorização
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrUnknownRole) ||
		errors.Is(err, ErrInsufficientPrivilege)
}

// NewAuthError cria um novo erro de autenticação
func NewAuthError(baseErr error, code string, details string) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

// NewPrincipalAuthError cria um novo erro de autenticação com contexto do principal
func NewPrincipalAuthError(baseErr error, code string, principalID string, details string) *AuthError {
	return &AuthError{
		Err:         baseErr,
		Code:        code,
		PrincipalID: principalID,
		Details:     details,
	}
}
