package authenticating

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/repository"
	"github.com/vfg2006/adcp-dispatch-api/internal/config"
	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
	"github.com/vfg2006/adcp-dispatch-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

type Authenticator interface {
	AuthenticatePrincipal(ctx context.Context, apiKey string) (*domain.Principal, error)
	ValidateOperatorToken(tokenString string) (*domain.OperatorClaims, error)
	GenerateOperatorToken(operatorID, role string) (string, error)
	RegisterPrincipal(principal *domain.Principal) (string, error)
	ListPrincipals() ([]*domain.Principal, error)
	RotateAPIKey(principalID string) (string, error)
}

type Service struct {
	principalRepo repository.PrincipalRepository
	cfg           config.Auth
}

func NewService(principalRepo repository.PrincipalRepository, cfg config.Auth) Authenticator {
	return &Service{
		principalRepo: principalRepo,
		cfg:           cfg,
	}
}

// AuthenticatePrincipal resolve o comprador dono da chave de API. A chave
// carrega o id do principal antes do segredo (principal_abc123.s3gr3d0):
// o id localiza o registro e o segredo é conferido contra o hash bcrypt
// armazenado. O texto plano do segredo nunca é persistido.
func (s *Service) AuthenticatePrincipal(_ context.Context, apiKey string) (*domain.Principal, error) {
	// Validação de entrada
	if apiKey == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingAuthToken, "Chave de API é obrigatória")
	}

	parts := strings.SplitN(apiKey, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, NewAuthError(ErrInvalidAPIKey, apiErrors.ErrInvalidAuthToken, "Formato esperado: <principal_id>.<segredo>")
	}
	principalID, secret := parts[0], parts[1]

	principal, err := s.principalRepo.GetPrincipalByID(principalID)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar principal no banco de dados")
	}

	// Verificar se o principal existe
	if principal == nil {
		return nil, NewPrincipalAuthError(ErrPrincipalNotFound, apiErrors.ErrInvalidAuthToken, principalID, "Principal não cadastrado")
	}

	// Verificar se o principal está ativo
	if !principal.Active {
		return nil, NewPrincipalAuthError(ErrPrincipalDisabled, apiErrors.ErrPrincipalDisabled, principalID, "Conta desativada")
	}

	// Verificar segredo
	if err := bcrypt.CompareHashAndPassword([]byte(principal.APIKeyHash), []byte(secret)); err != nil {
		return nil, NewPrincipalAuthError(ErrInvalidAPIKey, apiErrors.ErrInvalidAuthToken, principalID, "Segredo incorreto")
	}

	return principal, nil
}

// GenerateOperatorToken emite o JWT usado pelos endpoints de operação. Os
// tokens são de curta duração e carregam o papel que as rotas restringem.
func (s *Service) GenerateOperatorToken(operatorID, role string) (string, error) {
	if operatorID == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrInvalidRequest, "Identificador do operador é obrigatório")
	}
	if role != domain.RoleAdmin && role != domain.RoleOperator {
		return "", NewAuthError(ErrUnknownRole, apiErrors.ErrInvalidRequest, fmt.Sprintf("papel desconhecido: %s", role))
	}

	now := time.Now()
	claims := domain.OperatorClaims{
		OperatorID: operatorID,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

func (s *Service) ValidateOperatorToken(tokenString string) (*domain.OperatorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.OperatorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidOperatorToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.OperatorClaims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidOperatorToken, "Claims inválidas")
	}

	if claims.Role != domain.RoleAdmin && claims.Role != domain.RoleOperator {
		return nil, NewAuthError(ErrUnknownRole, apiErrors.ErrInsufficientPrivilege, fmt.Sprintf("papel desconhecido: %s", claims.Role))
	}

	return claims, nil
}

// RegisterPrincipal cadastra o comprador de um tenant e emite sua chave de
// API inicial. A chave completa só existe nesta resposta: apenas o hash do
// segredo é persistido.
func (s *Service) RegisterPrincipal(principal *domain.Principal) (string, error) {
	if principal == nil || principal.PrincipalID == "" || principal.TenantID == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrInvalidRequest, "tenant_id e principal_id são obrigatórios")
	}
	if principal.AdapterType == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrInvalidRequest, "adapter_type é obrigatório")
	}

	existing, err := s.principalRepo.GetPrincipalByID(principal.PrincipalID)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar principal no banco de dados")
	}
	if existing != nil {
		return "", NewPrincipalAuthError(ErrPrincipalAlreadyExists, apiErrors.ErrInvalidRequest, principal.PrincipalID, "Identificador já cadastrado")
	}

	secret, err := generateSecret(24)
	if err != nil {
		return "", err
	}

	hashedSecret, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	principal.APIKeyHash = string(hashedSecret)
	principal.Active = true
	if err := s.principalRepo.SaveOrUpdatePrincipal(principal); err != nil {
		return "", NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao gravar o principal")
	}

	return principal.PrincipalID + "." + secret, nil
}

// ListPrincipals lista os compradores cadastrados, sem os hashes de chave.
func (s *Service) ListPrincipals() ([]*domain.Principal, error) {
	principals, err := s.principalRepo.ListPrincipals()
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao listar principals")
	}

	for _, principal := range principals {
		principal.APIKeyHash = ""
	}

	return principals, nil
}

// RotateAPIKey gera um novo segredo para o principal, grava o hash e devolve
// a chave completa. O texto plano só existe nesta resposta: quem perder a
// chave precisa rotacionar de novo.
func (s *Service) RotateAPIKey(principalID string) (string, error) {
	principal, err := s.principalRepo.GetPrincipalByID(principalID)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar principal no banco de dados")
	}
	if principal == nil {
		return "", NewPrincipalAuthError(ErrPrincipalNotFound, apiErrors.ErrInvalidRequest, principalID, "Principal não cadastrado")
	}

	secret, err := generateSecret(24)
	if err != nil {
		return "", err
	}

	hashedSecret, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	principal.APIKeyHash = string(hashedSecret)
	if err := s.principalRepo.SaveOrUpdatePrincipal(principal); err != nil {
		return "", NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao gravar a nova chave")
	}

	return principal.PrincipalID + "." + secret, nil
}

// generateSecret gera um segredo aleatório com o comprimento especificado
// usando apenas caracteres seguros para cabeçalhos HTTP
func generateSecret(length int) (string, error) {
	if length < 16 {
		length = 16 // Comprimento mínimo para segredos de API
	}

	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	secret := make([]byte, length)
	for i := range secret {
		randomChar, err := getRandomChar(alphabet)
		if err != nil {
			return "", err
		}
		secret[i] = randomChar
	}

	return string(secret), nil
}

// getRandomChar retorna um caractere aleatório do conjunto fornecido
func getRandomChar(charset string) (byte, error) {
	n, err := randomInt(int64(len(charset)))
	if err != nil {
		return 0, err
	}
	return charset[n], nil
}

// randomInt gera um número aleatório seguro entre 0 e max-1
func randomInt(max int64) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}
