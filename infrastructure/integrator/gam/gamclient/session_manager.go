package gamclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	gamdomain "github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/gam/domain"
	"github.com/vfg2006/adcp-dispatch-api/internal/config"
)

// sessionRenewedRetry é a mensagem-sentinela devolvida depois de uma
// renovação bem-sucedida: o chamador deve repetir a requisição original.
const sessionRenewedRetry = "sessão renovada, tente novamente"

// SessionManager gerencia o token de sessão da API do Ad Manager
type SessionManager struct {
	cfg              config.GAM
	SessionMutex     sync.Mutex
	sessionToken     string
	sessionExpiresAt time.Time
	stopRefresh      chan struct{}
}

// NewSessionManager cria uma nova instância do gerenciador de sessão
func NewSessionManager(cfg config.GAM) *SessionManager {
	return &SessionManager{
		cfg:         cfg,
		stopRefresh: make(chan struct{}),
	}
}

// Token devolve o token de sessão atual
func (sm *SessionManager) Token() string {
	sm.SessionMutex.Lock()
	defer sm.SessionMutex.Unlock()
	return sm.sessionToken
}

// EnsureValidSession verifica se a sessão atual é válida e renova se necessário
func (sm *SessionManager) EnsureValidSession() error {
	sm.SessionMutex.Lock()
	token := sm.sessionToken
	expiresAt := sm.sessionExpiresAt
	sm.SessionMutex.Unlock()

	if token == "" {
		logrus.Info("Sessão do Ad Manager não inicializada. Autenticando...")
		return sm.RefreshSession()
	}

	// Renovar proativamente quando faltar menos de cinco minutos
	if time.Until(expiresAt) < 5*time.Minute {
		logrus.Info("Sessão do Ad Manager próxima de expirar. Renovando proativamente...")
		return sm.RefreshSession()
	}

	return nil
}

// RefreshSession autentica novamente e substitui o token de sessão
func (sm *SessionManager) RefreshSession() error {
	sm.SessionMutex.Lock()
	defer sm.SessionMutex.Unlock()

	sessionResp, err := FetchSessionToken(sm.cfg)
	if err != nil {
		return fmt.Errorf("erro ao obter token de sessão: %w", err)
	}

	sm.sessionToken = sessionResp.SessionToken
	sm.sessionExpiresAt = time.Now().Add(time.Duration(sessionResp.ExpiresIn) * time.Second)

	logrus.Infof("Sessão do Ad Manager renovada com sucesso. Expira em: %s",
		sm.sessionExpiresAt.Format(time.RFC3339))

	return nil
}

// StartAutoRefresh inicia uma goroutine que renova a sessão periodicamente
func (sm *SessionManager) StartAutoRefresh() {
	if err := sm.RefreshSession(); err != nil {
		logrus.Errorf("Erro ao iniciar a sessão do Ad Manager: %v", err)
	}

	refreshInterval := 45 * time.Minute
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logrus.Info("Iniciando renovação periódica da sessão do Ad Manager")
			if err := sm.RefreshSession(); err != nil {
				logrus.Errorf("Erro na renovação periódica da sessão: %v", err)

				// Se falhar, tente novamente em um intervalo mais curto
				ticker.Reset(5 * time.Minute)
			} else {
				ticker.Reset(refreshInterval)
			}
		case <-sm.stopRefresh:
			logrus.Info("Encerrando goroutine de renovação da sessão do Ad Manager")
			return
		}
	}
}

// StopAutoRefresh para a goroutine de renovação automática
func (sm *SessionManager) StopAutoRefresh() {
	close(sm.stopRefresh)
}

// HandleResponse manipula a resposta HTTP e verifica erros de sessão expirada
func (sm *SessionManager) HandleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return body, nil
	}

	return sm.handleErrorResponse(resp.StatusCode, body)
}

// handleErrorResponse processa erros nas respostas da API
func (sm *SessionManager) handleErrorResponse(statusCode int, body []byte) ([]byte, error) {
	errorResp, parseErr := ParseErrorResponse(body)

	if statusCode == http.StatusUnauthorized || (parseErr == nil && errorResp.IsSessionExpired()) {
		logrus.Warn("Sessão expirada detectada pela API do Ad Manager. Renovando...")

		if refreshErr := sm.RefreshSession(); refreshErr != nil {
			return nil, fmt.Errorf("erro ao renovar sessão expirada: %w", refreshErr)
		}

		return nil, fmt.Errorf(sessionRenewedRetry)
	}

	if parseErr == nil && errorResp.Error.Message != "" {
		return nil, fmt.Errorf("erro na resposta da API. Status: %d, Mensagem: %s", statusCode, errorResp.Error.Message)
	}

	return nil, fmt.Errorf("erro na resposta da API. Status: %d, Corpo: %s", statusCode, string(body))
}

// ParseErrorResponse tenta parsear um erro da API do Ad Manager
func ParseErrorResponse(body []byte) (*gamdomain.ErrorResponse, error) {
	var errorResp gamdomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil {
		return nil, err
	}
	return &errorResp, nil
}
