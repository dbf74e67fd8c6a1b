package gamclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/vfg2006/adcp-dispatch-api/internal/config"
)

// SessionResponse é a resposta do endpoint de autenticação da API
type SessionResponse struct {
	SessionToken string `json:"session_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// FetchSessionToken troca as credenciais configuradas por um token de sessão
func FetchSessionToken(cfg config.GAM) (*SessionResponse, error) {
	endpoint := fmt.Sprintf("%s/auth/sessions", cfg.BaseURL)

	payload, err := json.Marshal(map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     cfg.ClientID,
		"client_secret": cfg.ClientSecret,
		"network_code":  cfg.NetworkCode,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar as credenciais: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := &http.Client{Timeout: cfg.RequestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("autenticação falhou. Status: %d, Corpo: %s", resp.StatusCode, string(body))
	}

	var sessionResp SessionResponse
	if err := json.Unmarshal(body, &sessionResp); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	if sessionResp.SessionToken == "" {
		return nil, fmt.Errorf("resposta de autenticação sem token de sessão")
	}

	return &sessionResp, nil
}
