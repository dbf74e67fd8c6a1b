package broadsignclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	broadsigndomain "github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/broadsign/domain"
	"github.com/vfg2006/adcp-dispatch-api/internal/config"
)

// Client expõe as operações da API do Broadsign usadas no despacho de
// campanhas DOOH.
type Client interface {
	CreateCampaign(campaign *broadsigndomain.Campaign) (*broadsigndomain.Campaign, error)
	GetCampaign(campaignID int64) (*broadsigndomain.Campaign, error)
	UpdateCampaign(campaign *broadsigndomain.Campaign) (*broadsigndomain.Campaign, error)
	SearchScreens(params ScreenSearchParams) ([]broadsigndomain.Screen, error)
	CreateBooking(booking *broadsigndomain.Booking) (*broadsigndomain.Booking, error)
	UpdateBooking(booking *broadsigndomain.Booking) (*broadsigndomain.Booking, error)
	UploadCreative(upload *broadsigndomain.CreativeUpload) (*broadsigndomain.CreativeUpload, error)
	GetProofOfPlay(campaignID int64, startDate, endDate time.Time) ([]broadsigndomain.ProofOfPlayRow, error)
}

type BroadsignClient struct {
	httpClient *http.Client
	cfg        config.Broadsign
}

// NewClient cria uma nova instância do cliente da API do Broadsign.
func NewClient(cfg config.Broadsign) Client {
	return &BroadsignClient{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		cfg: cfg,
	}
}

// newRequest monta uma requisição autenticada para a API do Broadsign.
func (c *BroadsignClient) newRequest(ctx context.Context, method, endpointPath string, query url.Values, body any) (*http.Request, error) {
	// Construir a URL da requisição.
	endpoint, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, endpointPath)
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar o corpo da requisição: %w", err)
		}
		reader = bytes.NewBuffer(payload)
	}

	// Criar a requisição HTTP.
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	// Adicionar cabeçalhos necessários.
	req.Header.Set("X-Api-Key", c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// do executa a requisição e decodifica a resposta JSON em out.
func (c *BroadsignClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	// Verificar o código de status da resposta.
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("requisição falhou com status: %s: %s", resp.Status, string(body))
	}

	if out == nil {
		return nil
	}

	// Decodificar a resposta JSON.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return nil
}
