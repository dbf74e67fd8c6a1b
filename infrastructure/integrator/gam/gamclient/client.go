package gamclient

import (
	"fmt"
	"net/http"
	"time"

	gamdomain "github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/gam/domain"
	"github.com/vfg2006/adcp-dispatch-api/internal/config"
)

type Client interface {
	CreateOrder(order *gamdomain.Order) (*gamdomain.Order, error)
	GetOrder(orderID string) (*gamdomain.Order, error)
	UpdateOrder(order *gamdomain.Order) (*gamdomain.Order, error)
	PerformOrderAction(orderID, action string) (*gamdomain.Order, error)
	CreateLineItems(orderID string, items []gamdomain.LineItem) ([]gamdomain.LineItem, error)
	UpdateLineItem(item *gamdomain.LineItem) (*gamdomain.LineItem, error)
	CheckAvailability(item *gamdomain.LineItem) (*gamdomain.Forecast, error)
	CreateCreative(creative *gamdomain.Creative) (*gamdomain.Creative, error)
	GetDeliveryReport(orderID string, startDate, endDate time.Time) ([]gamdomain.ReportRow, error)
	RefreshSession() error
	EnsureValidSession() error
}

type GAMClient struct {
	Cfg        config.GAM
	Session    *SessionManager
	httpClient *http.Client
}

func NewClient(cfg config.GAM, session *SessionManager) Client {
	client := &GAMClient{
		Cfg:     cfg,
		Session: session,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
	return client
}

// RefreshSession autentica novamente e substitui o token de sessão
func (c *GAMClient) RefreshSession() error {
	return c.Session.RefreshSession()
}

// EnsureValidSession verifica se a sessão atual é válida e renova se necessário
func (c *GAMClient) EnsureValidSession() error {
	return c.Session.EnsureValidSession()
}

// networkURL monta a URL de um recurso dentro da rede configurada
func (c *GAMClient) networkURL(format string, args ...any) string {
	resource := fmt.Sprintf(format, args...)
	return fmt.Sprintf("%s/networks/%s%s", c.Cfg.BaseURL, c.Cfg.NetworkCode, resource)
}

// do executa a requisição com o token de sessão atual e trata a resposta
func (c *GAMClient) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+c.Session.Token())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	return c.Session.HandleResponse(resp)
}
