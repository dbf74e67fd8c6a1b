package gamclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	gamdomain "github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/gam/domain"
)

// CreateOrder cria uma ordem na rede configurada
func (c *GAMClient) CreateOrder(order *gamdomain.Order) (*gamdomain.Order, error) {
	// Garantir que a sessão seja válida antes de fazer a requisição
	if err := c.EnsureValidSession(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade da sessão: %w", err)
	}

	payload, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar a ordem: %w", err)
	}

	url := c.networkURL("/orders")

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	body, err := c.do(req)
	if err != nil {
		// Se o erro indica que a sessão foi renovada, tentar novamente
		if err.Error() == sessionRenewedRetry {
			return c.CreateOrder(order)
		}
		return nil, err
	}

	var created gamdomain.Order
	if err := json.Unmarshal(body, &created); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	return &created, nil
}

// GetOrder consulta uma ordem pelo identificador nativo
func (c *GAMClient) GetOrder(orderID string) (*gamdomain.Order, error) {
	if err := c.EnsureValidSession(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade da sessão: %w", err)
	}

	url := c.networkURL("/orders/%s", orderID)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	body, err := c.do(req)
	if err != nil {
		if err.Error() == sessionRenewedRetry {
			return c.GetOrder(orderID)
		}
		return nil, err
	}

	var order gamdomain.Order
	if err := json.Unmarshal(body, &order); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	return &order, nil
}

// UpdateOrder aplica uma alteração parcial na ordem; campos zerados são
// omitidos do corpo e permanecem intactos na plataforma
func (c *GAMClient) UpdateOrder(order *gamdomain.Order) (*gamdomain.Order, error) {
	if err := c.EnsureValidSession(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade da sessão: %w", err)
	}

	payload, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar a ordem: %w", err)
	}

	url := c.networkURL("/orders/%s", order.ID)

	req, err := http.NewRequest(http.MethodPatch, url, bytes.NewReader(payload))
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	body, err := c.do(req)
	if err != nil {
		if err.Error() == sessionRenewedRetry {
			return c.UpdateOrder(order)
		}
		return nil, err
	}

	var updated gamdomain.Order
	if err := json.Unmarshal(body, &updated); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	return &updated, nil
}

// PerformOrderAction executa uma ação sobre a ordem e devolve o estado
// resultante
func (c *GAMClient) PerformOrderAction(orderID, action string) (*gamdomain.Order, error) {
	if err := c.EnsureValidSession(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade da sessão: %w", err)
	}

	payload, err := json.Marshal(map[string]string{"action": action})
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar a ação: %w", err)
	}

	url := c.networkURL("/orders/%s/actions", orderID)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	body, err := c.do(req)
	if err != nil {
		if err.Error() == sessionRenewedRetry {
			return c.PerformOrderAction(orderID, action)
		}
		return nil, err
	}

	var order gamdomain.Order
	if err := json.Unmarshal(body, &order); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	return &order, nil
}
