package gamclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	gamdomain "github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/gam/domain"
)

type lineItemsEnvelope struct {
	LineItems []gamdomain.LineItem `json:"line_items"`
}

// CreateLineItems cria os line items de uma ordem em uma única chamada. A
// API preserva a ordem de criação na resposta.
func (c *GAMClient) CreateLineItems(orderID string, items []gamdomain.LineItem) ([]gamdomain.LineItem, error) {
	if err := c.EnsureValidSession(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade da sessão: %w", err)
	}

	payload, err := json.Marshal(lineItemsEnvelope{LineItems: items})
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar os line items: %w", err)
	}

	url := c.networkURL("/orders/%s/line_items", orderID)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	body, err := c.do(req)
	if err != nil {
		if err.Error() == sessionRenewedRetry {
			return c.CreateLineItems(orderID, items)
		}
		return nil, err
	}

	var response lineItemsEnvelope
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	return response.LineItems, nil
}

// UpdateLineItem aplica uma alteração parcial em um line item
func (c *GAMClient) UpdateLineItem(item *gamdomain.LineItem) (*gamdomain.LineItem, error) {
	if err := c.EnsureValidSession(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade da sessão: %w", err)
	}

	payload, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar o line item: %w", err)
	}

	url := c.networkURL("/line_items/%s", item.ID)

	req, err := http.NewRequest(http.MethodPatch, url, bytes.NewReader(payload))
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	body, err := c.do(req)
	if err != nil {
		if err.Error() == sessionRenewedRetry {
			return c.UpdateLineItem(item)
		}
		return nil, err
	}

	var updated gamdomain.LineItem
	if err := json.Unmarshal(body, &updated); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	return &updated, nil
}
