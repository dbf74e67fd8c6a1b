package gamclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	gamdomain "github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/gam/domain"
)

// CheckAvailability pede a previsão de disponibilidade para um line item
// ainda não criado na plataforma
func (c *GAMClient) CheckAvailability(item *gamdomain.LineItem) (*gamdomain.Forecast, error) {
	if err := c.EnsureValidSession(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade da sessão: %w", err)
	}

	payload, err := json.Marshal(gamdomain.ForecastRequest{LineItem: *item})
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar o line item: %w", err)
	}

	url := c.networkURL("/forecasts")

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	body, err := c.do(req)
	if err != nil {
		if err.Error() == sessionRenewedRetry {
			return c.CheckAvailability(item)
		}
		return nil, err
	}

	var forecast gamdomain.Forecast
	if err := json.Unmarshal(body, &forecast); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	return &forecast, nil
}
