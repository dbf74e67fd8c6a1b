package gamclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	gamdomain "github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/gam/domain"
)

// CreateCreative envia um criativo para revisão e o associa aos line items
// indicados. O status de revisão volta na resposta.
func (c *GAMClient) CreateCreative(creative *gamdomain.Creative) (*gamdomain.Creative, error) {
	if err := c.EnsureValidSession(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade da sessão: %w", err)
	}

	payload, err := json.Marshal(creative)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar o criativo: %w", err)
	}

	url := c.networkURL("/creatives")

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	body, err := c.do(req)
	if err != nil {
		if err.Error() == sessionRenewedRetry {
			return c.CreateCreative(creative)
		}
		return nil, err
	}

	var created gamdomain.Creative
	if err := json.Unmarshal(body, &created); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	return &created, nil
}
