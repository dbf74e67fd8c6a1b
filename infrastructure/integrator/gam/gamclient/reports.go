package gamclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	gamdomain "github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/gam/domain"
)

type reportEnvelope struct {
	Rows []gamdomain.ReportRow `json:"rows"`
}

// GetDeliveryReport consulta o relatório de entrega de uma ordem no período,
// agregado por line item e dia
func (c *GAMClient) GetDeliveryReport(orderID string, startDate, endDate time.Time) ([]gamdomain.ReportRow, error) {
	if err := c.EnsureValidSession(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade da sessão: %w", err)
	}

	params := url.Values{}
	params.Add("order_id", orderID)
	params.Add("start_date", startDate.Format(time.DateOnly))
	params.Add("end_date", endDate.Format(time.DateOnly))
	params.Add("dimensions", "DATE,LINE_ITEM_ID")
	params.Add("columns", "AD_SERVER_IMPRESSIONS,AD_SERVER_CLICKS,AD_SERVER_REVENUE")

	url := c.networkURL("/reports/delivery") + "?" + params.Encode()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	body, err := c.do(req)
	if err != nil {
		if err.Error() == sessionRenewedRetry {
			return c.GetDeliveryReport(orderID, startDate, endDate)
		}
		return nil, err
	}

	var response reportEnvelope
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	return response.Rows, nil
}
