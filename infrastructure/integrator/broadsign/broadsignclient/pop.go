package broadsignclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	broadsigndomain "github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/broadsign/domain"
)

type proofOfPlayEnvelope struct {
	Rows []broadsigndomain.ProofOfPlayRow `json:"rows"`
}

// GetProofOfPlay consulta a comprovação de exibição da campanha no período,
// agregada por dia e por tela.
func (c *BroadsignClient) GetProofOfPlay(campaignID int64, startDate, endDate time.Time) ([]broadsigndomain.ProofOfPlayRow, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.RequestTimeout)
	defer cancel()

	// Adicionar parâmetros de consulta.
	query := url.Values{}
	query.Set("campaign_id", strconv.FormatInt(campaignID, 10))
	query.Set("start_date", startDate.Format(time.DateOnly))
	query.Set("end_date", endDate.Format(time.DateOnly))

	req, err := c.newRequest(ctx, http.MethodGet, "/reports/proof-of-play", query, nil)
	if err != nil {
		return nil, err
	}

	var response proofOfPlayEnvelope
	if err := c.do(req, &response); err != nil {
		return nil, fmt.Errorf("erro ao consultar a comprovação de exibição: %w", err)
	}

	return response.Rows, nil
}
