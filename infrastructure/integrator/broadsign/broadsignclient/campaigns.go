package broadsignclient

import (
	"context"
	"fmt"
	"net/http"

	broadsigndomain "github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/broadsign/domain"
)

// CreateCampaign cria uma campanha no domínio do anunciante.
func (c *BroadsignClient) CreateCampaign(campaign *broadsigndomain.Campaign) (*broadsigndomain.Campaign, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.RequestTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodPost, "/campaigns", nil, campaign)
	if err != nil {
		return nil, err
	}

	var created broadsigndomain.Campaign
	if err := c.do(req, &created); err != nil {
		return nil, fmt.Errorf("erro ao criar a campanha: %w", err)
	}

	return &created, nil
}

// GetCampaign consulta uma campanha pelo identificador.
func (c *BroadsignClient) GetCampaign(campaignID int64) (*broadsigndomain.Campaign, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.RequestTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/campaigns/%d", campaignID), nil, nil)
	if err != nil {
		return nil, err
	}

	var campaign broadsigndomain.Campaign
	if err := c.do(req, &campaign); err != nil {
		return nil, fmt.Errorf("erro ao consultar a campanha %d: %w", campaignID, err)
	}

	return &campaign, nil
}

// UpdateCampaign aplica uma alteração parcial na campanha. Campos zerados
// são omitidos do corpo e permanecem como estão na plataforma.
func (c *BroadsignClient) UpdateCampaign(campaign *broadsigndomain.Campaign) (*broadsigndomain.Campaign, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.RequestTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodPatch, fmt.Sprintf("/campaigns/%d", campaign.ID), nil, campaign)
	if err != nil {
		return nil, err
	}

	var updated broadsigndomain.Campaign
	if err := c.do(req, &updated); err != nil {
		return nil, fmt.Errorf("erro ao atualizar a campanha %d: %w", campaign.ID, err)
	}

	return &updated, nil
}
