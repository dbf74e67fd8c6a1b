package broadsignclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	broadsigndomain "github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/broadsign/domain"
)

// ScreenSearchParams filtra o inventário de telas do domínio.
type ScreenSearchParams struct {
	VenueTypes []string
	Countries  []string
	Regions    []string
}

type screensEnvelope struct {
	Screens []broadsigndomain.Screen `json:"screens"`
}

// SearchScreens consulta as telas do domínio que atendem aos filtros. Sem
// filtros, devolve o inventário inteiro.
func (c *BroadsignClient) SearchScreens(params ScreenSearchParams) ([]broadsigndomain.Screen, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.RequestTimeout)
	defer cancel()

	// Adicionar parâmetros de consulta.
	query := url.Values{}
	if len(params.VenueTypes) > 0 {
		query.Set("venue_type", strings.Join(params.VenueTypes, ","))
	}
	if len(params.Countries) > 0 {
		query.Set("country", strings.Join(params.Countries, ","))
	}
	if len(params.Regions) > 0 {
		query.Set("region", strings.Join(params.Regions, ","))
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/screens", query, nil)
	if err != nil {
		return nil, err
	}

	var response screensEnvelope
	if err := c.do(req, &response); err != nil {
		return nil, fmt.Errorf("erro ao consultar as telas: %w", err)
	}

	return response.Screens, nil
}
