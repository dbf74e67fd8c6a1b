package broadsignclient

import (
	"context"
	"fmt"
	"net/http"

	broadsigndomain "github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/broadsign/domain"
)

// UploadCreative envia um criativo para a moderação de conteúdo da campanha.
// A resposta já carrega o resultado da moderação quando ela é automática.
func (c *BroadsignClient) UploadCreative(upload *broadsigndomain.CreativeUpload) (*broadsigndomain.CreativeUpload, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.RequestTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/campaigns/%d/creatives", upload.CampaignID), nil, upload)
	if err != nil {
		return nil, err
	}

	var created broadsigndomain.CreativeUpload
	if err := c.do(req, &created); err != nil {
		return nil, fmt.Errorf("erro ao enviar o criativo: %w", err)
	}

	return &created, nil
}
