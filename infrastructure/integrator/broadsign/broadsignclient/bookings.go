package broadsignclient

import (
	"context"
	"fmt"
	"net/http"

	broadsigndomain "github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/broadsign/domain"
)

// CreateBooking reserva as telas indicadas para a campanha da reserva.
func (c *BroadsignClient) CreateBooking(booking *broadsigndomain.Booking) (*broadsigndomain.Booking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.RequestTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/campaigns/%d/bookings", booking.CampaignID), nil, booking)
	if err != nil {
		return nil, err
	}

	var created broadsigndomain.Booking
	if err := c.do(req, &created); err != nil {
		return nil, fmt.Errorf("erro ao criar a reserva: %w", err)
	}

	return &created, nil
}

// UpdateBooking aplica uma alteração parcial na reserva. Campos zerados são
// omitidos do corpo e permanecem como estão na plataforma.
func (c *BroadsignClient) UpdateBooking(booking *broadsigndomain.Booking) (*broadsigndomain.Booking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.RequestTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodPatch, fmt.Sprintf("/bookings/%d", booking.ID), nil, booking)
	if err != nil {
		return nil, err
	}

	var updated broadsigndomain.Booking
	if err := c.do(req, &updated); err != nil {
		return nil, fmt.Errorf("erro ao atualizar a reserva %d: %w", booking.ID, err)
	}

	return &updated, nil
}
