package integrator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/database/memstore"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/mock"
	"github.com/vfg2006/adcp-dispatch-api/internal/config"
	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
)

func webCapabilities() domain.TargetingCapabilities {
	return domain.TargetingCapabilities{
		SupportedDeviceTypes: map[string]bool{"mobile": true, "desktop": true},
		SupportedMediaTypes:  map[string]bool{"video": true, "display": true},
		SupportsOSTargeting:  true,
		SupportsBrowser:      true,
	}
}

func cpmProduct(id string, rate float64) *domain.Product {
	return &domain.Product{
		ID:           id,
		Name:         "Produto de teste",
		DeliveryType: domain.DeliveryTypeGuaranteed,
		PricingOptions: []domain.PricingOption{
			{
				ID:       "po_cpm_fixo",
				Model:    domain.PricingModelCPM,
				Currency: "USD",
				Rate:     &rate,
				IsFixed:  true,
			},
		},
	}
}

func buyRequest(packages ...domain.Package) *domain.MediaBuyRequest {
	return &domain.MediaBuyRequest{
		BuyerRef:    "campanha-teste",
		StartTime:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		TotalBudget: 1000.0,
		Currency:    "USD",
		Packages:    packages,
	}
}

func TestPrepareMediaBuy(t *testing.T) {
	t.Run("Pacote com CPM fixo resolve preço e ganha id próprio", func(t *testing.T) {
		impressions := int64(50000)
		request := buyRequest(domain.Package{
			BuyerRef:    "pacote-alpha",
			ProductIDs:  []string{"prod_video"},
			Impressions: &impressions,
		})
		products := map[string]*domain.Product{"prod_video": cpmProduct("prod_video", 5.0)}

		prepared, err := PrepareMediaBuy(request, products, webCapabilities())

		require.NoError(t, err)
		require.Len(t, prepared.Packages, 1)
		pkg := prepared.Packages[0]
		assert.NotEmpty(t, pkg.ID)
		assert.Equal(t, "prod_video", pkg.ProductID)
		assert.Equal(t, 5.0, pkg.Pricing.Rate)
		assert.Equal(t, 250.0, pkg.Pricing.TotalSpend)
		assert.Equal(t, 250.0, prepared.TotalSpend)
		assert.True(t, pkg.Active)
	})

	t.Run("Violações de segmentação e catálogo acumulam em um único erro", func(t *testing.T) {
		impressions := int64(10000)
		request := buyRequest(
			domain.Package{
				BuyerRef:    "pacote-alpha",
				ProductIDs:  []string{"prod_video"},
				Impressions: &impressions,
				Targeting:   &domain.TargetingOverlay{DeviceTypeAnyOf: []string{"smart_fridge"}},
			},
			domain.Package{
				BuyerRef:    "pacote-beta",
				ProductIDs:  []string{"prod_inexistente"},
				Impressions: &impressions,
			},
		)
		request.Targeting = &domain.TargetingOverlay{MediaTypeAnyOf: []string{"holograma"}}
		products := map[string]*domain.Product{"prod_video": cpmProduct("prod_video", 5.0)}

		prepared, err := PrepareMediaBuy(request, products, webCapabilities())

		assert.Nil(t, prepared)
		require.Error(t, err)

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Len(t, validationErr.Violations, 3)
		assert.Contains(t, err.Error(), `"holograma"`)
		assert.Contains(t, err.Error(), `"smart_fridge"`)
		assert.Contains(t, err.Error(), `"prod_inexistente"`)
	})

	t.Run("Produto sem opções de preço é corrupção de catálogo, não erro do comprador", func(t *testing.T) {
		budget := 100.0
		request := buyRequest(domain.Package{
			BuyerRef:   "pacote-alpha",
			ProductIDs: []string{"prod_quebrado"},
			Budget:     &budget,
		})
		products := map[string]*domain.Product{
			"prod_quebrado": {ID: "prod_quebrado", Name: "Sem preço"},
		}

		prepared, err := PrepareMediaBuy(request, products, webCapabilities())

		assert.Nil(t, prepared)
		assert.True(t, domain.IsDataIntegrityError(err))
		assert.False(t, domain.IsValidationError(err))
	})

	t.Run("Lance abaixo do piso falha antes de qualquer chamada remota", func(t *testing.T) {
		impressions := int64(20000)
		bid := 8.0
		request := buyRequest(domain.Package{
			BuyerRef:    "pacote-leilao",
			ProductIDs:  []string{"prod_leilao"},
			Impressions: &impressions,
			BidPrice:    &bid,
		})
		products := map[string]*domain.Product{
			"prod_leilao": {
				ID:           "prod_leilao",
				DeliveryType: domain.DeliveryTypeNonGuaranteed,
				PricingOptions: []domain.PricingOption{
					{
						ID:       "po_leilao",
						Model:    domain.PricingModelCPM,
						Currency: "USD",
						Guidance: &domain.PriceGuidance{Floor: 10.0},
					},
				},
			},
		}

		prepared, err := PrepareMediaBuy(request, products, webCapabilities())

		assert.Nil(t, prepared)
		assert.ErrorIs(t, err, domain.ErrBidBelowFloor)
	})
}

func TestRegistry(t *testing.T) {
	t.Run("Principal resolve o integrador pelo tipo configurado no tenant", func(t *testing.T) {
		mockAdapter := mock.New(config.Mock{CreativeAutoApprove: true}, memstore.NewArena())
		registry := NewRegistry(mockAdapter)

		adapter, err := registry.ForPrincipal(&domain.Principal{
			PrincipalID: "principal_demo",
			AdapterType: domain.AdapterTypeMock,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.AdapterTypeMock, adapter.Platform())
		assert.Contains(t, registry.Platforms(), domain.AdapterTypeMock)
	})

	t.Run("Tipo de integrador desconhecido é recusado na resolução", func(t *testing.T) {
		registry := NewRegistry()

		adapter, err := registry.ForPrincipal(&domain.Principal{
			PrincipalID: "principal_demo",
			AdapterType: "dsp_misterioso",
		})

		assert.Nil(t, adapter)
		assert.ErrorIs(t, err, ErrUnknownAdapter)
	})
}
