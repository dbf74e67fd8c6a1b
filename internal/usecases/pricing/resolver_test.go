package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
)

func float64Ptr(f float64) *float64 { return &f }
func int64Ptr(i int64) *int64      { return &i }
func stringPtr(s string) *string   { return &s }

func fixedCPMProduct(rate float64) *domain.Product {
	return &domain.Product{
		ID:           "prod_display",
		Name:         "Display guaranteed",
		DeliveryType: domain.DeliveryTypeGuaranteed,
		PricingOptions: []domain.PricingOption{
			{
				ID:       "opt_cpm_fixed",
				Model:    domain.PricingModelCPM,
				Currency: "USD",
				Rate:     float64Ptr(rate),
				IsFixed:  true,
			},
		},
	}
}

func auctionCPMProduct(floor float64) *domain.Product {
	return &domain.Product{
		ID:           "prod_video",
		Name:         "Video auction",
		DeliveryType: domain.DeliveryTypeNonGuaranteed,
		PricingOptions: []domain.PricingOption{
			{
				ID:       "opt_cpm_auction",
				Model:    domain.PricingModelCPM,
				Currency: "USD",
				Guidance: &domain.PriceGuidance{Floor: floor, P50: float64Ptr(floor * 1.4)},
				IsFixed:  false,
			},
		},
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		pkg      domain.Package
		product  *domain.Product
		currency string
		validate func(t *testing.T, result *domain.ResolvedPricing, err error)
	}{
		{
			name: "CPM fixo 5.00 com 50000 impressões e opção única - seleção implícita resolve gasto 250.00",
			pkg: domain.Package{
				BuyerRef:    "pkg_display_q4",
				ProductIDs:  []string{"prod_display"},
				Impressions: int64Ptr(50000),
			},
			product:  fixedCPMProduct(5.00),
			currency: "USD",
			validate: func(t *testing.T, result *domain.ResolvedPricing, err error) {
				require.NoError(t, err)
				assert.Equal(t, "opt_cpm_fixed", result.PricingOptionID)
				assert.Equal(t, 5.00, result.Rate)
				assert.Equal(t, 250.00, result.TotalSpend)
				assert.True(t, result.IsFixed)
			},
		},
		{
			name: "Produto sem opções de preço - falha de integridade de catálogo, não erro do comprador",
			pkg: domain.Package{
				BuyerRef:   "pkg_broken",
				ProductIDs: []string{"prod_empty"},
				Budget:     float64Ptr(100),
			},
			product:  &domain.Product{ID: "prod_empty"},
			currency: "USD",
			validate: func(t *testing.T, result *domain.ResolvedPricing, err error) {
				require.Error(t, err)
				assert.True(t, domain.IsDataIntegrityError(err))
				assert.False(t, domain.IsValidationError(err))
				assert.ErrorIs(t, err, domain.ErrNoPricingOptions)
			},
		},
		{
			name: "Mais de uma opção sem seleção explícita - ausência de seleção é erro",
			pkg: domain.Package{
				BuyerRef:    "pkg_ambiguous",
				ProductIDs:  []string{"prod_multi"},
				Impressions: int64Ptr(10000),
			},
			product: &domain.Product{
				ID: "prod_multi",
				PricingOptions: []domain.PricingOption{
					{ID: "opt_a", Model: domain.PricingModelCPM, Currency: "USD", Rate: float64Ptr(4), IsFixed: true},
					{ID: "opt_b", Model: domain.PricingModelCPCV, Currency: "USD", Rate: float64Ptr(0.02), IsFixed: true},
				},
			},
			currency: "USD",
			validate: func(t *testing.T, result *domain.ResolvedPricing, err error) {
				require.Error(t, err)
				assert.True(t, domain.IsValidationError(err))
				assert.ErrorIs(t, err, domain.ErrNoPricingSelection)
			},
		},
		{
			name: "Opção explícita inexistente no produto",
			pkg: domain.Package{
				BuyerRef:        "pkg_wrong_opt",
				ProductIDs:      []string{"prod_display"},
				Impressions:     int64Ptr(10000),
				PricingOptionID: stringPtr("opt_nao_existe"),
			},
			product:  fixedCPMProduct(5.00),
			currency: "USD",
			validate: func(t *testing.T, result *domain.ResolvedPricing, err error) {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrPricingOptionNotFound)
			},
		},
		{
			name: "Moeda da opção diferente da moeda da campanha - rejeitado",
			pkg: domain.Package{
				BuyerRef:    "pkg_brl",
				ProductIDs:  []string{"prod_display"},
				Impressions: int64Ptr(10000),
			},
			product:  fixedCPMProduct(5.00),
			currency: "BRL",
			validate: func(t *testing.T, result *domain.ResolvedPricing, err error) {
				require.Error(t, err)
				assert.True(t, domain.IsValidationError(err))
				assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)
			},
		},
		{
			name: "Opção fixa sem taxa - no rate specified",
			pkg: domain.Package{
				BuyerRef:    "pkg_no_rate",
				ProductIDs:  []string{"prod_norate"},
				Impressions: int64Ptr(10000),
			},
			product: &domain.Product{
				ID: "prod_norate",
				PricingOptions: []domain.PricingOption{
					{ID: "opt_fixed_sem_taxa", Model: domain.PricingModelCPM, Currency: "USD", IsFixed: true},
				},
			},
			currency: "USD",
			validate: func(t *testing.T, result *domain.ResolvedPricing, err error) {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrNoRateSpecified)
				assert.Contains(t, err.Error(), "no rate specified")
			},
		},
		{
			name: "Leilão sem lance - bid_price é obrigatório",
			pkg: domain.Package{
				BuyerRef:    "pkg_sem_lance",
				ProductIDs:  []string{"prod_video"},
				Impressions: int64Ptr(20000),
			},
			product:  auctionCPMProduct(10.0),
			currency: "USD",
			validate: func(t *testing.T, result *domain.ResolvedPricing, err error) {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrNoBidPrice)
			},
		},
		{
			name: "Lance 8.00 contra piso 10.00 - below floor price",
			pkg: domain.Package{
				BuyerRef:    "pkg_lance_baixo",
				ProductIDs:  []string{"prod_video"},
				Impressions: int64Ptr(20000),
				BidPrice:    float64Ptr(8.0),
			},
			product:  auctionCPMProduct(10.0),
			currency: "USD",
			validate: func(t *testing.T, result *domain.ResolvedPricing, err error) {
				require.Error(t, err)
				assert.True(t, domain.IsValidationError(err))
				assert.ErrorIs(t, err, domain.ErrBidBelowFloor)
				assert.Contains(t, err.Error(), "below floor price")
			},
		},
		{
			name: "Lance igual ao piso é aceito e vira a taxa efetiva",
			pkg: domain.Package{
				BuyerRef:    "pkg_lance_no_piso",
				ProductIDs:  []string{"prod_video"},
				Impressions: int64Ptr(20000),
				BidPrice:    float64Ptr(10.0),
			},
			product:  auctionCPMProduct(10.0),
			currency: "USD",
			validate: func(t *testing.T, result *domain.ResolvedPricing, err error) {
				require.NoError(t, err)
				assert.Equal(t, 10.0, result.Rate)
				assert.False(t, result.IsFixed)
				assert.Equal(t, 200.0, result.TotalSpend)
			},
		},
		{
			name: "Gasto resolvido abaixo do mínimo por pacote - below minimum spend",
			pkg: domain.Package{
				BuyerRef:    "pkg_gasto_baixo",
				ProductIDs:  []string{"prod_min"},
				Impressions: int64Ptr(10000),
			},
			product: &domain.Product{
				ID: "prod_min",
				PricingOptions: []domain.PricingOption{
					{
						ID:                 "opt_min",
						Model:              domain.PricingModelCPM,
						Currency:           "USD",
						Rate:               float64Ptr(5.0),
						MinSpendPerPackage: float64Ptr(500.0),
						IsFixed:            true,
					},
				},
			},
			currency: "USD",
			validate: func(t *testing.T, result *domain.ResolvedPricing, err error) {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrBelowMinimumSpend)
				assert.Contains(t, err.Error(), "below minimum")
			},
		},
		{
			name: "Pacote só com orçamento - o próprio orçamento é o gasto comprometido",
			pkg: domain.Package{
				BuyerRef:   "pkg_budget",
				ProductIDs: []string{"prod_display"},
				Budget:     float64Ptr(1200.0),
			},
			product:  fixedCPMProduct(5.00),
			currency: "USD",
			validate: func(t *testing.T, result *domain.ResolvedPricing, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1200.0, result.TotalSpend)
			},
		},
		{
			name: "Pacote sem orçamento e sem meta de impressões - rejeitado",
			pkg: domain.Package{
				BuyerRef:   "pkg_vazio",
				ProductIDs: []string{"prod_display"},
			},
			product:  fixedCPMProduct(5.00),
			currency: "USD",
			validate: func(t *testing.T, result *domain.ResolvedPricing, err error) {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrNoVolume)
			},
		},
		{
			name: "CPCV normaliza por visualização completa, não por milhar",
			pkg: domain.Package{
				BuyerRef:    "pkg_cpcv",
				ProductIDs:  []string{"prod_cpcv"},
				Impressions: int64Ptr(10000),
			},
			product: &domain.Product{
				ID: "prod_cpcv",
				PricingOptions: []domain.PricingOption{
					{ID: "opt_cpcv", Model: domain.PricingModelCPCV, Currency: "USD", Rate: float64Ptr(0.05), IsFixed: true},
				},
			},
			currency: "USD",
			validate: func(t *testing.T, result *domain.ResolvedPricing, err error) {
				require.NoError(t, err)
				assert.Equal(t, 500.0, result.TotalSpend)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Resolve(tt.pkg, tt.product, tt.currency)
			tt.validate(t, result, err)
		})
	}
}
