package gam

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gamdomain "github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/gam/domain"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/gam/mocks"
	"github.com/vfg2006/adcp-dispatch-api/internal/config"
	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
	"go.uber.org/mock/gomock"
)

var (
	flightStart = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	flightEnd   = time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
)

func newIntegrator(t *testing.T, now time.Time) (*GAMIntegrator, *mocks.MockClient) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	integrator := New(config.GAM{
		BaseURL:     "https://admanager.example.com/api/v2",
		NetworkCode: "5551234",
	}, client)
	integrator.now = func() time.Time { return now }

	return integrator, client
}

func gamPrincipal() *domain.Principal {
	return &domain.Principal{
		TenantID:    "tenant_gam",
		PrincipalID: "principal_gam",
		AdapterType: domain.AdapterTypeGAM,
		PlatformConfig: map[string]string{
			"gam_advertiser_id": "adv_778",
		},
		Active: true,
	}
}

func guaranteedRecord() *domain.MediaBuyRecord {
	impressions := int64(200000)
	return &domain.MediaBuyRecord{
		ID:          "mb_gam1",
		TenantID:    "tenant_gam",
		PrincipalID: "principal_gam",
		BuyerRef:    "verao-2025",
		PONumber:    "PO-556",
		Status:      domain.MediaBuyStatusPendingStart,
		Currency:    "BRL",
		TotalBudget: 2000.0,
		StartTime:   flightStart,
		EndTime:     flightEnd,
		Packages: []domain.PackageRecord{
			{
				ID:           "pkg_video1",
				BuyerRef:     "video-garantido",
				ProductID:    "prod_video",
				DeliveryType: domain.DeliveryTypeGuaranteed,
				Pricing: domain.ResolvedPricing{
					PricingOptionID: "po_cpm_fixo",
					Model:           domain.PricingModelCPM,
					Rate:            10.0,
					Currency:        "BRL",
					IsFixed:         true,
					TotalSpend:      2000.0,
				},
				Impressions: &impressions,
				Budget:      2000.0,
				Active:      true,
			},
		},
	}
}

func gamRequest(record *domain.MediaBuyRecord) *domain.MediaBuyRequest {
	packages := make([]domain.Package, 0, len(record.Packages))
	for _, pkg := range record.Packages {
		packages = append(packages, domain.Package{
			BuyerRef:    pkg.BuyerRef,
			ProductIDs:  []string{pkg.ProductID},
			Impressions: pkg.Impressions,
		})
	}
	return &domain.MediaBuyRequest{
		BuyerRef:    record.BuyerRef,
		PONumber:    record.PONumber,
		StartTime:   record.StartTime,
		EndTime:     record.EndTime,
		TotalBudget: record.TotalBudget,
		Currency:    record.Currency,
		Packages:    packages,
		Targeting:   &domain.TargetingOverlay{GeoCountryAnyOf: []string{"BR"}},
	}
}

func TestCreateMediaBuy(t *testing.T) {
	t.Run("Pacote garantido com disponibilidade cria e submete a ordem", func(t *testing.T) {
		integrator, client := newIntegrator(t, flightStart)
		record := guaranteedRecord()
		request := gamRequest(record)

		client.EXPECT().
			CheckAvailability(gomock.Any()).
			DoAndReturn(func(item *gamdomain.LineItem) (*gamdomain.Forecast, error) {
				assert.Equal(t, gamdomain.LineItemTypeStandard, item.Type)
				require.NotNil(t, item.Goal)
				assert.Equal(t, int64(200000), item.Goal.Units)
				return &gamdomain.Forecast{MatchedUnits: 500000, AvailableUnits: 320000}, nil
			})

		client.EXPECT().
			CreateOrder(gomock.Any()).
			DoAndReturn(func(order *gamdomain.Order) (*gamdomain.Order, error) {
				assert.Equal(t, "verao-2025 (PO-556)", order.Name)
				assert.Equal(t, "adv_778", order.AdvertiserID)
				require.NotNil(t, order.TotalBudget)
				assert.Equal(t, int64(2000000000), order.TotalBudget.MicroAmount)

				created := *order
				created.ID = "ord_1001"
				created.Status = gamdomain.OrderStatusDraft
				return &created, nil
			})

		client.EXPECT().
			CreateLineItems("ord_1001", gomock.Any()).
			DoAndReturn(func(orderID string, items []gamdomain.LineItem) ([]gamdomain.LineItem, error) {
				require.Len(t, items, 1)
				item := items[0]
				assert.Equal(t, gamdomain.CostTypeCPM, item.CostType)
				assert.Equal(t, int64(10000000), item.CostPerUnit.MicroAmount)
				require.NotNil(t, item.Targeting)
				assert.Equal(t, []string{"BR"}, item.Targeting.GeoCountries)

				created := make([]gamdomain.LineItem, len(items))
				copy(created, items)
				for i := range created {
					created[i].ID = fmt.Sprintf("li_%d", 2001+i)
					created[i].OrderID = orderID
					created[i].Status = gamdomain.LineItemStatusActive
				}
				return created, nil
			})

		client.EXPECT().
			PerformOrderAction("ord_1001", gamdomain.OrderActionSubmit).
			Return(&gamdomain.Order{ID: "ord_1001", Status: gamdomain.OrderStatusPendingApproval}, nil)

		err := integrator.CreateMediaBuy(context.Background(), gamPrincipal(), record, request)
		require.NoError(t, err)

		assert.Equal(t, "ord_1001", record.PlatformBuyID)
		assert.Equal(t, gamdomain.OrderStatusPendingApproval, record.NativeStatus)
		assert.Equal(t, domain.MediaBuyStatusPendingStart, record.Status)
		assert.Equal(t, "li_2001", record.Packages[0].PlatformLineID)
	})

	t.Run("Previsão sem unidades suficientes recusa antes de criar a ordem", func(t *testing.T) {
		integrator, client := newIntegrator(t, flightStart)
		record := guaranteedRecord()

		client.EXPECT().
			CheckAvailability(gomock.Any()).
			Return(&gamdomain.Forecast{MatchedUnits: 500000, AvailableUnits: 120000}, nil)

		err := integrator.CreateMediaBuy(context.Background(), gamPrincipal(), record, gamRequest(record))
		require.Error(t, err)

		assert.True(t, domain.IsInventoryUnavailable(err))
		assert.ErrorContains(t, err, "forecast offers 120000")
		assert.Empty(t, record.PlatformBuyID)
	})

	t.Run("Principal sem advertiser configurado falha sem chamar a plataforma", func(t *testing.T) {
		integrator, _ := newIntegrator(t, flightStart)
		record := guaranteedRecord()
		principal := gamPrincipal()
		principal.PlatformConfig = nil

		err := integrator.CreateMediaBuy(context.Background(), principal, record, gamRequest(record))
		require.Error(t, err)

		assert.True(t, domain.IsPlatformError(err))
		assert.False(t, domain.IsInventoryUnavailable(err))
	})

	t.Run("Falha nos line items mantém a ordem órfã rastreável", func(t *testing.T) {
		integrator, client := newIntegrator(t, flightStart)
		record := guaranteedRecord()
		record.Packages[0].DeliveryType = domain.DeliveryTypeNonGuaranteed

		client.EXPECT().
			CreateOrder(gomock.Any()).
			Return(&gamdomain.Order{ID: "ord_1002", Status: gamdomain.OrderStatusDraft}, nil)
		client.EXPECT().
			CreateLineItems("ord_1002", gomock.Any()).
			Return(nil, errors.New("quota exceeded"))

		err := integrator.CreateMediaBuy(context.Background(), gamPrincipal(), record, gamRequest(record))
		require.Error(t, err)

		assert.True(t, domain.IsPlatformError(err))
		assert.Equal(t, "ord_1002", record.PlatformBuyID)
		assert.Empty(t, record.Packages[0].PlatformLineID)
	})
}

func TestUpdateMediaBuy(t *testing.T) {
	t.Run("Pausa, orçamento e meta de pacote aplicados na plataforma", func(t *testing.T) {
		integrator, client := newIntegrator(t, flightStart)
		record := guaranteedRecord()
		record.PlatformBuyID = "ord_1001"
		record.Packages[0].PlatformLineID = "li_2001"

		paused := false
		newBudget := 3000.0
		pkgBudget := 1500.0
		update := &domain.UpdateMediaBuyRequest{
			MediaBuyID:  record.ID,
			Active:      &paused,
			TotalBudget: &newBudget,
			Packages: []domain.PackageUpdate{
				{PackageID: "pkg_video1", Budget: &pkgBudget},
			},
		}

		client.EXPECT().
			PerformOrderAction("ord_1001", gamdomain.OrderActionPause).
			Return(&gamdomain.Order{ID: "ord_1001", Status: gamdomain.OrderStatusPaused}, nil)

		client.EXPECT().
			UpdateOrder(gomock.Any()).
			DoAndReturn(func(patch *gamdomain.Order) (*gamdomain.Order, error) {
				assert.Equal(t, "ord_1001", patch.ID)
				require.NotNil(t, patch.TotalBudget)
				assert.Equal(t, int64(3000000000), patch.TotalBudget.MicroAmount)
				assert.Empty(t, patch.EndTime)
				return patch, nil
			})

		client.EXPECT().
			UpdateLineItem(gomock.Any()).
			DoAndReturn(func(patch *gamdomain.LineItem) (*gamdomain.LineItem, error) {
				assert.Equal(t, "li_2001", patch.ID)
				require.NotNil(t, patch.Goal)
				// 1500.0 de orçamento a CPM 10.0 viram 150 milheiros
				assert.Equal(t, int64(150000), patch.Goal.Units)
				return patch, nil
			})

		results, err := integrator.UpdateMediaBuy(context.Background(), gamPrincipal(), record, update)
		require.NoError(t, err)

		require.Len(t, results, 1)
		assert.True(t, results[0].Applied)
		assert.Equal(t, domain.MediaBuyStatusPaused, record.Status)
		assert.Equal(t, 3000.0, record.TotalBudget)
		assert.Equal(t, 1500.0, record.Packages[0].Budget)
	})

	t.Run("Pacote desconhecido é itemizado sem chamada à plataforma", func(t *testing.T) {
		integrator, _ := newIntegrator(t, flightStart)
		record := guaranteedRecord()
		record.PlatformBuyID = "ord_1001"

		inactive := false
		update := &domain.UpdateMediaBuyRequest{
			MediaBuyID: record.ID,
			Packages: []domain.PackageUpdate{
				{PackageID: "pkg_fantasma", Active: &inactive},
			},
		}

		results, err := integrator.UpdateMediaBuy(context.Background(), gamPrincipal(), record, update)
		require.NoError(t, err)

		require.Len(t, results, 1)
		assert.False(t, results[0].Applied)
		assert.Equal(t, "package not found in this media buy", results[0].Detail)
	})

	t.Run("Compra nunca despachada não aceita alterações", func(t *testing.T) {
		integrator, _ := newIntegrator(t, flightStart)
		record := guaranteedRecord()

		_, err := integrator.UpdateMediaBuy(context.Background(), gamPrincipal(), record, &domain.UpdateMediaBuyRequest{MediaBuyID: record.ID})
		require.Error(t, err)
		assert.True(t, domain.IsPlatformError(err))
	})
}

func TestAddCreativeAssets(t *testing.T) {
	integrator, client := newIntegrator(t, flightStart)
	record := guaranteedRecord()
	record.PlatformBuyID = "ord_1001"
	record.Packages[0].PlatformLineID = "li_2001"

	assets := []domain.CreativeAsset{
		{ID: "cr_aprovado", Format: "video", MediaURL: "https://cdn.example.com/v1.mp4"},
		{ID: "cr_vetado", Format: "display", MediaURL: "https://cdn.example.com/b1.png"},
		{ID: "cr_sem_midia", Format: "display"},
		{ID: "cr_indisponivel", Format: "video", MediaURL: "https://cdn.example.com/v2.mp4"},
	}

	client.EXPECT().
		CreateCreative(gomock.Any()).
		DoAndReturn(func(creative *gamdomain.Creative) (*gamdomain.Creative, error) {
			assert.Equal(t, "adv_778", creative.AdvertiserID)
			assert.Equal(t, []string{"li_2001"}, creative.LineItemIDs)

			created := *creative
			created.ID = "crt_901"
			created.Status = gamdomain.CreativeStatusApproved
			return &created, nil
		})
	client.EXPECT().
		CreateCreative(gomock.Any()).
		Return(&gamdomain.Creative{
			ID:               "crt_902",
			Status:           gamdomain.CreativeStatusRejected,
			PolicyViolations: []string{"flashing imagery"},
		}, nil)
	client.EXPECT().
		CreateCreative(gomock.Any()).
		Return(nil, errors.New("storage backend offline"))

	results, err := integrator.AddCreativeAssets(context.Background(), gamPrincipal(), record, assets)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, domain.CreativeStatusApproved, results[0].Status)
	assert.Equal(t, domain.CreativeStatusApproved, assets[0].Status)

	assert.Equal(t, domain.CreativeStatusRejected, results[1].Status)
	assert.Equal(t, "flashing imagery", results[1].Detail)
	require.NotNil(t, assets[1].RejectionReason)
	assert.Equal(t, "flashing imagery", *assets[1].RejectionReason)

	assert.Equal(t, domain.CreativeStatusRejected, results[2].Status)
	assert.Equal(t, "media_url is required", results[2].Detail)

	assert.Equal(t, domain.CreativeStatusRejected, results[3].Status)
	assert.Contains(t, results[3].Detail, "upload failed:")
}

func TestCheckStatus(t *testing.T) {
	t.Run("Status nativo da ordem vira status canônico no registro", func(t *testing.T) {
		integrator, client := newIntegrator(t, flightStart)
		record := guaranteedRecord()
		record.PlatformBuyID = "ord_1001"

		client.EXPECT().
			GetOrder("ord_1001").
			Return(&gamdomain.Order{ID: "ord_1001", Status: gamdomain.OrderStatusDelivering}, nil)

		err := integrator.CheckStatus(context.Background(), gamPrincipal(), record)
		require.NoError(t, err)

		assert.Equal(t, gamdomain.OrderStatusDelivering, record.NativeStatus)
		assert.Equal(t, domain.MediaBuyStatusDelivering, record.Status)
	})

	t.Run("Falha de consulta vira erro de plataforma", func(t *testing.T) {
		integrator, client := newIntegrator(t, flightStart)
		record := guaranteedRecord()
		record.PlatformBuyID = "ord_perdida"

		client.EXPECT().
			GetOrder("ord_perdida").
			Return(nil, errors.New("order not found"))

		err := integrator.CheckStatus(context.Background(), gamPrincipal(), record)
		require.Error(t, err)
		assert.True(t, domain.IsPlatformError(err))
	})
}

func TestGetDelivery(t *testing.T) {
	integrator, client := newIntegrator(t, flightStart.Add(5*24*time.Hour))
	record := guaranteedRecord()
	record.PlatformBuyID = "ord_1001"
	record.Packages[0].PlatformLineID = "li_2001"
	record.Packages = append(record.Packages, domain.PackageRecord{
		ID:             "pkg_display1",
		BuyerRef:       "display-aberto",
		ProductID:      "prod_display",
		DeliveryType:   domain.DeliveryTypeNonGuaranteed,
		PlatformLineID: "li_2002",
		Pricing: domain.ResolvedPricing{
			Model:    domain.PricingModelCPM,
			Rate:     5.0,
			Currency: "BRL",
			IsFixed:  true,
		},
		Budget: 500.0,
		Active: true,
	})

	// período pedido maior que o voo: a consulta sai recortada
	client.EXPECT().
		GetDeliveryReport("ord_1001", flightStart, flightEnd).
		Return([]gamdomain.ReportRow{
			{Date: "2025-06-02", LineItemID: "li_2001", Impressions: 40000, RevenueMicros: 400000000},
			{Date: "2025-06-03", LineItemID: "li_2001", Impressions: 10000, RevenueMicros: 100000000},
			{Date: "2025-06-03", LineItemID: "li_2002", Impressions: 25000, RevenueMicros: 125000000},
			{Date: "2025-06-03", LineItemID: "li_9999", Impressions: 999999, RevenueMicros: 999000000},
		}, nil)

	report, err := integrator.GetDelivery(context.Background(), gamPrincipal(), record,
		flightStart.Add(-30*24*time.Hour), flightEnd.Add(30*24*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, int64(75000), report.Impressions)
	assert.Equal(t, 625.0, report.Spend)
	assert.Equal(t, 0.5, report.Pacing)
	assert.Equal(t, "BRL", report.Currency)

	require.Len(t, report.ByPackage, 2)
	assert.Equal(t, "pkg_video1", report.ByPackage[0].PackageID)
	assert.Equal(t, int64(50000), report.ByPackage[0].Impressions)
	assert.Equal(t, 500.0, report.ByPackage[0].Spend)
	assert.Equal(t, "pkg_display1", report.ByPackage[1].PackageID)
	assert.Equal(t, int64(25000), report.ByPackage[1].Impressions)
	assert.Equal(t, 125.0, report.ByPackage[1].Spend)
}

func TestUpdatePerformanceIndex(t *testing.T) {
	integrator, _ := newIntegrator(t, flightStart)
	record := guaranteedRecord()
	record.PlatformBuyID = "ord_1001"

	accepted, err := integrator.UpdatePerformanceIndex(context.Background(), gamPrincipal(), record,
		[]domain.PerformanceIndex{{ProductID: "prod_video", Index: 1.2}})
	require.NoError(t, err)
	assert.False(t, accepted)
}

func TestActivationAction(t *testing.T) {
	t.Run("Intenção canônica de ativação vira a ação nativa de ordem", func(t *testing.T) {
		assert.Equal(t, gamdomain.OrderActionResume, activationAction(true))
		assert.Equal(t, gamdomain.OrderActionPause, activationAction(false))
	})
}

func TestToCanonical(t *testing.T) {
	cases := map[string]domain.MediaBuyStatus{
		gamdomain.OrderStatusDraft:           domain.MediaBuyStatusPendingStart,
		gamdomain.OrderStatusPendingApproval: domain.MediaBuyStatusPendingStart,
		gamdomain.OrderStatusApproved:        domain.MediaBuyStatusScheduled,
		gamdomain.OrderStatusReady:           domain.MediaBuyStatusScheduled,
		gamdomain.OrderStatusDelivering:      domain.MediaBuyStatusDelivering,
		gamdomain.OrderStatusPaused:          domain.MediaBuyStatusPaused,
		gamdomain.OrderStatusCanceled:        domain.MediaBuyStatusCanceled,
		gamdomain.OrderStatusCompleted:       domain.MediaBuyStatusCompleted,
		"ALGUM_STATUS_NOVO":                  domain.MediaBuyStatusPendingStart,
	}

	for native, expected := range cases {
		assert.Equal(t, expected, ToCanonical(native), "status nativo %s", native)
	}
}
