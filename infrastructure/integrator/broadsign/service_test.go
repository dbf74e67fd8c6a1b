package broadsign

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/broadsign/broadsignclient"
	broadsigndomain "github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/broadsign/domain"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/broadsign/mocks"
	"github.com/vfg2006/adcp-dispatch-api/internal/config"
	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
	"go.uber.org/mock/gomock"
)

var (
	flightStart = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	flightEnd   = time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
)

func newIntegrator(t *testing.T, now time.Time) (*BroadsignIntegrator, *mocks.MockClient) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	integrator := New(config.Broadsign{
		BaseURL:  "https://dooh.example.com/api/v1",
		DomainID: "dm_default",
	}, client)
	integrator.now = func() time.Time { return now }

	return integrator, client
}

func doohPrincipal() *domain.Principal {
	return &domain.Principal{
		TenantID:    "tenant_dooh",
		PrincipalID: "principal_dooh",
		AdapterType: domain.AdapterTypeBroadsign,
		PlatformConfig: map[string]string{
			"broadsign_domain_id": "dm_450",
		},
		Active: true,
	}
}

func doohRecord() *domain.MediaBuyRecord {
	impressions := int64(60000)
	return &domain.MediaBuyRecord{
		ID:          "mb_bs1",
		TenantID:    "tenant_dooh",
		PrincipalID: "principal_dooh",
		BuyerRef:    "inverno-dooh",
		PONumber:    "PO-881",
		Status:      domain.MediaBuyStatusPendingStart,
		Currency:    "BRL",
		TotalBudget: 1500.0,
		StartTime:   flightStart,
		EndTime:     flightEnd,
		Packages: []domain.PackageRecord{
			{
				ID:           "pkg_tela1",
				BuyerRef:     "telas-centro",
				ProductID:    "prod_dooh",
				DeliveryType: domain.DeliveryTypeNonGuaranteed,
				Pricing: domain.ResolvedPricing{
					PricingOptionID: "po_cpm_dooh",
					Model:           domain.PricingModelCPM,
					Rate:            20.0,
					Currency:        "BRL",
					IsFixed:         true,
					TotalSpend:      1200.0,
				},
				Impressions: &impressions,
				Budget:      1200.0,
				Active:      true,
			},
		},
	}
}

func doohRequest(record *domain.MediaBuyRecord) *domain.MediaBuyRequest {
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
		Targeting: &domain.TargetingOverlay{
			GeoCountryAnyOf: []string{"BR"},
			DeviceTypeAnyOf: []string{"billboard"},
		},
	}
}

func TestCreateMediaBuy(t *testing.T) {
	t.Run("Campanha criada com reserva de telas por pacote", func(t *testing.T) {
		integrator, client := newIntegrator(t, flightStart)
		record := doohRecord()
		request := doohRequest(record)

		client.EXPECT().
			SearchScreens(gomock.Any()).
			DoAndReturn(func(params broadsignclient.ScreenSearchParams) ([]broadsigndomain.Screen, error) {
				assert.Equal(t, []string{"billboard"}, params.VenueTypes)
				assert.Equal(t, []string{"BR"}, params.Countries)
				return []broadsigndomain.Screen{
					{ID: 301, VenueType: "billboard", Country: "BR", ImpressionsPerPlay: 2.5},
					{ID: 302, VenueType: "billboard", Country: "BR", ImpressionsPerPlay: 3.0},
				}, nil
			})

		client.EXPECT().
			CreateCampaign(gomock.Any()).
			DoAndReturn(func(campaign *broadsigndomain.Campaign) (*broadsigndomain.Campaign, error) {
				assert.Equal(t, "dm_450", campaign.DomainID)
				assert.Equal(t, "inverno-dooh (PO-881)", campaign.Name)
				assert.Equal(t, "2025-06-01", campaign.StartDate)
				assert.Equal(t, "2025-06-11", campaign.EndDate)
				assert.Equal(t, 1500.0, campaign.TotalBudget)
				assert.Equal(t, "mb_bs1", campaign.ExternalRef)

				pending := broadsigndomain.CampaignStatusPending
				created := *campaign
				created.ID = 7001
				created.Status = &pending
				return &created, nil
			})

		client.EXPECT().
			CreateBooking(gomock.Any()).
			DoAndReturn(func(booking *broadsigndomain.Booking) (*broadsigndomain.Booking, error) {
				assert.Equal(t, int64(7001), booking.CampaignID)
				assert.Equal(t, "pkg_tela1", booking.ExternalRef)
				assert.Equal(t, []int64{301, 302}, booking.ScreenIDs)
				assert.Equal(t, int64(60000), booking.ImpressionsGoal)

				created := *booking
				created.ID = 8001
				return &created, nil
			})

		err := integrator.CreateMediaBuy(context.Background(), doohPrincipal(), record, request)
		require.NoError(t, err)

		assert.Equal(t, "7001", record.PlatformBuyID)
		assert.Equal(t, "pending", record.NativeStatus)
		assert.Equal(t, domain.MediaBuyStatusPendingStart, record.Status)
		assert.Equal(t, "8001", record.Packages[0].PlatformLineID)
	})

	t.Run("Compra sem segmentação busca todas as telas do domínio", func(t *testing.T) {
		integrator, client := newIntegrator(t, flightStart)
		record := doohRecord()
		request := doohRequest(record)
		request.Targeting = nil
		for i := range request.Packages {
			request.Packages[i].Targeting = nil
		}

		client.EXPECT().
			SearchScreens(gomock.Any()).
			DoAndReturn(func(params broadsignclient.ScreenSearchParams) ([]broadsigndomain.Screen, error) {
				assert.Empty(t, params.VenueTypes)
				assert.Empty(t, params.Countries)
				assert.Empty(t, params.Regions)
				return []broadsigndomain.Screen{{ID: 301, ImpressionsPerPlay: 2.5}}, nil
			})
		client.EXPECT().
			CreateCampaign(gomock.Any()).
			Return(&broadsigndomain.Campaign{ID: 7005}, nil)
		client.EXPECT().
			CreateBooking(gomock.Any()).
			Return(&broadsigndomain.Booking{ID: 8005}, nil)

		err := integrator.CreateMediaBuy(context.Background(), doohPrincipal(), record, request)
		require.NoError(t, err)
		assert.Equal(t, "7005", record.PlatformBuyID)
	})

	t.Run("Segmentação sem telas recusa antes de criar a campanha", func(t *testing.T) {
		integrator, client := newIntegrator(t, flightStart)
		record := doohRecord()

		client.EXPECT().
			SearchScreens(gomock.Any()).
			Return([]broadsigndomain.Screen{}, nil)

		err := integrator.CreateMediaBuy(context.Background(), doohPrincipal(), record, doohRequest(record))
		require.Error(t, err)

		assert.True(t, domain.IsInventoryUnavailable(err))
		assert.ErrorContains(t, err, "no screens match")
		assert.Empty(t, record.PlatformBuyID)
	})

	t.Run("Principal sem domínio próprio usa o domínio da configuração", func(t *testing.T) {
		integrator, client := newIntegrator(t, flightStart)
		record := doohRecord()
		principal := doohPrincipal()
		principal.PlatformConfig = nil

		client.EXPECT().
			SearchScreens(gomock.Any()).
			Return([]broadsigndomain.Screen{{ID: 301, ImpressionsPerPlay: 2.5}}, nil)
		client.EXPECT().
			CreateCampaign(gomock.Any()).
			DoAndReturn(func(campaign *broadsigndomain.Campaign) (*broadsigndomain.Campaign, error) {
				assert.Equal(t, "dm_default", campaign.DomainID)
				created := *campaign
				created.ID = 7002
				return &created, nil
			})
		client.EXPECT().
			CreateBooking(gomock.Any()).
			Return(&broadsigndomain.Booking{ID: 8002}, nil)

		err := integrator.CreateMediaBuy(context.Background(), principal, record, doohRequest(record))
		require.NoError(t, err)

		// campanha sem status na resposta entra como rascunho
		assert.Equal(t, "draft", record.NativeStatus)
		assert.Equal(t, domain.MediaBuyStatusPendingStart, record.Status)
	})

	t.Run("Falha na reserva mantém a campanha órfã rastreável", func(t *testing.T) {
		integrator, client := newIntegrator(t, flightStart)
		record := doohRecord()

		client.EXPECT().
			SearchScreens(gomock.Any()).
			Return([]broadsigndomain.Screen{{ID: 301, ImpressionsPerPlay: 2.5}}, nil)
		client.EXPECT().
			CreateCampaign(gomock.Any()).
			Return(&broadsigndomain.Campaign{ID: 7003}, nil)
		client.EXPECT().
			CreateBooking(gomock.Any()).
			Return(nil, errors.New("slot inventory conflict"))

		err := integrator.CreateMediaBuy(context.Background(), doohPrincipal(), record, doohRequest(record))
		require.Error(t, err)

		assert.True(t, domain.IsPlatformError(err))
		assert.Equal(t, "7003", record.PlatformBuyID)
		assert.Empty(t, record.Packages[0].PlatformLineID)
	})
}

func TestUpdateMediaBuy(t *testing.T) {
	t.Run("Pausa, orçamento e meta de pacote aplicados na plataforma", func(t *testing.T) {
		integrator, client := newIntegrator(t, flightStart)
		record := doohRecord()
		record.PlatformBuyID = "7001"
		record.Packages[0].PlatformLineID = "8001"

		paused := false
		newBudget := 2000.0
		pkgBudget := 800.0
		update := &domain.UpdateMediaBuyRequest{
			MediaBuyID:  record.ID,
			Active:      &paused,
			TotalBudget: &newBudget,
			Packages: []domain.PackageUpdate{
				{PackageID: "pkg_tela1", Budget: &pkgBudget},
			},
		}

		client.EXPECT().
			UpdateCampaign(gomock.Any()).
			DoAndReturn(func(patch *broadsigndomain.Campaign) (*broadsigndomain.Campaign, error) {
				assert.Equal(t, int64(7001), patch.ID)
				require.NotNil(t, patch.Status)
				assert.Equal(t, broadsigndomain.CampaignStatusPaused, *patch.Status)
				return patch, nil
			})

		client.EXPECT().
			UpdateCampaign(gomock.Any()).
			DoAndReturn(func(patch *broadsigndomain.Campaign) (*broadsigndomain.Campaign, error) {
				assert.Equal(t, int64(7001), patch.ID)
				assert.Nil(t, patch.Status)
				assert.Equal(t, 2000.0, patch.TotalBudget)
				assert.Empty(t, patch.EndDate)
				return patch, nil
			})

		client.EXPECT().
			UpdateBooking(gomock.Any()).
			DoAndReturn(func(patch *broadsigndomain.Booking) (*broadsigndomain.Booking, error) {
				assert.Equal(t, int64(8001), patch.ID)
				// 800.0 de orçamento a CPM 20.0 viram 40 milheiros
				assert.Equal(t, int64(40000), patch.ImpressionsGoal)
				return patch, nil
			})

		results, err := integrator.UpdateMediaBuy(context.Background(), doohPrincipal(), record, update)
		require.NoError(t, err)

		require.Len(t, results, 1)
		assert.True(t, results[0].Applied)
		assert.Equal(t, domain.MediaBuyStatusPaused, record.Status)
		assert.Equal(t, "paused", record.NativeStatus)
		assert.Equal(t, 2000.0, record.TotalBudget)
		assert.Equal(t, 800.0, record.Packages[0].Budget)
	})

	t.Run("Pacote desconhecido é itemizado sem desfazer o restante", func(t *testing.T) {
		integrator, client := newIntegrator(t, flightStart)
		record := doohRecord()
		record.PlatformBuyID = "7001"
		record.Packages[0].PlatformLineID = "8001"

		newGoal := int64(70000)
		update := &domain.UpdateMediaBuyRequest{
			MediaBuyID: record.ID,
			Packages: []domain.PackageUpdate{
				{PackageID: "pkg_fantasma", Impressions: &newGoal},
				{PackageID: "pkg_tela1", Impressions: &newGoal},
			},
		}

		client.EXPECT().
			UpdateBooking(gomock.Any()).
			DoAndReturn(func(patch *broadsigndomain.Booking) (*broadsigndomain.Booking, error) {
				assert.Equal(t, int64(8001), patch.ID)
				assert.Equal(t, int64(70000), patch.ImpressionsGoal)
				return patch, nil
			})

		results, err := integrator.UpdateMediaBuy(context.Background(), doohPrincipal(), record, update)
		require.NoError(t, err)

		require.Len(t, results, 2)
		assert.False(t, results[0].Applied)
		assert.Equal(t, "package not found in this media buy", results[0].Detail)
		assert.True(t, results[1].Applied)
		assert.Equal(t, int64(70000), *record.Packages[0].Impressions)
	})

	t.Run("Compra nunca despachada não aceita alterações", func(t *testing.T) {
		integrator, _ := newIntegrator(t, flightStart)
		record := doohRecord()

		_, err := integrator.UpdateMediaBuy(context.Background(), doohPrincipal(), record, &domain.UpdateMediaBuyRequest{MediaBuyID: record.ID})
		require.Error(t, err)
		assert.True(t, domain.IsPlatformError(err))
		assert.ErrorContains(t, err, "never dispatched")
	})
}

func TestAddCreativeAssets(t *testing.T) {
	t.Run("Moderação de conteúdo itemizada por criativo", func(t *testing.T) {
		integrator, client := newIntegrator(t, flightStart)
		record := doohRecord()
		record.PlatformBuyID = "7001"

		duration := 15000
		assets := []domain.CreativeAsset{
			{ID: "cr_aprovado", Name: "spot-15s", Format: "video", MediaURL: "https://cdn.example.com/spot.mp4", DurationMs: &duration},
			{ID: "cr_vetado", Format: "display", MediaURL: "https://cdn.example.com/banner.png"},
			{ID: "cr_sem_midia", Format: "display"},
			{ID: "cr_indisponivel", Format: "video", MediaURL: "https://cdn.example.com/v2.mp4"},
		}

		client.EXPECT().
			UploadCreative(gomock.Any()).
			DoAndReturn(func(upload *broadsigndomain.CreativeUpload) (*broadsigndomain.CreativeUpload, error) {
				assert.Equal(t, int64(7001), upload.CampaignID)
				assert.Equal(t, "spot-15s", upload.Name)
				assert.Equal(t, 15000, upload.DurationMs)

				created := *upload
				created.ID = 901
				created.ModerationStatus = broadsigndomain.ModerationApproved
				return &created, nil
			})
		client.EXPECT().
			UploadCreative(gomock.Any()).
			Return(&broadsigndomain.CreativeUpload{
				ID:               902,
				ModerationStatus: broadsigndomain.ModerationRejected,
				ModerationNotes:  "content not suitable for public screens",
			}, nil)
		client.EXPECT().
			UploadCreative(gomock.Any()).
			Return(nil, errors.New("media service offline"))

		results, err := integrator.AddCreativeAssets(context.Background(), doohPrincipal(), record, assets)
		require.NoError(t, err)
		require.Len(t, results, 4)

		assert.Equal(t, domain.CreativeStatusApproved, results[0].Status)
		assert.Equal(t, domain.CreativeStatusApproved, assets[0].Status)

		assert.Equal(t, domain.CreativeStatusRejected, results[1].Status)
		assert.Equal(t, "content not suitable for public screens", results[1].Detail)
		require.NotNil(t, assets[1].RejectionReason)
		assert.Equal(t, "content not suitable for public screens", *assets[1].RejectionReason)

		assert.Equal(t, domain.CreativeStatusRejected, results[2].Status)
		assert.Equal(t, "media_url is required", results[2].Detail)

		assert.Equal(t, domain.CreativeStatusRejected, results[3].Status)
		assert.Contains(t, results[3].Detail, "upload failed:")
	})

	t.Run("Criativo sem nome usa o próprio id na moderação", func(t *testing.T) {
		integrator, client := newIntegrator(t, flightStart)
		record := doohRecord()
		record.PlatformBuyID = "7001"

		client.EXPECT().
			UploadCreative(gomock.Any()).
			DoAndReturn(func(upload *broadsigndomain.CreativeUpload) (*broadsigndomain.CreativeUpload, error) {
				assert.Equal(t, "cr_anonimo", upload.Name)
				assert.Equal(t, "display", upload.Format)
				assert.Equal(t, "https://cdn.example.com/b.png", upload.MediaURL)
				assert.Zero(t, upload.DurationMs)

				created := *upload
				created.ID = 903
				created.ModerationStatus = broadsigndomain.ModerationApproved
				return &created, nil
			})

		results, err := integrator.AddCreativeAssets(context.Background(), doohPrincipal(), record,
			[]domain.CreativeAsset{{ID: "cr_anonimo", Format: "display", MediaURL: "https://cdn.example.com/b.png"}})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, domain.CreativeStatusApproved, results[0].Status)
	})

	t.Run("Compra nunca despachada recusa o lote inteiro", func(t *testing.T) {
		integrator, _ := newIntegrator(t, flightStart)
		record := doohRecord()

		_, err := integrator.AddCreativeAssets(context.Background(), doohPrincipal(), record,
			[]domain.CreativeAsset{{ID: "cr_orfao", MediaURL: "https://cdn.example.com/v3.mp4"}})
		require.Error(t, err)
		assert.True(t, domain.IsPlatformError(err))
	})
}

func TestCheckStatus(t *testing.T) {
	t.Run("Status numérico da campanha vira status canônico no registro", func(t *testing.T) {
		integrator, client := newIntegrator(t, flightStart)
		record := doohRecord()
		record.PlatformBuyID = "7001"

		live := broadsigndomain.CampaignStatusLive
		client.EXPECT().
			GetCampaign(int64(7001)).
			Return(&broadsigndomain.Campaign{ID: 7001, Status: &live}, nil)

		err := integrator.CheckStatus(context.Background(), doohPrincipal(), record)
		require.NoError(t, err)

		assert.Equal(t, "live", record.NativeStatus)
		assert.Equal(t, domain.MediaBuyStatusDelivering, record.Status)
	})

	t.Run("Falha de consulta vira erro de plataforma", func(t *testing.T) {
		integrator, client := newIntegrator(t, flightStart)
		record := doohRecord()
		record.PlatformBuyID = "7009"

		client.EXPECT().
			GetCampaign(int64(7009)).
			Return(nil, errors.New("campaign not found"))

		err := integrator.CheckStatus(context.Background(), doohPrincipal(), record)
		require.Error(t, err)
		assert.True(t, domain.IsPlatformError(err))
	})
}

func TestGetDelivery(t *testing.T) {
	integrator, client := newIntegrator(t, flightStart.Add(5*24*time.Hour))
	record := doohRecord()
	record.PlatformBuyID = "7001"
	record.Packages[0].PlatformLineID = "8001"
	record.Packages = append(record.Packages, domain.PackageRecord{
		ID:             "pkg_tela2",
		BuyerRef:       "telas-aeroporto",
		ProductID:      "prod_dooh_cpcv",
		DeliveryType:   domain.DeliveryTypeNonGuaranteed,
		PlatformLineID: "8002",
		Pricing: domain.ResolvedPricing{
			Model:    domain.PricingModelCPCV,
			Rate:     0.10,
			Currency: "BRL",
			IsFixed:  true,
		},
		Budget: 400.0,
		Active: true,
	})

	// período pedido maior que o voo: a consulta sai recortada
	client.EXPECT().
		GetProofOfPlay(int64(7001), flightStart, flightEnd).
		Return([]broadsigndomain.ProofOfPlayRow{
			{Date: "2025-06-01", BookingID: 8001, ScreenID: 301, Plays: 1000, ImpressionsPerPlay: 2.5},
			{Date: "2025-06-02", BookingID: 8001, ScreenID: 302, Plays: 500, ImpressionsPerPlay: 3.0},
			{Date: "2025-06-02", BookingID: 8002, ScreenID: 305, Plays: 3000, ImpressionsPerPlay: 1.2},
			{Date: "2025-06-03", BookingID: 9999, ScreenID: 310, Plays: 800, ImpressionsPerPlay: 2.0},
		}, nil)

	report, err := integrator.GetDelivery(context.Background(), doohPrincipal(), record,
		flightStart.Add(-30*24*time.Hour), flightEnd.Add(30*24*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, int64(7600), report.Impressions)
	assert.Equal(t, 380.0, report.Spend)
	assert.Equal(t, 0.5, report.Pacing)
	assert.Equal(t, "BRL", report.Currency)

	require.Len(t, report.ByPackage, 2)
	assert.Equal(t, "pkg_tela1", report.ByPackage[0].PackageID)
	assert.Equal(t, int64(4000), report.ByPackage[0].Impressions)
	assert.Equal(t, 80.0, report.ByPackage[0].Spend)
	assert.Equal(t, "pkg_tela2", report.ByPackage[1].PackageID)
	// 3000 exibições viram 3600 impressões, gasto pelo preço da exibição
	assert.Equal(t, int64(3600), report.ByPackage[1].Impressions)
	assert.Equal(t, 300.0, report.ByPackage[1].Spend)
}

func TestUpdatePerformanceIndex(t *testing.T) {
	integrator, _ := newIntegrator(t, flightStart)
	record := doohRecord()
	record.PlatformBuyID = "7001"

	accepted, err := integrator.UpdatePerformanceIndex(context.Background(), doohPrincipal(), record,
		[]domain.PerformanceIndex{{ProductID: "prod_dooh", Index: 0.8}})
	require.NoError(t, err)
	assert.False(t, accepted)
}

func TestToCanonical(t *testing.T) {
	cases := map[int]domain.MediaBuyStatus{
		broadsigndomain.CampaignStatusDraft:    domain.MediaBuyStatusPendingStart,
		broadsigndomain.CampaignStatusPending:  domain.MediaBuyStatusPendingStart,
		broadsigndomain.CampaignStatusLive:     domain.MediaBuyStatusDelivering,
		broadsigndomain.CampaignStatusPaused:   domain.MediaBuyStatusPaused,
		broadsigndomain.CampaignStatusDone:     domain.MediaBuyStatusCompleted,
		broadsigndomain.CampaignStatusCanceled: domain.MediaBuyStatusCanceled,
		broadsigndomain.CampaignStatusRejected: domain.MediaBuyStatusFailed,
		99:                                     domain.MediaBuyStatusPendingStart,
	}

	for native, expected := range cases {
		assert.Equal(t, expected, ToCanonical(native), "status nativo %d", native)
	}

	assert.Equal(t, "live", NativeName(broadsigndomain.CampaignStatusLive))
	assert.Equal(t, "status_99", NativeName(99))
}
