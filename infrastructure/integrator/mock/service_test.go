package mock

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/database/memstore"
	"github.com/vfg2006/adcp-dispatch-api/internal/config"
	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
)

var (
	flightStart = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	flightEnd   = time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
)

func newIntegrator(autoApprove bool, now time.Time) (*MockIntegrator, *memstore.Arena) {
	arena := memstore.NewArena()
	integrator := New(config.Mock{CreativeAutoApprove: autoApprove}, arena)
	integrator.now = func() time.Time { return now }
	return integrator, arena
}

func testRecord() *domain.MediaBuyRecord {
	impressions := int64(100000)
	return &domain.MediaBuyRecord{
		ID:          "mb_teste1",
		TenantID:    "tenant_demo",
		PrincipalID: "principal_demo",
		BuyerRef:    "campanha-junho",
		Currency:    "USD",
		TotalBudget: 500.0,
		StartTime:   flightStart,
		EndTime:     flightEnd,
		Packages: []domain.PackageRecord{
			{
				ID:        "pkg_abc123",
				BuyerRef:  "pacote-video",
				ProductID: "prod_video",
				Pricing: domain.ResolvedPricing{
					PricingOptionID: "po_cpm_fixo",
					Model:           domain.PricingModelCPM,
					Rate:            5.0,
					Currency:        "USD",
					IsFixed:         true,
					TotalSpend:      500.0,
				},
				Impressions: &impressions,
				Budget:      500.0,
				Active:      true,
			},
		},
	}
}

func testPrincipal() *domain.Principal {
	return &domain.Principal{
		TenantID:    "tenant_demo",
		PrincipalID: "principal_demo",
		AdapterType: domain.AdapterTypeMock,
	}
}

func TestCreateMediaBuy(t *testing.T) {
	t.Run("Voo futuro nasce agendado com ids de plataforma preenchidos", func(t *testing.T) {
		integrator, arena := newIntegrator(true, flightStart.Add(-24*time.Hour))
		record := testRecord()

		err := integrator.CreateMediaBuy(context.Background(), testPrincipal(), record, &domain.MediaBuyRequest{})

		require.NoError(t, err)
		assert.NotEmpty(t, record.PlatformBuyID)
		assert.Equal(t, nativeScheduled, record.NativeStatus)
		assert.Equal(t, domain.MediaBuyStatusScheduled, record.Status)
		assert.NotEmpty(t, record.Packages[0].PlatformLineID)
		assert.Equal(t, 1, arena.Len())
	})

	t.Run("Voo já iniciado nasce entregando", func(t *testing.T) {
		integrator, _ := newIntegrator(true, flightStart.Add(24*time.Hour))
		record := testRecord()

		err := integrator.CreateMediaBuy(context.Background(), testPrincipal(), record, &domain.MediaBuyRequest{})

		require.NoError(t, err)
		assert.Equal(t, nativeLive, record.NativeStatus)
		assert.Equal(t, domain.MediaBuyStatusDelivering, record.Status)
	})
}

func TestCheckStatus(t *testing.T) {
	t.Run("Status avança com o relógio da janela de veiculação", func(t *testing.T) {
		integrator, _ := newIntegrator(true, flightStart.Add(-24*time.Hour))
		record := testRecord()
		require.NoError(t, integrator.CreateMediaBuy(context.Background(), testPrincipal(), record, &domain.MediaBuyRequest{}))
		assert.Equal(t, domain.MediaBuyStatusScheduled, record.Status)

		integrator.now = func() time.Time { return flightStart.Add(48 * time.Hour) }
		require.NoError(t, integrator.CheckStatus(context.Background(), testPrincipal(), record))
		assert.Equal(t, domain.MediaBuyStatusDelivering, record.Status)

		integrator.now = func() time.Time { return flightEnd.Add(time.Hour) }
		require.NoError(t, integrator.CheckStatus(context.Background(), testPrincipal(), record))
		assert.Equal(t, nativeFinished, record.NativeStatus)
		assert.Equal(t, domain.MediaBuyStatusCompleted, record.Status)
	})

	t.Run("Compra pausada não volta a entregar pelo relógio", func(t *testing.T) {
		integrator, _ := newIntegrator(true, flightStart.Add(24*time.Hour))
		record := testRecord()
		require.NoError(t, integrator.CreateMediaBuy(context.Background(), testPrincipal(), record, &domain.MediaBuyRequest{}))

		paused := false
		_, err := integrator.UpdateMediaBuy(context.Background(), testPrincipal(), record, &domain.UpdateMediaBuyRequest{Active: &paused})
		require.NoError(t, err)
		assert.Equal(t, domain.MediaBuyStatusPaused, record.Status)

		require.NoError(t, integrator.CheckStatus(context.Background(), testPrincipal(), record))
		assert.Equal(t, domain.MediaBuyStatusPaused, record.Status)
	})

	t.Run("Ordem ausente na plataforma é erro de plataforma", func(t *testing.T) {
		integrator, _ := newIntegrator(true, flightStart)
		record := testRecord()
		record.PlatformBuyID = "mkbuy_sumiu"

		err := integrator.CheckStatus(context.Background(), testPrincipal(), record)

		require.Error(t, err)
		assert.True(t, domain.IsPlatformError(err))
		assert.False(t, domain.IsValidationError(err))
	})
}

func TestGetDelivery(t *testing.T) {
	t.Run("Entrega simulada segue a fração decorrida do voo", func(t *testing.T) {
		integrator, _ := newIntegrator(true, flightStart)
		record := testRecord()
		require.NoError(t, integrator.CreateMediaBuy(context.Background(), testPrincipal(), record, &domain.MediaBuyRequest{}))

		// metade do voo de 10 dias
		integrator.now = func() time.Time { return flightStart.Add(5 * 24 * time.Hour) }

		report, err := integrator.GetDelivery(context.Background(), testPrincipal(), record, flightStart, flightEnd)

		require.NoError(t, err)
		assert.Equal(t, int64(50000), report.Impressions)
		assert.InDelta(t, 250.0, report.Spend, 0.01)
		assert.InDelta(t, 0.5, report.Pacing, 0.01)
		require.Len(t, report.ByPackage, 1)
		assert.Equal(t, "pkg_abc123", report.ByPackage[0].PackageID)
	})

	t.Run("Pacotes pausados ficam fora do relatório", func(t *testing.T) {
		integrator, _ := newIntegrator(true, flightStart)
		record := testRecord()
		require.NoError(t, integrator.CreateMediaBuy(context.Background(), testPrincipal(), record, &domain.MediaBuyRequest{}))

		inactive := false
		results, err := integrator.UpdateMediaBuy(context.Background(), testPrincipal(), record, &domain.UpdateMediaBuyRequest{
			Packages: []domain.PackageUpdate{{PackageID: "pkg_abc123", Active: &inactive}},
		})
		require.NoError(t, err)
		require.True(t, results[0].Applied)

		integrator.now = func() time.Time { return flightStart.Add(5 * 24 * time.Hour) }
		report, err := integrator.GetDelivery(context.Background(), testPrincipal(), record, flightStart, flightEnd)

		require.NoError(t, err)
		assert.Zero(t, report.Impressions)
		assert.Empty(t, report.ByPackage)
	})
}

func TestUpdateMediaBuy(t *testing.T) {
	t.Run("Alterações por pacote aplicam uma a uma com falhas itemizadas", func(t *testing.T) {
		integrator, _ := newIntegrator(true, flightStart)
		record := testRecord()
		require.NoError(t, integrator.CreateMediaBuy(context.Background(), testPrincipal(), record, &domain.MediaBuyRequest{}))

		newBudget := 800.0
		results, err := integrator.UpdateMediaBuy(context.Background(), testPrincipal(), record, &domain.UpdateMediaBuyRequest{
			Packages: []domain.PackageUpdate{
				{PackageID: "pkg_abc123", Budget: &newBudget},
				{PackageID: "pkg_fantasma", Budget: &newBudget},
			},
		})

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.True(t, results[0].Applied)
		assert.False(t, results[1].Applied)
		assert.Contains(t, results[1].Detail, "not found")
		assert.Equal(t, 800.0, record.Packages[0].Budget)
	})
}

func TestAddCreativeAssets(t *testing.T) {
	tests := []struct {
		name        string
		autoApprove bool
		asset       domain.CreativeAsset
		validate    func(t *testing.T, result domain.CreativeResult)
	}{
		{
			name:        "Aprovação automática ligada aprova na hora",
			autoApprove: true,
			asset:       domain.CreativeAsset{Format: "video", MediaURL: "https://cdn.example.com/spot.mp4"},
			validate: func(t *testing.T, result domain.CreativeResult) {
				assert.Equal(t, domain.CreativeStatusApproved, result.Status)
				assert.NotEmpty(t, result.CreativeID)
			},
		},
		{
			name:        "Aprovação automática desligada deixa em revisão",
			autoApprove: false,
			asset:       domain.CreativeAsset{Format: "video", MediaURL: "https://cdn.example.com/spot.mp4"},
			validate: func(t *testing.T, result domain.CreativeResult) {
				assert.Equal(t, domain.CreativeStatusPendingReview, result.Status)
			},
		},
		{
			name:        "Criativo sem mídia é rejeitado sem derrubar o lote",
			autoApprove: true,
			asset:       domain.CreativeAsset{Format: "video"},
			validate: func(t *testing.T, result domain.CreativeResult) {
				assert.Equal(t, domain.CreativeStatusRejected, result.Status)
				assert.Contains(t, result.Detail, "media_url")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integrator, _ := newIntegrator(tt.autoApprove, flightStart)
			record := testRecord()
			require.NoError(t, integrator.CreateMediaBuy(context.Background(), testPrincipal(), record, &domain.MediaBuyRequest{}))

			results, err := integrator.AddCreativeAssets(context.Background(), testPrincipal(), record, []domain.CreativeAsset{tt.asset})

			require.NoError(t, err)
			require.Len(t, results, 1)
			tt.validate(t, results[0])
			assert.Len(t, record.Creatives, 1)
		})
	}
}

func TestUpdatePerformanceIndex(t *testing.T) {
	t.Run("Índices são aceitos e guardados na ordem nativa", func(t *testing.T) {
		integrator, arena := newIntegrator(true, flightStart)
		record := testRecord()
		require.NoError(t, integrator.CreateMediaBuy(context.Background(), testPrincipal(), record, &domain.MediaBuyRequest{}))

		accepted, err := integrator.UpdatePerformanceIndex(context.Background(), testPrincipal(), record, []domain.PerformanceIndex{
			{ProductID: "prod_video", Index: 1.15},
		})

		require.NoError(t, err)
		assert.True(t, accepted)

		value, ok := arena.Get(record.PlatformBuyID)
		require.True(t, ok)
		order := value.(*platformOrder)
		assert.Equal(t, 1.15, order.Indexes["prod_video"])
	})
}

// Operações concorrentes sobre a mesma compra não se corrompem: cada
// mutação clona a ordem sob o lock da chave e publica a cópia, leitores
// enxergam sempre uma versão íntegra.
func TestOperacoesConcorrentesNaMesmaCompra(t *testing.T) {
	integrator, _ := newIntegrator(true, flightStart.Add(48*time.Hour))
	record := testRecord()
	require.NoError(t, integrator.CreateMediaBuy(context.Background(), testPrincipal(), record, &domain.MediaBuyRequest{}))

	const rounds = 20

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			snapshot := *record
			_ = integrator.CheckStatus(context.Background(), testPrincipal(), &snapshot)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			local := *record
			_, err := integrator.AddCreativeAssets(context.Background(), testPrincipal(), &local, []domain.CreativeAsset{
				{ID: fmt.Sprintf("cr_%03d", i), Format: "video", MediaURL: "https://cdn.example.com/v.mp4"},
			})
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			snapshot := *record
			_, err := integrator.GetDelivery(context.Background(), testPrincipal(), &snapshot, flightStart, flightEnd)
			assert.NoError(t, err)
		}
	}()
	wg.Wait()

	order, err := integrator.loadOrder(record.PlatformBuyID, "check")
	require.NoError(t, err)
	assert.Len(t, order.Creatives, rounds)
	assert.Equal(t, nativeLive, order.NativeStatus)
}

func TestFromCanonical(t *testing.T) {
	t.Run("Inverso de ToCanonical para todo status nativo conhecido", func(t *testing.T) {
		for native := range statusMap {
			assert.Equal(t, native, FromCanonical(ToCanonical(native)))
		}
	})

	t.Run("Status canônico fora da tabela cai em created", func(t *testing.T) {
		assert.Equal(t, nativeCreated, FromCanonical(domain.MediaBuyStatus("archived")))
	})
}

func TestToCanonical(t *testing.T) {
	t.Run("Todos os status nativos têm tradução canônica", func(t *testing.T) {
		assert.Equal(t, domain.MediaBuyStatusPendingStart, ToCanonical(nativeCreated))
		assert.Equal(t, domain.MediaBuyStatusScheduled, ToCanonical(nativeScheduled))
		assert.Equal(t, domain.MediaBuyStatusDelivering, ToCanonical(nativeLive))
		assert.Equal(t, domain.MediaBuyStatusPaused, ToCanonical(nativePaused))
		assert.Equal(t, domain.MediaBuyStatusCompleted, ToCanonical(nativeFinished))
		assert.Equal(t, domain.MediaBuyStatusCanceled, ToCanonical(nativeCancelled))
	})

	t.Run("Código desconhecido cai em pending_start sem erro", func(t *testing.T) {
		assert.Equal(t, domain.MediaBuyStatusPendingStart, ToCanonical("algum_status_novo"))
	})
}
