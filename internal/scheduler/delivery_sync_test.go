package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/repository/mocks"
	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
	"go.uber.org/mock/gomock"
)

// syncAdapter simula uma plataforma durante a sincronização: atualiza o
// status do registro e devolve um relatório de entrega fixo.
type syncAdapter struct {
	mu          sync.Mutex
	statusCalls int
	statusErr   error
	statusAfter domain.MediaBuyStatus
	report      *domain.DeliveryReport
	reportErr   error
}

func (a *syncAdapter) Platform() string { return "mock" }

func (a *syncAdapter) Capabilities() domain.TargetingCapabilities {
	return domain.TargetingCapabilities{}
}

func (a *syncAdapter) CreateMediaBuy(_ context.Context, _ *domain.Principal, _ *domain.MediaBuyRecord, _ *domain.MediaBuyRequest) error {
	return errors.New("not implemented")
}

func (a *syncAdapter) UpdateMediaBuy(_ context.Context, _ *domain.Principal, _ *domain.MediaBuyRecord, _ *domain.UpdateMediaBuyRequest) ([]domain.PackageUpdateResult, error) {
	return nil, errors.New("not implemented")
}

func (a *syncAdapter) AddCreativeAssets(_ context.Context, _ *domain.Principal, _ *domain.MediaBuyRecord, _ []domain.CreativeAsset) ([]domain.CreativeResult, error) {
	return nil, errors.New("not implemented")
}

func (a *syncAdapter) CheckStatus(_ context.Context, _ *domain.Principal, record *domain.MediaBuyRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.statusCalls++
	if a.statusErr != nil {
		return a.statusErr
	}
	if a.statusAfter != "" {
		record.Status = a.statusAfter
	}
	return nil
}

func (a *syncAdapter) GetDelivery(_ context.Context, _ *domain.Principal, _ *domain.MediaBuyRecord, _, _ time.Time) (*domain.DeliveryReport, error) {
	if a.reportErr != nil {
		return nil, a.reportErr
	}
	return a.report, nil
}

func (a *syncAdapter) UpdatePerformanceIndex(_ context.Context, _ *domain.Principal, _ *domain.MediaBuyRecord, _ []domain.PerformanceIndex) (bool, error) {
	return false, errors.New("not implemented")
}

func TestDeliverySyncService_syncDeliveringBuys(t *testing.T) {
	principal := &domain.Principal{
		TenantID:    "tenant_demo",
		PrincipalID: "principal_mock",
		AdapterType: domain.AdapterTypeMock,
	}
	deliveringBuy := func() *domain.MediaBuyRecord {
		return &domain.MediaBuyRecord{
			ID:          "mb_aaa111",
			TenantID:    "tenant_demo",
			PrincipalID: "principal_mock",
			Status:      domain.MediaBuyStatusDelivering,
		}
	}

	t.Run("Compra em veiculação - deve atualizar status e gravar fotografia do dia", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockMediaBuyRepo := mocks.NewMockMediaBuyRepository(ctrl)
		mockPrincipalRepo := mocks.NewMockPrincipalRepository(ctrl)
		mockSnapshotRepo := mocks.NewMockDeliverySnapshotRepository(ctrl)

		adapter := &syncAdapter{
			statusAfter: domain.MediaBuyStatusCompleted,
			report:      &domain.DeliveryReport{Impressions: 12000, Spend: 60.0},
		}

		mockMediaBuyRepo.EXPECT().
			ListMediaBuysByStatus(domain.MediaBuyStatusDelivering).
			Return([]*domain.MediaBuyRecord{deliveringBuy()}, nil)
		mockPrincipalRepo.EXPECT().
			GetPrincipalByID("principal_mock").
			Return(principal, nil)

		var persisted *domain.MediaBuyRecord
		mockMediaBuyRepo.EXPECT().
			UpdateMediaBuy(gomock.Any()).
			DoAndReturn(func(record *domain.MediaBuyRecord) error {
				persisted = record
				return nil
			})

		var snapshot *domain.DeliverySnapshot
		mockSnapshotRepo.EXPECT().
			SaveOrUpdateSnapshot(gomock.Any()).
			DoAndReturn(func(s *domain.DeliverySnapshot) error {
				snapshot = s
				return nil
			})

		service := &DeliverySyncService{
			config:        DeliverySyncConfig{SyncEnabled: true},
			mediaBuyRepo:  mockMediaBuyRepo,
			principalRepo: mockPrincipalRepo,
			snapshotRepo:  mockSnapshotRepo,
			registry:      integrator.NewRegistry(adapter),
		}

		service.syncDeliveringBuys(context.Background())

		require.NotNil(t, persisted)
		assert.Equal(t, domain.MediaBuyStatusCompleted, persisted.Status)

		require.NotNil(t, snapshot)
		assert.Equal(t, "mb_aaa111", snapshot.MediaBuyID)
		assert.Equal(t, int64(12000), snapshot.Impressions)
		assert.Equal(t, 60.0, snapshot.Spend)
		// a fotografia é sempre do dia corrente, início à meia-noite
		assert.Equal(t, 0, snapshot.Date.Hour())

		status := service.GetStatus()
		assert.Equal(t, 0, status["last_sync_errors"])
	})

	t.Run("Plataforma indisponível - deve contar o erro e seguir para a próxima compra", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockMediaBuyRepo := mocks.NewMockMediaBuyRepository(ctrl)
		mockPrincipalRepo := mocks.NewMockPrincipalRepository(ctrl)
		mockSnapshotRepo := mocks.NewMockDeliverySnapshotRepository(ctrl)

		adapter := &syncAdapter{statusErr: errors.New("platform unavailable")}

		first := deliveringBuy()
		second := deliveringBuy()
		second.ID = "mb_bbb222"

		mockMediaBuyRepo.EXPECT().
			ListMediaBuysByStatus(domain.MediaBuyStatusDelivering).
			Return([]*domain.MediaBuyRecord{first, second}, nil)
		mockPrincipalRepo.EXPECT().
			GetPrincipalByID("principal_mock").
			Return(principal, nil).
			Times(2)

		service := &DeliverySyncService{
			config:        DeliverySyncConfig{SyncEnabled: true},
			mediaBuyRepo:  mockMediaBuyRepo,
			principalRepo: mockPrincipalRepo,
			snapshotRepo:  mockSnapshotRepo,
			registry:      integrator.NewRegistry(adapter),
		}

		service.syncDeliveringBuys(context.Background())

		assert.Equal(t, 2, adapter.statusCalls)

		status := service.GetStatus()
		assert.Equal(t, 2, status["last_sync_errors"])
	})

	t.Run("Principal sem integrador registrado - deve contar o erro", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockMediaBuyRepo := mocks.NewMockMediaBuyRepository(ctrl)
		mockPrincipalRepo := mocks.NewMockPrincipalRepository(ctrl)
		mockSnapshotRepo := mocks.NewMockDeliverySnapshotRepository(ctrl)

		orphan := &domain.Principal{
			TenantID:    "tenant_demo",
			PrincipalID: "principal_orfao",
			AdapterType: "desconhecido",
		}

		mockMediaBuyRepo.EXPECT().
			ListMediaBuysByStatus(domain.MediaBuyStatusDelivering).
			Return([]*domain.MediaBuyRecord{deliveringBuy()}, nil)
		mockPrincipalRepo.EXPECT().
			GetPrincipalByID("principal_mock").
			Return(orphan, nil)

		service := &DeliverySyncService{
			config:        DeliverySyncConfig{SyncEnabled: true},
			mediaBuyRepo:  mockMediaBuyRepo,
			principalRepo: mockPrincipalRepo,
			snapshotRepo:  mockSnapshotRepo,
			registry:      integrator.NewRegistry(),
		}

		service.syncDeliveringBuys(context.Background())

		status := service.GetStatus()
		assert.Equal(t, 1, status["last_sync_errors"])
	})

	t.Run("Erro ao listar compras - deve abortar sem tocar nas plataformas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockMediaBuyRepo := mocks.NewMockMediaBuyRepository(ctrl)
		mockPrincipalRepo := mocks.NewMockPrincipalRepository(ctrl)
		mockSnapshotRepo := mocks.NewMockDeliverySnapshotRepository(ctrl)

		adapter := &syncAdapter{}

		mockMediaBuyRepo.EXPECT().
			ListMediaBuysByStatus(domain.MediaBuyStatusDelivering).
			Return(nil, errors.New("connection refused"))

		service := &DeliverySyncService{
			config:        DeliverySyncConfig{SyncEnabled: true},
			mediaBuyRepo:  mockMediaBuyRepo,
			principalRepo: mockPrincipalRepo,
			snapshotRepo:  mockSnapshotRepo,
			registry:      integrator.NewRegistry(adapter),
		}

		service.syncDeliveringBuys(context.Background())

		assert.Equal(t, 0, adapter.statusCalls)
	})
}
