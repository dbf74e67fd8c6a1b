package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/repository"
	"github.com/vfg2006/adcp-dispatch-api/internal/config"
	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
)

// DeliverySyncConfig representa a configuração do sincronizador de entrega
type DeliverySyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// DeliverySyncService atualiza o status das compras em veiculação e grava a
// fotografia diária de entrega de cada uma. As consultas históricas de
// entrega leem essas fotografias sem tocar nas plataformas.
type DeliverySyncService struct {
	scheduler           *gocron.Scheduler
	config              DeliverySyncConfig
	mediaBuyRepo        repository.MediaBuyRepository
	principalRepo       repository.PrincipalRepository
	snapshotRepo        repository.DeliverySnapshotRepository
	registry            *integrator.Registry
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncErrors      int
}

// NewDeliverySyncService cria uma nova instância do sincronizador de entrega
func NewDeliverySyncService(
	mediaBuyRepo repository.MediaBuyRepository,
	principalRepo repository.PrincipalRepository,
	snapshotRepo repository.DeliverySnapshotRepository,
	registry *integrator.Registry,
	appConfig *config.Config,
) *DeliverySyncService {
	syncConfig := DeliverySyncConfig{
		CronSchedule: appConfig.DeliverySync.CronSchedule,
		SyncEnabled:  appConfig.DeliverySync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do sincronizador de entrega carregada")

	return &DeliverySyncService{
		scheduler:     scheduler,
		config:        syncConfig,
		mediaBuyRepo:  mediaBuyRepo,
		principalRepo: principalRepo,
		snapshotRepo:  snapshotRepo,
		registry:      registry,
		syncRunning:   false,
	}
}

// Start inicia o agendador
func (s *DeliverySyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de entrega desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando sincronizador de entrega")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncDeliveringBuys(context.Background())
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de entrega: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando sincronizador de entrega")
		s.scheduler.Stop()
	}()

	return nil
}

// syncDeliveringBuys percorre as compras em veiculação, atualiza o status
// pela plataforma e grava a fotografia de entrega do dia
func (s *DeliverySyncService) syncDeliveringBuys(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de entrega já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	records, err := s.mediaBuyRepo.ListMediaBuysByStatus(domain.MediaBuyStatusDelivering)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar compras em veiculação")
		return
	}

	if len(records) == 0 {
		logrus.Debug("Nenhuma compra em veiculação para sincronizar")
		return
	}

	logrus.WithField("media_buys", len(records)).Info("Sincronizando entrega das compras em veiculação")

	errorCount := 0
	for _, record := range records {
		if err := s.syncMediaBuy(ctx, record); err != nil {
			errorCount++
			logrus.WithError(err).WithField("media_buy_id", record.ID).
				Error("Erro ao sincronizar entrega da compra")
		}
	}

	s.syncMutex.Lock()
	s.lastSyncErrors = errorCount
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"media_buys": len(records),
		"errors":     errorCount,
	}).Info("Sincronização de entrega concluída")
}

// syncMediaBuy atualiza uma compra pela plataforma e grava a fotografia do
// dia corrente
func (s *DeliverySyncService) syncMediaBuy(ctx context.Context, record *domain.MediaBuyRecord) error {
	principal, err := s.principalRepo.GetPrincipalByID(record.PrincipalID)
	if err != nil {
		return fmt.Errorf("erro ao carregar o principal da compra: %w", err)
	}
	if principal == nil {
		return fmt.Errorf("principal %s da compra não existe mais", record.PrincipalID)
	}

	adapter, err := s.registry.ForPrincipal(principal)
	if err != nil {
		return err
	}

	if err := adapter.CheckStatus(ctx, principal, record); err != nil {
		return fmt.Errorf("erro ao atualizar o status da compra: %w", err)
	}
	record.UpdatedAt = time.Now()
	if err := s.mediaBuyRepo.UpdateMediaBuy(record); err != nil {
		return fmt.Errorf("erro ao persistir o status da compra: %w", err)
	}

	// a fotografia do dia cobre da meia-noite até agora; rodadas seguintes
	// do mesmo dia fazem upsert sobre a mesma linha
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	report, err := adapter.GetDelivery(ctx, principal, record, dayStart, now)
	if err != nil {
		return fmt.Errorf("erro ao consultar a entrega da compra: %w", err)
	}

	snapshot := &domain.DeliverySnapshot{
		MediaBuyID:  record.ID,
		Date:        dayStart,
		Impressions: report.Impressions,
		Spend:       report.Spend,
	}
	if err := s.snapshotRepo.SaveOrUpdateSnapshot(snapshot); err != nil {
		return fmt.Errorf("erro ao gravar a fotografia de entrega: %w", err)
	}

	return nil
}

// TriggerManualSync inicia manualmente uma sincronização de entrega
func (s *DeliverySyncService) TriggerManualSync() {
	logrus.Info("Iniciando sincronização manual de entrega")
	go s.syncDeliveringBuys(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *DeliverySyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"enabled":                s.config.SyncEnabled,
		"cron_schedule":          s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_errors":       s.lastSyncErrors,
	}
}
