package dispatching

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/repository"
	"github.com/vfg2006/adcp-dispatch-api/internal/config"
	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
	"github.com/vfg2006/adcp-dispatch-api/internal/events"
	"github.com/vfg2006/adcp-dispatch-api/internal/usecases/approving"
	"github.com/vfg2006/adcp-dispatch-api/internal/usecases/auditing"
	"github.com/vfg2006/adcp-dispatch-api/pkg/log"
	"github.com/vfg2006/adcp-dispatch-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Service orquestra o despacho das compras: resolve o integrador do
// principal, prepara e valida a requisição, decide entre despacho imediato e
// ciclo de aprovação e persiste o resultado. Cada tentativa de operação gera
// um evento de auditoria; mudanças de status canônico publicam um evento no
// canal configurado. Não há retentativa interna: falha de plataforma sobe
// para o chamador.
type Service struct {
	cfg           *config.Config
	registry      *integrator.Registry
	principalRepo repository.PrincipalRepository
	productRepo   repository.ProductRepository
	mediaBuyRepo  repository.MediaBuyRepository
	taskRepo      repository.WorkflowTaskRepository
	snapshotRepo  repository.DeliverySnapshotRepository
	engine        approving.Engine
	auditor       auditing.Auditor
	publisher     events.Publisher

	now func() time.Time
}

// NewService cria o orquestrador e registra o gancho de conclusão no motor
// de aprovação: tasks assíncronas aprovadas são aplicadas na plataforma a
// partir desse gancho.
func NewService(
	cfg *config.Config,
	registry *integrator.Registry,
	principalRepo repository.PrincipalRepository,
	productRepo repository.ProductRepository,
	mediaBuyRepo repository.MediaBuyRepository,
	taskRepo repository.WorkflowTaskRepository,
	snapshotRepo repository.DeliverySnapshotRepository,
	engine approving.Engine,
	auditor auditing.Auditor,
	publisher events.Publisher,
) Dispatcher {
	s := &Service{
		cfg:           cfg,
		registry:      registry,
		principalRepo: principalRepo,
		productRepo:   productRepo,
		mediaBuyRepo:  mediaBuyRepo,
		taskRepo:      taskRepo,
		snapshotRepo:  snapshotRepo,
		engine:        engine,
		auditor:       auditor,
		publisher:     publisher,
		now:           time.Now,
	}

	engine.OnCompletion(s.applyFinishedTask)

	return s
}

func (s *Service) CreateMediaBuy(ctx context.Context, principal *domain.Principal, request *domain.MediaBuyRequest, webhookURL *string) (*Submission, error) {
	adapter, err := s.registry.ForPrincipal(principal)
	if err != nil {
		s.audit(ctx, principal, domain.OperationCreateMediaBuy, nil, false, detailError(err))
		return nil, err
	}

	products, err := s.loadProducts(principal.TenantID, request)
	if err != nil {
		s.audit(ctx, principal, domain.OperationCreateMediaBuy, nil, false, detailError(err))
		return nil, err
	}

	prepared, err := integrator.PrepareMediaBuy(request, products, adapter.Capabilities())
	if err != nil {
		detail := detailError(err)
		detail["buyer_ref"] = request.BuyerRef
		s.audit(ctx, principal, domain.OperationCreateMediaBuy, nil, false, detail)
		return nil, err
	}

	record := s.newRecord(principal, request, prepared)
	if err := s.mediaBuyRepo.CreateMediaBuy(record); err != nil {
		return nil, err
	}

	var task *domain.WorkflowTask
	if s.approvalRequired(principal, domain.OperationCreateMediaBuy) {
		payload, err := json.Marshal(request)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar a requisição da task: %w", err)
		}
		pending := s.newTask(domain.OperationCreateMediaBuy, principal, record.ID, payload, webhookURL)

		if s.cfg.HITL.ModeFor(domain.OperationCreateMediaBuy) == config.HITLModeAsync {
			return s.startDeferred(ctx, principal, record, pending)
		}

		task, err = s.runApproval(ctx, principal, record, pending)
		if err != nil {
			return nil, err
		}
	}

	if err := s.dispatchCreate(ctx, adapter, principal, record, request); err != nil {
		return nil, err
	}

	return &Submission{Status: SubmissionCompleted, MediaBuy: record, Task: task}, nil
}

func (s *Service) UpdateMediaBuy(ctx context.Context, principal *domain.Principal, update *domain.UpdateMediaBuyRequest, webhookURL *string) (*Submission, error) {
	adapter, err := s.registry.ForPrincipal(principal)
	if err != nil {
		s.audit(ctx, principal, domain.OperationUpdateMediaBuy, nil, false, detailError(err))
		return nil, err
	}

	record, err := s.ownedMediaBuy(principal, update.MediaBuyID)
	if err != nil {
		s.audit(ctx, principal, domain.OperationUpdateMediaBuy, &update.MediaBuyID, false, detailError(err))
		return nil, err
	}

	var task *domain.WorkflowTask
	if s.approvalRequired(principal, domain.OperationUpdateMediaBuy) {
		payload, err := json.Marshal(update)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar a requisição da task: %w", err)
		}
		pending := s.newTask(domain.OperationUpdateMediaBuy, principal, record.ID, payload, webhookURL)

		if s.cfg.HITL.ModeFor(domain.OperationUpdateMediaBuy) == config.HITLModeAsync {
			return s.startDeferred(ctx, principal, record, pending)
		}

		task, err = s.runApproval(ctx, principal, record, pending)
		if err != nil {
			return nil, err
		}
	}

	results, err := s.dispatchUpdate(ctx, adapter, principal, record, update)
	if err != nil {
		return nil, err
	}

	return &Submission{Status: SubmissionCompleted, MediaBuy: record, Task: task, Results: results}, nil
}

func (s *Service) AddCreativeAssets(ctx context.Context, principal *domain.Principal, mediaBuyID string, assets []domain.CreativeAsset) ([]domain.CreativeResult, error) {
	adapter, err := s.registry.ForPrincipal(principal)
	if err != nil {
		s.audit(ctx, principal, domain.OperationAddCreativeAssets, nil, false, detailError(err))
		return nil, err
	}

	record, err := s.ownedMediaBuy(principal, mediaBuyID)
	if err != nil {
		s.audit(ctx, principal, domain.OperationAddCreativeAssets, &mediaBuyID, false, detailError(err))
		return nil, err
	}

	results, err := adapter.AddCreativeAssets(ctx, principal, record, assets)
	if err != nil {
		s.audit(ctx, principal, domain.OperationAddCreativeAssets, &record.ID, false, detailError(err))
		return nil, err
	}

	record.UpdatedAt = s.now()
	if err := s.mediaBuyRepo.UpdateMediaBuy(record); err != nil {
		return nil, err
	}

	approved := 0
	for _, result := range results {
		if result.Status == domain.CreativeStatusApproved {
			approved++
		}
	}
	s.audit(ctx, principal, domain.OperationAddCreativeAssets, &record.ID, true, map[string]any{
		"creatives_total":    len(results),
		"creatives_approved": approved,
	})

	return results, nil
}

func (s *Service) CheckStatus(ctx context.Context, principal *domain.Principal, mediaBuyID string) (*domain.MediaBuyRecord, error) {
	adapter, err := s.registry.ForPrincipal(principal)
	if err != nil {
		s.audit(ctx, principal, domain.OperationCheckMediaBuyStatus, nil, false, detailError(err))
		return nil, err
	}

	record, err := s.ownedMediaBuy(principal, mediaBuyID)
	if err != nil {
		s.audit(ctx, principal, domain.OperationCheckMediaBuyStatus, &mediaBuyID, false, detailError(err))
		return nil, err
	}

	previous := record.Status
	if err := adapter.CheckStatus(ctx, principal, record); err != nil {
		s.audit(ctx, principal, domain.OperationCheckMediaBuyStatus, &record.ID, false, detailError(err))
		return nil, err
	}

	if record.Status != previous {
		record.UpdatedAt = s.now()
		if err := s.mediaBuyRepo.UpdateMediaBuy(record); err != nil {
			return nil, err
		}
		s.publishStatusChange(ctx, record)
	}

	s.audit(ctx, principal, domain.OperationCheckMediaBuyStatus, &record.ID, true, map[string]any{
		"status":        string(record.Status),
		"native_status": record.NativeStatus,
	})

	return record, nil
}

func (s *Service) GetDelivery(ctx context.Context, principal *domain.Principal, mediaBuyID string, periodStart, periodEnd time.Time) (*domain.DeliveryReport, error) {
	adapter, err := s.registry.ForPrincipal(principal)
	if err != nil {
		s.audit(ctx, principal, domain.OperationGetMediaBuyDelivery, nil, false, detailError(err))
		return nil, err
	}

	record, err := s.ownedMediaBuy(principal, mediaBuyID)
	if err != nil {
		s.audit(ctx, principal, domain.OperationGetMediaBuyDelivery, &mediaBuyID, false, detailError(err))
		return nil, err
	}

	report, err := adapter.GetDelivery(ctx, principal, record, periodStart, periodEnd)
	if err != nil {
		s.audit(ctx, principal, domain.OperationGetMediaBuyDelivery, &record.ID, false, detailError(err))
		return nil, err
	}

	s.audit(ctx, principal, domain.OperationGetMediaBuyDelivery, &record.ID, true, map[string]any{
		"impressions": report.Impressions,
		"spend":       report.Spend,
	})

	return report, nil
}

func (s *Service) UpdatePerformanceIndex(ctx context.Context, principal *domain.Principal, mediaBuyID string, indexes []domain.PerformanceIndex) (bool, error) {
	adapter, err := s.registry.ForPrincipal(principal)
	if err != nil {
		s.audit(ctx, principal, domain.OperationUpdatePerformanceIndex, nil, false, detailError(err))
		return false, err
	}

	record, err := s.ownedMediaBuy(principal, mediaBuyID)
	if err != nil {
		s.audit(ctx, principal, domain.OperationUpdatePerformanceIndex, &mediaBuyID, false, detailError(err))
		return false, err
	}

	affected, err := adapter.UpdatePerformanceIndex(ctx, principal, record, indexes)
	if err != nil {
		s.audit(ctx, principal, domain.OperationUpdatePerformanceIndex, &record.ID, false, detailError(err))
		return false, err
	}

	if affected {
		if record.PerformanceIndexes == nil {
			record.PerformanceIndexes = make(map[string]float64, len(indexes))
		}
		for _, index := range indexes {
			record.PerformanceIndexes[index.ProductID] = index.Index
		}
		record.UpdatedAt = s.now()
		if err := s.mediaBuyRepo.UpdateMediaBuy(record); err != nil {
			return false, err
		}
	}

	s.audit(ctx, principal, domain.OperationUpdatePerformanceIndex, &record.ID, true, map[string]any{
		"indexes":  len(indexes),
		"affected": affected,
	})

	return affected, nil
}

// ListMediaBuys devolve as compras do principal em ordem de criação.
func (s *Service) ListMediaBuys(_ context.Context, principal *domain.Principal) ([]*domain.MediaBuyRecord, error) {
	return s.mediaBuyRepo.ListMediaBuysByPrincipal(principal.TenantID, principal.PrincipalID)
}

// GetDeliveryHistory devolve os snapshots diários consolidados para a compra
// dentro do período. A visão em tempo real fica em GetDelivery.
func (s *Service) GetDeliveryHistory(_ context.Context, principal *domain.Principal, mediaBuyID string, periodStart, periodEnd time.Time) ([]*domain.DeliverySnapshot, error) {
	record, err := s.ownedMediaBuy(principal, mediaBuyID)
	if err != nil {
		return nil, err
	}

	periodStart, periodEnd = utils.ClampPeriod(periodStart, periodEnd, record.StartTime, record.EndTime)
	return s.snapshotRepo.ListByMediaBuy(record.ID, periodStart, periodEnd)
}

// GetTask devolve a task do próprio principal. Task de outro tenant é
// indistinguível de task inexistente.
func (s *Service) GetTask(_ context.Context, principal *domain.Principal, taskID string) (*domain.WorkflowTask, error) {
	task, err := s.engine.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.TenantID != principal.TenantID || task.PrincipalID != principal.PrincipalID {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

// ListTasks devolve as tasks de workflow geradas para uma compra do
// principal.
func (s *Service) ListTasks(_ context.Context, principal *domain.Principal, mediaBuyID string) ([]*domain.WorkflowTask, error) {
	if _, err := s.ownedMediaBuy(principal, mediaBuyID); err != nil {
		return nil, err
	}
	return s.taskRepo.ListTasksByMediaBuy(mediaBuyID)
}

// CompleteTask aplica o desfecho decidido pelo operador. A aplicação da
// operação aprovada acontece pelo gancho de conclusão do motor.
func (s *Service) CompleteTask(ctx context.Context, taskID, outcome, reason string) (*domain.WorkflowTask, error) {
	switch outcome {
	case TaskOutcomeApprove:
		return s.engine.CompleteTask(ctx, taskID, true, "")
	case TaskOutcomeReject:
		return s.engine.CompleteTask(ctx, taskID, false, reason)
	case TaskOutcomeFail:
		if reason == "" {
			reason = "operator marked the task as failed"
		}
		if err := s.engine.FailTask(ctx, taskID, reason); err != nil {
			return nil, err
		}
		return s.engine.GetTask(taskID)
	}

	return nil, domain.NewValidationError(
		domain.ErrInvalidTaskOutcome,
		fmt.Sprintf("outcome %q is not one of approve, reject, fail", outcome),
	)
}

// dispatchCreate efetiva a compra na plataforma e persiste o registro
// resultante. Falha de plataforma move a compra para failed: o comprador
// precisa submeter de novo, o gateway não retenta.
func (s *Service) dispatchCreate(ctx context.Context, adapter integrator.AdServerAdapter, principal *domain.Principal, record *domain.MediaBuyRecord, request *domain.MediaBuyRequest) error {
	if err := adapter.CreateMediaBuy(ctx, principal, record, request); err != nil {
		s.markFailed(ctx, record)
		detail := detailError(err)
		detail["platform"] = adapter.Platform()
		s.audit(ctx, principal, domain.OperationCreateMediaBuy, &record.ID, false, detail)
		return err
	}

	record.UpdatedAt = s.now()
	if err := s.mediaBuyRepo.UpdateMediaBuy(record); err != nil {
		return err
	}

	s.audit(ctx, principal, domain.OperationCreateMediaBuy, &record.ID, true, map[string]any{
		"buyer_ref": record.BuyerRef,
		"platform":  adapter.Platform(),
		"status":    string(record.Status),
	})
	s.publishStatusChange(ctx, record)

	return nil
}

// dispatchUpdate aplica a alteração parcial na plataforma. Pacotes com falha
// são itemizados nos resultados sem interromper o restante do lote.
func (s *Service) dispatchUpdate(ctx context.Context, adapter integrator.AdServerAdapter, principal *domain.Principal, record *domain.MediaBuyRecord, update *domain.UpdateMediaBuyRequest) ([]domain.PackageUpdateResult, error) {
	previous := record.Status

	results, err := adapter.UpdateMediaBuy(ctx, principal, record, update)
	if err != nil {
		s.audit(ctx, principal, domain.OperationUpdateMediaBuy, &record.ID, false, detailError(err))
		return nil, err
	}

	record.UpdatedAt = s.now()
	if err := s.mediaBuyRepo.UpdateMediaBuy(record); err != nil {
		return nil, err
	}

	applied := 0
	for _, result := range results {
		if result.Applied {
			applied++
		}
	}
	s.audit(ctx, principal, domain.OperationUpdateMediaBuy, &record.ID, true, map[string]any{
		"packages_applied": applied,
		"packages_total":   len(results),
		"status":           string(record.Status),
	})

	if record.Status != previous {
		s.publishStatusChange(ctx, record)
	}

	return results, nil
}

// runApproval bloqueia no ciclo síncrono de aprovação e devolve a task
// aprovada. Recusa vira SimulatedRejection; criações recusadas movem a
// compra para failed.
func (s *Service) runApproval(ctx context.Context, principal *domain.Principal, record *domain.MediaBuyRecord, task *domain.WorkflowTask) (*domain.WorkflowTask, error) {
	finished, err := s.engine.RunSync(ctx, task)
	if err != nil {
		s.audit(ctx, principal, task.Operation, task.MediaBuyID, false, detailError(err))
		return nil, err
	}

	if finished.Status != domain.TaskStatusCompleted {
		reason := "Manual review rejected the operation"
		if finished.Detail != nil {
			reason = *finished.Detail
		}
		if task.Operation == domain.OperationCreateMediaBuy {
			s.markFailed(ctx, record)
		}
		s.audit(ctx, principal, task.Operation, task.MediaBuyID, false, map[string]any{
			"task_id":          finished.ID,
			"rejection_reason": reason,
		})
		return nil, &domain.SimulatedRejection{Reason: reason}
	}

	return finished, nil
}

// startDeferred cria a task assíncrona e devolve a compra intocada: nenhuma
// chamada de plataforma acontece antes da conclusão da task. Sem o timer de
// conclusão automática a task fica aguardando o operador.
func (s *Service) startDeferred(ctx context.Context, principal *domain.Principal, record *domain.MediaBuyRecord, task *domain.WorkflowTask) (*Submission, error) {
	created, err := s.engine.StartAsync(ctx, task)
	if err != nil {
		s.audit(ctx, principal, task.Operation, task.MediaBuyID, false, detailError(err))
		return nil, err
	}

	if !s.cfg.HITL.AutoCompleteEnabled {
		flagged, err := s.engine.RequireInput(ctx, created.ID, "Awaiting manual operator approval")
		if err != nil {
			log.ForContext(ctx).WithError(err).WithField("task_id", created.ID).
				Warn("Falha ao marcar task como aguardando operador")
		} else {
			created = flagged
		}
	}

	s.audit(ctx, principal, task.Operation, task.MediaBuyID, true, map[string]any{
		"task_id":  created.ID,
		"deferred": true,
	})

	return &Submission{Status: SubmissionSubmitted, MediaBuy: record, Task: created}, nil
}

// applyFinishedTask aplica na plataforma a operação de uma task assíncrona
// que atingiu estado terminal. Roda na goroutine que concluiu a task; toda
// falha é registrada e engolida, o motor de aprovação nunca cai por causa
// da aplicação.
func (s *Service) applyFinishedTask(taskID string) {
	ctx, _ := log.WithCorrelationID(context.Background())
	logger := log.ForContext(ctx).WithField("task_id", taskID)

	task, err := s.engine.GetTask(taskID)
	if err != nil {
		logger.WithError(err).Error("Falha ao carregar task concluída")
		return
	}
	if task.MediaBuyID == nil {
		return
	}

	record, err := s.mediaBuyRepo.GetMediaBuyByID(*task.MediaBuyID)
	if err != nil {
		logger.WithError(err).Error("Falha ao carregar compra da task concluída")
		return
	}
	if record == nil {
		logger.Error("Compra da task concluída não existe mais")
		return
	}

	principal, err := s.principalRepo.GetPrincipalByID(task.PrincipalID)
	if err != nil {
		logger.WithError(err).Error("Falha ao carregar principal da task concluída")
		return
	}
	if principal == nil {
		logger.Error("Principal da task concluída não existe mais")
		return
	}

	if task.Status != domain.TaskStatusCompleted {
		// recusa ou falha: a criação nunca chegou à plataforma
		if task.Operation == domain.OperationCreateMediaBuy {
			s.markFailed(ctx, record)
		}
		s.audit(ctx, principal, task.Operation, task.MediaBuyID, false, map[string]any{
			"task_id":     task.ID,
			"task_status": string(task.Status),
		})
		return
	}

	adapter, err := s.registry.ForPrincipal(principal)
	if err != nil {
		logger.WithError(err).Error("Integrador da task concluída não está configurado")
		return
	}

	switch task.Operation {
	case domain.OperationCreateMediaBuy:
		request := &domain.MediaBuyRequest{}
		if err := json.Unmarshal(task.Payload, request); err != nil {
			logger.WithError(err).Error("Payload da task de criação ilegível")
			s.markFailed(ctx, record)
			return
		}
		if err := s.dispatchCreate(ctx, adapter, principal, record, request); err != nil {
			logger.WithError(err).Error("Falha ao aplicar criação aprovada na plataforma")
		}
	case domain.OperationUpdateMediaBuy:
		update := &domain.UpdateMediaBuyRequest{}
		if err := json.Unmarshal(task.Payload, update); err != nil {
			logger.WithError(err).Error("Payload da task de alteração ilegível")
			return
		}
		if _, err := s.dispatchUpdate(ctx, adapter, principal, record, update); err != nil {
			logger.WithError(err).Error("Falha ao aplicar alteração aprovada na plataforma")
		}
	default:
		logger.Warnf("Task concluída de operação %s não tem aplicação diferida", task.Operation)
	}
}

// newRecord monta o registro interno de uma compra preparada, ainda sem
// identificadores de plataforma.
func (s *Service) newRecord(principal *domain.Principal, request *domain.MediaBuyRequest, prepared *integrator.PreparedBuy) *domain.MediaBuyRecord {
	now := s.now()

	totalBudget := request.TotalBudget
	if totalBudget == 0 {
		totalBudget = utils.RoundWithTwoDecimalPlace(prepared.TotalSpend)
	}

	return &domain.MediaBuyRecord{
		ID:          utils.GenerateIDWithPrefix("mb"),
		TenantID:    principal.TenantID,
		PrincipalID: principal.PrincipalID,
		BuyerRef:    request.BuyerRef,
		PONumber:    request.PONumber,
		Status:      domain.MediaBuyStatusPendingStart,
		TotalBudget: totalBudget,
		Currency:    request.Currency,
		StartTime:   request.StartTime,
		EndTime:     request.EndTime,
		Packages:    prepared.Packages,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *Service) newTask(operation string, principal *domain.Principal, mediaBuyID string, payload []byte, webhookURL *string) *domain.WorkflowTask {
	return &domain.WorkflowTask{
		Operation:   operation,
		TenantID:    principal.TenantID,
		PrincipalID: principal.PrincipalID,
		Payload:     payload,
		MediaBuyID:  &mediaBuyID,
		WebhookURL:  webhookURL,
	}
}

// ownedMediaBuy carrega a compra e confirma a posse do principal. Compra de
// outro tenant é indistinguível de compra inexistente.
func (s *Service) ownedMediaBuy(principal *domain.Principal, mediaBuyID string) (*domain.MediaBuyRecord, error) {
	record, err := s.mediaBuyRepo.GetMediaBuyByID(mediaBuyID)
	if err != nil {
		return nil, err
	}
	if record == nil || record.TenantID != principal.TenantID || record.PrincipalID != principal.PrincipalID {
		return nil, domain.ErrMediaBuyNotFound
	}
	return record, nil
}

// approvalRequired decide se a operação passa pelo ciclo de aprovação. O
// tenant pode sobrepor o padrão global pelo platform_config do principal.
func (s *Service) approvalRequired(principal *domain.Principal, operation string) bool {
	enabled := s.cfg.HITL.Enabled
	if override, ok := principal.PlatformConfig["manual_approval"]; ok {
		enabled = override == "true"
	}
	return enabled && s.cfg.HITL.AppliesTo(operation)
}

// loadProducts carrega do catálogo os produtos referenciados na requisição.
// Produto ausente não interrompe a carga: a preparação acusa cada referência
// quebrada pelo nome.
func (s *Service) loadProducts(tenantID string, request *domain.MediaBuyRequest) (map[string]*domain.Product, error) {
	products := make(map[string]*domain.Product)
	for _, pkg := range request.Packages {
		for _, productID := range pkg.ProductIDs {
			if _, ok := products[productID]; ok {
				continue
			}
			product, err := s.productRepo.GetProductByID(tenantID, productID)
			if err != nil {
				return nil, err
			}
			if product != nil {
				products[productID] = product
			}
		}
	}
	return products, nil
}

// markFailed move a compra para failed e publica a mudança de status.
func (s *Service) markFailed(ctx context.Context, record *domain.MediaBuyRecord) {
	record.Status = domain.MediaBuyStatusFailed
	record.UpdatedAt = s.now()
	if err := s.mediaBuyRepo.UpdateMediaBuy(record); err != nil {
		log.ForContext(ctx).WithError(err).WithField("media_buy_id", record.ID).
			Error("Falha ao marcar compra como falhada")
		return
	}
	s.publishStatusChange(ctx, record)
}

// publishStatusChange publica a mudança de status canônico no canal
// configurado. Melhor esforço: falha de publicação nunca afeta a operação.
func (s *Service) publishStatusChange(ctx context.Context, record *domain.MediaBuyRecord) {
	if s.publisher == nil {
		return
	}

	event := events.Event{
		Type: events.EventMediaBuyStatusChanged,
		Payload: map[string]any{
			"media_buy_id":  record.ID,
			"tenant_id":     record.TenantID,
			"principal_id":  record.PrincipalID,
			"status":        string(record.Status),
			"native_status": record.NativeStatus,
		},
	}
	_ = s.publisher.Publish(ctx, s.cfg.Redis.EventsChannel, event)
}

func (s *Service) audit(ctx context.Context, principal *domain.Principal, operation string, mediaBuyID *string, success bool, detail map[string]any) {
	s.auditor.Record(ctx, &domain.AuditEvent{
		Operation:   operation,
		TenantID:    principal.TenantID,
		PrincipalID: principal.PrincipalID,
		MediaBuyID:  mediaBuyID,
		Success:     success,
		Detail:      detail,
		OccurredAt:  s.now(),
	})
}

func detailError(err error) map[string]any {
	return map[string]any{"error": err.Error()}
}
