package approving

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/vfg2006/adcp-dispatch-api/infrastructure/repository"
	"github.com/vfg2006/adcp-dispatch-api/internal/config"
	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
	"github.com/vfg2006/adcp-dispatch-api/internal/events"
	"github.com/vfg2006/adcp-dispatch-api/pkg/log"
	"github.com/vfg2006/adcp-dispatch-api/pkg/utils"
)

// Engine simula o ciclo de aprovação humana das operações de despacho.
// No modo síncrono a chamada bloqueia pela demora configurada e devolve
// a task já terminal. No modo assíncrono a task nasce pendente e é
// concluída pelo timer de conclusão automática ou por uma chamada
// explícita do operador, o que vier primeiro.
type Engine interface {
	RunSync(ctx context.Context, task *domain.WorkflowTask) (*domain.WorkflowTask, error)
	StartAsync(ctx context.Context, task *domain.WorkflowTask) (*domain.WorkflowTask, error)
	CompleteTask(ctx context.Context, taskID string, approved bool, reason string) (*domain.WorkflowTask, error)
	FailTask(ctx context.Context, taskID string, detail string) error
	RequireInput(ctx context.Context, taskID string, detail string) (*domain.WorkflowTask, error)
	AutoComplete(taskID string)
	GetTask(taskID string) (*domain.WorkflowTask, error)
	OnCompletion(fn func(taskID string))
	Shutdown()
}

type Service struct {
	cfg       config.HITL
	taskRepo  repository.WorkflowTaskRepository
	scheduler Scheduler
	notifier  Notifier

	now       func() time.Time
	randFloat func() float64

	mu        sync.Mutex
	timers    map[string]func()
	taskLocks map[string]*taskLock
	callbacks []func(taskID string)
}

// taskLock serializa as transições de uma mesma task dentro do processo.
// O contador derruba a entrada quando o último chamador solta o lock.
type taskLock struct {
	mu   sync.Mutex
	refs int
}

func NewService(
	cfg config.HITL,
	taskRepo repository.WorkflowTaskRepository,
	scheduler Scheduler,
	notifier Notifier,
) Engine {
	return &Service{
		cfg:       cfg,
		taskRepo:  taskRepo,
		scheduler: scheduler,
		notifier:  notifier,
		now:       time.Now,
		randFloat: rand.Float64,
		timers:    make(map[string]func()),
		taskLocks: make(map[string]*taskLock),
	}
}

// OnCompletion registra uma função chamada com o id da task sempre que
// uma conclusão assíncrona (timer ou explícita) atinge estado terminal.
// As funções rodam na goroutine que concluiu a task.
func (s *Service) OnCompletion(fn func(taskID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = append(s.callbacks, fn)
}

func (s *Service) RunSync(ctx context.Context, task *domain.WorkflowTask) (*domain.WorkflowTask, error) {
	s.prepare(task)

	if err := s.taskRepo.CreateTask(task); err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatusWorking
	task.UpdatedAt = s.now()
	if err := s.taskRepo.UpdateTask(task); err != nil {
		return nil, err
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"task_id":   task.ID,
		"operation": task.Operation,
	})
	logger.Infof("Aguardando aprovação manual simulada por %s", s.cfg.SyncDelay)

	if err := s.waitSyncDelay(ctx, logger); err != nil {
		detail := err.Error()
		if _, _, finishErr := s.finish(ctx, task, domain.TaskStatusFailed, &detail); finishErr != nil {
			logger.WithError(finishErr).Error("Falha ao registrar cancelamento da task síncrona")
		}
		return task, err
	}

	if s.approved() {
		finished, _, err := s.finish(ctx, task, domain.TaskStatusCompleted, nil)
		return finished, err
	}

	reason := s.pickRejectionReason()
	finished, _, err := s.finish(ctx, task, domain.TaskStatusRejected, &reason)
	return finished, err
}

// waitSyncDelay bloqueia pela demora configurada emitindo notificações
// de progresso no intervalo fixo, até o prazo vencer ou o contexto cair.
func (s *Service) waitSyncDelay(ctx context.Context, logger log.Logger) error {
	deadline := time.NewTimer(s.cfg.SyncDelay)
	defer deadline.Stop()

	var tick <-chan time.Time
	if s.cfg.ProgressInterval > 0 {
		ticker := time.NewTicker(s.cfg.ProgressInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	start := s.now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
			logger.Infof("Aprovação em andamento há %s", s.now().Sub(start).Round(time.Millisecond))
		case <-deadline.C:
			return nil
		}
	}
}

func (s *Service) StartAsync(ctx context.Context, task *domain.WorkflowTask) (*domain.WorkflowTask, error) {
	s.prepare(task)

	if s.cfg.AutoCompleteEnabled {
		at := s.now().Add(s.cfg.AutoCompleteDelay)
		task.AutoCompleteAt = &at
	}

	if err := s.taskRepo.CreateTask(task); err != nil {
		return nil, err
	}

	if s.cfg.AutoCompleteEnabled {
		taskID := task.ID
		cancel := s.scheduler.Schedule(s.cfg.AutoCompleteDelay, func() {
			s.AutoComplete(taskID)
		})
		s.mu.Lock()
		s.timers[taskID] = cancel
		s.mu.Unlock()
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"task_id":   task.ID,
		"operation": task.Operation,
	}).Info("Task assíncrona criada, aguardando conclusão")

	return task, nil
}

// AutoComplete conclui uma task pendente quando o timer de conclusão
// automática dispara. Também é o gancho usado pelo varredor de tasks
// atrasadas para cobrir timers perdidos em reinício do processo. Erros
// são registrados e engolidos: o timer nunca derruba o motor.
func (s *Service) AutoComplete(taskID string) {
	ctx, _ := log.WithCorrelationID(context.Background())
	logger := log.ForContext(ctx).WithField("task_id", taskID)

	won := s.autoComplete(ctx, logger, taskID)

	s.dropTimer(taskID)
	if won {
		s.notifyCallbacks(taskID)
	}
}

// autoComplete roda a transição do timer com o lock da task em mãos.
// Os callbacks ficam para fora do lock: eles podem voltar ao motor
// para falhar a mesma task.
func (s *Service) autoComplete(ctx context.Context, logger log.Logger, taskID string) bool {
	unlock := s.lockTask(taskID)
	defer unlock()

	task, err := s.taskRepo.GetTaskByID(taskID)
	if err != nil {
		logger.WithError(err).Error("Falha ao carregar task para conclusão automática")
		return false
	}
	if task == nil {
		logger.Warn("Task agendada para conclusão automática não existe mais")
		return false
	}
	if task.Status.IsTerminal() {
		// conclusão explícita chegou antes do timer, nada a fazer
		return false
	}

	target := domain.TaskStatusCompleted
	var detail *string
	if !s.approved() {
		target = domain.TaskStatusRejected
		reason := s.pickRejectionReason()
		detail = &reason
	}

	if !CanTransition(task.Status, target) {
		logger.Warnf("Task em %s não pode ser concluída automaticamente", task.Status)
		return false
	}

	_, won, err := s.finish(ctx, task, target, detail)
	if err != nil {
		logger.WithError(err).Error("Falha ao persistir conclusão automática")
		return false
	}

	return won
}

// CompleteTask aplica uma conclusão explícita vinda do operador. Tasks
// já terminais devolvem o estado atual sem erro: a primeira transição
// vence e as demais viram no-op.
func (s *Service) CompleteTask(ctx context.Context, taskID string, approved bool, reason string) (*domain.WorkflowTask, error) {
	finished, won, err := s.completeTask(ctx, taskID, approved, reason)
	if err != nil {
		return nil, err
	}

	if won {
		s.notifyCallbacks(taskID)
	}
	return finished, nil
}

func (s *Service) completeTask(ctx context.Context, taskID string, approved bool, reason string) (*domain.WorkflowTask, bool, error) {
	unlock := s.lockTask(taskID)
	defer unlock()

	task, err := s.taskRepo.GetTaskByID(taskID)
	if err != nil {
		return nil, false, err
	}
	if task == nil {
		return nil, false, domain.ErrTaskNotFound
	}
	if task.Status.IsTerminal() {
		return task, false, nil
	}

	if task.Status == domain.TaskStatusInputRequired {
		// a resposta do operador é a entrada que faltava, a task
		// volta a trabalhar antes de finalizar
		task.Status = domain.TaskStatusWorking
		task.UpdatedAt = s.now()
		if err := s.taskRepo.UpdateTask(task); err != nil {
			return nil, false, err
		}
	}

	target := domain.TaskStatusCompleted
	var detail *string
	if !approved {
		target = domain.TaskStatusRejected
		if reason == "" {
			reason = s.pickRejectionReason()
		}
		detail = &reason
	}

	if !CanTransition(task.Status, target) {
		return task, false, nil
	}

	s.cancelTimer(taskID)

	return s.finish(ctx, task, target, detail)
}

// FailTask marca a task como falhada quando a operação aprovada não pôde
// ser aplicada na plataforma.
func (s *Service) FailTask(ctx context.Context, taskID string, detail string) error {
	won, err := s.failTask(ctx, taskID, detail)
	if err != nil {
		return err
	}

	if won {
		s.notifyCallbacks(taskID)
	}
	return nil
}

func (s *Service) failTask(ctx context.Context, taskID string, detail string) (bool, error) {
	unlock := s.lockTask(taskID)
	defer unlock()

	task, err := s.taskRepo.GetTaskByID(taskID)
	if err != nil {
		return false, err
	}
	if task == nil {
		return false, domain.ErrTaskNotFound
	}
	if task.Status.IsTerminal() {
		return false, nil
	}
	if !CanTransition(task.Status, domain.TaskStatusFailed) {
		return false, nil
	}

	s.cancelTimer(taskID)

	_, won, err := s.finish(ctx, task, domain.TaskStatusFailed, &detail)
	return won, err
}

// RequireInput move a task para input_required enquanto uma ação humana
// externa não acontece. O timer de conclusão automática é cancelado: a
// task só sai desse estado pela resposta do operador.
func (s *Service) RequireInput(ctx context.Context, taskID string, detail string) (*domain.WorkflowTask, error) {
	unlock := s.lockTask(taskID)
	defer unlock()

	task, err := s.taskRepo.GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	if !CanTransition(task.Status, domain.TaskStatusInputRequired) {
		return task, nil
	}

	s.cancelTimer(taskID)

	task.Status = domain.TaskStatusInputRequired
	task.Detail = &detail
	task.UpdatedAt = s.now()
	if err := s.taskRepo.UpdateTask(task); err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithField("task_id", taskID).
		Info("Task aguardando entrada externa")

	return task, nil
}

func (s *Service) GetTask(taskID string) (*domain.WorkflowTask, error) {
	task, err := s.taskRepo.GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

// Shutdown cancela os timers pendentes. As tasks seguem pendentes no
// banco e o varredor as conclui quando o processo voltar.
func (s *Service) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for taskID, cancel := range s.timers {
		cancel()
		delete(s.timers, taskID)
	}
}

func (s *Service) prepare(task *domain.WorkflowTask) {
	if task.ID == "" {
		task.ID = utils.GenerateIDWithPrefix("task")
	}
	now := s.now()
	task.Status = domain.TaskStatusPending
	task.CreatedAt = now
	task.UpdatedAt = now
}

// finish grava o estado terminal e dispara o webhook registrado na
// task. A gravação é condicional no banco: se outra transição chegou
// antes, quem perdeu recarrega o estado vencedor e não notifica nada.
// Falha de webhook não altera o estado terminal.
func (s *Service) finish(ctx context.Context, task *domain.WorkflowTask, status domain.TaskStatus, detail *string) (*domain.WorkflowTask, bool, error) {
	now := s.now()
	task.Status = status
	task.Detail = detail
	task.UpdatedAt = now
	task.CompletedAt = &now

	won, err := s.taskRepo.FinishTask(task)
	if err != nil {
		return nil, false, err
	}
	if !won {
		current, err := s.taskRepo.GetTaskByID(task.ID)
		if err != nil {
			return nil, false, err
		}
		if current == nil {
			return nil, false, domain.ErrTaskNotFound
		}
		log.ForContext(ctx).WithField("task_id", task.ID).
			Infof("Task já terminal em %s, transição para %s descartada", current.Status, status)
		return current, false, nil
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"task_id":   task.ID,
		"operation": task.Operation,
	}).Infof("Task concluída com status %s", status)

	if task.WebhookURL != nil && *task.WebhookURL != "" {
		event := domain.TaskEvent{
			Event:       events.EventTaskCompleted,
			TaskID:      task.ID,
			PrincipalID: task.PrincipalID,
			Status:      task.Status,
			Approved:    task.Status == domain.TaskStatusCompleted,
			Timestamp:   now,
		}
		if detail != nil && task.Status == domain.TaskStatusRejected {
			event.RejectionReason = *detail
		}
		// entrega única, falha só gera log dentro do notifier
		_ = s.notifier.NotifyCompletion(ctx, *task.WebhookURL, event)
	}

	return task, true, nil
}

// lockTask trava a task pelo id e devolve a função que destrava. Timer
// e operador concluindo a mesma task passam um por vez por aqui; quem
// chega depois enxerga o estado terminal e vira no-op.
func (s *Service) lockTask(taskID string) func() {
	s.mu.Lock()
	lock, ok := s.taskLocks[taskID]
	if !ok {
		lock = &taskLock{}
		s.taskLocks[taskID] = lock
	}
	lock.refs++
	s.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()

		s.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(s.taskLocks, taskID)
		}
		s.mu.Unlock()
	}
}

func (s *Service) approved() bool {
	return s.randFloat() < s.cfg.ApprovalProbability
}

func (s *Service) pickRejectionReason() string {
	reasons := s.cfg.RejectionReasons
	if len(reasons) == 0 {
		return "Manual review rejected the operation"
	}

	idx := int(s.randFloat() * float64(len(reasons)))
	if idx >= len(reasons) {
		idx = len(reasons) - 1
	}
	return reasons[idx]
}

func (s *Service) notifyCallbacks(taskID string) {
	s.mu.Lock()
	callbacks := make([]func(string), len(s.callbacks))
	copy(callbacks, s.callbacks)
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn(taskID)
	}
}

func (s *Service) cancelTimer(taskID string) {
	s.mu.Lock()
	cancel, ok := s.timers[taskID]
	if ok {
		delete(s.timers, taskID)
	}
	s.mu.Unlock()

	if ok {
		cancel()
	}
}

func (s *Service) dropTimer(taskID string) {
	s.mu.Lock()
	delete(s.timers, taskID)
	s.mu.Unlock()
}
