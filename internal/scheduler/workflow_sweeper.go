package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/repository"
	"github.com/vfg2006/adcp-dispatch-api/internal/config"
	"github.com/vfg2006/adcp-dispatch-api/internal/usecases/approving"
)

// WorkflowSweeperConfig representa a configuração do varredor de tasks
type WorkflowSweeperConfig struct {
	CronSchedule string
	SweepEnabled bool
}

// WorkflowSweeperService conclui tasks assíncronas cujo timer de conclusão
// automática se perdeu em um reinício do processo. O timer em memória cobre
// o caminho normal; o varredor é a rede de segurança que garante que nenhuma
// task com prazo vencido fique pendente para sempre.
type WorkflowSweeperService struct {
	scheduler            *gocron.Scheduler
	config               WorkflowSweeperConfig
	taskRepo             repository.WorkflowTaskRepository
	engine               approving.Engine
	sweepRunning         bool
	sweepMutex           sync.Mutex
	lastSweepStartedAt   time.Time
	lastSweepCompletedAt time.Time
	lastSweepCount       int
}

// NewWorkflowSweeperService cria uma nova instância do varredor de tasks
func NewWorkflowSweeperService(
	taskRepo repository.WorkflowTaskRepository,
	engine approving.Engine,
	appConfig *config.Config,
) *WorkflowSweeperService {
	sweeperConfig := WorkflowSweeperConfig{
		CronSchedule: appConfig.WorkflowSweep.CronSchedule,
		SweepEnabled: appConfig.WorkflowSweep.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": sweeperConfig.CronSchedule,
		"sweep_enabled": sweeperConfig.SweepEnabled,
	}).Info("Configuração do varredor de tasks de workflow carregada")

	return &WorkflowSweeperService{
		scheduler:    scheduler,
		config:       sweeperConfig,
		taskRepo:     taskRepo,
		engine:       engine,
		sweepRunning: false,
	}
}

// Start inicia o agendador
func (s *WorkflowSweeperService) Start(ctx context.Context) error {
	if !s.config.SweepEnabled {
		logrus.Info("Varredura de tasks de workflow desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando varredor de tasks de workflow")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.sweepOverdueTasks()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar varredura de tasks de workflow: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando varredor de tasks de workflow")
		s.scheduler.Stop()
	}()

	return nil
}

// sweepOverdueTasks conclui todas as tasks não terminais com prazo de
// conclusão automática vencido
func (s *WorkflowSweeperService) sweepOverdueTasks() {
	s.sweepMutex.Lock()
	if s.sweepRunning {
		s.sweepMutex.Unlock()
		logrus.Info("Varredura de tasks já em andamento, ignorando")
		return
	}
	s.sweepRunning = true
	s.lastSweepStartedAt = time.Now()
	s.sweepMutex.Unlock()

	defer func() {
		s.sweepMutex.Lock()
		s.sweepRunning = false
		s.lastSweepCompletedAt = time.Now()
		s.sweepMutex.Unlock()
	}()

	tasks, err := s.taskRepo.ListOverdueTasks(time.Now())
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar tasks com prazo vencido")
		return
	}

	if len(tasks) == 0 {
		logrus.Debug("Nenhuma task com prazo de conclusão automática vencido")
		s.sweepMutex.Lock()
		s.lastSweepCount = 0
		s.sweepMutex.Unlock()
		return
	}

	logrus.WithField("tasks", len(tasks)).Info("Concluindo tasks com prazo de conclusão automática vencido")

	// AutoComplete é idempotente: uma conclusão explícita que chegue durante
	// a varredura vence e a chamada vira no-op
	for _, task := range tasks {
		s.engine.AutoComplete(task.ID)
	}

	s.sweepMutex.Lock()
	s.lastSweepCount = len(tasks)
	s.sweepMutex.Unlock()
}

// TriggerManualSync inicia manualmente uma varredura de tasks
func (s *WorkflowSweeperService) TriggerManualSync() {
	logrus.Info("Iniciando varredura manual de tasks de workflow")
	go s.sweepOverdueTasks()
}

// GetStatus retorna o status atual do agendador
func (s *WorkflowSweeperService) GetStatus() map[string]any {
	s.sweepMutex.Lock()
	defer s.sweepMutex.Unlock()

	return map[string]any{
		"enabled":                 s.config.SweepEnabled,
		"cron_schedule":           s.config.CronSchedule,
		"sweep_running":           s.sweepRunning,
		"last_sweep_started_at":   s.lastSweepStartedAt,
		"last_sweep_completed_at": s.lastSweepCompletedAt,
		"last_sweep_task_count":   s.lastSweepCount,
	}
}
