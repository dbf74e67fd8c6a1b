package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/repository/mocks"
	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
	"go.uber.org/mock/gomock"
)

// fakeEngine registra as conclusões automáticas pedidas pelo varredor.
type fakeEngine struct {
	mu             sync.Mutex
	autoCompleted  []string
	completionHook func(taskID string)
}

func (f *fakeEngine) RunSync(_ context.Context, task *domain.WorkflowTask) (*domain.WorkflowTask, error) {
	return task, nil
}

func (f *fakeEngine) StartAsync(_ context.Context, task *domain.WorkflowTask) (*domain.WorkflowTask, error) {
	return task, nil
}

func (f *fakeEngine) CompleteTask(_ context.Context, _ string, _ bool, _ string) (*domain.WorkflowTask, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeEngine) FailTask(_ context.Context, _ string, _ string) error { return nil }

func (f *fakeEngine) RequireInput(_ context.Context, _ string, _ string) (*domain.WorkflowTask, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeEngine) AutoComplete(taskID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.autoCompleted = append(f.autoCompleted, taskID)
	if f.completionHook != nil {
		f.completionHook(taskID)
	}
}

func (f *fakeEngine) GetTask(_ string) (*domain.WorkflowTask, error) {
	return nil, domain.ErrTaskNotFound
}

func (f *fakeEngine) OnCompletion(fn func(taskID string)) { f.completionHook = fn }

func (f *fakeEngine) Shutdown() {}

func (f *fakeEngine) completed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.autoCompleted...)
}

func TestWorkflowSweeperService_sweepOverdueTasks(t *testing.T) {
	overdueAt := time.Now().Add(-time.Hour)

	tests := []struct {
		name          string
		tasks         []*domain.WorkflowTask
		listErr       error
		wantCompleted []string
	}{
		{
			name: "Tasks com prazo vencido - deve concluir cada uma pelo motor",
			tasks: []*domain.WorkflowTask{
				{ID: "task_aaa111", Status: domain.TaskStatusWorking, AutoCompleteAt: &overdueAt},
				{ID: "task_bbb222", Status: domain.TaskStatusPending, AutoCompleteAt: &overdueAt},
			},
			wantCompleted: []string{"task_aaa111", "task_bbb222"},
		},
		{
			name:          "Nenhuma task vencida - não deve chamar o motor",
			tasks:         nil,
			wantCompleted: nil,
		},
		{
			name:          "Erro ao listar tasks - deve abortar a varredura sem concluir nada",
			listErr:       errors.New("connection refused"),
			wantCompleted: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTaskRepo := mocks.NewMockWorkflowTaskRepository(ctrl)
			mockTaskRepo.EXPECT().
				ListOverdueTasks(gomock.Any()).
				Return(tt.tasks, tt.listErr)

			engine := &fakeEngine{}
			service := &WorkflowSweeperService{
				config:   WorkflowSweeperConfig{SweepEnabled: true},
				taskRepo: mockTaskRepo,
				engine:   engine,
			}

			service.sweepOverdueTasks()

			assert.Equal(t, tt.wantCompleted, engine.completed())

			status := service.GetStatus()
			assert.False(t, status["sweep_running"].(bool))
			if tt.listErr == nil {
				assert.Equal(t, len(tt.wantCompleted), status["last_sweep_task_count"])
			}
		})
	}
}

func TestWorkflowSweeperService_varreduraConcorrenteIgnorada(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma chamada esperada: a segunda varredura deve desistir na entrada
	mockTaskRepo := mocks.NewMockWorkflowTaskRepository(ctrl)

	service := &WorkflowSweeperService{
		config:       WorkflowSweeperConfig{SweepEnabled: true},
		taskRepo:     mockTaskRepo,
		engine:       &fakeEngine{},
		sweepRunning: true,
	}

	service.sweepOverdueTasks()

	status := service.GetStatus()
	assert.True(t, status["sweep_running"].(bool))
}
