package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/database/postgres"
	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
)

const (
	workflowTasksTable = "workflow_tasks wt"
)

type WorkflowTaskRepository interface {
	CreateTask(task *domain.WorkflowTask) error
	GetTaskByID(taskID string) (*domain.WorkflowTask, error)
	UpdateTask(task *domain.WorkflowTask) error
	FinishTask(task *domain.WorkflowTask) (bool, error)
	ListOverdueTasks(now time.Time) ([]*domain.WorkflowTask, error)
	ListTasksByMediaBuy(mediaBuyID string) ([]*domain.WorkflowTask, error)
}

type workflowTaskRepository struct {
	conn *postgres.Connection
}

func NewWorkflowTaskRepository(conn *postgres.Connection) WorkflowTaskRepository {
	return &workflowTaskRepository{
		conn: conn,
	}
}

const workflowTaskColumns = "wt.id, wt.operation, wt.tenant_id, wt.principal_id, wt.status, wt.payload, wt.detail, wt.media_buy_id, wt.webhook_url, wt.auto_complete_at, wt.created_at, wt.updated_at, wt.completed_at"

func (r *workflowTaskRepository) CreateTask(task *domain.WorkflowTask) error {
	query, args, err := squirrel.StatementBuilder.
		Insert("workflow_tasks").
		Columns(
			"id", "operation", "tenant_id", "principal_id", "status",
			"payload", "detail", "media_buy_id", "webhook_url", "auto_complete_at",
		).
		Values(
			task.ID,
			task.Operation,
			task.TenantID,
			task.PrincipalID,
			task.Status,
			[]byte(task.Payload),
			task.Detail,
			task.MediaBuyID,
			task.WebhookURL,
			task.AutoCompleteAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *workflowTaskRepository) GetTaskByID(taskID string) (*domain.WorkflowTask, error) {
	query, args, err := squirrel.
		Select(workflowTaskColumns).
		From(workflowTasksTable).
		Where(squirrel.Eq{"wt.id": taskID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	task, err := r.scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear task: %w", err)
	}

	return task, nil
}

func (r *workflowTaskRepository) UpdateTask(task *domain.WorkflowTask) error {
	query, args, err := squirrel.StatementBuilder.
		Update("workflow_tasks").
		Set("status", task.Status).
		Set("detail", task.Detail).
		Set("media_buy_id", task.MediaBuyID).
		Set("auto_complete_at", task.AutoCompleteAt).
		Set("completed_at", task.CompletedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": task.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

// FinishTask grava o estado terminal da task somente se ela ainda não é
// terminal no banco. Devolve false quando outra transição chegou antes:
// a primeira conclusão vence e as demais viram no-op.
func (r *workflowTaskRepository) FinishTask(task *domain.WorkflowTask) (bool, error) {
	query, args, err := squirrel.StatementBuilder.
		Update("workflow_tasks").
		Set("status", task.Status).
		Set("detail", task.Detail).
		Set("completed_at", task.CompletedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": task.ID}).
		Where(squirrel.Eq{"status": []domain.TaskStatus{
			domain.TaskStatusPending,
			domain.TaskStatusWorking,
			domain.TaskStatusInputRequired,
		}}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected > 0, nil
}

// ListOverdueTasks busca as tasks não terminais cujo prazo de conclusão
// automática já passou. Cobre timers perdidos em reinício do processo.
func (r *workflowTaskRepository) ListOverdueTasks(now time.Time) ([]*domain.WorkflowTask, error) {
	query, args, err := squirrel.
		Select(workflowTaskColumns).
		From(workflowTasksTable).
		Where(squirrel.Eq{"wt.status": []domain.TaskStatus{
			domain.TaskStatusPending,
			domain.TaskStatusWorking,
		}}).
		Where(squirrel.NotEq{"wt.auto_complete_at": nil}).
		Where(squirrel.LtOrEq{"wt.auto_complete_at": now}).
		OrderBy("wt.auto_complete_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.listTasks(query, args)
}

func (r *workflowTaskRepository) ListTasksByMediaBuy(mediaBuyID string) ([]*domain.WorkflowTask, error) {
	query, args, err := squirrel.
		Select(workflowTaskColumns).
		From(workflowTasksTable).
		Where(squirrel.Eq{"wt.media_buy_id": mediaBuyID}).
		OrderBy("wt.created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.listTasks(query, args)
}

func (r *workflowTaskRepository) listTasks(query string, args []interface{}) ([]*domain.WorkflowTask, error) {
	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	tasks := make([]*domain.WorkflowTask, 0)
	for rows.Next() {
		task, err := r.scanTaskRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear tasks: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return tasks, nil
}

func (r *workflowTaskRepository) scanTask(row *sql.Row) (*domain.WorkflowTask, error) {
	task := &domain.WorkflowTask{}
	var payload []byte

	err := row.Scan(
		&task.ID,
		&task.Operation,
		&task.TenantID,
		&task.PrincipalID,
		&task.Status,
		&payload,
		&task.Detail,
		&task.MediaBuyID,
		&task.WebhookURL,
		&task.AutoCompleteAt,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Payload = payload
	return task, nil
}

func (r *workflowTaskRepository) scanTaskRows(rows *sql.Rows) (*domain.WorkflowTask, error) {
	task := &domain.WorkflowTask{}
	var payload []byte

	err := rows.Scan(
		&task.ID,
		&task.Operation,
		&task.TenantID,
		&task.PrincipalID,
		&task.Status,
		&payload,
		&task.Detail,
		&task.MediaBuyID,
		&task.WebhookURL,
		&task.AutoCompleteAt,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Payload = payload
	return task, nil
}
