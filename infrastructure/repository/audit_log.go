package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/database/postgres"
	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
)

const (
	auditEventsTable = "audit_events ae"
)

type AuditLogRepository interface {
	SaveEvent(event *domain.AuditEvent) error
	ListEventsByMediaBuy(mediaBuyID string) ([]*domain.AuditEvent, error)
}

type auditLogRepository struct {
	conn *postgres.Connection
}

func NewAuditLogRepository(conn *postgres.Connection) AuditLogRepository {
	return &auditLogRepository{
		conn: conn,
	}
}

func (r *auditLogRepository) SaveEvent(event *domain.AuditEvent) error {
	var detailJSON []byte
	var err error

	if event.Detail != nil {
		detailJSON, err = json.Marshal(event.Detail)
		if err != nil {
			return fmt.Errorf("erro ao serializar detail para JSON: %w", err)
		}
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("audit_events").
		Columns("operation", "tenant_id", "principal_id", "media_buy_id", "success", "detail", "occurred_at").
		Values(
			event.Operation,
			event.TenantID,
			event.PrincipalID,
			event.MediaBuyID,
			event.Success,
			detailJSON,
			event.OccurredAt,
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

func (r *auditLogRepository) ListEventsByMediaBuy(mediaBuyID string) ([]*domain.AuditEvent, error) {
	query, args, err := squirrel.
		Select("ae.id, ae.operation, ae.tenant_id, ae.principal_id, ae.media_buy_id, ae.success, ae.detail, ae.occurred_at").
		From(auditEventsTable).
		Where(squirrel.Eq{"ae.media_buy_id": mediaBuyID}).
		OrderBy("ae.occurred_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	auditEvents := make([]*domain.AuditEvent, 0)
	for rows.Next() {
		event := &domain.AuditEvent{}
		var detailJSON []byte

		err := rows.Scan(
			&event.ID,
			&event.Operation,
			&event.TenantID,
			&event.PrincipalID,
			&event.MediaBuyID,
			&event.Success,
			&detailJSON,
			&event.OccurredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear eventos: %w", err)
		}

		if detailJSON != nil {
			if err := json.Unmarshal(detailJSON, &event.Detail); err != nil {
				return nil, fmt.Errorf("erro ao deserializar JSON de detail: %w", err)
			}
		}

		auditEvents = append(auditEvents, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return auditEvents, nil
}
