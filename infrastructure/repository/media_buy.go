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
	mediaBuysTable = "media_buys mb"
)

type MediaBuyRepository interface {
	CreateMediaBuy(record *domain.MediaBuyRecord) error
	GetMediaBuyByID(mediaBuyID string) (*domain.MediaBuyRecord, error)
	UpdateMediaBuy(record *domain.MediaBuyRecord) error
	ListMediaBuysByStatus(status domain.MediaBuyStatus) ([]*domain.MediaBuyRecord, error)
	ListMediaBuysByPrincipal(tenantID, principalID string) ([]*domain.MediaBuyRecord, error)
}

type mediaBuyRepository struct {
	conn *postgres.Connection
}

func NewMediaBuyRepository(conn *postgres.Connection) MediaBuyRepository {
	return &mediaBuyRepository{
		conn: conn,
	}
}

const mediaBuyColumns = "mb.id, mb.platform_buy_id, mb.tenant_id, mb.principal_id, mb.buyer_ref, mb.po_number, mb.status, mb.native_status, mb.total_budget, mb.currency, mb.start_time, mb.end_time, mb.packages, mb.creatives, mb.performance_indexes, mb.created_at, mb.updated_at"

func (r *mediaBuyRepository) CreateMediaBuy(record *domain.MediaBuyRecord) error {
	packagesJSON, creativesJSON, indexesJSON, err := serializeMediaBuyJSON(record)
	if err != nil {
		return err
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("media_buys").
		Columns(
			"id", "platform_buy_id", "tenant_id", "principal_id", "buyer_ref",
			"po_number", "status", "native_status", "total_budget", "currency",
			"start_time", "end_time", "packages", "creatives", "performance_indexes",
		).
		Values(
			record.ID,
			record.PlatformBuyID,
			record.TenantID,
			record.PrincipalID,
			record.BuyerRef,
			record.PONumber,
			record.Status,
			record.NativeStatus,
			record.TotalBudget,
			record.Currency,
			record.StartTime,
			record.EndTime,
			packagesJSON,
			creativesJSON,
			indexesJSON,
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

func (r *mediaBuyRepository) GetMediaBuyByID(mediaBuyID string) (*domain.MediaBuyRecord, error) {
	query, args, err := squirrel.
		Select(mediaBuyColumns).
		From(mediaBuysTable).
		Where(squirrel.Eq{"mb.id": mediaBuyID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	record, err := r.scanMediaBuy(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear media buy: %w", err)
	}

	return record, nil
}

func (r *mediaBuyRepository) UpdateMediaBuy(record *domain.MediaBuyRecord) error {
	packagesJSON, creativesJSON, indexesJSON, err := serializeMediaBuyJSON(record)
	if err != nil {
		return err
	}

	query, args, err := squirrel.StatementBuilder.
		Update("media_buys").
		Set("platform_buy_id", record.PlatformBuyID).
		Set("status", record.Status).
		Set("native_status", record.NativeStatus).
		Set("total_budget", record.TotalBudget).
		Set("end_time", record.EndTime).
		Set("packages", packagesJSON).
		Set("creatives", creativesJSON).
		Set("performance_indexes", indexesJSON).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": record.ID}).
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
		return domain.ErrMediaBuyNotFound
	}

	return nil
}

func (r *mediaBuyRepository) ListMediaBuysByStatus(status domain.MediaBuyStatus) ([]*domain.MediaBuyRecord, error) {
	return r.listMediaBuys(squirrel.Eq{"mb.status": status})
}

func (r *mediaBuyRepository) ListMediaBuysByPrincipal(tenantID, principalID string) ([]*domain.MediaBuyRecord, error) {
	return r.listMediaBuys(squirrel.Eq{"mb.tenant_id": tenantID, "mb.principal_id": principalID})
}

func (r *mediaBuyRepository) listMediaBuys(whereClause map[string]interface{}) ([]*domain.MediaBuyRecord, error) {
	query, args, err := squirrel.
		Select(mediaBuyColumns).
		From(mediaBuysTable).
		Where(whereClause).
		OrderBy("mb.created_at ASC").
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

	records := make([]*domain.MediaBuyRecord, 0)
	for rows.Next() {
		record, err := r.scanMediaBuyRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear media buys: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

func (r *mediaBuyRepository) scanMediaBuy(row *sql.Row) (*domain.MediaBuyRecord, error) {
	record := &domain.MediaBuyRecord{}
	var packagesJSON, creativesJSON, indexesJSON []byte

	err := row.Scan(
		&record.ID,
		&record.PlatformBuyID,
		&record.TenantID,
		&record.PrincipalID,
		&record.BuyerRef,
		&record.PONumber,
		&record.Status,
		&record.NativeStatus,
		&record.TotalBudget,
		&record.Currency,
		&record.StartTime,
		&record.EndTime,
		&packagesJSON,
		&creativesJSON,
		&indexesJSON,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := deserializeMediaBuyJSON(record, packagesJSON, creativesJSON, indexesJSON); err != nil {
		return nil, err
	}

	return record, nil
}

func (r *mediaBuyRepository) scanMediaBuyRows(rows *sql.Rows) (*domain.MediaBuyRecord, error) {
	record := &domain.MediaBuyRecord{}
	var packagesJSON, creativesJSON, indexesJSON []byte

	err := rows.Scan(
		&record.ID,
		&record.PlatformBuyID,
		&record.TenantID,
		&record.PrincipalID,
		&record.BuyerRef,
		&record.PONumber,
		&record.Status,
		&record.NativeStatus,
		&record.TotalBudget,
		&record.Currency,
		&record.StartTime,
		&record.EndTime,
		&packagesJSON,
		&creativesJSON,
		&indexesJSON,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := deserializeMediaBuyJSON(record, packagesJSON, creativesJSON, indexesJSON); err != nil {
		return nil, err
	}

	return record, nil
}

func serializeMediaBuyJSON(record *domain.MediaBuyRecord) ([]byte, []byte, []byte, error) {
	packagesJSON, err := json.Marshal(record.Packages)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("erro ao serializar pacotes para JSON: %w", err)
	}

	var creativesJSON []byte
	if record.Creatives != nil {
		creativesJSON, err = json.Marshal(record.Creatives)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("erro ao serializar criativos para JSON: %w", err)
		}
	}

	var indexesJSON []byte
	if record.PerformanceIndexes != nil {
		indexesJSON, err = json.Marshal(record.PerformanceIndexes)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("erro ao serializar índices para JSON: %w", err)
		}
	}

	return packagesJSON, creativesJSON, indexesJSON, nil
}

func deserializeMediaBuyJSON(record *domain.MediaBuyRecord, packagesJSON, creativesJSON, indexesJSON []byte) error {
	if packagesJSON != nil {
		if err := json.Unmarshal(packagesJSON, &record.Packages); err != nil {
			return fmt.Errorf("erro ao deserializar JSON de packages: %w", err)
		}
	}

	if creativesJSON != nil {
		if err := json.Unmarshal(creativesJSON, &record.Creatives); err != nil {
			return fmt.Errorf("erro ao deserializar JSON de creatives: %w", err)
		}
	}

	if indexesJSON != nil {
		if err := json.Unmarshal(indexesJSON, &record.PerformanceIndexes); err != nil {
			return fmt.Errorf("erro ao deserializar JSON de performance_indexes: %w", err)
		}
	}

	return nil
}
