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
	deliverySnapshotsTable = "delivery_snapshots ds"
)

type DeliverySnapshotRepository interface {
	SaveOrUpdateSnapshot(snapshot *domain.DeliverySnapshot) error
	GetByMediaBuyAndDate(mediaBuyID string, date time.Time) (*domain.DeliverySnapshot, error)
	ListByMediaBuy(mediaBuyID string, startDate, endDate time.Time) ([]*domain.DeliverySnapshot, error)
}

type deliverySnapshotRepository struct {
	conn *postgres.Connection
}

func NewDeliverySnapshotRepository(conn *postgres.Connection) DeliverySnapshotRepository {
	return &deliverySnapshotRepository{
		conn: conn,
	}
}

func (r *deliverySnapshotRepository) SaveOrUpdateSnapshot(snapshot *domain.DeliverySnapshot) error {
	query := squirrel.StatementBuilder.
		Insert("delivery_snapshots").
		Columns("media_buy_id", "date", "impressions", "spend").
		Values(
			snapshot.MediaBuyID,
			snapshot.Date.Format("2006-01-02"),
			snapshot.Impressions,
			snapshot.Spend,
		).
		Suffix(`
			ON CONFLICT (media_buy_id, date) DO UPDATE SET
				impressions = EXCLUDED.impressions,
				spend = EXCLUDED.spend,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *deliverySnapshotRepository) GetByMediaBuyAndDate(mediaBuyID string, date time.Time) (*domain.DeliverySnapshot, error) {
	query, args, err := squirrel.
		Select("ds.id, ds.media_buy_id, ds.date, ds.impressions, ds.spend, ds.created_at, ds.updated_at").
		From(deliverySnapshotsTable).
		Where(squirrel.Eq{"ds.media_buy_id": mediaBuyID, "ds.date": date.Format("2006-01-02")}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	snapshot, err := r.scanSnapshot(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
	}

	return snapshot, nil
}

func (r *deliverySnapshotRepository) ListByMediaBuy(mediaBuyID string, startDate, endDate time.Time) ([]*domain.DeliverySnapshot, error) {
	query, args, err := squirrel.
		Select("ds.id, ds.media_buy_id, ds.date, ds.impressions, ds.spend, ds.created_at, ds.updated_at").
		From(deliverySnapshotsTable).
		Where(squirrel.Eq{"ds.media_buy_id": mediaBuyID}).
		Where(squirrel.GtOrEq{"ds.date": startDate.Format("2006-01-02")}).
		Where(squirrel.LtOrEq{"ds.date": endDate.Format("2006-01-02")}).
		OrderBy("ds.date ASC").
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

	snapshots := make([]*domain.DeliverySnapshot, 0)
	for rows.Next() {
		snapshot := &domain.DeliverySnapshot{}

		err := rows.Scan(
			&snapshot.ID,
			&snapshot.MediaBuyID,
			&snapshot.Date,
			&snapshot.Impressions,
			&snapshot.Spend,
			&snapshot.CreatedAt,
			&snapshot.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear snapshots: %w", err)
		}

		snapshots = append(snapshots, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return snapshots, nil
}

func (r *deliverySnapshotRepository) scanSnapshot(row *sql.Row) (*domain.DeliverySnapshot, error) {
	snapshot := &domain.DeliverySnapshot{}

	err := row.Scan(
		&snapshot.ID,
		&snapshot.MediaBuyID,
		&snapshot.Date,
		&snapshot.Impressions,
		&snapshot.Spend,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}
