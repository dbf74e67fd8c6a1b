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
	principalsTable = "principals pr"
)

type PrincipalRepository interface {
	GetPrincipalByID(principalID string) (*domain.Principal, error)
	ListPrincipals() ([]*domain.Principal, error)
	SaveOrUpdatePrincipal(principal *domain.Principal) error
}

type principalRepository struct {
	conn *postgres.Connection
}

func NewPrincipalRepository(conn *postgres.Connection) PrincipalRepository {
	return &principalRepository{
		conn: conn,
	}
}

const principalColumns = "pr.tenant_id, pr.principal_id, pr.name, pr.adapter_type, pr.platform_config, pr.api_key_hash, pr.active, pr.created_at, pr.updated_at"

func (r *principalRepository) GetPrincipalByID(principalID string) (*domain.Principal, error) {
	query, args, err := squirrel.
		Select(principalColumns).
		From(principalsTable).
		Where(squirrel.Eq{"pr.principal_id": principalID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	principal, err := r.scanPrincipal(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear principal: %w", err)
	}

	return principal, nil
}

func (r *principalRepository) ListPrincipals() ([]*domain.Principal, error) {
	query, args, err := squirrel.
		Select(principalColumns).
		From(principalsTable).
		OrderBy("pr.tenant_id ASC, pr.principal_id ASC").
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

	principals := make([]*domain.Principal, 0)
	for rows.Next() {
		principal := &domain.Principal{}
		var configJSON []byte

		err := rows.Scan(
			&principal.TenantID,
			&principal.PrincipalID,
			&principal.Name,
			&principal.AdapterType,
			&configJSON,
			&principal.APIKeyHash,
			&principal.Active,
			&principal.CreatedAt,
			&principal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear principals: %w", err)
		}

		if configJSON != nil {
			if err := json.Unmarshal(configJSON, &principal.PlatformConfig); err != nil {
				return nil, fmt.Errorf("erro ao deserializar JSON de platform_config: %w", err)
			}
		}

		principals = append(principals, principal)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return principals, nil
}

func (r *principalRepository) SaveOrUpdatePrincipal(principal *domain.Principal) error {
	var configJSON []byte
	var err error

	if principal.PlatformConfig != nil {
		configJSON, err = json.Marshal(principal.PlatformConfig)
		if err != nil {
			return fmt.Errorf("erro ao serializar platform config para JSON: %w", err)
		}
	}

	query := squirrel.StatementBuilder.
		Insert("principals").
		Columns("tenant_id", "principal_id", "name", "adapter_type", "platform_config", "api_key_hash", "active").
		Values(
			principal.TenantID,
			principal.PrincipalID,
			principal.Name,
			principal.AdapterType,
			configJSON,
			principal.APIKeyHash,
			principal.Active,
		).
		Suffix(`
			ON CONFLICT (principal_id) DO UPDATE SET
				tenant_id = EXCLUDED.tenant_id,
				name = EXCLUDED.name,
				adapter_type = EXCLUDED.adapter_type,
				platform_config = EXCLUDED.platform_config,
				api_key_hash = EXCLUDED.api_key_hash,
				active = EXCLUDED.active,
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

func (r *principalRepository) scanPrincipal(row *sql.Row) (*domain.Principal, error) {
	principal := &domain.Principal{}
	var configJSON []byte

	err := row.Scan(
		&principal.TenantID,
		&principal.PrincipalID,
		&principal.Name,
		&principal.AdapterType,
		&configJSON,
		&principal.APIKeyHash,
		&principal.Active,
		&principal.CreatedAt,
		&principal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if configJSON != nil {
		if err := json.Unmarshal(configJSON, &principal.PlatformConfig); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de platform_config: %w", err)
		}
	}

	return principal, nil
}
