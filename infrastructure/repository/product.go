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
	productsTable = "products p"
)

type ProductRepository interface {
	GetProductByID(tenantID, productID string) (*domain.Product, error)
	ListProducts(tenantID string) ([]*domain.Product, error)
	SaveOrUpdateProduct(tenantID string, product *domain.Product) error
}

type productRepository struct {
	conn *postgres.Connection
}

func NewProductRepository(conn *postgres.Connection) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

func (r *productRepository) GetProductByID(tenantID, productID string) (*domain.Product, error) {
	query, args, err := squirrel.
		Select("p.id, p.name, p.description, p.delivery_type, p.formats, p.pricing_options, p.created_at, p.updated_at").
		From(productsTable).
		Where(squirrel.Eq{"p.tenant_id": tenantID, "p.id": productID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	product, err := r.scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear produto: %w", err)
	}

	return product, nil
}

func (r *productRepository) ListProducts(tenantID string) ([]*domain.Product, error) {
	query, args, err := squirrel.
		Select("p.id, p.name, p.description, p.delivery_type, p.formats, p.pricing_options, p.created_at, p.updated_at").
		From(productsTable).
		Where(squirrel.Eq{"p.tenant_id": tenantID}).
		OrderBy("p.name ASC").
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

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product := &domain.Product{}
		var formatsJSON, pricingOptionsJSON []byte

		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.DeliveryType,
			&formatsJSON,
			&pricingOptionsJSON,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear produtos: %w", err)
		}

		if err := deserializeProductJSON(product, formatsJSON, pricingOptionsJSON); err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return products, nil
}

func (r *productRepository) SaveOrUpdateProduct(tenantID string, product *domain.Product) error {
	pricingOptionsJSON, err := json.Marshal(product.PricingOptions)
	if err != nil {
		return fmt.Errorf("erro ao serializar pricing options para JSON: %w", err)
	}

	var formatsJSON []byte
	if product.Formats != nil {
		formatsJSON, err = json.Marshal(product.Formats)
		if err != nil {
			return fmt.Errorf("erro ao serializar formats para JSON: %w", err)
		}
	}

	query := squirrel.StatementBuilder.
		Insert("products").
		Columns("id", "tenant_id", "name", "description", "delivery_type", "formats", "pricing_options").
		Values(
			product.ID,
			tenantID,
			product.Name,
			product.Description,
			product.DeliveryType,
			formatsJSON,
			pricingOptionsJSON,
		).
		Suffix(`
			ON CONFLICT (id, tenant_id) DO UPDATE SET
				name = EXCLUDED.name,
				description = EXCLUDED.description,
				delivery_type = EXCLUDED.delivery_type,
				formats = EXCLUDED.formats,
				pricing_options = EXCLUDED.pricing_options,
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

func (r *productRepository) scanProduct(row *sql.Row) (*domain.Product, error) {
	product := &domain.Product{}
	var formatsJSON, pricingOptionsJSON []byte

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.DeliveryType,
		&formatsJSON,
		&pricingOptionsJSON,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := deserializeProductJSON(product, formatsJSON, pricingOptionsJSON); err != nil {
		return nil, err
	}

	return product, nil
}

func deserializeProductJSON(product *domain.Product, formatsJSON, pricingOptionsJSON []byte) error {
	if formatsJSON != nil {
		if err := json.Unmarshal(formatsJSON, &product.Formats); err != nil {
			return fmt.Errorf("erro ao deserializar JSON de formats: %w", err)
		}
	}

	if pricingOptionsJSON != nil {
		if err := json.Unmarshal(pricingOptionsJSON, &product.PricingOptions); err != nil {
			return fmt.Errorf("erro ao deserializar JSON de pricing_options: %w", err)
		}
	}

	return nil
}
