package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/finance-insight-api/infrastructure/database/postgres"
	"github.com/vfg2006/finance-insight-api/internal/domain"
)

const (
	productsTable = "products p"
)

type ProductRepository interface {
	ListAll() ([]*domain.ProductCostRecord, error)
	GetByID(id int64) (*domain.ProductCostRecord, error)
	Create(product *domain.ProductCostRecord) error
	UpdateCost(id int64, avgUnitCost float64) error
}

type productRepository struct {
	conn *postgres.Connection
}

func NewProductRepository(conn *postgres.Connection) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

// ListAll retorna o catálogo completo, sem filtro de janela: vendas de um
// período podem referenciar produtos cadastrados fora dele.
func (r *productRepository) ListAll() ([]*domain.ProductCostRecord, error) {
	query, args, err := squirrel.
		Select("p.id, p.code, p.name, p.model, p.avg_unit_cost, p.created_at, p.updated_at").
		From(productsTable).
		OrderBy("p.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.ProductCostRecord, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear produto: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return products, nil
}

func (r *productRepository) GetByID(id int64) (*domain.ProductCostRecord, error) {
	query, args, err := squirrel.
		Select("p.id, p.code, p.name, p.model, p.avg_unit_cost, p.created_at, p.updated_at").
		From(productsTable).
		Where(squirrel.Eq{"p.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var (
		product domain.ProductCostRecord
		model   sql.NullString
	)

	err = r.conn.QueryRow(query, args...).Scan(
		&product.ID,
		&product.Code,
		&product.Name,
		&model,
		&product.AvgUnitCost,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar produto: %w", err)
	}

	product.Model = model.String

	return &product, nil
}

func (r *productRepository) Create(product *domain.ProductCostRecord) error {
	query, args, err := squirrel.
		Insert("products").
		Columns("code", "name", "model", "avg_unit_cost").
		Values(product.Code, product.Name, product.Model, product.AvgUnitCost).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(query, args...).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt); err != nil {
		return fmt.Errorf("erro ao inserir produto: %w", err)
	}

	return nil
}

func (r *productRepository) UpdateCost(id int64, avgUnitCost float64) error {
	query, args, err := squirrel.
		Update("products").
		Set("avg_unit_cost", avgUnitCost).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar custo do produto: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao verificar linhas afetadas: %w", err)
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func scanProduct(rows *sql.Rows) (*domain.ProductCostRecord, error) {
	var (
		product domain.ProductCostRecord
		model   sql.NullString
	)

	err := rows.Scan(
		&product.ID,
		&product.Code,
		&product.Name,
		&model,
		&product.AvgUnitCost,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.Model = model.String

	return &product, nil
}
