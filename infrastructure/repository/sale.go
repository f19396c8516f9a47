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
	salesTable = "sales s"
)

type SaleRepository interface {
	ListByWindow(window domain.TimeWindow) ([]*domain.SaleRecord, error)
	Create(sale *domain.SaleRecord) error
}

type saleRepository struct {
	conn *postgres.Connection
}

func NewSaleRepository(conn *postgres.Connection) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

// ListByWindow retorna as vendas cuja data cai dentro da janela. Vendas sem
// data de transação entram pela data de criação, o mesmo fallback usado no
// agrupamento mensal do agregador.
func (r *saleRepository) ListByWindow(window domain.TimeWindow) ([]*domain.SaleRecord, error) {
	builder := squirrel.
		Select("s.id, s.product_id, s.product_name, s.model, s.quantity, s.unit_price, s.date, s.created_at").
		From(salesTable).
		Where(squirrel.Expr("COALESCE(s.date, s.created_at) >= ?", window.Start)).
		OrderBy("COALESCE(s.date, s.created_at) ASC")

	if window.End != nil {
		builder = builder.Where(squirrel.Expr("COALESCE(s.date, s.created_at) <= ?", *window.End))
	}

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	sales := make([]*domain.SaleRecord, 0)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear venda: %w", err)
		}
		sales = append(sales, sale)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return sales, nil
}

func (r *saleRepository) Create(sale *domain.SaleRecord) error {
	var productID interface{}
	if sale.ProductID != nil {
		productID = *sale.ProductID
	}

	var date interface{}
	if sale.Date != nil {
		date = *sale.Date
	}

	query, args, err := squirrel.
		Insert("sales").
		Columns("product_id", "product_name", "model", "quantity", "unit_price", "date").
		Values(productID, sale.ProductName, sale.Model, sale.Quantity, sale.UnitPrice, date).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(query, args...).Scan(&sale.ID, &sale.CreatedAt); err != nil {
		return fmt.Errorf("erro ao inserir venda: %w", err)
	}

	return nil
}

func scanSale(rows *sql.Rows) (*domain.SaleRecord, error) {
	var (
		sale      domain.SaleRecord
		productID sql.NullInt64
		date      sql.NullTime
	)

	err := rows.Scan(
		&sale.ID,
		&productID,
		&sale.ProductName,
		&sale.Model,
		&sale.Quantity,
		&sale.UnitPrice,
		&date,
		&sale.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if productID.Valid {
		sale.ProductID = &productID.Int64
	}

	if date.Valid {
		sale.Date = &date.Time
	}

	return &sale, nil
}
