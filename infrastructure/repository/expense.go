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
	expensesTable = "expenses e"
)

type ExpenseRepository interface {
	ListByWindow(window domain.TimeWindow) ([]*domain.ExpenseRecord, error)
	Create(expense *domain.ExpenseRecord) error
}

type expenseRepository struct {
	conn *postgres.Connection
}

func NewExpenseRepository(conn *postgres.Connection) ExpenseRepository {
	return &expenseRepository{
		conn: conn,
	}
}

func (r *expenseRepository) ListByWindow(window domain.TimeWindow) ([]*domain.ExpenseRecord, error) {
	builder := squirrel.
		Select("e.id, e.category, e.amount, e.date, e.note, e.created_at").
		From(expensesTable).
		Where(squirrel.Expr("COALESCE(e.date, e.created_at) >= ?", window.Start)).
		OrderBy("COALESCE(e.date, e.created_at) ASC")

	if window.End != nil {
		builder = builder.Where(squirrel.Expr("COALESCE(e.date, e.created_at) <= ?", *window.End))
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

	expenses := make([]*domain.ExpenseRecord, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear despesa: %w", err)
		}
		expenses = append(expenses, expense)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return expenses, nil
}

func (r *expenseRepository) Create(expense *domain.ExpenseRecord) error {
	var date interface{}
	if expense.Date != nil {
		date = *expense.Date
	}

	query, args, err := squirrel.
		Insert("expenses").
		Columns("category", "amount", "date", "note").
		Values(expense.Category, expense.Amount, date, expense.Note).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(query, args...).Scan(&expense.ID, &expense.CreatedAt); err != nil {
		return fmt.Errorf("erro ao inserir despesa: %w", err)
	}

	return nil
}

func scanExpense(rows *sql.Rows) (*domain.ExpenseRecord, error) {
	var (
		expense domain.ExpenseRecord
		date    sql.NullTime
		note    sql.NullString
	)

	err := rows.Scan(
		&expense.ID,
		&expense.Category,
		&expense.Amount,
		&date,
		&note,
		&expense.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if date.Valid {
		expense.Date = &date.Time
	}

	expense.Note = note.String

	return &expense, nil
}
