package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/finance-insight-api/infrastructure/database/postgres"
	"github.com/vfg2006/finance-insight-api/internal/domain"
)

const (
	reportSnapshotsTable = "report_snapshots rs"
)

type ReportSnapshotRepository interface {
	GetByPeriod(period string) (*domain.MonthlyReportEntry, error)
	SaveOrUpdate(entry *domain.MonthlyReportEntry) error
	GetAllPeriods() ([]string, error)
}

type reportSnapshotRepository struct {
	conn *postgres.Connection
}

func NewReportSnapshotRepository(conn *postgres.Connection) ReportSnapshotRepository {
	return &reportSnapshotRepository{
		conn: conn,
	}
}

func (r *reportSnapshotRepository) GetByPeriod(period string) (*domain.MonthlyReportEntry, error) {
	query, args, err := squirrel.
		Select("rs.id, rs.period, rs.snapshot, rs.created_at, rs.updated_at").
		From(reportSnapshotsTable).
		Where(squirrel.Eq{"rs.period": period}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var (
		entry        domain.MonthlyReportEntry
		snapshotJSON []byte
	)

	err = r.conn.QueryRow(query, args...).Scan(
		&entry.ID,
		&entry.Period,
		&snapshotJSON,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar snapshot mensal: %w", err)
	}

	if len(snapshotJSON) > 0 {
		entry.Snapshot = &domain.AggregateSnapshot{}
		if err := json.Unmarshal(snapshotJSON, entry.Snapshot); err != nil {
			return nil, fmt.Errorf("erro ao desserializar snapshot: %w", err)
		}
	}

	return &entry, nil
}

func (r *reportSnapshotRepository) SaveOrUpdate(entry *domain.MonthlyReportEntry) error {
	var snapshotJSON []byte
	var err error

	if entry.Snapshot != nil {
		snapshotJSON, err = json.Marshal(entry.Snapshot)
		if err != nil {
			return fmt.Errorf("erro ao serializar snapshot para JSON: %w", err)
		}
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("report_snapshots").
		Columns("period", "snapshot").
		Values(entry.Period, snapshotJSON).
		Suffix(`
			ON CONFLICT (period) DO UPDATE SET
				snapshot = EXCLUDED.snapshot,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao salvar snapshot mensal: %w", err)
	}

	return nil
}

func (r *reportSnapshotRepository) GetAllPeriods() ([]string, error) {
	query, args, err := squirrel.
		Select("rs.period").
		From(reportSnapshotsTable).
		OrderBy("rs.period ASC").
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

	periods := make([]string, 0)
	for rows.Next() {
		var period string
		if err := rows.Scan(&period); err != nil {
			return nil, fmt.Errorf("erro ao escanear período: %w", err)
		}
		periods = append(periods, period)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return periods, nil
}
