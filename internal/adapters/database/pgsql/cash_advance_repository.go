package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hroffice/hroffice_backend/internal/apperrors"
	"github.com/hroffice/hroffice_backend/internal/core/domain"
	portsrepo "github.com/hroffice/hroffice_backend/internal/core/ports/repositories"
	"github.com/hroffice/hroffice_backend/internal/utils/pagination"
)

type PgxCashAdvanceRepository struct {
	pool *pgxpool.Pool
}

// NewPgxCashAdvanceRepository creates a new repository for cash advance data.
func NewPgxCashAdvanceRepository(pool *pgxpool.Pool) portsrepo.CashAdvanceRepository {
	return &PgxCashAdvanceRepository{pool: pool}
}

var _ portsrepo.CashAdvanceRepository = (*PgxCashAdvanceRepository)(nil)

const cashAdvanceColumns = `cash_advance_id, employee_id, amount, purpose, status, advance_type, date_needed,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCashAdvance(row pgx.Row) (*domain.CashAdvance, error) {
	var ca domain.CashAdvance
	err := row.Scan(
		&ca.CashAdvanceID,
		&ca.EmployeeID,
		&ca.Amount,
		&ca.Purpose,
		&ca.Status,
		&ca.Type,
		&ca.DateNeeded,
		&ca.CreatedAt,
		&ca.CreatedBy,
		&ca.LastUpdatedAt,
		&ca.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &ca, nil
}

// SaveCashAdvance inserts a new cash advance request.
func (r *PgxCashAdvanceRepository) SaveCashAdvance(ctx context.Context, advance domain.CashAdvance) error {
	query := `
		INSERT INTO cash_advances (cash_advance_id, employee_id, amount, purpose, status, advance_type, date_needed,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		advance.CashAdvanceID,
		advance.EmployeeID,
		advance.Amount,
		advance.Purpose,
		advance.Status,
		advance.Type,
		advance.DateNeeded,
		advance.CreatedAt,
		advance.CreatedBy,
		advance.LastUpdatedAt,
		advance.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cash advance %s: %w", advance.CashAdvanceID, err)
	}
	return nil
}

// FindCashAdvanceByID retrieves a cash advance by its ID.
func (r *PgxCashAdvanceRepository) FindCashAdvanceByID(ctx context.Context, cashAdvanceID string) (*domain.CashAdvance, error) {
	query := `SELECT ` + cashAdvanceColumns + ` FROM cash_advances WHERE cash_advance_id = $1;`

	advance, err := scanCashAdvance(r.pool.QueryRow(ctx, query, cashAdvanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cash advance by ID %s: %w", cashAdvanceID, err)
	}
	return advance, nil
}

// UpdateCashAdvanceStatus records an approve/reject decision on the advance.
func (r *PgxCashAdvanceRepository) UpdateCashAdvanceStatus(ctx context.Context, cashAdvanceID string, status domain.CashAdvanceStatus, updatedBy string) error {
	query := `
		UPDATE cash_advances
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE cash_advance_id = $4;
	`
	cmd, err := r.pool.Exec(ctx, query, status, time.Now().UTC(), updatedBy, cashAdvanceID)
	if err != nil {
		return fmt.Errorf("failed to update cash advance %s: %w", cashAdvanceID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListCashAdvancesByEmployee returns a keyset-paginated page of one employee's
// advances, newest date-needed first.
func (r *PgxCashAdvanceRepository) ListCashAdvancesByEmployee(ctx context.Context, employeeID string, limit int, nextToken *string) ([]domain.CashAdvance, *string, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + cashAdvanceColumns + ` FROM cash_advances WHERE employee_id = $1`)
	args := []any{employeeID}
	argPos := 2

	if nextToken != nil && *nextToken != "" {
		dateNeeded, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		sb.WriteString(fmt.Sprintf(" AND (date_needed, created_at) < ($%d, $%d)", argPos, argPos+1))
		args = append(args, dateNeeded, createdAt)
		argPos += 2
	}

	sb.WriteString(fmt.Sprintf(" ORDER BY date_needed DESC, created_at DESC LIMIT $%d;", argPos))
	args = append(args, limit+1)

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query cash advances for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	advances := []domain.CashAdvance{}
	for rows.Next() {
		ca, err := scanCashAdvance(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan cash advance row: %w", err)
		}
		advances = append(advances, *ca)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating cash advance rows: %w", err)
	}

	var token *string
	if len(advances) > limit {
		advances = advances[:limit]
		last := advances[len(advances)-1]
		t := pagination.EncodeToken(last.DateNeeded, last.CreatedAt)
		token = &t
	}
	return advances, token, nil
}
