package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hroffice/hroffice_backend/internal/apperrors"
	"github.com/hroffice/hroffice_backend/internal/core/domain"
	portsrepo "github.com/hroffice/hroffice_backend/internal/core/ports/repositories"
	"github.com/hroffice/hroffice_backend/internal/utils/pagination"
)

const pgUniqueViolation = "23505"

type PgxLiquidationRepository struct {
	pool *pgxpool.Pool
}

// NewPgxLiquidationRepository creates a new repository for liquidation data.
func NewPgxLiquidationRepository(pool *pgxpool.Pool) portsrepo.LiquidationRepository {
	return &PgxLiquidationRepository{pool: pool}
}

var _ portsrepo.LiquidationRepository = (*PgxLiquidationRepository)(nil)

const liquidationColumns = `liquidation_id, cash_advance_id, employee_id, store_id, ticket_id, liquidation_date, remarks, status,
	cash_advance_amount, total_amount, return_to_company, reimbursement,
	level1_reviewed_by, level1_reviewed_at, level1_comment,
	level2_reviewed_by, level2_reviewed_at, level2_comment,
	version, deleted_at, created_at, created_by, last_updated_at, last_updated_by`

// scanLiquidation reads one header row, reassembling the nullable level
// review columns into LevelReview records.
func scanLiquidation(row pgx.Row) (*domain.Liquidation, error) {
	var l domain.Liquidation
	var l1By, l1Comment, l2By, l2Comment *string
	var l1At, l2At *time.Time

	err := row.Scan(
		&l.LiquidationID,
		&l.CashAdvanceID,
		&l.EmployeeID,
		&l.StoreID,
		&l.TicketID,
		&l.LiquidationDate,
		&l.Remarks,
		&l.Status,
		&l.CashAdvanceAmount,
		&l.TotalAmount,
		&l.ReturnToCompany,
		&l.Reimbursement,
		&l1By, &l1At, &l1Comment,
		&l2By, &l2At, &l2Comment,
		&l.Version,
		&l.DeletedAt,
		&l.CreatedAt,
		&l.CreatedBy,
		&l.LastUpdatedAt,
		&l.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	if l1By != nil && l1At != nil {
		l.Level1 = &domain.LevelReview{ReviewedBy: *l1By, ReviewedAt: *l1At}
		if l1Comment != nil {
			l.Level1.Comment = *l1Comment
		}
	}
	if l2By != nil && l2At != nil {
		l.Level2 = &domain.LevelReview{ReviewedBy: *l2By, ReviewedAt: *l2At}
		if l2Comment != nil {
			l.Level2.Comment = *l2Comment
		}
	}
	return &l, nil
}

// SaveLiquidation inserts the header, items and attachments within one DB
// transaction. The unique constraint on cash_advance_id enforces the 1:1
// advance reference at the database level.
func (r *PgxLiquidationRepository) SaveLiquidation(ctx context.Context, liquidation domain.Liquidation) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // Ignore rollback error
	}()

	headerQuery := `
		INSERT INTO liquidations (liquidation_id, cash_advance_id, employee_id, store_id, ticket_id, liquidation_date, remarks, status,
			cash_advance_amount, total_amount, return_to_company, reimbursement,
			version, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = tx.Exec(ctx, headerQuery,
		liquidation.LiquidationID,
		liquidation.CashAdvanceID,
		liquidation.EmployeeID,
		liquidation.StoreID,
		liquidation.TicketID,
		liquidation.LiquidationDate,
		liquidation.Remarks,
		liquidation.Status,
		liquidation.CashAdvanceAmount,
		liquidation.TotalAmount,
		liquidation.ReturnToCompany,
		liquidation.Reimbursement,
		liquidation.Version,
		liquidation.CreatedAt,
		liquidation.CreatedBy,
		liquidation.LastUpdatedAt,
		liquidation.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && strings.Contains(pgErr.ConstraintName, "cash_advance") {
			return fmt.Errorf("%w: cash advance %s", apperrors.ErrAlreadyLiquidated, liquidation.CashAdvanceID)
		}
		return fmt.Errorf("failed to insert liquidation %s: %w", liquidation.LiquidationID, err)
	}

	if err := queueChildInserts(ctx, tx, liquidation); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction for liquidation %s: %w", liquidation.LiquidationID, err)
	}
	return nil
}

// queueChildInserts batch-inserts the item and attachment rows of the aggregate.
func queueChildInserts(ctx context.Context, tx pgx.Tx, liquidation domain.Liquidation) error {
	batch := &pgx.Batch{}

	itemQuery := `
		INSERT INTO liquidation_items (item_id, liquidation_id, expense_date, from_destination, to_destination,
			jeep, bus, fx_van, gas, toll, meals, lodging, others, remarks,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	for _, item := range liquidation.Items {
		batch.Queue(itemQuery,
			item.ItemID,
			item.LiquidationID,
			item.ExpenseDate,
			item.FromDestination,
			item.ToDestination,
			item.Jeep,
			item.Bus,
			item.FxVan,
			item.Gas,
			item.Toll,
			item.Meals,
			item.Lodging,
			item.Others,
			item.Remarks,
			item.CreatedAt,
			item.CreatedBy,
			item.LastUpdatedAt,
			item.LastUpdatedBy,
		)
	}

	attachmentQuery := `
		INSERT INTO attachments (attachment_id, liquidation_id, kind, item_id, file_name, file_type, file_size, file_ref,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, att := range liquidation.Attachments {
		batch.Queue(attachmentQuery,
			att.AttachmentID,
			att.LiquidationID,
			att.Kind,
			att.ItemID,
			att.FileName,
			att.FileType,
			att.FileSize,
			att.FileRef,
			att.CreatedAt,
			att.CreatedBy,
			att.LastUpdatedAt,
			att.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute child batch for liquidation %s: %w", liquidation.LiquidationID, err)
	}
	return nil
}

// FindLiquidationByID loads the full aggregate. Soft-deleted rows are not found.
func (r *PgxLiquidationRepository) FindLiquidationByID(ctx context.Context, liquidationID string) (*domain.Liquidation, error) {
	query := `SELECT ` + liquidationColumns + ` FROM liquidations WHERE liquidation_id = $1 AND deleted_at IS NULL;`

	liquidation, err := scanLiquidation(r.pool.QueryRow(ctx, query, liquidationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find liquidation by ID %s: %w", liquidationID, err)
	}

	if err := r.loadChildren(ctx, liquidation); err != nil {
		return nil, err
	}
	return liquidation, nil
}

// FindLiquidationByCashAdvanceID resolves the 1:1 advance reference.
func (r *PgxLiquidationRepository) FindLiquidationByCashAdvanceID(ctx context.Context, cashAdvanceID string) (*domain.Liquidation, error) {
	query := `SELECT ` + liquidationColumns + ` FROM liquidations WHERE cash_advance_id = $1 AND deleted_at IS NULL;`

	liquidation, err := scanLiquidation(r.pool.QueryRow(ctx, query, cashAdvanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find liquidation by cash advance %s: %w", cashAdvanceID, err)
	}

	if err := r.loadChildren(ctx, liquidation); err != nil {
		return nil, err
	}
	return liquidation, nil
}

// loadChildren fills the items and attachments of a loaded header.
func (r *PgxLiquidationRepository) loadChildren(ctx context.Context, liquidation *domain.Liquidation) error {
	itemQuery := `
		SELECT item_id, liquidation_id, expense_date, from_destination, to_destination,
			jeep, bus, fx_van, gas, toll, meals, lodging, others, remarks,
			created_at, created_by, last_updated_at, last_updated_by
		FROM liquidation_items
		WHERE liquidation_id = $1
		ORDER BY expense_date, created_at;
	`
	rows, err := r.pool.Query(ctx, itemQuery, liquidation.LiquidationID)
	if err != nil {
		return fmt.Errorf("failed to query items for liquidation %s: %w", liquidation.LiquidationID, err)
	}
	defer rows.Close()

	items := []domain.LiquidationItem{}
	for rows.Next() {
		var item domain.LiquidationItem
		if err := rows.Scan(
			&item.ItemID,
			&item.LiquidationID,
			&item.ExpenseDate,
			&item.FromDestination,
			&item.ToDestination,
			&item.Jeep,
			&item.Bus,
			&item.FxVan,
			&item.Gas,
			&item.Toll,
			&item.Meals,
			&item.Lodging,
			&item.Others,
			&item.Remarks,
			&item.CreatedAt,
			&item.CreatedBy,
			&item.LastUpdatedAt,
			&item.LastUpdatedBy,
		); err != nil {
			return fmt.Errorf("failed to scan item row for liquidation %s: %w", liquidation.LiquidationID, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating item rows for liquidation %s: %w", liquidation.LiquidationID, err)
	}
	liquidation.Items = items

	attQuery := `
		SELECT attachment_id, liquidation_id, kind, item_id, file_name, file_type, file_size, file_ref,
			created_at, created_by, last_updated_at, last_updated_by
		FROM attachments
		WHERE liquidation_id = $1
		ORDER BY created_at;
	`
	attRows, err := r.pool.Query(ctx, attQuery, liquidation.LiquidationID)
	if err != nil {
		return fmt.Errorf("failed to query attachments for liquidation %s: %w", liquidation.LiquidationID, err)
	}
	defer attRows.Close()

	attachments := []domain.Attachment{}
	for attRows.Next() {
		var att domain.Attachment
		if err := attRows.Scan(
			&att.AttachmentID,
			&att.LiquidationID,
			&att.Kind,
			&att.ItemID,
			&att.FileName,
			&att.FileType,
			&att.FileSize,
			&att.FileRef,
			&att.CreatedAt,
			&att.CreatedBy,
			&att.LastUpdatedAt,
			&att.LastUpdatedBy,
		); err != nil {
			return fmt.Errorf("failed to scan attachment row for liquidation %s: %w", liquidation.LiquidationID, err)
		}
		attachments = append(attachments, att)
	}
	if err := attRows.Err(); err != nil {
		return fmt.Errorf("error iterating attachment rows for liquidation %s: %w", liquidation.LiquidationID, err)
	}
	liquidation.Attachments = attachments
	return nil
}

// UpdateLiquidation rewrites the header fields and replaces the item and
// attachment sets, guarded by the optimistic version check. Items are replaced
// wholesale: an edit produces a fresh item set, never a merge.
func (r *PgxLiquidationRepository) UpdateLiquidation(ctx context.Context, liquidation domain.Liquidation, expectedVersion int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // Ignore rollback error
	}()

	headerQuery := `
		UPDATE liquidations
		SET store_id = $1, ticket_id = $2, liquidation_date = $3, remarks = $4,
			total_amount = $5, return_to_company = $6, reimbursement = $7,
			version = version + 1, last_updated_at = $8, last_updated_by = $9
		WHERE liquidation_id = $10 AND version = $11 AND deleted_at IS NULL;
	`
	cmd, err := tx.Exec(ctx, headerQuery,
		liquidation.StoreID,
		liquidation.TicketID,
		liquidation.LiquidationDate,
		liquidation.Remarks,
		liquidation.TotalAmount,
		liquidation.ReturnToCompany,
		liquidation.Reimbursement,
		liquidation.LastUpdatedAt,
		liquidation.LastUpdatedBy,
		liquidation.LiquidationID,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update liquidation %s: %w", liquidation.LiquidationID, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: liquidation %s was modified concurrently", apperrors.ErrConflict, liquidation.LiquidationID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM liquidation_items WHERE liquidation_id = $1;`, liquidation.LiquidationID); err != nil {
		return fmt.Errorf("failed to clear items for liquidation %s: %w", liquidation.LiquidationID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM attachments WHERE liquidation_id = $1;`, liquidation.LiquidationID); err != nil {
		return fmt.Errorf("failed to clear attachments for liquidation %s: %w", liquidation.LiquidationID, err)
	}

	if err := queueChildInserts(ctx, tx, liquidation); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction for liquidation %s: %w", liquidation.LiquidationID, err)
	}
	return nil
}

// UpdateDecision persists a status transition and the level review fields
// under the same optimistic version check. Items and attachments are untouched.
func (r *PgxLiquidationRepository) UpdateDecision(ctx context.Context, liquidation domain.Liquidation, expectedVersion int64) error {
	var l1By, l1Comment, l2By, l2Comment *string
	var l1At, l2At *time.Time
	if liquidation.Level1 != nil {
		l1By = &liquidation.Level1.ReviewedBy
		l1At = &liquidation.Level1.ReviewedAt
		l1Comment = &liquidation.Level1.Comment
	}
	if liquidation.Level2 != nil {
		l2By = &liquidation.Level2.ReviewedBy
		l2At = &liquidation.Level2.ReviewedAt
		l2Comment = &liquidation.Level2.Comment
	}

	query := `
		UPDATE liquidations
		SET status = $1,
			level1_reviewed_by = $2, level1_reviewed_at = $3, level1_comment = $4,
			level2_reviewed_by = $5, level2_reviewed_at = $6, level2_comment = $7,
			version = version + 1, last_updated_at = $8, last_updated_by = $9
		WHERE liquidation_id = $10 AND version = $11 AND deleted_at IS NULL;
	`
	cmd, err := r.pool.Exec(ctx, query,
		liquidation.Status,
		l1By, l1At, l1Comment,
		l2By, l2At, l2Comment,
		liquidation.LastUpdatedAt,
		liquidation.LastUpdatedBy,
		liquidation.LiquidationID,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update decision for liquidation %s: %w", liquidation.LiquidationID, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: liquidation %s was modified concurrently", apperrors.ErrConflict, liquidation.LiquidationID)
	}
	return nil
}

// SoftDeleteLiquidation marks the row deleted; items and attachments stay for audit.
func (r *PgxLiquidationRepository) SoftDeleteLiquidation(ctx context.Context, liquidationID string, deletedBy string, deletedAt time.Time, expectedVersion int64) error {
	query := `
		UPDATE liquidations
		SET deleted_at = $1, version = version + 1, last_updated_at = $1, last_updated_by = $2
		WHERE liquidation_id = $3 AND version = $4 AND deleted_at IS NULL;
	`
	cmd, err := r.pool.Exec(ctx, query, deletedAt, deletedBy, liquidationID, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to soft delete liquidation %s: %w", liquidationID, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: liquidation %s was modified concurrently", apperrors.ErrConflict, liquidationID)
	}
	return nil
}

// ListLiquidations returns a keyset-paginated page of headers, newest first.
func (r *PgxLiquidationRepository) ListLiquidations(ctx context.Context, filter portsrepo.ListLiquidationsFilter, limit int, nextToken *string) ([]domain.Liquidation, *string, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + liquidationColumns + ` FROM liquidations WHERE deleted_at IS NULL`)

	args := []any{}
	argPos := 1
	addArg := func(clause string, value any) {
		sb.WriteString(fmt.Sprintf(" AND %s $%d", clause, argPos))
		args = append(args, value)
		argPos++
	}

	if filter.Status != nil {
		addArg("status =", *filter.Status)
	}
	if filter.StoreID != nil {
		addArg("store_id =", *filter.StoreID)
	}
	if filter.EmployeeID != nil {
		addArg("employee_id =", *filter.EmployeeID)
	}

	if nextToken != nil && *nextToken != "" {
		recordDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		sb.WriteString(fmt.Sprintf(" AND (liquidation_date, created_at) < ($%d, $%d)", argPos, argPos+1))
		args = append(args, recordDate, createdAt)
		argPos += 2
	}

	// Fetch one extra row to know whether another page exists.
	sb.WriteString(fmt.Sprintf(" ORDER BY liquidation_date DESC, created_at DESC LIMIT $%d;", argPos))
	args = append(args, limit+1)

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query liquidations: %w", err)
	}
	defer rows.Close()

	liquidations := []domain.Liquidation{}
	for rows.Next() {
		l, err := scanLiquidation(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan liquidation row: %w", err)
		}
		liquidations = append(liquidations, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating liquidation rows: %w", err)
	}

	var token *string
	if len(liquidations) > limit {
		liquidations = liquidations[:limit]
		last := liquidations[len(liquidations)-1]
		t := pagination.EncodeToken(last.LiquidationDate, last.CreatedAt)
		token = &t
	}
	return liquidations, token, nil
}
