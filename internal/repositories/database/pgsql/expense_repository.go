package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/expense_splitter_app/internal/apperrors"
	"github.com/SscSPs/expense_splitter_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_splitter_app/internal/core/ports/repositories"
	"github.com/SscSPs/expense_splitter_app/internal/models"
	"github.com/SscSPs/expense_splitter_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxExpenseRepository implements portsrepo.ExpenseRepositoryFacade
var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `e.expense_id, e.group_id, e.description, e.amount, e.payer_id,
	e.category, e.notes, e.expense_date,
	e.created_at, e.created_by, e.last_updated_at, e.last_updated_by`

func scanExpense(row pgx.Row) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.GroupID,
		&m.Description,
		&m.Amount,
		&m.PayerID,
		&m.Category,
		&m.Notes,
		&m.ExpenseDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelExpense(expense)
	expenseQuery := `
		INSERT INTO expenses (expense_id, group_id, description, amount, payer_id,
			category, notes, expense_date,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	if _, err := tx.Exec(ctx, expenseQuery,
		m.ExpenseID,
		m.GroupID,
		m.Description,
		m.Amount,
		m.PayerID,
		m.Category,
		m.Notes,
		m.ExpenseDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save expense: %w", err)
	}

	participantQuery := `INSERT INTO expense_participants (expense_id, user_id, position) VALUES ($1, $2, $3);`
	for i, participantID := range expense.Participants {
		if _, err := tx.Exec(ctx, participantQuery, expense.ExpenseID, participantID, i); err != nil {
			return fmt.Errorf("failed to save participant %s of expense %s: %w", participantID, expense.ExpenseID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses e WHERE e.expense_id = $1;`
	m, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}

	participants, err := r.loadParticipants(ctx, []string{expenseID})
	if err != nil {
		return nil, err
	}

	d := mapping.ToDomainExpense(m, participants[expenseID])
	return &d, nil
}

func (r *PgxExpenseRepository) ListExpensesByGroupID(ctx context.Context, groupID string) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		WHERE e.group_id = $1
		ORDER BY e.expense_date DESC, e.created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses of group %s: %w", groupID, err)
	}
	defer rows.Close()

	return r.collectExpenses(ctx, rows)
}

func (r *PgxExpenseRepository) ListExpensesByUserID(ctx context.Context, userID string, before *time.Time, limit int) ([]domain.Expense, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT DISTINCT ` + expenseColumns + `
		FROM expenses e
		LEFT JOIN expense_participants ep ON ep.expense_id = e.expense_id
		WHERE (e.payer_id = $1 OR ep.user_id = $1)
	`
	args := []any{userID}
	if before != nil {
		query += ` AND e.expense_date < $2`
		args = append(args, *before)
	}
	query += fmt.Sprintf(` ORDER BY e.expense_date DESC, e.created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses for user %s: %w", userID, err)
	}
	defer rows.Close()

	return r.collectExpenses(ctx, rows)
}

func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Settlements and participants cascade via FK, deleted explicitly to keep
	// the ordering obvious.
	if _, err := tx.Exec(ctx, `DELETE FROM settlements WHERE expense_id = $1;`, expenseID); err != nil {
		return fmt.Errorf("failed to delete settlements of expense %s: %w", expenseID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM expense_participants WHERE expense_id = $1;`, expenseID); err != nil {
		return fmt.Errorf("failed to delete participants of expense %s: %w", expenseID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1;`, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// collectExpenses drains rows into domain expenses with participants attached.
func (r *PgxExpenseRepository) collectExpenses(ctx context.Context, rows pgx.Rows) ([]domain.Expense, error) {
	ms := []models.Expense{}
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read expense rows: %w", err)
	}

	expenseIDs := make([]string, len(ms))
	for i, m := range ms {
		expenseIDs[i] = m.ExpenseID
	}
	participants, err := r.loadParticipants(ctx, expenseIDs)
	if err != nil {
		return nil, err
	}

	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = mapping.ToDomainExpense(m, participants[m.ExpenseID])
	}
	return ds, nil
}

// loadParticipants fetches participant user IDs for the given expenses,
// preserving insertion order per expense.
func (r *PgxExpenseRepository) loadParticipants(ctx context.Context, expenseIDs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(expenseIDs))
	if len(expenseIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT expense_id, user_id
		FROM expense_participants
		WHERE expense_id = ANY($1)
		ORDER BY position ASC;
	`
	rows, err := r.Pool.Query(ctx, query, expenseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID, participantID string
		if err := rows.Scan(&expenseID, &participantID); err != nil {
			return nil, fmt.Errorf("failed to scan expense participant row: %w", err)
		}
		result[expenseID] = append(result[expenseID], participantID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read expense participant rows: %w", err)
	}
	return result, nil
}
