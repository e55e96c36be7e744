package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/expense_splitter_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_splitter_app/internal/core/ports/repositories"
	"github.com/SscSPs/expense_splitter_app/internal/models"
	"github.com/SscSPs/expense_splitter_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSettlementRepository struct {
	BaseRepository
}

func newPgxSettlementRepository(pool *pgxpool.Pool) portsrepo.SettlementRepositoryFacade {
	return &PgxSettlementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxSettlementRepository implements portsrepo.SettlementRepositoryFacade
var _ portsrepo.SettlementRepositoryFacade = (*PgxSettlementRepository)(nil)

// SaveSettlement records a paid share. ON CONFLICT DO NOTHING makes re-marking
// an already settled share a no-op that keeps the original timestamp.
func (r *PgxSettlementRepository) SaveSettlement(ctx context.Context, settlement domain.Settlement) error {
	m := mapping.ToModelSettlement(settlement)
	query := `
		INSERT INTO settlements (expense_id, member_id, settled_at, settled_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (expense_id, member_id) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, query, m.ExpenseID, m.MemberID, m.SettledAt, m.SettledBy)
	if err != nil {
		return fmt.Errorf("failed to save settlement for expense %s member %s: %w", settlement.ExpenseID, settlement.MemberID, err)
	}
	return nil
}

func (r *PgxSettlementRepository) ListSettlementsByGroupID(ctx context.Context, groupID string) ([]domain.Settlement, error) {
	query := `
		SELECT s.expense_id, s.member_id, s.settled_at, s.settled_by
		FROM settlements s
		JOIN expenses e ON e.expense_id = s.expense_id
		WHERE e.group_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlements of group %s: %w", groupID, err)
	}
	defer rows.Close()

	return collectSettlements(rows)
}

func (r *PgxSettlementRepository) ListSettlementsByExpenseID(ctx context.Context, expenseID string) ([]domain.Settlement, error) {
	query := `
		SELECT expense_id, member_id, settled_at, settled_by
		FROM settlements
		WHERE expense_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlements of expense %s: %w", expenseID, err)
	}
	defer rows.Close()

	return collectSettlements(rows)
}

func collectSettlements(rows pgx.Rows) ([]domain.Settlement, error) {
	ms := []models.Settlement{}
	for rows.Next() {
		var m models.Settlement
		if err := rows.Scan(&m.ExpenseID, &m.MemberID, &m.SettledAt, &m.SettledBy); err != nil {
			return nil, fmt.Errorf("failed to scan settlement row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read settlement rows: %w", err)
	}
	return mapping.ToDomainSettlementSlice(ms), nil
}
