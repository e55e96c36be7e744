package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/expense_splitter_app/internal/apperrors"
	"github.com/SscSPs/expense_splitter_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_splitter_app/internal/core/ports/repositories"
	"github.com/SscSPs/expense_splitter_app/internal/models"
	"github.com/SscSPs/expense_splitter_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxGroupRepository struct {
	BaseRepository
}

func newPgxGroupRepository(pool *pgxpool.Pool) portsrepo.GroupRepositoryFacade {
	return &PgxGroupRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxGroupRepository implements portsrepo.GroupRepositoryFacade
var _ portsrepo.GroupRepositoryFacade = (*PgxGroupRepository)(nil)

const groupColumns = `g.group_id, g.name, g.description, g.default_currency_code, g.is_active,
	g.created_at, g.created_by, g.last_updated_at, g.last_updated_by`

func scanGroup(row pgx.Row) (models.Group, error) {
	var m models.Group
	err := row.Scan(
		&m.GroupID,
		&m.Name,
		&m.Description,
		&m.DefaultCurrencyCode,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxGroupRepository) SaveGroup(ctx context.Context, group domain.Group, creator domain.GroupMember) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	mg := mapping.ToModelGroup(group)
	groupQuery := `
		INSERT INTO groups (group_id, name, description, default_currency_code, is_active,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	if _, err := tx.Exec(ctx, groupQuery,
		mg.GroupID,
		mg.Name,
		mg.Description,
		mg.DefaultCurrencyCode,
		mg.IsActive,
		mg.CreatedAt,
		mg.CreatedBy,
		mg.LastUpdatedAt,
		mg.LastUpdatedBy,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save group: %w", err)
	}

	mm := mapping.ToModelGroupMember(creator)
	memberQuery := `
		INSERT INTO group_members (group_id, user_id, role, status, joined_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := tx.Exec(ctx, memberQuery, mm.GroupID, mm.UserID, mm.Role, mm.Status, mm.JoinedAt); err != nil {
		return fmt.Errorf("failed to save group creator membership: %w", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups g WHERE g.group_id = $1 AND g.is_active;`
	m, err := scanGroup(r.Pool.QueryRow(ctx, query, groupID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find group by ID %s: %w", groupID, err)
	}
	d := mapping.ToDomainGroup(m)
	return &d, nil
}

func (r *PgxGroupRepository) ListGroupsByUserID(ctx context.Context, userID string) ([]domain.Group, error) {
	query := `
		SELECT ` + groupColumns + `,
			(SELECT COUNT(*) FROM group_members gmc WHERE gmc.group_id = g.group_id) AS member_count
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.group_id
		WHERE gm.user_id = $1 AND g.is_active
		ORDER BY g.created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups for user %s: %w", userID, err)
	}
	defer rows.Close()

	groups := []domain.Group{}
	for rows.Next() {
		var m models.Group
		var memberCount int
		err := rows.Scan(
			&m.GroupID,
			&m.Name,
			&m.Description,
			&m.DefaultCurrencyCode,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&memberCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", err)
		}
		d := mapping.ToDomainGroup(m)
		d.MemberCount = memberCount
		groups = append(groups, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read group rows: %w", err)
	}
	return groups, nil
}

func (r *PgxGroupRepository) ListGroupMembers(ctx context.Context, groupID string) ([]domain.GroupMember, error) {
	query := `
		SELECT gm.user_id, gm.group_id, gm.role, gm.status, gm.joined_at,
			u.name, u.email, u.photo_url
		FROM group_members gm
		JOIN users u ON u.user_id = gm.user_id
		WHERE gm.group_id = $1 AND u.deleted_at IS NULL
		ORDER BY gm.joined_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members of group %s: %w", groupID, err)
	}
	defer rows.Close()

	members := []domain.GroupMember{}
	for rows.Next() {
		var m models.GroupMember
		var u models.User
		if err := rows.Scan(
			&m.UserID,
			&m.GroupID,
			&m.Role,
			&m.Status,
			&m.JoinedAt,
			&u.Name,
			&u.Email,
			&u.PhotoURL,
		); err != nil {
			return nil, fmt.Errorf("failed to scan group member row: %w", err)
		}
		members = append(members, mapping.ToDomainGroupMember(m, u))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read group member rows: %w", err)
	}
	return members, nil
}

func (r *PgxGroupRepository) FindGroupMember(ctx context.Context, groupID string, userID string) (*domain.GroupMember, error) {
	query := `
		SELECT gm.user_id, gm.group_id, gm.role, gm.status, gm.joined_at,
			u.name, u.email, u.photo_url
		FROM group_members gm
		JOIN users u ON u.user_id = gm.user_id
		WHERE gm.group_id = $1 AND gm.user_id = $2;
	`
	var m models.GroupMember
	var u models.User
	err := r.Pool.QueryRow(ctx, query, groupID, userID).Scan(
		&m.UserID,
		&m.GroupID,
		&m.Role,
		&m.Status,
		&m.JoinedAt,
		&u.Name,
		&u.Email,
		&u.PhotoURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member %s of group %s: %w", userID, groupID, err)
	}
	member := mapping.ToDomainGroupMember(m, u)
	return &member, nil
}

func (r *PgxGroupRepository) AddGroupMember(ctx context.Context, member domain.GroupMember) error {
	m := mapping.ToModelGroupMember(member)
	query := `
		INSERT INTO group_members (group_id, user_id, role, status, joined_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query, m.GroupID, m.UserID, m.Role, m.Status, m.JoinedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to add member %s to group %s: %w", member.UserID, member.GroupID, err)
	}
	return nil
}

func (r *PgxGroupRepository) UpdateGroupMemberStatus(ctx context.Context, groupID string, userID string, status domain.GroupMemberStatus) error {
	query := `
		UPDATE group_members
		SET status = $3
		WHERE group_id = $1 AND user_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, groupID, userID, models.GroupMemberStatus(status))
	if err != nil {
		return fmt.Errorf("failed to update status of member %s in group %s: %w", userID, groupID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
