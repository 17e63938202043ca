package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pnsMembership/internal/models"

	"github.com/jmoiron/sqlx"
)

type memberRepository struct {
	db *sqlx.DB
}

func NewMemberRepository(db *sqlx.DB) MemberRepository {
	return &memberRepository{db: db}
}

const memberColumns = `id, email, password_hash, sector_number, road_number, plot_number, plot_size,
	ownership_proof_type, ownership_proof_file, owner_name_english, owner_name_bangla, contact_number,
	nid_number, present_address, permanent_address, owner_photo, payment_method, bkash_transaction_id,
	bkash_account_number, bank_account_number_from, payment_receipt, membership_fee, agree_data_use,
	status, created_at, updated_at`

const insertMember = `
	INSERT INTO members (email, password_hash, sector_number, road_number, plot_number, plot_size,
		ownership_proof_type, ownership_proof_file, owner_name_english, owner_name_bangla, contact_number,
		nid_number, present_address, permanent_address, owner_photo, payment_method, bkash_transaction_id,
		bkash_account_number, bank_account_number_from, payment_receipt, membership_fee, agree_data_use,
		status, created_at, updated_at)
	VALUES (:email, :password_hash, :sector_number, :road_number, :plot_number, :plot_size,
		:ownership_proof_type, :ownership_proof_file, :owner_name_english, :owner_name_bangla, :contact_number,
		:nid_number, :present_address, :permanent_address, :owner_photo, :payment_method, :bkash_transaction_id,
		:bkash_account_number, :bank_account_number_from, :payment_receipt, :membership_fee, :agree_data_use,
		:status, :created_at, :updated_at)
	RETURNING id`

func prepareMember(member *models.Member) {
	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now().UTC()
	}
	member.UpdatedAt = member.CreatedAt
	if member.Status == "" {
		member.Status = models.StatusPending
	}
}

// Create inserts the member and fills in its ID. A duplicate email yields ErrDuplicate.
func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	prepareMember(member)

	query, args, err := r.db.BindNamed(insertMember, member)
	if err != nil {
		return fmt.Errorf("create member: bind: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&member.ID); err != nil {
		return wrapError("create member", err)
	}
	return nil
}

// CreateMany inserts all members in one transaction.
func (r *memberRepository) CreateMany(ctx context.Context, members []*models.Member) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("import members: begin: %w", err)
	}
	defer tx.Rollback()

	for _, member := range members {
		prepareMember(member)

		query, args, err := tx.BindNamed(insertMember, member)
		if err != nil {
			return fmt.Errorf("import members: bind: %w", err)
		}
		if err := tx.QueryRowxContext(ctx, query, args...).Scan(&member.ID); err != nil {
			return wrapError("import members", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("import members: commit: %w", err)
	}
	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, id int64) (*models.Member, error) {
	var member models.Member

	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	if err := r.db.GetContext(ctx, &member, query, id); err != nil {
		return nil, wrapError("get member", err)
	}

	return &member, nil
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	var member models.Member

	query := `SELECT ` + memberColumns + ` FROM members WHERE LOWER(email) = LOWER($1)`
	if err := r.db.GetContext(ctx, &member, query, email); err != nil {
		return nil, wrapError("get member by email", err)
	}

	return &member, nil
}

// List returns members newest first, optionally bounded by creation time (both ends inclusive).
func (r *memberRepository) List(ctx context.Context, filter MemberFilter) ([]models.Member, error) {
	var conditions []string
	var args []interface{}

	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	query := `SELECT ` + memberColumns + ` FROM members`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	members := []models.Member{}
	if err := r.db.SelectContext(ctx, &members, query, args...); err != nil {
		return nil, wrapError("list members", err)
	}

	return members, nil
}

func (r *memberRepository) UpdateStatus(ctx context.Context, id int64, status models.MemberStatus) (*models.Member, error) {
	var member models.Member

	query := `UPDATE members SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING ` + memberColumns
	if err := r.db.GetContext(ctx, &member, query, status, id); err != nil {
		return nil, wrapError("update member status", err)
	}

	return &member, nil
}

func (r *memberRepository) UpdatePhoto(ctx context.Context, id int64, url string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE members SET owner_photo = $1, updated_at = NOW() WHERE id = $2`, url, id)
	if err != nil {
		return wrapError("update member photo", err)
	}
	return checkAffected("update member photo", result)
}

// DeleteWithPosts removes the member's posts and then the member atomically.
func (r *memberRepository) DeleteWithPosts(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete member: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE author_id = $1`, id); err != nil {
		return wrapError("delete member posts", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return wrapError("delete member", err)
	}
	if err := checkAffected("delete member", result); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete member: commit: %w", err)
	}
	return nil
}
