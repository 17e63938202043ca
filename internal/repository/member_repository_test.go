package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pnsMembership/internal/models"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "postgres")
	t.Cleanup(func() { sqlxDB.Close() })

	return sqlxDB, mock
}

var memberRowColumns = []string{
	"id", "email", "password_hash", "sector_number", "road_number", "plot_number", "plot_size",
	"ownership_proof_type", "ownership_proof_file", "owner_name_english", "owner_name_bangla", "contact_number",
	"nid_number", "present_address", "permanent_address", "owner_photo", "payment_method", "bkash_transaction_id",
	"bkash_account_number", "bank_account_number_from", "payment_receipt", "membership_fee", "agree_data_use",
	"status", "created_at", "updated_at",
}

func memberRow(rows *sqlmock.Rows, id int64, email string, status models.MemberStatus, created time.Time) *sqlmock.Rows {
	return rows.AddRow(
		id, email, "$2a$10$hash", "7", "12", "34", "5 katha",
		"LD_TAX_RECEIPT", "/uploads/proof.pdf", "Rahim Uddin", "রহিম উদ্দিন", "01712345678",
		"1234567890", "House 1", "Village 2", nil, "BKASH", "TX123",
		"01812345678", nil, "/uploads/receipt.png", 1020, true,
		string(status), created, created,
	)
}

func newMember() *models.Member {
	proof := "/uploads/proof.pdf"
	return &models.Member{
		Email:              "owner@example.com",
		PasswordHash:       "$2a$10$hash",
		SectorNumber:       "7",
		RoadNumber:         "12",
		PlotNumber:         "34",
		PlotSize:           "5 katha",
		OwnershipProofType: models.ProofLDTaxReceipt,
		OwnershipProofFile: &proof,
		OwnerNameEnglish:   "Rahim Uddin",
		OwnerNameBangla:    "রহিম উদ্দিন",
		ContactNumber:      "01712345678",
		NIDNumber:          "1234567890",
		PresentAddress:     "House 1",
		PermanentAddress:   "Village 2",
		PaymentMethod:      models.PaymentBank,
		MembershipFee:      models.DefaultMembershipFee,
		AgreeDataUse:       true,
	}
}

func TestMemberRepository_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   error
		wantID    int64
	}{
		{
			name: "inserts and returns id",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO members`)).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
			},
			wantID: 42,
		},
		{
			name: "duplicate email",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO members`)).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: ErrDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewMemberRepository(db)
			tt.setupMock(mock)

			member := newMember()
			err := repo.Create(context.Background(), member)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, member.ID)
				assert.Equal(t, models.StatusPending, member.Status)
				assert.False(t, member.CreatedAt.IsZero())
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMemberRepository_CreateMany(t *testing.T) {
	t.Run("commits all rows", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewMemberRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO members`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO members`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
		mock.ExpectCommit()

		members := []*models.Member{newMember(), newMember()}
		members[1].Email = "second@example.com"

		require.NoError(t, repo.CreateMany(context.Background(), members))
		assert.Equal(t, int64(1), members[0].ID)
		assert.Equal(t, int64(2), members[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewMemberRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO members`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO members`)).
			WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		err := repo.CreateMany(context.Background(), []*models.Member{newMember(), newMember()})
		assert.ErrorIs(t, err, ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMemberRepository_GetByEmail(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewMemberRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM members WHERE LOWER(email) = LOWER($1)`)).
			WithArgs("Owner@Example.com").
			WillReturnRows(memberRow(sqlmock.NewRows(memberRowColumns), 7, "owner@example.com", models.StatusApproved, created))

		member, err := repo.GetByEmail(context.Background(), "Owner@Example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(7), member.ID)
		assert.Equal(t, models.StatusApproved, member.Status)
		assert.Nil(t, member.OwnerPhoto)
		require.NotNil(t, member.BkashTransactionID)
		assert.Equal(t, "TX123", *member.BkashTransactionID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewMemberRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM members WHERE LOWER(email) = LOWER($1)`)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemberRepository_List(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 23, 59, 59, 999000000, time.UTC)

	tests := []struct {
		name      string
		filter    MemberFilter
		setupMock func(mock sqlmock.Sqlmock)
		wantLen   int
	}{
		{
			name: "no filter",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM members ORDER BY created_at DESC`).
					WillReturnRows(memberRow(sqlmock.NewRows(memberRowColumns), 1, "a@example.com", models.StatusPending, created))
			},
			wantLen: 1,
		},
		{
			name:   "both bounds",
			filter: MemberFilter{CreatedFrom: &from, CreatedTo: &to},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`WHERE created_at >= $1 AND created_at <= $2 ORDER BY created_at DESC`)).
					WithArgs(from, to).
					WillReturnRows(sqlmock.NewRows(memberRowColumns))
			},
			wantLen: 0,
		},
		{
			name:   "upper bound only",
			filter: MemberFilter{CreatedTo: &to},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`WHERE created_at <= $1 ORDER BY`)).
					WithArgs(to).
					WillReturnRows(sqlmock.NewRows(memberRowColumns))
			},
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewMemberRepository(db)
			tt.setupMock(mock)

			members, err := repo.List(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.NotNil(t, members)
			assert.Len(t, members, tt.wantLen)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMemberRepository_UpdateStatus(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("returns updated row", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewMemberRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE members SET status = $1`)).
			WithArgs(models.StatusRejected, int64(3)).
			WillReturnRows(memberRow(sqlmock.NewRows(memberRowColumns), 3, "a@example.com", models.StatusRejected, created))

		member, err := repo.UpdateStatus(context.Background(), 3, models.StatusRejected)
		require.NoError(t, err)
		assert.Equal(t, models.StatusRejected, member.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing member", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewMemberRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE members SET status = $1`)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.UpdateStatus(context.Background(), 99, models.StatusApproved)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemberRepository_UpdatePhoto(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMemberRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE members SET owner_photo = $1`)).
		WithArgs("/uploads/avatar.png", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE members SET owner_photo = $1`)).
		WithArgs("/uploads/avatar.png", int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.UpdatePhoto(context.Background(), 5, "/uploads/avatar.png"))
	assert.ErrorIs(t, repo.UpdatePhoto(context.Background(), 6, "/uploads/avatar.png"), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberRepository_DeleteWithPosts(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "deletes posts then member",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM posts WHERE author_id = $1`)).
					WithArgs(int64(4)).
					WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM members WHERE id = $1`)).
					WithArgs(int64(4)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "missing member rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM posts WHERE author_id = $1`)).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM members WHERE id = $1`)).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			wantErr: ErrNotFound,
		},
		{
			name: "post delete failure rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM posts WHERE author_id = $1`)).
					WillReturnError(errors.New("connection reset"))
				mock.ExpectRollback()
			},
			wantErr: errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewMemberRepository(db)
			tt.setupMock(mock)

			err := repo.DeleteWithPosts(context.Background(), 4)
			switch {
			case tt.wantErr == nil:
				assert.NoError(t, err)
			case errors.Is(tt.wantErr, ErrNotFound):
				assert.ErrorIs(t, err, ErrNotFound)
			default:
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
