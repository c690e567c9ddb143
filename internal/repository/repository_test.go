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
	"github.com/maheshrc27/dreamwall/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func q(s string) string { return regexp.QuoteMeta(s) }

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsUniqueViolation(errors.Join(errors.New("insert"), &pq.Error{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(sql.ErrNoRows))
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := WithTx(context.Background(), db, func(tx *sqlx.Tx) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeToggleAddsLike(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLikeRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT id FROM posts WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(7)).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(q("DELETE FROM likes")).
		WithArgs(int64(3), int64(7)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q("INSERT INTO likes")).
		WithArgs(int64(3), int64(7)).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(q("UPDATE posts SET likes = likes + 1")).
		WithArgs(int64(7)).WillReturnRows(sqlmock.NewRows([]string{"likes"}).AddRow(5))
	mock.ExpectCommit()

	liked, likes, err := repo.Toggle(context.Background(), 3, 7)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(5), likes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeToggleRemovesLike(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLikeRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT id FROM posts WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(7)).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(q("DELETE FROM likes")).
		WithArgs(int64(3), int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(q("GREATEST(likes - 1, 0)")).
		WithArgs(int64(7)).WillReturnRows(sqlmock.NewRows([]string{"likes"}).AddRow(0))
	mock.ExpectCommit()

	liked, likes, err := repo.Toggle(context.Background(), 3, 7)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(0), likes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeToggleMissingPost(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLikeRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT id FROM posts WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(9)).WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, _, err := repo.Toggle(context.Background(), 3, 9)
	assert.True(t, IsNoRows(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentCreateMissingPost(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCommentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(q("UPDATE posts SET comments_count = comments_count + 1")).
		WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Comment{PostID: 4, Name: "guest", Content: "hi"})
	assert.True(t, IsNoRows(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentCreate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCommentRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(q("UPDATE posts SET comments_count = comments_count + 1")).
		WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(q("INSERT INTO comments")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(11, now, now))
	mock.ExpectCommit()

	c := &models.Comment{PostID: 4, Name: "guest", Content: "hi"}
	require.NoError(t, repo.Create(context.Background(), c))
	assert.Equal(t, int64(11), c.ID)
	assert.Equal(t, models.CommentStatusApproved, c.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNextLuckyNumber(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCounterRepository(db)

	mock.ExpectQuery(q("ON CONFLICT (name) DO UPDATE SET value = counters.value % 999 + 1")).
		WithArgs(LuckyNumberCounter).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(1))

	n, err := repo.NextLuckyNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncLuckyNumberOnlyMovesForLatestPost(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCounterRepository(db)

	mock.ExpectExec(q("UPDATE counters SET value = $2")).
		WithArgs(LuckyNumberCounter, 999, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	moved, err := repo.SyncLuckyNumber(context.Background(), 5, 999)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteDrawIsConditional(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLotteryRepository(db)
	drawnAt := time.Now()

	mock.ExpectExec(q("UPDATE lotteries SET winner_id = $1, status = $2, drawn_at = $3, updated_at = NOW() WHERE id = $4 AND status = $5")).
		WithArgs(int64(42), models.LotteryStatusCompleted, drawnAt, int64(1), models.LotteryStatusActive).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.CompleteDraw(context.Background(), 1, 42, drawnAt)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsUpdateStaleVersion(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSettingsRepository(db)
	stale := 2

	mock.ExpectQuery(q("UPDATE site_settings SET document = $1, version = version + 1, updated_at = NOW() WHERE id = 1 AND version = $2 RETURNING document, version, updated_at")).
		WithArgs(sqlmock.AnyArg(), 2).
		WillReturnRows(sqlmock.NewRows([]string{"document", "version", "updated_at"}))

	_, ok, err := repo.Update(context.Background(), models.DefaultSiteSettings(), &stale)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByPhoneNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(q("FROM users WHERE phone_number = $1")).
		WithArgs("0912").
		WillReturnRows(sqlmock.NewRows(userColumns))

	user, found, err := repo.GetByPhone(context.Background(), "0912")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostIncrementShares(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(q("UPDATE posts SET shares = shares + 1 WHERE id = $1 RETURNING shares")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"shares"}).AddRow(8))

	shares, found, err := repo.IncrementShares(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(8), shares)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostGetByIDScansJoinedUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostRepository(db)
	now := time.Now()

	cols := []string{
		"id", "post_id", "user_id", "title", "content", "description", "images", "contact_info",
		"likes", "shares", "comments_count", "is_featured", "is_hidden", "status", "lucky_number",
		"created_at", "updated_at", "user.id", "user.name", "user.phone_number", "user.email",
	}
	mock.ExpectQuery(q("FROM posts p JOIN users u ON u.id = p.user_id WHERE p.id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			1, "2025_01_02_03_HEMUNG_001", 2, "t", "c", "d",
			[]byte(`[{"public_id":"stories-post/a","url":"https://cdn.test/stories-post/a"}]`),
			nil, 0, 0, 0, false, false, "published", "001", now, now,
			2, "Amy", "0912", nil,
		))

	post, found, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Amy", post.User.Name)
	require.Len(t, post.Images, 1)
	assert.Equal(t, "stories-post/a", post.Images[0].PublicID)
	assert.True(t, post.ContactInfo.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostLastSequenceSince(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostRepository(db)
	since := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(q(`SELECT COALESCE(MAX(CAST(substring(post_id FROM '_([0-9]+)$') AS BIGINT)), 0) FROM posts WHERE created_at >= $1`)).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(6))

	last, err := repo.LastSequenceSince(context.Background(), since)
	require.NoError(t, err)
	assert.Equal(t, int64(6), last)
	assert.NoError(t, mock.ExpectationsWereMet())
}
