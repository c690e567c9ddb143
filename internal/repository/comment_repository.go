package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/maheshrc27/dreamwall/internal/models"
)

type CommentFilter struct {
	PostID int64
	Status string
	Search string
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, bool, error)
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
	List(ctx context.Context, f CommentFilter, p models.Paging) ([]models.Comment, int64, error)
	Update(ctx context.Context, id int64, fields map[string]any) (bool, error)
	Remove(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

var commentColumns = []string{
	"c.id", "c.post_id", "c.user_id", "c.name", "c.content", "c.user_ip", "c.status",
	"c.created_at", "c.updated_at",
	`COALESCE(u.id, 0) AS "user.id"`,
	`COALESCE(u.name, c.name) AS "user.name"`,
	`COALESCE(u.phone_number, '') AS "user.phone_number"`,
	`u.email AS "user.email"`,
}

func selectComments() sq.SelectBuilder {
	return psql.Select(commentColumns...).From("comments c").LeftJoin("users u ON u.id = c.user_id")
}

// Create inserts the comment and bumps the post's comment counter in one
// transaction. Returns sql.ErrNoRows when the post is missing.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.Status == "" {
		comment.Status = models.CommentStatusApproved
	}

	return WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE posts SET comments_count = comments_count + 1 WHERE id = $1`, comment.PostID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return sql.ErrNoRows
		}

		query, args, err := psql.Insert("comments").
			Columns("post_id", "user_id", "name", "content", "user_ip", "status").
			Values(comment.PostID, comment.UserID, comment.Name, comment.Content, comment.UserIP, comment.Status).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return err
		}
		return tx.QueryRowxContext(ctx, query, args...).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	})
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, bool, error) {
	var comment models.Comment
	found, err := getOne(ctx, r.db, &comment, selectComments().Where(sq.Eq{"c.id": id}))
	if err != nil || !found {
		return nil, false, err
	}
	return &comment, true, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	comments := []models.Comment{}
	b := selectComments().
		Where(sq.Eq{"c.post_id": postID, "c.status": models.CommentStatusApproved}).
		OrderBy("c.created_at DESC", "c.id DESC")
	if err := selectAll(ctx, r.db, &comments, b); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) List(ctx context.Context, f CommentFilter, p models.Paging) ([]models.Comment, int64, error) {
	where := sq.And{}
	if f.PostID != 0 {
		where = append(where, sq.Eq{"c.post_id": f.PostID})
	}
	if f.Status != "" {
		where = append(where, sq.Eq{"c.status": f.Status})
	}
	if f.Search != "" {
		where = append(where, sq.ILike{"c.content": "%" + f.Search + "%"})
	}

	total, err := count(ctx, r.db, psql.Select("COUNT(*)").From("comments c").Where(where))
	if err != nil {
		return nil, 0, err
	}

	comments := []models.Comment{}
	b := selectComments().Column("p.title AS post_title").
		Join("posts p ON p.id = c.post_id").
		Where(where).
		OrderBy("c.created_at DESC", "c.id DESC").
		Limit(uint64(p.Limit)).Offset(uint64(p.Offset()))
	if err := selectAll(ctx, r.db, &comments, b); err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) Update(ctx context.Context, id int64, fields map[string]any) (bool, error) {
	b := psql.Update("comments").SetMap(fields).Set("updated_at", sq.Expr("NOW()")).Where(sq.Eq{"id": id})
	return exec(ctx, r.db, b)
}

// Remove deletes the comment and decrements its post's counter.
func (r *commentRepository) Remove(ctx context.Context, id int64) (bool, error) {
	var removed bool
	err := WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var postID int64
		err := tx.QueryRowxContext(ctx, `DELETE FROM comments WHERE id = $1 RETURNING post_id`, id).Scan(&postID)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}
		removed = true
		_, err = tx.ExecContext(ctx,
			`UPDATE posts SET comments_count = GREATEST(comments_count - 1, 0) WHERE id = $1`, postID)
		return err
	})
	return removed, err
}

func (r *commentRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, psql.Select("COUNT(*)").From("comments"))
}

func (r *commentRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	return count(ctx, r.db, psql.Select("COUNT(*)").From("comments").Where(sq.Eq{"user_id": userID}))
}
