package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

type LikeRepository interface {
	Toggle(ctx context.Context, userID, postID int64) (liked bool, likes int64, err error)
	Exists(ctx context.Context, userID, postID int64) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle flips the user's like on a post and adjusts the post counter in
// the same transaction. The post row is locked first so concurrent toggles
// on one post serialize. Returns sql.ErrNoRows when the post is missing.
func (r *likeRepository) Toggle(ctx context.Context, userID, postID int64) (bool, int64, error) {
	var liked bool
	var likes int64

	err := WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var id int64
		if err := tx.QueryRowxContext(ctx, `SELECT id FROM posts WHERE id = $1 FOR UPDATE`, postID).Scan(&id); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
		if err != nil {
			return err
		}
		removed, err := res.RowsAffected()
		if err != nil {
			return err
		}

		if removed > 0 {
			liked = false
			return tx.QueryRowxContext(ctx,
				`UPDATE posts SET likes = GREATEST(likes - 1, 0) WHERE id = $1 RETURNING likes`, postID).Scan(&likes)
		}

		if _, err := tx.ExecContext(ctx, `INSERT INTO likes (user_id, post_id) VALUES ($1, $2)`, userID, postID); err != nil {
			return err
		}
		liked = true
		return tx.QueryRowxContext(ctx,
			`UPDATE posts SET likes = likes + 1 WHERE id = $1 RETURNING likes`, postID).Scan(&likes)
	})
	if err != nil {
		return false, 0, err
	}
	return liked, likes, nil
}

func (r *likeRepository) Exists(ctx context.Context, userID, postID int64) (bool, error) {
	var one int
	err := r.db.QueryRowxContext(ctx, `SELECT 1 FROM likes WHERE user_id = $1 AND post_id = $2`, userID, postID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *likeRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, psql.Select("COUNT(*)").From("likes"))
}
