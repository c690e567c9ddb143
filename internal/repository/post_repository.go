package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/maheshrc27/dreamwall/internal/models"
)

const (
	OrderNewest   = "p.created_at DESC, p.id DESC"
	OrderLikes    = "p.likes DESC, p.created_at DESC"
	OrderShares   = "p.shares DESC, p.created_at DESC"
	OrderComments = "p.comments_count DESC, p.created_at DESC"
)

type PostFilter struct {
	UserID        int64
	Status        string
	Search        string
	FeaturedOnly  bool
	IncludeHidden bool
	OrderBy       string
}

type PostRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Post, bool, error)
	List(ctx context.Context, f PostFilter, p models.Paging) ([]models.Post, int64, error)
	Top(ctx context.Context, f PostFilter, limit int) ([]models.Post, error)
	Create(ctx context.Context, tx *sqlx.Tx, post *models.Post) (int64, error)
	LastSequenceSince(ctx context.Context, since time.Time) (int64, error)
	Update(ctx context.Context, id int64, fields map[string]any) (bool, error)
	Remove(ctx context.Context, id int64) (bool, error)
	IncrementShares(ctx context.Context, id int64) (int64, bool, error)
	Count(ctx context.Context) (int64, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	SumLikesByUser(ctx context.Context, userID int64) (int64, error)
	ListLuckyEntries(ctx context.Context) ([]models.LuckyEntry, error)
	SetLuckyNumber(ctx context.Context, tx *sqlx.Tx, id int64, lucky string) error
}

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

var postColumns = []string{
	"p.id", "p.post_id", "p.user_id", "p.title", "p.content", "p.description",
	"p.images", "p.contact_info", "p.likes", "p.shares", "p.comments_count",
	"p.is_featured", "p.is_hidden", "p.status", "p.lucky_number",
	"p.created_at", "p.updated_at",
	`u.id AS "user.id"`, `u.name AS "user.name"`,
	`u.phone_number AS "user.phone_number"`, `u.email AS "user.email"`,
}

func selectPosts() sq.SelectBuilder {
	return psql.Select(postColumns...).From("posts p").Join("users u ON u.id = p.user_id")
}

func (f PostFilter) where() sq.And {
	where := sq.And{}
	if f.UserID != 0 {
		where = append(where, sq.Eq{"p.user_id": f.UserID})
	}
	if f.Status != "" {
		where = append(where, sq.Eq{"p.status": f.Status})
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		where = append(where, sq.Or{
			sq.ILike{"p.title": like},
			sq.ILike{"p.content": like},
			sq.ILike{"p.description": like},
		})
	}
	if f.FeaturedOnly {
		where = append(where, sq.Eq{"p.is_featured": true})
	}
	if !f.IncludeHidden {
		where = append(where, sq.Eq{"p.is_hidden": false})
	}
	return where
}

func (f PostFilter) order() string {
	if f.OrderBy == "" {
		return OrderNewest
	}
	return f.OrderBy
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, bool, error) {
	var post models.Post
	found, err := getOne(ctx, r.db, &post, selectPosts().Where(sq.Eq{"p.id": id}))
	if err != nil || !found {
		return nil, false, err
	}
	return &post, true, nil
}

func (r *postRepository) List(ctx context.Context, f PostFilter, p models.Paging) ([]models.Post, int64, error) {
	where := f.where()
	total, err := count(ctx, r.db, psql.Select("COUNT(*)").From("posts p").Where(where))
	if err != nil {
		return nil, 0, err
	}

	posts := []models.Post{}
	b := selectPosts().Where(where).OrderBy(f.order()).
		Limit(uint64(p.Limit)).Offset(uint64(p.Offset()))
	if err := selectAll(ctx, r.db, &posts, b); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) Top(ctx context.Context, f PostFilter, limit int) ([]models.Post, error) {
	posts := []models.Post{}
	b := selectPosts().Where(f.where()).OrderBy(f.order()).Limit(uint64(limit))
	if err := selectAll(ctx, r.db, &posts, b); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Create(ctx context.Context, tx *sqlx.Tx, post *models.Post) (int64, error) {
	if post.Status == "" {
		post.Status = models.PostStatusPublished
	}
	if post.Images == nil {
		post.Images = models.Images{}
	}

	query, args, err := psql.Insert("posts").
		Columns("post_id", "user_id", "title", "content", "description", "images",
			"contact_info", "status", "lucky_number").
		Values(post.PostID, post.UserID, post.Title, post.Content, post.Description, post.Images,
			post.ContactInfo, post.Status, post.LuckyNumber).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return 0, err
	}

	row := pick(r.db, tx).QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt); err != nil {
		return 0, err
	}
	return post.ID, nil
}

// LastSequenceSince returns the highest numeric post_id suffix among posts
// created since the given time, or 0 when there are none.
func (r *postRepository) LastSequenceSince(ctx context.Context, since time.Time) (int64, error) {
	b := psql.Select(`COALESCE(MAX(CAST(substring(post_id FROM '_([0-9]+)$') AS BIGINT)), 0)`).
		From("posts").
		Where(sq.GtOrEq{"created_at": since})
	return count(ctx, r.db, b)
}

// Update writes the given columns. Callers restrict the keys to known
// columns.
func (r *postRepository) Update(ctx context.Context, id int64, fields map[string]any) (bool, error) {
	b := psql.Update("posts").SetMap(fields).Set("updated_at", sq.Expr("NOW()")).Where(sq.Eq{"id": id})
	return exec(ctx, r.db, b)
}

// Remove deletes the post. Likes and comments go with it through the
// foreign key cascade.
func (r *postRepository) Remove(ctx context.Context, id int64) (bool, error) {
	return exec(ctx, r.db, psql.Delete("posts").Where(sq.Eq{"id": id}))
}

func (r *postRepository) IncrementShares(ctx context.Context, id int64) (int64, bool, error) {
	var shares int64
	found, err := getOne(ctx, r.db, &shares, psql.Update("posts").
		Set("shares", sq.Expr("shares + 1")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING shares"))
	return shares, found, err
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, psql.Select("COUNT(*)").From("posts"))
}

func (r *postRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	return count(ctx, r.db, psql.Select("COUNT(*)").From("posts").Where(sq.Eq{"user_id": userID}))
}

func (r *postRepository) SumLikesByUser(ctx context.Context, userID int64) (int64, error) {
	return count(ctx, r.db, psql.Select("COALESCE(SUM(likes), 0)").From("posts").Where(sq.Eq{"user_id": userID}))
}

func (r *postRepository) ListLuckyEntries(ctx context.Context) ([]models.LuckyEntry, error) {
	entries := []models.LuckyEntry{}
	b := psql.Select("id", "post_id", "lucky_number", "created_at").From("posts").OrderBy("created_at ASC", "id ASC")
	if err := selectAll(ctx, r.db, &entries, b); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *postRepository) SetLuckyNumber(ctx context.Context, tx *sqlx.Tx, id int64, lucky string) error {
	query, args, err := psql.Update("posts").Set("lucky_number", lucky).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	_, err = pick(r.db, tx).ExecContext(ctx, query, args...)
	return err
}
