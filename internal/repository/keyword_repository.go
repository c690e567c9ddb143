package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/maheshrc27/dreamwall/internal/models"
)

type KeywordRepository interface {
	List(ctx context.Context) ([]models.Keyword, error)
	Create(ctx context.Context, keyword *models.Keyword) error
	Update(ctx context.Context, id int64, fields map[string]any) (bool, error)
	Remove(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type keywordRepository struct {
	db *sqlx.DB
}

func NewKeywordRepository(db *sqlx.DB) KeywordRepository {
	return &keywordRepository{db: db}
}

func (r *keywordRepository) List(ctx context.Context) ([]models.Keyword, error) {
	keywords := []models.Keyword{}
	b := psql.Select("id", "word", "action", "severity", "created_at", "updated_at").
		From("keywords").
		OrderBy("created_at DESC", "id DESC")
	if err := selectAll(ctx, r.db, &keywords, b); err != nil {
		return nil, err
	}
	return keywords, nil
}

func (r *keywordRepository) Create(ctx context.Context, keyword *models.Keyword) error {
	if keyword.Action == "" {
		keyword.Action = models.KeywordActionReview
	}
	if keyword.Severity == "" {
		keyword.Severity = models.SeverityMedium
	}
	query, args, err := psql.Insert("keywords").
		Columns("word", "action", "severity").
		Values(keyword.Word, keyword.Action, keyword.Severity).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}
	return r.db.QueryRowxContext(ctx, query, args...).Scan(&keyword.ID, &keyword.CreatedAt, &keyword.UpdatedAt)
}

func (r *keywordRepository) Update(ctx context.Context, id int64, fields map[string]any) (bool, error) {
	b := psql.Update("keywords").SetMap(fields).Set("updated_at", sq.Expr("NOW()")).Where(sq.Eq{"id": id})
	return exec(ctx, r.db, b)
}

func (r *keywordRepository) Remove(ctx context.Context, id int64) (bool, error) {
	return exec(ctx, r.db, psql.Delete("keywords").Where(sq.Eq{"id": id}))
}

func (r *keywordRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, psql.Select("COUNT(*)").From("keywords"))
}
