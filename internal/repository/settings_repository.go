package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/maheshrc27/dreamwall/internal/models"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*models.SettingsRecord, bool, error)
	Seed(ctx context.Context, settings models.SiteSettings) error
	Update(ctx context.Context, settings models.SiteSettings, expectedVersion *int) (*models.SettingsRecord, bool, error)
}

type settingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*models.SettingsRecord, bool, error) {
	var rec models.SettingsRecord
	found, err := getOne(ctx, r.db, &rec,
		psql.Select("document", "version", "updated_at").From("site_settings").Where("id = 1"))
	if err != nil || !found {
		return nil, false, err
	}
	return &rec, true, nil
}

// Seed writes the initial document unless one already exists.
func (r *settingsRepository) Seed(ctx context.Context, settings models.SiteSettings) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO site_settings (id, document, version) VALUES (1, $1, 1) ON CONFLICT (id) DO NOTHING`,
		settings)
	return err
}

// Update replaces the document and bumps the version. With expectedVersion
// set the write only applies when the stored version still matches; a
// false result then means the caller's copy is stale.
func (r *settingsRepository) Update(ctx context.Context, settings models.SiteSettings, expectedVersion *int) (*models.SettingsRecord, bool, error) {
	b := psql.Update("site_settings").
		Set("document", settings).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", sq.Expr("NOW()")).
		Where("id = 1")
	if expectedVersion != nil {
		b = b.Where("version = ?", *expectedVersion)
	}

	var rec models.SettingsRecord
	found, err := getOne(ctx, r.db, &rec, b.Suffix("RETURNING document, version, updated_at"))
	if err != nil || !found {
		return nil, false, err
	}
	return &rec, true, nil
}
