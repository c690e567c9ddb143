package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/maheshrc27/dreamwall/internal/models"
)

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id int64) (*models.Report, bool, error)
	List(ctx context.Context, status string, p models.Paging) ([]models.Report, int64, error)
	UpdateStatus(ctx context.Context, id int64, status, adminResponse string) (bool, error)
	Remove(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) ([]models.ReportStatusCount, error)
}

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

var reportColumns = []string{
	"r.id", "r.content_type", "r.content_id", "r.user_id", "r.reason", "r.description",
	"r.status", "r.admin_response", "r.created_at", "r.updated_at",
	`u.id AS "user.id"`, `u.name AS "user.name"`,
	`u.phone_number AS "user.phone_number"`, `u.email AS "user.email"`,
}

// Create fails with a unique violation when the user already reported the
// same content.
func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	if report.Status == "" {
		report.Status = models.ReportStatusPending
	}
	query, args, err := psql.Insert("reports").
		Columns("content_type", "content_id", "user_id", "reason", "description", "status").
		Values(report.ContentType, report.ContentID, report.UserID, report.Reason, report.Description, report.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}
	return r.db.QueryRowxContext(ctx, query, args...).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
}

func (r *reportRepository) GetByID(ctx context.Context, id int64) (*models.Report, bool, error) {
	var report models.Report
	b := psql.Select(reportColumns...).From("reports r").
		Join("users u ON u.id = r.user_id").
		Where(sq.Eq{"r.id": id})
	found, err := getOne(ctx, r.db, &report, b)
	if err != nil || !found {
		return nil, false, err
	}
	return &report, true, nil
}

func (r *reportRepository) List(ctx context.Context, status string, p models.Paging) ([]models.Report, int64, error) {
	where := sq.And{}
	if status != "" {
		where = append(where, sq.Eq{"r.status": status})
	}

	total, err := count(ctx, r.db, psql.Select("COUNT(*)").From("reports r").Where(where))
	if err != nil {
		return nil, 0, err
	}

	reports := []models.Report{}
	b := psql.Select(reportColumns...).From("reports r").
		Join("users u ON u.id = r.user_id").
		Where(where).
		OrderBy("r.created_at DESC", "r.id DESC").
		Limit(uint64(p.Limit)).Offset(uint64(p.Offset()))
	if err := selectAll(ctx, r.db, &reports, b); err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id int64, status, adminResponse string) (bool, error) {
	b := psql.Update("reports").
		Set("status", status).
		Set("admin_response", adminResponse).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id})
	return exec(ctx, r.db, b)
}

func (r *reportRepository) Remove(ctx context.Context, id int64) (bool, error) {
	return exec(ctx, r.db, psql.Delete("reports").Where(sq.Eq{"id": id}))
}

func (r *reportRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, psql.Select("COUNT(*)").From("reports"))
}

func (r *reportRepository) CountByStatus(ctx context.Context) ([]models.ReportStatusCount, error) {
	counts := []models.ReportStatusCount{}
	b := psql.Select("status", "COUNT(*) AS count").From("reports").GroupBy("status").OrderBy("status")
	if err := selectAll(ctx, r.db, &counts, b); err != nil {
		return nil, err
	}
	return counts, nil
}
