package service

import (
	"context"
	"strings"

	"github.com/maheshrc27/dreamwall/internal/models"
	"github.com/maheshrc27/dreamwall/internal/repository"
	"github.com/maheshrc27/dreamwall/internal/transfer"
)

type ReportService interface {
	Submit(ctx context.Context, userID int64, req transfer.ReportRequest) (*models.Report, error)
	List(ctx context.Context, status string, p models.Paging) ([]models.Report, models.Pagination, error)
	UpdateStatus(ctx context.Context, id int64, req transfer.ReportStatusRequest) (*models.Report, error)
	Remove(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*transfer.ReportStats, error)
}

type reportService struct {
	rr repository.ReportRepository
}

func NewReportService(rr repository.ReportRepository) ReportService {
	return &reportService{rr: rr}
}

func (s *reportService) Submit(ctx context.Context, userID int64, req transfer.ReportRequest) (*models.Report, error) {
	if req.ContentType == "" || req.ContentID == 0 || req.Reason == "" {
		return nil, invalid("Content type, content ID, and reason are required")
	}
	if err := validateInput(req); err != nil {
		return nil, err
	}

	report := &models.Report{
		ContentType: req.ContentType,
		ContentID:   req.ContentID,
		UserID:      userID,
		Reason:      req.Reason,
		Description: strings.TrimSpace(req.Description),
		Status:      models.ReportStatusPending,
	}
	if err := s.rr.Create(ctx, report); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, invalid("You have already reported this content")
		}
		return nil, err
	}
	return report, nil
}

func (s *reportService) List(ctx context.Context, status string, p models.Paging) ([]models.Report, models.Pagination, error) {
	reports, total, err := s.rr.List(ctx, status, p)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return reports, p.Result(total), nil
}

func (s *reportService) UpdateStatus(ctx context.Context, id int64, req transfer.ReportStatusRequest) (*models.Report, error) {
	if err := validateInput(req); err != nil {
		return nil, invalid("Invalid status")
	}

	found, err := s.rr.UpdateStatus(ctx, id, req.Status, strings.TrimSpace(req.AdminResponse))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, notFound("Report not found")
	}

	report, found, err := s.rr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, notFound("Report not found")
	}
	return report, nil
}

func (s *reportService) Remove(ctx context.Context, id int64) error {
	found, err := s.rr.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return notFound("Report not found")
	}
	return nil
}

func (s *reportService) Stats(ctx context.Context) (*transfer.ReportStats, error) {
	byStatus, err := s.rr.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := &transfer.ReportStats{StatusBreakdown: byStatus}
	for _, c := range byStatus {
		stats.Total += c.Count
		if c.Status == models.ReportStatusPending {
			stats.Pending = c.Count
		}
	}
	return stats, nil
}
