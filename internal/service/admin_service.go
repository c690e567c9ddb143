package service

import (
	"context"

	"github.com/maheshrc27/dreamwall/internal/models"
	"github.com/maheshrc27/dreamwall/internal/repository"
	"github.com/maheshrc27/dreamwall/internal/transfer"
)

type AdminService interface {
	Stats(ctx context.Context) (*transfer.AdminStats, error)
	ListPosts(ctx context.Context, f repository.PostFilter, p models.Paging) (*transfer.PostList, error)
	UpdatePost(ctx context.Context, id int64, req transfer.AdminPostUpdate) (*models.Post, error)
	ListUsers(ctx context.Context, f repository.UserFilter, p models.Paging) ([]models.User, models.Pagination, error)
	UpdateUser(ctx context.Context, id int64, req transfer.AdminUserUpdate) (*models.User, error)
	RemoveUser(ctx context.Context, id int64) error
	ListComments(ctx context.Context, f repository.CommentFilter, p models.Paging) ([]models.Comment, models.Pagination, error)
	UpdateComment(ctx context.Context, id int64, req transfer.AdminCommentUpdate) (*models.Comment, error)
	RemoveComment(ctx context.Context, id int64) error
}

type adminService struct {
	pr    repository.PostRepository
	u     repository.UserRepository
	cr    repository.CommentRepository
	rr    repository.ReportRepository
	kr    repository.KeywordRepository
	lr    repository.LotteryRepository
	lucky LuckyNumberService
}

func NewAdminService(
	pr repository.PostRepository,
	u repository.UserRepository,
	cr repository.CommentRepository,
	rr repository.ReportRepository,
	kr repository.KeywordRepository,
	lr repository.LotteryRepository,
	lucky LuckyNumberService) AdminService {
	return &adminService{pr: pr, u: u, cr: cr, rr: rr, kr: kr, lr: lr, lucky: lucky}
}

func (s *adminService) Stats(ctx context.Context) (*transfer.AdminStats, error) {
	var stats transfer.AdminStats
	counters := []struct {
		dst *int64
		fn  func(context.Context) (int64, error)
	}{
		{&stats.TotalPosts, s.pr.Count},
		{&stats.TotalUsers, s.u.Count},
		{&stats.TotalComments, s.cr.Count},
		{&stats.TotalReports, s.rr.Count},
		{&stats.TotalKeywords, s.kr.Count},
		{&stats.TotalLotteries, s.lr.Count},
	}
	for _, c := range counters {
		n, err := c.fn(ctx)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}
	return &stats, nil
}

func (s *adminService) ListPosts(ctx context.Context, f repository.PostFilter, p models.Paging) (*transfer.PostList, error) {
	f.IncludeHidden = true
	posts, total, err := s.pr.List(ctx, f, p)
	if err != nil {
		return nil, err
	}
	return &transfer.PostList{Posts: posts, Pagination: p.Result(total)}, nil
}

// UpdatePost applies a partial moderation edit. Editing the lucky number of
// the newest post also moves the lucky-number counter.
func (s *adminService) UpdatePost(ctx context.Context, id int64, req transfer.AdminPostUpdate) (*models.Post, error) {
	req.Title = trimmed(req.Title)
	req.LuckyNumber = trimmed(req.LuckyNumber)
	if err := validateInput(req); err != nil {
		return nil, err
	}
	if req.LuckyNumber != nil && !validLucky(*req.LuckyNumber) {
		return nil, invalid("luckyNumber must be between 001 and 999")
	}

	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.IsFeatured != nil {
		fields["is_featured"] = *req.IsFeatured
	}
	if req.IsHidden != nil {
		fields["is_hidden"] = *req.IsHidden
	}
	if req.LuckyNumber != nil {
		fields["lucky_number"] = *req.LuckyNumber
	}

	if len(fields) > 0 {
		found, err := s.pr.Update(ctx, id, fields)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, notFound("Post not found")
		}
	}
	if req.LuckyNumber != nil {
		s.lucky.Sync(ctx, id, *req.LuckyNumber)
	}

	post, found, err := s.pr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, notFound("Post not found")
	}
	return post, nil
}

func (s *adminService) ListUsers(ctx context.Context, f repository.UserFilter, p models.Paging) ([]models.User, models.Pagination, error) {
	users, total, err := s.u.List(ctx, f, p)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return users, p.Result(total), nil
}

func (s *adminService) UpdateUser(ctx context.Context, id int64, req transfer.AdminUserUpdate) (*models.User, error) {
	req.Name = trimmed(req.Name)
	req.Email = trimmed(req.Email)
	if err := validateInput(req); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		if *req.Email != "" {
			fields["email"] = *req.Email
		} else {
			fields["email"] = nil
		}
	}
	if req.Role != nil {
		fields["role"] = *req.Role
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.IsLocked != nil {
		fields["is_locked"] = *req.IsLocked
	}

	found, err := s.u.Update(ctx, id, fields)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, conflict("Email already in use")
		}
		return nil, err
	}
	if !found {
		return nil, notFound("User not found")
	}

	user, found, err := s.u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, notFound("User not found")
	}
	return user, nil
}

func (s *adminService) RemoveUser(ctx context.Context, id int64) error {
	found, err := s.u.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return notFound("User not found")
	}
	return nil
}

func (s *adminService) ListComments(ctx context.Context, f repository.CommentFilter, p models.Paging) ([]models.Comment, models.Pagination, error) {
	comments, total, err := s.cr.List(ctx, f, p)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return comments, p.Result(total), nil
}

func (s *adminService) UpdateComment(ctx context.Context, id int64, req transfer.AdminCommentUpdate) (*models.Comment, error) {
	req.Content = trimmed(req.Content)
	if err := validateInput(req); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if len(fields) == 0 {
		return nil, invalid("Nothing to update")
	}

	found, err := s.cr.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, notFound("Comment not found")
	}

	comment, found, err := s.cr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, notFound("Comment not found")
	}
	return comment, nil
}

func (s *adminService) RemoveComment(ctx context.Context, id int64) error {
	found, err := s.cr.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return notFound("Comment not found")
	}
	return nil
}
