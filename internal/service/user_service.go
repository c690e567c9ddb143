package service

import (
	"context"
	"time"

	"github.com/maheshrc27/dreamwall/internal/models"
	"github.com/maheshrc27/dreamwall/internal/repository"
	"github.com/maheshrc27/dreamwall/internal/transfer"
)

type UserService interface {
	Stats(ctx context.Context, user *models.User) (*transfer.UserStats, error)
	UpdateProfile(ctx context.Context, userID int64, req transfer.UpdateProfileRequest) (*models.User, error)
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	ListPosts(ctx context.Context, userID int64, p models.Paging) (*transfer.PostList, error)
}

type userService struct {
	u  repository.UserRepository
	pr repository.PostRepository
	cr repository.CommentRepository
}

func NewUserService(u repository.UserRepository, pr repository.PostRepository, cr repository.CommentRepository) UserService {
	return &userService{u: u, pr: pr, cr: cr}
}

func (s *userService) Stats(ctx context.Context, user *models.User) (*transfer.UserStats, error) {
	posts, err := s.pr.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	likes, err := s.pr.SumLikesByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	comments, err := s.cr.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &transfer.UserStats{
		TotalPosts:    posts,
		TotalLikes:    likes,
		TotalComments: comments,
		JoinDate:      user.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, req transfer.UpdateProfileRequest) (*models.User, error) {
	req.Name = trimmed(req.Name)
	req.Email = trimmed(req.Email)
	req.PhoneNumber = trimmed(req.PhoneNumber)
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
	if req.PhoneNumber != nil {
		fields["phone_number"] = *req.PhoneNumber
	}

	found, err := s.u.Update(ctx, userID, fields)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, conflict("Phone number or email already in use")
		}
		return nil, err
	}
	if !found {
		return nil, notFound("User not found")
	}
	return s.GetUser(ctx, userID)
}

func (s *userService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	user, found, err := s.u.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, notFound("User not found")
	}
	return user, nil
}

func (s *userService) ListPosts(ctx context.Context, userID int64, p models.Paging) (*transfer.PostList, error) {
	posts, total, err := s.pr.List(ctx, repository.PostFilter{UserID: userID}, p)
	if err != nil {
		return nil, err
	}
	return &transfer.PostList{Posts: posts, Pagination: p.Result(total)}, nil
}
