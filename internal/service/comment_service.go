package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/maheshrc27/dreamwall/internal/models"
	"github.com/maheshrc27/dreamwall/internal/repository"
	"github.com/maheshrc27/dreamwall/internal/transfer"
)

const maxCommenterName = 60

type CommentService interface {
	Add(ctx context.Context, postID int64, user *models.User, req transfer.CommentRequest, ip string) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
}

type commentService struct {
	cr repository.CommentRepository
}

func NewCommentService(cr repository.CommentRepository) CommentService {
	return &commentService{cr: cr}
}

// Add stores a comment from a signed-in user, or from a guest when user is
// nil. Guests must give a name.
func (s *commentService) Add(ctx context.Context, postID int64, user *models.User, req transfer.CommentRequest, ip string) (*models.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, invalid("Comment content is required")
	}
	if ip == "" {
		ip = "unknown"
	}

	comment := &models.Comment{
		PostID:  postID,
		Content: content,
		UserIP:  ip,
		Status:  models.CommentStatusApproved,
	}

	if user != nil {
		comment.UserID = &user.ID
		comment.User = models.UserSummary{
			ID:          user.ID,
			Name:        user.Name,
			PhoneNumber: user.PhoneNumber,
			Email:       user.Email,
		}
	} else {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return nil, invalid("Name is required for guest comments")
		}
		if utf8.RuneCountInString(name) > maxCommenterName {
			return nil, invalid("Name must be at most 60 characters")
		}
		comment.Name = name
		comment.User = models.UserSummary{Name: name}
	}

	if err := s.cr.Create(ctx, comment); err != nil {
		if repository.IsNoRows(err) {
			return nil, notFound("Post not found")
		}
		return nil, err
	}
	return comment, nil
}

func (s *commentService) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	return s.cr.ListByPost(ctx, postID)
}
