package service

import (
	"context"

	"github.com/maheshrc27/dreamwall/internal/repository"
	"github.com/maheshrc27/dreamwall/internal/transfer"
)

type LikeService interface {
	Toggle(ctx context.Context, userID, postID int64) (*transfer.LikeResult, error)
	Status(ctx context.Context, userID, postID int64) (bool, error)
}

type likeService struct {
	lr repository.LikeRepository
}

func NewLikeService(lr repository.LikeRepository) LikeService {
	return &likeService{lr: lr}
}

func (s *likeService) Toggle(ctx context.Context, userID, postID int64) (*transfer.LikeResult, error) {
	liked, likes, err := s.lr.Toggle(ctx, userID, postID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, notFound("Post not found")
		}
		return nil, err
	}
	return &transfer.LikeResult{Liked: liked, Likes: likes}, nil
}

func (s *likeService) Status(ctx context.Context, userID, postID int64) (bool, error) {
	return s.lr.Exists(ctx, userID, postID)
}
