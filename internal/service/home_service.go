package service

import (
	"context"

	"github.com/maheshrc27/dreamwall/internal/models"
	"github.com/maheshrc27/dreamwall/internal/repository"
	"github.com/maheshrc27/dreamwall/internal/transfer"
)

const homeSectionLimit = 6

// HomeCache holds the assembled home feed for a short time. A miss or any
// cache failure makes the service rebuild the feed from the database.
type HomeCache interface {
	GetFeed(ctx context.Context) (*transfer.HomeFeed, bool)
	SetFeed(ctx context.Context, feed *transfer.HomeFeed)
	Invalidate(ctx context.Context)
}

type HomeService interface {
	Feed(ctx context.Context) (*transfer.HomeFeed, error)
	Featured(ctx context.Context) ([]models.Post, error)
	Recent(ctx context.Context) ([]models.Post, error)
	Keywords(ctx context.Context) ([]models.Keyword, error)
	Invalidate(ctx context.Context)
}

type homeService struct {
	pr    repository.PostRepository
	kr    repository.KeywordRepository
	cache HomeCache
}

// NewHomeService accepts a nil cache.
func NewHomeService(pr repository.PostRepository, kr repository.KeywordRepository, cache HomeCache) HomeService {
	return &homeService{pr: pr, kr: kr, cache: cache}
}

func (s *homeService) Feed(ctx context.Context) (*transfer.HomeFeed, error) {
	if s.cache != nil {
		if feed, ok := s.cache.GetFeed(ctx); ok {
			return feed, nil
		}
	}

	sections := []struct {
		dst *[]models.Post
		f   repository.PostFilter
	}{
		{f: repository.PostFilter{FeaturedOnly: true, OrderBy: repository.OrderNewest}},
		{f: repository.PostFilter{OrderBy: repository.OrderLikes}},
		{f: repository.PostFilter{OrderBy: repository.OrderShares}},
		{f: repository.PostFilter{OrderBy: repository.OrderComments}},
	}
	feed := &transfer.HomeFeed{}
	sections[0].dst = &feed.FeaturedPosts
	sections[1].dst = &feed.TopLikedPosts
	sections[2].dst = &feed.TopSharedPosts
	sections[3].dst = &feed.TopCommentedPosts

	for _, sec := range sections {
		posts, err := s.pr.Top(ctx, sec.f, homeSectionLimit)
		if err != nil {
			return nil, err
		}
		*sec.dst = posts
	}

	if s.cache != nil {
		s.cache.SetFeed(ctx, feed)
	}
	return feed, nil
}

func (s *homeService) Featured(ctx context.Context) ([]models.Post, error) {
	return s.pr.Top(ctx, repository.PostFilter{OrderBy: repository.OrderLikes}, topPostsLimit)
}

func (s *homeService) Recent(ctx context.Context) ([]models.Post, error) {
	return s.pr.Top(ctx, repository.PostFilter{OrderBy: repository.OrderNewest}, topPostsLimit)
}

func (s *homeService) Keywords(ctx context.Context) ([]models.Keyword, error) {
	return s.kr.List(ctx)
}

// Invalidate drops the cached feed after moderation changes what it shows.
func (s *homeService) Invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
