package service

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	config "github.com/maheshrc27/dreamwall/configs"
	"github.com/maheshrc27/dreamwall/internal/models"
	"github.com/maheshrc27/dreamwall/internal/repository"
	"github.com/maheshrc27/dreamwall/internal/transfer"
	"github.com/maheshrc27/dreamwall/pkg/logger"
	"github.com/maheshrc27/dreamwall/pkg/utils"
	"go.uber.org/zap"
)

const (
	postIDAttempts = 3
	topPostsLimit  = 10
)

type PostService interface {
	List(ctx context.Context, search string, p models.Paging) (*transfer.PostList, error)
	MyPosts(ctx context.Context, userID int64, p models.Paging) (*transfer.PostList, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	Featured(ctx context.Context) ([]models.Post, error)
	TrendingByLikes(ctx context.Context) ([]models.Post, error)
	TrendingByShares(ctx context.Context) ([]models.Post, error)
	Create(ctx context.Context, user *models.User, req transfer.CreatePostRequest) (*models.Post, error)
	CreateWithAccount(ctx context.Context, req transfer.CreateWithAccountRequest, files []*multipart.FileHeader) (*transfer.CreateWithAccountResponse, error)
	Update(ctx context.Context, actor *models.User, id int64, req transfer.UpdatePostRequest) (*models.Post, error)
	Delete(ctx context.Context, actor *models.User, id int64) error
	Share(ctx context.Context, id int64) (int64, error)
}

type postService struct {
	cfg     config.Config
	pr      repository.PostRepository
	u       repository.UserRepository
	lucky   LuckyNumberService
	media   MediaService
	cleaner MediaCleaner
	now     func() time.Time
}

func NewPostService(
	cfg config.Config,
	pr repository.PostRepository,
	u repository.UserRepository,
	lucky LuckyNumberService,
	media MediaService,
	cleaner MediaCleaner) PostService {
	return &postService{
		cfg:     cfg,
		pr:      pr,
		u:       u,
		lucky:   lucky,
		media:   media,
		cleaner: cleaner,
		now:     time.Now,
	}
}

func (s *postService) List(ctx context.Context, search string, p models.Paging) (*transfer.PostList, error) {
	f := repository.PostFilter{Status: models.PostStatusPublished, Search: strings.TrimSpace(search)}
	posts, total, err := s.pr.List(ctx, f, p)
	if err != nil {
		return nil, err
	}
	return &transfer.PostList{Posts: posts, Pagination: p.Result(total)}, nil
}

func (s *postService) MyPosts(ctx context.Context, userID int64, p models.Paging) (*transfer.PostList, error) {
	posts, total, err := s.pr.List(ctx, repository.PostFilter{UserID: userID, IncludeHidden: true}, p)
	if err != nil {
		return nil, err
	}
	return &transfer.PostList{Posts: posts, Pagination: p.Result(total)}, nil
}

func (s *postService) Get(ctx context.Context, id int64) (*models.Post, error) {
	post, found, err := s.pr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, notFound("Post not found")
	}
	return post, nil
}

func (s *postService) Featured(ctx context.Context) ([]models.Post, error) {
	return s.pr.Top(ctx, repository.PostFilter{FeaturedOnly: true}, topPostsLimit)
}

func (s *postService) TrendingByLikes(ctx context.Context) ([]models.Post, error) {
	return s.pr.Top(ctx, repository.PostFilter{OrderBy: repository.OrderLikes}, topPostsLimit)
}

func (s *postService) TrendingByShares(ctx context.Context) ([]models.Post, error) {
	return s.pr.Top(ctx, repository.PostFilter{OrderBy: repository.OrderShares}, topPostsLimit)
}

func (s *postService) Create(ctx context.Context, user *models.User, req transfer.CreatePostRequest) (*models.Post, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if err := validateInput(req); err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:      user.ID,
		Title:       req.Title,
		Description: req.Description,
		Content:     contentOrDescription(req.Content, req.Description),
		Images:      s.media.FilterImages(req.Images),
		Status:      models.PostStatusPublished,
	}
	if req.ContactInfo != nil {
		post.ContactInfo = *req.ContactInfo
	}

	if err := s.insert(ctx, post); err != nil {
		return nil, err
	}
	return s.Get(ctx, post.ID)
}

func (s *postService) CreateWithAccount(ctx context.Context, req transfer.CreateWithAccountRequest, files []*multipart.FileHeader) (*transfer.CreateWithAccountResponse, error) {
	req.Contact.Name = strings.TrimSpace(req.Contact.Name)
	req.Contact.PhoneNumber = strings.TrimSpace(req.Contact.PhoneNumber)
	req.Contact.Email = strings.TrimSpace(req.Contact.Email)
	if err := validateInput(req.Contact); err != nil {
		return nil, invalid("Name, phone number, and email are required")
	}
	postReq := transfer.CreatePostRequest{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
	}
	if err := validateInput(postReq); err != nil {
		return nil, err
	}
	if len(files) > MaxUploadFiles {
		return nil, invalid("At most 5 images per post")
	}

	user, err := s.findOrCreateAccount(ctx, req.Contact)
	if err != nil {
		return nil, err
	}

	images := models.Images{}
	failed := 0
	for _, fh := range files {
		img, err := s.media.Upload(ctx, fh)
		if err != nil {
			failed++
			logger.Warn("upload image for anonymous post", zap.String("file", fh.Filename), zap.Error(err))
			continue
		}
		images = append(images, img.Image())
	}

	post := &models.Post{
		UserID:      user.ID,
		Title:       postReq.Title,
		Description: postReq.Description,
		Content:     contentOrDescription(req.Content, postReq.Description),
		Images:      images,
		ContactInfo: models.ContactInfo{
			Name:  req.Contact.Name,
			Phone: req.Contact.PhoneNumber,
			Email: req.Contact.Email,
		},
		Status: models.PostStatusPublished,
	}
	if err := s.insert(ctx, post); err != nil {
		s.cleaner.Schedule(ctx, images.PublicIDs())
		return nil, err
	}

	token, err := utils.GenerateToken(s.cfg.SecretKey, user.ID, s.cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	created, err := s.Get(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return &transfer.CreateWithAccountResponse{
		Message:       "Post created successfully",
		Post:          created,
		Token:         token,
		User:          user,
		FailedUploads: failed,
	}, nil
}

// findOrCreateAccount matches on phone number only. An existing account
// takes the submitted name and email.
func (s *postService) findOrCreateAccount(ctx context.Context, c transfer.AccountContact) (*models.User, error) {
	user, found, err := s.u.GetByPhone(ctx, c.PhoneNumber)
	if err != nil {
		return nil, err
	}

	if !found {
		user = &models.User{
			Name:        c.Name,
			PhoneNumber: c.PhoneNumber,
			Email:       &c.Email,
			Role:        models.RoleUser,
			Status:      models.UserStatusActive,
		}
		if _, err := s.u.Create(ctx, nil, user); err != nil {
			if repository.IsUniqueViolation(err) {
				return nil, conflict("Email already registered to another account")
			}
			return nil, err
		}
		return user, nil
	}

	if user.Name != c.Name || user.EmailValue() != c.Email {
		if _, err := s.u.Update(ctx, user.ID, map[string]any{"name": c.Name, "email": c.Email}); err != nil {
			if repository.IsUniqueViolation(err) {
				return nil, conflict("Email already registered to another account")
			}
			return nil, err
		}
		user.Name = c.Name
		user.Email = &c.Email
	}
	return user, nil
}

// insert assigns the lucky number and public post id, retrying the id when
// a concurrent insert took the same sequence slot.
func (s *postService) insert(ctx context.Context, post *models.Post) error {
	post.LuckyNumber = s.lucky.Next(ctx)

	for attempt := 0; attempt < postIDAttempts; attempt++ {
		now := s.now()
		last, err := s.pr.LastSequenceSince(ctx, startOfDay(now))
		if err != nil {
			return err
		}
		post.PostID = FormatPostID(now, last+1+int64(attempt))

		_, err = s.pr.Create(ctx, nil, post)
		if err == nil {
			return nil
		}
		if !repository.IsUniqueViolation(err) {
			return err
		}
		logger.Debug("post id taken, retrying", zap.String("post_id", post.PostID), zap.Int("attempt", attempt+1))
	}
	return conflict("Could not allocate a post id, please retry")
}

func (s *postService) Update(ctx context.Context, actor *models.User, id int64, req transfer.UpdatePostRequest) (*models.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.UserID != actor.ID && !actor.IsAdmin() {
		return nil, unauthorized("Not authorized")
	}
	req.Title = trimmed(req.Title)
	req.Description = trimmed(req.Description)
	if err := validateInput(req); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Content != nil && strings.TrimSpace(*req.Content) != "" {
		fields["content"] = *req.Content
	}
	if req.ContactInfo != nil {
		fields["contact_info"] = *req.ContactInfo
	}

	var orphans []string
	if req.Images != nil {
		kept := s.media.FilterImages(*req.Images)
		fields["images"] = kept
		if len(*req.Images) != len(post.Images) {
			orphans = removedImages(post.Images, kept)
		}
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
	if len(orphans) > 0 {
		s.cleaner.Schedule(ctx, orphans)
	}
	return s.Get(ctx, id)
}

func (s *postService) Delete(ctx context.Context, actor *models.User, id int64) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if post.UserID != actor.ID && !actor.IsAdmin() {
		return forbidden("Not authorized to delete this post")
	}

	found, err := s.pr.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return notFound("Post not found")
	}
	s.cleaner.Schedule(ctx, post.Images.PublicIDs())
	return nil
}

func (s *postService) Share(ctx context.Context, id int64) (int64, error) {
	shares, found, err := s.pr.IncrementShares(ctx, id)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, notFound("Post not found")
	}
	return shares, nil
}

func contentOrDescription(content, description string) string {
	if strings.TrimSpace(content) == "" {
		return description
	}
	return content
}

// removedImages lists public ids present in old but not in kept.
func removedImages(old, kept models.Images) []string {
	keep := make(map[string]struct{}, len(kept))
	for _, img := range kept {
		keep[img.PublicID] = struct{}{}
	}
	var gone []string
	for _, id := range old.PublicIDs() {
		if _, ok := keep[id]; !ok {
			gone = append(gone, id)
		}
	}
	return gone
}
