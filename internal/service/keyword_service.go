package service

import (
	"context"
	"strings"

	"github.com/maheshrc27/dreamwall/internal/models"
	"github.com/maheshrc27/dreamwall/internal/repository"
	"github.com/maheshrc27/dreamwall/internal/transfer"
)

type KeywordService interface {
	List(ctx context.Context) ([]models.Keyword, error)
	Create(ctx context.Context, req transfer.KeywordRequest) (*models.Keyword, error)
	Update(ctx context.Context, id int64, req transfer.KeywordUpdate) error
	Remove(ctx context.Context, id int64) error
}

type keywordService struct {
	kr repository.KeywordRepository
}

func NewKeywordService(kr repository.KeywordRepository) KeywordService {
	return &keywordService{kr: kr}
}

func (s *keywordService) List(ctx context.Context) ([]models.Keyword, error) {
	return s.kr.List(ctx)
}

func (s *keywordService) Create(ctx context.Context, req transfer.KeywordRequest) (*models.Keyword, error) {
	req.Word = strings.TrimSpace(req.Word)
	if err := validateInput(req); err != nil {
		return nil, err
	}

	keyword := &models.Keyword{Word: req.Word, Action: req.Action, Severity: req.Severity}
	if err := s.kr.Create(ctx, keyword); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, conflict("Keyword already exists")
		}
		return nil, err
	}
	return keyword, nil
}

func (s *keywordService) Update(ctx context.Context, id int64, req transfer.KeywordUpdate) error {
	req.Word = trimmed(req.Word)
	if err := validateInput(req); err != nil {
		return err
	}

	fields := map[string]any{}
	if req.Word != nil {
		fields["word"] = *req.Word
	}
	if req.Action != nil {
		fields["action"] = *req.Action
	}
	if req.Severity != nil {
		fields["severity"] = *req.Severity
	}
	if len(fields) == 0 {
		return invalid("Nothing to update")
	}

	found, err := s.kr.Update(ctx, id, fields)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return conflict("Keyword already exists")
		}
		return err
	}
	if !found {
		return notFound("Keyword not found")
	}
	return nil
}

func (s *keywordService) Remove(ctx context.Context, id int64) error {
	found, err := s.kr.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return notFound("Keyword not found")
	}
	return nil
}
