package service

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/maheshrc27/dreamwall/internal/models"
	"github.com/maheshrc27/dreamwall/internal/repository"
	"github.com/maheshrc27/dreamwall/internal/transfer"
	"github.com/maheshrc27/dreamwall/pkg/logger"
	"go.uber.org/zap"
)

type LotteryService interface {
	List(ctx context.Context) ([]models.Lottery, error)
	Create(ctx context.Context, req transfer.LotteryRequest) (*models.Lottery, error)
	Update(ctx context.Context, id int64, req transfer.LotteryUpdate) (*models.Lottery, error)
	Remove(ctx context.Context, id int64) error
	Draw(ctx context.Context, id int64) (*transfer.DrawResult, error)
	Winners(ctx context.Context) ([]models.LotteryWinner, error)
	Current(ctx context.Context) (*models.Lottery, error)
}

type lotteryService struct {
	lr   repository.LotteryRepository
	intn func(n int) int
	now  func() time.Time
}

func NewLotteryService(lr repository.LotteryRepository) LotteryService {
	return &lotteryService{lr: lr, intn: rand.Intn, now: time.Now}
}

func (s *lotteryService) List(ctx context.Context) ([]models.Lottery, error) {
	return s.lr.List(ctx)
}

func (s *lotteryService) Create(ctx context.Context, req transfer.LotteryRequest) (*models.Lottery, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateInput(req); err != nil {
		return nil, err
	}

	lottery := &models.Lottery{
		Name:            req.Name,
		Description:     req.Description,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Prize:           req.Prize,
		MaxParticipants: req.MaxParticipants,
		Participants:    pq.Int64Array(req.Participants),
		Status:          req.Status,
	}
	if lottery.MaxParticipants == 0 {
		lottery.MaxParticipants = models.DefaultMaxParticipants
	}
	if len(lottery.Participants) > lottery.MaxParticipants {
		return nil, invalid("Too many participants")
	}

	if err := s.lr.Create(ctx, lottery); err != nil {
		return nil, err
	}
	return lottery, nil
}

func (s *lotteryService) get(ctx context.Context, id int64) (*models.Lottery, error) {
	lottery, found, err := s.lr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, notFound("Lottery not found")
	}
	return lottery, nil
}

func (s *lotteryService) Update(ctx context.Context, id int64, req transfer.LotteryUpdate) (*models.Lottery, error) {
	req.Name = trimmed(req.Name)
	if err := validateInput(req); err != nil {
		return nil, err
	}
	current, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.StartDate != nil {
		fields["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		fields["end_date"] = *req.EndDate
	}
	if req.Prize != nil {
		fields["prize"] = *req.Prize
	}
	limit := current.MaxParticipants
	if req.MaxParticipants != nil {
		limit = *req.MaxParticipants
		fields["max_participants"] = limit
	}
	if req.Participants != nil {
		if len(*req.Participants) > limit {
			return nil, invalid("Too many participants")
		}
		fields["participants"] = pq.Int64Array(*req.Participants)
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}

	if len(fields) > 0 {
		found, err := s.lr.Update(ctx, id, fields)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, notFound("Lottery not found")
		}
	}
	return s.get(ctx, id)
}

func (s *lotteryService) Remove(ctx context.Context, id int64) error {
	found, err := s.lr.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return notFound("Lottery not found")
	}
	return nil
}

// Draw picks one participant uniformly at random and completes the
// lottery. A failed draw leaves the lottery untouched.
func (s *lotteryService) Draw(ctx context.Context, id int64) (*transfer.DrawResult, error) {
	lottery, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if lottery.Status != models.LotteryStatusActive {
		return nil, invalid("Lottery is not active")
	}
	if len(lottery.Participants) == 0 {
		return nil, invalid("No participants in lottery")
	}

	winner := lottery.Participants[s.intn(len(lottery.Participants))]
	drawnAt := s.now().UTC()

	ok, err := s.lr.CompleteDraw(ctx, id, winner, drawnAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, invalid("Lottery is not active")
	}

	lottery.WinnerID = &winner
	lottery.Status = models.LotteryStatusCompleted
	lottery.DrawnAt = &drawnAt
	logger.Info("lottery drawn", zap.Int64("lottery_id", id), zap.Int64("winner", winner))

	return &transfer.DrawResult{
		Message: "Winner drawn successfully",
		Winner:  winner,
		Lottery: lottery,
	}, nil
}

func (s *lotteryService) Winners(ctx context.Context) ([]models.LotteryWinner, error) {
	return s.lr.ListWinners(ctx)
}

func (s *lotteryService) Current(ctx context.Context) (*models.Lottery, error) {
	lottery, found, err := s.lr.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, notFound("No active lottery")
	}
	return lottery, nil
}
