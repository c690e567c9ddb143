package service

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/maheshrc27/dreamwall/internal/models"
	"github.com/maheshrc27/dreamwall/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLotteryFixture(lotteries ...*models.Lottery) (*lotteryService, *fakeLotteries) {
	repo := &fakeLotteries{lotteries: map[int64]*models.Lottery{}}
	for _, l := range lotteries {
		repo.lotteries[l.ID] = l
	}
	svc := &lotteryService{
		lr:   repo,
		intn: func(n int) int { return n - 1 },
		now:  func() time.Time { return time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC) },
	}
	return svc, repo
}

func TestDrawPicksParticipant(t *testing.T) {
	svc, repo := newLotteryFixture(&models.Lottery{
		ID: 1, Status: models.LotteryStatusActive, Participants: pq.Int64Array{11, 12, 13},
	})

	res, err := svc.Draw(context.Background(), 1)
	require.NoError(t, err)

	assert.EqualValues(t, 13, res.Winner)
	assert.Equal(t, models.LotteryStatusCompleted, res.Lottery.Status)
	require.NotNil(t, res.Lottery.DrawnAt)
	assert.True(t, repo.drawn)
}

func TestDrawRejectsInactiveOrEmpty(t *testing.T) {
	svc, repo := newLotteryFixture(
		&models.Lottery{ID: 1, Status: models.LotteryStatusUpcoming, Participants: pq.Int64Array{1}},
		&models.Lottery{ID: 2, Status: models.LotteryStatusActive},
	)

	_, err := svc.Draw(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Draw(context.Background(), 2)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, models.LotteryStatusActive, repo.lotteries[2].Status)

	_, err = svc.Draw(context.Background(), 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDrawTwiceFailsSecondTime(t *testing.T) {
	svc, _ := newLotteryFixture(&models.Lottery{
		ID: 1, Status: models.LotteryStatusActive, Participants: pq.Int64Array{5},
	})

	_, err := svc.Draw(context.Background(), 1)
	require.NoError(t, err)
	_, err = svc.Draw(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateLotteryDefaults(t *testing.T) {
	svc, _ := newLotteryFixture()
	start := time.Now()

	l, err := svc.Create(context.Background(), transfer.LotteryRequest{
		Name: " Spring ", StartDate: start, EndDate: start.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "Spring", l.Name)
	assert.Equal(t, models.DefaultMaxParticipants, l.MaxParticipants)

	_, err = svc.Create(context.Background(), transfer.LotteryRequest{
		Name: "Small", StartDate: start, EndDate: start.Add(time.Hour),
		MaxParticipants: 1, Participants: []int64{1, 2},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), transfer.LotteryRequest{
		Name: "Backwards", StartDate: start, EndDate: start.Add(-time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
