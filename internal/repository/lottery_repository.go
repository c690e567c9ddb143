package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/maheshrc27/dreamwall/internal/models"
)

type LotteryRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Lottery, bool, error)
	List(ctx context.Context) ([]models.Lottery, error)
	Create(ctx context.Context, lottery *models.Lottery) error
	Update(ctx context.Context, id int64, fields map[string]any) (bool, error)
	Remove(ctx context.Context, id int64) (bool, error)
	CompleteDraw(ctx context.Context, id, winnerID int64, drawnAt time.Time) (bool, error)
	ListWinners(ctx context.Context) ([]models.LotteryWinner, error)
	Current(ctx context.Context) (*models.Lottery, bool, error)
	Count(ctx context.Context) (int64, error)
}

type lotteryRepository struct {
	db *sqlx.DB
}

func NewLotteryRepository(db *sqlx.DB) LotteryRepository {
	return &lotteryRepository{db: db}
}

var lotteryColumns = []string{
	"l.id", "l.name", "l.description", "l.start_date", "l.end_date", "l.prize",
	"l.max_participants", "l.participants", "l.winner_id", "l.status", "l.drawn_at",
	"l.created_at", "l.updated_at",
}

func selectLotteries() sq.SelectBuilder {
	return psql.Select(lotteryColumns...).From("lotteries l")
}

func (r *lotteryRepository) GetByID(ctx context.Context, id int64) (*models.Lottery, bool, error) {
	var lottery models.Lottery
	found, err := getOne(ctx, r.db, &lottery, selectLotteries().Where(sq.Eq{"l.id": id}))
	if err != nil || !found {
		return nil, false, err
	}
	return &lottery, true, nil
}

func (r *lotteryRepository) List(ctx context.Context) ([]models.Lottery, error) {
	lotteries := []models.Lottery{}
	if err := selectAll(ctx, r.db, &lotteries, selectLotteries().OrderBy("l.created_at DESC", "l.id DESC")); err != nil {
		return nil, err
	}
	return lotteries, nil
}

func (r *lotteryRepository) Create(ctx context.Context, lottery *models.Lottery) error {
	if lottery.Status == "" {
		lottery.Status = models.LotteryStatusUpcoming
	}
	if lottery.MaxParticipants == 0 {
		lottery.MaxParticipants = models.DefaultMaxParticipants
	}
	if lottery.Participants == nil {
		lottery.Participants = []int64{}
	}
	query, args, err := psql.Insert("lotteries").
		Columns("name", "description", "start_date", "end_date", "prize", "max_participants",
			"participants", "status").
		Values(lottery.Name, lottery.Description, lottery.StartDate, lottery.EndDate, lottery.Prize,
			lottery.MaxParticipants, lottery.Participants, lottery.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}
	return r.db.QueryRowxContext(ctx, query, args...).Scan(&lottery.ID, &lottery.CreatedAt, &lottery.UpdatedAt)
}

func (r *lotteryRepository) Update(ctx context.Context, id int64, fields map[string]any) (bool, error) {
	b := psql.Update("lotteries").SetMap(fields).Set("updated_at", sq.Expr("NOW()")).Where(sq.Eq{"id": id})
	return exec(ctx, r.db, b)
}

func (r *lotteryRepository) Remove(ctx context.Context, id int64) (bool, error) {
	return exec(ctx, r.db, psql.Delete("lotteries").Where(sq.Eq{"id": id}))
}

// CompleteDraw records the winner only while the lottery is still active.
// A false result means another draw got there first or the lottery was
// never active.
func (r *lotteryRepository) CompleteDraw(ctx context.Context, id, winnerID int64, drawnAt time.Time) (bool, error) {
	b := psql.Update("lotteries").
		Set("winner_id", winnerID).
		Set("status", models.LotteryStatusCompleted).
		Set("drawn_at", drawnAt).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "status": models.LotteryStatusActive})
	return exec(ctx, r.db, b)
}

func (r *lotteryRepository) ListWinners(ctx context.Context) ([]models.LotteryWinner, error) {
	winners := []models.LotteryWinner{}
	b := psql.Select(lotteryColumns...).
		Columns(`u.id AS "winner.id"`, `u.name AS "winner.name"`,
			`u.phone_number AS "winner.phone_number"`, `u.email AS "winner.email"`).
		From("lotteries l").
		Join("users u ON u.id = l.winner_id").
		Where(sq.Eq{"l.status": models.LotteryStatusCompleted}).
		OrderBy("l.drawn_at DESC NULLS LAST", "l.id DESC")
	if err := selectAll(ctx, r.db, &winners, b); err != nil {
		return nil, err
	}
	return winners, nil
}

// Current returns the most recent active lottery, falling back to the
// latest upcoming one.
func (r *lotteryRepository) Current(ctx context.Context) (*models.Lottery, bool, error) {
	var lottery models.Lottery
	b := selectLotteries().
		Where(sq.Eq{"l.status": []string{models.LotteryStatusActive, models.LotteryStatusUpcoming}}).
		OrderBy("CASE l.status WHEN 'active' THEN 0 ELSE 1 END", "l.created_at DESC", "l.id DESC").
		Limit(1)
	found, err := getOne(ctx, r.db, &lottery, b)
	if err != nil || !found {
		return nil, false, err
	}
	return &lottery, true, nil
}

func (r *lotteryRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, psql.Select("COUNT(*)").From("lotteries"))
}
