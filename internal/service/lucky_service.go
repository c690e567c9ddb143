package service

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/maheshrc27/dreamwall/internal/models"
	"github.com/maheshrc27/dreamwall/internal/repository"
	"github.com/maheshrc27/dreamwall/pkg/logger"
	"go.uber.org/zap"
)

const MaxLuckyNumber = 999

func FormatLuckyNumber(n int) string {
	return fmt.Sprintf("%03d", n)
}

// SuccessorLuckyNumber returns the number that follows current in the
// 001..999 cycle. Anything unparseable counts as zero.
func SuccessorLuckyNumber(current string) string {
	n, err := strconv.Atoi(strings.TrimSpace(current))
	if err != nil {
		n = 0
	}
	if n >= MaxLuckyNumber {
		return FormatLuckyNumber(1)
	}
	if n < 0 {
		n = 0
	}
	return FormatLuckyNumber(n + 1)
}

type LuckyBreak struct {
	PostID string `json:"postId"`
	After  string `json:"after"`
	Got    string `json:"got"`
}

type LuckyAudit struct {
	Total          int          `json:"total"`
	Assigned       int          `json:"assigned"`
	Missing        int          `json:"missing"`
	Duplicates     []string     `json:"duplicates"`
	SequenceBreaks []LuckyBreak `json:"sequenceBreaks"`
}

func (a LuckyAudit) Healthy() bool {
	return a.Missing == 0 && len(a.SequenceBreaks) == 0
}

// validLucky accepts exactly three digits in 001..999.
func validLucky(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != "000"
}

// AuditLuckyNumbers inspects entries in creation order. Duplicates are
// reported for information only since the cycle wraps after 999 posts.
func AuditLuckyNumbers(entries []models.LuckyEntry) LuckyAudit {
	audit := LuckyAudit{
		Total:          len(entries),
		Duplicates:     []string{},
		SequenceBreaks: []LuckyBreak{},
	}

	seen := make(map[string]int, len(entries))
	prev := ""
	for _, e := range entries {
		if !validLucky(e.LuckyNumber) {
			audit.Missing++
			prev = ""
			continue
		}
		audit.Assigned++

		seen[e.LuckyNumber]++
		if seen[e.LuckyNumber] == 2 {
			audit.Duplicates = append(audit.Duplicates, e.LuckyNumber)
		}

		if prev != "" && SuccessorLuckyNumber(prev) != e.LuckyNumber {
			audit.SequenceBreaks = append(audit.SequenceBreaks, LuckyBreak{
				PostID: e.PostID,
				After:  prev,
				Got:    e.LuckyNumber,
			})
		}
		prev = e.LuckyNumber
	}
	return audit
}

type LuckyAssignment struct {
	ID   int64
	From string
	To   string
}

// PlanLuckyBackfill renumbers entries by creation order: the i-th post
// (1-based) gets ((i-1) % 999) + 1. Only changed posts are returned.
func PlanLuckyBackfill(entries []models.LuckyEntry) []LuckyAssignment {
	plan := []LuckyAssignment{}
	for i, e := range entries {
		want := FormatLuckyNumber(i%MaxLuckyNumber + 1)
		if e.LuckyNumber != want {
			plan = append(plan, LuckyAssignment{ID: e.ID, From: e.LuckyNumber, To: want})
		}
	}
	return plan
}

type LuckyNumberService interface {
	Next(ctx context.Context) string
	Sync(ctx context.Context, postID int64, lucky string)
	Verify(ctx context.Context) (LuckyAudit, error)
	Backfill(ctx context.Context, dryRun bool) ([]LuckyAssignment, error)
}

type luckyNumberService struct {
	db   *sqlx.DB
	pr   repository.PostRepository
	cr   repository.CounterRepository
	intn func(n int) int
}

func NewLuckyNumberService(db *sqlx.DB, pr repository.PostRepository, cr repository.CounterRepository) LuckyNumberService {
	return &luckyNumberService{db: db, pr: pr, cr: cr, intn: rand.Intn}
}

// Next never fails: when the counter cannot be read it falls back to a
// random number in range.
func (s *luckyNumberService) Next(ctx context.Context) string {
	n, err := s.cr.NextLuckyNumber(ctx)
	if err != nil || n < 1 || n > MaxLuckyNumber {
		fallback := s.intn(MaxLuckyNumber) + 1
		logger.Warn("lucky number counter unavailable, using random fallback",
			zap.Error(err), zap.Int("fallback", fallback))
		return FormatLuckyNumber(fallback)
	}
	return FormatLuckyNumber(n)
}

// Sync moves the counter when an admin edits the newest post's number so
// the next post continues from the edited value.
func (s *luckyNumberService) Sync(ctx context.Context, postID int64, lucky string) {
	if !validLucky(lucky) {
		return
	}
	n, _ := strconv.Atoi(lucky)
	if _, err := s.cr.SyncLuckyNumber(ctx, postID, n); err != nil {
		logger.Warn("sync lucky number counter", zap.Int64("post_id", postID), zap.Error(err))
	}
}

func (s *luckyNumberService) Verify(ctx context.Context) (LuckyAudit, error) {
	entries, err := s.pr.ListLuckyEntries(ctx)
	if err != nil {
		return LuckyAudit{}, err
	}
	return AuditLuckyNumbers(entries), nil
}

func (s *luckyNumberService) Backfill(ctx context.Context, dryRun bool) ([]LuckyAssignment, error) {
	entries, err := s.pr.ListLuckyEntries(ctx)
	if err != nil {
		return nil, err
	}
	plan := PlanLuckyBackfill(entries)
	if dryRun || len(entries) == 0 {
		return plan, nil
	}

	last := (len(entries)-1)%MaxLuckyNumber + 1
	err = repository.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		for _, a := range plan {
			if err := s.pr.SetLuckyNumber(ctx, tx, a.ID, a.To); err != nil {
				return fmt.Errorf("set lucky number of post %d: %w", a.ID, err)
			}
		}
		return s.cr.ResetLuckyNumber(ctx, tx, last)
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}
