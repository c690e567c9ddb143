package models

import (
	"time"

	"github.com/lib/pq"
)

type Lottery struct {
	ID              int64         `db:"id" json:"id"`
	Name            string        `db:"name" json:"name"`
	Description     string        `db:"description" json:"description"`
	StartDate       time.Time     `db:"start_date" json:"startDate"`
	EndDate         time.Time     `db:"end_date" json:"endDate"`
	Prize           string        `db:"prize" json:"prize"`
	MaxParticipants int           `db:"max_participants" json:"maxParticipants"`
	Participants    pq.Int64Array `db:"participants" json:"participants"`
	WinnerID        *int64        `db:"winner_id" json:"winner,omitempty"`
	Status          string        `db:"status" json:"status"`
	DrawnAt         *time.Time    `db:"drawn_at" json:"drawnAt,omitempty"`
	CreatedAt       time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updatedAt"`
}

// LotteryWinner is a completed lottery with the winner's public profile in
// place of the bare winner id.
type LotteryWinner struct {
	Lottery
	Winner UserSummary `db:"winner" json:"winner"`
}

const (
	LotteryStatusUpcoming  = "upcoming"
	LotteryStatusActive    = "active"
	LotteryStatusCompleted = "completed"
)

const DefaultMaxParticipants = 100
