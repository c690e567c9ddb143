package models

import "time"

// Keyword is a moderation watchword.
type Keyword struct {
	ID        int64     `db:"id" json:"id"`
	Word      string    `db:"word" json:"word"`
	Action    string    `db:"action" json:"action"`
	Severity  string    `db:"severity" json:"severity"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

const (
	KeywordActionBlock  = "block"
	KeywordActionFlag   = "flag"
	KeywordActionReview = "review"
)

const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)
