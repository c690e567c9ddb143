package models

import "time"

type Report struct {
	ID            int64       `db:"id" json:"id"`
	ContentType   string      `db:"content_type" json:"contentType"`
	ContentID     int64       `db:"content_id" json:"contentId"`
	UserID        int64       `db:"user_id" json:"userId"`
	Reason        string      `db:"reason" json:"reason"`
	Description   string      `db:"description" json:"description"`
	Status        string      `db:"status" json:"status"`
	AdminResponse string      `db:"admin_response" json:"adminResponse"`
	CreatedAt     time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updatedAt"`
	User          UserSummary `db:"user" json:"user"`
}

type ReportStatusCount struct {
	Status string `db:"status" json:"_id"`
	Count  int64  `db:"count" json:"count"`
}

const (
	ContentTypePost    = "post"
	ContentTypeComment = "comment"
)

const (
	ReportStatusPending   = "pending"
	ReportStatusReviewed  = "reviewed"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

var ReportStatuses = []string{ReportStatusPending, ReportStatusReviewed, ReportStatusResolved, ReportStatusDismissed}

var ReportReasons = []string{"spam", "inappropriate", "harassment", "violence", "copyright", "other"}
