package transfer

import (
	"time"

	"github.com/maheshrc27/dreamwall/internal/models"
)

type AdminStats struct {
	TotalPosts     int64 `json:"totalPosts"`
	TotalUsers     int64 `json:"totalUsers"`
	TotalComments  int64 `json:"totalComments"`
	TotalReports   int64 `json:"totalReports"`
	TotalKeywords  int64 `json:"totalKeywords"`
	TotalLotteries int64 `json:"totalLotteries"`
}

type AdminPostUpdate struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=100"`
	Content     *string `json:"content"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=published draft archived pending_review rejected"`
	IsFeatured  *bool   `json:"isFeatured"`
	IsHidden    *bool   `json:"isHidden"`
	LuckyNumber *string `json:"luckyNumber" validate:"omitempty,len=3,number"`
}

type AdminUserUpdate struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=60"`
	Email    *string `json:"email" validate:"omitempty,email,max=50"`
	Role     *string `json:"role" validate:"omitempty,oneof=user admin moderator"`
	Status   *string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
	IsLocked *bool   `json:"isLocked"`
}

type AdminCommentUpdate struct {
	Content *string `json:"content" validate:"omitempty,min=1"`
	Status  *string `json:"status" validate:"omitempty,oneof=approved pending rejected"`
}

type KeywordRequest struct {
	Word     string `json:"word" validate:"required,max=100"`
	Action   string `json:"action" validate:"omitempty,oneof=block flag review"`
	Severity string `json:"severity" validate:"omitempty,oneof=low medium high"`
}

type KeywordUpdate struct {
	Word     *string `json:"word" validate:"omitempty,min=1,max=100"`
	Action   *string `json:"action" validate:"omitempty,oneof=block flag review"`
	Severity *string `json:"severity" validate:"omitempty,oneof=low medium high"`
}

type LotteryRequest struct {
	Name            string    `json:"name" validate:"required,max=200"`
	Description     string    `json:"description"`
	StartDate       time.Time `json:"startDate" validate:"required"`
	EndDate         time.Time `json:"endDate" validate:"required,gtefield=StartDate"`
	Prize           string    `json:"prize"`
	MaxParticipants int       `json:"maxParticipants" validate:"omitempty,min=1"`
	Participants    []int64   `json:"participants"`
	Status          string    `json:"status" validate:"omitempty,oneof=upcoming active completed"`
}

type LotteryUpdate struct {
	Name            *string    `json:"name" validate:"omitempty,min=1,max=200"`
	Description     *string    `json:"description"`
	StartDate       *time.Time `json:"startDate"`
	EndDate         *time.Time `json:"endDate"`
	Prize           *string    `json:"prize"`
	MaxParticipants *int       `json:"maxParticipants" validate:"omitempty,min=1"`
	Participants    *[]int64   `json:"participants"`
	Status          *string    `json:"status" validate:"omitempty,oneof=upcoming active completed"`
}

type DrawResult struct {
	Message string          `json:"message"`
	Winner  int64           `json:"winner"`
	Lottery *models.Lottery `json:"lottery"`
}

type ReportRequest struct {
	ContentType string `json:"contentType" validate:"required,oneof=post comment"`
	ContentID   int64  `json:"contentId" validate:"required,gt=0"`
	Reason      string `json:"reason" validate:"required,oneof=spam inappropriate harassment violence copyright other"`
	Description string `json:"description" validate:"max=500"`
}

type ReportStatusRequest struct {
	Status        string `json:"status" validate:"required,oneof=pending reviewed resolved dismissed"`
	AdminResponse string `json:"adminResponse"`
}

type ReportStats struct {
	Total           int64                      `json:"total"`
	Pending         int64                      `json:"pending"`
	StatusBreakdown []models.ReportStatusCount `json:"byStatus"`
}

type SettingsUpdateRequest struct {
	models.SiteSettings
	Version *int `json:"version"`
}
