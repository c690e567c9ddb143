package models

import "time"

type Comment struct {
	ID        int64       `db:"id" json:"id"`
	PostID    int64       `db:"post_id" json:"postId"`
	UserID    *int64      `db:"user_id" json:"userId,omitempty"`
	Name      string      `db:"name" json:"name,omitempty"`
	Content   string      `db:"content" json:"content"`
	UserIP    string      `db:"user_ip" json:"userIp"`
	Status    string      `db:"status" json:"status"`
	CreatedAt time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time   `db:"updated_at" json:"updatedAt"`
	User      UserSummary `db:"user" json:"user"`
	PostTitle string      `db:"post_title" json:"postTitle,omitempty"`
}

const (
	CommentStatusApproved = "approved"
	CommentStatusPending  = "pending"
	CommentStatusRejected = "rejected"
)

var CommentStatuses = []string{CommentStatusApproved, CommentStatusPending, CommentStatusRejected}

type Like struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"userId"`
	PostID    int64     `db:"post_id" json:"postId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
