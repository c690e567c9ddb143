package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type Post struct {
	ID            int64       `db:"id" json:"id"`
	PostID        string      `db:"post_id" json:"postId"`
	UserID        int64       `db:"user_id" json:"userId"`
	Title         string      `db:"title" json:"title"`
	Content       string      `db:"content" json:"content"`
	Description   string      `db:"description" json:"description"`
	Images        Images      `db:"images" json:"images"`
	ContactInfo   ContactInfo `db:"contact_info" json:"contactInfo"`
	Likes         int64       `db:"likes" json:"likes"`
	Shares        int64       `db:"shares" json:"shares"`
	CommentsCount int64       `db:"comments_count" json:"commentsCount"`
	IsFeatured    bool        `db:"is_featured" json:"isFeatured"`
	IsHidden      bool        `db:"is_hidden" json:"isHidden"`
	Status        string      `db:"status" json:"status"`
	LuckyNumber   string      `db:"lucky_number" json:"luckyNumber"`
	CreatedAt     time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updatedAt"`
	User          UserSummary `db:"user" json:"user"`
}

type Image struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// Images is stored as a jsonb array.
type Images []Image

func (i Images) Value() (driver.Value, error) {
	if i == nil {
		return "[]", nil
	}
	b, err := json.Marshal(i)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (i *Images) Scan(src any) error {
	b, err := jsonBytes(src)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		*i = Images{}
		return nil
	}
	return json.Unmarshal(b, i)
}

func (i Images) PublicIDs() []string {
	ids := make([]string, 0, len(i))
	for _, img := range i {
		if img.PublicID != "" {
			ids = append(ids, img.PublicID)
		}
	}
	return ids
}

type ContactInfo struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

func (c ContactInfo) IsZero() bool {
	return c == ContactInfo{}
}

func (c ContactInfo) Value() (driver.Value, error) {
	if c.IsZero() {
		return nil, nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *ContactInfo) Scan(src any) error {
	b, err := jsonBytes(src)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		*c = ContactInfo{}
		return nil
	}
	return json.Unmarshal(b, c)
}

func jsonBytes(src any) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New("unsupported jsonb source type")
	}
}

const (
	PostStatusPublished     = "published"
	PostStatusDraft         = "draft"
	PostStatusArchived      = "archived"
	PostStatusPendingReview = "pending_review"
	PostStatusRejected      = "rejected"
)

var PostStatuses = []string{
	PostStatusPublished,
	PostStatusDraft,
	PostStatusArchived,
	PostStatusPendingReview,
	PostStatusRejected,
}

// LuckyEntry is the slice of a post the lucky-number audit works on.
type LuckyEntry struct {
	ID          int64     `db:"id" json:"id"`
	PostID      string    `db:"post_id" json:"postId"`
	LuckyNumber string    `db:"lucky_number" json:"luckyNumber"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
