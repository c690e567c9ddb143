package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type PostCreationConfirmation struct {
	Title      string `json:"title" validate:"required"`
	Message    string `json:"message" validate:"required"`
	ButtonText string `json:"buttonText" validate:"required"`
}

type TermsAndConditions struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type SiteContactInfo struct {
	Email   string `json:"email" validate:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type SiteInfo struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	FooterText  string `json:"footerText"`
}

// SiteSettings is the admin-editable site copy, persisted as one jsonb
// document.
type SiteSettings struct {
	PostCreationConfirmation PostCreationConfirmation `json:"postCreationConfirmation"`
	TermsAndConditions       TermsAndConditions       `json:"termsAndConditions"`
	ContactInfo              SiteContactInfo          `json:"contactInfo"`
	SiteInfo                 SiteInfo                 `json:"siteInfo"`
}

func (s SiteSettings) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *SiteSettings) Scan(src any) error {
	b, err := jsonBytes(src)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		*s = SiteSettings{}
		return nil
	}
	return json.Unmarshal(b, s)
}

type SettingsRecord struct {
	Settings  SiteSettings `db:"document" json:"settings"`
	Version   int          `db:"version" json:"version"`
	UpdatedAt time.Time    `db:"updated_at" json:"updatedAt"`
}

func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		PostCreationConfirmation: PostCreationConfirmation{
			Title:      "夢想卡上傳成功",
			Message:    "感謝您分享您的夢想！您的夢想卡已成功上傳並等待審核。",
			ButtonText: "確定",
		},
		TermsAndConditions: TermsAndConditions{
			Title:   "使用條款與隱私政策",
			Content: "在使用本平台服務前，請仔細閱讀以下條款。",
		},
		ContactInfo: SiteContactInfo{
			Email:   "contact@example.com",
			Phone:   "+886 912 345 678",
			Address: "台北市信義區信義路五段7號",
		},
		SiteInfo: SiteInfo{
			Name:        "希望夢想牆",
			Description: "分享您的夢想，讓世界看見希望",
			FooterText:  "© 2025 希望夢想牆. All rights reserved.",
		},
	}
}
