package service

import (
	"context"
	"errors"
	"strings"

	"github.com/maheshrc27/dreamwall/internal/models"
	"github.com/maheshrc27/dreamwall/internal/repository"
	"github.com/maheshrc27/dreamwall/internal/transfer"
)

type SettingsService interface {
	Get(ctx context.Context) (*models.SettingsRecord, error)
	Update(ctx context.Context, req transfer.SettingsUpdateRequest) (*models.SettingsRecord, error)
}

type settingsService struct {
	sr repository.SettingsRepository
}

func NewSettingsService(sr repository.SettingsRepository) SettingsService {
	return &settingsService{sr: sr}
}

// Get returns the stored settings, writing the defaults on first use.
func (s *settingsService) Get(ctx context.Context) (*models.SettingsRecord, error) {
	rec, found, err := s.sr.Get(ctx)
	if err != nil {
		return nil, err
	}
	if found {
		return rec, nil
	}

	if err := s.sr.Seed(ctx, models.DefaultSiteSettings()); err != nil {
		return nil, err
	}
	rec, found, err = s.sr.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("site settings missing after seeding")
	}
	return rec, nil
}

func checkSettings(st models.SiteSettings) error {
	blank := func(v string) bool { return strings.TrimSpace(v) == "" }

	pc := st.PostCreationConfirmation
	if blank(pc.Title) || blank(pc.Message) || blank(pc.ButtonText) {
		return invalid("Post creation confirmation settings are required")
	}
	if blank(st.TermsAndConditions.Title) || blank(st.TermsAndConditions.Content) {
		return invalid("Terms and conditions settings are required")
	}
	if blank(st.ContactInfo.Email) {
		return invalid("Contact email is required")
	}
	if blank(st.SiteInfo.Name) || blank(st.SiteInfo.Description) {
		return invalid("Site name and description are required")
	}
	return validateInput(st)
}

// Update replaces the settings document. A request carrying a version only
// applies on top of that exact version.
func (s *settingsService) Update(ctx context.Context, req transfer.SettingsUpdateRequest) (*models.SettingsRecord, error) {
	if err := checkSettings(req.SiteSettings); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx); err != nil {
		return nil, err
	}

	rec, ok, err := s.sr.Update(ctx, req.SiteSettings, req.Version)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, conflict("Settings were changed by someone else, reload and try again")
	}
	return rec, nil
}
