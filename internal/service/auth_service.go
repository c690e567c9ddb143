package service

import (
	"context"
	"strings"

	config "github.com/maheshrc27/dreamwall/configs"
	"github.com/maheshrc27/dreamwall/internal/models"
	"github.com/maheshrc27/dreamwall/internal/repository"
	"github.com/maheshrc27/dreamwall/internal/transfer"
	"github.com/maheshrc27/dreamwall/pkg/utils"
)

type AuthService interface {
	Register(ctx context.Context, req transfer.RegisterRequest) (*transfer.AuthResponse, error)
	Login(ctx context.Context, req transfer.LoginRequest) (*transfer.AuthResponse, error)
	IssueToken(userID int64) (string, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	PromoteAdmin(ctx context.Context, phone string) (*models.User, error)
}

type authService struct {
	cfg config.Config
	u   repository.UserRepository
}

func NewAuthService(cfg config.Config, u repository.UserRepository) AuthService {
	return &authService{
		cfg: cfg,
		u:   u,
	}
}

func (s *authService) Register(ctx context.Context, req transfer.RegisterRequest) (*transfer.AuthResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	req.Email = strings.TrimSpace(req.Email)
	if err := validateInput(req); err != nil {
		return nil, err
	}

	if _, exists, err := s.u.GetByPhone(ctx, req.PhoneNumber); err != nil {
		return nil, err
	} else if exists {
		return nil, conflict("Phone number already registered")
	}
	if req.Email != "" {
		if _, exists, err := s.u.GetByEmail(ctx, req.Email); err != nil {
			return nil, err
		} else if exists {
			return nil, conflict("Email already registered")
		}
	}

	user := &models.User{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Role:        models.RoleUser,
		Status:      models.UserStatusActive,
	}
	if req.Email != "" {
		user.Email = &req.Email
	}
	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if _, err := s.u.Create(ctx, nil, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, conflict("User already exists")
		}
		return nil, err
	}

	return s.respond(user)
}

func (s *authService) Login(ctx context.Context, req transfer.LoginRequest) (*transfer.AuthResponse, error) {
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	if err := validateInput(req); err != nil {
		return nil, err
	}

	user, found, err := s.u.GetByPhone(ctx, req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, unauthorized("Invalid credentials")
	}

	if user.PasswordHash != "" {
		ok, err := utils.CheckPassword(user.PasswordHash, req.Password)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, unauthorized("Invalid credentials")
		}
	}

	if user.IsLocked || user.Status != models.UserStatusActive {
		return nil, forbidden("Account is locked or inactive")
	}

	return s.respond(user)
}

func (s *authService) respond(user *models.User) (*transfer.AuthResponse, error) {
	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &transfer.AuthResponse{Token: token, User: user}, nil
}

func (s *authService) IssueToken(userID int64) (string, error) {
	return utils.GenerateToken(s.cfg.SecretKey, userID, s.cfg.TokenTTL)
}

// Authenticate resolves a bearer token to a stored user.
func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, unauthorized("No token, authorization denied")
	}
	claims, err := utils.ValidateToken(s.cfg.SecretKey, token)
	if err != nil {
		return nil, unauthorized("Token is not valid")
	}

	user, found, err := s.u.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, unauthorized("Token is not valid")
	}
	return user, nil
}

func (s *authService) PromoteAdmin(ctx context.Context, phone string) (*models.User, error) {
	user, found, err := s.u.GetByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, notFound("User not found")
	}

	if _, err := s.u.Update(ctx, user.ID, map[string]any{"role": models.RoleAdmin}); err != nil {
		return nil, err
	}
	user.Role = models.RoleAdmin
	return user, nil
}
