package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/auth"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/models"
	apperrors "github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/pkg/errors"
)

// UserDTO is the API-facing shape of a user.
type UserDTO struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
}

// SignupInput defines attributes required to register a user.
type SignupInput struct {
	Email    string
	Password string
	Name     string
	Nickname string
}

// UserService handles registration and login.
type UserService struct {
	db  *gorm.DB
	jwt *auth.JWTService
}

// NewUserService constructs a UserService.
func NewUserService(db *gorm.DB, jwt *auth.JWTService) (*UserService, error) {
	if db == nil {
		return nil, errors.New("user service: db is required")
	}
	if jwt == nil {
		return nil, errors.New("user service: jwt service is required")
	}
	return &UserService{db: db, jwt: jwt}, nil
}

// Signup registers a new user with a bcrypt-hashed password.
func (s *UserService) Signup(ctx context.Context, input SignupInput) (*UserDTO, error) {
	ctx = ensureContext(ctx)

	email := strings.ToLower(strings.TrimSpace(input.Email))
	nickname := strings.TrimSpace(input.Nickname)
	if email == "" || nickname == "" || input.Password == "" {
		return nil, apperrors.NewBadRequest("email, nickname and password are required")
	}

	var existing int64
	if err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ? OR nickname = ?", email, nickname).
		Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("user service: check duplicates: %w", err)
	}
	if existing > 0 {
		return nil, apperrors.ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("user service: hash password: %w", err)
	}

	user := models.User{
		Email:    email,
		Password: string(hash),
		Name:     strings.TrimSpace(input.Name),
		Nickname: nickname,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("user service: create user: %w", err)
	}

	dto := mapUser(user)
	return &dto, nil
}

// Login verifies credentials and issues an access token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *UserDTO, error) {
	ctx = ensureContext(ctx)

	var user models.User
	if err := s.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("user service: load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateAccessToken(user.ID, user.Nickname)
	if err != nil {
		return "", nil, fmt.Errorf("user service: issue token: %w", err)
	}

	dto := mapUser(user)
	return token, &dto, nil
}

func mapUser(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Nickname: user.Nickname,
	}
}
