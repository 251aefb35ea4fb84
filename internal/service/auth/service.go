package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/manasmitra/backend/internal/model/user"
)

// ErrInvalidCredentials hides whether the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ValidationError reports a rejected field to the caller; never fatal.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Service implements registration, login and token refresh over the user
// table.
type Service struct {
	db     *gorm.DB
	tokens *TokenService
}

// NewService wires the auth service to its database and token issuer.
func NewService(db *gorm.DB, tokens *TokenService) *Service {
	return &Service{db: db, tokens: tokens}
}

// RegisterInput carries the signup form fields.
type RegisterInput struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Confirm   string `json:"confirm"`
}

// Register validates the input and creates the user.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*user.User, error) {
	switch {
	case in.Username == "":
		return nil, &ValidationError{Field: "username", Message: "This field is required"}
	case in.Email == "":
		return nil, &ValidationError{Field: "email", Message: "This field is required"}
	case len(in.Password) < 8:
		return nil, &ValidationError{Field: "password", Message: "Password must be at least 8 characters"}
	case in.Password != in.Confirm:
		return nil, &ValidationError{Field: "confirm", Message: "Passwords do not match"}
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&user.User{}).Where("username = ?", in.Username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return nil, &ValidationError{Field: "username", Message: "A user with that username already exists"}
	}

	if err := s.db.WithContext(ctx).Model(&user.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return nil, &ValidationError{Field: "email", Message: "A user with that email already exists"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Login verifies credentials and issues a token pair.
func (s *Service) Login(ctx context.Context, username, password string) (Pair, error) {
	var u user.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Pair{}, ErrInvalidCredentials
		}
		return Pair{}, fmt.Errorf("lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return Pair{}, ErrInvalidCredentials
	}

	return s.tokens.IssuePair(u.ID, u.Username)
}

// Refresh exchanges a refresh token for a new access token.
func (s *Service) Refresh(refreshToken string) (string, error) {
	return s.tokens.Refresh(refreshToken)
}

// CurrentUser loads the authenticated caller's profile.
func (s *Service) CurrentUser(ctx context.Context, userID string) (*user.User, error) {
	var u user.User
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&u).Error; err != nil {
		return nil, fmt.Errorf("load user %s: %w", userID, err)
	}
	return &u, nil
}
