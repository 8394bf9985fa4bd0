package services

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"strings"
	"time"

	"olympusblog/internal/models"
	"olympusblog/internal/repositories"
	"olympusblog/pkg/rabbitmq"
	"olympusblog/pkg/storage"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// resetTokenTTL is how long a mailed password-reset token stays valid.
const resetTokenTTL = 72 * time.Hour

// EmailPublisher enqueues outgoing mail for asynchronous delivery.
type EmailPublisher interface {
	PublishEmail(msg rabbitmq.EmailMessage) error
}

// AuthService handles registration, login, account updates and the password
// reset flow.
type AuthService struct {
	userRepo   repositories.UserRepository
	tokenRepo  repositories.TokenRepository
	mail       EmailPublisher
	files      storage.FileStorage
	jwtSecret  []byte
	tokenDurat time.Duration
	resetURL   string
}

// NewAuthService creates a new AuthService. resetURL is the frontend page a
// reset token gets appended to.
func NewAuthService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.TokenRepository,
	mail EmailPublisher,
	files storage.FileStorage,
	jwtSecret string,
	resetURL string,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		mail:       mail,
		files:      files,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
		resetURL:   strings.TrimRight(resetURL, "/"),
	}
}

// Register creates a new account. The email is stored lowercased and the
// avatar defaults to the gravatar identicon for it.
func (s *AuthService) Register(req models.RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, err := s.userRepo.GetByUsername(username); err == nil && existing != nil {
		return nil, fmt.Errorf("username '%s' taken: %w", username, models.ErrConflict)
	}
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, fmt.Errorf("email '%s' registered: %w", email, models.ErrConflict)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Image:    gravatarURL(email),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Login authenticates by email and password. Invalid credentials are
// indistinguishable from an unknown account.
func (s *AuthService) Login(req models.LoginRequest) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", models.ErrNotFound)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", models.ErrNotFound)
	}
	return user, nil
}

// GetUser returns the account for the given ID.
func (s *AuthService) GetUser(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// UpdateUser applies a partial update. Changing the username or email to one
// already in use fails with ErrConflict; an uploaded image replaces the
// avatar.
func (s *AuthService) UpdateUser(userID string, req models.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
				return nil, fmt.Errorf("email '%s' registered: %w", email, models.ErrConflict)
			}
			user.Email = email
		}
	}
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username != user.Username {
			if existing, err := s.userRepo.GetByUsername(username); err == nil && existing != nil {
				return nil, fmt.Errorf("username '%s' taken: %w", username, models.ErrConflict)
			}
			user.Username = username
		}
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if len(req.Image) > 0 {
		url, err := s.files.Upload(req.Image, fmt.Sprintf("%s/avatar", userID))
		if err != nil {
			return nil, fmt.Errorf("failed to upload avatar: %w", err)
		}
		user.Image = url
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before storing the new hash.
func (s *AuthService) ChangePassword(userID string, req models.ChangePasswordRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return nil, &models.ValidationError{Errors: []models.FieldError{
			{Field: "currentPassword", Message: "current password is incorrect"},
		}}
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ForgotPassword stores a fresh reset token in the ephemeral store and queues
// the reset email. A crash after the token write only leaves an orphaned
// token behind.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}

	token := uuid.New().String()
	if err := s.tokenRepo.Save(ctx, token, user.ID, resetTokenTTL); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/%s", s.resetURL, token)
	msg := rabbitmq.EmailMessage{
		To:      user.Email,
		Subject: "Reset Password",
		HTML:    fmt.Sprintf("<a href=%q>Reset Password</a>", link),
	}
	if err := s.mail.PublishEmail(msg); err != nil {
		return fmt.Errorf("failed to queue reset email: %w", err)
	}
	return nil
}

// ResetPassword redeems a token issued by ForgotPassword. An absent or
// expired token fails with ErrTokenExpired; a redeemed token is deleted so it
// cannot be used twice.
func (s *AuthService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (*models.User, error) {
	userID, err := s.tokenRepo.Get(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	if err := s.tokenRepo.Delete(ctx, req.Token); err != nil {
		return nil, err
	}
	return user, nil
}

// GenerateToken issues the signed session token stored in the auth cookie.
func (s *AuthService) GenerateToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses the session token and returns the user ID it was
// issued for.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	return userID, nil
}

func gravatarURL(email string) string {
	return fmt.Sprintf("https://gravatar.com/avatar/%x?d=identicon", md5.Sum([]byte(email)))
}
