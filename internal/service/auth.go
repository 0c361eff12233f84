package service

import (
	"context"
	"errors"

	"github.com/mkraj/wholemart/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// TokenService issues and verifies session tokens
type TokenService interface {
	CreateToken(user *models.User) (string, error)
	VerifyToken(tokenString string) (*models.TokenPayload, error)
}

// AuthService authenticates buyers and admins
type AuthService struct {
	repo  UserRepository
	token TokenService
}

// NewAuthService creates new AuthService instance
func NewAuthService(repo UserRepository, token TokenService) *AuthService {
	return &AuthService{
		repo:  repo,
		token: token,
	}
}

// Login verifies credentials and the approval gate, then issues a
// session token
func (as *AuthService) Login(ctx context.Context, login, password string) (string, error) {
	user, err := as.repo.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return "", models.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", models.ErrInvalidCredentials
	}

	// pending and rejected buyers cannot log in; admins are always
	// approved
	if user.Role == models.RoleBuyer && user.AccountStatus != models.AccountStatusApproved {
		return "", models.ErrAccountNotApproved
	}

	return as.token.CreateToken(user)
}
