package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mkraj/wholemart/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is interface for interacting with user-related data
type UserRepository interface {
	// CreateUser inserts new user
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByLogin returns user by login
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	// GetUserByID returns user by id
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// UpdateAccountStatus sets the buyer approval state
	UpdateAccountStatus(ctx context.Context, id uuid.UUID, status string) error
}

// UserService handles buyer registration and the admin approval flow
type UserService struct {
	repo     UserRepository
	notifier Notifier
	logger   *zap.Logger
}

// NewUserService creates new UserService instance
func NewUserService(repo UserRepository, notifier Notifier, logger *zap.Logger) *UserService {
	return &UserService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// Register creates a buyer account pending admin approval
func (us *UserService) Register(ctx context.Context, login, password, businessName string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:            uuid.New(),
		Login:         login,
		PasswordHash:  string(hash),
		BusinessName:  businessName,
		Role:          models.RoleBuyer,
		AccountStatus: models.AccountStatusPending,
		CreatedAt:     time.Now(),
	}

	if err := us.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetAccountStatus approves or rejects a buyer and tells them
func (us *UserService) SetAccountStatus(ctx context.Context, id uuid.UUID, status string) error {
	if err := us.repo.UpdateAccountStatus(ctx, id, status); err != nil {
		return err
	}

	n := &models.Notification{
		UserID:   id,
		Type:     models.NotificationTypeAccountApproved,
		Priority: models.NotificationPriorityHigh,
		Title:    "Account approved",
		Message:  "Your wholesale account has been approved, you can start ordering",
	}
	if status == models.AccountStatusRejected {
		n.Type = models.NotificationTypeAccountRejected
		n.Title = "Account rejected"
		n.Message = "Your wholesale account application was rejected"
	}

	if err := us.notifier.Notify(ctx, n); err != nil {
		us.logger.Error("send account status notification", zap.Error(err))
	}
	return nil
}
