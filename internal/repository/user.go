package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mkraj/wholemart/internal/models"
	"github.com/mkraj/wholemart/internal/repository/postgres"
)

const (
	insertUserQuery = `
						INSERT INTO users (id, login, password_hash, business_name, role, account_status, created_at)
						VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	selectUserByLoginQuery = `
						SELECT id, login, password_hash, business_name, role, account_status, created_at
						FROM users
						WHERE login = $1
`
	selectUserByIDQuery = `
						SELECT id, login, password_hash, business_name, role, account_status, created_at
						FROM users
						WHERE id = $1
`
	updateAccountStatusQuery = `
						UPDATE users
						SET account_status = $1
						WHERE id = $2
`
)

// UserRepository implements user persistence
type UserRepository struct {
	db *postgres.DB
}

// NewUserRepository creates new UserRepository instance
func NewUserRepository(db *postgres.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts new user
func (ur *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	_, err := ur.db.Exec(ctx, insertUserQuery, user.ID, user.Login, user.PasswordHash,
		user.BusinessName, user.Role, user.AccountStatus, user.CreatedAt)
	if err != nil {
		if errCode := ur.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return models.ErrConflictData
		}
		return err
	}
	return nil
}

func (ur *UserRepository) scanUser(row pgx.Row) (*models.User, error) {
	user := models.User{}
	err := row.Scan(&user.ID, &user.Login, &user.PasswordHash, &user.BusinessName,
		&user.Role, &user.AccountStatus, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByLogin returns user by login
func (ur *UserRepository) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	return ur.scanUser(ur.db.QueryRow(ctx, selectUserByLoginQuery, login))
}

// GetUserByID returns user by id
func (ur *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return ur.scanUser(ur.db.QueryRow(ctx, selectUserByIDQuery, id))
}

// UpdateAccountStatus sets the buyer approval state
func (ur *UserRepository) UpdateAccountStatus(ctx context.Context, id uuid.UUID, status string) error {
	cmd, err := ur.db.Exec(ctx, updateAccountStatusQuery, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}
	return nil
}
