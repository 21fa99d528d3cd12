package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/scribehq/scribe-be/internal/apperrors"
	"github.com/scribehq/scribe-be/internal/models"
)

// bcryptCost is the cost factor for all stored credentials.
const bcryptCost = 12

// isUniqueViolation reports whether err is a SQLite unique-constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// UserServiceProvider defines the interface for user services. Every method
// takes the request's querier so it runs inside the caller's transaction when
// one is open.
type UserServiceProvider interface {
	CreateUser(ctx context.Context, q sqlx.ExtContext, name, email, password string) (models.User, error)
	CreateGuest(ctx context.Context, q sqlx.ExtContext, ttl time.Duration) (models.User, error)
	GetUserByID(ctx context.Context, q sqlx.ExtContext, id string) (models.User, error)
	Authenticate(ctx context.Context, q sqlx.ExtContext, email, password string) (models.User, error)
	TouchLastLogin(ctx context.Context, q sqlx.ExtContext, id string, at time.Time) error
	DeleteExpiredGuests(ctx context.Context, q sqlx.ExtContext, now time.Time) (int64, error)
}

// UserService provides business logic for account management.
type UserService struct{}

// NewUserService creates a new UserService.
func NewUserService() *UserService {
	return &UserService{}
}

const userColumns = `id, name, email, password_hash, role, avatar, is_verified, is_guest, guest_expires_at, last_login, created_at, updated_at`

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, q sqlx.ExtContext, id string) (models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, q, &user, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, apperrors.NotFound("user not found")
		}
		return models.User{}, fmt.Errorf("querying user %s: %w", id, err)
	}
	user.PasswordHash = ""
	return user, nil
}

// getUserByEmail retrieves a user by lowercased email, including the password
// hash for credential checks.
func (s *UserService) getUserByEmail(ctx context.Context, q sqlx.ExtContext, email string) (models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, q, &user, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, apperrors.NotFound("user not found")
		}
		return models.User{}, fmt.Errorf("querying user by email: %w", err)
	}
	return user, nil
}

// CreateUser registers a new account with role USER, hashing the password.
// Returns a conflict error when the email is already registered.
func (s *UserService) CreateUser(ctx context.Context, q sqlx.ExtContext, name, email, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var exists bool
	if err := sqlx.GetContext(ctx, q, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, email); err != nil {
		return models.User{}, fmt.Errorf("checking email uniqueness: %w", err)
	}
	if exists {
		return models.User{}, apperrors.Conflict("email already registered", "email", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        &email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = q.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, email, user.PasswordHash, user.Role, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			// Lost the race against a concurrent registration; the unique
			// index makes it the same outcome as the pre-check.
			return models.User{}, apperrors.Conflict("email already registered", "email", email)
		}
		return models.User{}, fmt.Errorf("inserting user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// CreateGuest creates a time-limited guest identity with no credentials.
func (s *UserService) CreateGuest(ctx context.Context, q sqlx.ExtContext, ttl time.Duration) (models.User, error) {
	now := time.Now().UTC()
	expires := now.Add(ttl)
	id := uuid.New().String()

	user := models.User{
		ID:             id,
		Name:           "Guest-" + id[:8],
		Role:           models.RoleUser,
		IsGuest:        true,
		GuestExpiresAt: &expires,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := q.ExecContext(ctx,
		`INSERT INTO users (id, name, role, is_guest, guest_expires_at, created_at, updated_at) VALUES (?, ?, ?, 1, ?, ?, ?)`,
		user.ID, user.Name, user.Role, expires, now, now)
	if err != nil {
		return models.User{}, fmt.Errorf("inserting guest user: %w", err)
	}
	return user, nil
}

// Authenticate verifies credentials against the lowercased email. Unknown
// email and wrong password fail identically so callers cannot enumerate
// accounts.
func (s *UserService) Authenticate(ctx context.Context, q sqlx.ExtContext, email, password string) (models.User, error) {
	user, err := s.getUserByEmail(ctx, q, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return models.User{}, apperrors.Unauthenticated("invalid credentials")
		}
		return models.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, apperrors.Unauthenticated("invalid credentials")
	}

	user.PasswordHash = ""
	return user, nil
}

// TouchLastLogin records a successful login time.
func (s *UserService) TouchLastLogin(ctx context.Context, q sqlx.ExtContext, id string, at time.Time) error {
	_, err := q.ExecContext(ctx, `UPDATE users SET last_login = ?, updated_at = ? WHERE id = ?`, at, at, id)
	if err != nil {
		return fmt.Errorf("updating last login: %w", err)
	}
	return nil
}

// DeleteExpiredGuests removes guest accounts whose expiry has passed and
// returns how many were deleted.
func (s *UserService) DeleteExpiredGuests(ctx context.Context, q sqlx.ExtContext, now time.Time) (int64, error) {
	res, err := q.ExecContext(ctx,
		`DELETE FROM users WHERE is_guest = 1 AND guest_expires_at IS NOT NULL AND guest_expires_at < ?`, now)
	if err != nil {
		return 0, fmt.Errorf("deleting expired guests: %w", err)
	}
	return res.RowsAffected()
}
