package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/domain"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/repository/models"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(modelUser *models.User) *domain.User {
	if modelUser == nil {
		return nil
	}
	var deletedAt *time.Time
	if modelUser.DeletedAt.Valid {
		deletedAt = &modelUser.DeletedAt.Time
	}

	return &domain.User{
		ID:                modelUser.ID,
		GoogleID:          modelUser.GoogleID,
		Email:             modelUser.Email,
		Name:              modelUser.Name.String,
		ProfilePictureURL: modelUser.ProfilePictureURL.String,
		CreatedAt:         modelUser.CreatedAt,
		UpdatedAt:         modelUser.UpdatedAt,
		DeletedAt:         deletedAt,
	}
}

func fromDomainUser(domainUser *domain.User) *models.User {
	if domainUser == nil {
		return nil
	}
	var deletedAt sql.NullTime
	if domainUser.DeletedAt != nil {
		deletedAt = util.TimeToNullTime(*domainUser.DeletedAt)
	}

	return &models.User{
		ID:                domainUser.ID,
		GoogleID:          domainUser.GoogleID,
		Email:             domainUser.Email,
		Name:              util.StringToNullString(domainUser.Name),
		ProfilePictureURL: util.StringToNullString(domainUser.ProfilePictureURL),
		CreatedAt:         domainUser.CreatedAt,
		UpdatedAt:         domainUser.UpdatedAt,
		DeletedAt:         deletedAt,
	}
}

// CreateUser inserts a new user into the database.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, domainUser *domain.User) error {
	modelUser := fromDomainUser(domainUser)

	now := time.Now()
	if modelUser.CreatedAt.IsZero() {
		modelUser.CreatedAt = now
	}
	modelUser.UpdatedAt = now

	query := `INSERT INTO users (id, google_id, email, name, profile_picture_url, created_at, updated_at, deleted_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		modelUser.ID,
		modelUser.GoogleID,
		modelUser.Email,
		modelUser.Name,
		modelUser.ProfilePictureURL,
		modelUser.CreatedAt,
		modelUser.UpdatedAt,
		modelUser.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByGoogleID looks a user up by their Google account ID. Returns
// (nil, nil) when no such user exists so callers can branch into signup.
func (r *sqlxUserRepository) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	var modelUser models.User

	query := `SELECT id, google_id, email, name, profile_picture_url, created_at, updated_at, deleted_at
	          FROM users WHERE google_id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &modelUser, query, googleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by google id: %w", err)
	}

	return toDomainUser(&modelUser), nil
}

// GetUserByID retrieves a user by their internal ID.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var modelUser models.User

	query := `SELECT id, google_id, email, name, profile_picture_url, created_at, updated_at, deleted_at
	          FROM users WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &modelUser, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError(fmt.Sprintf("User not found: %s", userID))
		}
		return nil, fmt.Errorf("failed to get user by id %s: %w", userID, err)
	}

	return toDomainUser(&modelUser), nil
}

// UpdateUser updates a user's mutable profile fields.
func (r *sqlxUserRepository) UpdateUser(ctx context.Context, domainUser *domain.User) error {
	modelUser := fromDomainUser(domainUser)
	modelUser.UpdatedAt = time.Now()

	query := `UPDATE users
	          SET email = $1, name = $2, profile_picture_url = $3, updated_at = $4
	          WHERE id = $5 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query,
		modelUser.Email,
		modelUser.Name,
		modelUser.ProfilePictureURL,
		modelUser.UpdatedAt,
		modelUser.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", modelUser.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result for user %s: %w", modelUser.ID, err)
	}
	if affected == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("User not found: %s", modelUser.ID))
	}
	return nil
}
