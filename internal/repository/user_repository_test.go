package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/domain"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainUser(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	modelUser := &models.User{
		ID:                "user1",
		GoogleID:          "google123",
		Email:             "test@example.com",
		Name:              sql.NullString{String: "Test User", Valid: true},
		ProfilePictureURL: sql.NullString{String: "http://example.com/pic.jpg", Valid: true},
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	domainUser := toDomainUser(modelUser)
	require.NotNil(t, domainUser)
	assert.Equal(t, modelUser.ID, domainUser.ID)
	assert.Equal(t, modelUser.GoogleID, domainUser.GoogleID)
	assert.Equal(t, modelUser.Email, domainUser.Email)
	assert.Equal(t, "Test User", domainUser.Name)
	assert.Equal(t, "http://example.com/pic.jpg", domainUser.ProfilePictureURL)
	assert.Nil(t, domainUser.DeletedAt)

	// Null profile fields map to empty strings.
	modelUser.Name.Valid = false
	modelUser.ProfilePictureURL.Valid = false
	domainUser = toDomainUser(modelUser)
	assert.Equal(t, "", domainUser.Name)
	assert.Equal(t, "", domainUser.ProfilePictureURL)

	assert.Nil(t, toDomainUser(nil))
}

func TestFromDomainUser(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	domainUser := &domain.User{
		ID:       "user1",
		GoogleID: "google123",
		Email:    "test@example.com",
		Name:     "Test User",
	}

	modelUser := fromDomainUser(domainUser)
	require.NotNil(t, modelUser)
	assert.True(t, modelUser.Name.Valid)
	assert.Equal(t, "Test User", modelUser.Name.String)
	assert.False(t, modelUser.ProfilePictureURL.Valid)
	assert.False(t, modelUser.DeletedAt.Valid)

	deletedAt := now.Add(-time.Hour)
	domainUser.DeletedAt = &deletedAt
	modelUser = fromDomainUser(domainUser)
	assert.True(t, modelUser.DeletedAt.Valid)
	assert.True(t, deletedAt.Equal(modelUser.DeletedAt.Time))

	assert.Nil(t, fromDomainUser(nil))
}

func TestSQLXUserRepository_CreateUser_Success(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXUserRepository(db)
	defer db.Close()

	user := &domain.User{
		ID:       "new-user-id",
		GoogleID: "new-google-id",
		Email:    "new@example.com",
		Name:     "New User",
	}

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateUser(context.Background(), user)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXUserRepository_GetUserByGoogleID_Success(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXUserRepository(db)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "google_id", "email", "name", "profile_picture_url", "created_at", "updated_at", "deleted_at"}).
		AddRow("user1", "google123", "test@example.com", "Test User", nil, now, now, nil)

	mock.ExpectQuery(`SELECT id, google_id, email, name, profile_picture_url, created_at, updated_at, deleted_at`).
		WithArgs("google123").
		WillReturnRows(rows)

	user, err := repo.GetUserByGoogleID(context.Background(), "google123")

	assert.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "user1", user.ID)
	assert.Equal(t, "test@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXUserRepository_GetUserByGoogleID_NotFoundReturnsNil(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXUserRepository(db)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, google_id, email, name, profile_picture_url, created_at, updated_at, deleted_at`).
		WithArgs("unknown").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	user, err := repo.GetUserByGoogleID(context.Background(), "unknown")

	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXUserRepository_GetUserByID_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXUserRepository(db)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, google_id, email, name, profile_picture_url, created_at, updated_at, deleted_at`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	user, err := repo.GetUserByID(context.Background(), "missing")

	assert.Nil(t, user)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXUserRepository_UpdateUser_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXUserRepository(db)
	defer db.Close()

	mock.ExpectExec(`UPDATE users`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateUser(context.Background(), &domain.User{ID: "ghost", Email: "x@example.com"})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
