package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/liftledger/liftledger-backend/pkg/config"
	pkgerrors "github.com/liftledger/liftledger-backend/pkg/errors"
)

func testPasswordConfig() config.PasswordConfig {
	// minimal work factors keep the suite fast
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS users (
  username TEXT PRIMARY KEY,
  password_hash TEXT NOT NULL,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  email TEXT NOT NULL,
  is_admin INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func newTestService(t *testing.T) Service {
	t.Helper()

	svc, err := NewService(NewRepository(setupUsersTestDB(t)), testPasswordConfig())
	require.NoError(t, err)
	return svc
}

func registerTestUser(t *testing.T, svc Service, username string) *UserDTO {
	t.Helper()

	dto, err := svc.Register(context.Background(), RegisterInput{
		Username:  username,
		Password:  "sekrit-pass",
		FirstName: "Test",
		LastName:  "User",
		Email:     username + "@example.com",
	})
	require.NoError(t, err)
	return dto
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	dto := registerTestUser(t, svc, "u1")
	assert.Equal(t, "u1", dto.Username)
	assert.False(t, dto.IsAdmin)

	authed, err := svc.Authenticate(ctx, "u1", "sekrit-pass")
	require.NoError(t, err)
	assert.Equal(t, "u1", authed.Username)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	svc := newTestService(t)
	registerTestUser(t, svc, "u1")

	_, err := svc.Register(context.Background(), RegisterInput{
		Username:  "u1",
		Password:  "other-pass",
		FirstName: "Other",
		LastName:  "User",
		Email:     "other@example.com",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDuplicate, typed.Code())
	assert.Equal(t, "Duplicate username: u1", typed.Message())
}

func TestAuthenticateGenericFailureMessage(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	registerTestUser(t, svc, "u1")

	_, wrongPass := svc.Authenticate(ctx, "u1", "not-the-password")
	require.Error(t, wrongPass)
	_, unknownUser := svc.Authenticate(ctx, "ghost", "whatever")
	require.Error(t, unknownUser)

	// identical message in both failure modes
	assert.Equal(t, pkgerrors.As(wrongPass).Message(), pkgerrors.As(unknownUser).Message())
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(wrongPass).Code())
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(unknownUser).Code())
}

func TestFindAllOrdersByUsername(t *testing.T) {
	svc := newTestService(t)
	registerTestUser(t, svc, "zoe")
	registerTestUser(t, svc, "abe")

	all, err := svc.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "abe", all[0].Username)
	assert.Equal(t, "zoe", all[1].Username)
}

func TestGetNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), "ghost")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "No user: ghost", typed.Message())
}

func TestUpdateRehashesPasswordAndStampsUpdatedAt(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	created := registerTestUser(t, svc, "u1")

	newPass := "next-pass"
	newFirst := "Renamed"
	time.Sleep(10 * time.Millisecond)
	updated, err := svc.Update(ctx, "u1", UpdateUserInput{
		Password:  &newPass,
		FirstName: &newFirst,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.FirstName)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	_, err = svc.Authenticate(ctx, "u1", "next-pass")
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, "u1", "sekrit-pass")
	require.Error(t, err)
}

func TestUpdateRejectsEmptyInput(t *testing.T) {
	svc := newTestService(t)
	registerTestUser(t, svc, "u1")

	_, err := svc.Update(context.Background(), "u1", UpdateUserInput{})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "No data", typed.Message())
}

func TestUpdateNotFound(t *testing.T) {
	svc := newTestService(t)

	email := "new@example.com"
	_, err := svc.Update(context.Background(), "ghost", UpdateUserInput{Email: &email})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "No user: ghost", typed.Message())
}

func TestRemove(t *testing.T) {
	svc := newTestService(t)
	registerTestUser(t, svc, "u1")

	require.NoError(t, svc.Remove(context.Background(), "u1"))

	err := svc.Remove(context.Background(), "u1")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "No user: u1", typed.Message())
}
