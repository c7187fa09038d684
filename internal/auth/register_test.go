package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/homeboardhq/homeboard-backend/pkg/config"
	"github.com/homeboardhq/homeboard-backend/pkg/db"
	"github.com/homeboardhq/homeboard-backend/pkg/db/models"
	pkgerrors "github.com/homeboardhq/homeboard-backend/pkg/errors"
	"github.com/homeboardhq/homeboard-backend/pkg/security"
)

func newRegisterTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:auth_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	usersTable := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(usersTable).Error)
	return conn
}

func TestRegisterCreatesUser(t *testing.T) {
	t.Parallel()

	conn := newRegisterTestDB(t)
	svc, err := NewRegisterService(RegisterServiceParams{
		DB:             db.NewWithConn(conn),
		PasswordConfig: config.PasswordConfig{},
	})
	require.NoError(t, err)

	dto, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "  New@Example.COM ",
		Password: "long enough secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", dto.Email)

	var stored models.User
	require.NoError(t, conn.First(&stored, "email = ?", "new@example.com").Error)

	ok, err := security.VerifyPassword("long enough secret", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	conn := newRegisterTestDB(t)
	svc, err := NewRegisterService(RegisterServiceParams{
		DB:             db.NewWithConn(conn),
		PasswordConfig: config.PasswordConfig{},
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{
		Email:    "dup@example.com",
		Password: "long enough secret",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{
		Email:    "dup@example.com",
		Password: "another secret",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}
