package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famigliapp/internal/storage"
)

func TestCreateUser_NormalizesAndHashes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	usr, err := f.s.CreateUser(ctx, storage.NewUser{
		Username: "  Giulia ",
		Name:     " Giulia Rossi ",
		Email:    "Giulia@Example.COM",
		Password: "segreto123",
	})
	require.NoError(t, err)

	assert.Equal(t, "giulia", usr.Username)
	assert.Equal(t, "Giulia Rossi", usr.Name)
	assert.Equal(t, "giulia@example.com", usr.Email)
	assert.Equal(t, storage.RoleMember, usr.Role)
	assert.NotEqual(t, "segreto123", usr.PasswordHash)
	assert.NoError(t, usr.CheckPassword("segreto123"))
}

func TestCreateUser_Duplicate(t *testing.T) {
	f := newFixture(t)
	f.seedUsers(t, "giulia")

	_, err := f.s.CreateUser(context.Background(), storage.NewUser{Username: "giulia", Name: "G", Password: "segreto123"})
	assert.ErrorIs(t, err, storage.ErrConflict)
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	f.seedUsers(t, "mamma")
	ctx := context.Background()

	usr, err := f.s.Authenticate(ctx, "Mamma", "segreto123")
	require.NoError(t, err)
	assert.True(t, usr.IsAdmin())

	_, err = f.s.Authenticate(ctx, "mamma", "sbagliato")
	assert.ErrorIs(t, err, storage.ErrBadCredentials)

	_, err = f.s.Authenticate(ctx, "nessuno", "segreto123")
	assert.ErrorIs(t, err, storage.ErrBadCredentials)
}

func TestListAndDeleteUsers(t *testing.T) {
	f := newFixture(t)
	f.seedUsers(t, "marco", "giulia")
	ctx := context.Background()

	users, err := f.s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "giulia", users[0].Username)

	require.NoError(t, f.s.DeleteUser(ctx, "giulia"))
	assert.ErrorIs(t, f.s.DeleteUser(ctx, "giulia"), storage.ErrNotFound)

	_, err = f.s.GetUser(ctx, "giulia")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
