package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"famigliapp/internal/storage"
	"famigliapp/internal/storage/jsonfile"
)

var (
	admin  = storage.User{Username: "mamma", Role: storage.RoleAdmin}
	giulia = storage.User{Username: "giulia", Role: storage.RoleMember}
	marco  = storage.User{Username: "marco", Role: storage.RoleMember}
)

type fixture struct {
	s   *Storage
	now time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	backend, err := jsonfile.New(t.TempDir())
	require.NoError(t, err)

	f := &fixture{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	n := 0
	f.s = New(backend,
		WithClock(func() time.Time { return f.now }),
		WithIDGenerator(func() string { n++; return fmt.Sprintf("id-%d", n) }),
		WithKouzaDeadlineDays(7),
	)
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func (f *fixture) seedUsers(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := f.s.CreateUser(context.Background(), storage.NewUser{
			Username: name,
			Name:     name,
			Email:    name + "@example.com",
			Password: "segreto123",
			Admin:    name == admin.Username,
		})
		require.NoError(t, err)
	}
}

func date(s string) storage.Date { return storage.Date(s) }

func datePtr(s string) *storage.Date {
	d := storage.Date(s)
	return &d
}
