package repo

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"famigliapp/internal/storage"
)

func (s *Storage) ListUsers(ctx context.Context) ([]storage.User, error) {
	const op = "storage.repo.ListUsers"

	users, err := load[storage.User](ctx, s, storage.CollectionUsers)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	slices.SortFunc(users, func(a, b storage.User) int { return strings.Compare(a.Username, b.Username) })
	return users, nil
}

func (s *Storage) GetUser(ctx context.Context, username string) (storage.User, error) {
	const op = "storage.repo.GetUser"

	users, err := load[storage.User](ctx, s, storage.CollectionUsers)
	if err != nil {
		return storage.User{}, fmt.Errorf("%s: %w", op, err)
	}

	i := indexOf(users, func(u storage.User) bool { return u.Username == username })
	if i < 0 {
		return storage.User{}, fmt.Errorf("%s: %w", op, notFound("user", username))
	}
	return users[i], nil
}

func (s *Storage) CreateUser(ctx context.Context, nu storage.NewUser) (storage.User, error) {
	const op = "storage.repo.CreateUser"

	usr := storage.User{
		Username:   strings.ToLower(strings.TrimSpace(nu.Username)),
		Name:       strings.TrimSpace(nu.Name),
		Email:      strings.ToLower(strings.TrimSpace(nu.Email)),
		Role:       storage.RoleMember,
		Attributes: nu.Attributes,
	}
	if nu.Admin {
		usr.Role = storage.RoleAdmin
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return storage.User{}, fmt.Errorf("%s: hash password: %w", op, err)
	}

	err := update(ctx, s, storage.CollectionUsers, func(users []storage.User) ([]storage.User, error) {
		if indexOf(users, func(u storage.User) bool { return u.Username == usr.Username }) >= 0 {
			return nil, fmt.Errorf("user %q: %w", usr.Username, storage.ErrConflict)
		}
		return append(users, usr), nil
	})
	if err != nil {
		return storage.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return usr, nil
}

func (s *Storage) DeleteUser(ctx context.Context, username string) error {
	const op = "storage.repo.DeleteUser"

	err := update(ctx, s, storage.CollectionUsers, func(users []storage.User) ([]storage.User, error) {
		i := indexOf(users, func(u storage.User) bool { return u.Username == username })
		if i < 0 {
			return nil, notFound("user", username)
		}
		return slices.Delete(users, i, i+1), nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Authenticate проверяет логин/пароль; неизвестный пользователь и неверный пароль неразличимы.
func (s *Storage) Authenticate(ctx context.Context, username, password string) (storage.User, error) {
	const op = "storage.repo.Authenticate"

	usr, err := s.GetUser(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.User{}, fmt.Errorf("%s: %w", op, storage.ErrBadCredentials)
		}
		return storage.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := usr.CheckPassword(password); err != nil {
		return storage.User{}, fmt.Errorf("%s: %w", op, storage.ErrBadCredentials)
	}

	return usr, nil
}
