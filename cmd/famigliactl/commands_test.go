package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"famigliapp/internal/service/reminder"
	"famigliapp/internal/storage"
)

type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) CreateUser(ctx context.Context, nu storage.NewUser) (storage.User, error) {
	args := m.Called(ctx, nu)
	return args.Get(0).(storage.User), args.Error(1)
}

type MockReminder struct {
	mock.Mock
}

func (m *MockReminder) Run(ctx context.Context, now time.Time) (reminder.Summary, error) {
	args := m.Called(ctx, now)
	summary, _ := args.Get(0).(reminder.Summary)
	return summary, args.Error(1)
}

type MockShifts struct {
	mock.Mock
}

func (m *MockShifts) Validate(ctx context.Context, from, to storage.Date) ([]storage.Violation, error) {
	args := m.Called(ctx, from, to)
	violations, _ := args.Get(0).([]storage.Violation)
	return violations, args.Error(1)
}

func execute(t *testing.T, svc *services, args ...string) (string, error) {
	t.Helper()

	opened, closed := false, false
	svc.Close = func() error { closed = true; return nil }

	root := newRootCmd(func(ctx context.Context, configPath string) (*services, error) {
		opened = true
		return svc, nil
	})
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)

	err := root.Execute()
	assert.Equal(t, opened, closed, "opened services must be closed")
	return out.String(), err
}

// Тест: пароль из флага, атрибуты без дублей
func TestUseradd_WithPasswordFlag(t *testing.T) {
	users := new(MockUsers)
	want := storage.NewUser{
		Username:   "mario",
		Name:       "Mario Rossi",
		Email:      "mario@example.com",
		Password:   "secret1",
		Admin:      true,
		Attributes: []string{"staff", "driver"},
	}
	users.On("CreateUser", mock.Anything, want).
		Return(storage.User{Username: "mario", Admin: true}, nil)

	out, err := execute(t, &services{Users: users},
		"useradd", "mario", "--name", "Mario Rossi", "--email", "mario@example.com",
		"--admin", "--attr", "staff", "--attr", "driver,staff", "--password", "secret1")

	require.NoError(t, err)
	assert.Contains(t, out, "created mario (admin)")
	users.AssertExpectations(t)
}

// Тест: без --password пароль спрашивается через терминал
func TestUseradd_PromptsPassword(t *testing.T) {
	prev := readPasswordFunc
	t.Cleanup(func() { readPasswordFunc = prev })
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("prompted"), nil }

	users := new(MockUsers)
	users.On("CreateUser", mock.Anything, mock.MatchedBy(func(nu storage.NewUser) bool {
		return nu.Username == "anna" && nu.Name == "anna" && nu.Password == "prompted"
	})).Return(storage.User{Username: "anna"}, nil)

	out, err := execute(t, &services{Users: users}, "useradd", "anna")

	require.NoError(t, err)
	assert.Contains(t, out, "Enter password:")
	assert.Contains(t, out, "created anna (member)")
	users.AssertExpectations(t)
}

// Тест: пустой пароль не принимается, хранилище не трогаем
func TestUseradd_EmptyPassword(t *testing.T) {
	prev := readPasswordFunc
	t.Cleanup(func() { readPasswordFunc = prev })
	readPasswordFunc = func(fd int) ([]byte, error) { return nil, nil }

	users := new(MockUsers)

	_, err := execute(t, &services{Users: users}, "useradd", "anna")

	assert.ErrorIs(t, err, errEmptyPassword)
	users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

// Тест: невалидное имя пользователя отсекается до хранилища
func TestUseradd_InvalidUsername(t *testing.T) {
	users := new(MockUsers)

	_, err := execute(t, &services{Users: users}, "useradd", "a!", "--password", "secret1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid user")
	users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

// Тест: remind --date запускает рассылку за указанный день и печатает итоги
func TestRemind_WithDate(t *testing.T) {
	rem := new(MockReminder)
	rem.On("Run", mock.Anything, mock.MatchedBy(func(now time.Time) bool {
		return storage.DateOf(now) == "2026-03-10"
	})).Return(reminder.Summary{"events": 2, "kouza": 0, "polls": 1}, nil)

	out, err := execute(t, &services{Reminder: rem}, "remind", "--date", "2026-03-10")

	require.NoError(t, err)
	assert.Contains(t, out, "events   2")
	assert.Contains(t, out, "polls    1")
	rem.AssertExpectations(t)
}

// Тест: кривая дата не доходит до сервиса
func TestRemind_BadDate(t *testing.T) {
	rem := new(MockReminder)

	_, err := execute(t, &services{Reminder: rem}, "remind", "--date", "10/03/2026")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--date")
	rem.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}

// Тест: ошибка рассылки возвращается, частичные итоги всё равно печатаются
func TestRemind_PartialFailure(t *testing.T) {
	rem := new(MockReminder)
	rem.On("Run", mock.Anything, mock.Anything).
		Return(reminder.Summary{"events": 1}, errors.New("quests: smtp down"))

	out, err := execute(t, &services{Reminder: rem}, "remind")

	require.Error(t, err)
	assert.Contains(t, out, "events   1")
}

// Тест: нарушения печатаются, команда завершается с ошибкой
func TestValidateShifts_Violations(t *testing.T) {
	shifts := new(MockShifts)
	shifts.On("Validate", mock.Anything, storage.Date("2026-03-01"), storage.Date("2026-03-31")).
		Return([]storage.Violation{
			{Date: "2026-03-02", Rule: "min_staff", Message: "1 on shift, need 2"},
		}, nil)

	out, err := execute(t, &services{Shifts: shifts}, "validate-shifts", "--from", "2026-03-01", "--to", "2026-03-31")

	require.EqualError(t, err, "1 violations")
	assert.Contains(t, out, "2026-03-02")
	assert.Contains(t, out, "1 on shift, need 2")
	shifts.AssertExpectations(t)
}

// Тест: без нарушений
func TestValidateShifts_Clean(t *testing.T) {
	shifts := new(MockShifts)
	shifts.On("Validate", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	out, err := execute(t, &services{Shifts: shifts}, "validate-shifts", "--from", "2026-03-01", "--to", "2026-03-31")

	require.NoError(t, err)
	assert.Contains(t, out, "no violations")
}

// Тест: --from и --to обязательны
func TestValidateShifts_MissingFlags(t *testing.T) {
	shifts := new(MockShifts)

	_, err := execute(t, &services{Shifts: shifts}, "validate-shifts", "--from", "2026-03-01")

	require.Error(t, err)
	shifts.AssertNotCalled(t, "Validate", mock.Anything, mock.Anything, mock.Anything)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, &services{}, "version")

	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}
