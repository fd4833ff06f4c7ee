package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famigliapp/internal/storage"
)

func TestEvents_ListOverlappingRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.s.AddEvent(ctx, "marco", storage.EventForm{Title: "Gita", Date: date("2026-02-27"), EndDate: datePtr("2026-03-02")})
	require.NoError(t, err)
	_, err = f.s.AddEvent(ctx, "marco", storage.EventForm{Title: "Cena", Date: date("2026-03-15")})
	require.NoError(t, err)
	_, err = f.s.AddEvent(ctx, "marco", storage.EventForm{Title: "Aperitivo", Date: date("2026-03-15")})
	require.NoError(t, err)
	_, err = f.s.AddEvent(ctx, "marco", storage.EventForm{Title: "Pasqua", Date: date("2026-04-05")})
	require.NoError(t, err)

	march, err := f.s.ListEvents(ctx, date("2026-03-01"), date("2026-03-31"))
	require.NoError(t, err)
	require.Len(t, march, 3)
	assert.Equal(t, "Gita", march[0].Title)
	assert.Equal(t, "Aperitivo", march[1].Title, "same day sorted by title")
	assert.Equal(t, "Cena", march[2].Title)
}

func TestEvents_EndBeforeStart(t *testing.T) {
	f := newFixture(t)

	_, err := f.s.AddEvent(context.Background(), "marco", storage.EventForm{Title: "X", Date: date("2026-03-05"), EndDate: datePtr("2026-03-01")})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}

func TestEvents_UpdateDeletePermissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ev, err := f.s.AddEvent(ctx, "marco", storage.EventForm{Title: "Cena", Date: date("2026-03-15")})
	require.NoError(t, err)

	_, err = f.s.UpdateEvent(ctx, ev.ID, storage.EventForm{Title: "Cena!", Date: date("2026-03-16")}, giulia)
	assert.ErrorIs(t, err, storage.ErrForbidden)

	updated, err := f.s.UpdateEvent(ctx, ev.ID, storage.EventForm{Title: "Cena!", Date: date("2026-03-16")}, admin)
	require.NoError(t, err)
	assert.Equal(t, date("2026-03-16"), updated.Date)
	assert.Equal(t, "marco", updated.Author)

	require.NoError(t, f.s.DeleteEvent(ctx, ev.ID, marco))
	_, err = f.s.GetEvent(ctx, ev.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestReplaceShifts_OnlyInsideRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.s.ReplaceShifts(ctx, date("2026-03-01"), date("2026-03-07"), []storage.Shift{
		{Date: date("2026-03-01"), Employee: "Anna"},
		{Date: date("2026-03-07"), Employee: "Luca"},
	}))
	require.NoError(t, f.s.ReplaceShifts(ctx, date("2026-03-08"), date("2026-03-14"), []storage.Shift{
		{Date: date("2026-03-08"), Employee: "Anna"},
	}))

	// Переписываем первую неделю; вторая не должна измениться, дубликаты схлопываются
	require.NoError(t, f.s.ReplaceShifts(ctx, date("2026-03-01"), date("2026-03-07"), []storage.Shift{
		{Date: date("2026-03-02"), Employee: "Sofia"},
		{Date: date("2026-03-02"), Employee: "Sofia"},
	}))

	all, err := f.s.ListShifts(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, []storage.Shift{
		{Date: date("2026-03-02"), Employee: "Sofia"},
		{Date: date("2026-03-08"), Employee: "Anna"},
	}, all)

	_, err = f.s.ListShifts(ctx, date("2026-03-08"), date("2026-03-08"))
	require.NoError(t, err)

	err = f.s.ReplaceShifts(ctx, date("2026-03-01"), date("2026-03-07"), []storage.Shift{{Date: date("2026-03-09"), Employee: "Anna"}})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}

func TestReplaceEmployees_Unique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.s.ReplaceEmployees(ctx, []storage.Employee{{Name: "Anna"}, {Name: " Anna "}})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)

	require.NoError(t, f.s.ReplaceEmployees(ctx, []storage.Employee{{Name: "Anna", Attributes: []string{"senior"}}, {Name: "Luca"}}))
	employees, err := f.s.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, employees, 2)
}

func TestShiftRules_SaveAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, ok, err := f.s.GetShiftRules(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	rules := storage.ShiftRules{MaxConsecutiveDays: 5, MinStaffPerDay: 2, ForbiddenPairs: [][]string{{"Marco", "Luca"}}}
	require.NoError(t, f.s.SaveShiftRules(ctx, rules))

	got, ok, err := f.s.GetShiftRules(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, rules, got)
}
