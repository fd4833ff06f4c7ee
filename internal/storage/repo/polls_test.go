package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famigliapp/internal/storage"
)

func TestAddPoll_Options(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.s.AddPoll(ctx, "marco", storage.PollForm{Question: "Pizza?", Options: []string{"Si"}})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)

	_, err = f.s.AddPoll(ctx, "marco", storage.PollForm{Question: "Pizza?", Options: []string{"Si", " Si "}})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)

	p, err := f.s.AddPoll(ctx, "marco", storage.PollForm{Question: " Pizza? ", Options: []string{" Si", "No "}})
	require.NoError(t, err)
	assert.Equal(t, "Pizza?", p.Question)
	assert.Equal(t, []string{"Si", "No"}, p.Options)
	assert.Equal(t, storage.PollActive, p.Status)
}

func TestVote_ChangeAndClose(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.s.AddPoll(ctx, "marco", storage.PollForm{Question: "Cena?", Options: []string{"Pesce", "Carne", "Pasta"}})
	require.NoError(t, err)

	_, err = f.s.Vote(ctx, p.ID, "giulia", 0)
	require.NoError(t, err)
	_, err = f.s.Vote(ctx, p.ID, "mamma", 2)
	require.NoError(t, err)

	// Тест: повторный голос заменяет прежний
	voted, err := f.s.Vote(ctx, p.ID, "giulia", 2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 2}, voted.Results())

	_, err = f.s.Vote(ctx, p.ID, "giulia", 3)
	assert.ErrorIs(t, err, storage.ErrInvalidInput)

	_, err = f.s.ClosePoll(ctx, p.ID, giulia)
	assert.ErrorIs(t, err, storage.ErrForbidden)

	closed, err := f.s.ClosePoll(ctx, p.ID, marco)
	require.NoError(t, err)
	assert.Equal(t, storage.PollCompleted, closed.Status)
	require.NotNil(t, closed.ClosedAt)

	_, err = f.s.Vote(ctx, p.ID, "marco", 1)
	assert.ErrorIs(t, err, storage.ErrInvalidState)

	_, err = f.s.ClosePoll(ctx, p.ID, admin)
	assert.ErrorIs(t, err, storage.ErrInvalidState)
}

func TestCloseExpiredPolls(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	expiring, err := f.s.AddPoll(ctx, "marco", storage.PollForm{Question: "Gita?", Options: []string{"Mare", "Monti"}, Deadline: datePtr("2026-03-11")})
	require.NoError(t, err)
	f.advance(time.Minute)
	_, err = f.s.AddPoll(ctx, "marco", storage.PollForm{Question: "Film?", Options: []string{"A", "B"}})
	require.NoError(t, err)

	closed, err := f.s.CloseExpiredPolls(ctx, date("2026-03-11"))
	require.NoError(t, err)
	assert.Empty(t, closed, "deadline day itself is still open")

	f.advance(2 * 24 * time.Hour)
	_, err = f.s.Vote(ctx, expiring.ID, "giulia", 0)
	assert.ErrorIs(t, err, storage.ErrInvalidState)

	closed, err = f.s.CloseExpiredPolls(ctx, date("2026-03-12"))
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, expiring.ID, closed[0].ID)

	polls, err := f.s.ListPolls(ctx)
	require.NoError(t, err)
	require.Len(t, polls, 2)
	assert.Equal(t, "Film?", polls[0].Question)
	assert.Equal(t, storage.PollCompleted, polls[1].Status)
}
