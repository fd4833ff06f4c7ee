package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famigliapp/internal/storage"
)

func TestRanking_TiesShareRank(t *testing.T) {
	f := newFixture(t)
	f.seedUsers(t, "mamma", "giulia", "marco", "nonna")
	ctx := context.Background()

	_, err := f.s.ApplyPoints(ctx, "marco", storage.PointsDelta{DeltaA: 5, DeltaU: 5, Reason: "compiti"}, "mamma")
	require.NoError(t, err)
	_, err = f.s.ApplyPoints(ctx, "giulia", storage.PointsDelta{DeltaO: 10, Reason: "cucina"}, "mamma")
	require.NoError(t, err)
	_, err = f.s.ApplyPoints(ctx, "nonna", storage.PointsDelta{DeltaA: 20, Reason: "tutto"}, "mamma")
	require.NoError(t, err)

	ranking, err := f.s.Ranking(ctx)
	require.NoError(t, err)
	require.Len(t, ranking, 3)

	assert.Equal(t, "nonna", ranking[0].Username)
	assert.Equal(t, 1, ranking[0].Rank)
	assert.Equal(t, "giulia", ranking[1].Username)
	assert.Equal(t, 2, ranking[1].Rank)
	assert.Equal(t, "marco", ranking[2].Username)
	assert.Equal(t, 2, ranking[2].Rank)
	assert.Equal(t, 10, ranking[2].Total)
}

func TestApplyPoints_UnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.s.ApplyPoints(context.Background(), "zio", storage.PointsDelta{DeltaA: 1, Reason: "x"}, "mamma")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPointsHistory_NewestFirst(t *testing.T) {
	f := newFixture(t)
	f.seedUsers(t, "marco")
	ctx := context.Background()

	_, err := f.s.ApplyPoints(ctx, "marco", storage.PointsDelta{DeltaA: 3, Reason: "primo"}, "mamma")
	require.NoError(t, err)
	f.advance(time.Hour)
	p, err := f.s.ApplyPoints(ctx, "marco", storage.PointsDelta{DeltaA: -1, DeltaU: 2, Reason: "secondo"}, "mamma")
	require.NoError(t, err)
	assert.Equal(t, storage.Points{Username: "marco", A: 2, U: 2}, p)

	history, err := f.s.PointsHistory(ctx, "marco")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "secondo", history[0].Reason)
	assert.Equal(t, "primo", history[1].Reason)

	other, err := f.s.PointsHistory(ctx, "giulia")
	require.NoError(t, err)
	assert.Empty(t, other)
}
