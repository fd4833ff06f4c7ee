package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famigliapp/internal/storage"
)

func TestCorso_CRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	late, err := f.s.AddCorso(ctx, "mamma", storage.CorsoForm{Title: "Nuoto", StartsOn: date("2026-06-01")})
	require.NoError(t, err)
	_, err = f.s.AddCorso(ctx, "mamma", storage.CorsoForm{Title: " Chitarra ", StartsOn: date("2026-04-01"), EndsOn: datePtr("2026-05-30")})
	require.NoError(t, err)

	corsi, err := f.s.ListCorsi(ctx)
	require.NoError(t, err)
	require.Len(t, corsi, 2)
	assert.Equal(t, "Chitarra", corsi[0].Title)

	updated, err := f.s.UpdateCorso(ctx, late.ID, storage.CorsoForm{Title: "Nuoto avanzato", StartsOn: date("2026-03-20")})
	require.NoError(t, err)
	assert.Equal(t, "mamma", updated.Author)

	corsi, err = f.s.ListCorsi(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Nuoto avanzato", corsi[0].Title)

	require.NoError(t, f.s.DeleteCorso(ctx, late.ID))
	assert.ErrorIs(t, f.s.DeleteCorso(ctx, late.ID), storage.ErrNotFound)
}

func TestCorso_EndsBeforeStart(t *testing.T) {
	f := newFixture(t)

	_, err := f.s.AddCorso(context.Background(), "mamma", storage.CorsoForm{
		Title:    "Nuoto",
		StartsOn: date("2026-06-01"),
		EndsOn:   datePtr("2026-05-01"),
	})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}
