package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famigliapp/internal/storage"
)

func TestBravissimo_AddListDelete(t *testing.T) {
	f := newFixture(t)
	f.seedUsers(t, "giulia", "marco")
	ctx := context.Background()

	first, err := f.s.AddBravissimo(ctx, "marco", storage.NewBravissimo{Target: "giulia", Text: " Brava per la torta! "})
	require.NoError(t, err)
	assert.Equal(t, "Brava per la torta!", first.Text)

	f.advance(time.Hour)
	_, err = f.s.AddBravissimo(ctx, "giulia", storage.NewBravissimo{Target: "marco", Text: "Grazie per il passaggio"})
	require.NoError(t, err)

	all, err := f.s.ListBravissimo(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "giulia", all[0].Author, "newest first")

	forGiulia, err := f.s.ListBravissimo(ctx, "giulia")
	require.NoError(t, err)
	require.Len(t, forGiulia, 1)
	assert.Equal(t, first.ID, forGiulia[0].ID)

	// Только автор или админ
	assert.ErrorIs(t, f.s.DeleteBravissimo(ctx, first.ID, giulia), storage.ErrForbidden)
	assert.NoError(t, f.s.DeleteBravissimo(ctx, first.ID, marco))
	assert.ErrorIs(t, f.s.DeleteBravissimo(ctx, first.ID, admin), storage.ErrNotFound)
}

func TestBravissimo_UnknownTarget(t *testing.T) {
	f := newFixture(t)
	f.seedUsers(t, "marco")

	_, err := f.s.AddBravissimo(context.Background(), "marco", storage.NewBravissimo{Target: "zio", Text: "ciao"})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}
