package rival

import (
	"database/sql"
	"testing"

	"github.com/honkbot/honkbot/migrations"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sql.Open(DriverName, ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		db.Close()
	})
	_, err = migrations.Migrate(t.Context(), db)
	require.NoError(t, err)
	return sqlx.NewDb(db, DriverName)
}

func TestGameNew(t *testing.T) {
	t.Parallel()

	r, err := DDR.New("1", "spooky", "1234-5678", "8dan")
	require.NoError(t, err)
	assert.Equal(t, "SPOOKY", r.Name)
	assert.Equal(t, "1234-5678", r.Code)
	assert.Equal(t, "8DAN", r.RankString())

	r, err = DDR.New("1", "meatbean", "1234-5678", "")
	require.NoError(t, err)
	assert.Nil(t, r.Rank)

	_, err = DDR.New("1", "toolongname", "1234-5678", "")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = IIDX.New("1", "SPOOKYS", "1234-5678", "")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = IIDX.New("1", "", "1234-5678", "")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = DDR.New("1", "SPOOKY", "12345678", "")
	assert.ErrorIs(t, err, ErrInvalidCode)

	_, err = DDR.New("1", "SPOOKY", "1234-5678", "11dan")
	assert.ErrorIs(t, err, ErrInvalidRank)

	for _, rank := range []string{"10dan", "1kyu", "chuu", "KAI"} {
		_, err = IIDX.New("1", "DJ", "1234-5678", rank)
		assert.NoError(t, err, rank)
	}
}

func TestParseFilters(t *testing.T) {
	t.Parallel()

	filters, err := ParseFilters([]string{"name=SPOOKY", "rank=8dan"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "SPOOKY", "rank": "8dan"}, filters)

	_, err = ParseFilters(nil)
	assert.ErrorIs(t, err, ErrNoFilters)

	_, err = ParseFilters([]string{"name"})
	assert.ErrorIs(t, err, ErrInvalidFilter)

	_, err = ParseFilters([]string{"name=a=b"})
	assert.ErrorIs(t, err, ErrInvalidFilter)

	_, err = ParseFilters([]string{"user_id=1"})
	assert.ErrorIs(t, err, ErrInvalidAttribute)
}

func TestStoreLifecycle(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	store := NewStore(newTestDB(t), DDR)

	spooky, err := DDR.New("100", "spooky", "1234-5678", "8dan")
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, spooky))

	err = store.Create(ctx, spooky)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	meat, err := DDR.New("200", "meatbean", "8765-4321", "")
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, meat))

	got, err := store.Get(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, spooky, got)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	found, err := store.Search(ctx, map[string]string{"name": "spooky"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "100", found[0].UserID)

	found, err = store.Search(ctx, map[string]string{"name": "spooky", "code": "8765-4321"})
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = store.Search(ctx, map[string]string{"name' OR 1=1 --": "x"})
	assert.ErrorIs(t, err, ErrInvalidAttribute)

	require.NoError(t, store.Update(ctx, "100", map[string]string{"code": "8888-8888", "rank": "10dan"}))
	got, err = store.Get(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, "8888-8888", got.Code)
	assert.Equal(t, "10DAN", got.RankString())

	err = store.Update(ctx, "300", map[string]string{"code": "8888-8888"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.Update(ctx, "100", map[string]string{"code": "8888"})
	assert.ErrorIs(t, err, ErrInvalidCode)

	require.NoError(t, store.Delete(ctx, "100"))
	_, err = store.Get(ctx, "100")
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.Delete(ctx, "100")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoresAreSeparatedByGame(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	db := newTestDB(t)
	ddr := NewStore(db, DDR)
	iidx := NewStore(db, IIDX)

	r, err := IIDX.New("100", "DJ", "1234-5678", "kai")
	require.NoError(t, err)
	require.NoError(t, iidx.Create(ctx, r))

	_, err = ddr.Get(ctx, "100")
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := iidx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
