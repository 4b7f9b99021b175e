package history

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"

	"github.com/oasisprotocol/prng-suite/common/errors"
	"github.com/oasisprotocol/prng-suite/common/persistent"
	"github.com/oasisprotocol/prng-suite/common/version"
	"github.com/oasisprotocol/prng-suite/randtest"
)

func newTestStore(t *testing.T) *Store {
	common, err := persistent.NewCommonStore(t.TempDir())
	require.NoError(t, err, "NewCommonStore")
	t.Cleanup(func() { common.Close() })

	store, err := New(common)
	require.NoError(t, err, "New")
	return store
}

func newTestRecord(t *testing.T) *Record {
	suite := randtest.DefaultSuite()
	numbers := make([]float64, 0, 100)
	for i := 0; i < 100; i++ {
		numbers = append(numbers, (float64(i)+0.5)/100)
	}
	return &Record{
		Kind:          "lcg",
		GeneratorName: "Linear Congruential Generator",
		Seed:          1,
		Count:         len(numbers),
		Significance:  0.05,
		Results:       randtest.RunSuite(suite, numbers, 0.05),
	}
}

func TestHistory(t *testing.T) {
	require := require.New(t)

	store := newTestStore(t)
	base := time.Date(2024, 1, 2, 3, 4, 5, 6, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(-time.Duration(tick) * time.Second)
	}

	first := newTestRecord(t)
	require.NoError(store.Add(first), "Add")
	_, err := uuid.Parse(first.ID)
	require.NoError(err, "assigned id must be a UUID")
	require.Equal(version.HistoryFormat, first.Format)
	require.Equal(base.Add(-time.Second), first.Time())

	second := newTestRecord(t)
	second.Kind = "mcg"
	require.NoError(store.Add(second), "Add")

	got, err := store.Get(first.ID)
	require.NoError(err, "Get")
	require.Equal(first.Kind, got.Kind)
	require.Len(got.Results, 3)
	require.Equal(first.Results[0].Message, got.Results[0].Message)
	require.Equal(first.Passed(), got.Passed())
	require.Equal(first.Results[1].Statistics, got.Results[1].Statistics)

	// Ordered by timestamp, the second record is older.
	records, err := store.List()
	require.NoError(err, "List")
	require.Len(records, 2)
	require.Equal(second.ID, records[0].ID)
	require.Equal(first.ID, records[1].ID)

	require.NoError(store.Delete(second.ID), "Delete")
	_, err = store.Get(second.ID)
	require.True(errors.Is(err, ErrNotFound))
	records, err = store.List()
	require.NoError(err, "List")
	require.Len(records, 1)
}

func TestHistoryErrors(t *testing.T) {
	require := require.New(t)

	store := newTestStore(t)

	_, err := store.Get("not-a-uuid")
	require.True(errors.Is(err, ErrMalformedID))

	_, err = store.Get(uuid.NewString())
	require.True(errors.Is(err, ErrNotFound))

	require.True(errors.Is(store.Delete(uuid.NewString()), ErrNotFound))

	rec := newTestRecord(t)
	rec.ID = "bogus"
	require.True(errors.Is(store.Add(rec), ErrMalformedID))

	// Records from a future format are skipped by List.
	future := newTestRecord(t)
	future.Format = version.Version{Major: version.HistoryFormat.Major + 1}
	require.NoError(store.Add(future), "Add")
	_, err = store.Get(future.ID)
	require.True(errors.Is(err, ErrIncompatibleFormat))
	records, err := store.List()
	require.NoError(err, "List")
	require.Empty(records)
}

func TestHistoryNaN(t *testing.T) {
	require := require.New(t)

	store := newTestStore(t)

	// A constant sequence has an undefined serial correlation.
	rec := newTestRecord(t)
	rec.Results = randtest.RunSuite(randtest.DefaultSuite(), []float64{0.5, 0.5, 0.5}, 0.05)
	require.NoError(store.Add(rec), "Add")

	got, err := store.Get(rec.ID)
	require.NoError(err, "Get")
	r, ok := got.Results[2].Statistic(randtest.StatCorrelation)
	require.True(ok)
	require.True(math.IsNaN(r))
}

func TestHistoryListTieBreak(t *testing.T) {
	require := require.New(t)

	store := newTestStore(t)
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	store.now = func() time.Time { return at }

	var ids []string
	for i := 0; i < 4; i++ {
		rec := newTestRecord(t)
		require.NoError(store.Add(rec), "Add")
		ids = append(ids, rec.ID)
	}
	slices.Sort(ids)

	records, err := store.List()
	require.NoError(err, "List")
	require.Len(records, len(ids))
	for i, rec := range records {
		require.Equal(ids[i], rec.ID, "records with equal timestamps are ordered by id")
	}
}
