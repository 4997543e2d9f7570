package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "sub", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func session(id string, start time.Time, outcome string, typed, typos int) Session {
	return Session{
		ID:        id,
		StartedAt: start,
		EndedAt:   start.Add(1500 * time.Millisecond),
		Outcome:   outcome,
		Length:    typed + 3,
		Typed:     typed,
		Typos:     typos,
		Speed:     70,
		Variance:  0.3,
		TypoRate:  0.015,
	}
}

func TestInsertAndRecent(t *testing.T) {
	st := openTemp(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, st.Insert(ctx, session("a", base, "completed", 10, 1)))
	require.NoError(t, st.Insert(ctx, session("b", base.Add(time.Minute), "cancelled", 4, 0)))
	failed := session("c", base.Add(2*time.Minute), "failed", 2, 0)
	failed.Error = "device gone"
	require.NoError(t, st.Insert(ctx, failed))

	got, err := st.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "device gone", got[0].Error)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, 1500*time.Millisecond, got[1].Duration())
	assert.True(t, got[1].StartedAt.Equal(base.Add(time.Minute)))
	assert.Equal(t, 0.3, got[1].Variance)
}

func TestRecentEmpty(t *testing.T) {
	st := openTemp(t)
	got, err := st.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = st.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDuplicateIDRejected(t *testing.T) {
	st := openTemp(t)
	ctx := context.Background()
	s := session("dup", time.Now(), "completed", 1, 0)
	require.NoError(t, st.Insert(ctx, s))
	assert.Error(t, st.Insert(ctx, s))
}

func TestSummarize(t *testing.T) {
	st := openTemp(t)
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, st.Insert(ctx, session("1", now, "completed", 10, 2)))
	require.NoError(t, st.Insert(ctx, session("2", now.Add(time.Second), "completed", 5, 1)))
	require.NoError(t, st.Insert(ctx, session("3", now.Add(2*time.Second), "cancelled", 3, 0)))

	sum, err := st.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Sessions)
	assert.Equal(t, 18, sum.Characters)
	assert.Equal(t, 3, sum.Typos)
	assert.Equal(t, map[string]int{"completed": 2, "cancelled": 1}, sum.ByOutcome)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Insert(context.Background(), session("keep", time.Now(), "completed", 1, 0)))
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	defer st.Close()
	got, err := st.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "keep", got[0].ID)
}
