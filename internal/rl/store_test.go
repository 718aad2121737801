package rl

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecommender(t *testing.T) *SQLiteRecommender {
	t.Helper()
	r, err := NewSQLiteRecommender(filepath.Join(t.TempDir(), "rl.db"), 3)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRewardFor(t *testing.T) {
	assert.Equal(t, 10.0, RewardFor(OutcomeSuccess))
	assert.Equal(t, 5.0, RewardFor(OutcomePartial))
	assert.Equal(t, -5.0, RewardFor(OutcomeFailure))
	assert.Equal(t, -5.0, RewardFor("anything else"))
}

func TestLogEpisodeAndCount(t *testing.T) {
	r := newTestRecommender(t)
	ctx := context.Background()

	require.NoError(t, r.LogEpisode(ctx, "s1", []string{"get_dimensions", "get_members"}, RewardSuccess, OutcomeSuccess))
	require.NoError(t, r.LogEpisode(ctx, "s1", nil, RewardSuccess, OutcomeSuccess), "empty sequences are dropped")

	n, err := r.EpisodeCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRecommendNeedsSamples(t *testing.T) {
	r := newTestRecommender(t)
	ctx := context.Background()
	available := []string{"get_dimensions", "get_members"}

	seq := []string{"get_dimensions", "get_members"}
	require.NoError(t, r.LogEpisode(ctx, "s1", seq, RewardSuccess, OutcomeSuccess))
	require.NoError(t, r.LogEpisode(ctx, "s2", seq, RewardSuccess, OutcomeSuccess))

	// Two samples, threshold is three.
	recs, err := r.Recommend(ctx, "", "get_dimensions", 1, available)
	require.NoError(t, err)
	assert.Empty(t, recs)

	require.NoError(t, r.LogEpisode(ctx, "s3", seq, RewardSuccess, OutcomeSuccess))
	recs, err = r.Recommend(ctx, "", "get_dimensions", 1, available)
	require.NoError(t, err)
	assert.Equal(t, []string{"get_members"}, recs)
}

func TestRecommendExcludesNegativeEpisodes(t *testing.T) {
	r := newTestRecommender(t)
	ctx := context.Background()

	seq := []string{"smart_retrieve", "clear_data"}
	for i := 0; i < 5; i++ {
		require.NoError(t, r.LogEpisode(ctx, "s1", seq, RewardFailure, OutcomeFailure))
	}

	recs, err := r.Recommend(ctx, "", "smart_retrieve", 1, []string{"clear_data"})
	require.NoError(t, err)
	assert.Empty(t, recs, "failed episodes must not drive recommendations")
}

func TestRecommendFiltersAvailabilityAndSelf(t *testing.T) {
	r := newTestRecommender(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, r.LogEpisode(ctx, "s1", []string{"get_dimensions", "get_members"}, RewardSuccess, OutcomeSuccess))
		require.NoError(t, r.LogEpisode(ctx, "s1", []string{"get_dimensions", "get_member"}, RewardPartial, OutcomePartial))
	}

	// get_member unavailable, so only get_members survives.
	recs, err := r.Recommend(ctx, "", "get_dimensions", 1, []string{"get_members"})
	require.NoError(t, err)
	assert.Equal(t, []string{"get_members"}, recs)
}

func TestRecommendFirstStepTransitions(t *testing.T) {
	r := newTestRecommender(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, r.LogEpisode(ctx, "s1", []string{"list_jobs"}, RewardSuccess, OutcomeSuccess))
	}

	// Empty previousTool matches the start-of-sequence transition.
	recs, err := r.Recommend(ctx, "", "", 0, []string{"list_jobs"})
	require.NoError(t, err)
	assert.Equal(t, []string{"list_jobs"}, recs)
}
