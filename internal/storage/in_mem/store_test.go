package in_mem

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyeonlab/lawtrace/internal/domain"
	"github.com/hyeonlab/lawtrace/internal/storage"
)

func newStatute(masterID, name string, enforced time.Time) *domain.Statute {
	return &domain.Statute{
		MasterID:        masterID,
		Name:            name,
		NormalizedName:  name,
		StatuteType:     "법률",
		EnforcementDate: enforced,
		Status:          domain.StatuteActive,
	}
}

func TestUpsertStatute_NaturalKey(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	st := newStatute("100", "근로기준법", time.Now())
	created, err := store.UpsertStatute(ctx, st)
	require.NoError(t, err)
	assert.True(t, created)
	firstID := st.ID

	again := newStatute("100", "근로기준법(개정)", time.Now())
	created, err = store.UpsertStatute(ctx, again)
	require.NoError(t, err)
	assert.False(t, created, "same master id must update, not insert")
	assert.Equal(t, firstID, again.ID)

	got, err := store.StatuteByMasterID(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, "근로기준법(개정)", got.Name)
}

func TestStatutesByNormalizedName_SortedByEnforcement(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	newer := newStatute("2", "근로기준법", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	older := newStatute("1", "근로기준법", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	_, err := store.UpsertStatute(ctx, newer)
	require.NoError(t, err)
	_, err = store.UpsertStatute(ctx, older)
	require.NoError(t, err)

	got, err := store.StatutesByNormalizedName(ctx, "근로기준법")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].MasterID)
	assert.Equal(t, "2", got[1].MasterID)
}

func TestCurrentArticle_NotFoundAndSuperseded(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	statuteID := uuid.New()

	_, err := store.CurrentArticle(ctx, statuteID, "23")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	until := time.Now().Add(-time.Hour)
	expired := &domain.Article{
		StatuteID:      statuteID,
		NormalizedNo:   "23",
		Content:        "old",
		EffectiveFrom:  time.Now().Add(-48 * time.Hour),
		EffectiveUntil: &until,
	}
	_, err = store.UpsertArticle(ctx, expired)
	require.NoError(t, err)

	_, err = store.CurrentArticle(ctx, statuteID, "23")
	assert.ErrorIs(t, err, storage.ErrNotFound, "a lapsed row is not current")
}

func TestDiffWindows(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	statuteID := uuid.New()

	mk := func(eff time.Time) *domain.DiffRecord {
		return &domain.DiffRecord{
			StatuteID:     statuteID,
			ChangeType:    domain.ChangeModified,
			EffectiveFrom: eff,
			DetectedAt:    time.Now(),
		}
	}
	require.NoError(t, store.AppendDiff(ctx, mk(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, store.AppendDiff(ctx, mk(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, store.AppendDiff(ctx, mk(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))))

	got, err := store.DiffsByStatute(ctx, statuteID,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 2, "out-of-window record excluded")
	assert.True(t, got[0].EffectiveFrom.Before(got[1].EffectiveFrom), "ascending order")
}

func TestPrecedents(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	exists, err := store.PrecedentExists(ctx, "2019다12345")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.SavePrecedent(ctx, &domain.Precedent{
		CaseNo:           "2019다12345",
		NormalizedCaseNo: "2019다12345",
		SeenAt:           time.Now(),
	}))

	exists, err = store.PrecedentExists(ctx, "2019다12345")
	require.NoError(t, err)
	assert.True(t, exists)
}
