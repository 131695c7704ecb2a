package draft

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/pkg/ptr"
	"github.com/m04kA/BookEasy/pkg/types"
)

func sampleDraft() *domain.BookingDraft {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	slot := types.MustTimeString("10:30")
	return &domain.BookingDraft{
		ID:         "d-1",
		BusinessID: 3,
		Step:       domain.StepEnteringDetails,
		ServiceID:  ptr.Ptr(int64(2)),
		Date:       &date,
		Time:       &slot,
		Customer: domain.CustomerInfo{
			Name:  "Sarah",
			Email: "sarah@example.com",
			Phone: "555",
			Notes: ptr.Ptr("window seat"),
		},
		Generation: 4,
		CreatedAt:  time.Date(2024, 5, 30, 12, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2024, 5, 30, 12, 5, 0, 0, time.UTC),
	}
}

func TestMemoryStore_SaveGetDelete(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleDraft()))

	got, err := store.Get(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, sampleDraft(), got)

	require.NoError(t, store.Delete(ctx, "d-1"))
	_, err = store.Get(ctx, "d-1")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestMemoryStore_Expires(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(context.Background(), sampleDraft()))

	now = now.Add(2 * time.Minute)
	_, err := store.Get(context.Background(), "d-1")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestMemoryStore_ReturnsIndependentCopies(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sampleDraft()))

	got, err := store.Get(ctx, "d-1")
	require.NoError(t, err)
	*got.ServiceID = 99

	again, err := store.Get(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), *again.ServiceID)
}

func TestMemoryStore_Generations(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	current, err := store.Generation(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), current)

	first, _ := store.NextGeneration(ctx, "d-1")
	second, _ := store.NextGeneration(ctx, "d-1")
	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)

	current, err = store.Generation(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, second, current)
}

func TestCodec_EmptyOptionalFields(t *testing.T) {
	d := &domain.BookingDraft{ID: "d-2", BusinessID: 1, Step: domain.StepChoosingService}

	payload, err := encodeDraft(d)
	require.NoError(t, err)

	got, err := decodeDraft(payload)
	require.NoError(t, err)
	assert.Nil(t, got.ServiceID)
	assert.Nil(t, got.Date)
	assert.Nil(t, got.Time)
	assert.Equal(t, domain.StepChoosingService, got.Step)
}

func TestMemoryStore_SweepsAbandonedDrafts(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	for i := 0; i < 1000; i++ {
		d := sampleDraft()
		d.ID = fmt.Sprintf("abandoned-%d", i)
		require.NoError(t, store.Save(ctx, d))
		_, err := store.NextGeneration(ctx, d.ID)
		require.NoError(t, err)
	}
	assert.Len(t, store.drafts, 1000)

	now = now.Add(24 * time.Hour)
	require.NoError(t, store.Save(ctx, sampleDraft()))

	assert.Len(t, store.drafts, 1)
	assert.Empty(t, store.generations)

	_, err := store.Get(ctx, "d-1")
	require.NoError(t, err)
}

func TestMemoryStore_SweepKeepsLiveDrafts(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	old := sampleDraft()
	old.ID = "old"
	require.NoError(t, store.Save(ctx, old))

	now = now.Add(50 * time.Second)
	require.NoError(t, store.Save(ctx, sampleDraft()))
	_, err := store.NextGeneration(ctx, "d-1")
	require.NoError(t, err)

	// "old" истек, "d-1" еще жив
	now = now.Add(30 * time.Second)
	_, err = store.NextGeneration(ctx, "d-1")
	require.NoError(t, err)

	assert.NotContains(t, store.drafts, "old")
	assert.Contains(t, store.drafts, "d-1")
	current, err := store.Generation(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), current)
}
