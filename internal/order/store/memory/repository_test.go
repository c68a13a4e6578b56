package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creativesites/Destiny-Bakes-sub000/internal/order/domain"
)

func TestOrdersAreStoredByValue(t *testing.T) {
	ctx := context.Background()
	repo := New()

	order := &domain.Order{
		ID:     "o1",
		Status: domain.StatusPending,
		CakeConfig: domain.CakeConfiguration{
			Flavor: domain.FlavorBanana,
			Size:   domain.Size4Inch,
			Shape:  domain.ShapeRound,
			Layers: 1,
			Tiers:  1,
		},
	}
	require.NoError(t, repo.CreateOrder(ctx, order))

	// Mutating the returned copy must not leak into the store.
	got, err := repo.GetOrder(ctx, "o1")
	require.NoError(t, err)
	got.Status = domain.StatusDelivered

	again, err := repo.GetOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, again.Status)
}

func TestSetStatusAppendsEvent(t *testing.T) {
	ctx := context.Background()
	repo := New()

	require.NoError(t, repo.CreateOrder(ctx, &domain.Order{ID: "o1", Status: domain.StatusPending}))

	now := time.Now().UTC()
	event := &domain.OrderEvent{ID: "e1", OrderID: "o1", EventType: domain.EventStatusUpdated, CreatedAt: now, CreatedBy: "staff-a"}
	require.NoError(t, repo.SetStatus(ctx, "o1", domain.StatusConfirmed, now, event))

	events, err := repo.ListEvents(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, events, 1)

	err = repo.SetStatus(ctx, "missing", domain.StatusConfirmed, now, event)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestNextOrderSeqPerDay(t *testing.T) {
	ctx := context.Background()
	repo := New()

	seq, err := repo.NextOrderSeq(ctx, "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)

	seq, err = repo.NextOrderSeq(ctx, "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, int64(2), seq)

	seq, err = repo.NextOrderSeq(ctx, "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)
}
