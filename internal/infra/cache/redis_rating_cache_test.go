package cache

import (
	"context"
	"testing"

	"homeserve/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingKey(t *testing.T) {
	id := uuid.MustParse("0190e4a4-8a6c-7c3e-9a53-2f0a1b2c3d4e")

	assert.Equal(t, "rating:provider:0190e4a4-8a6c-7c3e-9a53-2f0a1b2c3d4e", RatingKey(id))
}

func TestNoopRatingCache(t *testing.T) {
	c := NewNoopRatingCache()
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, c.Set(ctx, &entity.ProviderRating{ProviderID: id, AverageRating: 4.5, RatingsCount: 2}))

	rating, ok, err := c.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, rating)
	assert.NoError(t, c.Invalidate(ctx, id))
}
