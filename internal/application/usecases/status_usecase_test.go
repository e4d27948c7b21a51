package usecases

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PavaniTiago/lcp-network-api/internal/domain/entities"
)

func TestStatuses_Cached(t *testing.T) {
	surveys := newFakeSurveys()
	uc := NewStatusUseCase(surveys, time.Minute)
	ctx := context.Background()

	first, err := uc.Statuses(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.False(t, first[0].Started)

	// a new row is not seen until the entry is invalidated
	surveys.put(entities.SurveyResponse{UserID: testUser, Year: 2024})
	second, err := uc.Statuses(ctx, testUser)
	require.NoError(t, err)
	assert.False(t, second[0].Started)
	assert.Equal(t, int32(1), atomic.LoadInt32(&surveys.statusCalls))

	uc.Invalidate(testUser)
	third, err := uc.Statuses(ctx, testUser)
	require.NoError(t, err)
	assert.True(t, third[0].Started)
	assert.Equal(t, int32(2), atomic.LoadInt32(&surveys.statusCalls))
}

func TestStatuses_RequiresUser(t *testing.T) {
	uc := NewStatusUseCase(newFakeSurveys(), time.Minute)

	_, err := uc.Statuses(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
