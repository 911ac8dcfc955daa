package services

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/lottery-insights/internal/models"
)

type countingSyncService struct {
	calls atomic.Int32
	err   error
}

func (c *countingSyncService) Sync(ctx context.Context, game models.Game) (*models.SyncResult, error) {
	return &models.SyncResult{Game: game}, nil
}

func (c *countingSyncService) SyncAll(ctx context.Context) ([]*models.SyncResult, error) {
	c.calls.Add(1)
	return nil, c.err
}

func (c *countingSyncService) Import(ctx context.Context, game models.Game, r io.Reader) (*models.SyncResult, error) {
	return &models.SyncResult{Game: game}, nil
}

func TestNewSyncScheduler_InvalidSpec(t *testing.T) {
	_, err := NewSyncScheduler(&countingSyncService{}, "every tuesday", time.Minute)
	assert.Error(t, err)
}

func TestSyncScheduler_Run(t *testing.T) {
	svc := &countingSyncService{}
	s, err := NewSyncScheduler(svc, "0 0 22 * * *", time.Minute)
	require.NoError(t, err)

	s.Run()
	assert.Equal(t, int32(1), svc.calls.Load())

	svc.err = ErrSyncInProgress
	s.Run()
	assert.Equal(t, int32(2), svc.calls.Load())
}

func TestSyncScheduler_StartStop(t *testing.T) {
	svc := &countingSyncService{}
	s, err := NewSyncScheduler(svc, "* * * * * *", time.Minute)
	require.NoError(t, err)

	s.Start()
	assert.False(t, s.Next().IsZero())

	assert.Eventually(t, func() bool { return svc.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
