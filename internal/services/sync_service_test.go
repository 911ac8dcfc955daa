package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/lottery-insights/internal/models"
	"github.com/ArowuTest/lottery-insights/internal/repositories/memory"
)

const (
	lotoExport = "annee_numero_de_tirage;numero_de_tirage;date_de_tirage;boule_1;boule_2;boule_3;boule_4;boule_5;numero_chance\n" +
		"2024003;3;08/01/2024;4;15;23;38;49;7\n" +
		"2024002;2;06/01/2024;1;9;17;28;33;2\n" +
		"2024001;1;03/01/2024;5;12;19;27;44;10\n" +
		"2024000;0;01/01/2024;5;12;19;27;;10\n"

	euroExport = "date_de_tirage,boule_1,boule_2,boule_3,boule_4,boule_5,etoile_1,etoile_2\n" +
		"09/01/2024,3,8,22,41,50,4,11\n" +
		"05/01/2024,1,2,13,27,45,1,12\n"
)

// fakeSource serves canned exports per game
type fakeSource struct {
	mu      sync.Mutex
	exports map[models.Game]string
	errs    map[models.Game]error
	calls   int
}

func (f *fakeSource) Fetch(ctx context.Context, game models.Game) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.errs[game]; err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader(f.exports[game])), nil
}

// blockingSource waits for release before answering
type blockingSource struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingSource) Fetch(ctx context.Context, game models.Game) (io.ReadCloser, error) {
	close(b.started)
	<-b.release
	return io.NopCloser(strings.NewReader(lotoExport)), nil
}

func TestSyncService_Sync(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewDrawRepository()
	svc := NewSyncService(&fakeSource{exports: map[models.Game]string{models.GameLoto: lotoExport}}, repo)

	result, err := svc.Sync(ctx, models.GameLoto)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Fetched)
	assert.Equal(t, 3, result.Added)
	assert.Equal(t, 1, result.Skipped)
	assert.False(t, result.FinishedAt.Before(result.StartedAt))

	draws, err := repo.FindAll(ctx, models.GameLoto)
	require.NoError(t, err)
	require.Len(t, draws, 3)
	assert.Equal(t, "2024-01-03", draws[0].Date.Format(models.DateLayout))
	assert.Equal(t, []int{4, 15, 23, 38, 49}, draws[2].MainNumbers)
	assert.Equal(t, []int{7}, draws[2].BonusNumbers)

	again, err := svc.Sync(ctx, models.GameLoto)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Added, "nothing new on a second sync")
}

func TestSyncService_FailureLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewDrawRepository()
	existing := consecutiveDraws(10)
	require.NoError(t, repo.ReplaceAll(ctx, models.GameLoto, existing))

	tests := []struct {
		name   string
		source *fakeSource
	}{
		{"network error", &fakeSource{errs: map[models.Game]error{models.GameLoto: errors.New("connection refused")}}},
		{"malformed export", &fakeSource{exports: map[models.Game]string{models.GameLoto: "hello;world\n1;2\n"}}},
		{"no valid rows", &fakeSource{exports: map[models.Game]string{models.GameLoto: "date_de_tirage;boule_1\n01/01/2024;3\n"}}},
		{"empty body", &fakeSource{exports: map[models.Game]string{models.GameLoto: ""}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewSyncService(tt.source, repo)

			_, err := svc.Sync(ctx, models.GameLoto)
			assert.ErrorIs(t, err, models.ErrFetchFailure)

			draws, err := repo.FindAll(ctx, models.GameLoto)
			require.NoError(t, err)
			assert.Len(t, draws, len(existing))
		})
	}
}

func TestSyncService_SyncAllContinuesPastFailures(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewDrawRepository()
	source := &fakeSource{
		exports: map[models.Game]string{models.GameLoto: lotoExport},
		errs:    map[models.Game]error{models.GameEuroMillions: errors.New("timeout")},
	}
	svc := NewSyncService(source, repo)

	results, err := svc.SyncAll(ctx)
	assert.ErrorIs(t, err, models.ErrFetchFailure)
	require.Len(t, results, 1)
	assert.Equal(t, models.GameLoto, results[0].Game)
	assert.Equal(t, len(models.AllGames), source.calls)
}

func TestSyncService_SyncAll(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewDrawRepository()
	svc := NewSyncService(&fakeSource{exports: map[models.Game]string{
		models.GameLoto:         lotoExport,
		models.GameEuroMillions: euroExport,
	}}, repo)

	results, err := svc.SyncAll(ctx)
	require.NoError(t, err)
	require.Len(t, results, 2)

	latest, err := repo.FindLatest(ctx, models.GameEuroMillions)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 11}, latest.BonusNumbers)
	assert.Equal(t, 0, latest.DrawNumber)
}

func TestSyncService_RejectsConcurrentSync(t *testing.T) {
	ctx := context.Background()
	source := &blockingSource{started: make(chan struct{}), release: make(chan struct{})}
	svc := NewSyncService(source, memory.NewDrawRepository())

	done := make(chan error, 1)
	go func() {
		_, err := svc.Sync(ctx, models.GameLoto)
		done <- err
	}()

	select {
	case <-source.started:
	case <-time.After(5 * time.Second):
		t.Fatal("first sync never started")
	}

	_, err := svc.Sync(ctx, models.GameLoto)
	assert.ErrorIs(t, err, ErrSyncInProgress)
	_, err = svc.SyncAll(ctx)
	assert.ErrorIs(t, err, ErrSyncInProgress)

	close(source.release)
	require.NoError(t, <-done)
}

func TestSyncService_Import(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewDrawRepository()
	source := &fakeSource{}
	svc := NewSyncService(source, repo)

	result, err := svc.Import(ctx, models.GameEuroMillions, strings.NewReader(euroExport))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Added)
	assert.Zero(t, source.calls, "import does not download")

	count, err := repo.Count(ctx, models.GameEuroMillions)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestSyncService_UnknownGame(t *testing.T) {
	svc := NewSyncService(&fakeSource{}, memory.NewDrawRepository())

	_, err := svc.Sync(context.Background(), models.Game("keno"))
	assert.ErrorIs(t, err, models.ErrUnknownGame)
}
