package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fysikteknologsektionen/ftek-login/config"
)

type countingRefresher struct {
	runs atomic.Int32
	err  error
}

func (r *countingRefresher) RefreshAll(ctx context.Context) (*RefreshReport, error) {
	r.runs.Add(1)
	if r.err != nil {
		return nil, r.err
	}
	return &RefreshReport{RunID: "run"}, nil
}

func TestNewScheduler_Validation(t *testing.T) {
	_, err := NewScheduler(&countingRefresher{}, config.RefreshSettings{At: "25:00", Interval: time.Hour}, quietLogger())
	assert.Error(t, err)

	_, err = NewScheduler(&countingRefresher{}, config.RefreshSettings{At: "02:00"}, quietLogger())
	assert.Error(t, err)

	_, err = NewScheduler(&countingRefresher{}, config.RefreshSettings{At: "02:00", Interval: time.Hour}, quietLogger())
	assert.NoError(t, err)
}

func TestScheduler_NextRun(t *testing.T) {
	s, err := NewScheduler(&countingRefresher{}, config.RefreshSettings{At: "02:00", Interval: 168 * time.Hour}, quietLogger())
	require.NoError(t, err)

	before := time.Date(2024, 3, 4, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 4, 2, 0, 0, 0, time.UTC), s.NextRun(before))

	at := time.Date(2024, 3, 4, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 5, 2, 0, 0, 0, time.UTC), s.NextRun(at))

	after := time.Date(2024, 3, 4, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 5, 2, 0, 0, 0, time.UTC), s.NextRun(after))
}

func TestScheduler_RunRepeatsUntilCancelled(t *testing.T) {
	refresher := &countingRefresher{err: errors.New("listing failed")}
	s, err := NewScheduler(refresher, config.RefreshSettings{At: "02:00", Interval: 5 * time.Millisecond}, quietLogger())
	require.NoError(t, err)
	start := time.Now()
	s.now = func() time.Time {
		return time.Date(2024, 3, 4, 1, 59, 59, 995_000_000, time.UTC).Add(time.Since(start))
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	assert.Eventually(t, func() bool {
		return refresher.runs.Load() >= 3
	}, 2*time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}
}

func TestScheduler_FollowingKeepsGrid(t *testing.T) {
	s, err := NewScheduler(&countingRefresher{}, config.RefreshSettings{At: "02:00", Interval: time.Hour}, quietLogger())
	require.NoError(t, err)
	planned := time.Date(2024, 3, 4, 2, 0, 0, 0, time.UTC)

	// A quick run lands on the next slot, not an hour after it finished
	assert.Equal(t, planned.Add(time.Hour), s.following(planned, planned.Add(3*time.Minute)))

	// Finishing exactly on a slot moves to the one after it
	assert.Equal(t, planned.Add(2*time.Hour), s.following(planned, planned.Add(time.Hour)))

	// A run longer than the interval skips the slots it overlapped
	assert.Equal(t, planned.Add(3*time.Hour), s.following(planned, planned.Add(150*time.Minute)))

	// Repeated runs never drift off the grid
	next := planned
	for i := 1; i <= 5; i++ {
		next = s.following(next, next.Add(17*time.Minute))
		assert.Equal(t, planned.Add(time.Duration(i)*time.Hour), next)
	}
}
