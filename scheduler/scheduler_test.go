/* scheduler_test.go
 * Contains unit tests for the periodic refresh loop
 * Authors: Zachary Bower
 */

package scheduler

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apiPkg "worldcup-predictions/api/api"
)

type mockBackend struct {
	mu           sync.Mutex
	updateCalls  int
	rankingCalls int
	updateErr    error
}

func (m *mockBackend) UpdatePredictions(ctx context.Context, force bool) (apiPkg.UpdateReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	if m.updateErr != nil {
		return apiPkg.UpdateReport{}, m.updateErr
	}
	return apiPkg.UpdateReport{Predictions: 1}, nil
}

func (m *mockBackend) RefreshRankings(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rankingCalls++
	return nil
}

func (m *mockBackend) calls() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateCalls, m.rankingCalls
}

func TestScheduler_FiresAndStops(t *testing.T) {
	backend := &mockBackend{}
	s := &Scheduler{API: backend, UpdateInterval: 5 * time.Millisecond, RankingInterval: 8 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}

	updates, rankings := backend.calls()
	assert.Greater(t, updates, 0)
	assert.Greater(t, rankings, 0)
}

func TestScheduler_KeepsRunningAfterErrors(t *testing.T) {
	backend := &mockBackend{updateErr: fmt.Errorf("store unreachable")}
	s := &Scheduler{API: backend, UpdateInterval: 5 * time.Millisecond, RankingInterval: time.Hour}

	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	updates, _ := backend.calls()
	assert.Greater(t, updates, 1)
}

func TestNewScheduler_Defaults(t *testing.T) {
	s := NewScheduler(&mockBackend{})
	assert.Equal(t, time.Hour, s.UpdateInterval)
	assert.Equal(t, 24*time.Hour, s.RankingInterval)
}
