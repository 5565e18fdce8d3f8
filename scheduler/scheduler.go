/* scheduler.go
 * Contains the periodic refresh loop. It re-runs the prediction pipeline on a fixed
 * interval and refreshes the FIFA world ranking once a day, so the published snapshot
 * keeps up with new results even when nobody calls the update endpoint.
 * Authors: Zachary Bower
 */

package scheduler

import (
	"context"
	"log"
	"time"

	apiPkg "worldcup-predictions/api/api"
)

// Backend is the slice of the API facade the scheduler drives
type Backend interface {
	UpdatePredictions(ctx context.Context, force bool) (apiPkg.UpdateReport, error)
	RefreshRankings(ctx context.Context) error
}

// Scheduler re-runs the update pipeline on an interval until its context is cancelled
type Scheduler struct {
	API             Backend
	UpdateInterval  time.Duration
	RankingInterval time.Duration
}

// NewScheduler creates a scheduler with the production defaults: hourly snapshot
// updates and daily ranking refreshes.
func NewScheduler(api Backend) *Scheduler {
	return &Scheduler{
		API:             api,
		UpdateInterval:  time.Hour,
		RankingInterval: 24 * time.Hour,
	}
}

// Run blocks, firing the refresh operations on their intervals until ctx is
// cancelled. Failures are logged and the loop keeps going.
func (s *Scheduler) Run(ctx context.Context) {
	updateTicker := time.NewTicker(s.UpdateInterval)
	defer updateTicker.Stop()
	rankingTicker := time.NewTicker(s.RankingInterval)
	defer rankingTicker.Stop()

	log.Printf("scheduler running: updates every %s, ranking refresh every %s", s.UpdateInterval, s.RankingInterval)

	for {
		select {
		case <-ctx.Done():
			log.Println("scheduler stopped")
			return
		case <-updateTicker.C:
			s.runUpdate(ctx)
		case <-rankingTicker.C:
			if err := s.API.RefreshRankings(ctx); err != nil {
				log.Println("scheduled ranking refresh failed:", err)
			}
		}
	}
}

func (s *Scheduler) runUpdate(ctx context.Context) {
	report, err := s.API.UpdatePredictions(ctx, false)
	if err != nil {
		log.Println("scheduled update failed:", err)
		return
	}
	if report.Skipped {
		return
	}
	log.Printf("scheduled update published snapshot with %d predictions", report.Predictions)
}
